package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nevindra/shard"
	"github.com/nevindra/shard/extract"
	"github.com/nevindra/shard/internal/config"
	"github.com/nevindra/shard/observer"
	"github.com/nevindra/shard/pipeline"
	"github.com/nevindra/shard/recognize"
	"github.com/nevindra/shard/split"
	"github.com/nevindra/shard/store/fsjson"
	"github.com/nevindra/shard/store/postgres"
	"github.com/nevindra/shard/store/sqlite"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	// 1. Load config
	cfg := config.Load(os.Getenv("SHARD_CONFIG"))
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// 2. Telemetry
	inst := observer.Nop()
	if cfg.Observer.Enabled {
		i, shutdown, err := observer.Init(ctx)
		if err != nil {
			return fmt.Errorf("observer: %w", err)
		}
		defer shutdown(context.Background()) //nolint:errcheck
		inst = i
	}

	// 3. Store
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Init(ctx); err != nil {
		return fmt.Errorf("store init: %w", err)
	}

	// 4. Orchestrator
	hierarchy, err := split.New(cfg.Chunking.Separators...)
	if err != nil {
		return err
	}
	orch, err := pipeline.New(st, pipeline.Config{
		MaxSize:   cfg.Chunking.MaxSize,
		Overlap:   cfg.Chunking.Overlap,
		Hierarchy: hierarchy,
		Redact:    cfg.Redact.Enabled,
	},
		pipeline.WithWorkers(cfg.Chunking.Workers),
		pipeline.WithLogger(logger),
		pipeline.WithInstruments(inst),
	)
	if err != nil {
		return err
	}

	// 5. Ingest input files
	inputs, err := collect(ctx, cfg.Input.Dir, logger)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		logger.Info("no supported documents found", "dir", cfg.Input.Dir)
		return nil
	}

	// 6. Run and summarize
	results := orch.Run(ctx, inputs)
	var emitted, failed, chunks int
	for _, res := range results {
		if res.Failed() {
			failed++
			continue
		}
		emitted++
		chunks += res.Diagnostics.ChunkCount
	}
	logger.Info("run complete", "documents", len(results), "emitted", emitted, "failed", failed, "chunks", chunks)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (shard.Store, error) {
	switch cfg.Store.Backend {
	case "fsjson":
		return fsjson.New(cfg.Store.Path, fsjson.WithLogger(logger)), nil
	case "sqlite":
		return sqlite.New(cfg.Store.Path, sqlite.WithLogger(logger)), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Store.URL)
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		return postgres.New(pool), nil
	default:
		return nil, &shard.ErrConfig{Field: "store.backend", Reason: "must be fsjson, sqlite, or postgres"}
	}
}

// collect walks dir, extracts text from every supported file, and pairs each
// document with its recognized spans. Unsupported extensions are skipped.
func collect(ctx context.Context, dir string, logger *slog.Logger) ([]pipeline.Input, error) {
	extractors := extract.DefaultExtractors()
	recognizer := recognize.NewPatternRecognizer()

	var inputs []pipeline.Input
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ct, ok := extract.ContentTypeFromExtension(filepath.Ext(path))
		if !ok {
			logger.Debug("skipping unsupported file", "path", path)
			return nil
		}
		ex, ok := extractors[ct]
		if !ok {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		text, err := ex.Extract(raw)
		if err != nil {
			logger.Warn("extraction failed, skipping", "path", path, "err", err)
			return nil
		}

		spans, err := recognizer.Recognize(ctx, text)
		if err != nil {
			return fmt.Errorf("recognize %s: %w", path, err)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}
		inputs = append(inputs, pipeline.Input{
			Document: shard.Document{
				ID:        rel,
				Source:    path,
				Text:      text,
				CreatedAt: shard.NowUnix(),
			},
			Spans: spans,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return inputs, nil
}
