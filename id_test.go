package shard

import "testing"

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()
	if len(id1) != 36 {
		t.Errorf("expected 36 chars (UUIDv7), got %d: %s", len(id1), id1)
	}
	if id1 == id2 {
		t.Error("two IDs should be unique")
	}
	if id1 >= id2 {
		t.Error("sequential UUIDv7s should be time-ordered")
	}
}

func TestChunkID(t *testing.T) {
	got := ChunkID("ward notes 2024.pdf", 7)
	if got != "ward_notes_2024.pdf_chunk_007" {
		t.Errorf("unexpected chunk id: %s", got)
	}
	if ChunkID("a/b", 0) != "a_b_chunk_000" {
		t.Errorf("slash not sanitized: %s", ChunkID("a/b", 0))
	}
}
