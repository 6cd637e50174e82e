package api

import (
	"strings"
	"testing"
)

func TestChunkText_Empty(t *testing.T) {
	if chunks := chunkText("", 10); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
	if chunks := chunkText("   \n\t ", 10); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace, got %d", len(chunks))
	}
}

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunks := chunkText("five little words right here", 200)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "five little words right here" {
		t.Errorf("unexpected chunk %q", chunks[0])
	}
}

func TestChunkText_SplitsLongText(t *testing.T) {
	words := make([]string, 450)
	for i := range words {
		words[i] = "word"
	}
	chunks := chunkText(strings.Join(words, " "), 200)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	total := 0
	for i, c := range chunks {
		n := len(strings.Fields(c))
		if n > 200 {
			t.Errorf("chunk %d has %d words, window is 200", i, n)
		}
		total += n
	}
	if total != 450 {
		t.Errorf("expected all 450 words preserved, got %d", total)
	}
}

func TestChunkText_PrefersSentenceBoundary(t *testing.T) {
	// 8 words, window 6: the period after word 5 falls in the second half
	// of the window, so the first chunk ends there.
	chunks := chunkText("one two three four five. six seven eight", 6)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != "one two three four five." {
		t.Errorf("expected sentence-aligned first chunk, got %q", chunks[0])
	}
}

func TestChunkText_FoldsTinyTail(t *testing.T) {
	words := make([]string, 102)
	for i := range words {
		words[i] = "word"
	}
	chunks := chunkText(strings.Join(words, " "), 100)
	if len(chunks) != 1 {
		t.Fatalf("expected trailing fragment folded into previous chunk, got %d chunks", len(chunks))
	}
	if got := len(strings.Fields(chunks[0])); got != 102 {
		t.Errorf("expected 102 words in merged chunk, got %d", got)
	}
}

func TestChunkID(t *testing.T) {
	if got := chunkID("doc-1", 3); got != "doc-1_3" {
		t.Errorf("unexpected chunk id %q", got)
	}
}
