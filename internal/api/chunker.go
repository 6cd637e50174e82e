package api

import (
	"fmt"
	"strings"
)

const (
	// defaultChunkWords is the window size when splitting document text.
	defaultChunkWords = 200

	// minChunkWords drops trailing fragments too short to embed usefully.
	minChunkWords = 5

	// maxChunksPerDocument caps runaway inputs.
	maxChunksPerDocument = 10000
)

// chunkText splits text into word windows of at most chunkWords words.
// Windows prefer to end on a sentence boundary when one falls in the
// second half of the window.
func chunkText(text string, chunkWords int) []string {
	if chunkWords <= 0 {
		chunkWords = defaultChunkWords
	}

	words := strings.Fields(text)
	var chunks []string
	for len(words) > 0 && len(chunks) < maxChunksPerDocument {
		n := chunkWords
		if n > len(words) {
			n = len(words)
		}

		// Cut at the last sentence end inside the window, but only when
		// that leaves more than half the window. Cutting earlier would
		// degenerate into one chunk per sentence.
		cut := n
		if n == chunkWords {
			for i := n - 1; i > n/2; i-- {
				if endsSentence(words[i-1]) {
					cut = i
					break
				}
			}
		}

		chunk := strings.Join(words[:cut], " ")
		words = words[cut:]

		if len(strings.Fields(chunk)) < minChunkWords && len(words) == 0 && len(chunks) > 0 {
			// Fold a tiny tail into the previous chunk instead of storing
			// a fragment.
			chunks[len(chunks)-1] += " " + chunk
			break
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") ||
		strings.HasSuffix(word, "!") ||
		strings.HasSuffix(word, "?")
}

// chunkID names chunk n of a document.
func chunkID(docID string, n int) string {
	return fmt.Sprintf("%s_%d", docID, n)
}
