package chunker

import (
	"strings"
)

// Chunk is one window of a document's text.
type Chunk struct {
	Content    string
	ChunkIndex int
	WordCount  int
	PageNumber *int
}

// Chunker splits extracted text into overlapping word windows. Word-based
// windows approximate the original token budget closely enough for
// retrieval; exact tokenizer parity is not a goal.
type Chunker struct {
	chunkSize int
	overlap   int
}

func New(chunkSizeWords, overlapWords int) *Chunker {
	if chunkSizeWords <= 0 {
		chunkSizeWords = 512
	}
	if overlapWords < 0 || overlapWords >= chunkSizeWords {
		overlapWords = chunkSizeWords / 8
	}
	return &Chunker{chunkSize: chunkSizeWords, overlap: overlapWords}
}

// Split windows the text. Consecutive chunks share `overlap` words so a
// clause straddling a boundary is retrievable from either side.
func (c *Chunker) Split(text string, pageNumber *int) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var chunks []Chunk
	index := 0

	for start := 0; start < len(words); start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		window := words[start:end]
		chunks = append(chunks, Chunk{
			Content:    strings.Join(window, " "),
			ChunkIndex: index,
			WordCount:  len(window),
			PageNumber: pageNumber,
		})
		index++
		if end == len(words) {
			break
		}
	}

	return chunks
}
