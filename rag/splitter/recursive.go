// Package splitter breaks documents into chunks sized for embedding and
// entity extraction.
package splitter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// DefaultSeparators split first on the horizontal rule lines that separate
// sections of the demo corpus, then on progressively finer boundaries.
var DefaultSeparators = []string{
	"\n________________________________________\n",
	"\n\n",
	"\n",
	". ",
	" ",
}

// RecursiveCharacterTextSplitter splits text by trying each separator in
// order, recursing into the next one whenever a piece is still over the
// chunk size.
type RecursiveCharacterTextSplitter struct {
	separators   []string
	chunkSize    int
	chunkOverlap int
}

// RecursiveCharacterTextSplitterOption configures the splitter.
type RecursiveCharacterTextSplitterOption func(*RecursiveCharacterTextSplitter)

// WithSeparators sets the separators tried in order.
func WithSeparators(separators []string) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.separators = separators
	}
}

// WithChunkSize sets the maximum chunk size in bytes.
func WithChunkSize(size int) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap carried between adjacent chunks.
func WithChunkOverlap(overlap int) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.chunkOverlap = overlap
	}
}

// NewRecursiveCharacterTextSplitter creates a splitter with the default
// separators and a chunk size tuned for short factual passages.
func NewRecursiveCharacterTextSplitter(opts ...RecursiveCharacterTextSplitterOption) *RecursiveCharacterTextSplitter {
	s := &RecursiveCharacterTextSplitter{
		separators:   DefaultSeparators,
		chunkSize:    1024,
		chunkOverlap: 48,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ rag.TextSplitter = (*RecursiveCharacterTextSplitter)(nil)

// SplitText splits text into chunks.
func (s *RecursiveCharacterTextSplitter) SplitText(text string) []string {
	return s.splitRecursive(text, s.separators)
}

// SplitDocuments splits each document into chunk documents carrying the
// parent's metadata plus chunk bookkeeping.
func (s *RecursiveCharacterTextSplitter) SplitDocuments(docs []rag.Document) []rag.Document {
	chunks := make([]rag.Document, 0, len(docs))

	for _, doc := range docs {
		textChunks := s.SplitText(doc.Content)
		for i, chunk := range textChunks {
			metadata := make(map[string]any, len(doc.Metadata)+3)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["chunk_total"] = len(textChunks)
			metadata["parent_id"] = doc.ID

			chunks = append(chunks, rag.Document{
				ID:       fmt.Sprintf("%s_chunk_%d", doc.ID, i),
				Content:  chunk,
				Metadata: metadata,
			})
		}
	}

	return chunks
}

func (s *RecursiveCharacterTextSplitter) splitRecursive(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	if len(separators) == 0 {
		return s.splitByCharacter(text)
	}

	separator := separators[0]
	remaining := separators[1:]

	var pieces []string
	for _, piece := range strings.Split(text, separator) {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		if len(piece) <= s.chunkSize {
			pieces = append(pieces, piece)
		} else {
			pieces = append(pieces, s.splitRecursive(piece, remaining)...)
		}
	}

	return s.mergePieces(pieces, separator)
}

// splitByCharacter is the last resort when no separator fits: fixed windows
// stepped by chunkSize minus overlap.
func (s *RecursiveCharacterTextSplitter) splitByCharacter(text string) []string {
	step := s.chunkSize - s.chunkOverlap
	if step <= 0 {
		step = s.chunkSize
	}

	var splits []string
	for i := 0; i < len(text); i += step {
		end := i + s.chunkSize
		if end > len(text) {
			end = len(text)
		}
		splits = append(splits, text[i:end])
		if end == len(text) {
			break
		}
	}
	return splits
}

// mergePieces packs adjacent pieces back together while they fit in the
// chunk size, then prepends the tail of each chunk to the next one as
// overlap.
func (s *RecursiveCharacterTextSplitter) mergePieces(pieces []string, separator string) []string {
	glue := separator
	if glue == "" {
		glue = " "
	}

	var merged []string
	var current string
	for _, piece := range pieces {
		if current == "" {
			current = piece
			continue
		}
		proposed := current + glue + piece
		if len(proposed) <= s.chunkSize {
			current = proposed
		} else {
			merged = append(merged, current)
			current = piece
		}
	}
	if current != "" {
		merged = append(merged, current)
	}

	if s.chunkOverlap > 0 && len(merged) > 1 {
		merged = s.applyOverlap(merged)
	}
	return merged
}

func (s *RecursiveCharacterTextSplitter) applyOverlap(chunks []string) []string {
	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		overlap := prev
		if len(prev) > s.chunkOverlap {
			overlap = prev[len(prev)-s.chunkOverlap:]
			// Avoid starting the overlap mid-word.
			if idx := strings.IndexAny(overlap, " \n"); idx >= 0 && idx+1 < len(overlap) {
				overlap = overlap[idx+1:]
			}
		}
		out[i] = overlap + " " + chunks[i]
	}
	return out
}
