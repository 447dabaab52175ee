// Package loader reads source material from disk into documents for the
// indexing pipeline.
package loader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// TextLoader loads one text file as a single document. Files that are not
// valid UTF-8 are decoded as Latin-1, so corpora with stray high bytes still
// load.
type TextLoader struct {
	filePath string
	metadata map[string]any
}

// TextLoaderOption configures the TextLoader.
type TextLoaderOption func(*TextLoader)

// WithMetadata adds metadata to every loaded document.
func WithMetadata(metadata map[string]any) TextLoaderOption {
	return func(l *TextLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewTextLoader creates a loader for the given file.
func NewTextLoader(filePath string, opts ...TextLoaderOption) *TextLoader {
	l := &TextLoader{
		filePath: filePath,
		metadata: map[string]any{
			"source": filePath,
			"type":   "text",
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

var _ rag.DocumentLoader = (*TextLoader)(nil)

// Load reads the file into a single document.
func (l *TextLoader) Load(ctx context.Context) ([]rag.Document, error) {
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", l.filePath, err)
	}

	metadata := make(map[string]any, len(l.metadata))
	maps.Copy(metadata, l.metadata)

	doc := rag.Document{
		ID:       documentID(l.filePath),
		Content:  decodeText(content),
		Metadata: metadata,
	}
	return []rag.Document{doc}, nil
}

func documentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// decodeText returns the content as a string, treating non-UTF-8 input as
// Latin-1 rather than leaving replacement characters in the corpus.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// DirectoryLoader loads every file matching a glob pattern under a
// directory, one document per file.
type DirectoryLoader struct {
	dir     string
	pattern string
}

// NewDirectoryLoader creates a loader over dir for files matching pattern,
// such as "*.txt".
func NewDirectoryLoader(dir, pattern string) *DirectoryLoader {
	if pattern == "" {
		pattern = "*.txt"
	}
	return &DirectoryLoader{dir: dir, pattern: pattern}
}

var _ rag.DocumentLoader = (*DirectoryLoader)(nil)

// Load reads all matching files in lexical order.
func (l *DirectoryLoader) Load(ctx context.Context) ([]rag.Document, error) {
	paths, err := filepath.Glob(filepath.Join(l.dir, l.pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", l.pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files matching %s in %s", l.pattern, l.dir)
	}

	var docs []rag.Document
	for _, path := range paths {
		fileDocs, err := NewTextLoader(path).Load(ctx)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}
