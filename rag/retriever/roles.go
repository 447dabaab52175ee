package retriever

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/manucet439/RAG-Vs-GraphRAG/rag"
)

// DefaultRoleIndicators are the role tokens the role-context scanner looks
// for inside questions and retrieved sentences.
var DefaultRoleIndicators = []string{
	"CEO", "CFO", "CTO", "CIO", "COO",
	"Chief Executive Officer", "Chief Financial Officer",
	"Chief Technology Officer", "Chief Innovation Officer",
	"Chief Operating Officer", "President", "Director",
	"Head of", "founder", "founded",
}

// DefaultBoostKeywords trigger the second, role-focused similarity search.
// Deliberately kept separate from DefaultRoleIndicators: this list is tuned
// for question phrasing, including action verbs like "approved".
var DefaultBoostKeywords = []string{
	"approved", "founded", "ceo", "cfo", "cto", "cio",
	"chief", "head", "director",
}

// DefaultNameStoplist holds capitalized function words that are not names.
var DefaultNameStoplist = []string{"The", "In", "As", "By"}

// RoleContextScan recovers role-to-person bindings from document chunks.
// For every role indicator present in the question it retrieves chunks
// likely to name the role holder and keeps sentences that mention the role
// alongside at least two name-like tokens. Best effort by design: false
// positives are left for the answering model to resolve.
func (r *GraphRetriever) RoleContextScan(ctx context.Context, question string) (string, error) {
	questionLower := strings.ToLower(question)

	var b strings.Builder
	for _, indicator := range r.roleIndicators {
		if !strings.Contains(questionLower, strings.ToLower(indicator)) {
			continue
		}

		docs, err := r.vector.SimilaritySearch(ctx, indicator+" person name who", r.scanK)
		if err != nil {
			return "", fmt.Errorf("role scan search for %q: %w", indicator, err)
		}

		for _, doc := range docs {
			for _, sentence := range strings.Split(doc.Content, ".") {
				if !containsFold(sentence, indicator) {
					continue
				}
				if r.countNameLike(sentence) >= 2 {
					b.WriteString("Role context: ")
					b.WriteString(strings.TrimSpace(sentence))
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String(), nil
}

// UnstructuredRetrieve runs similarity search for the question, adding a
// role-focused second search when the question contains a boost keyword.
// Results are deduplicated by exact content in first-seen order and capped.
func (r *GraphRetriever) UnstructuredRetrieve(ctx context.Context, question string) ([]string, error) {
	base, err := r.vector.SimilaritySearch(ctx, question, r.baseK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	if !r.isRoleQuestion(question) {
		return documentContents(base), nil
	}

	boost, err := r.vector.SimilaritySearch(ctx, "role position "+question, r.boostK)
	if err != nil {
		return nil, fmt.Errorf("role-boosted similarity search: %w", err)
	}

	seen := make(map[string]bool)
	var merged []string
	for _, doc := range append(base, boost...) {
		if seen[doc.Content] {
			continue
		}
		seen[doc.Content] = true
		merged = append(merged, doc.Content)
		if len(merged) >= r.finalCap {
			break
		}
	}
	return merged, nil
}

func (r *GraphRetriever) isRoleQuestion(question string) bool {
	questionLower := strings.ToLower(question)
	for _, keyword := range r.boostKeywords {
		if strings.Contains(questionLower, keyword) {
			return true
		}
	}
	return false
}

// countNameLike counts whitespace-delimited words that look like parts of a
// proper name: leading uppercase, longer than two runes and not a common
// capitalized function word.
func (r *GraphRetriever) countNameLike(sentence string) int {
	count := 0
	for _, word := range strings.Fields(sentence) {
		runes := []rune(word)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) && !r.nameStoplist[word] {
			count++
		}
	}
	return count
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func documentContents(docs []rag.Document) []string {
	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}
	return contents
}
