package retriever

import "strings"

// luceneSpecialChars are reserved by the Lucene query syntax the graph
// store's full-text index speaks. They are stripped before building a query
// so user text cannot change the query structure.
var luceneSpecialChars = []string{
	"+", "-", "&&", "||", "!", "(", ")", "{", "}", "[", "]",
	"^", "\"", "~", "*", "?", ":", "\\", "/",
}

// RemoveLuceneChars replaces every Lucene special character with a space.
func RemoveLuceneChars(text string) string {
	for _, ch := range luceneSpecialChars {
		text = strings.ReplaceAll(text, ch, " ")
	}
	return text
}

// FullTextQuery converts a free-text entity name into a fuzzy full-text
// query: each token gets an edit-distance-2 suffix and tokens are joined
// with AND, so "Aurora Dynamics" becomes "Aurora~2 AND Dynamics~2".
//
// An input that strips to nothing returns the empty string. Callers must
// treat that as "nothing to search for" and skip the backend call; running
// a full-text search with an empty pattern is undefined.
func FullTextQuery(text string) string {
	words := strings.Fields(RemoveLuceneChars(text))
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for i, word := range words {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(word)
		b.WriteString("~2")
	}
	return b.String()
}
