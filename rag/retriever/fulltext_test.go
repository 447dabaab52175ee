package retriever

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveLuceneChars(t *testing.T) {
	t.Run("StripsSpecialChars", func(t *testing.T) {
		assert.Equal(t, " Aurora  Dynamics ", RemoveLuceneChars("(Aurora) Dynamics!"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := RemoveLuceneChars(`a+b-c&&d||e!f(g)h{i}j[k]l^m"n~o*p?q:r\s/t`)
		assert.Equal(t, once, RemoveLuceneChars(once))
	})

	t.Run("PlainTextUnchanged", func(t *testing.T) {
		assert.Equal(t, "Sophia Martinez", RemoveLuceneChars("Sophia Martinez"))
	})
}

func TestFullTextQuery(t *testing.T) {
	t.Run("TwoWords", func(t *testing.T) {
		assert.Equal(t, "Aurora~2 AND Dynamics~2", FullTextQuery("Aurora Dynamics"))
	})

	t.Run("SingleWord", func(t *testing.T) {
		assert.Equal(t, "SolarOptima~2", FullTextQuery("SolarOptima"))
	})

	t.Run("SpecialCharsOnlyYieldsEmpty", func(t *testing.T) {
		assert.Equal(t, "", FullTextQuery("()"))
		assert.Equal(t, "", FullTextQuery("  "))
		assert.Equal(t, "", FullTextQuery(""))
	})

	t.Run("TermCountMatchesWordCount", func(t *testing.T) {
		query := FullTextQuery("Amelia Green of NorthBridge Capital")
		terms := strings.Split(query, " AND ")
		assert.Len(t, terms, 5)
		for _, term := range terms {
			assert.True(t, strings.HasSuffix(term, "~2"), "term %q should carry a fuzzy suffix", term)
		}
	})

	t.Run("EmbeddedSpecialCharsBecomeSeparators", func(t *testing.T) {
		assert.Equal(t, "Aurora~2 AND Dynamics~2", FullTextQuery(`Aurora:"Dynamics"`))
	})
}
