// Package stem reduces caption text to word stems, so different forms of the
// same word compare equal.
package stem

import (
	"strings"
	"sync"
	"unicode"

	"github.com/reiver/go-porterstemmer"
)

var builders = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// StemLine stems every word of the line, dropping surrounding punctuation.
// The words are joined by a single space and lower cased.
func StemLine(value string) string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return ""
	}

	b := builders.Get().(*strings.Builder)
	b.Reset()
	b.Grow(len(value))

	first := true
	for _, word := range words {
		word = strings.TrimFunc(word, trimPunctuation)
		if word == "" {
			continue
		}

		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(porterstemmer.StemString(strings.ToLower(word)))
	}

	s := b.String()
	builders.Put(b)
	return s
}

// StemLineWords is StemLine split into its words.
func StemLineWords(value string) []string {
	return strings.Fields(StemLine(value))
}

func trimPunctuation(r rune) bool {
	return unicode.IsPunct(r) || r == '"'
}
