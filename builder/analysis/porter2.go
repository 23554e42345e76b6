// Package analysis plugs the Porter2 stemmer into bluge analyzers.
package analysis

import (
	"github.com/blugelabs/bluge/analysis"

	"github.com/Kush-Singh-26/stemr/porter2"
)

// Porter2Filter is a bluge TokenFilter that replaces each term with its
// Porter2 stem. Terms are lowercased (ASCII only) first; keyword tokens are
// passed through untouched.
type Porter2Filter struct{}

func NewPorter2Filter() *Porter2Filter {
	return &Porter2Filter{}
}

func (f *Porter2Filter) Filter(input analysis.TokenStream) analysis.TokenStream {
	for _, token := range input {
		if token.KeyWord || !stemmable(token.Term) {
			continue
		}
		token.Term = []byte(porter2.Stem(lowerASCII(token.Term)))
	}
	return input
}

// stemmable reports whether term is made of ASCII letters and apostrophes.
func stemmable(term []byte) bool {
	if len(term) == 0 {
		return false
	}
	for _, c := range term {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '\'':
		default:
			return false
		}
	}
	return true
}

// lowerASCII copies term so the field value backing it is never modified.
func lowerASCII(term []byte) string {
	buf := make([]byte, len(term))
	for i, c := range term {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	return string(buf)
}
