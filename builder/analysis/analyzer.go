package analysis

import (
	"regexp"

	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/lang/en"
	"github.com/blugelabs/bluge/analysis/tokenizer"
)

// wordRegexp keeps apostrophes inside tokens so the possessive filter and
// step 0 of the stemmer can see them.
var wordRegexp = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’＇][\p{L}\p{N}]+)*['’＇]?`)

// NewEnglishAnalyzer tokenizes on letters and digits, strips possessives and
// stems with Porter2. The same analyzer must be used for fields and queries.
func NewEnglishAnalyzer() *analysis.Analyzer {
	return &analysis.Analyzer{
		Tokenizer: tokenizer.NewRegexpTokenizer(wordRegexp),
		TokenFilters: []analysis.TokenFilter{
			en.NewPossessiveFilter(),
			NewPorter2Filter(),
		},
	}
}
