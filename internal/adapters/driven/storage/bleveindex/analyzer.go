package bleveindex

import (
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"
)

const (
	// TokenizerName splits on every rune that is not a letter or digit.
	TokenizerName = "contentsearch_tokenizer"

	// AnalyzerName is the text field analyzer.
	AnalyzerName = "contentsearch_analyzer"
)

func init() {
	_ = registry.RegisterTokenizer(TokenizerName, tokenizerConstructor)
}

func tokenizerConstructor(map[string]interface{}, *registry.Cache) (analysis.Tokenizer, error) {
	return &tokenizer{}, nil
}

// tokenizer produces the same lowercase tokens as domain.Tokenize so
// every backend agrees on what a term prefix matches.
type tokenizer struct{}

// Tokenize implements analysis.Tokenizer.
func (tokenizer) Tokenize(input []byte) analysis.TokenStream {
	stream := make(analysis.TokenStream, 0, 16)
	pos := 1
	start := -1

	emit := func(end int) {
		term := []rune(string(input[start:end]))
		for i, r := range term {
			term[i] = unicode.ToLower(r)
		}
		stream = append(stream, &analysis.Token{
			Term:     []byte(string(term)),
			Start:    start,
			End:      end,
			Position: pos,
			Type:     analysis.AlphaNumeric,
		})
		pos++
		start = -1
	}

	for i := 0; i < len(input); {
		r, size := utf8.DecodeRune(input[i:])
		wordRune := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case wordRune && start < 0:
			start = i
		case !wordRune && start >= 0:
			emit(i)
		}
		i += size
	}
	if start >= 0 {
		emit(len(input))
	}
	return stream
}
