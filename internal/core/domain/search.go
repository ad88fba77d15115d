package domain

import (
	"strings"
	"unicode"
)

// SearchResult is the aggregated answer to a query, one ordered list per
// content type. Each list follows the match order of its FTS store.
type SearchResult struct {
	NewsResources []NewsResource `json:"newsResources"`
	Topics        []Topic        `json:"topics"`
}

// EmptySearchResult returns a result with non-nil empty lists.
func EmptySearchResult() SearchResult {
	return SearchResult{
		NewsResources: []NewsResource{},
		Topics:        []Topic{},
	}
}

// IsEmpty returns true if no entity of any type matched.
func (r SearchResult) IsEmpty() bool {
	return r.Total() == 0
}

// Total returns the number of matched entities across all types.
func (r SearchResult) Total() int {
	return len(r.NewsResources) + len(r.Topics)
}

// NewsResourceIDs returns the ids of the matched news resources in order.
func (r SearchResult) NewsResourceIDs() []string {
	ids := make([]string, len(r.NewsResources))
	for i, n := range r.NewsResources {
		ids[i] = n.ID
	}
	return ids
}

// TopicIDs returns the ids of the matched topics in order.
func (r SearchResult) TopicIDs() []string {
	ids := make([]string, len(r.Topics))
	for i, t := range r.Topics {
		ids[i] = t.ID
	}
	return ids
}

// Tokenize splits text into lowercase tokens of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ParseQuery turns a raw user query into prefix terms.
// Boolean operator words are dropped so every term is required.
// An empty result means the query matches nothing.
func ParseQuery(raw string) []string {
	tokens := Tokenize(raw)
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok {
		case "and", "or", "not":
			continue
		}
		terms = append(terms, tok)
	}
	return terms
}

// MatchesTerms reports whether every term is a prefix of some token in text.
func MatchesTerms(terms []string, text ...string) bool {
	if len(terms) == 0 {
		return false
	}
	var tokens []string
	for _, t := range text {
		tokens = append(tokens, Tokenize(t)...)
	}
	for _, term := range terms {
		found := false
		for _, tok := range tokens {
			if strings.HasPrefix(tok, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
