package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "Android", []string{"android"}},
		{"punctuation", "Jetpack-Compose, 1.5!", []string{"jetpack", "compose", "1", "5"}},
		{"unicode", "Café Über", []string{"café", "über"}},
		{"whitespace only", "  \t\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuery_DropsOperators(t *testing.T) {
	assert.Equal(t, []string{"android", "compose"}, ParseQuery("Android AND compose"))
	assert.Equal(t, []string{"kotlin"}, ParseQuery("NOT kotlin OR"))
	assert.Empty(t, ParseQuery("and or not"))
	assert.Empty(t, ParseQuery(`"*"`))
}

func TestMatchesTerms(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		text  []string
		want  bool
	}{
		{"exact token", []string{"android"}, []string{"All about Android"}, true},
		{"prefix", []string{"andr"}, []string{"Android"}, true},
		{"not substring", []string{"droid"}, []string{"Android"}, false},
		{"all terms required", []string{"android", "kotlin"}, []string{"Android"}, false},
		{"terms across fields", []string{"android", "kotlin"}, []string{"Android", "Kotlin"}, true},
		{"no terms", nil, []string{"Android"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesTerms(tt.terms, tt.text...))
		})
	}
}

func TestSearchResult_Empty(t *testing.T) {
	r := EmptySearchResult()

	assert.True(t, r.IsEmpty())
	assert.NotNil(t, r.NewsResources)
	assert.NotNil(t, r.Topics)
	assert.Equal(t, 0, r.Total())
}

func TestSearchResult_IDs(t *testing.T) {
	r := SearchResult{
		NewsResources: []NewsResource{{ID: "1"}, {ID: "2"}},
		Topics:        []Topic{{ID: "2"}},
	}

	assert.False(t, r.IsEmpty())
	assert.Equal(t, 3, r.Total())
	assert.Equal(t, []string{"1", "2"}, r.NewsResourceIDs())
	assert.Equal(t, []string{"2"}, r.TopicIDs())
}
