package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"complete", &Ports{Search: &mockSearch{}, Sync: &mockSync{}}, nil},
		{"missing search", &Ports{Sync: &mockSync{}}, ErrMissingSearchService},
		{"missing sync", &Ports{Search: &mockSearch{}}, ErrMissingSynchronizer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ports.Validate())
		})
	}
}
