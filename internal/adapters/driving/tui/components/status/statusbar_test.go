package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_View(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)

	assert.NotContains(t, b.View(), "indexed")

	b.SetRecords(7)
	b.SetBusy(true)
	view := b.View()
	assert.Contains(t, view, "7 indexed")
	assert.Contains(t, view, "indexing...")
	assert.Contains(t, view, "reindex")
}

func TestBar_ErrorReplacedByMessage(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)

	b.SetError(errors.New("disk full"))
	assert.Contains(t, b.View(), "error: disk full")

	b.SetMessage("index populated")
	view := b.View()
	assert.NotContains(t, view, "disk full")
	assert.Contains(t, view, "index populated")
}
