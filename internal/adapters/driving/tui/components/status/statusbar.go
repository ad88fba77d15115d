// Package status provides the bottom status bar of the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/styles"
)

// Bar shows the index size, the last event and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	records int
	message string
	failed  bool
	busy    bool
	width   int
}

// NewBar creates a status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, records: -1, width: 80}
}

// SetRecords sets the number of indexed records.
func (b *Bar) SetRecords(n int) { b.records = n }

// SetBusy marks a population as running.
func (b *Bar) SetBusy(busy bool) { b.busy = busy }

// SetMessage shows an informational message.
func (b *Bar) SetMessage(msg string) {
	b.message = msg
	b.failed = false
}

// SetError shows err until the next message.
func (b *Bar) SetError(err error) {
	b.message = err.Error()
	b.failed = true
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) { b.width = width }

// View renders the bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderHints()

	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) renderLeft() string {
	parts := make([]string, 0, 3)
	if b.records >= 0 {
		parts = append(parts, b.styles.Normal.Render(fmt.Sprintf("%d indexed", b.records)))
	}
	if b.busy {
		parts = append(parts, b.styles.Warning.Render("indexing..."))
	}
	switch {
	case b.message == "":
	case b.failed:
		parts = append(parts, b.styles.Error.Render("error: "+b.message))
	default:
		parts = append(parts, b.styles.Muted.Render(b.message))
	}
	return strings.Join(parts, "  ")
}

func (b *Bar) renderHints() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return b.styles.Help.Render(strings.Join(hints, " · "))
}
