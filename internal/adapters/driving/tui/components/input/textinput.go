// Package input provides the query box of the live search screen.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/styles"
)

// QueryInput is an always-focused text box that reports edits.
type QueryInput struct {
	model  textinput.Model
	styles *styles.Styles
}

// NewQueryInput creates a focused query box.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search topics and news..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return &QueryInput{model: ti, styles: s}
}

// Init starts the cursor blink.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update feeds msg to the text box. changed is true when the value differs
// afterwards.
func (q *QueryInput) Update(msg tea.Msg) (cmd tea.Cmd, changed bool) {
	before := q.model.Value()
	q.model, cmd = q.model.Update(msg)
	return cmd, q.model.Value() != before
}

// View renders the labelled box.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render("Search ")
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, q.styles.InputField.Render(q.model.View()))
}

// Value returns the current query.
func (q *QueryInput) Value() string {
	return q.model.Value()
}

// SetValue replaces the current query.
func (q *QueryInput) SetValue(v string) {
	q.model.SetValue(v)
}

// SetWidth fits the box into width columns.
func (q *QueryInput) SetWidth(width int) {
	q.model.Width = max(width-14, 20)
}
