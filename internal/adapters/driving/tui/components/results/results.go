// Package results renders an aggregated search result as two sections.
package results

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// dateLayout is how publish dates are shown next to news titles.
const dateLayout = "2006-01-02"

// List shows topics then news resources with a single cursor spanning both.
type List struct {
	result   domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewList creates an empty list.
func NewList(s *styles.Styles) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &List{result: domain.EmptySearchResult(), styles: s, width: 80, height: 20}
}

// SetResult replaces the shown result. The cursor is kept on the same
// entity when it is still present, otherwise it is clamped.
func (l *List) SetResult(r domain.SearchResult) {
	prev := l.selectedID()
	l.result = r
	if prev != "" {
		for i, id := range l.ids() {
			if id == prev {
				l.selected = i
				return
			}
		}
	}
	l.selected = min(l.selected, max(r.Total()-1, 0))
}

// Result returns the shown result.
func (l *List) Result() domain.SearchResult {
	return l.result
}

// Selected returns the cursor position across both sections.
func (l *List) Selected() int {
	return l.selected
}

// MoveUp moves the cursor up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *List) MoveDown() {
	if l.selected < l.result.Total()-1 {
		l.selected++
	}
}

// SetDimensions sets the area available to the list.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// View renders both sections, scrolled so the cursor stays visible.
func (l *List) View() string {
	if l.result.IsEmpty() {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, l.result.Total()+4)
	cursorLine := 0
	row := 0

	if len(l.result.Topics) > 0 {
		lines = append(lines, l.styles.TopicHead.Render(fmt.Sprintf("Topics (%d)", len(l.result.Topics))))
		for _, t := range l.result.Topics {
			if row == l.selected {
				cursorLine = len(lines)
			}
			lines = append(lines, l.renderRow(row, t.Name, t.ShortDescription))
			row++
		}
		lines = append(lines, "")
	}

	if len(l.result.NewsResources) > 0 {
		lines = append(lines, l.styles.NewsHead.Render(fmt.Sprintf("News (%d)", len(l.result.NewsResources))))
		for _, n := range l.result.NewsResources {
			if row == l.selected {
				cursorLine = len(lines)
			}
			detail := ""
			if !n.PublishDate.IsZero() {
				detail = n.PublishDate.Format(dateLayout)
			}
			lines = append(lines, l.renderRow(row, n.Title, detail))
			row++
		}
	}

	return strings.Join(window(lines, cursorLine, l.height), "\n")
}

func (l *List) renderRow(row int, title, detail string) string {
	titleWidth := max(l.width/2, 10)
	title = truncate(title, titleWidth)
	detail = truncate(detail, max(l.width-titleWidth-6, 0))

	if row == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %-*s", titleWidth, title)) + "  " + l.styles.Muted.Render(detail)
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %-*s", titleWidth, title)) + "  " + l.styles.Muted.Render(detail)
}

// ids returns row keys qualified by content type, since ids of different
// types may collide.
func (l *List) ids() []string {
	keys := make([]string, 0, l.result.Total())
	for _, id := range l.result.TopicIDs() {
		keys = append(keys, string(domain.ContentTypeTopics)+":"+id)
	}
	for _, id := range l.result.NewsResourceIDs() {
		keys = append(keys, string(domain.ContentTypeNewsResources)+":"+id)
	}
	return keys
}

func (l *List) selectedID() string {
	ids := l.ids()
	if l.selected < 0 || l.selected >= len(ids) {
		return ""
	}
	return ids[l.selected]
}

// window returns at most height lines around focus.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := max(focus-height+1, 0)
	end := min(start+height, len(lines))
	return lines[start:end]
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
