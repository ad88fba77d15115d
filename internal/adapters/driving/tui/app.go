package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/components/results"
	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/contentsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// App is the live search screen. Every edit of the query replaces the
// open result stream, and every emission of that stream redraws the list.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input *input.QueryInput
	list  *results.List
	bar   *status.Bar

	// generation numbers result streams; messages from older ones are dropped.
	generation   uint64
	cancelSearch context.CancelFunc
	values       <-chan domain.SearchResult
	errs         <-chan error

	cancelCount context.CancelFunc

	populating bool
	showHelp   bool
	err        error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates the screen for ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		input:  input.NewQueryInput(s),
		list:   results.NewList(s),
		bar:    status.NewBar(s, km),
	}, nil
}

// WithContext sets the context every stream is opened under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.Init(), a.subscribe(), a.watchCount())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.ResultsUpdated:
		if msg.Generation != a.generation {
			return a, nil
		}
		a.err = nil
		a.list.SetResult(msg.Result)
		return a, waitForResult(msg.Generation, a.values, a.errs)

	case messages.SearchFailed:
		if msg.Generation == a.generation {
			a.err = msg.Err
			a.bar.SetError(msg.Err)
		}
		return a, nil

	case messages.StreamClosed:
		return a, nil

	case countEmission:
		a.bar.SetRecords(msg.Count)
		return a, waitForCount(msg.values, msg.errs)

	case messages.CountFailed:
		a.bar.SetError(msg.Err)
		return a, nil

	case messages.PopulateCompleted:
		a.populating = false
		a.bar.SetBusy(false)
		if msg.Err != nil {
			a.bar.SetError(msg.Err)
		} else if msg.Run != nil {
			a.bar.SetMessage(fmt.Sprintf("indexed %d records in %s", msg.Run.Total(), msg.Run.Duration().Round(time.Millisecond)))
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case keymap.Matches(msg, a.keymap.Quit):
		a.shutdown()
		return tea.Quit
	case keymap.Matches(msg, a.keymap.Up):
		a.list.MoveUp()
		return nil
	case keymap.Matches(msg, a.keymap.Down):
		a.list.MoveDown()
		return nil
	case keymap.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		return nil
	case keymap.Matches(msg, a.keymap.Populate):
		return a.populate()
	case keymap.Matches(msg, a.keymap.Clear):
		if a.input.Value() == "" {
			return nil
		}
		a.input.SetValue("")
		return a.subscribe()
	}

	cmd, changed := a.input.Update(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, a.subscribe())
}

// subscribe replaces the result stream with one for the current query.
func (a *App) subscribe() tea.Cmd {
	if a.cancelSearch != nil {
		a.cancelSearch()
	}
	a.generation++

	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelSearch = cancel
	a.values, a.errs = a.ports.Search.SearchContents(ctx, a.input.Value())

	return waitForResult(a.generation, a.values, a.errs)
}

func (a *App) watchCount() tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelCount = cancel
	values, errs := a.ports.Search.GetSearchContentsCount(ctx)
	return waitForCount(values, errs)
}

func (a *App) populate() tea.Cmd {
	if a.populating {
		return nil
	}
	a.populating = true
	a.bar.SetBusy(true)

	ctx := a.ctx
	synchronizer := a.ports.Sync
	return func() tea.Msg {
		run, err := synchronizer.Populate(ctx, domain.SyncTriggerManual)
		return messages.PopulateCompleted{Run: run, Err: err}
	}
}

func (a *App) shutdown() {
	if a.cancelSearch != nil {
		a.cancelSearch()
	}
	if a.cancelCount != nil {
		a.cancelCount()
	}
}

// waitForResult blocks on the next emission of a result stream.
func waitForResult(gen uint64, values <-chan domain.SearchResult, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-values
		if !ok {
			if err, hasErr := <-errs; hasErr && err != nil {
				return messages.SearchFailed{Generation: gen, Err: err}
			}
			return messages.StreamClosed{Generation: gen}
		}
		return messages.ResultsUpdated{Generation: gen, Result: v}
	}
}

// countEmission carries the count stream along with its value so the next
// read can be scheduled.
type countEmission struct {
	messages.CountUpdated
	values <-chan int
	errs   <-chan error
}

func waitForCount(values <-chan int, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-values
		if !ok {
			if err, hasErr := <-errs; hasErr && err != nil {
				return messages.CountFailed{Err: err}
			}
			return messages.StreamClosed{}
		}
		return countEmission{CountUpdated: messages.CountUpdated{Count: v}, values: values, errs: errs}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.showHelp:
		b.WriteString(a.viewHelp())
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Search failed: " + a.err.Error()))
	case a.input.Value() == "":
		b.WriteString(a.styles.Muted.Render("Type to search topics and news."))
	default:
		b.WriteString(a.list.View())
	}

	content := b.String()
	if gap := a.height - strings.Count(content, "\n") - 2; gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + "\n" + a.bar.View()
}

func (a *App) viewHelp() string {
	lines := []string{a.styles.Title.Render("Keys")}
	for _, group := range a.keymap.FullHelp() {
		for _, k := range group {
			h := k.Help()
			lines = append(lines, fmt.Sprintf("  %-8s %s", h.Key, h.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the program on the alternate screen.
func (a *App) Run() error {
	defer a.shutdown()
	_, err := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx)).Run()
	return err
}

// Query returns the current query.
func (a *App) Query() string {
	return a.input.Value()
}

// Result returns the shown result.
func (a *App) Result() domain.SearchResult {
	return a.list.Result()
}

// Err returns the error that ended the current result stream, if any.
func (a *App) Err() error {
	return a.err
}

// SetDimensions sets the terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.list.SetDimensions(width, max(height-6, 1))
	a.bar.SetWidth(width)
}
