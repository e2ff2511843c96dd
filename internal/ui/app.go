package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rmselect/internal/debug"
	appErrors "rmselect/internal/errors"
	"rmselect/internal/rickmorty"
	"rmselect/internal/selector"
	"rmselect/internal/ui/theme"
)

const (
	appMaxSelectWidth = 72
	// the control sits below a header line and a blank line
	selectOriginX = 1
	selectOriginY = 2
)

const descriptionTemplate = `Two pieces work together on this screen:

- **MultiSelect**: a generic searchable multi-select with chips, keyboard focus and a scrolling option list.
- **Rick and Morty binding**: feeds it characters from the public API one page at a time and draws each row with its episode count.

%s Scrolling to the end of the list loads the next page.`

// Config configures the application.
type Config struct {
	Source         rickmorty.Source
	MaxSelectable  int
	MaxVisible     int
	ScrollDebounce time.Duration
	Clock          clock.Clock
	OutputFormat   string
	Version        string

	// SaveTheme persists a theme switch; nil skips saving.
	SaveTheme func(name string) error
	// WriteClipboard defaults to the system clipboard.
	WriteClipboard func(text string) error
}

type (
	searchChangedMsg    struct{ term string }
	selectionChangedMsg struct{ items []rickmorty.Character }
	loadMoreMsg         struct{}
	pageLoadedMsg       struct {
		req  rickmorty.Request
		page rickmorty.Page
		err  error
	}
	themeSavedMsg struct {
		name string
		err  error
	}
	copiedMsg struct {
		count int
		err   error
	}
)

// App is the Bubble Tea model of the character picker.
type App struct {
	cfg    Config
	keys   KeyMap
	ctx    context.Context
	cancel context.CancelFunc

	pager    *rickmorty.Pager
	hub      *selector.PointerHub
	sel      *MultiSelect[int, rickmorty.Character]
	selected []rickmorty.Character

	width, height int
	showHelp      bool
	status        string
	statusErr     bool

	// rendered description, keyed by format, width and theme
	descKey, desc string
}

// NewApp wires a MultiSelect to the pager and the data source.
func NewApp(cfg Config) *App {
	if cfg.WriteClipboard == nil {
		cfg.WriteClipboard = clipboard.WriteAll
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		ctx:    ctx,
		cancel: cancel,
		pager:  rickmorty.NewPager(),
		hub:    selector.NewPointerHub(),
	}
	a.sel = NewMultiSelect(Options[int, rickmorty.Character]{
		MaxSelectable: cfg.MaxSelectable,
		OnChange: func(items []rickmorty.Character) tea.Cmd {
			return func() tea.Msg { return selectionChangedMsg{items: items} }
		},
		OnInputChange: func(term string) tea.Cmd {
			return func() tea.Msg { return searchChangedMsg{term: term} }
		},
		OnScrollEnd: func() tea.Cmd {
			return func() tea.Msg { return loadMoreMsg{} }
		},
		Renderer:       CharacterRow{},
		Width:          appMaxSelectWidth,
		MaxVisible:     cfg.MaxVisible,
		Placeholder:    "Search characters…",
		ScrollDebounce: cfg.ScrollDebounce,
		Clock:          cfg.Clock,
		Pointer:        a.hub,
	})
	a.sel.SetOrigin(selectOriginX, selectOriginY)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.sel.Init()
}

// Selection returns the characters picked so far.
func (a *App) Selection() []rickmorty.Character {
	return a.sel.Selection()
}

// Close cancels in-flight fetches and releases the control.
func (a *App) Close() {
	a.cancel()
	a.sel.Close()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.sel.SetWidth(min(appMaxSelectWidth, msg.Width-2*selectOriginX))
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel() {
			a.hub.Dispatch(selector.PointerEvent{X: msg.X, Y: msg.Y})
		}
		return a, a.sel.Update(msg)

	case searchChangedMsg:
		req, ok := a.pager.SetTerm(msg.term)
		cmd := a.sel.SetOptions(a.pager.Characters(), a.pager.Loading())
		if !ok {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.fetch(req))

	case loadMoreMsg:
		req, ok := a.pager.LoadMore()
		if !ok {
			return a, nil
		}
		return a, tea.Batch(a.sel.SetLoading(true), a.fetch(req))

	case pageLoadedMsg:
		if !a.pager.Apply(msg.req, msg.page, msg.err) {
			debug.Logf("dropped stale page %d for %q", msg.req.Page, msg.req.Term)
			return a, nil
		}
		if msg.err != nil {
			debug.Logf("page %d for %q failed: %v", msg.req.Page, msg.req.Term, msg.err)
			a.setStatus(fetchErrorText(msg.err), true)
		} else {
			debug.Logf("page %d for %q: %d characters", msg.req.Page, msg.req.Term, len(msg.page.Results))
			if a.statusErr {
				a.setStatus("", false)
			}
		}
		return a, a.sel.SetOptions(a.pager.Characters(), a.pager.Loading())

	case selectionChangedMsg:
		a.selected = msg.items
		debug.Logf("selection: %v", msg.items)
		return a, nil

	case themeSavedMsg:
		if msg.err != nil {
			a.setStatus("Theme "+msg.name+" not saved: "+appErrors.Summary(msg.err), true)
		} else {
			a.setStatus("Theme: "+msg.name, false)
		}
		return a, nil

	case copiedMsg:
		switch {
		case msg.err != nil:
			a.setStatus("Copy failed: "+msg.err.Error(), true)
		case msg.count == 0:
			a.setStatus("Nothing selected to copy", false)
		default:
			a.setStatus(fmt.Sprintf("Copied %d name(s) to the clipboard", msg.count), false)
		}
		return a, nil
	}

	return a, a.sel.Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Quit) {
		a.Close()
		return tea.Quit
	}
	if a.showHelp {
		if key.Matches(msg, a.keys.Help, a.keys.Close) {
			a.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(msg, a.keys.Theme):
		return a.cycleTheme()
	case key.Matches(msg, a.keys.Copy):
		return a.copySelection()
	}
	return a.sel.Update(msg)
}

func (a *App) fetch(req rickmorty.Request) tea.Cmd {
	ctx, src := a.ctx, a.cfg.Source
	return func() tea.Msg {
		if src == nil {
			return pageLoadedMsg{req: req, err: appErrors.New(appErrors.CodeConfigurationError, "no data source", nil)}
		}
		defer debug.Since(fmt.Sprintf("fetch %q page %d", req.Term, req.Page), time.Now())
		page, err := src.FetchPage(ctx, req.Term, req.Page)
		return pageLoadedMsg{req: req, page: page, err: err}
	}
}

func (a *App) cycleTheme() tea.Cmd {
	name := theme.Cycle()
	save := a.cfg.SaveTheme
	return func() tea.Msg {
		if save == nil {
			return themeSavedMsg{name: name}
		}
		return themeSavedMsg{name: name, err: save(name)}
	}
}

func (a *App) copySelection() tea.Cmd {
	names := make([]string, 0, len(a.selected))
	for _, c := range a.selected {
		names = append(names, c.Name)
	}
	write := a.cfg.WriteClipboard
	return func() tea.Msg {
		if len(names) == 0 {
			return copiedMsg{}
		}
		return copiedMsg{count: len(names), err: write(strings.Join(names, ", "))}
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status, a.statusErr = text, isErr
}

// fetchErrorText classifies a data-source failure for the status line.
func fetchErrorText(err error) string {
	switch appErrors.CodeOf(err) {
	case appErrors.CodeRateLimited:
		return "The API is rate limiting requests; try again shortly"
	case appErrors.CodeDecodeFailed:
		return "The API sent a response that could not be read"
	case appErrors.CodeFetchFailed:
		return "Could not load characters: " + appErrors.Summary(err)
	}
	return "Could not load characters: " + err.Error()
}
