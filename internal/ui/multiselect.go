package ui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rmselect/internal/debug"
	"rmselect/internal/selector"
)

const (
	defaultSelectWidth = 48
	minSelectWidth     = 24
	defaultMaxVisible  = 6
)

// Options configures a MultiSelect. The callbacks return commands so the
// surrounding program decides what a change means; any of them may be nil.
type Options[K comparable, T selector.Option[K]] struct {
	Options         []T
	MaxSelectable   int // selector.Unbounded (0) or negative: no cap
	DefaultSelected []T
	OnChange        func(selection []T) tea.Cmd
	OnInputChange   func(term string) tea.Cmd
	OnScrollEnd     func() tea.Cmd
	Renderer        OptionRenderer[T]
	Loading         bool

	Width          int
	MaxVisible     int // rows shown before the panel scrolls
	Placeholder    string
	ScrollDebounce time.Duration
	Clock          clock.Clock
	// Pointer, when set, delivers every pointer press in the program so the
	// panel can close on presses outside the control.
	Pointer *selector.PointerHub
}

// scrollSettledMsg arrives once the option list stopped scrolling.
type scrollSettledMsg struct{ id int64 }

var multiSelectIDs atomic.Int64

// MultiSelect is a searchable multi-select control: chips for the selected
// items, a text input, and a scrollable panel of options. It keeps its logic
// in a selector.State and turns the state's effects into commands.
type MultiSelect[K comparable, T selector.Option[K]] struct {
	id       int64
	opts     Options[K, T]
	renderer OptionRenderer[T]
	state    selector.State[K, T]

	input    textinput.Model
	spinner  spinner.Model
	spinning bool

	offset           int // first option row in the panel window
	originX, originY int

	debounce    *selector.Debouncer
	settled     chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

// NewMultiSelect builds the control. Call Init (or Mount) before use and
// Close when the control goes away.
func NewMultiSelect[K comparable, T selector.Option[K]](opts Options[K, T]) *MultiSelect[K, T] {
	if opts.Width < minSelectWidth {
		if opts.Width <= 0 {
			opts.Width = defaultSelectWidth
		} else {
			opts.Width = minSelectWidth
		}
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = defaultMaxVisible
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 100
	ti.Focus()

	m := &MultiSelect[K, T]{
		id:       multiSelectIDs.Add(1),
		opts:     opts,
		renderer: opts.Renderer,
		state: selector.New(selector.Config[K, T]{
			Options:         opts.Options,
			MaxSelectable:   opts.MaxSelectable,
			DefaultSelected: opts.DefaultSelected,
			Loading:         opts.Loading,
		}),
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		settled: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	if m.renderer == nil {
		m.renderer = LabelRenderer[K, T]{}
	}
	m.debounce = selector.NewDebouncer(opts.Clock, opts.ScrollDebounce, m.signalSettled)
	m.syncInputWidth()
	return m
}

// Init mounts the control and reports the initial selection through
// OnChange.
func (m *MultiSelect[K, T]) Init() tea.Cmd {
	m.Mount()
	cmds := []tea.Cmd{textinput.Blink, m.waitForSettle()}
	if m.opts.OnChange != nil {
		cmds = append(cmds, m.opts.OnChange(m.state.Selection()))
	}
	cmds = append(cmds, m.startSpinner())
	return tea.Batch(cmds...)
}

// Mount subscribes to the pointer hub. Calling it again is a no-op.
func (m *MultiSelect[K, T]) Mount() {
	if m.opts.Pointer == nil || m.unsubscribe != nil {
		return
	}
	m.unsubscribe = m.opts.Pointer.Subscribe(m.pointerDown)
}

// Close releases the pointer subscription and the scroll timer. No
// scroll-end is reported afterwards.
func (m *MultiSelect[K, T]) Close() {
	m.closeOnce.Do(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		m.debounce.Close()
		close(m.done)
	})
}

func (m *MultiSelect[K, T]) pointerDown(ev selector.PointerEvent) {
	if m.Region().Contains(ev.X, ev.Y) {
		return
	}
	m.state = m.state.PointerDownOutside()
}

// signalSettled runs on the debouncer's timer goroutine.
func (m *MultiSelect[K, T]) signalSettled() {
	select {
	case m.settled <- struct{}{}:
	default:
	}
}

func (m *MultiSelect[K, T]) waitForSettle() tea.Cmd {
	id, settled, done := m.id, m.settled, m.done
	return func() tea.Msg {
		select {
		case <-settled:
			return scrollSettledMsg{id: id}
		case <-done:
			return nil
		}
	}
}

// Update handles keys, mouse presses, the spinner and scroll settling.
func (m *MultiSelect[K, T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scrollSettledMsg:
		if msg.id != m.id {
			return nil
		}
		next := m.waitForSettle()
		if m.opts.OnScrollEnd != nil && m.state.PanelVisible() && m.atEnd() {
			debug.Logf("options scrolled to end (%d rows)", len(m.state.Options()))
			return tea.Batch(next, m.opts.OnScrollEnd())
		}
		return next

	case spinner.TickMsg:
		if msg.ID != m.spinner.ID() || !m.spinning {
			return nil
		}
		if !m.state.Loading() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *MultiSelect[K, T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		return m.press(selector.KeyEscape)
	case msg.String() == "ctrl+o":
		m.state = m.state.ToggleOpen()
		return nil
	}

	if m.state.RowFocused() {
		opt, _ := m.state.FocusedOption()
		action := m.renderer.OptionKey(m.props(opt, m.state.Focus().Index()), msg)
		debug.Logf("row key %q -> %s", msg.String(), action)
		switch action {
		case RowToggle:
			return m.press(selector.KeySpace)
		case RowArrowDown:
			return m.press(selector.KeyArrowDown)
		case RowArrowUp:
			return m.press(selector.KeyArrowUp)
		}
		return nil
	}

	var refocus tea.Cmd
	if !m.state.Focus().OnInput() {
		// the panel closed under a focused row; keys belong to the input again
		m.state = m.state.FocusInput()
		refocus = m.syncFocus()
	}
	return tea.Batch(refocus, m.handleInputKey(msg))
}

func (m *MultiSelect[K, T]) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyDown:
		return m.press(selector.KeyArrowDown)
	case tea.KeyUp:
		return m.press(selector.KeyArrowUp)
	case tea.KeyBackspace:
		if m.input.Value() == "" {
			return m.press(selector.KeyBackspace)
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		next, eff := m.state.Type(after)
		return tea.Batch(cmd, m.apply(next, eff))
	}
	return cmd
}

func (m *MultiSelect[K, T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	x, y := msg.X-m.originX, msg.Y-m.originY
	l := m.layout()

	switch msg.Button {
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelUp:
		if m.state.PanelVisible() && l.panel.Contains(x, y) {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			m.scrollBy(delta)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	selection := m.state.Selection()
	for i, hit := range l.removes {
		if hit.Contains(x, y) && i < len(selection) {
			next, eff := m.state.Remove(selection[i].Key())
			return m.apply(next, eff)
		}
	}
	if l.toggle.Contains(x, y) {
		m.state = m.state.ToggleOpen()
		return nil
	}
	options := m.state.Options()
	for i, hit := range l.rows {
		if hit.Contains(x, y) && m.offset+i < len(options) {
			next, eff := m.state.Toggle(options[m.offset+i])
			return m.apply(next, eff)
		}
	}
	return nil
}

func (m *MultiSelect[K, T]) press(k selector.Key) tea.Cmd {
	next, eff := m.state.Press(k)
	return m.apply(next, eff)
}

// apply installs next and turns its effects into commands. Selections have
// already been capped by the state.
func (m *MultiSelect[K, T]) apply(next selector.State[K, T], eff selector.Effects[T]) tea.Cmd {
	m.state = next
	var cmds []tea.Cmd
	if eff.Evicted > 0 {
		debug.Logf("selection cap %d evicted %d item(s)", m.state.MaxSelectable(), eff.Evicted)
	}
	if eff.Changed && m.opts.OnChange != nil {
		cmds = append(cmds, m.opts.OnChange(eff.Selection))
	}
	if eff.InputChanged && m.opts.OnInputChange != nil {
		cmds = append(cmds, m.opts.OnInputChange(eff.Input))
	}
	cmds = append(cmds, m.syncFocus())
	m.scrollToFocus()
	m.syncInputWidth()
	return tea.Batch(cmds...)
}

// syncFocus gives the text input the cursor exactly when the state says the
// input has focus.
func (m *MultiSelect[K, T]) syncFocus() tea.Cmd {
	onInput := m.state.Focus().OnInput()
	switch {
	case onInput && !m.input.Focused():
		return m.input.Focus()
	case !onInput && m.input.Focused():
		m.input.Blur()
	}
	return nil
}

func (m *MultiSelect[K, T]) syncInputWidth() {
	w := m.layout().flow.inputWidth - 1
	if w < 1 {
		w = 1
	}
	m.input.Width = w
}

func (m *MultiSelect[K, T]) startSpinner() tea.Cmd {
	if !m.state.Loading() || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// SetOptions replaces the option list, typically with a data source's
// latest snapshot.
func (m *MultiSelect[K, T]) SetOptions(options []T, loading bool) tea.Cmd {
	m.state = m.state.SetOptions(options, loading)
	m.clampOffset()
	return m.startSpinner()
}

// SetLoading updates the loading indicator.
func (m *MultiSelect[K, T]) SetLoading(loading bool) tea.Cmd {
	m.state = m.state.SetLoading(loading)
	return m.startSpinner()
}

// SetOrigin records where the control is drawn on screen so pointer
// coordinates can be mapped onto it.
func (m *MultiSelect[K, T]) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetWidth changes the drawn width.
func (m *MultiSelect[K, T]) SetWidth(w int) {
	if w < minSelectWidth {
		w = minSelectWidth
	}
	m.opts.Width = w
	m.syncInputWidth()
}

// Region is the screen area the control occupies, including the panel when
// it is showing.
func (m *MultiSelect[K, T]) Region() selector.Rect {
	l := m.layout()
	r := l.box
	if l.panel.Height > 0 {
		r = r.Union(l.panel)
	}
	r.X += m.originX
	r.Y += m.originY
	return r
}

// Selection returns a copy of the selected items, oldest first.
func (m *MultiSelect[K, T]) Selection() []T {
	return m.state.Selection()
}

// SearchTerm returns the text typed into the input.
func (m *MultiSelect[K, T]) SearchTerm() string {
	return m.state.Search()
}

// PanelVisible reports whether the options panel is drawn.
func (m *MultiSelect[K, T]) PanelVisible() bool {
	return m.state.PanelVisible()
}

// State exposes the underlying state for inspection.
func (m *MultiSelect[K, T]) State() selector.State[K, T] {
	return m.state
}

// Offset is the index of the first option row in the panel window.
func (m *MultiSelect[K, T]) Offset() int {
	return m.offset
}

// Width is the configured outer width in cells.
func (m *MultiSelect[K, T]) Width() int {
	return m.opts.Width
}

func (m *MultiSelect[K, T]) props(opt T, index int) OptionProps[T] {
	return OptionProps[T]{
		SearchTerm: m.state.Search(),
		Option:     opt,
		Selected:   m.state.IsSelected(opt),
		Focused:    m.state.Focus().Index() == index,
		Width:      m.opts.Width - 2,
	}
}

func (m *MultiSelect[K, T]) visibleRows() int {
	n := len(m.state.Options()) - m.offset
	if n > m.opts.MaxVisible {
		n = m.opts.MaxVisible
	}
	if n < 0 {
		n = 0
	}
	return n
}

func (m *MultiSelect[K, T]) atEnd() bool {
	return m.offset+m.visibleRows() >= len(m.state.Options())
}

func (m *MultiSelect[K, T]) maxOffset() int {
	if n := len(m.state.Options()) - m.opts.MaxVisible; n > 0 {
		return n
	}
	return 0
}

func (m *MultiSelect[K, T]) clampOffset() {
	m.offset = min(max(m.offset, 0), m.maxOffset())
}

// scrollBy moves the panel window and restarts the scroll-settle timer when
// the window actually moved.
func (m *MultiSelect[K, T]) scrollBy(delta int) {
	before := m.offset
	m.offset += delta
	m.clampOffset()
	if m.offset != before {
		m.debounce.Trigger()
	}
}

// scrollToFocus keeps the focused row inside the window.
func (m *MultiSelect[K, T]) scrollToFocus() {
	idx := m.state.Focus().Index()
	if idx < 0 {
		return
	}
	switch {
	case idx < m.offset:
		m.scrollBy(idx - m.offset)
	case idx >= m.offset+m.opts.MaxVisible:
		m.scrollBy(idx - m.opts.MaxVisible + 1 - m.offset)
	}
}
