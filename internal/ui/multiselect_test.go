package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"rmselect/internal/selector"
)

type fruit struct {
	id   int
	name string
}

func (f fruit) Key() int      { return f.id }
func (f fruit) Label() string { return f.name }

var testFruits = []fruit{
	{1, "Apple"},
	{2, "Banana"},
	{3, "Cherry"},
	{4, "Date"},
	{5, "Elderberry"},
	{6, "Fig"},
	{7, "Grape"},
	{8, "Honeydew"},
}

// selectRecorder records what the control reported through its callbacks.
type selectRecorder struct {
	changes   [][]fruit
	inputs    []string
	scrollEnd int
}

func (p *selectRecorder) lastChange() []fruit {
	if len(p.changes) == 0 {
		return nil
	}
	return p.changes[len(p.changes)-1]
}

func newTestSelect(t *testing.T, opts Options[int, fruit]) (*MultiSelect[int, fruit], *selectRecorder) {
	t.Helper()
	rec := &selectRecorder{}
	opts.OnChange = func(items []fruit) tea.Cmd {
		rec.changes = append(rec.changes, items)
		return nil
	}
	opts.OnInputChange = func(term string) tea.Cmd {
		rec.inputs = append(rec.inputs, term)
		return nil
	}
	opts.OnScrollEnd = func() tea.Cmd {
		rec.scrollEnd++
		return nil
	}
	if opts.Options == nil {
		opts.Options = testFruits
	}
	if opts.MaxVisible == 0 {
		opts.MaxVisible = 3
	}
	m := NewMultiSelect(opts)
	t.Cleanup(m.Close)
	return m, rec
}

func typeText(m *MultiSelect[int, fruit], text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func pressKey(m *MultiSelect[int, fruit], k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

func click(m *MultiSelect[int, fruit], x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func wheel(m *MultiSelect[int, fruit], x, y int, button tea.MouseButton) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
}

func selectionNames(items []fruit) string {
	names := make([]string, len(items))
	for i, f := range items {
		names[i] = f.name
	}
	return strings.Join(names, ",")
}

func TestMultiSelectInit(t *testing.T) {
	t.Run("ReportsInitialSelection", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{
			DefaultSelected: []fruit{testFruits[0], testFruits[1], testFruits[0]},
		})
		if cmd := m.Init(); cmd == nil {
			t.Fatal("expected init command")
		}
		if got := selectionNames(rec.lastChange()); got != "Apple,Banana" {
			t.Fatalf("expected deduplicated initial selection, got %q", got)
		}
	})

	t.Run("DefaultSelectionCapped", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{
			MaxSelectable:   2,
			DefaultSelected: testFruits[:4],
		})
		if got := selectionNames(m.Selection()); got != "Cherry,Date" {
			t.Fatalf("expected newest two kept, got %q", got)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		m := NewMultiSelect(Options[int, fruit]{})
		defer m.Close()
		if m.Width() != defaultSelectWidth {
			t.Errorf("expected default width %d, got %d", defaultSelectWidth, m.Width())
		}
		if m.opts.MaxVisible != defaultMaxVisible {
			t.Errorf("expected default max visible %d, got %d", defaultMaxVisible, m.opts.MaxVisible)
		}
		if m.PanelVisible() {
			t.Error("expected panel hidden with an empty search")
		}
	})
}

func TestMultiSelectTyping(t *testing.T) {
	t.Run("OpensPanelAndReportsTerm", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "an")
		if m.SearchTerm() != "an" {
			t.Fatalf("expected search term 'an', got %q", m.SearchTerm())
		}
		if got := strings.Join(rec.inputs, "|"); got != "a|an" {
			t.Fatalf("expected input changes a|an, got %q", got)
		}
		if !m.PanelVisible() {
			t.Fatal("expected panel visible after typing")
		}
	})

	t.Run("EscapeKeepsSearch", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "a")
		pressKey(m, tea.KeyEsc)
		if m.PanelVisible() {
			t.Fatal("expected escape to hide the panel")
		}
		if m.SearchTerm() != "a" {
			t.Fatalf("expected search kept, got %q", m.SearchTerm())
		}
	})

	t.Run("TypingReopensHiddenPanel", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "a")
		pressKey(m, tea.KeyEsc)
		typeText(m, "p")
		if !m.PanelVisible() {
			t.Fatal("expected typing to reopen the panel")
		}
		if !m.State().Focus().OnInput() {
			t.Fatal("expected focus on the input after reopening")
		}
	})

	t.Run("CtrlOTogglesPanel", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "a")
		m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
		if m.PanelVisible() {
			t.Fatal("expected ctrl+o to close the panel")
		}
		m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
		if !m.PanelVisible() {
			t.Fatal("expected ctrl+o to reopen the panel")
		}
	})
}

func TestMultiSelectKeyboardSelection(t *testing.T) {
	t.Run("DownThenSpaceToggles", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		pressKey(m, tea.KeyDown)
		if m.State().Focus().Index() != 0 {
			t.Fatalf("expected first row focused, got %d", m.State().Focus().Index())
		}
		if m.input.Focused() {
			t.Error("expected the text input to lose the cursor while a row is focused")
		}
		pressKey(m, tea.KeySpace)
		if got := selectionNames(rec.lastChange()); got != "Apple" {
			t.Fatalf("expected Apple selected, got %q", got)
		}
		pressKey(m, tea.KeySpace)
		if got := selectionNames(m.Selection()); got != "" {
			t.Fatalf("expected second space to deselect, got %q", got)
		}
	})

	t.Run("RowKeysGoThroughRenderer", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		pressKey(m, tea.KeyDown)
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
		if m.State().Focus().Index() != 1 {
			t.Fatalf("expected j to move focus down, got %d", m.State().Focus().Index())
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		if m.SearchTerm() != "e" {
			t.Fatalf("expected unmapped row key to be ignored, got search %q", m.SearchTerm())
		}
	})

	t.Run("UpFromFirstRowReturnsToInput", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		pressKey(m, tea.KeyDown)
		pressKey(m, tea.KeyUp)
		if !m.State().Focus().OnInput() {
			t.Fatal("expected focus back on the input")
		}
		if !m.input.Focused() {
			t.Fatal("expected the text input to regain the cursor")
		}
	})

	t.Run("TypingAfterEscapeFromRowReopens", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		pressKey(m, tea.KeyDown)
		pressKey(m, tea.KeyEsc)
		if m.PanelVisible() {
			t.Fatal("expected esc to close the panel")
		}
		typeText(m, "r")
		if m.SearchTerm() != "er" {
			t.Fatalf("expected typed text to reach the input, got %q", m.SearchTerm())
		}
		if !m.PanelVisible() {
			t.Fatal("expected typing to reopen the panel")
		}
		if !m.State().Focus().OnInput() || !m.input.Focused() {
			t.Fatal("expected focus back on the input")
		}
		if got := rec.inputs; len(got) != 2 || got[1] != "er" {
			t.Fatalf("expected input changes [e er], got %v", got)
		}
	})

	t.Run("TypingAfterOutsidePressFromRowReopens", func(t *testing.T) {
		hub := selector.NewPointerHub()
		m, _ := newTestSelect(t, Options[int, fruit]{Pointer: hub})
		m.Mount()
		typeText(m, "e")
		pressKey(m, tea.KeyDown)
		region := m.Region()
		hub.Dispatch(selector.PointerEvent{X: region.X + region.Width + 5, Y: 0})
		typeText(m, "r")
		if m.SearchTerm() != "er" || !m.PanelVisible() {
			t.Fatalf("expected search %q with panel open, got %q open=%v", "er", m.SearchTerm(), m.PanelVisible())
		}
	})

	t.Run("BackspaceAfterEscapeFromRowEditsInput", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "ap")
		pressKey(m, tea.KeyDown)
		pressKey(m, tea.KeyEsc)
		pressKey(m, tea.KeyBackspace)
		if m.SearchTerm() != "a" {
			t.Fatalf("expected backspace to edit the search, got %q", m.SearchTerm())
		}
	})

	t.Run("DownWithEmptySearchOnlyOpens", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		pressKey(m, tea.KeyDown)
		if !m.State().Focus().OnInput() {
			t.Fatal("expected focus to stay on the input")
		}
		if m.PanelVisible() {
			t.Fatal("expected the panel to stay hidden without a search")
		}
	})

	t.Run("CapEvictsOldest", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{MaxSelectable: 2})
		typeText(m, "e")
		for i := 0; i < 3; i++ {
			pressKey(m, tea.KeyDown)
			pressKey(m, tea.KeySpace)
		}
		if got := selectionNames(rec.lastChange()); got != "Banana,Cherry" {
			t.Fatalf("expected Banana,Cherry after eviction, got %q", got)
		}
		if len(m.Selection()) != 2 {
			t.Fatalf("expected selection capped at 2, got %d", len(m.Selection()))
		}
	})

	t.Run("FocusScrollsWindow", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		for i := 0; i < 5; i++ {
			pressKey(m, tea.KeyDown)
		}
		if m.State().Focus().Index() != 4 {
			t.Fatalf("expected row 4 focused, got %d", m.State().Focus().Index())
		}
		if m.Offset() != 2 {
			t.Fatalf("expected window offset 2, got %d", m.Offset())
		}
	})
}

func TestMultiSelectBackspace(t *testing.T) {
	t.Run("PopsLastSelectionWhenInputEmpty", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{
			DefaultSelected: []fruit{testFruits[0], testFruits[2]},
		})
		pressKey(m, tea.KeyBackspace)
		if got := selectionNames(rec.lastChange()); got != "Apple" {
			t.Fatalf("expected Apple left, got %q", got)
		}
	})

	t.Run("EditsTextFirst", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{
			DefaultSelected: []fruit{testFruits[0]},
		})
		typeText(m, "a")
		pressKey(m, tea.KeyBackspace)
		if m.SearchTerm() != "" {
			t.Fatalf("expected search cleared, got %q", m.SearchTerm())
		}
		if len(m.Selection()) != 1 {
			t.Fatalf("expected selection untouched, got %d items", len(m.Selection()))
		}
		if len(rec.changes) != 0 {
			t.Fatalf("expected no selection change, got %d", len(rec.changes))
		}
	})
}

func TestMultiSelectMouse(t *testing.T) {
	t.Run("RowClickToggles", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		row := m.layout().rows[1]
		click(m, row.X+2, row.Y)
		if got := selectionNames(rec.lastChange()); got != "Banana" {
			t.Fatalf("expected Banana selected, got %q", got)
		}
		click(m, row.X+2, row.Y)
		if len(m.Selection()) != 0 {
			t.Fatal("expected second click to deselect")
		}
	})

	t.Run("ClickHonorsOrigin", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		m.SetOrigin(3, 5)
		typeText(m, "e")
		row := m.layout().rows[0]
		click(m, row.X+3+1, row.Y+5)
		if got := selectionNames(m.Selection()); got != "Apple" {
			t.Fatalf("expected Apple selected through the origin offset, got %q", got)
		}
	})

	t.Run("ChipRemoveButton", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{
			DefaultSelected: []fruit{testFruits[0], testFruits[1]},
		})
		l := m.layout()
		if len(l.removes) != 2 {
			t.Fatalf("expected 2 remove buttons, got %d", len(l.removes))
		}
		click(m, l.removes[0].X, l.removes[0].Y)
		if got := selectionNames(rec.lastChange()); got != "Banana" {
			t.Fatalf("expected Apple removed, got %q", got)
		}
	})

	t.Run("ToggleButton", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		toggle := m.layout().toggle
		click(m, toggle.X, toggle.Y)
		if m.PanelVisible() {
			t.Fatal("expected toggle click to close the panel")
		}
		click(m, toggle.X, toggle.Y)
		if !m.PanelVisible() {
			t.Fatal("expected toggle click to reopen the panel")
		}
	})

	t.Run("ToggleDisabledWithoutOptions", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{Options: []fruit{}})
		typeText(m, "zz")
		toggle := m.layout().toggle
		before := m.State().Open()
		click(m, toggle.X, toggle.Y)
		if m.State().Open() != before {
			t.Fatal("expected disabled toggle to do nothing")
		}
	})

	t.Run("ReleaseIgnored", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		row := m.layout().rows[0]
		m.Update(tea.MouseMsg{X: row.X + 1, Y: row.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		if len(m.Selection()) != 0 {
			t.Fatal("expected release to be ignored")
		}
	})
}

func TestMultiSelectPointerOutside(t *testing.T) {
	hub := selector.NewPointerHub()
	m, _ := newTestSelect(t, Options[int, fruit]{Pointer: hub})
	m.Init()
	if hub.Len() != 1 {
		t.Fatalf("expected one subscriber after init, got %d", hub.Len())
	}
	typeText(m, "e")

	region := m.Region()
	hub.Dispatch(selector.PointerEvent{X: region.X + 1, Y: region.Y + region.Height - 2})
	if !m.PanelVisible() {
		t.Fatal("expected press inside the control to keep the panel open")
	}

	hub.Dispatch(selector.PointerEvent{X: region.X + region.Width + 5, Y: 0})
	if m.PanelVisible() {
		t.Fatal("expected press outside the control to close the panel")
	}
	if m.SearchTerm() != "e" {
		t.Fatalf("expected search kept, got %q", m.SearchTerm())
	}

	m.Close()
	if hub.Len() != 0 {
		t.Fatalf("expected close to unsubscribe, got %d subscribers", hub.Len())
	}
}

// settle waits for the control's scroll-settle command to produce a message.
func settle(t *testing.T, m *MultiSelect[int, fruit]) tea.Msg {
	t.Helper()
	out := make(chan tea.Msg, 1)
	go func() { out <- m.waitForSettle()() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(time.Second):
		t.Fatal("scroll never settled")
		return nil
	}
}

func TestMultiSelectScrollEnd(t *testing.T) {
	t.Run("FiresWhenSettledAtEnd", func(t *testing.T) {
		clk := clock.NewMock()
		m, rec := newTestSelect(t, Options[int, fruit]{Clock: clk, ScrollDebounce: 100 * time.Millisecond})
		typeText(m, "e")
		panel := m.layout().panel
		for i := 0; i < 10; i++ {
			wheel(m, panel.X+2, panel.Y+2, tea.MouseButtonWheelDown)
		}
		if m.Offset() != len(testFruits)-3 {
			t.Fatalf("expected offset clamped to %d, got %d", len(testFruits)-3, m.Offset())
		}
		clk.Add(100 * time.Millisecond)
		m.Update(settle(t, m))
		if rec.scrollEnd != 1 {
			t.Fatalf("expected one scroll-end, got %d", rec.scrollEnd)
		}
	})

	t.Run("NotFiredAwayFromEnd", func(t *testing.T) {
		clk := clock.NewMock()
		m, rec := newTestSelect(t, Options[int, fruit]{Clock: clk})
		typeText(m, "e")
		panel := m.layout().panel
		wheel(m, panel.X+2, panel.Y+2, tea.MouseButtonWheelDown)
		clk.Add(selector.DefaultScrollQuiet)
		m.Update(settle(t, m))
		if rec.scrollEnd != 0 {
			t.Fatalf("expected no scroll-end mid-list, got %d", rec.scrollEnd)
		}
	})

	t.Run("WheelOutsidePanelIgnored", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{Clock: clock.NewMock()})
		typeText(m, "e")
		wheel(m, 2, 1, tea.MouseButtonWheelDown)
		if m.Offset() != 0 {
			t.Fatalf("expected offset 0, got %d", m.Offset())
		}
		if m.debounce.Pending() {
			t.Fatal("expected no scroll timer")
		}
	})

	t.Run("OtherControlsMessageIgnored", func(t *testing.T) {
		m, rec := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		if cmd := m.Update(scrollSettledMsg{id: m.id + 1000}); cmd != nil {
			t.Fatal("expected foreign settle message to be ignored")
		}
		if rec.scrollEnd != 0 {
			t.Fatal("expected no scroll-end")
		}
	})

	t.Run("CloseStopsWaiting", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		m.Close()
		if msg := m.waitForSettle()(); msg != nil {
			t.Fatalf("expected nil message after close, got %T", msg)
		}
	})
}

func TestMultiSelectView(t *testing.T) {
	t.Run("PlaceholderAndChips", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{
			Placeholder:     "Pick fruit",
			DefaultSelected: []fruit{testFruits[2]},
		})
		view := ansi.Strip(m.View())
		if !strings.Contains(view, "Cherry") {
			t.Errorf("expected chip label in view:\n%s", view)
		}
		if !strings.Contains(view, chipRemove) {
			t.Errorf("expected chip remove glyph in view:\n%s", view)
		}
	})

	t.Run("PanelRowsAndFooter", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "e")
		view := ansi.Strip(m.View())
		for _, name := range []string{"Apple", "Banana", "Cherry"} {
			if !strings.Contains(view, name) {
				t.Errorf("expected %q in panel:\n%s", name, view)
			}
		}
		if strings.Contains(view, "Date") {
			t.Errorf("expected rows past the window to be hidden:\n%s", view)
		}
		if !strings.Contains(view, "▼ 5 more") {
			t.Errorf("expected more-rows footer:\n%s", view)
		}
		if got := len(strings.Split(m.View(), "\n")); got != m.Height() {
			t.Errorf("expected Height %d to match rendered lines %d", m.Height(), got)
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "zz")
		m.SetOptions(nil, false)
		view := ansi.Strip(m.View())
		if !strings.Contains(view, "No results found") {
			t.Errorf("expected no-results notice:\n%s", view)
		}
	})

	t.Run("LoadingSuppressesNoResults", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		typeText(m, "zz")
		if cmd := m.SetOptions(nil, true); cmd == nil {
			t.Error("expected spinner tick when loading starts")
		}
		view := ansi.Strip(m.View())
		if strings.Contains(view, "No results found") {
			t.Errorf("expected no-results hidden while loading:\n%s", view)
		}
	})

	t.Run("SetWidthClamps", func(t *testing.T) {
		m, _ := newTestSelect(t, Options[int, fruit]{})
		m.SetWidth(3)
		if m.Width() != minSelectWidth {
			t.Fatalf("expected width clamped to %d, got %d", minSelectWidth, m.Width())
		}
		for i, line := range strings.Split(m.View(), "\n") {
			if w := ansi.StringWidth(line); w != minSelectWidth {
				t.Errorf("line %d width %d, want %d", i, w, minSelectWidth)
			}
		}
	})
}
