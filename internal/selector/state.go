package selector

// Key is a key press the control reacts to. Printable input arrives through
// State.Type instead.
type Key int

const (
	KeyArrowDown Key = iota
	KeyArrowUp
	KeySpace
	KeyEscape
	KeyBackspace
)

func (k Key) String() string {
	switch k {
	case KeyArrowDown:
		return "down"
	case KeyArrowUp:
		return "up"
	case KeySpace:
		return "space"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	}
	return "unknown"
}

// Effects describes what a transition asks of the outside world.
type Effects[T any] struct {
	// Changed is set when the committed selection differs from the previous
	// one. Selection then holds a copy of the capped selection.
	Changed   bool
	Selection []T
	// Evicted counts entries the cap dropped during this transition.
	Evicted int

	// InputChanged is set on every keystroke that edits the search term.
	InputChanged bool
	Input        string

	// FocusInput asks the view to give keyboard focus back to the text input.
	FocusInput bool
}

// Config seeds a State.
type Config[K comparable, T Option[K]] struct {
	Options         []T
	MaxSelectable   int
	DefaultSelected []T
	Loading         bool
}

// State is the control's whole state. Transitions are methods that return the
// next State and the Effects to perform; the receiver is never modified, and
// slices are replaced rather than mutated so older values stay valid.
type State[K comparable, T Option[K]] struct {
	selection []T
	search    string
	open      bool
	focus     Focus
	options   []T
	loading   bool
	max       int
}

// New builds the initial state. The default selection is deduplicated and
// capped; the panel starts open.
func New[K comparable, T Option[K]](cfg Config[K, T]) State[K, T] {
	options := Dedupe[K](cfg.Options)
	selection, _ := EnforceCap(Dedupe[K](cfg.DefaultSelected), cfg.MaxSelectable)
	return State[K, T]{
		selection: cloneSlice(selection),
		open:      true,
		focus:     NewFocus(len(options)),
		options:   options,
		loading:   cfg.Loading,
		max:       cfg.MaxSelectable,
	}
}

// Selection returns a copy of the committed selection in insertion order.
func (s State[K, T]) Selection() []T {
	return cloneSlice(s.selection)
}

// Len returns the number of selected items.
func (s State[K, T]) Len() int {
	return len(s.selection)
}

// Search returns the current search term.
func (s State[K, T]) Search() string {
	return s.search
}

// Open reports the visibility state of the options panel.
func (s State[K, T]) Open() bool {
	return s.open
}

// Focus returns the keyboard focus.
func (s State[K, T]) Focus() Focus {
	return s.focus
}

// Options returns the current option list. Callers must not modify it.
func (s State[K, T]) Options() []T {
	return s.options
}

// Loading reports the advisory loading flag.
func (s State[K, T]) Loading() bool {
	return s.loading
}

// MaxSelectable returns the configured cap; zero means unbounded.
func (s State[K, T]) MaxSelectable() int {
	if s.max < 0 {
		return Unbounded
	}
	return s.max
}

// IsSelected reports whether an option with the same key is selected.
func (s State[K, T]) IsSelected(opt T) bool {
	return s.indexOf(opt.Key()) >= 0
}

// PanelVisible reports whether the options panel should be drawn.
func (s State[K, T]) PanelVisible() bool {
	return s.search != "" && s.open && len(s.options) > 0
}

// NoResults reports whether the "no results" indicator should be drawn.
func (s State[K, T]) NoResults() bool {
	return s.search != "" && !s.loading && len(s.options) == 0
}

// ToggleEnabled reports whether the expand/collapse affordance is usable.
func (s State[K, T]) ToggleEnabled() bool {
	return len(s.options) > 0
}

// RowFocused reports whether a visible option row holds keyboard focus.
func (s State[K, T]) RowFocused() bool {
	return !s.focus.OnInput() && s.PanelVisible()
}

// FocusedOption returns the option under keyboard focus, if any.
func (s State[K, T]) FocusedOption() (T, bool) {
	var zero T
	i := s.focus.Index()
	if i < 0 || i >= len(s.options) {
		return zero, false
	}
	return s.options[i], true
}

// Type records a new search term. A hidden panel is reopened and focus
// returns to the input.
func (s State[K, T]) Type(text string) (State[K, T], Effects[T]) {
	eff := Effects[T]{InputChanged: true, Input: text}
	s.search = text
	if !s.open {
		s.open = true
		s.focus = NewFocus(len(s.options))
		eff.FocusInput = true
	}
	return s, eff
}

// FocusInput moves keyboard focus back to the text input. Open and the
// selection are left alone.
func (s State[K, T]) FocusInput() State[K, T] {
	s.focus = NewFocus(len(s.options))
	return s
}

// Press applies a key press. Space only acts on a visible focused row, ArrowUp
// only while a row holds focus, and Backspace only from the input.
func (s State[K, T]) Press(k Key) (State[K, T], Effects[T]) {
	switch k {
	case KeyArrowDown:
		s.open = true
		if s.PanelVisible() {
			s.focus = s.focus.Next()
		}
		return s, Effects[T]{}

	case KeyArrowUp:
		if s.focus.OnInput() {
			return s, Effects[T]{}
		}
		var toInput bool
		s.focus, toInput = s.focus.Prev()
		return s, Effects[T]{FocusInput: toInput}

	case KeySpace:
		opt, ok := s.FocusedOption()
		if !ok || !s.PanelVisible() {
			return s, Effects[T]{}
		}
		return s.Toggle(opt)

	case KeyEscape:
		s.open = false
		return s, Effects[T]{}

	case KeyBackspace:
		if !s.focus.OnInput() || s.search != "" || len(s.selection) == 0 {
			return s, Effects[T]{}
		}
		return s.commit(s.selection[:len(s.selection)-1])
	}
	return s, Effects[T]{}
}

// Toggle adds opt when absent and removes it when present. Both the keyboard
// and the mouse go through here.
func (s State[K, T]) Toggle(opt T) (State[K, T], Effects[T]) {
	if i := s.indexOf(opt.Key()); i >= 0 {
		return s.commit(removeAt(s.selection, i))
	}
	next := make([]T, 0, len(s.selection)+1)
	next = append(next, s.selection...)
	next = append(next, opt)
	return s.commit(next)
}

// Remove drops the selected item with the given key, as the chip's remove
// button does. Unknown keys are ignored.
func (s State[K, T]) Remove(key K) (State[K, T], Effects[T]) {
	i := s.indexOf(key)
	if i < 0 {
		return s, Effects[T]{}
	}
	return s.commit(removeAt(s.selection, i))
}

// ToggleOpen flips the panel visibility. It does nothing while there are no
// options, matching the disabled affordance.
func (s State[K, T]) ToggleOpen() State[K, T] {
	if !s.ToggleEnabled() {
		return s
	}
	s.open = !s.open
	return s
}

// PointerDownOutside closes the panel. Search term and selection are kept.
func (s State[K, T]) PointerDownOutside() State[K, T] {
	s.open = false
	return s
}

// SetOptions installs a new option snapshot from the data source. Duplicate
// keys keep their first occurrence, and focus falls back to the input when
// its row no longer exists. The selection is left alone.
func (s State[K, T]) SetOptions(options []T, loading bool) State[K, T] {
	s.options = Dedupe[K](options)
	s.loading = loading
	s.focus = s.focus.Resize(len(s.options))
	return s
}

// SetLoading updates the advisory loading flag.
func (s State[K, T]) SetLoading(loading bool) State[K, T] {
	s.loading = loading
	return s
}

// commit installs next as the selection after enforcing the cap.
func (s State[K, T]) commit(next []T) (State[K, T], Effects[T]) {
	capped, evicted := EnforceCap(next, s.max)
	eff := Effects[T]{}
	if evicted {
		eff.Evicted = len(next) - len(capped)
	}
	if !sameKeys[K](s.selection, capped) {
		eff.Changed = true
		eff.Selection = cloneSlice(capped)
	}
	s.selection = capped
	return s, eff
}

func (s State[K, T]) indexOf(key K) int {
	for i, item := range s.selection {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func sameKeys[K comparable, T Option[K]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key() != b[i].Key() {
			return false
		}
	}
	return true
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
