package selector

// InputFocused is the focus index used when keyboard focus is on the text input.
const InputFocused = -1

// Focus tracks which option row has keyboard focus. It only knows the number
// of rows, not the rows themselves; callers must Resize it whenever the option
// list changes.
type Focus struct {
	index int
	count int
}

// NewFocus returns a focus on the input for a list of count rows.
func NewFocus(count int) Focus {
	if count < 0 {
		count = 0
	}
	return Focus{index: InputFocused, count: count}
}

// Index returns the focused row, or InputFocused.
func (f Focus) Index() int {
	return f.index
}

// Count returns the number of rows the focus is validated against.
func (f Focus) Count() int {
	return f.count
}

// OnInput reports whether the text input holds focus.
func (f Focus) OnInput() bool {
	return f.index == InputFocused
}

// Next moves focus one row down, saturating at the last row. From the input
// it lands on row 0 when there is at least one row.
func (f Focus) Next() Focus {
	if f.count == 0 {
		f.index = InputFocused
		return f
	}
	if f.index < f.count-1 {
		f.index++
	}
	return f
}

// Prev moves focus one row up. From row 0 focus goes back to the input and
// toInput is true so the caller can refocus the text field.
func (f Focus) Prev() (next Focus, toInput bool) {
	switch {
	case f.index == 0:
		f.index = InputFocused
		return f, true
	case f.index > 0:
		f.index--
	}
	return f, false
}

// Resize revalidates the focus against a new row count. An index that no
// longer exists falls back to the input.
func (f Focus) Resize(count int) Focus {
	if count < 0 {
		count = 0
	}
	f.count = count
	if f.index >= count {
		f.index = InputFocused
	}
	return f
}
