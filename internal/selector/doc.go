// Package selector holds the state behind the multi-select control: the
// highlight formatter, the selection cap, the keyboard focus machine and the
// State record whose methods are the control's transitions.
//
// Nothing here knows about terminals. The ui package drives a State from
// Bubble Tea messages and turns the returned Effects into commands.
package selector

// Option is anything the control can list. Key identifies the option across
// page loads; Label is the text shown and searched.
type Option[K comparable] interface {
	Key() K
	Label() string
}
