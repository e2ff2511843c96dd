package selector

// Unbounded disables the selection cap. Any max <= 0 is treated the same way.
const Unbounded = 0

// EnforceCap trims selection to its newest max entries, evicting from the
// front. It reports whether anything was evicted. The returned slice never
// aliases the input when entries were dropped.
func EnforceCap[T any](selection []T, max int) ([]T, bool) {
	if max <= Unbounded || len(selection) <= max {
		return selection, false
	}
	kept := make([]T, max)
	copy(kept, selection[len(selection)-max:])
	return kept, true
}

// Dedupe drops later entries whose key was already seen. First occurrence wins.
func Dedupe[K comparable, T Option[K]](items []T) []T {
	if len(items) < 2 {
		return items
	}
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := item.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
