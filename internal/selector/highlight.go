package selector

import "unicode"

// Segment is one run of text in a highlighted label.
type Segment struct {
	Text       string
	Emphasized bool
}

// Highlight splits text around the first case-insensitive occurrence of query.
// The emphasized segment keeps the casing of text. An empty query, or one that
// does not occur, yields a single plain segment.
func Highlight(text, query string) []Segment {
	start, end := indexFold(text, query)
	if start < 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 3)
	if start > 0 {
		segments = append(segments, Segment{Text: text[:start]})
	}
	segments = append(segments, Segment{Text: text[start:end], Emphasized: true})
	if end < len(text) {
		segments = append(segments, Segment{Text: text[end:]})
	}
	return segments
}

// indexFold returns the byte range of the first rune-wise case-insensitive
// match of query in text, or -1, -1.
func indexFold(text, query string) (int, int) {
	if query == "" {
		return -1, -1
	}
	q := []rune(query)
	for i := range q {
		q[i] = unicode.ToLower(q[i])
	}

	// offsets[k] is the byte offset of the k-th rune of text.
	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for off, r := range text {
		runes = append(runes, unicode.ToLower(r))
		offsets = append(offsets, off)
	}
	offsets = append(offsets, len(text))

	for i := 0; i+len(q) <= len(runes); i++ {
		match := true
		for j := range q {
			if runes[i+j] != q[j] {
				match = false
				break
			}
		}
		if match {
			return offsets[i], offsets[i+len(q)]
		}
	}
	return -1, -1
}

// PlainText joins segments back into the original string.
func PlainText(segments []Segment) string {
	n := 0
	for _, s := range segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
