package release

import (
	"regexp"
	"strings"
)

// Text is a view into a shared, immutable backing string. Slicing a Text
// never copies the backing; only Concat allocates.
type Text struct {
	buf        string
	start, end int
}

// NewText returns a Text spanning all of s.
func NewText(s string) Text {
	return Text{buf: s, start: 0, end: len(s)}
}

// String materializes the view.
func (t Text) String() string {
	return t.buf[t.start:t.end]
}

// Len returns the length of the view in bytes.
func (t Text) Len() int {
	return t.end - t.start
}

// IsEmpty reports whether the view is empty.
func (t Text) IsEmpty() bool {
	return t.end <= t.start
}

// Slice returns the sub-view [start, end) relative to t. Out of range or
// inverted bounds yield an empty Text.
func (t Text) Slice(start, end int) Text {
	if end <= start || start < 0 || t.start+end > t.end {
		return Text{}
	}
	return Text{buf: t.buf, start: t.start + start, end: t.start + end}
}

// SplitOnce splits t around the first match of re. ok is false when re does
// not match, in which case prefix is t itself.
func (t Text) SplitOnce(re *regexp.Regexp) (prefix, match, suffix Text, ok bool) {
	loc := re.FindStringIndex(t.String())
	if loc == nil {
		return t, Text{}, Text{}, false
	}
	return t.Slice(0, loc[0]), t.Slice(loc[0], loc[1]), t.Slice(loc[1], t.Len()), true
}

// Concat returns a new Text backed by a freshly allocated string holding t
// followed by other.
func (t Text) Concat(other Text) Text {
	var sb strings.Builder
	sb.Grow(t.Len() + other.Len())
	sb.WriteString(t.String())
	sb.WriteString(other.String())
	return NewText(sb.String())
}

// Equal compares the materialized contents.
func (t Text) Equal(other Text) bool {
	return t.String() == other.String()
}

// Compare orders two views by their materialized contents.
func (t Text) Compare(other Text) int {
	return strings.Compare(t.String(), other.String())
}

// IsASCIIDigit reports whether t is non-empty and made only of 0-9.
func (t Text) IsASCIIDigit() bool {
	if t.IsEmpty() {
		return false
	}
	for _, c := range []byte(t.String()) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
