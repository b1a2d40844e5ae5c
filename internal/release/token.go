package release

import "fmt"

// Category classifies a token.
type Category int

const (
	BracketOpen Category = iota
	BracketClosed
	Delimiter
	// Unknown tokens are not classified yet and are eligible for every rule.
	Unknown
	// Identifier tokens already had their metadata extracted. They are
	// skipped by the rules but still take part in text building.
	Identifier
	// Invalid tokens were absorbed by a merge and are logically removed.
	Invalid
)

func (c Category) String() string {
	switch c {
	case BracketOpen:
		return "BracketOpen"
	case BracketClosed:
		return "BracketClosed"
	case Delimiter:
		return "Delimiter"
	case Unknown:
		return "Unknown"
	case Identifier:
		return "Identifier"
	case Invalid:
		return "Invalid"
	default:
		return "Category(" + fmt.Sprint(int(c)) + ")"
	}
}

type record struct {
	category Category
	text     Text
	enclosed bool
}

// Token is a handle to a slot in a Tokens arena. Two tokens are equal only
// when they refer to the same slot; changes made through one handle are
// visible through every other. The zero Token refers to nothing and behaves
// as an empty Invalid token.
type Token struct {
	seq *Tokens
	id  int
}

// IsNone reports whether t refers to no token.
func (t Token) IsNone() bool {
	return t.seq == nil
}

func (t Token) rec() *record {
	if t.seq == nil {
		return nil
	}
	return &t.seq.arena[t.id]
}

// Category returns the token category, Invalid for the zero Token.
func (t Token) Category() Category {
	if r := t.rec(); r != nil {
		return r.category
	}
	return Invalid
}

// Text returns the token text, empty for the zero Token.
func (t Token) Text() Text {
	if r := t.rec(); r != nil {
		return r.text
	}
	return Text{}
}

// Enclosed reports whether the token lies inside a bracket pair.
func (t Token) Enclosed() bool {
	if r := t.rec(); r != nil {
		return r.enclosed
	}
	return false
}

func (t Token) IsUnknown() bool       { return t.Category() == Unknown }
func (t Token) IsIdentifier() bool    { return t.Category() == Identifier }
func (t Token) IsOpenBracket() bool   { return t.Category() == BracketOpen }
func (t Token) IsClosedBracket() bool { return t.Category() == BracketClosed }
func (t Token) IsDelimiter() bool     { return t.Category() == Delimiter }

// IsValid reports whether the token still takes part in the sequence.
func (t Token) IsValid() bool {
	return t.Category() != Invalid
}

func (t Token) setCategory(c Category) {
	if r := t.rec(); r != nil {
		r.category = c
	}
}

// SetUnknown makes the token eligible for classification again.
func (t Token) SetUnknown() { t.setCategory(Unknown) }

// SetIdentifier marks the token as classified.
func (t Token) SetIdentifier() { t.setCategory(Identifier) }

func (t Token) String() string {
	if t.IsNone() {
		return "None"
	}
	if t.Enclosed() {
		return fmt.Sprintf("[%s(%s)]", t.Category(), t.Text())
	}
	return fmt.Sprintf("%s(%s)", t.Category(), t.Text())
}
