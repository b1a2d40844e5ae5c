package release

import "strings"

// Tokens is an ordered sequence of token handles backed by an arena of
// token records. Replaced and merged slots stay in the arena so handles held
// by a running pass never dangle.
type Tokens struct {
	arena []record
	order []Token
}

// NewTokens returns a sequence holding a single non-enclosed Unknown token
// spanning name.
func NewTokens(name string) *Tokens {
	ts := &Tokens{}
	ts.order = append(ts.order, ts.NewToken(Unknown, NewText(name), false))
	return ts
}

// NewToken allocates a token in the arena. The token is not part of the
// sequence until it is passed to Replace.
func (ts *Tokens) NewToken(category Category, text Text, enclosed bool) Token {
	ts.arena = append(ts.arena, record{category: category, text: text, enclosed: enclosed})
	return Token{seq: ts, id: len(ts.arena) - 1}
}

// Len returns the number of handles in the sequence.
func (ts *Tokens) Len() int {
	return len(ts.order)
}

func (ts *Tokens) indexOf(t Token) int {
	if t.seq != ts {
		return -1
	}
	for i, it := range ts.order {
		if it == t {
			return i
		}
	}
	return -1
}

func (ts *Tokens) findFirst(pred func(Token) bool) Token {
	for _, it := range ts.order {
		if pred(it) {
			return it
		}
	}
	return Token{}
}

func (ts *Tokens) findPrev(t Token, pred func(Token) bool) Token {
	idx := ts.indexOf(t)
	for i := idx - 1; i >= 0; i-- {
		if pred(ts.order[i]) {
			return ts.order[i]
		}
	}
	return Token{}
}

func (ts *Tokens) findNext(t Token, pred func(Token) bool) Token {
	idx := ts.indexOf(t)
	if idx < 0 {
		return Token{}
	}
	for i := idx + 1; i < len(ts.order); i++ {
		if pred(ts.order[i]) {
			return ts.order[i]
		}
	}
	return Token{}
}

func isUnknown(t Token) bool { return t.Category() == Unknown }
func isValid(t Token) bool   { return t.Category() != Invalid }

func isNotDelimiter(t Token) bool {
	c := t.Category()
	return c != Invalid && c != Delimiter
}

func isBracketOrIdentifier(t Token) bool {
	switch t.Category() {
	case Identifier, BracketOpen, BracketClosed:
		return true
	}
	return false
}

// All returns a snapshot of the sequence.
func (ts *Tokens) All() []Token {
	out := make([]Token, len(ts.order))
	copy(out, ts.order)
	return out
}

// Unknowns returns a snapshot of the Unknown tokens.
func (ts *Tokens) Unknowns() []Token {
	var out []Token
	for _, it := range ts.order {
		if it.IsUnknown() {
			out = append(out, it)
		}
	}
	return out
}

// Range returns the tokens in [l, r). Missing bounds give an empty range.
func (ts *Tokens) Range(l, r Token) []Token {
	begin, end := ts.indexOf(l), ts.indexOf(r)
	if begin < 0 || end < 0 || end <= begin {
		return nil
	}
	out := make([]Token, end-begin)
	copy(out, ts.order[begin:end])
	return out
}

// From returns the tokens from start to the end of the sequence.
func (ts *Tokens) From(start Token) []Token {
	begin := ts.indexOf(start)
	if begin < 0 {
		return nil
	}
	out := make([]Token, len(ts.order)-begin)
	copy(out, ts.order[begin:])
	return out
}

func (ts *Tokens) FirstOpenBracket() Token {
	return ts.findFirst(func(t Token) bool { return t.IsOpenBracket() })
}

func (ts *Tokens) FirstUnknown() Token {
	return ts.findFirst(isUnknown)
}

func (ts *Tokens) PrevUnknown(t Token) Token      { return ts.findPrev(t, isUnknown) }
func (ts *Tokens) PrevValid(t Token) Token        { return ts.findPrev(t, isValid) }
func (ts *Tokens) PrevNotDelimiter(t Token) Token { return ts.findPrev(t, isNotDelimiter) }
func (ts *Tokens) NextUnknown(t Token) Token      { return ts.findNext(t, isUnknown) }
func (ts *Tokens) NextValid(t Token) Token        { return ts.findNext(t, isValid) }
func (ts *Tokens) NextNotDelimiter(t Token) Token { return ts.findNext(t, isNotDelimiter) }

// NextEnclosedNotDelimiter finds the next valid, non-delimiter token that
// lies inside brackets.
func (ts *Tokens) NextEnclosedNotDelimiter(t Token) Token {
	return ts.findNext(t, func(it Token) bool { return isNotDelimiter(it) && it.Enclosed() })
}

// NextBracketOrIdentifier finds the next bracket or Identifier token.
func (ts *Tokens) NextBracketOrIdentifier(t Token) Token {
	return ts.findNext(t, isBracketOrIdentifier)
}

// Replace removes t from the sequence and splices repl in at its position.
// The removed slot is tombstoned.
func (ts *Tokens) Replace(t Token, repl ...Token) {
	idx := ts.indexOf(t)
	if idx < 0 {
		return
	}
	t.setCategory(Invalid)

	order := make([]Token, 0, len(ts.order)-1+len(repl))
	order = append(order, ts.order[:idx]...)
	for _, r := range repl {
		if !r.IsNone() {
			order = append(order, r)
		}
	}
	order = append(order, ts.order[idx+1:]...)
	ts.order = order
}

// Merge appends right's text to left in place and tombstones right. The
// merged token is Unknown so it is classified again by later passes.
func (ts *Tokens) Merge(left, right Token) Token {
	if left.IsNone() {
		return right
	}
	if right.IsNone() {
		return left
	}
	lr := left.rec()
	lr.text = lr.text.Concat(right.Text())
	lr.category = Unknown
	right.setCategory(Invalid)
	return left
}

// String renders the valid tokens, for debugging.
func (ts *Tokens) String() string {
	parts := make([]string, 0, len(ts.order))
	for _, t := range ts.order {
		if t.IsValid() {
			parts = append(parts, t.String())
		}
	}
	return strings.Join(parts, " ")
}
