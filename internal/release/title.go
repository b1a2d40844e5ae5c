package release

import (
	"regexp"
	"strings"
)

var literalPunctRegex = regexp.MustCompile(`^[,&/]$`)

const dashes = " -‐‑‒–—―"

// ParseReleaseGroup takes the contents of the first bracket pair as the
// release group, e.g. "[GroupX] Show - 01". A bracket that holds nothing but
// a number is an episode or year, not a group.
func ParseReleaseGroup(e *Element, ts *Tokens) {
	first := ts.FirstOpenBracket()
	start := ts.NextUnknown(first)
	end := ts.NextBracketOrIdentifier(first)
	group := ts.Range(start, end)

	if !first.IsNone() && !numericOnly(group) {
		if text := buildText(group, true); text != "" {
			e.ReleaseGroup = text
		}
	}
}

func numericOnly(tokens []Token) bool {
	found := false
	for _, t := range tokens {
		switch {
		case !t.IsValid() || t.IsDelimiter():
		case t.IsUnknown() && t.Text().IsASCIIDigit():
			found = true
		default:
			return false
		}
	}
	return found
}

// ParseSceneGroup recognizes "Show.S01E01.HEVC-GROUP" in names without a
// bracketed group: the last part of the name, glued by a dash to an already
// classified keyword. It runs after ParseEpisode so "Show 1080p - 05" keeps
// its episode.
func ParseSceneGroup(e *Element, ts *Tokens) {
	if e.ReleaseGroup != "" {
		return
	}
	last := lastNamePart(ts)
	if !last.IsUnknown() || last.Text().IsASCIIDigit() {
		return
	}
	dash := ts.PrevValid(last)
	if !isDashDelimiter(dash) || !ts.PrevValid(dash).IsIdentifier() {
		return
	}
	e.ReleaseGroup = last.Text().String()
	last.SetIdentifier()
}

// ParseTitle takes the first run of Unknown tokens as the title. When
// nothing is left the release group is moved into the title, which handles
// names like "[Title] 01.mkv".
func ParseTitle(e *Element, ts *Tokens) {
	start := ts.FirstUnknown()
	end := ts.NextBracketOrIdentifier(start)

	var text string
	if end.IsNone() {
		text = buildText(ts.From(start), false)
	} else {
		text = buildText(ts.Range(start, end), false)
	}

	if text == "" {
		e.AnimeTitle = e.ReleaseGroup
		e.ReleaseGroup = ""
		return
	}
	e.AnimeTitle = text
}

// buildText joins the valid tokens and marks the Unknown ones as consumed.
// With keepDelimiters false, delimiters become single spaces and the result
// is trimmed of spaces and dashes.
func buildText(tokens []Token, keepDelimiters bool) string {
	var sb strings.Builder
	for _, t := range tokens {
		if !t.IsValid() {
			continue
		}
		text := t.Text().String()
		switch {
		case keepDelimiters:
			sb.WriteString(text)
		case literalPunctRegex.MatchString(text):
			sb.WriteString(text)
		case t.IsDelimiter():
			sb.WriteByte(' ')
		default:
			sb.WriteString(text)
		}
		if t.IsUnknown() {
			t.SetIdentifier()
		}
	}

	if keepDelimiters {
		return sb.String()
	}
	return strings.Trim(sb.String(), dashes)
}
