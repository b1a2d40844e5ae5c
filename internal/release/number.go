package release

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Nomadcxx/animename/internal/numeral"
)

// episodeMax bounds every season and episode number. Larger values are
// treated as years, resolutions or noise.
const episodeMax = 1890

const (
	yearMin = 1900
	yearMax = 2150 // exclusive; also keeps 2K and 4K widths out
)

var (
	volumeRegex = regexp.MustCompile(`(?i)^VOL(?:\.|UME)?(\d)$`)

	seasonEpisodeRegex = regexp.MustCompile(
		`(?i)S?(\d{1,2})(?:-S?(\d{1,2}))?(?:X|[ ._xX-]?E)(\d{1,4})(?:-E?(\d{1,4}))?(V\d)?`)
	cjkSeasonEpisodeRegex  = regexp.MustCompile(`第?(.+)季第?(.+)[集话話期]`)
	cjkSeasonEpisodeReject = regexp.MustCompile(`[全共].+[集话話期季]|[集话話期季]全`)

	singleSeasonRegex    = regexp.MustCompile(`(?i)^S(?:AISON|EASON)?(\d{1,2})$`)
	cjkSeasonRegex       = regexp.MustCompile(`第?(.+)季`)
	cjkSeasonReject      = regexp.MustCompile(`[全共].+季|季全`)
	multiSeasonRegex     = regexp.MustCompile(`(?i)S(?:AISON|EASON)?(\d{1,2})[-~&+]S(?:AISON|EASON)?(\d{1,2})`)
	numberSignRegex      = regexp.MustCompile(`#(\d{1,4})(?:[-~&+](\d{1,4}))?([vV]\d)?`)
	versionedRegex       = regexp.MustCompile(`(?i)(\d{1,4})(V\d)`)
	episodePrefixedRegex = regexp.MustCompile(`(?i)(?:EP(?:S|ISOD(?:E|ES|IO))?|CAPITULO|FOLGE)(\d{1,4})`)
	episodeOfRegex       = regexp.MustCompile(`(?i)(\d{1,4})of\d{1,4}`)
	cjkEpisodeRegex      = regexp.MustCompile(`第?(.+)[集话話期]`)
	cjkEpisodeReject     = regexp.MustCompile(`[全共].+[集话話期]|[集话話期]全`)

	multiEpisodeRegex      = regexp.MustCompile(`(?i)(\d{1,4})(V\d)?[-~&+](\d{1,4})(V\d)?`)
	fractionalEpisodeRegex = regexp.MustCompile(`\d+\.5`)
	partialEpisodeRegex    = regexp.MustCompile(`(?i)\d{1,4}[ABC]`)

	separatorRegex = regexp.MustCompile(`\s+-\s+`)
)

// ParseYear picks the first bracketed number, e.g. "(2016)", when it is a
// plausible year. Otherwise the rightmost bare number in range wins, so
// "Wonder Woman 1984 2020" yields 2020.
func ParseYear(e *Element, ts *Tokens) {
	var year Token
	for _, t := range ts.Unknowns() {
		if t.Text().IsASCIIDigit() && isIsolated(ts, t) {
			if inYearRange(t) {
				year = t
			}
			break
		}
	}
	if year.IsNone() {
		for _, t := range ts.Unknowns() {
			if t.Text().IsASCIIDigit() && inYearRange(t) {
				year = t
			}
		}
	}
	if year.IsNone() {
		return
	}
	year.SetIdentifier()
	e.AnimeYear = year.Text().String()
}

func inYearRange(t Token) bool {
	n, ok := asciiNumber(t)
	return ok && n >= yearMin && n < yearMax
}

// ParseVolume records the first "Vol.N" token.
func ParseVolume(e *Element, ts *Tokens) {
	for _, t := range ts.Unknowns() {
		if m := volumeRegex.FindStringSubmatch(t.Text().String()); m != nil {
			e.VolumeNumber = m[1]
			t.SetIdentifier()
			return
		}
	}
}

// An episodeMatcher inspects one Unknown token and reports whether it
// consumed it.
type episodeMatcher func(e *Element, ts *Tokens, t Token) bool

// episodeTiers are ordered from the most to the least reliable shape. Every
// tier sees all numeric tokens; once a tier finds an episode the later ones
// are skipped.
var episodeTiers = [][]episodeMatcher{
	{matchSeasonAndEpisode},
	{matchSingleSeason, matchMultiSeason, matchNumberSign, matchSingleEpisode},
	{matchMultiEpisode, matchFractionalEpisode, matchPartialEpisode},
	{matchIsolatedNumber},
	{matchEquivalentNumber, matchSeparatedNumber},
}

// ParseEpisode fills the season, episode and version fields.
func ParseEpisode(e *Element, ts *Tokens) {
	var candidates []Token
	for _, t := range ts.Unknowns() {
		if hasNumber(t) {
			candidates = append(candidates, t)
		}
	}

	for _, tier := range episodeTiers {
		for _, t := range candidates {
			for _, match := range tier {
				if !t.IsUnknown() {
					break
				}
				if match(e, ts, t) {
					break
				}
			}
		}
		if e.EpisodeNumber != "" {
			return
		}
	}
}

// isIsolated reports whether t is the only thing inside its brackets.
func isIsolated(ts *Tokens, t Token) bool {
	return t.Enclosed() &&
		ts.PrevNotDelimiter(t).IsOpenBracket() &&
		ts.NextNotDelimiter(t).IsClosedBracket()
}

func asciiNumber(t Token) (int, bool) {
	if !t.Text().IsASCIIDigit() {
		return 0, false
	}
	n, err := strconv.Atoi(t.Text().String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// cjkNumber converts a captured CJK numeral, rejecting values outside the
// episode range.
func cjkNumber(s string) (uint16, bool) {
	n, ok := numeral.Parse(s)
	if !ok || n > episodeMax {
		return 0, false
	}
	return n, true
}

func setVersion(e *Element, v string) {
	if v != "" {
		e.ReleaseVersion = v
	}
}

func episodeRange(first, last string) string {
	if last == "" {
		return "E" + first
	}
	return "E" + first + "-E" + last
}

// matchSeasonAndEpisode handles "S01E03", "2x01", "S01-02xE001-150",
// "S01E06v2" and "第二季第三集".
func matchSeasonAndEpisode(e *Element, _ *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	text := t.Text().String()

	if m := seasonEpisodeRegex.FindStringSubmatch(text); m != nil {
		if e.AnimeSeason == "" {
			season := "S" + m[1]
			if m[2] != "" {
				season += "-S" + m[2]
			}
			e.AnimeSeason = season
		}
		e.EpisodeNumber = episodeRange(m[3], m[4])
		setVersion(e, m[5])
		t.SetIdentifier()
		return true
	}

	if cjkSeasonEpisodeReject.MatchString(text) {
		return false
	}
	m := cjkSeasonEpisodeRegex.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	t.SetIdentifier()
	if s, ok := cjkNumber(m[1]); ok && e.AnimeSeason == "" {
		e.AnimeSeason = fmt.Sprintf("S%d", s)
	}
	if ep, ok := cjkNumber(m[2]); ok {
		e.EpisodeNumber = fmt.Sprintf("E%d", ep)
	}
	return true
}

// matchSingleSeason handles "S2", "SEASON 3" and "第二季".
func matchSingleSeason(e *Element, _ *Tokens, t Token) bool {
	if e.AnimeSeason != "" {
		return false
	}
	text := t.Text().String()

	if m := singleSeasonRegex.FindStringSubmatch(text); m != nil {
		e.AnimeSeason = "S" + m[1]
		t.SetIdentifier()
		return true
	}

	if cjkSeasonReject.MatchString(text) {
		return false
	}
	m := cjkSeasonRegex.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	t.SetIdentifier()
	if s, ok := cjkNumber(m[1]); ok {
		e.AnimeSeason = fmt.Sprintf("S%d", s)
	}
	return true
}

// matchMultiSeason handles "S01-S02".
func matchMultiSeason(e *Element, _ *Tokens, t Token) bool {
	if e.AnimeSeason != "" {
		return false
	}
	m := multiSeasonRegex.FindStringSubmatch(t.Text().String())
	if m == nil {
		return false
	}
	e.AnimeSeason = "S" + m[1] + "-S" + m[2]
	t.SetIdentifier()
	return true
}

// matchNumberSign handles "#01" and "#02-03v2".
func matchNumberSign(e *Element, _ *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	m := numberSignRegex.FindStringSubmatch(t.Text().String())
	if m == nil {
		return false
	}
	e.EpisodeNumber = episodeRange(m[1], m[2])
	setVersion(e, m[3])
	t.SetIdentifier()
	return true
}

// matchSingleEpisode handles "01v2", "EP21", "01of24" and "第四集".
func matchSingleEpisode(e *Element, _ *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	text := t.Text().String()

	if m := versionedRegex.FindStringSubmatch(text); m != nil {
		e.EpisodeNumber = "E" + m[1]
		e.ReleaseVersion = m[2]
		t.SetIdentifier()
		return true
	}
	if m := episodePrefixedRegex.FindStringSubmatch(text); m != nil {
		e.EpisodeNumber = "E" + m[1]
		t.SetIdentifier()
		return true
	}
	if m := episodeOfRegex.FindStringSubmatch(text); m != nil {
		e.EpisodeNumber = "E" + m[1]
		t.SetIdentifier()
		return true
	}

	if cjkEpisodeReject.MatchString(text) {
		return false
	}
	m := cjkEpisodeRegex.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	t.SetIdentifier()
	if ep, ok := cjkNumber(m[1]); ok {
		e.EpisodeNumber = fmt.Sprintf("E%d", ep)
	}
	return true
}

// matchMultiEpisode handles "01-02" and "03-05v2".
func matchMultiEpisode(e *Element, _ *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	m := multiEpisodeRegex.FindStringSubmatch(t.Text().String())
	if m == nil {
		return false
	}
	e.EpisodeNumber = episodeRange(m[1], m[3])
	setVersion(e, m[2])
	setVersion(e, m[4])
	t.SetIdentifier()
	return true
}

// matchFractionalEpisode handles recap episodes such as "07.5".
func matchFractionalEpisode(e *Element, _ *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	m := fractionalEpisodeRegex.FindString(t.Text().String())
	if m == "" {
		return false
	}
	e.EpisodeNumber = "E" + m
	t.SetIdentifier()
	return true
}

// matchPartialEpisode handles split episodes such as "4a" and "111C".
func matchPartialEpisode(e *Element, _ *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	m := partialEpisodeRegex.FindString(t.Text().String())
	if m == "" {
		return false
	}
	e.EpisodeNumber = "E" + m
	t.SetIdentifier()
	return true
}

// matchIsolatedNumber takes a lone bracketed number, e.g. "(12)", as the
// episode. A bracketed number right after a bare one, as in "01 (176)", is
// left for matchEquivalentNumber.
func matchIsolatedNumber(e *Element, ts *Tokens, t Token) bool {
	if e.EpisodeNumber != "" || !t.Text().IsASCIIDigit() || !isIsolated(ts, t) {
		return false
	}
	if pairedWithBareNumber(ts, t) {
		return false
	}
	e.EpisodeNumber = "E" + t.Text().String()
	t.SetIdentifier()
	return true
}

func pairedWithBareNumber(ts *Tokens, t Token) bool {
	n, ok := asciiNumber(t)
	if !ok || n > episodeMax {
		return false
	}
	prev := ts.PrevNotDelimiter(ts.PrevNotDelimiter(t))
	p, ok := asciiNumber(prev)
	return ok && prev.IsUnknown() && !prev.Enclosed() && p <= episodeMax
}

// matchEquivalentNumber guesses season and episode from a bare number
// followed by a bracketed one, e.g. "01 (176)" or "29 (04)": the smaller is
// the season. This is a low-confidence guess; nothing else in the name
// confirms which number is which.
func matchEquivalentNumber(e *Element, ts *Tokens, t Token) bool {
	if e.EpisodeNumber != "" {
		return false
	}
	number, ok := asciiNumber(t)
	if !ok || number > episodeMax || isIsolated(ts, t) {
		return false
	}

	open := ts.NextNotDelimiter(t)
	if !open.IsOpenBracket() {
		return false
	}
	next := ts.NextEnclosedNotDelimiter(open)
	nextNumber, ok := asciiNumber(next)
	if !ok || !next.IsUnknown() || !isIsolated(ts, next) || nextNumber > episodeMax {
		return false
	}

	next.SetIdentifier()
	t.SetIdentifier()
	season, episode := number, nextNumber
	if season > episode {
		season, episode = episode, season
	}
	if e.AnimeSeason == "" {
		e.AnimeSeason = fmt.Sprintf("S%d", season)
	}
	e.EpisodeNumber = fmt.Sprintf("E%d", episode)
	return true
}

// matchSeparatedNumber takes a bare number after " - " as the episode.
func matchSeparatedNumber(e *Element, ts *Tokens, t Token) bool {
	if e.EpisodeNumber != "" || !t.Text().IsASCIIDigit() {
		return false
	}
	if !separatorRegex.MatchString(ts.PrevValid(t).Text().String()) {
		return false
	}
	e.EpisodeNumber = "E" + t.Text().String()
	t.SetIdentifier()
	return true
}
