package release

import (
	"regexp"
	"strings"

	"github.com/Nomadcxx/animename/internal/numeral"
)

var (
	openBracketRegex   = regexp.MustCompile(`[(\[{「『【（《〈]`)
	closedBracketRegex = regexp.MustCompile(`[)\]}」』】）》〉]`)

	delimiterRegex = regexp.MustCompile(
		`\.|\s+-\s+|\s+|\+|/|～|;|&|\||#|_|~|\(|\)|\[|]|\{|}|「|」|『|』|【|】|（|）`)

	// Reductions applied to each bracket segment before delimiter splitting.
	yearRangeRegex    = regexp.MustCompile(`([\s.]+\d{4})-\d{4}`)
	tvNumberRegex     = regexp.MustCompile(`TV\s+(\d{1,4}([-~&+]\d{1,4})?)`)
	fileSizeRegex     = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*[MGT]i?B`)
	dateRegex         = regexp.MustCompile(`\d{4}[\s._-]\d{1,2}[\s._-]\d{1,2}`)
	seasonTagHint     = regexp.MustCompile(`新番|月?番|[日美国][漫剧]`)
	seasonTagRegex    = regexp.MustCompile(`.*月新?番.?|.*[日美国][漫剧]`)
	genreCategoryRegx = regexp.MustCompile(
		`(?i)[动漫画纪录片电影视连续剧集日美韩中港台海外亚洲华语大陆综艺原盘高清動畫紀錄電視連續劇韓臺亞華語陸綜藝盤]{2,}|\b(?:Animations?|Documentar\w*|Anime)\b`)

	// Repairs for over-eager delimiter splitting.
	audioWordRegex     = regexp.MustCompile(`(?i)^AUDIO$`)
	audioLanguageRegex = regexp.MustCompile(`(?i)^(?:DUAL|MULTI)$`)
	pointPrevRegex     = regexp.MustCompile(`[\dHhXx]$`)
	pointNextRegex     = regexp.MustCompile(`(?i)^\d[A-Z]*$`)
	conjunctionRegex   = regexp.MustCompile(`^(?:&|of|\+)$`)
	episodePrefixRegex = regexp.MustCompile(
		`(?i)^S(?:AISON|EASON)?$|^EP(?:S|ISOD(?:E|ES|IO))?$|^CAPITULO$|^FOLGE$|^#$|^VOL(?:\.|UME)?$`)
	cjkNumberRegex  = regexp.MustCompile(`^[0-9一二三四五六七八九十百千零]+$`)
	cjkSuffixRegex  = regexp.MustCompile(`^[集话話期季]全?$`)
	cjkPrefixRegex  = regexp.MustCompile(`^[第全共]$`)
	sceneSuffixRegx = regexp.MustCompile(`^([^-]+)-([^-].*)$`)
)

// Tokenize splits the single token of ts into brackets, delimiters and
// words, then repairs splits that broke apart a single logical token.
func Tokenize(ts *Tokens) {
	splitBrackets(ts)
	for _, t := range ts.Unknowns() {
		reduce(ts, t)
	}
	splitDelimiters(ts)
	fixSplits(ts)
	splitSceneSuffix(ts)
}

func splitBrackets(ts *Tokens) {
	for _, t := range ts.Unknowns() {
		var result []Token
		next := t.Text()
		enclosed := false

		for !next.IsEmpty() {
			re := openBracketRegex
			if enclosed {
				re = closedBracketRegex
			}
			left, sp, right, _ := next.SplitOnce(re)
			if !left.IsEmpty() {
				result = append(result, ts.NewToken(Unknown, left, enclosed))
			}
			if !sp.IsEmpty() {
				category := BracketOpen
				if enclosed {
					category = BracketClosed
				}
				result = append(result, ts.NewToken(category, sp, true))
				enclosed = !enclosed
			}
			next = right
		}

		ts.Replace(t, result...)
	}
}

func splitDelimiters(ts *Tokens) {
	for _, t := range ts.Unknowns() {
		var result []Token
		next := t.Text()
		enclosed := t.Enclosed()

		for !next.IsEmpty() {
			left, sp, right, _ := next.SplitOnce(delimiterRegex)
			if !left.IsEmpty() {
				result = append(result, ts.NewToken(Unknown, left, enclosed))
			}
			if !sp.IsEmpty() {
				result = append(result, ts.NewToken(Delimiter, sp, enclosed))
			}
			next = right
		}

		ts.Replace(t, result...)
	}
}

type reduction func(ts *Tokens, t Token) []Token

// reductions run in order over every piece a previous reduction produced.
// Each one fires at most once per piece.
var reductions = []reduction{
	keepCapture(yearRangeRegex),
	keepCapture(tvNumberRegex),
	removeMatch(fileSizeRegex),
	removeMatch(dateRegex),
	removeSeasonTag,
	removeMatch(genreCategoryRegx),
}

func reduce(ts *Tokens, t Token) {
	pieces := []Token{t}
	for _, r := range reductions {
		var next []Token
		for _, p := range pieces {
			next = append(next, r(ts, p)...)
		}
		pieces = next
	}
}

// keepCapture replaces the first match of re with its first capture group,
// e.g. " 2016-2017" becomes " 2016" and "TV 12" becomes "12".
func keepCapture(re *regexp.Regexp) reduction {
	return func(ts *Tokens, t Token) []Token {
		pre, sp, next, ok := t.Text().SplitOnce(re)
		if !ok {
			return []Token{t}
		}
		m := re.FindStringSubmatchIndex(sp.String())
		kept := sp.Slice(m[2], m[3])
		return replaceWith(ts, t, pre, kept, next)
	}
}

func removeMatch(re *regexp.Regexp) reduction {
	return func(ts *Tokens, t Token) []Token {
		pre, _, next, ok := t.Text().SplitOnce(re)
		if !ok {
			return []Token{t}
		}
		return replaceWith(ts, t, pre, next)
	}
}

// removeSeasonTag drops broadcast season tags such as "10月新番" or "日漫".
func removeSeasonTag(ts *Tokens, t Token) []Token {
	if !seasonTagHint.MatchString(t.Text().String()) {
		return []Token{t}
	}
	return removeMatch(seasonTagRegex)(ts, t)
}

func replaceWith(ts *Tokens, t Token, parts ...Text) []Token {
	var repl []Token
	for _, p := range parts {
		if !p.IsEmpty() {
			repl = append(repl, ts.NewToken(Unknown, p, t.Enclosed()))
		}
	}
	ts.Replace(t, repl...)
	return repl
}

type repair func(ts *Tokens, t Token) bool

// repairs are tried in order for every token; the first one that merges
// something ends the attempt for that token.
var repairs = []repair{
	fixAudioLanguage,
	fixPointNumber,
	fixEpisodeConjunction,
	fixEpisodePrefix,
	fixChineseEpisode,
}

func fixSplits(ts *Tokens) {
	for _, t := range ts.All() {
		if !t.IsValid() {
			continue
		}
		for _, fix := range repairs {
			if fix(ts, t) {
				break
			}
		}
	}
}

// fixAudioLanguage joins "DUAL AUDIO" and "MULTI AUDIO".
func fixAudioLanguage(ts *Tokens, t Token) bool {
	if !audioWordRegex.MatchString(t.Text().String()) {
		return false
	}
	sp := ts.PrevValid(t)
	prev := ts.PrevValid(sp)
	if sp.Text().String() != " " || !audioLanguageRegex.MatchString(prev.Text().String()) {
		return false
	}
	ts.Merge(ts.Merge(prev, sp), t)
	return true
}

// fixPointNumber joins decimals such as "5.1", "2.0CH" and "TRUEHD5.1".
func fixPointNumber(ts *Tokens, t Token) bool {
	if t.Text().String() != "." {
		return false
	}
	prev := ts.PrevValid(t)
	next := ts.NextValid(t)
	if !pointPrevRegex.MatchString(prev.Text().String()) || !pointNextRegex.MatchString(next.Text().String()) {
		return false
	}
	ts.Merge(ts.Merge(prev, t), next)
	return true
}

// fixEpisodeConjunction joins "8 & 10", "01 of 24" and "01 + 02".
func fixEpisodeConjunction(ts *Tokens, t Token) bool {
	if !conjunctionRegex.MatchString(t.Text().String()) {
		return false
	}
	prev := ts.PrevUnknown(t)
	next := ts.NextUnknown(t)
	if !prev.Text().IsASCIIDigit() || !next.Text().IsASCIIDigit() {
		return false
	}
	ts.Merge(ts.Merge(prev, t), next)
	return true
}

// fixEpisodePrefix joins "EP 90", "#13" and "Vol. 2".
func fixEpisodePrefix(ts *Tokens, t Token) bool {
	if !episodePrefixRegex.MatchString(t.Text().String()) {
		return false
	}
	next := ts.NextUnknown(t)
	if !next.Text().IsASCIIDigit() {
		return false
	}
	ts.Merge(t, next)
	return true
}

// fixChineseEpisode joins "第 四 集", "12 话" and "全 24 集".
func fixChineseEpisode(ts *Tokens, t Token) bool {
	if !cjkNumberRegex.MatchString(t.Text().String()) {
		return false
	}
	merged := false
	if next := ts.NextUnknown(t); cjkSuffixRegex.MatchString(next.Text().String()) {
		ts.Merge(t, next)
		merged = true
	}
	if prev := ts.PrevUnknown(t); cjkPrefixRegex.MatchString(prev.Text().String()) {
		ts.Merge(prev, t)
		merged = true
	}
	return merged
}

// splitSceneSuffix separates a trailing "-GROUP" glued to a keyword, as in
// "x264-EDITH" or "HEVC-GroupY", so the keyword can be classified.
func splitSceneSuffix(ts *Tokens) {
	last := lastNamePart(ts)
	if !last.IsUnknown() || last.Enclosed() {
		return
	}

	text := last.Text()
	m := sceneSuffixRegx.FindStringSubmatchIndex(text.String())
	if m == nil {
		return
	}
	if _, ok := classify(text.String()); ok {
		return
	}
	word := text.Slice(m[2], m[3])
	if _, ok := classify(word.String()); !ok {
		return
	}
	ts.Replace(last,
		ts.NewToken(Unknown, word, false),
		ts.NewToken(Delimiter, text.Slice(m[3], m[4]), false),
		ts.NewToken(Unknown, text.Slice(m[4], m[5]), false),
	)
}

// lastNamePart returns the last non-delimiter token, ignoring a trailing
// container extension.
func lastNamePart(ts *Tokens) Token {
	all := ts.All()
	for i := len(all) - 1; i >= 0; i-- {
		t := all[i]
		if !isNotDelimiter(t) {
			continue
		}
		if containerRegex.MatchString(t.Text().String()) {
			continue
		}
		return t
	}
	return Token{}
}

// isDashDelimiter reports whether t is a bare "-" delimiter.
func isDashDelimiter(t Token) bool {
	return t.IsDelimiter() && strings.TrimSpace(t.Text().String()) == "-"
}

// hasNumber reports whether t contains an ASCII digit or a CJK numeral.
func hasNumber(t Token) bool {
	return numeral.HasNumber(t.Text().String())
}
