// Package numeral converts ASCII and CJK numeral expressions into bounded
// unsigned integers.
//
// Parse tries three tiers in order: plain digits (full-width digits are
// folded to ASCII first), the positional parser for expressions up to 千,
// and finally a general ten-thousand based parser that understands 万 and
// colloquial abbreviations such as 三万五.
package numeral

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// ManualMax is the largest value the positional parser can produce
// (一千九百九十九).
const ManualMax = 1999

// glyphs folds traditional, financial and variant numeral glyphs onto the
// simplified set understood by the parsers.
var glyphs = strings.NewReplacer(
	"〇", "零",
	"壹", "一",
	"貳", "二", "贰", "二", "貮", "二", "兩", "二", "两", "二",
	"參", "三", "叁", "三", "叄", "三", "参", "三",
	"肆", "四",
	"伍", "五",
	"陸", "六", "陆", "六",
	"柒", "七",
	"捌", "八",
	"玖", "九",
	"拾", "十",
	"佰", "百",
	"仟", "千",
	"萬", "万",
)

var (
	digitValues = map[rune]uint64{
		'零': 0, '一': 1, '二': 2, '三': 3, '四': 4,
		'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
	}
	unitValues = map[rune]uint64{
		'十': 10, '百': 100, '千': 1000, '万': 10000,
	}

	manualRegex = regexp.MustCompile(
		`^(一?千)?零?(?:([一二三四五六七八九])?(百))?零?(?:([一二三四五六七八九])?(十))?([一二三四五六七八九])?$`)
	hasNumberRegex = regexp.MustCompile(
		`[0-9０-９〇零一壹二貳贰貮兩两三參叁叄参四肆五伍六陸陆七柒八捌九玖十拾百佰千仟]`)
)

// HasNumber reports whether s contains any ASCII digit or CJK numeral glyph.
func HasNumber(s string) bool {
	return hasNumberRegex.MatchString(s)
}

// Parse converts s using the three-tier fallback chain. ok is false when no
// tier can produce a value that fits in a uint16.
func Parse(s string) (n uint16, ok bool) {
	if n, ok := ParseDigits(s); ok {
		return n, true
	}
	if n, ok := ParseManual(s); ok {
		return n, true
	}
	return ParseGeneral(s)
}

// ParseDigits parses a run of ASCII or full-width digits.
func ParseDigits(s string) (uint16, bool) {
	s = width.Narrow.String(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// ParseManual parses positional CJK numerals no larger than ManualMax.
// A missing multiplier before 百 or 十 counts as one, and 零 may be elided
// (一千零十三 and 一千零一十三 are both 1013).
func ParseManual(s string) (uint16, bool) {
	s = glyphs.Replace(s)
	if s == "零" {
		return 0, true
	}
	if s == "" {
		return 0, false
	}

	m := manualRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	var number uint16
	if m[1] != "" {
		number += 1000
	}
	if m[3] != "" {
		number += 100 * multiplier(m[2])
	}
	if m[5] != "" {
		number += 10 * multiplier(m[4])
	}
	if m[6] != "" {
		number += multiplier(m[6])
	}
	return number, true
}

func multiplier(glyph string) uint16 {
	if glyph == "" {
		return 1
	}
	for _, r := range glyph {
		return uint16(digitValues[r])
	}
	return 1
}

// ParseGeneral parses CJK numerals up to the 万 unit. A trailing digit that
// directly follows a unit is read as the next lower unit, so 三万五 is 35000
// and 一百五 is 150. ASCII digits are accepted as single digit glyphs.
func ParseGeneral(s string) (uint16, bool) {
	s = glyphs.Replace(width.Narrow.String(s))
	if s == "" {
		return 0, false
	}

	var (
		total, section uint64
		number         uint64
		hasNumber      bool
		lastUnit       uint64
		zeroSince      bool
		afterUnit      bool
		digits         int
	)

	for _, r := range s {
		if r >= '0' && r <= '9' {
			r = []rune("零一二三四五六七八九")[r-'0']
		}
		if d, ok := digitValues[r]; ok {
			digits++
			if d == 0 {
				zeroSince = true
				afterUnit = false
				continue
			}
			if hasNumber {
				return 0, false
			}
			number, hasNumber = d, true
			continue
		}

		unit, ok := unitValues[r]
		if !ok {
			return 0, false
		}
		if unit == 10000 {
			if hasNumber {
				section += number
			} else if section == 0 {
				section = 1
			}
			total += section * unit
			section = 0
		} else {
			if !hasNumber {
				number = 1
			}
			section += number * unit
		}
		number, hasNumber = 0, false
		lastUnit = unit
		zeroSince = false
		afterUnit = true
	}

	// Bare digit strings such as 七零 are not positional numerals.
	if lastUnit == 0 && digits != 1 {
		return 0, false
	}
	if hasNumber {
		if afterUnit && !zeroSince && lastUnit >= 100 {
			number *= lastUnit / 10
		}
		section += number
	}
	total += section

	if total > math.MaxUint16 {
		return 0, false
	}
	return uint16(total), true
}
