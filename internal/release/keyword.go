package release

import "regexp"

// keywordRule tags a single Unknown token. match returns the submatches of
// the token text, nil when the rule does not apply. A soft rule records its
// data but leaves the token Unknown so it can still be part of the title.
type keywordRule struct {
	name  string
	match func(text string) []string
	apply func(e *Element, m []string)
	soft  bool
}

func anchored(pattern string) func(string) []string {
	re := regexp.MustCompile(`(?i)^(?:` + pattern + `)$`)
	return re.FindStringSubmatch
}

var (
	resolutionRegex  = regexp.MustCompile(`(?i)(?:^|\D)(?:\d{3,4}X)?(480|720|1080|1440|2160|4320)[PI]?(?:\D|$)`)
	resolutionKRegex = regexp.MustCompile(`(?i)(?:^|[^\w])([248])K(?:[^\w]|$)`)
	qualityRegex     = regexp.MustCompile(`(?i)(WEB-?DL)-?(480|720|1080|1440|2160|4320)P?`)
	containerRegex   = regexp.MustCompile(`(?i)^(?:MKV|AVI|RMVB|WMV[39]?|MP4)$`)
)

var kResolutions = map[string]string{
	"2": "1440P",
	"4": "2160P",
	"8": "4320P",
}

func appendTo(field func(e *Element) *[]string) func(*Element, []string) {
	return func(e *Element, m []string) {
		p := field(e)
		*p = append(*p, m[0])
	}
}

func setTo(field func(e *Element) *string) func(*Element, []string) {
	return func(e *Element, m []string) {
		*field(e) = m[0]
	}
}

func noop(*Element, []string) {}

// keywordRules is tried in order for every Unknown token; the first match
// wins.
var keywordRules = []keywordRule{
	{
		name:  "anime_type",
		match: anchored(`(?:NC)?ED|ENDING|(?:NC)?OP|OPENING|PREVIEW|PV|SP`),
		apply: appendTo(func(e *Element) *[]string { return &e.AnimeType }),
		soft:  true,
	},
	{
		name: "audio_term",
		match: anchored(`2(?:\.0)?CH|DTS(?:-ES|5\.1|-?HD|-?HDMA)?|5\.1(?:CH)?|TRUEHD5\.1|` +
			`AAC(?:X[234])?|AC3|EAC3|E-AC-3|FLAC(?:X[234])?|LOSSLESS|MP3|OGG|VORBIS|ATMOS|` +
			`DUAL[- ]?AUDIO|MULTI[- ]?AUDIO`),
		apply: appendTo(func(e *Element) *[]string { return &e.AudioTerm }),
	},
	{
		name:  "device_compatibility",
		match: anchored(`IPAD3|IPHONE5|IPOD|PS3|XBOX(?:360)?`),
		apply: noop,
	},
	{
		name:  "device_compatibility",
		match: anchored(`ANDROID`),
		apply: noop,
		soft:  true,
	},
	{
		name:  "language",
		match: anchored(`ENG(?:LISH)?|ESPANOL|JAP|PT-BR|SPANISH|VOSTFR`),
		apply: appendTo(func(e *Element) *[]string { return &e.Language }),
	},
	// "Tokyo ESP", "Bokura ga Ita"
	{
		name:  "language",
		match: anchored(`ESP|ITA`),
		apply: appendTo(func(e *Element) *[]string { return &e.Language }),
		soft:  true,
	},
	{
		name:  "other",
		match: anchored(`REMASTER(?:ED)?|UNCENSORED|UNCUT|TS|VFR|WIDESCREEN|WS`),
		apply: appendTo(func(e *Element) *[]string { return &e.Other }),
	},
	{
		name:  "release_group",
		match: anchored(`THORA`),
		apply: setTo(func(e *Element) *string { return &e.ReleaseGroup }),
	},
	{
		name:  "release_information",
		match: anchored(`BATCH|COMPLETE|PATCH`),
		apply: appendTo(func(e *Element) *[]string { return &e.ReleaseInformation }),
	},
	// "The End of Evangelion", "Final Approach"
	{
		name:  "release_information",
		match: anchored(`END|FINAL`),
		apply: appendTo(func(e *Element) *[]string { return &e.ReleaseInformation }),
		soft:  true,
	},
	{
		name:  "release_version",
		match: anchored(`V[0-4]`),
		apply: setTo(func(e *Element) *string { return &e.ReleaseVersion }),
	},
	{
		name: "source",
		match: anchored(`DVD(?:5|9|-R2J|-?RIP)?|R2(?:DVD|J|JDVD|JDVDRIP)|REMUX|` +
			`SDTV|HDTV(?:RIP)?|TV-?RIP|WEB-?DL|WEB(?:CAST|RIP)|BLU-?RAY|BD(?:-?RIP)?`),
		apply: appendTo(func(e *Element) *[]string { return &e.Source }),
	},
	{
		name: "subtitles",
		match: anchored(`ASS|BIG5|DUB(?:BED)?|HARDSUBS?|RAW|SOFTSUBS?|` +
			`SUB(?:BED|TITLED)?|MULTIPLE SUBTITLE|MULTI[- ]SUBS`),
		apply: setTo(func(e *Element) *string { return &e.Subtitles }),
	},
	{
		name:  "streaming",
		match: anchored(`BAHA|B-GLOBAL|BILIBILI|NETFLIX|NF|VIUTV`),
		apply: setTo(func(e *Element) *string { return &e.Streaming }),
	},
	{
		name: "video_term",
		match: anchored(`(?:10|8)-?BITS?|HI10P?|HI444(?:P|PP)?|[HX]26[45]|AVC|HEVC|` +
			`VC\d?|MPEG\d?|XVID|DIVX|HDR\d*|3D`),
		apply: appendTo(func(e *Element) *[]string { return &e.VideoTerm }),
	},
	{
		name:  "video_resolution",
		match: matchResolution,
		apply: func(e *Element, m []string) { e.VideoResolution = m[1] },
	},
	{
		name:  "video_quality",
		match: qualityRegex.FindStringSubmatch,
		apply: func(e *Element, m []string) {
			e.Source = append(e.Source, m[1])
			e.VideoResolution = m[2] + "P"
		},
	},
	{
		name:  "video_format",
		match: containerRegex.FindStringSubmatch,
		apply: noop,
	},
	// CRC32 checksums such as "ABCD1234"
	{
		name:  "file_checksum",
		match: anchored(`[a-e\d]{8}`),
		apply: noop,
	},
}

// matchResolution scans the token for a resolution. The returned slice holds
// the whole token and the normalized resolution. Tokens that also carry a
// source, such as "WEB-DL-1080P", are left to the quality rule.
func matchResolution(text string) []string {
	if qualityRegex.MatchString(text) {
		return nil
	}
	if m := resolutionRegex.FindStringSubmatch(text); m != nil {
		return []string{text, m[1] + "P"}
	}
	if m := resolutionKRegex.FindStringSubmatch(text); m != nil {
		return []string{text, kResolutions[m[1]]}
	}
	return nil
}

// ParseKeywords classifies every Unknown token of ts into e.
func ParseKeywords(e *Element, ts *Tokens) {
	for _, t := range ts.Unknowns() {
		text := t.Text().String()
		for _, rule := range keywordRules {
			m := rule.match(text)
			if m == nil {
				continue
			}
			rule.apply(e, m)
			if !rule.soft {
				t.SetIdentifier()
			}
			break
		}
	}
}

// classify returns the name of the first rule matching text.
func classify(text string) (string, bool) {
	for _, rule := range keywordRules {
		if rule.match(text) != nil {
			return rule.name, true
		}
	}
	return "", false
}
