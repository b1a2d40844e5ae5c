package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyToken(text string) (*Element, Token) {
	e := &Element{}
	ts := NewTokens(text)
	ParseKeywords(e, ts)
	return e, ts.All()[0]
}

func TestParseKeywords_Rules(t *testing.T) {
	tests := []struct {
		text       string
		rule       string
		identifier bool
		check      func(t *testing.T, e *Element)
	}{
		{"NCOP", "anime_type", false, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"NCOP"}, e.AnimeType)
		}},
		{"sp", "anime_type", false, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"sp"}, e.AnimeType)
		}},
		{"FLAC", "audio_term", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"FLAC"}, e.AudioTerm)
		}},
		{"DTS-HDMA", "audio_term", true, nil},
		{"TRUEHD5.1", "audio_term", true, nil},
		{"Multi-Audio", "audio_term", true, nil},
		{"XBOX360", "device_compatibility", true, nil},
		{"ANDROID", "device_compatibility", false, nil},
		{"VOSTFR", "language", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"VOSTFR"}, e.Language)
		}},
		{"ITA", "language", false, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"ITA"}, e.Language)
		}},
		{"Uncensored", "other", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"Uncensored"}, e.Other)
		}},
		{"THORA", "release_group", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "THORA", e.ReleaseGroup)
		}},
		{"Batch", "release_information", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"Batch"}, e.ReleaseInformation)
		}},
		{"END", "release_information", false, nil},
		{"v2", "release_version", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "v2", e.ReleaseVersion)
		}},
		{"BDRip", "source", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"BDRip"}, e.Source)
		}},
		{"Blu-Ray", "source", true, nil},
		{"HardSub", "subtitles", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "HardSub", e.Subtitles)
		}},
		{"Baha", "streaming", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "Baha", e.Streaming)
		}},
		{"B-Global", "streaming", true, nil},
		{"10bit", "video_term", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"10bit"}, e.VideoTerm)
		}},
		{"x265", "video_term", true, nil},
		{"HDR10", "video_term", true, nil},
		{"1080p", "video_resolution", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "1080P", e.VideoResolution)
		}},
		{"1920x1080", "video_resolution", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "1080P", e.VideoResolution)
		}},
		{"720i", "video_resolution", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "720P", e.VideoResolution)
		}},
		{"4K", "video_resolution", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "2160P", e.VideoResolution)
		}},
		{"2k", "video_resolution", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "1440P", e.VideoResolution)
		}},
		{"8K", "video_resolution", true, func(t *testing.T, e *Element) {
			assert.Equal(t, "4320P", e.VideoResolution)
		}},
		{"WEB-DL-1080P", "video_quality", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"WEB-DL"}, e.Source)
			assert.Equal(t, "1080P", e.VideoResolution)
		}},
		{"WEBDL720", "video_quality", true, func(t *testing.T, e *Element) {
			assert.Equal(t, []string{"WEBDL"}, e.Source)
			assert.Equal(t, "720P", e.VideoResolution)
		}},
		{"mkv", "video_format", true, nil},
		{"ABCD1234", "file_checksum", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rule, ok := classify(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.rule, rule)

			e, tok := classifyToken(tt.text)
			assert.Equal(t, tt.identifier, tok.IsIdentifier())
			if tt.check != nil {
				tt.check(t, e)
			}
		})
	}
}

func TestParseKeywords_NoMatch(t *testing.T) {
	for _, text := range []string{"Show", "Naritakute!", "CHT", "12345", "ABCDEFGH", "1084", "40K", "Spider-Man"} {
		t.Run(text, func(t *testing.T) {
			_, ok := classify(text)
			assert.False(t, ok)

			e, tok := classifyToken(text)
			assert.True(t, tok.IsUnknown())
			assert.True(t, e.IsEmpty())
		})
	}
}

func TestParseKeywords_SkipsClassifiedTokens(t *testing.T) {
	e := &Element{}
	ts := NewTokens("HEVC")
	ts.All()[0].SetIdentifier()

	ParseKeywords(e, ts)
	assert.Empty(t, e.VideoTerm)
}
