package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(name string) *Tokens {
	ts := NewTokens(name)
	Tokenize(ts)
	return ts
}

func TestTokenize_Segments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "brackets and delimiters",
			input: "[A] B.C",
			want:  []string{"[", "A", "]", " ", "B", ".", "C"},
		},
		{
			name:  "cjk brackets",
			input: "【字幕组】标题",
			want:  []string{"【", "字幕组", "】", "标题"},
		},
		{
			name:  "spaced dash is one delimiter",
			input: "Show - 05",
			want:  []string{"Show", " - ", "05"},
		},
		{
			name:  "year range keeps first year",
			input: "Show 2016-2017",
			want:  []string{"Show", " ", "2016"},
		},
		{
			name:  "tv prefix dropped",
			input: "Show TV 12",
			want:  []string{"Show", " ", "12"},
		},
		{
			name:  "file size removed",
			input: "Show 1.5GB",
			want:  []string{"Show", " "},
		},
		{
			name:  "date removed",
			input: "Show 2024.01.15 x",
			want:  []string{"Show", " ", " ", "x"},
		},
		{
			name:  "genre words removed",
			input: "Show 动画",
			want:  []string{"Show", " "},
		},
		{
			name:  "dual audio repaired",
			input: "Title DUAL AUDIO",
			want:  []string{"Title", " ", "DUAL AUDIO"},
		},
		{
			name:  "decimal repaired",
			input: "FLAC 5.1",
			want:  []string{"FLAC", " ", "5.1"},
		},
		{
			name:  "episode keyword repaired",
			input: "Title EP 90",
			want:  []string{"Title", " ", "EP90", " "},
		},
		{
			name:  "number sign repaired",
			input: "Title #13",
			want:  []string{"Title", " ", "#13"},
		},
		{
			name:  "episode conjunction repaired",
			input: "Title 08 & 10",
			want:  []string{"Title", " ", "08&10", " ", " "},
		},
		{
			name:  "chinese episode repaired",
			input: "Title 第 四 集",
			want:  []string{"Title", " ", "第四集", " ", " "},
		},
		{
			name:  "scene suffix split",
			input: "Show.HEVC-GroupY",
			want:  []string{"Show", ".", "HEVC", "-", "GroupY"},
		},
		{
			name:  "scene suffix split before extension",
			input: "Show.x264-EDITH.mkv",
			want:  []string{"Show", ".", "x264", "-", "EDITH", ".", "mkv"},
		},
		{
			name:  "hyphenated title word kept",
			input: "Show.Spider-Man",
			want:  []string{"Show", ".", "Spider-Man"},
		},
		{
			name:  "hyphenated keyword kept",
			input: "Show.WEB-DL",
			want:  []string{"Show", ".", "WEB-DL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validTexts(tokenize(tt.input)))
		})
	}
}

func TestTokenize_Enclosed(t *testing.T) {
	ts := tokenize("[A B")
	all := ts.All()
	require.Len(t, all, 4)

	assert.True(t, all[0].IsOpenBracket())
	for _, tok := range all {
		assert.True(t, tok.Enclosed(), tok.String())
	}
	assert.True(t, ts.NextBracketOrIdentifier(all[0]).IsNone())
}

func TestTokenize_Categories(t *testing.T) {
	ts := tokenize("[Group] Show - 05")

	var got []Category
	for _, tok := range ts.All() {
		got = append(got, tok.Category())
	}
	assert.Equal(t, []Category{
		BracketOpen, Unknown, BracketClosed,
		Delimiter, Unknown, Delimiter, Unknown,
	}, got)
}

func TestTokenize_Empty(t *testing.T) {
	ts := tokenize("")
	assert.Equal(t, 0, ts.Len())
	assert.True(t, ts.FirstUnknown().IsNone())
}
