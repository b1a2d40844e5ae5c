package release

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// goldenCase is a release name and the Element expected from it.
type goldenCase struct {
	Input string  `json:"input"`
	Want  Element `json:"want"`
}

func loadGolden(t *testing.T) []goldenCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "golden", "releases.json"))
	require.NoError(t, err)

	var cases []goldenCase
	require.NoError(t, json.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestParse_Golden(t *testing.T) {
	for _, tt := range loadGolden(t) {
		t.Run(tt.Input, func(t *testing.T) {
			assert.Equal(t, &tt.Want, Parse(tt.Input))
		})
	}
}

// Re-tokenizing an extracted title finds no brackets and no keywords.
func TestParse_TitleHasNoLeftovers(t *testing.T) {
	for _, tt := range loadGolden(t) {
		title := Parse(tt.Input).AnimeTitle
		if title == "" {
			continue
		}
		t.Run(title, func(t *testing.T) {
			ts := tokenize(title)
			for _, tok := range ts.All() {
				assert.False(t, tok.IsOpenBracket() || tok.IsClosedBracket(), tok.String())
			}

			e := &Element{}
			ParseKeywords(e, ts)
			assert.True(t, e.IsEmpty(), "%+v", e)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, name := range []string{"", " ", "[]", "()", " - ", "..."} {
		t.Run(name, func(t *testing.T) {
			e := Parse(name)
			require.NotNil(t, e)
			assert.True(t, e.IsEmpty(), "%+v", e)
		})
	}
}

func TestParse_ReleaseGroupFallsBackToTitle(t *testing.T) {
	e := Parse("[Title] - 01.mkv")
	assert.Equal(t, "Title", e.AnimeTitle)
	assert.Empty(t, e.ReleaseGroup)
}

func TestParse_NumericBracketIsNotGroup(t *testing.T) {
	e := Parse("Title (12)")
	assert.Empty(t, e.ReleaseGroup)
	assert.Equal(t, "Title", e.AnimeTitle)
	assert.Equal(t, "E12", e.EpisodeNumber)
}

func TestParse_SceneGroupKeepsSeparatedEpisode(t *testing.T) {
	tests := []struct {
		input   string
		episode string
	}{
		{"Show Name 1080p - 05", "E05"},
		{"Show Name 2016 - 05", "E05"},
		{"Show.Name.HEVC - 12.mkv", "E12"},
		{"Title 2016-2017 - 03", "E03"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := Parse(tt.input)
			assert.Equal(t, tt.episode, e.EpisodeNumber)
			assert.Empty(t, e.ReleaseGroup)
		})
	}

	e := Parse("Show.Name.S02E10.HEVC-GroupY")
	assert.Equal(t, "GroupY", e.ReleaseGroup)
	assert.Equal(t, "E10", e.EpisodeNumber)
}

func TestParse_SoftKeywordsStayInTitle(t *testing.T) {
	e := Parse("Tokyo ESP - 03")
	assert.Equal(t, "Tokyo ESP", e.AnimeTitle)
	assert.Equal(t, []string{"ESP"}, e.Language)
	assert.Equal(t, "E03", e.EpisodeNumber)
}

func TestParse_JSON(t *testing.T) {
	data, err := json.Marshal(Parse("[GroupX] Show Name - 05 [1080p].mkv"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"anime_title": "Show Name",
		"episode_number": "E05",
		"release_group": "GroupX",
		"video_resolution": "1080P"
	}`, string(data))
}

func TestPropertyParseDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[\[\]() ._\-&#a-zA-Z0-9第季集话全一二三四五十万]{0,48}`).Draw(t, "name")

		first := Parse(name)
		second := Parse(name)

		if !reflect.DeepEqual(first, second) {
			t.Fatalf("Non-deterministic: %+v vs %+v for input %q", first, second, name)
		}
	})
}

func TestPropertyParseArbitraryInput(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		if Parse(name) == nil {
			t.Fatalf("nil element for input %q", name)
		}
	})
}
