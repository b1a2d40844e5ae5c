package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEpisode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSeason  string
		wantEpisode string
		wantVersion string
	}{
		{"combined season episode", "Show S01E05", "S01", "E05", ""},
		{"combined wins over bare number", "Show S01E05 - 12", "S01", "E05", ""},
		{"cross notation", "Show 2x01", "S2", "E01", ""},
		{"season and episode ranges", "Show S01-02xE001-150", "S01-S02", "E001-E150", ""},
		{"combined with version", "Show S01E06v2", "S01", "E06", "v2"},
		{"cjk season and episode", "第二季第三集", "S2", "E3", ""},
		{"season word then separated episode", "Title Season 2 - 05", "S2", "E05", ""},
		{"cjk season then separated episode", "Title 第二季 - 05", "S2", "E05", ""},
		{"episode prefix", "Title EP21", "", "E21", ""},
		{"spaced episode prefix", "Title EP 90", "", "E90", ""},
		{"number sign", "Title #01", "", "E01", ""},
		{"versioned episode", "[Group] Title - 01v2 [720p]", "", "E01", "v2"},
		{"episode of total", "Title 01 of 24", "", "E01", ""},
		{"cjk episode", "Title 第 四 集", "", "E4", ""},
		{"cjk episode with tens", "Title 第十二话", "", "E12", ""},
		{"multi episode", "Title 01-02", "", "E01-E02", ""},
		{"conjunction episode range", "Title 08 & 10", "", "E08-E10", ""},
		{"fractional episode", "Title 07.5", "", "E07.5", ""},
		{"partial episode", "Title 4a", "", "E4a", ""},
		{"isolated number", "Title (12)", "", "E12", ""},
		{"equivalent number smaller first", "Show Name 01 (176)", "S1", "E176", ""},
		{"equivalent number larger first", "Title 29 (04)", "S4", "E29", ""},
		{"separated number", "[GroupX] Show Name - 05 [1080p].mkv", "", "E05", ""},
		{"exhaustive marker rejected", "Title 全24集", "", "", ""},
		{"cjk episode out of range", "Title 第三万五集", "", "", ""},
		{"no number", "Just A Title", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Parse(tt.input)
			assert.Equal(t, tt.wantSeason, e.AnimeSeason, "season")
			assert.Equal(t, tt.wantEpisode, e.EpisodeNumber, "episode")
			assert.Equal(t, tt.wantVersion, e.ReleaseVersion, "version")
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Anime Title (2016) 01", "2016"},
		{"Wonder Woman 1984 2020", "2020"},
		{"Title (12) 2001", "2001"},
		{"Title 1899", ""},
		{"Title 2150", ""},
		{"Title 2149", "2149"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := &Element{}
			ts := tokenize(tt.input)
			ParseYear(e, ts)
			assert.Equal(t, tt.want, e.AnimeYear)
		})
	}
}

func TestParseYear_MarksToken(t *testing.T) {
	e := &Element{}
	ts := tokenize("Anime Title (2016) 01")
	ParseYear(e, ts)

	for _, tok := range ts.All() {
		switch tok.Text().String() {
		case "2016":
			assert.True(t, tok.IsIdentifier())
		case "01":
			assert.True(t, tok.IsUnknown())
		}
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Title Vol.2", "2"},
		{"Title Volume 3", "3"},
		{"Title VOL5", "5"},
		{"Title Vol.12", ""},
		{"Title", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input).VolumeNumber)
		})
	}
}

func TestIsIsolated(t *testing.T) {
	ts := tokenize("01 ( 176 ) [12 x]")

	got := map[string]bool{}
	for _, tok := range ts.Unknowns() {
		got[tok.Text().String()] = isIsolated(ts, tok)
	}
	assert.Equal(t, map[string]bool{"01": false, "176": true, "12": false, "x": false}, got)
}
