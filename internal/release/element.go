// Package release extracts structured metadata from anime and TV release
// names such as "[GroupX] Show Name - 05 [1080p].mkv".
//
// A name is split into a sequence of tokens (brackets, delimiters and
// words), broken splits are repaired, and a fixed series of passes then
// classifies the tokens and fills an Element. Parse never fails; fields it
// cannot find are left empty.
package release

// Element holds everything Parse found in a release name. Empty strings and
// nil slices mean the value was not found.
type Element struct {
	AnimeTitle         string   `json:"anime_title,omitempty"`
	AnimeSeason        string   `json:"anime_season,omitempty"`
	AnimeYear          string   `json:"anime_year,omitempty"`
	AnimeType          []string `json:"anime_type,omitempty"`
	EpisodeNumber      string   `json:"episode_number,omitempty"`
	VolumeNumber       string   `json:"volume_number,omitempty"`
	ReleaseGroup       string   `json:"release_group,omitempty"`
	ReleaseVersion     string   `json:"release_version,omitempty"`
	ReleaseInformation []string `json:"release_information,omitempty"`
	AudioTerm          []string `json:"audio_term,omitempty"`
	VideoTerm          []string `json:"video_term,omitempty"`
	VideoResolution    string   `json:"video_resolution,omitempty"`
	Source             []string `json:"source,omitempty"`
	Language           []string `json:"language,omitempty"`
	Subtitles          string   `json:"subtitles,omitempty"`
	Streaming          string   `json:"streaming,omitempty"`
	Other              []string `json:"other,omitempty"`
}

// Parse extracts metadata from name. It is safe to call concurrently.
func Parse(name string) *Element {
	e := &Element{}
	ts := NewTokens(name)

	Tokenize(ts)
	ParseYear(e, ts)
	ParseKeywords(e, ts)
	ParseReleaseGroup(e, ts)
	ParseEpisode(e, ts)
	ParseSceneGroup(e, ts)
	ParseVolume(e, ts)
	ParseTitle(e, ts)

	return e
}

// IsEmpty reports whether nothing was extracted.
func (e *Element) IsEmpty() bool {
	return e.AnimeTitle == "" && e.AnimeSeason == "" && e.AnimeYear == "" &&
		e.EpisodeNumber == "" && e.VolumeNumber == "" && e.ReleaseGroup == "" &&
		e.ReleaseVersion == "" && e.VideoResolution == "" && e.Subtitles == "" &&
		e.Streaming == "" && len(e.AnimeType) == 0 && len(e.ReleaseInformation) == 0 &&
		len(e.AudioTerm) == 0 && len(e.VideoTerm) == 0 && len(e.Source) == 0 &&
		len(e.Language) == 0 && len(e.Other) == 0
}
