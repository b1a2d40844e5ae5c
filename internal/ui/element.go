package ui

import (
	"strings"

	"github.com/Nomadcxx/animename/internal/release"
	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled value of a parsed element.
type Field struct {
	Label string
	Value string
}

// ElementFields lists the non-empty fields of e in display order.
func ElementFields(e *release.Element) []Field {
	if e == nil {
		return nil
	}
	all := []Field{
		{"Title", e.AnimeTitle},
		{"Season", e.AnimeSeason},
		{"Episode", e.EpisodeNumber},
		{"Volume", e.VolumeNumber},
		{"Year", e.AnimeYear},
		{"Type", strings.Join(e.AnimeType, ", ")},
		{"Group", e.ReleaseGroup},
		{"Version", e.ReleaseVersion},
		{"Release", strings.Join(e.ReleaseInformation, ", ")},
		{"Resolution", e.VideoResolution},
		{"Video", strings.Join(e.VideoTerm, ", ")},
		{"Audio", strings.Join(e.AudioTerm, ", ")},
		{"Source", strings.Join(e.Source, ", ")},
		{"Language", strings.Join(e.Language, ", ")},
		{"Subtitles", e.Subtitles},
		{"Streaming", e.Streaming},
		{"Other", strings.Join(e.Other, ", ")},
	}
	fields := all[:0]
	for _, f := range all {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func valueStyle(label string) lipgloss.Style {
	switch label {
	case "Title":
		return titleStyle
	case "Season", "Episode", "Volume", "Year":
		return numberStyle
	default:
		return tagStyle
	}
}

// RenderElement renders e as an aligned label/value list.
func RenderElement(e *release.Element) string {
	fields := ElementFields(e)
	if len(fields) == 0 {
		return Dim("nothing recognised")
	}

	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	lines := make([]string, len(fields))
	for i, f := range fields {
		label := labelStyle.Render(pad(f.Label, width))
		lines[i] = label + "  " + valueStyle(f.Label).Render(f.Value)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
