package numeral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   uint16
		wantOK bool
	}{
		{name: "ascii digits", input: "13", want: 13, wantOK: true},
		{name: "leading zero", input: "02", want: 2, wantOK: true},
		{name: "full width digits", input: "１２", want: 12, wantOK: true},
		{name: "single glyph", input: "四", want: 4, wantOK: true},
		{name: "ten", input: "十", want: 10, wantOK: true},
		{name: "teens", input: "十三", want: 13, wantOK: true},
		{name: "tens", input: "二十五", want: 25, wantOK: true},
		{name: "hundreds with zero", input: "一百零五", want: 105, wantOK: true},
		{name: "thousand with explicit ten multiplier", input: "一千零一十三", want: 1013, wantOK: true},
		{name: "thousand with elided ten multiplier", input: "一千零十三", want: 1013, wantOK: true},
		{name: "traditional glyphs", input: "貳拾", want: 20, wantOK: true},
		{name: "zero", input: "零", want: 0, wantOK: true},
		{name: "ten thousand abbreviation", input: "三万五", want: 35000, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "not a number", input: "集", wantOK: false},
		{name: "ascii overflow", input: "70000", wantOK: false},
		{name: "general overflow", input: "九万", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseManual_RejectsTenThousand(t *testing.T) {
	_, ok := ParseManual("三万五")
	assert.False(t, ok, "the positional parser stops at 千")

	n, ok := ParseGeneral("三万五")
	assert.True(t, ok)
	assert.Greater(t, int(n), ManualMax)
}

func TestParseManual_AllowsOnlyOneThousand(t *testing.T) {
	n, ok := ParseManual("一千九百九十九")
	assert.True(t, ok)
	assert.Equal(t, uint16(ManualMax), n)

	_, ok = ParseManual("二千")
	assert.False(t, ok)
}

func TestParseGeneral_Abbreviations(t *testing.T) {
	tests := map[string]uint16{
		"一百五":   150,
		"一千二百三": 1230,
		"3万":    30000,
	}
	for input, want := range tests {
		got, ok := ParseGeneral(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseGeneral("一二")
	assert.False(t, ok, "adjacent digits without a unit are ambiguous")
}

func TestHasNumber(t *testing.T) {
	assert.True(t, HasNumber("第四集"))
	assert.True(t, HasNumber("S01"))
	assert.True(t, HasNumber("第貳季"))
	assert.False(t, HasNumber("Title"))
	assert.False(t, HasNumber("集"))
}
