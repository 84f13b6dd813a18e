package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		maxLen       int
		escapeMarkup bool
		want         string
	}{
		{
			name: "empty string passes through",
			in:   "",
			want: "",
		},
		{
			name: "control characters stripped",
			in:   "hello\x00wor\x07ld",
			want: "helloworld",
		},
		{
			name: "newline and tab survive",
			in:   "line one\n\tline two",
			want: "line one\n\tline two",
		},
		{
			name: "whitespace trimmed",
			in:   "  padded  ",
			want: "padded",
		},
		{
			name: "structural first character gets a leading space",
			in:   ": colon value",
			want: " : colon value",
		},
		{
			name: "ampersand anchor defused",
			in:   "&anchor",
			want: " &anchor",
		},
		{
			name: "structural character mid-string untouched",
			in:   "a: b",
			want: "a: b",
		},
		{
			name:         "markup escaping",
			in:           "a_b*c",
			escapeMarkup: true,
			want:         `a\_b\*c`,
		},
		{
			name:   "truncated to max length",
			in:     "abcdefgh",
			maxLen: 4,
			want:   "abcd",
		},
		{
			name:   "truncation counts runes not bytes",
			in:     "ééééé",
			maxLen: 3,
			want:   "ééé",
		},
		{
			name: "only control characters yields empty",
			in:   "\x00\x01\x02",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.in, tt.maxLen, tt.escapeMarkup)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDescription(t *testing.T) {
	assert.Equal(t, "Near mint, first edition", FormatDescription("near mint, first edition", 0))
	assert.Equal(t, "Già venduta", FormatDescription("già venduta", 0))
	assert.Equal(t, "", FormatDescription("   ", 0))
	assert.Equal(t, "Abc", FormatDescription("abcdef", 3))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Blue Eyes White Dragon", TitleCase("blue eyes white dragon"))
	assert.Equal(t, "Charizard Holo", TitleCase("  charizard holo  "))
	assert.Equal(t, "", TitleCase(""))
}

func TestValidMediaFilename(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"empty filename accepted", "", true},
		{"mp4 accepted", "clip.mp4", true},
		{"uppercase extension accepted", "CLIP.MOV", true},
		{"webm accepted", "video.webm", true},
		{"no extension accepted", "rawclip", true},
		{"jpeg rejected", "photo.jpg", false},
		{"executable rejected", "payload.exe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMediaFilename(tt.file))
		})
	}
}
