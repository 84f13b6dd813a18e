// Package sanitize provides pure functions that validate and clean
// untrusted text before it enters storage.
package sanitize

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// yamlStructural is the set of characters that, in first position, could be
// misinterpreted as document structure when the store file is reloaded.
const yamlStructural = ":{}[]&*#|>'\"%@`"

// markupSpecial is the set of text-formatting control characters escaped
// when markup escaping is requested.
const markupSpecial = "_*[]()~`>#+=|{}.!-"

// mediaExtensions is the allow-list of video container extensions accepted
// for media references.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
	".mpeg": true,
	".mpg":  true,
}

var titleCaser = cases.Title(language.Und)

// Clean sanitizes untrusted input:
//
//  1. strips non-printable characters except newline and tab,
//  2. trims leading and trailing whitespace,
//  3. prepends a space when the first character is structural for the
//     storage format (format-injection defense on reload),
//  4. optionally backslash-escapes markup control characters,
//  5. truncates to maxLen runes when maxLen > 0.
func Clean(text string, maxLen int, escapeMarkup bool) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	text = strings.TrimSpace(b.String())

	if text != "" && strings.ContainsRune(yamlStructural, rune(text[0])) {
		text = " " + text
	}

	if escapeMarkup {
		var esc strings.Builder
		esc.Grow(len(text) * 2)
		for _, r := range text {
			if strings.ContainsRune(markupSpecial, r) {
				esc.WriteByte('\\')
			}
			esc.WriteRune(r)
		}
		text = esc.String()
	}

	if maxLen > 0 {
		runes := []rune(text)
		if len(runes) > maxLen {
			text = string(runes[:maxLen])
		}
	}

	return text
}

// FormatDescription cleans the text and uppercases the first character.
func FormatDescription(text string, maxLen int) string {
	text = Clean(text, maxLen, false)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TitleCase trims the text and title-cases each word, matching how card
// titles are normalized on add and update.
func TitleCase(text string) string {
	return titleCaser.String(strings.TrimSpace(text))
}

// ValidMediaFilename reports whether the supplied filename has no extension
// or an extension in the video allow-list. An empty filename is accepted:
// the transport layer performs its own media-type validation upstream.
func ValidMediaFilename(name string) bool {
	if name == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == "" || mediaExtensions[ext]
}
