package extract

import (
	"strings"
	"unicode"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

var nameMarks = map[rune]bool{'\'': true, '-': true, '.': true}

// ValidName reports whether text is plausibly a person name and returns it
// trimmed. Accepted names are at least two characters, contain no digits or
// plus signs, consist of letters, spaces, apostrophes, hyphens and periods,
// and never place two punctuation marks next to each other.
func ValidName(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < 2 {
		return "", false
	}
	if strings.ContainsAny(text, "+0123456789") {
		return "", false
	}

	runes := []rune(text)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && !nameMarks[r] {
			return "", false
		}
		if i > 0 && nameMarks[runes[i-1]] && nameMarks[r] {
			return "", false
		}
	}
	return text, true
}

// Captaincy resolves the team-captain marker around a recognized name. The
// marker appears either as a separate "c" detection next to the name (on the
// rating side for the given team side), as a leading "c " / "c." or trailing
// " c" in the name text itself, or fused to the name as a lowercase c before
// an uppercase letter ("cRuibal"). Returns the captaincy flag and the name
// with the marker stripped.
func Captaincy(name string, row []domain.Detection, side string, nameDet domain.Detection) (bool, string) {
	for _, d := range row {
		if strings.ToLower(strings.TrimSpace(d.Text)) != "c" {
			continue
		}
		switch side {
		case "home":
			if d.Quad.Left() > nameDet.Quad.Right() {
				return true, name
			}
		case "away":
			if d.Quad.Left() < nameDet.Quad.Left() {
				return true, name
			}
		}
	}

	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, " c") {
		return true, strings.TrimSpace(name[:len(name)-2])
	}
	if strings.HasPrefix(lower, "c ") || strings.HasPrefix(lower, "c.") {
		return true, strings.TrimSpace(name[2:])
	}

	runes := []rune(name)
	if runes[0] == 'c' && len(runes) > 1 && unicode.IsUpper(runes[1]) {
		return true, string(runes[1:])
	}

	return false, name
}
