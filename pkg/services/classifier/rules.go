package classifier

import (
	"regexp"
	"strings"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

var (
	positionPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(domain.Positions, "|") + `)\b`)
	ratingPattern   = regexp.MustCompile(`\b\d\.\d\b`)
)

// Rule describes the textual evidence for one screen type. Evaluation is a
// pure function of the token set, so shuffling recognition output never
// changes the result.
//
// A rule matches iff no failable keyword is present, every required keyword
// is present, at least one optional keyword is present when the optional set
// is non-empty, the pattern (when set) matches the joined token text, and
// the position constraints hold.
type Rule struct {
	Screen          domain.ScreenType
	Required        []string
	Optional        []string
	Failable        []string
	Pattern         *regexp.Regexp
	NeedsPosition   bool
	ForbidsPosition bool
}

func (r Rule) matches(tokens map[string]bool, joined string, hasPosition bool) bool {
	if r.NeedsPosition && !hasPosition {
		return false
	}
	if r.ForbidsPosition && hasPosition {
		return false
	}
	for _, kw := range r.Failable {
		if tokens[kw] {
			return false
		}
	}
	for _, kw := range r.Required {
		if !tokens[kw] {
			return false
		}
	}
	if len(r.Optional) > 0 {
		found := false
		for _, kw := range r.Optional {
			if tokens[kw] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.Pattern != nil && !r.Pattern.MatchString(joined) {
		return false
	}
	return true
}

// rules is the fixed priority order, most specific first. The failable sets
// keep the match/sim layouts mutually exclusive, so the first match wins.
var rules = []Rule{
	{
		Screen:          domain.ScreenMatchFacts,
		Required:        []string{"performance", "highlighter"},
		Optional:        []string{"shots", "passes", "attempted", "accuracy", "tackles", "possession"},
		Failable:        []string{"fitness", "ratings", "stats", "gameplan"},
		ForbidsPosition: true,
	},
	{
		Screen:        domain.ScreenPlayerPerformance,
		Failable:      []string{"fitness", "ratings", "stats", "gameplan", "overall", "summary"},
		Pattern:       ratingPattern,
		NeedsPosition: true,
	},
	{
		Screen:   domain.ScreenSimMatchFacts,
		Required: []string{"fitness", "ratings", "stats", "gameplan", "possession", "shots", "chances"},
	},
	{
		Screen:   domain.ScreenSimMatchPerformance,
		Required: []string{"fitness", "ratings", "stats", "gameplan", "starting", "bench"},
	},
	{
		Screen:   domain.ScreenPreMatch,
		Required: []string{"play", "match", "tactical", "view", "highlights", "customise"},
	},
	{
		Screen:   domain.ScreenPlayerPerformanceExtended,
		Required: []string{"player", "performance", "summary", "overall", "position"},
		Failable: []string{"fitness", "ratings", "stats", "gameplan"},
	},
	{
		Screen:   domain.ScreenMatchFactsExtended,
		Required: []string{"summary", "possession", "shooting", "passing", "defending", "events"},
	},
	{
		Screen:   domain.ScreenSquadFinancial,
		Required: []string{"status", "stats", "attributes", "financial", "market", "value"},
	},
	{
		Screen:   domain.ScreenSquadAttributes,
		Required: []string{"status", "stats", "attributes", "financial", "weak", "foot", "skill", "moves"},
	},
	{
		Screen:   domain.ScreenSquadStats,
		Required: []string{"status", "stats", "attributes", "financial", "clean", "goals", "competitions"},
	},
}

// Tokenize lowercases detection text and splits it into the word set the
// rules are evaluated against.
func Tokenize(dets []domain.Detection) map[string]bool {
	tokens := make(map[string]bool)
	for _, d := range dets {
		for _, word := range strings.Fields(strings.ToLower(d.Text)) {
			tokens[word] = true
		}
	}
	return tokens
}
