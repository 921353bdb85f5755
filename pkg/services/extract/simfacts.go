package extract

import (
	"context"
	"image"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

var (
	simScorePattern = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)
	penaltyPattern  = regexp.MustCompile(`(?i)(\d*)\s*PEN\s*(\d*)`)
)

// simStatKeywords are the stat columns of the simulated match facts screen.
// Each value is rendered below its label.
var simStatKeywords = []string{"Possession %", "Shots", "Chances"}

// SimFactsExtractor reads the simulated match result screen: final score
// with team names on its row, optional penalty shootout, and per-side stats
// hanging below their labels.
type SimFactsExtractor struct {
	deps Deps
}

func NewSimFactsExtractor(deps Deps) *SimFactsExtractor {
	return &SimFactsExtractor{deps: deps}
}

func (e *SimFactsExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	score, ok := e.findScore(dets)
	if !ok {
		return nil, &MissingAnchorError{Anchor: "score"}
	}
	m := simScorePattern.FindStringSubmatch(score.Text)
	homeScore, _ := strconv.Atoi(m[1])
	awayScore, _ := strconv.Atoi(m[2])

	homeName, awayName := teamNamesAround(dets, score, 30)
	if homeName == "" || awayName == "" {
		return nil, &MissingAnchorError{Anchor: "team names"}
	}

	penalties := e.findPenalties(dets)
	homeStats, awayStats := e.sideStats(ctx, img, dets, score)

	facts := &domain.SimMatchFacts{
		OurScore:   homeScore,
		TheirScore: awayScore,
		OurTeam:    homeName,
		TheirTeam:  awayName,
		Stats: domain.SimSideStats{
			OurPossession:   homeStats["Possession %"],
			TheirPossession: awayStats["Possession %"],
			OurShots:        homeStats["Shots"],
			TheirShots:      awayStats["Shots"],
			OurChances:      homeStats["Chances"],
			TheirChances:    awayStats["Chances"],
		},
	}

	ourSideIsHome := Similar(e.deps.OurTeam, homeName, teamCutoff)
	if !ourSideIsHome && !Similar(e.deps.OurTeam, awayName, teamCutoff) {
		zerolog.Ctx(ctx).Warn().
			Str("home", homeName).Str("away", awayName).
			Msg("our team matched neither side, assuming home")
		ourSideIsHome = true
	}
	if !ourSideIsHome {
		facts.OurTeam, facts.TheirTeam = awayName, homeName
		facts.OurScore, facts.TheirScore = awayScore, homeScore
		facts.Stats = domain.SimSideStats{
			OurPossession:   awayStats["Possession %"],
			TheirPossession: homeStats["Possession %"],
			OurShots:        awayStats["Shots"],
			TheirShots:      homeStats["Shots"],
			OurChances:      awayStats["Chances"],
			TheirChances:    homeStats["Chances"],
		}
	}

	if penalties != nil {
		if ourSideIsHome {
			facts.Penalties = &domain.PenaltyShootout{Ours: penalties[0], Theirs: penalties[1]}
		} else {
			facts.Penalties = &domain.PenaltyShootout{Ours: penalties[1], Theirs: penalties[0]}
		}
	}

	facts.Winner, facts.IsDraw = matchWinner(facts)
	return facts, nil
}

// matchWinner decides the result in our/their terms. A penalty shootout
// overrides the regulation score.
func matchWinner(f *domain.SimMatchFacts) (string, bool) {
	ours, theirs := f.OurScore, f.TheirScore
	if f.Penalties != nil {
		ours, theirs = f.Penalties.Ours, f.Penalties.Theirs
	}
	switch {
	case ours > theirs:
		return "ours", false
	case theirs > ours:
		return "theirs", false
	default:
		return "draw", f.Penalties == nil
	}
}

func (e *SimFactsExtractor) findScore(dets []domain.Detection) (domain.Detection, bool) {
	for _, d := range dets {
		// The penalty line also contains digits around a separator; the
		// regulation score never carries the PEN marker.
		if simScorePattern.MatchString(d.Text) && !penaltyPattern.MatchString(d.Text) {
			return d, true
		}
	}
	return domain.Detection{}, false
}

// findPenalties returns the home and away shootout scores, or nil when the
// match never went to penalties. Scores missing from the PEN line itself
// are recovered from nearby numeric detections, assigned by side.
func (e *SimFactsExtractor) findPenalties(dets []domain.Detection) *[2]int {
	var pen domain.Detection
	found := false
	home, away := -1, -1

	for _, d := range dets {
		m := penaltyPattern.FindStringSubmatch(d.Text)
		if m == nil {
			continue
		}
		pen = d
		found = true
		if m[1] != "" {
			home, _ = strconv.Atoi(m[1])
		}
		if m[2] != "" {
			away, _ = strconv.Atoi(m[2])
		}
		break
	}
	if !found {
		return nil
	}

	if home < 0 || away < 0 {
		penCenter := pen.Quad.Center()
		for _, d := range dets {
			n, err := strconv.Atoi(strings.TrimSpace(d.Text))
			if err != nil {
				continue
			}
			c := d.Quad.Center()
			if math.Abs(c.Y-penCenter.Y) > 200 || d.Quad.Bottom() < pen.Quad.Top() {
				continue
			}
			if c.X < penCenter.X && home < 0 {
				home = n
			} else if c.X > penCenter.X && away < 0 {
				away = n
			}
		}
	}
	if home < 0 || away < 0 {
		return nil
	}
	return &[2]int{home, away}
}

// sideStats reads each stat label's value from the region below it. The
// label's side is decided by comparing its x-center with the score's.
func (e *SimFactsExtractor) sideStats(ctx context.Context, img image.Image, dets []domain.Detection, score domain.Detection) (map[string]int, map[string]int) {
	home := map[string]int{}
	away := map[string]int{}
	scoreX := score.Quad.Center().X

	for _, keyword := range simStatKeywords {
		for _, d := range dets {
			if !strings.Contains(strings.ToLower(d.Text), strings.ToLower(keyword)) {
				continue
			}
			crop := vision.Upscale(CropAtAnchor(img, d.Quad, e.deps.Cfg.SimStatCrop), e.deps.Cfg.UpscaleFactor)
			v, ok := e.deps.Chain.Number(ctx, crop)
			if !ok {
				zerolog.Ctx(ctx).Debug().Str("stat", keyword).Msg("sim stat unreadable, recording zero")
				v = 0
			}
			if d.Quad.Center().X < scoreX {
				home[keyword] = int(v)
			} else {
				away[keyword] = int(v)
			}
		}
	}
	return home, away
}
