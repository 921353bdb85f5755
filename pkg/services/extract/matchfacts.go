package extract

import (
	"context"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/geometry"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

var (
	scorePattern = regexp.MustCompile(`(\d)\s*-\s*(\d)`)
	timePattern  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// matchStatKeywords are the stat rows read off the match facts screen, in
// the order they appear. Possession is rendered as two bare percentages and
// is read the same way as the rest.
var matchStatKeywords = []string{"Possession", "Shots", "Passes", "Accuracy", "Tackles"}

// MatchFactsExtractor reads the regular match facts screen: score, both
// team names, and the home/away stat pairs anchored on each stat label.
type MatchFactsExtractor struct {
	deps Deps
}

func NewMatchFactsExtractor(deps Deps) *MatchFactsExtractor {
	return &MatchFactsExtractor{deps: deps}
}

func (e *MatchFactsExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	scoreDet, ok := findScore(dets)
	if !ok {
		return nil, &MissingAnchorError{Anchor: "score"}
	}
	m := scorePattern.FindStringSubmatch(scoreDet.Text)
	homeScore, _ := strconv.Atoi(m[1])
	awayScore, _ := strconv.Atoi(m[2])

	homeName, awayName := teamNamesAround(dets, scoreDet, e.deps.Cfg.RowYThreshold)
	if homeName == "" || awayName == "" {
		return nil, &MissingAnchorError{Anchor: "team names"}
	}

	home := domain.TeamStats{Name: homeName, Score: homeScore}
	away := domain.TeamStats{Name: awayName, Score: awayScore}

	for _, keyword := range matchStatKeywords {
		anchor, found := geometry.FindText(dets, keyword)
		if !found {
			zerolog.Ctx(ctx).Debug().Str("stat", keyword).Msg("stat label not recognized, recording zeroes")
			continue
		}
		homeVal, awayVal, ok := SideValues(dets, anchor, e.deps.Cfg.RowYThreshold)
		if !ok {
			homeVal = e.statValue(ctx, img, anchor.Quad, "left")
			awayVal = e.statValue(ctx, img, anchor.Quad, "right")
		}
		assignStat(&home, keyword, homeVal)
		assignStat(&away, keyword, awayVal)
	}

	ours, theirs, err := e.splitOursTheirs(home, away)
	if err != nil {
		return nil, err
	}
	return &domain.MatchFacts{Ours: ours, Theirs: theirs}, nil
}

// statValue reads the numeric value rendered on one side of a stat label.
// The crop is upscaled before recognition; small stat numerals are near
// unreadable at native resolution.
func (e *MatchFactsExtractor) statValue(ctx context.Context, img image.Image, anchor domain.Quad, side string) float64 {
	tpl := e.deps.Cfg.MatchStatCrop
	tpl.Side = side
	crop := vision.Upscale(CropAtAnchor(img, anchor, tpl), e.deps.Cfg.UpscaleFactor)

	v, ok := e.deps.Chain.Number(ctx, crop)
	if !ok {
		return 0
	}
	return v
}

func (e *MatchFactsExtractor) splitOursTheirs(home, away domain.TeamStats) (domain.TeamStats, domain.TeamStats, error) {
	switch {
	case Similar(e.deps.OurTeam, home.Name, teamCutoff):
		return home, away, nil
	case Similar(e.deps.OurTeam, away.Name, teamCutoff):
		return away, home, nil
	default:
		return domain.TeamStats{}, domain.TeamStats{},
			fmt.Errorf("our team %q matches neither %q nor %q", e.deps.OurTeam, home.Name, away.Name)
	}
}

func assignStat(stats *domain.TeamStats, keyword string, v float64) {
	switch keyword {
	case "Possession":
		stats.Possession = int(v)
	case "Shots":
		stats.Shots = int(v)
	case "Passes":
		stats.Passes = int(v)
	case "Accuracy":
		stats.Accuracy = v
	case "Tackles":
		stats.Tackles = int(v)
	}
}

// SideValues reads a home/away stat pair straight off the stat label's row:
// the leftmost numeric detection is the home value, the rightmost the away
// value. Assignment depends only on x position, never on discovery order.
func SideValues(dets []domain.Detection, anchor domain.Detection, yThreshold float64) (float64, float64, bool) {
	type numAt struct {
		x float64
		v float64
	}
	var nums []numAt
	for _, d := range dets {
		if d.Quad == anchor.Quad || !geometry.SameRow(d, anchor, yThreshold) {
			continue
		}
		text := strings.TrimSuffix(strings.TrimSpace(d.Text), "%")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		nums = append(nums, numAt{x: d.Quad.Center().X, v: v})
	}
	if len(nums) < 2 {
		return 0, 0, false
	}

	home, away := nums[0], nums[0]
	for _, n := range nums[1:] {
		if n.x < home.x {
			home = n
		}
		if n.x > away.x {
			away = n
		}
	}
	return home.v, away.v, true
}

func findScore(dets []domain.Detection) (domain.Detection, bool) {
	for _, d := range dets {
		if scorePattern.MatchString(d.Text) {
			return d, true
		}
	}
	return domain.Detection{}, false
}

// teamNamesAround finds the team names flanking the score: the leftmost and
// rightmost confident texts on the score's row that are neither a score nor
// a clock.
func teamNamesAround(dets []domain.Detection, score domain.Detection, yThreshold float64) (string, string) {
	var row []domain.Detection
	for _, d := range dets {
		if d.Quad == score.Quad || !geometry.SameRow(d, score, yThreshold) {
			continue
		}
		text := strings.TrimSpace(d.Text)
		if scorePattern.MatchString(text) || simScorePattern.MatchString(text) || timePattern.MatchString(text) {
			continue
		}
		row = append(row, d)
	}

	left, okL := geometry.Leftmost(row)
	right, okR := geometry.Rightmost(row)
	if !okL || !okR || left.Quad == right.Quad {
		return "", ""
	}
	return strings.TrimSpace(left.Text), strings.TrimSpace(right.Text)
}
