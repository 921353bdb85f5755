package extract

import (
	"context"
	"image"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/geometry"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

// Lineup panel dimensions below the Starting 11 / Bench anchors.
const (
	lineupCropWidth  = 750
	lineupCropHeight = 775
)

var (
	startingVariants = []string{"starting 11", "starting11", "starting ll", "starting", "starting il"}
	benchVariants    = []string{"bench", "bencl", "bencll", "benchi", "benchl", "bench1", "benchil"}
)

// SimPerformanceExtractor reads one team's lineup panel off the simulated
// match performance screen. Our side of the screen is found by fuzzy
// matching the team name; the Starting 11 and Bench tab labels anchor the
// panel crop, which is re-recognized in isolation. Captaincy, substitution
// and scored-goal flags come from icon and color sampling, not text.
type SimPerformanceExtractor struct {
	deps Deps
}

func NewSimPerformanceExtractor(deps Deps) *SimPerformanceExtractor {
	return &SimPerformanceExtractor{deps: deps}
}

func (e *SimPerformanceExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	width := float64(img.Bounds().Dx())

	side, ok := e.teamSide(dets, width)
	if !ok {
		return nil, &MissingAnchorError{Anchor: "team name"}
	}

	panelX, panelY, ok := e.panelAnchor(ctx, dets, side, width)
	if !ok {
		return nil, &MissingAnchorError{Anchor: "Starting 11"}
	}

	panel := vision.CropAround(img, panelX-lineupCropWidth/2, panelY, lineupCropWidth, lineupCropHeight)

	engine, err := e.deps.Manager.Engine(ctx)
	if err != nil {
		return nil, err
	}
	panelDets, err := engine.Recognize(ctx, panel)
	if err != nil {
		return nil, err
	}

	players := e.readPlayers(panel, panelDets, side)
	if len(players) == 0 {
		return nil, &MissingAnchorError{Anchor: "player rows"}
	}
	return &domain.Lineup{Side: side, Players: players}, nil
}

// teamSide reports whether our team is rendered on the left (home) or right
// (away) half of the screen.
func (e *SimPerformanceExtractor) teamSide(dets []domain.Detection, width float64) (string, bool) {
	mid := width / 2
	for _, d := range dets {
		if !Similar(strings.ToLower(d.Text), strings.ToLower(e.deps.OurTeam), teamCutoff) {
			continue
		}
		if d.Quad.Left() < mid {
			return "home", true
		}
		return "away", true
	}
	return "", false
}

// panelAnchor locates the Starting 11 and Bench tab labels on our side and
// returns the midpoint between them plus the panel's top y. When Bench is
// unreadable the right edge of Starting 11 substitutes for the midpoint.
func (e *SimPerformanceExtractor) panelAnchor(ctx context.Context, dets []domain.Detection, side string, width float64) (int, int, bool) {
	mid := width / 2

	var starting, bench *domain.Detection
	for i, d := range dets {
		onOurSide := (side == "home" && d.Quad.Left() < mid) || (side == "away" && d.Quad.Left() >= mid)
		if !onOurSide {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(d.Text))
		if matchesAny(text, startingVariants) {
			starting = &dets[i]
		}
		if matchesAny(text, benchVariants) {
			bench = &dets[i]
		}
	}

	switch {
	case starting != nil && bench != nil:
		midX := (starting.Quad.Right() + bench.Quad.Left()) / 2
		return int(midX), int(bench.Quad.Bottom()), true
	case starting != nil:
		zerolog.Ctx(ctx).Warn().Msg("bench label not found, anchoring on starting 11 alone")
		return int(starting.Quad.Right()), int(starting.Quad.Bottom()), true
	default:
		return 0, 0, false
	}
}

func matchesAny(text string, variants []string) bool {
	for _, v := range variants {
		if Similar(text, v, 0.85) {
			return true
		}
	}
	return false
}

// readPlayers walks the panel rows top to bottom. Each row holds a name and
// a rating on the side's rating edge; the goal, captain and substitution
// markers sit at fixed offsets around the name.
func (e *SimPerformanceExtractor) readPlayers(panel image.Image, dets []domain.Detection, side string) []domain.LineupEntry {
	var players []domain.LineupEntry

	for _, row := range geometry.GroupRows(dets, e.deps.Cfg.RowYThreshold) {
		var name string
		var nameDet domain.Detection
		for _, d := range row {
			if n, ok := ValidName(d.Text); ok {
				name = n
				nameDet = d
			}
		}
		if name == "" {
			continue
		}

		entry := domain.LineupEntry{}
		for _, d := range row {
			rating, err := strconv.ParseFloat(strings.TrimSpace(d.Text), 64)
			if err != nil {
				continue
			}
			if side == "home" && d.Quad.Left() > nameDet.Quad.Right() {
				entry.Rating = rating
				break
			}
			if side == "away" && d.Quad.Left() < nameDet.Quad.Left() {
				entry.Rating = rating
				break
			}
		}

		entry.ScoredGoal = e.scoredGoal(panel, nameDet.Quad, side)
		entry.IsCaptain, name = Captaincy(name, row, side, nameDet)
		entry.IsSub = e.isSub(panel, nameDet.Quad, side, entry.IsCaptain)
		entry.Name = name

		players = append(players, entry)
	}
	return players
}

// scoredGoal checks the goal-ball slot on the panel's outer edge for the
// white ball icon.
func (e *SimPerformanceExtractor) scoredGoal(panel image.Image, name domain.Quad, side string) bool {
	tpl := e.deps.Cfg.GoalCrop

	x := tpl.Offset
	if side == "away" {
		x = panel.Bounds().Dx() - tpl.Offset - tpl.Width/2
	}
	crop := vision.CropAround(panel, x, int(name.Top())-5, tpl.Width, tpl.Height)
	return vision.WhiteRatio(crop, 200) > e.deps.Cfg.GoalWhiteRatio
}

// isSub samples the caret slot beside the name for green pixels. The slot
// shifts outward past the captain marker when one is present.
func (e *SimPerformanceExtractor) isSub(panel image.Image, name domain.Quad, side string, isCaptain bool) bool {
	tpl := e.deps.Cfg.SubCrop

	offset := tpl.Offset
	if isCaptain {
		offset += e.deps.Cfg.CaptainXOffset
	}

	var x int
	if side == "home" {
		x = int(name.Right()) + offset
	} else {
		x = int(name.Left()) - tpl.Width - offset
		if x < 0 {
			x = 0
		}
	}
	y := int(name.Center().Y) - tpl.Height/2

	crop := vision.CropAround(panel, x, y, tpl.Width, tpl.Height)
	green := vision.CountInRange(crop, hsvRange("green", e.deps.Cfg.GreenHSV))
	return green > e.deps.Cfg.SubGreenPixels
}
