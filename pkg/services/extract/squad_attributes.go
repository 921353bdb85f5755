package extract

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

// Card sub-regions, relative to the attribute card crop.
var (
	overallRegion  = config.CropRect{X: 70, Y: 0, Width: 110, Height: 60}
	positionRegion = config.CropRect{X: 180, Y: 0, Width: 420, Height: 60}
	nameRegion     = config.CropRect{X: 50, Y: 60, Width: 650, Height: 100}
	infoRegion     = config.CropRect{X: 70, Y: 160, Width: 730, Height: 100}
	skillsRegion   = config.CropRect{X: 70, Y: 300, Width: 390, Height: 500}
)

var (
	agePattern      = regexp.MustCompile(`Age\s*(\d{1,2})`)
	heightPattern   = regexp.MustCompile(`Height\s*(\d{1,2})'(\d{1,2})?"?`)
	weightPattern   = regexp.MustCompile(`(?i)Weight\s*(\d{1,3})\s*[lI1][bB][sS]`)
	prefFootPattern = regexp.MustCompile(`(?i)Pref\.?\s*Foot\s*([LR])`)
)

var (
	fieldSkills = []string{"pace", "shooting", "passing", "dribbling", "defending", "physical"}
	gkSkills    = []string{"diving", "handling", "kicking", "reflexes", "speed", "positioning"}
)

// SquadAttributesExtractor reads one player's attribute card: overall
// rating, positions, name, biometrics, the six skill values and the
// playstyle icon strip.
type SquadAttributesExtractor struct {
	deps Deps

	bankOnce sync.Once
	banks    map[string]*vision.TemplateBank
	bankErr  error
}

func NewSquadAttributesExtractor(deps Deps) *SquadAttributesExtractor {
	return &SquadAttributesExtractor{deps: deps}
}

func (e *SquadAttributesExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	card := cropRect(img, e.deps.Cfg.AttributeCard)

	engine, err := e.deps.Manager.Engine(ctx)
	if err != nil {
		return nil, err
	}
	recognize := func(r config.CropRect) ([]domain.Detection, error) {
		return engine.Recognize(ctx, cropRect(card, r))
	}

	profile := &domain.AttributeProfile{}

	overallDets, err := recognize(overallRegion)
	if err != nil {
		return nil, err
	}
	profile.OverallRating = readOverall(overallDets)

	positionDets, err := recognize(positionRegion)
	if err != nil {
		return nil, err
	}
	profile.Positions = readPositions(positionDets)

	nameDets, err := recognize(nameRegion)
	if err != nil {
		return nil, err
	}
	profile.Name = joinTexts(nameDets)
	if profile.Name == "" {
		return nil, &MissingAnchorError{Anchor: "player name"}
	}

	infoDets, err := recognize(infoRegion)
	if err != nil {
		return nil, err
	}
	readBasicInfo(profile, joinTexts(infoDets))

	isGK := false
	for _, p := range profile.Positions {
		if p == "gk" {
			isGK = true
		}
	}

	skillDets, err := recognize(skillsRegion)
	if err != nil {
		return nil, err
	}
	profile.Skills = readSkills(skillDets, isGK)

	profile.Playstyles = e.readPlaystyles(ctx, img, isGK)

	return profile, nil
}

// readOverall extracts the 1..99 overall rating.
func readOverall(dets []domain.Detection) int {
	for _, d := range dets {
		v, err := strconv.Atoi(strings.TrimSpace(d.Text))
		if err == nil && v >= 1 && v <= 99 {
			return v
		}
	}
	return 0
}

// readPositions parses the position strip, which OCR often returns without
// separators ("STCFLW"). Longest labels are matched first.
func readPositions(dets []domain.Detection) []string {
	combined := strings.ToUpper(strings.ReplaceAll(joinTexts(dets), " ", ""))

	byLength := make([]string, len(domain.Positions))
	copy(byLength, domain.Positions)
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })

	var found []string
	for i := 0; i < len(combined); {
		matched := false
		for _, pos := range byLength {
			if strings.HasPrefix(combined[i:], pos) {
				found = append(found, strings.ToLower(pos))
				i += len(pos)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return found
}

// readBasicInfo parses age, height, weight and preferred foot from the
// card's info line. Imperial units are converted to metric.
func readBasicInfo(profile *domain.AttributeProfile, text string) {
	if m := agePattern.FindStringSubmatch(text); m != nil {
		profile.Age, _ = strconv.Atoi(m[1])
	}
	if m := heightPattern.FindStringSubmatch(text); m != nil {
		feet, _ := strconv.Atoi(m[1])
		inches := 0
		if m[2] != "" {
			inches, _ = strconv.Atoi(m[2])
		}
		profile.HeightCm = FeetToCm(feet, inches)
	}
	if m := weightPattern.FindStringSubmatch(text); m != nil {
		lbs, _ := strconv.Atoi(m[1])
		profile.WeightKg = LbsToKg(lbs)
	}
	if m := prefFootPattern.FindStringSubmatch(text); m != nil {
		profile.PreferredFoot = strings.ToUpper(m[1])
	}
}

// readSkills pairs each expected skill label with the numeric value that
// follows it, tolerating OCR noise in the label via fuzzy matching.
func readSkills(dets []domain.Detection, isGK bool) map[string]int {
	expected := fieldSkills
	if isGK {
		expected = gkSkills
	}

	sorted := make([]domain.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Quad.Top() != sorted[j].Quad.Top() {
			return sorted[i].Quad.Top() < sorted[j].Quad.Top()
		}
		return sorted[i].Quad.Left() < sorted[j].Quad.Left()
	})

	texts := make([]string, len(sorted))
	for i, d := range sorted {
		texts[i] = strings.TrimSpace(d.Text)
	}

	skills := make(map[string]int, len(expected))
	for _, skill := range expected {
		skills[skill] = 0
	}

	i := 0
	for _, skill := range expected {
		for i < len(texts)-1 {
			label, value := strings.ToLower(texts[i]), texts[i+1]
			if Similar(label, skill, 0.85) {
				if v, err := strconv.Atoi(value); err == nil {
					skills[skill] = v
					i += 2
					break
				}
			}
			i++
		}
	}
	return skills
}

// readPlaystyles classifies every icon slot in the configured strip.
func (e *SquadAttributesExtractor) readPlaystyles(ctx context.Context, img image.Image, isGK bool) []string {
	banks, err := e.templateBanks()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("playstyle templates unavailable")
		return nil
	}

	var styles []string
	for _, row := range e.deps.Cfg.PlaystyleRows {
		for i := 0; i < row.Count; i++ {
			x := row.X + i*(row.Size+row.Gap)
			icon := vision.CropAround(img, x, row.Y, row.Size, row.Size)
			styles = append(styles, e.matchIcon(icon, banks, isGK))
		}
	}
	return styles
}

func (e *SquadAttributesExtractor) matchIcon(icon image.Image, banks map[string]*vision.TemplateBank, isGK bool) string {
	resized := vision.Resize(icon, vision.TemplateSize, vision.TemplateSize)
	if vision.MeanBrightness(resized) < e.deps.Cfg.EmptySlotBrightness {
		return "none"
	}

	golden := vision.IsGoldenIcon(resized, e.deps.Cfg.GoldenMinPixels)
	bank := banks[bankName(isGK, golden)]
	if bank == nil {
		return "none"
	}

	name, score := vision.MatchTemplate(resized, bank)
	if score < e.deps.Cfg.TemplateThreshold {
		return "none"
	}
	return name
}

func bankName(isGK, golden bool) string {
	switch {
	case isGK && golden:
		return "goalkeeper_golden"
	case isGK:
		return "goalkeeper"
	case golden:
		return "golden"
	default:
		return "regular"
	}
}

// templateBanks loads the four playstyle template sets once.
func (e *SquadAttributesExtractor) templateBanks() (map[string]*vision.TemplateBank, error) {
	e.bankOnce.Do(func() {
		names := []string{"regular", "golden", "goalkeeper", "goalkeeper_golden"}
		banks := make(map[string]*vision.TemplateBank, len(names))
		for _, name := range names {
			bank, err := vision.LoadTemplateBank(name, filepath.Join(e.deps.Cfg.TemplateDir, name))
			if err != nil {
				e.bankErr = fmt.Errorf("failed to load %s templates: %w", name, err)
				return
			}
			banks[name] = bank
		}
		e.banks = banks
	})
	return e.banks, e.bankErr
}

func cropRect(img image.Image, r config.CropRect) image.Image {
	return vision.CropAround(img, r.X, r.Y, r.Width, r.Height)
}

func joinTexts(dets []domain.Detection) string {
	var parts []string
	for _, d := range dets {
		if t := strings.TrimSpace(d.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
