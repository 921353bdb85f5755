package vision

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// TemplateSize is the canonical edge length every icon and template is
// resized to before scoring.
const TemplateSize = 70

// TemplateBank is a named set of reference icons, keyed by icon name.
type TemplateBank struct {
	Name      string
	Templates map[string]*image.Gray
}

// LoadTemplateBank reads every PNG in dir as a grayscale template at the
// canonical size. The file name without extension becomes the icon name.
func LoadTemplateBank(name, dir string) (*TemplateBank, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template dir %s: %w", dir, err)
	}

	bank := &TemplateBank{Name: name, Templates: map[string]*image.Gray{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to open template %s: %w", entry.Name(), err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode template %s: %w", entry.Name(), err)
		}
		key := strings.TrimSuffix(entry.Name(), ".png")
		bank.Templates[key] = Grayscale(Resize(img, TemplateSize, TemplateSize))
	}
	return bank, nil
}

// normalizedCrossCorrelation scores two equally sized grayscale images in
// -1..1, with 1 a perfect match. Mean-subtracted, so uniform brightness
// shifts between capture and template do not matter.
func normalizedCrossCorrelation(a, b *image.Gray) float64 {
	ab := a.Bounds()
	bb := b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return -1
	}

	n := float64(ab.Dx() * ab.Dy())
	var sumA, sumB float64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			sumA += float64(a.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y)
			sumB += float64(b.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y)
		}
	}
	meanA := sumA / n
	meanB := sumB / n

	var cross, varA, varB float64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			da := float64(a.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y) - meanA
			db := float64(b.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y) - meanB
			cross += da * db
			varA += da * da
			varB += db * db
		}
	}
	if varA == 0 || varB == 0 {
		return -1
	}
	return cross / math.Sqrt(varA*varB)
}

// MatchTemplate scores candidate against every template in the bank and
// returns the best-scoring name with its score. The caller decides whether
// the score clears its acceptance threshold.
func MatchTemplate(candidate image.Image, bank *TemplateBank) (string, float64) {
	gray := Grayscale(Resize(candidate, TemplateSize, TemplateSize))

	best := "none"
	bestScore := -1.0
	for name, tmpl := range bank.Templates {
		score := normalizedCrossCorrelation(gray, tmpl)
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best, bestScore
}

// GoldRange is the HSV box used to recognize golden icon variants.
var GoldRange = ColorRange{
	Name:   "gold",
	HueMin: 30, HueMax: 70,
	SatMin: 0.35, SatMax: 1,
	ValMin: 0.35, ValMax: 1,
}

// IsGoldenIcon reports whether an icon crop is the golden variant, decided
// by either a gold-hue pixel count or a gem-like (five-or-more-sided)
// silhouette; the regular variant is a four-sided diamond.
func IsGoldenIcon(icon image.Image, minGoldPixels int) bool {
	if CountInRange(icon, GoldRange) > minGoldPixels {
		return true
	}
	return PolygonSides(icon, 127) >= 5
}
