package extract

import (
	"image"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

// CropAtAnchor crops the region an OffsetCrop template describes relative to
// an anchor quad. "left" and "right" regions are centered Offset pixels from
// the anchor center on that side; "below" regions hang under the anchor's
// bottom edge, horizontally centered on it.
func CropAtAnchor(img image.Image, anchor domain.Quad, tpl config.OffsetCrop) *image.RGBA {
	center := anchor.Center()

	var x, y int
	switch tpl.Side {
	case "right":
		x = int(center.X) + tpl.Offset - tpl.Width/2
		y = int(center.Y) - tpl.Height/2
	case "below":
		x = int(center.X) - tpl.Width/2
		y = int(anchor.Bottom()) + tpl.Offset
	default: // left
		x = int(center.X) - tpl.Offset - tpl.Width/2
		y = int(center.Y) - tpl.Height/2
	}

	return vision.CropAround(img, x, y, tpl.Width, tpl.Height)
}

// goldRatio returns the fraction of crop pixels inside the configured gold
// HSV range.
func goldRatio(crop image.Image, cfg config.Extract) float64 {
	total := crop.Bounds().Dx() * crop.Bounds().Dy()
	if total == 0 {
		return 0
	}
	gold := vision.CountInRange(crop, hsvRange("gold", cfg.GoldHSV))
	return float64(gold) / float64(total)
}

func hsvRange(name string, r config.HSVRange) vision.ColorRange {
	return vision.ColorRange{
		Name:   name,
		HueMin: r.HueMin, HueMax: r.HueMax,
		SatMin: r.SatMin, SatMax: r.SatMax,
		ValMin: r.ValMin, ValMax: r.ValMax,
	}
}

var jaroWinkler = metrics.NewJaroWinkler()

// Similar reports whether two strings are close enough to be the same name
// despite OCR noise.
func Similar(a, b string, cutoff float64) bool {
	return strutil.Similarity(a, b, jaroWinkler) >= cutoff
}

// teamCutoff is the similarity floor for matching our team name against a
// recognized one.
const teamCutoff = 0.8
