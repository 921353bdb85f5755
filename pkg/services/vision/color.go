package vision

import (
	"image"
	"math"
)

// HSV is a hue (0..360), saturation (0..1), value (0..1) triple.
type HSV struct {
	H float64
	S float64
	V float64
}

// RGBToHSV converts 8-bit RGB components to HSV.
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case max == gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	s := 0.0
	if max > 0 {
		s = delta / max
	}

	return HSV{H: h, S: s, V: max}
}

// ColorRange is a named HSV box. Ranges with HueMin > HueMax wrap around
// the 360° boundary (needed for reds).
type ColorRange struct {
	Name   string
	HueMin float64
	HueMax float64
	SatMin float64
	SatMax float64
	ValMin float64
	ValMax float64
}

func (r ColorRange) contains(c HSV) bool {
	inHue := false
	if r.HueMin <= r.HueMax {
		inHue = c.H >= r.HueMin && c.H <= r.HueMax
	} else {
		inHue = c.H >= r.HueMin || c.H <= r.HueMax
	}
	return inHue &&
		c.S >= r.SatMin && c.S <= r.SatMax &&
		c.V >= r.ValMin && c.V <= r.ValMax
}

// CountInRange counts the pixels of img that fall inside the HSV range.
func CountInRange(img image.Image, r ColorRange) int {
	b := img.Bounds()
	count := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if r.contains(RGBToHSV(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8))) {
				count++
			}
		}
	}
	return count
}

// ClassifyColor assigns img to the range with the most matching pixels.
// The winner must meet minPixels or the result is "unknown"; a crop that
// matches nothing convincingly is never guessed.
func ClassifyColor(img image.Image, ranges []ColorRange, minPixels int) string {
	best := "unknown"
	bestCount := 0
	for _, r := range ranges {
		c := CountInRange(img, r)
		if c > bestCount {
			best = r.Name
			bestCount = c
		}
	}
	if bestCount < minPixels {
		return "unknown"
	}
	return best
}
