package recognition

import (
	"context"
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Chain runs the ordered numeric fallback used for small, hard-to-read
// value crops: primary engine on the color crop, primary on a grayscale
// version, then the secondary engine as a last resort. The first detection
// that parses as a number wins.
type Chain struct {
	Primary   Engine
	Secondary Engine
}

// Number extracts a numeric value from a crop. The boolean result reports
// whether any recognition path produced a parseable number; callers record
// a sentinel zero when it is false, never omitting the field.
func (c Chain) Number(ctx context.Context, crop image.Image) (float64, bool) {
	logger := zerolog.Ctx(ctx)

	if v, ok := c.tryNumber(ctx, c.Primary, crop); ok {
		return v, true
	}
	if v, ok := c.tryNumber(ctx, c.Primary, vision.Grayscale(crop)); ok {
		return v, true
	}
	if c.Secondary != nil {
		if v, ok := c.tryNumber(ctx, c.Secondary, crop); ok {
			return v, true
		}
	}

	logger.Debug().Msg("all recognition fallbacks failed to produce a number")
	return 0, false
}

func (c Chain) tryNumber(ctx context.Context, engine Engine, crop image.Image) (float64, bool) {
	if engine == nil {
		return 0, false
	}
	dets, err := engine.Recognize(ctx, crop)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("recognition attempt failed")
		return 0, false
	}
	for _, d := range dets {
		if m := numberPattern.FindString(strings.TrimSpace(d.Text)); m != "" {
			v, err := strconv.ParseFloat(m, 64)
			if err == nil {
				return v, true
			}
		}
	}
	return 0, false
}
