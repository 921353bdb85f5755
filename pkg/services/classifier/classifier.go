package classifier

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/geometry"
	"github.com/jaaniles/fcore-ocr/pkg/services/recognition"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

// Classifier maps a screenshot to a screen type using the keyword rules,
// with a pixel-level secondary check where two layouts share identical text.
type Classifier struct {
	manager *recognition.Manager
	cfg     config.Classifier
}

func New(manager *recognition.Manager, cfg config.Classifier) *Classifier {
	return &Classifier{manager: manager, cfg: cfg}
}

// Classify identifies the screen type of the screenshot at path. A missing
// file is a caller contract violation and the only error this method
// returns; every other failure resolves to ScreenUnknown.
func (c *Classifier) Classify(ctx context.Context, path string) (domain.ScreenType, error) {
	if _, err := os.Stat(path); err != nil {
		return domain.ScreenUnknown, fmt.Errorf("screenshot does not exist: %w", err)
	}

	img, err := vision.LoadImage(path)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to load screenshot")
		return domain.ScreenUnknown, nil
	}

	engine, err := c.manager.Engine(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("recognition engine unavailable")
		return domain.ScreenUnknown, nil
	}

	dets, err := engine.Recognize(ctx, img)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("recognition failed during classification")
		return domain.ScreenUnknown, nil
	}

	return c.ClassifyDetections(ctx, img, dets), nil
}

// ClassifyDetections runs the rule set over already-recognized output. The
// result is invariant to the order of dets.
func (c *Classifier) ClassifyDetections(ctx context.Context, img image.Image, dets []domain.Detection) domain.ScreenType {
	tokens := Tokenize(dets)
	if len(tokens) == 0 {
		return domain.ScreenUnknown
	}

	joined := joinTokens(tokens)
	hasPosition := positionPattern.MatchString(joined)

	for _, rule := range rules {
		if !rule.matches(tokens, joined, hasPosition) {
			continue
		}
		switch rule.Screen {
		case domain.ScreenSimMatchPerformance:
			// The bench view shows "n/a" ratings for unused substitutes.
			if tokens["n/a"] {
				return domain.ScreenSimMatchPerformanceBench
			}
			return domain.ScreenSimMatchPerformance
		case domain.ScreenPreMatch:
			if c.isRegularMatch(ctx, img, dets) {
				return domain.ScreenPreMatch
			}
			return domain.ScreenSimPreMatch
		default:
			return rule.Screen
		}
	}

	return domain.ScreenUnknown
}

// isRegularMatch distinguishes the regular pre-match screen from the
// simulated one. The layouts are textually identical; the selected play
// button renders the "Play Match" label on a white background.
func (c *Classifier) isRegularMatch(ctx context.Context, img image.Image, dets []domain.Detection) bool {
	anchor, ok := geometry.FindText(dets, "play match")
	if !ok {
		zerolog.Ctx(ctx).Warn().Msg("could not find play match anchor for mode check")
		return false
	}

	crop := vision.Crop(img, image.Rect(
		int(anchor.Quad.Left()), int(anchor.Quad.Top()),
		int(anchor.Quad.Right()), int(anchor.Quad.Bottom()),
	))
	return vision.WhiteRatio(crop, uint8(c.cfg.WhitePixelFloor)) > c.cfg.WhiteRatio
}

func joinTokens(tokens map[string]bool) string {
	parts := make([]string, 0, len(tokens))
	for t := range tokens {
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}
