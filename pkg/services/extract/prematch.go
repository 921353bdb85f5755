package extract

import (
	"context"
	"image"
	"time"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// PreMatchExtractor records the match mode the user is about to enter. The
// classifier already decided regular versus simulated from the play button
// background, so the extractor only stamps the capture.
type PreMatchExtractor struct {
	mode string
	now  func() time.Time
}

func NewPreMatchExtractor(mode string) *PreMatchExtractor {
	return &PreMatchExtractor{mode: mode, now: time.Now}
}

func (e *PreMatchExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	return &domain.PreMatch{Mode: e.mode, CapturedAt: e.now().Unix()}, nil
}
