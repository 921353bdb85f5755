package recognition

import (
	"context"
	"image"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// Engine turns an image region into text detections. Implementations may
// be slow and are expected to be safe for concurrent use; they must return
// an empty slice rather than nil-unsafe output when nothing is recognized.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]domain.Detection, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(ctx context.Context, img image.Image) ([]domain.Detection, error)

func (f EngineFunc) Recognize(ctx context.Context, img image.Image) ([]domain.Detection, error) {
	return f(ctx, img)
}
