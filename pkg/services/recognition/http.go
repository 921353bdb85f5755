package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// HTTPEngine talks to a local OCR sidecar over HTTP. The sidecar accepts a
// PNG body and answers with a JSON array of detections.
type HTTPEngine struct {
	url    string
	client *http.Client
}

func NewHTTPEngine(url string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type wireDetection struct {
	Box        [4][2]float64 `json:"box"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
}

func (e *HTTPEngine) Recognize(ctx context.Context, img image.Image) ([]domain.Detection, error) {
	var body bytes.Buffer
	if err := png.Encode(&body, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build recognition request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service returned %s", resp.Status)
	}

	var wire []wireDetection
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode recognition response: %w", err)
	}

	dets := make([]domain.Detection, 0, len(wire))
	for _, w := range wire {
		var quad domain.Quad
		for i, p := range w.Box {
			quad[i] = domain.Point{X: p[0], Y: p[1]}
		}
		dets = append(dets, domain.Detection{
			Quad:       quad,
			Text:       w.Text,
			Confidence: w.Confidence,
		})
	}
	return dets, nil
}
