package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

func dets(texts ...string) []domain.Detection {
	result := make([]domain.Detection, len(texts))
	for i, text := range texts {
		result[i] = domain.Detection{
			Quad:       domain.QuadAt(float64(i)*120, 100, 100, 30),
			Text:       text,
			Confidence: 0.95,
		}
	}
	return result
}

func newTestClassifier() *Classifier {
	return New(nil, config.Classifier{WhitePixelFloor: 200, WhiteRatio: 0.5})
}

func TestClassifyDetections(t *testing.T) {
	ctx := context.Background()
	c := newTestClassifier()

	tests := []struct {
		name  string
		texts []string
		want  domain.ScreenType
	}{
		{
			name:  "match facts",
			texts: []string{"Performance", "Highlighter", "Shots", "Possession", "Tackles"},
			want:  domain.ScreenMatchFacts,
		},
		{
			name:  "player performance needs rating and position",
			texts: []string{"Ruibal", "ST", "7.2", "Williamson", "CB", "6.8"},
			want:  domain.ScreenPlayerPerformance,
		},
		{
			name:  "sim match facts",
			texts: []string{"Fitness", "Ratings", "Stats", "Gameplan", "Possession", "Shots", "Chances"},
			want:  domain.ScreenSimMatchFacts,
		},
		{
			name:  "sim performance starting eleven",
			texts: []string{"Fitness", "Ratings", "Stats", "Gameplan", "Starting", "Bench", "7.0"},
			want:  domain.ScreenSimMatchPerformance,
		},
		{
			name:  "sim performance bench variant",
			texts: []string{"Fitness", "Ratings", "Stats", "Gameplan", "Starting", "Bench", "N/A"},
			want:  domain.ScreenSimMatchPerformanceBench,
		},
		{
			name:  "extended player performance",
			texts: []string{"Player", "Performance", "Summary", "Overall", "Position"},
			want:  domain.ScreenPlayerPerformanceExtended,
		},
		{
			name:  "extended match facts",
			texts: []string{"Summary", "Possession", "Shooting", "Passing", "Defending", "Events"},
			want:  domain.ScreenMatchFactsExtended,
		},
		{
			name:  "squad financial",
			texts: []string{"Status", "Stats", "Attributes", "Financial", "Market", "Value"},
			want:  domain.ScreenSquadFinancial,
		},
		{
			name:  "squad attributes",
			texts: []string{"Status", "Stats", "Attributes", "Financial", "Weak", "Foot", "Skill", "Moves"},
			want:  domain.ScreenSquadAttributes,
		},
		{
			name:  "squad stats",
			texts: []string{"Status", "Stats", "Attributes", "Financial", "Clean", "Goals", "Competitions"},
			want:  domain.ScreenSquadStats,
		},
		{
			name:  "ratings without positions is not a performance screen",
			texts: []string{"7.2", "6.8", "somebody"},
			want:  domain.ScreenUnknown,
		},
		{
			name:  "no detections",
			texts: nil,
			want:  domain.ScreenUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.ClassifyDetections(ctx, nil, dets(tc.texts...))
			assert.Equal(t, tc.want, got)
		})
	}
}

// Rule evaluation is a pure function of the token set, so recognition
// output order must never change the verdict.
func TestClassifyDetectionsOrderInvariant(t *testing.T) {
	ctx := context.Background()
	c := newTestClassifier()

	texts := []string{"Fitness", "Ratings", "Stats", "Gameplan", "Possession", "Shots", "Chances"}
	forward := dets(texts...)

	reversed := make([]domain.Detection, len(forward))
	for i, d := range forward {
		reversed[len(forward)-1-i] = d
	}

	assert.Equal(t,
		c.ClassifyDetections(ctx, nil, forward),
		c.ClassifyDetections(ctx, nil, reversed),
	)
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize(dets("Play Match", "TACTICAL view"))

	assert.True(t, tokens["play"])
	assert.True(t, tokens["match"])
	assert.True(t, tokens["tactical"])
	assert.True(t, tokens["view"])
	assert.False(t, tokens["Play"])
}

// The match facts rule must lose to the sim layout when the sim-only
// headers are visible, whatever else matched.
func TestFailableKeywordsExcludeSimLayout(t *testing.T) {
	ctx := context.Background()
	c := newTestClassifier()

	got := c.ClassifyDetections(ctx, nil, dets(
		"Performance", "Highlighter", "Shots", "Possession",
		"Fitness", "Ratings", "Stats", "Gameplan", "Chances",
	))
	assert.Equal(t, domain.ScreenSimMatchFacts, got)
}
