package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

func statRow(anchorText string, leftVal, rightVal string) []domain.Detection {
	return []domain.Detection{
		{Quad: domain.QuadAt(900, 500, 120, 40), Text: anchorText, Confidence: 0.98},
		{Quad: domain.QuadAt(400, 505, 60, 40), Text: leftVal, Confidence: 0.97},
		{Quad: domain.QuadAt(1400, 505, 60, 40), Text: rightVal, Confidence: 0.97},
	}
}

func TestSideValues(t *testing.T) {
	t.Run("left is home, right is away", func(t *testing.T) {
		dets := statRow("Shots", "12", "7")

		home, away, ok := SideValues(dets, dets[0], 20)
		require.True(t, ok)
		assert.Equal(t, 12.0, home)
		assert.Equal(t, 7.0, away)
	})

	t.Run("assignment ignores discovery order", func(t *testing.T) {
		dets := statRow("Shots", "12", "7")
		shuffled := []domain.Detection{dets[2], dets[0], dets[1]}

		home, away, ok := SideValues(shuffled, dets[0], 20)
		require.True(t, ok)
		assert.Equal(t, 12.0, home)
		assert.Equal(t, 7.0, away)
	})

	t.Run("percent signs are stripped", func(t *testing.T) {
		dets := statRow("Possession", "64%", "36%")

		home, away, ok := SideValues(dets, dets[0], 20)
		require.True(t, ok)
		assert.Equal(t, 64.0, home)
		assert.Equal(t, 36.0, away)
	})

	t.Run("one number is not enough", func(t *testing.T) {
		dets := []domain.Detection{
			{Quad: domain.QuadAt(900, 500, 120, 40), Text: "Shots", Confidence: 0.98},
			{Quad: domain.QuadAt(400, 505, 60, 40), Text: "12", Confidence: 0.97},
		}

		_, _, ok := SideValues(dets, dets[0], 20)
		assert.False(t, ok)
	})

	t.Run("other rows do not leak in", func(t *testing.T) {
		dets := statRow("Shots", "12", "7")
		dets = append(dets, domain.Detection{
			Quad: domain.QuadAt(400, 700, 60, 40), Text: "99", Confidence: 0.97,
		})

		home, away, ok := SideValues(dets, dets[0], 20)
		require.True(t, ok)
		assert.Equal(t, 12.0, home)
		assert.Equal(t, 7.0, away)
	})
}

func TestTeamNamesAround(t *testing.T) {
	score := domain.Detection{Quad: domain.QuadAt(900, 100, 120, 50), Text: "2 - 1", Confidence: 0.99}
	dets := []domain.Detection{
		score,
		{Quad: domain.QuadAt(300, 105, 200, 40), Text: "Real Betis", Confidence: 0.98},
		{Quad: domain.QuadAt(1400, 105, 200, 40), Text: "Sevilla", Confidence: 0.98},
		{Quad: domain.QuadAt(1000, 108, 60, 30), Text: "90:00", Confidence: 0.95},
	}

	home, away := teamNamesAround(dets, score, 20)
	assert.Equal(t, "Real Betis", home)
	assert.Equal(t, "Sevilla", away)
}

func TestFindScore(t *testing.T) {
	dets := []domain.Detection{
		{Quad: domain.QuadAt(0, 0, 100, 30), Text: "Real Betis", Confidence: 0.98},
		{Quad: domain.QuadAt(900, 0, 100, 30), Text: "3 - 2", Confidence: 0.98},
	}

	d, ok := findScore(dets)
	require.True(t, ok)
	assert.Equal(t, "3 - 2", d.Text)

	_, ok = findScore(dets[:1])
	assert.False(t, ok)
}
