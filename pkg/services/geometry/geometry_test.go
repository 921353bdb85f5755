package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

func det(text string, x, y float64) domain.Detection {
	return domain.Detection{
		Quad:       domain.QuadAt(x, y, 100, 30),
		Text:       text,
		Confidence: 0.95,
	}
}

func TestGroupRows(t *testing.T) {
	t.Run("buckets by vertical proximity", func(t *testing.T) {
		dets := []domain.Detection{
			det("a", 0, 100),
			det("b", 200, 102),
			det("c", 0, 150),
		}

		rows := GroupRows(dets, 20)
		require.Len(t, rows, 2)
		assert.Len(t, rows[0], 2)
		assert.Len(t, rows[1], 1)
		assert.Equal(t, "c", rows[1][0].Text)
	})

	t.Run("orders rows top to bottom and cells left to right", func(t *testing.T) {
		dets := []domain.Detection{
			det("bottom", 0, 400),
			det("right", 500, 100),
			det("left", 0, 103),
		}

		rows := GroupRows(dets, 20)
		require.Len(t, rows, 2)
		assert.Equal(t, "left", rows[0][0].Text)
		assert.Equal(t, "right", rows[0][1].Text)
		assert.Equal(t, "bottom", rows[1][0].Text)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, GroupRows(nil, 20))
	})
}

func TestSameRow(t *testing.T) {
	a := det("a", 0, 100)
	b := det("b", 300, 105)
	c := det("c", 0, 200)

	assert.True(t, SameRow(a, b, 20))
	assert.False(t, SameRow(a, c, 20))
}

func TestNearestColumn(t *testing.T) {
	columns := map[string]float64{
		"rating":  100,
		"goals":   300,
		"assists": 500,
	}

	assert.Equal(t, "rating", NearestColumn(120, columns))
	assert.Equal(t, "goals", NearestColumn(290, columns))
	assert.Equal(t, "assists", NearestColumn(900, columns))
}

func TestFindText(t *testing.T) {
	dets := []domain.Detection{
		det("Play Match", 0, 0),
		det("Totals", 0, 50),
	}

	d, ok := FindText(dets, "play match")
	require.True(t, ok)
	assert.Equal(t, "Play Match", d.Text)

	_, ok = FindText(dets, "bench")
	assert.False(t, ok)
}

func TestFindExact(t *testing.T) {
	dets := []domain.Detection{
		det("Totals so far", 0, 0),
		det(" Totals ", 0, 50),
	}

	d, ok := FindExact(dets, "Totals")
	require.True(t, ok)
	assert.Equal(t, " Totals ", d.Text)

	_, ok = FindExact(dets, "totals")
	assert.False(t, ok)
}

func TestLeftmostRightmost(t *testing.T) {
	dets := []domain.Detection{
		det("mid", 300, 0),
		det("left", 10, 0),
		det("right", 900, 0),
	}

	l, ok := Leftmost(dets)
	require.True(t, ok)
	assert.Equal(t, "left", l.Text)

	r, ok := Rightmost(dets)
	require.True(t, ok)
	assert.Equal(t, "right", r.Text)

	_, ok = Leftmost(nil)
	assert.False(t, ok)
}

func TestSortByX(t *testing.T) {
	dets := []domain.Detection{
		det("c", 500, 0),
		det("a", 10, 0),
		det("b", 200, 0),
	}

	sorted := SortByX(dets)
	assert.Equal(t, "a", sorted[0].Text)
	assert.Equal(t, "b", sorted[1].Text)
	assert.Equal(t, "c", sorted[2].Text)
	// Input order untouched.
	assert.Equal(t, "c", dets[0].Text)
}
