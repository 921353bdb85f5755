package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"Ruibal", "Ruibal", true},
		{" De Bruyne ", "De Bruyne", true},
		{"O'Riley", "O'Riley", true},
		{"Saint-Maximin", "Saint-Maximin", true},
		{"J. Timber", "J. Timber", true},
		{"7.2", "", false},
		{"+3", "", false},
		{"A", "", false},
		{"--", "", false},
		{"X.-Y", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ValidName(tc.in)
			assert.Equal(t, tc.valid, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCaptaincy(t *testing.T) {
	t.Run("fused lowercase marker", func(t *testing.T) {
		captain, name := Captaincy("cRuibal", nil, "", domain.Detection{})
		assert.True(t, captain)
		assert.Equal(t, "Ruibal", name)
	})

	t.Run("leading marker", func(t *testing.T) {
		captain, name := Captaincy("c Ruibal", nil, "", domain.Detection{})
		assert.True(t, captain)
		assert.Equal(t, "Ruibal", name)
	})

	t.Run("trailing marker", func(t *testing.T) {
		captain, name := Captaincy("Ruibal c", nil, "", domain.Detection{})
		assert.True(t, captain)
		assert.Equal(t, "Ruibal", name)
	})

	t.Run("plain name is no captain", func(t *testing.T) {
		captain, name := Captaincy("Ruibal", nil, "", domain.Detection{})
		assert.False(t, captain)
		assert.Equal(t, "Ruibal", name)
	})

	t.Run("separate marker on the rating side", func(t *testing.T) {
		nameDet := domain.Detection{Quad: domain.QuadAt(100, 50, 120, 30), Text: "Ruibal"}
		marker := domain.Detection{Quad: domain.QuadAt(240, 50, 20, 30), Text: "C"}

		captain, name := Captaincy("Ruibal", []domain.Detection{nameDet, marker}, "home", nameDet)
		assert.True(t, captain)
		assert.Equal(t, "Ruibal", name)
	})

	t.Run("separate marker on the wrong side", func(t *testing.T) {
		nameDet := domain.Detection{Quad: domain.QuadAt(100, 50, 120, 30), Text: "Ruibal"}
		marker := domain.Detection{Quad: domain.QuadAt(240, 50, 20, 30), Text: "C"}

		captain, _ := Captaincy("Ruibal", []domain.Detection{nameDet, marker}, "away", nameDet)
		assert.False(t, captain)
	})

	t.Run("capitalized surname is untouched", func(t *testing.T) {
		captain, name := Captaincy("Casemiro", nil, "", domain.Detection{})
		assert.False(t, captain)
		assert.Equal(t, "Casemiro", name)
	})
}
