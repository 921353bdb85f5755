package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"800K", 800_000},
		{"1.2M", 1_200_000},
		{"E3K", 3_000},
		{"€2.5M", 2_500_000},
		{"$950", 950},
		{"1,500", 1_500},
		{"0", 0},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMoney(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unparseable", func(t *testing.T) {
		_, err := ParseMoney("n/a")
		assert.Error(t, err)
	})
}

func TestContractMonths(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1y 7m", 19},
		{"7m", 7},
		{"3y", 36},
		{"", 0},
		{"expired", 0},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ContractMonths(tc.in))
		})
	}
}

func TestFeetToCm(t *testing.T) {
	assert.InDelta(t, 182.88, FeetToCm(6, 0), 0.01)
	assert.InDelta(t, 175.26, FeetToCm(5, 9), 0.01)
}

func TestLbsToKg(t *testing.T) {
	assert.InDelta(t, 74.84, LbsToKg(165), 0.01)
}
