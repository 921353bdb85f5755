package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

func TestTypeForInitialScreen(t *testing.T) {
	tests := []struct {
		screen domain.ScreenType
		want   domain.ReportType
		found  bool
	}{
		{domain.ScreenPreMatch, domain.ReportMatch, true},
		{domain.ScreenSimPreMatch, domain.ReportSimMatch, true},
		{domain.ScreenSquadStats, domain.ReportPlayer, true},
		{domain.ScreenMatchFacts, "", false},
	}

	for _, tc := range tests {
		t.Run(string(tc.screen), func(t *testing.T) {
			got, ok := TypeForInitialScreen(tc.screen)
			require.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSpecAccepts(t *testing.T) {
	spec := Specs[domain.ReportMatch]

	assert.True(t, spec.Accepts(domain.ScreenPreMatch))
	assert.True(t, spec.Accepts(domain.ScreenMatchFacts))
	assert.True(t, spec.Accepts(domain.ScreenMatchFactsExtended))
	assert.False(t, spec.Accepts(domain.ScreenSquadStats))
	assert.False(t, spec.Accepts(domain.ScreenSimMatchFacts))
}

func TestSpecMultiCapture(t *testing.T) {
	player := Specs[domain.ReportPlayer]
	match := Specs[domain.ReportMatch]

	assert.True(t, player.IsMultiCapture(domain.ScreenSquadFinancial))
	assert.True(t, player.IsMultiCapture(domain.ScreenSquadStats))
	assert.False(t, match.IsMultiCapture(domain.ScreenMatchFacts))
}
