package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/models/api"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
	"github.com/jaaniles/fcore-ocr/pkg/store/reportcache"
)

func newTestServer(t *testing.T) (*httptest.Server, *report.Manager) {
	t.Helper()

	storage, err := reportcache.NewStorage(t.TempDir())
	require.NoError(t, err)
	manager := report.NewManager(storage, nil, nil)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	webAPI := NewWebAPI(logger, Config{
		Addr:         ":0",
		Dependencies: Dependencies{Reports: manager},
	})

	server := httptest.NewServer(webAPI.Handler())
	t.Cleanup(server.Close)
	return server, manager
}

func getJSON[T any](t *testing.T, url string) (int, T) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out T
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp.StatusCode, out
}

func TestListReports(t *testing.T) {
	server, manager := newTestServer(t)
	ctx := context.Background()

	t.Run("empty cache yields an empty list", func(t *testing.T) {
		status, reports := getJSON[[]api.Report](t, server.URL+"/api/v1/reports")
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, reports)
	})

	rep, err := manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)
	require.NoError(t, manager.RecordScreen(ctx, rep, domain.ScreenMatchFacts, domain.MatchFacts{
		Ours: domain.TeamStats{Name: "Real Betis", Score: 2},
	}))

	t.Run("lists captured and missing screens", func(t *testing.T) {
		status, reports := getJSON[[]api.Report](t, server.URL+"/api/v1/reports")
		require.Equal(t, http.StatusOK, status)
		require.Len(t, reports, 1)

		got := reports[0]
		assert.Equal(t, rep.Handle, got.Handle)
		assert.Equal(t, "owner-1", got.Owner)
		assert.Equal(t, string(domain.ReportMatch), got.Type)
		assert.Equal(t, string(domain.StatusInProgress), got.Status)
		assert.Contains(t, got.Screens, string(domain.ScreenMatchFacts))
		assert.Contains(t, got.Missing, string(domain.ScreenPlayerPerformance))
	})
}

func TestGetReport(t *testing.T) {
	server, manager := newTestServer(t)
	ctx := context.Background()

	rep, err := manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)
	require.NoError(t, manager.RecordScreen(ctx, rep, domain.ScreenMatchFacts, domain.MatchFacts{
		Ours:   domain.TeamStats{Name: "Real Betis", Score: 2},
		Theirs: domain.TeamStats{Name: "Sevilla", Score: 1},
	}))

	t.Run("returns the extracted payload", func(t *testing.T) {
		status, detail := getJSON[api.ReportDetail](t, server.URL+"/api/v1/reports/"+rep.Handle)
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, rep.Handle, detail.Handle)
		require.Contains(t, detail.Data, string(domain.ScreenMatchFacts))

		facts, ok := detail.Data[string(domain.ScreenMatchFacts)].(map[string]any)
		require.True(t, ok)
		ours, ok := facts["our_team"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Real Betis", ours["name"])
	})

	t.Run("unknown handle is 404", func(t *testing.T) {
		status, _ := getJSON[api.ReportDetail](t, server.URL+"/api/v1/reports/nope1234")
		assert.Equal(t, http.StatusNotFound, status)
	})
}
