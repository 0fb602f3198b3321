package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEventTrend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/trend", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		json.NewEncoder(w).Encode([]EventTrendPoint{
			{Date: "2026-08-26", Count: 0},
			{Date: "2026-08-27", Count: 4},
			{Date: "2026-08-28", Count: 1},
		})
	}))
	defer server.Close()

	trend, err := newTestClient(t, server.URL).GetEventTrend(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, trend, 3)
	assert.Equal(t, EventTrendPoint{Date: "2026-08-27", Count: 4}, trend[1])
}

func TestGetSeverityBreakdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/severity", r.URL.Path)
		json.NewEncoder(w).Encode([]SeverityCount{
			{Severity: SeverityLow, Count: 2},
			{Severity: SeverityMedium, Count: 0},
			{Severity: SeverityHigh, Count: 1},
			{Severity: SeverityCritical, Count: 0},
		})
	}))
	defer server.Close()

	breakdown, err := newTestClient(t, server.URL).GetSeverityBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, breakdown, 4)
	assert.Equal(t, SeverityLow, breakdown[0].Severity)
	assert.Equal(t, SeverityCritical, breakdown[3].Severity)
}

func TestGetTopSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/sources", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assetId := int64(3)
		json.NewEncoder(w).Encode([]SourceCount{
			{AssetId: &assetId, AssetName: "edge-fw-01", Count: 120},
			{AssetId: nil, AssetName: "-", Count: 6},
		})
	}))
	defer server.Close()

	sources, err := newTestClient(t, server.URL).GetTopSources(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "edge-fw-01", sources[0].AssetName)
	assert.Nil(t, sources[1].AssetId)
}
