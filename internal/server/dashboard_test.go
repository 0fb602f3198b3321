package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardStore struct {
	trendDays    int
	sourcesLimit int
	err          error
}

func (f *fakeDashboardStore) EventTrend(days int) ([]gateway.EventTrendPoint, error) {
	f.trendDays = days
	if f.err != nil {
		return nil, f.err
	}
	return []gateway.EventTrendPoint{{Date: "2026-08-28", Count: 3}}, nil
}

func (f *fakeDashboardStore) SeverityBreakdown() ([]gateway.SeverityCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []gateway.SeverityCount{
		{Severity: gateway.SeverityLow, Count: 1},
		{Severity: gateway.SeverityMedium, Count: 0},
		{Severity: gateway.SeverityHigh, Count: 2},
		{Severity: gateway.SeverityCritical, Count: 0},
	}, nil
}

func (f *fakeDashboardStore) TopSources(limit int) ([]gateway.SourceCount, error) {
	f.sourcesLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []gateway.SourceCount{{AssetName: "edge-fw-01", Count: 12}}, nil
}

func newDashboardTestRouter(store dashboardStore) *mux.Router {
	router := mux.NewRouter()
	registerDashboardRoutes(RouteRegistrationOpts{
		Router:      router,
		ServiceLogs: common.GetNoopServiceLog(),
	}, store)
	return router
}

func TestDashboardTrendHandler(t *testing.T) {
	store := &fakeDashboardStore{}
	router := newDashboardTestRouter(store)

	recorder := executeRequest(router, http.MethodGet, "/dashboard/trend", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, defaultTrendDays, store.trendDays)
	var trend []gateway.EventTrendPoint
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &trend))
	require.Len(t, trend, 1)

	recorder = executeRequest(router, http.MethodGet, "/dashboard/trend?days=30", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 30, store.trendDays)

	for _, target := range []string{
		"/dashboard/trend?days=0",
		"/dashboard/trend?days=91",
		"/dashboard/trend?days=week",
	} {
		recorder = executeRequest(router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}

func TestDashboardSeverityHandler(t *testing.T) {
	router := newDashboardTestRouter(&fakeDashboardStore{})

	recorder := executeRequest(router, http.MethodGet, "/dashboard/severity", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var breakdown []gateway.SeverityCount
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &breakdown))
	require.Len(t, breakdown, 4)
	assert.Equal(t, gateway.SeverityLow, breakdown[0].Severity)
	assert.Equal(t, int64(0), breakdown[3].Count)
}

func TestDashboardSourcesHandler(t *testing.T) {
	store := &fakeDashboardStore{}
	router := newDashboardTestRouter(store)

	recorder := executeRequest(router, http.MethodGet, "/dashboard/sources", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, defaultTopSourcesLimit, store.sourcesLimit)

	recorder = executeRequest(router, http.MethodGet, "/dashboard/sources?limit=51", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDashboardStoreFailureSurfacesDetail(t *testing.T) {
	router := newDashboardTestRouter(&fakeDashboardStore{err: errors.New("database gone")})

	recorder := executeRequest(router, http.MethodGet, "/dashboard/severity", "")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "database gone", decodeDetail(t, recorder))
}
