package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
)

const (
	defaultTrendDays        = 7
	defaultTopSourcesLimit  = 5
	maximumTrendDays        = 90
	maximumTopSourcesLimit  = 50
	dashboardCacheTtl       = 60 * time.Second
	dashboardCacheKeyPrefix = "dashboard:"
)

// dashboardStore mirrors models.DashboardStore so the handlers can be
// tested without a database
type dashboardStore interface {
	EventTrend(days int) ([]gateway.EventTrendPoint, error)
	SeverityBreakdown() ([]gateway.SeverityCount, error)
	TopSources(limit int) ([]gateway.SourceCount, error)
}

func registerDashboardRoutes(opts RouteRegistrationOpts, store dashboardStore) {
	dashboard := opts.Router.PathPrefix("/dashboard").Subrouter()

	dashboard.HandleFunc("/trend", getDashboardTrendHandler(store)).Methods(http.MethodGet)
	dashboard.HandleFunc("/severity", getDashboardSeverityHandler(store)).Methods(http.MethodGet)
	dashboard.HandleFunc("/sources", getDashboardSourcesHandler(store)).Methods(http.MethodGet)

	opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "registered dashboard aggregate routes")
}

func getDashboardTrendHandler(store dashboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := getQueryInt(r, "days", defaultTrendDays)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if days < 1 || days > maximumTrendDays {
			sendDetail(w, r, http.StatusBadRequest, fmt.Sprintf("query parameter[days] must be between 1 and %v", maximumTrendDays))
			return
		}
		sendCachedAggregate(w, r, fmt.Sprintf("%strend:%v", dashboardCacheKeyPrefix, days), func() (any, error) {
			return store.EventTrend(days)
		})
	}
}

func getDashboardSeverityHandler(store dashboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendCachedAggregate(w, r, dashboardCacheKeyPrefix+"severity", func() (any, error) {
			return store.SeverityBreakdown()
		})
	}
}

func getDashboardSourcesHandler(store dashboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := getQueryInt(r, "limit", defaultTopSourcesLimit)
		if err != nil {
			sendDetail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if limit < 1 || limit > maximumTopSourcesLimit {
			sendDetail(w, r, http.StatusBadRequest, fmt.Sprintf("query parameter[limit] must be between 1 and %v", maximumTopSourcesLimit))
			return
		}
		sendCachedAggregate(w, r, fmt.Sprintf("%ssources:%v", dashboardCacheKeyPrefix, limit), func() (any, error) {
			return store.TopSources(limit)
		})
	}
}

// aggregateSourceSchemas names the resources whose rows feed the
// dashboard aggregates; mutating one of them invalidates the cached
// aggregates instead of waiting out the ttl
var aggregateSourceSchemas = map[string]bool{
	gateway.Events.Name: true,
	gateway.Alerts.Name: true,
	gateway.Assets.Name: true,
}

func invalidateCachedAggregates(r *http.Request, schema gateway.Schema) {
	if cacheInstance == nil || !aggregateSourceSchemas[schema.Name] {
		return
	}
	log := common.GetRequestLogger(r)
	keys, err := cacheInstance.Scan(dashboardCacheKeyPrefix)
	if err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to list cached aggregates: %s", err))
		return
	}
	for _, key := range keys {
		if err := cacheInstance.Del(key); err != nil {
			log(common.LogLevelWarn, fmt.Sprintf("failed to invalidate aggregate[%s]: %s", key, err))
		}
	}
}

// sendCachedAggregate serves the aggregate from cache when possible;
// cache failures degrade to a direct query and never fail the request
func sendCachedAggregate(w http.ResponseWriter, r *http.Request, cacheKey string, query func() (any, error)) {
	log := common.GetRequestLogger(r)
	if cacheInstance != nil {
		if cached, err := cacheInstance.Get(cacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}
	data, err := query()
	if err != nil {
		sendStoreError(w, r, err)
		return
	}
	res, err := json.Marshal(data)
	if err != nil {
		sendDetail(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to serialize response: %s", err))
		return
	}
	if cacheInstance != nil {
		if err := cacheInstance.Set(cacheKey, string(res), dashboardCacheTtl); err != nil {
			log(common.LogLevelWarn, fmt.Sprintf("failed to cache aggregate[%s]: %s", cacheKey, err))
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}
