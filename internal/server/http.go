package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cache"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server/models"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"
	"github.com/gorilla/mux"
)

var (
	serviceLogs   *chan<- common.ServiceLog
	dbInstance    *sql.DB
	cacheInstance cache.Cache
)

type HttpApplicationOpts struct {
	// CacheConnection provides the cache used by the dashboard
	// aggregates; aggregate queries fall through to the database when
	// the cache is unavailable
	CacheConnection cache.Cache

	// DatabaseConnection provides a connection to a MySQL compatible database
	DatabaseConnection *sql.DB

	// LivenessChecks are sequentially executed when the liveness probe endpoint is hit
	LivenessChecks []func() error

	// ReadinessChecks are sequentially executed when the readiness probe endpoint is hit
	ReadinessChecks []func() error

	// ServiceLogs is a centralised channel where logs get sent to
	ServiceLogs chan<- common.ServiceLog
}

func (o HttpApplicationOpts) Validate() error {
	errs := []error{}

	if o.CacheConnection == nil {
		errs = append(errs, fmt.Errorf("failed to receive a cache connection: %w", ErrorMissingCacheConnection))
	}

	if o.DatabaseConnection == nil {
		errs = append(errs, fmt.Errorf("failed to receive a database connection: %w", ErrorMissingDatabaseConnection))
	}

	if o.ServiceLogs == nil {
		errs = append(errs, fmt.Errorf("failed to receive a service log: %w", ErrorMissingServiceLog))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// GetHttpApplication wires the resource stores, dashboard aggregates,
// and common endpoints into a single handler
func GetHttpApplication(opts HttpApplicationOpts) (http.Handler, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialise http application: %w", err)
	}

	serviceLogs = &opts.ServiceLogs
	dbInstance = opts.DatabaseConnection
	cacheInstance = opts.CacheConnection

	handler := mux.NewRouter()
	handler.NotFoundHandler = getNotFoundHandler()
	handler.Use(common.GetRequestLoggerMiddleware(opts.ServiceLogs))
	handler.Use(common.GetCommonMetricsMiddleware(opts.ServiceLogs))
	common.RegisterCommonHttpEndpoints(common.CommonHttpEndpointsOpts{
		Router:          handler,
		ServiceLogs:     opts.ServiceLogs,
		LivenessChecks:  opts.LivenessChecks,
		ReadinessChecks: opts.ReadinessChecks,
	})

	routeOpts := RouteRegistrationOpts{
		Router:      handler,
		ServiceLogs: opts.ServiceLogs,
	}

	registerResourceRoutes(routeOpts, gateway.Users, models.UserStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.Roles, models.RoleStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.Assets, models.AssetStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.Events, models.EventStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.RawLogs, models.RawLogStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.Rules, models.RuleStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.Alerts, models.AlertStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.Incidents, models.IncidentStore{Db: dbInstance})
	registerResourceRoutes(routeOpts, gateway.AuditLogs, models.AuditLogStore{Db: dbInstance})

	registerDashboardRoutes(routeOpts, models.DashboardStore{Db: dbInstance})

	if err := handler.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}
		opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "registered route[%s] with methods[%s]", pathTemplate, strings.Join(methods, "|"))
		return nil
	}); err != nil {
		return nil, err
	}

	return handler, nil
}
