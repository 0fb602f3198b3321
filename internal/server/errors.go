package server

import "errors"

var (
	ErrorMissingCacheConnection    = errors.New("missing_cache_connection")
	ErrorMissingDatabaseConnection = errors.New("missing_database_connection")
	ErrorMissingServiceLog         = errors.New("missing_service_log")
	ErrorInvalidResourceId         = errors.New("invalid_resource_id")
)
