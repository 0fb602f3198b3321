package cache

import (
	"time"
)

var instance Cache

// Cache is a shared key/value store with expiring entries; the http
// service keeps its dashboard aggregates in it so that repeated
// renders don't hammer the database
type Cache interface {
	Set(key string, value string, ttl time.Duration) (err error)
	Get(key string) (value string, err error)
	Scan(prefix string) (keys []string, err error)
	Del(key string) (err error)
}

// Get returns the process-wide cache instance, nil until one of the
// initialisers has run
func Get() Cache {
	return instance
}
