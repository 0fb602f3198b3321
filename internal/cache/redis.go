package cache

import (
	"fmt"
	"time"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"

	"github.com/go-redis/redis/v7"
)

const (
	DefaultNetworkTimeout     = 5 * time.Second
	DefaultNetworkIdleTimeout = 30 * time.Second
)

// InitRedisOpts configures the InitRedis method
type InitRedisOpts struct {
	Addr     string
	Username string
	Password string

	ServiceLogs chan<- common.ServiceLog
}

// InitRedis initialises a singleton instance of a Redis cache
func InitRedis(opts InitRedisOpts) error {
	client, err := newRedis(opts)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	instance = client
	return nil
}

type redisInstance struct {
	client      *redis.Client
	serviceLogs chan<- common.ServiceLog
}

func newRedis(opts InitRedisOpts) (*redisInstance, error) {
	serviceLogs := opts.ServiceLogs
	if serviceLogs == nil {
		serviceLogs = common.GetNoopServiceLog()
	}
	instance := &redisInstance{
		serviceLogs: serviceLogs,
	}
	instance.client = redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           0,
		DialTimeout:  DefaultNetworkTimeout,
		ReadTimeout:  DefaultNetworkTimeout,
		WriteTimeout: DefaultNetworkTimeout,
		IdleTimeout:  DefaultNetworkIdleTimeout,
	})
	if err := instance.client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at addr[%s]: %v", opts.Addr, err)
	}
	return instance, nil
}

func (i *redisInstance) Set(key string, value string, ttl time.Duration) error {
	status := i.client.Set(key, value, ttl)
	if status.Err() != nil {
		return fmt.Errorf("failed to set key[%s]: %s", key, status.Err())
	}
	i.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "set key[%s]", key)
	return nil
}

func (i *redisInstance) Get(key string) (string, error) {
	response := i.client.Get(key)
	if response.Err() != nil {
		return "", fmt.Errorf("failed to get key[%s]: %s", key, response.Err())
	}
	return response.Val(), nil
}

func (i *redisInstance) Scan(prefix string) ([]string, error) {
	response := i.client.Keys(prefix + "*")
	if response.Err() != nil {
		return nil, fmt.Errorf("failed to list keys[%s]: %s", prefix, response.Err())
	}
	keys := response.Val()
	i.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "found %v keys[%s]", len(keys), prefix)
	return keys, nil
}

func (i *redisInstance) Del(key string) error {
	response := i.client.Unlink(key)
	if response.Err() != nil {
		return fmt.Errorf("failed to delete key[%s]: %s", key, response.Err())
	}
	return nil
}
