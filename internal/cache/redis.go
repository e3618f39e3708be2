package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	monitorKeyFmt     = "monitor:%d"
	monitorListKeyFmt = "monitors:location:%d"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on failure
// the client stays nil and every helper degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when the cache is unavailable.
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of code+pin for the auth cache key
func hashCredentials(code, pin string) string {
	h := sha256.New()
	h.Write([]byte(code + ":" + pin))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if a PIN verification is cached and valid
func GetCachedAuth(ctx context.Context, code, pin string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(code, pin)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches a successful PIN verification for 15 minutes
func CacheAuth(ctx context.Context, code, pin string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(code, pin)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// InvalidateAuth removes a cached PIN verification (on PIN change)
func InvalidateAuth(ctx context.Context, code, pin string) {
	if client == nil {
		return
	}
	key := hashCredentials(code, pin)
	client.Del(ctx, key)
}

// GetCachedMonitor returns a cached monitor config if available.
// Monitors change rarely but are read on every display poll.
func GetCachedMonitor(ctx context.Context, id int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(monitorKeyFmt, id)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheMonitor caches one monitor config for 5 minutes
func CacheMonitor(ctx context.Context, id int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(monitorKeyFmt, id), data, 5*time.Minute)
}

// InvalidateMonitor drops a monitor and its location list from the cache
func InvalidateMonitor(ctx context.Context, id, locationID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(monitorKeyFmt, id))
	client.Del(ctx, fmt.Sprintf(monitorListKeyFmt, locationID))
}

// GetCachedMonitorList returns a cached active-monitor list for a location
func GetCachedMonitorList(ctx context.Context, locationID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(monitorListKeyFmt, locationID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheMonitorList caches a location's active monitors for 5 minutes
func CacheMonitorList(ctx context.Context, locationID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(monitorListKeyFmt, locationID), data, 5*time.Minute)
}
