package config

// Redis backs the distributed rate limiter and the HTTP response cache for
// public listing endpoints.  Client parameters come from environment
// variables.  If the connection cannot be established at startup, the
// constructor returns nil and callers degrade gracefully by disabling
// caching and rate limiting.

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_ADDR – host:port shorthand (host/port take precedence when both are set)
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//	REDIS_TLS – enable TLS when "true" or "1"; certificates are verified
//	REDIS_TLS_SKIP_VERIFY – disable certificate verification ("true"/"1"),
//	  only for setups with self-signed certs
//
// The returned client may be nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	client := redis.NewClient(newRedisOptions())
	// Ping with a short timeout; nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// newRedisOptions assembles client options from the environment.
func newRedisOptions() *redis.Options {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	addr := os.Getenv("REDIS_ADDR")
	if host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	pwd := os.Getenv("REDIS_PASSWORD")
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}
	var tlsConf *tls.Config
	if enabledEnv(os.Getenv("REDIS_TLS")) {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
		if enabledEnv(os.Getenv("REDIS_TLS_SKIP_VERIFY")) {
			tlsConf.InsecureSkipVerify = true
		}
	}
	return &redis.Options{
		Addr:      addr,
		Password:  pwd,
		DB:        dbNum,
		TLSConfig: tlsConf,
	}
}

func enabledEnv(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}
