// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Connect retries the initial ping within ConnectTimeout; Healthcheck wraps
// PING as a readiness probe. Redis is optional: Config.Enabled is false when
// REDIS_URL is unset and callers fall back to in-process state.
package redis
