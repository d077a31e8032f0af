// Package snapshot publishes the result of the latest pipeline run for the
// reporting API. RedisStore shares it across processes; MemoryStore is the
// fallback for single-process runs.
package snapshot
