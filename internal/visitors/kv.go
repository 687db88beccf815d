// Package visitors implements the dashboard visitor counter on top of a
// pluggable KV backend with a sticky in-memory fallback.
package visitors

import "context"

// KV is the backend contract the counter needs: a counter, a capped list,
// and a liveness probe.
type KV interface {
	Incr(ctx context.Context, key string) (int64, error)
	LPush(ctx context.Context, key, value string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
}
