package visitors

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

const (
	countKey  = "visitor_count"
	visitsKey = "recent_visits"

	// recentKept bounds both the backend list and the in-process mirror.
	recentKept = 50

	// uaMaxLen truncates stored user agents.
	uaMaxLen = 100
)

// Counter records dashboard visits. The backend is chosen once at
// construction: if the remote KV answers a single ping it is used for the
// process lifetime, otherwise the counter falls back permanently to the
// in-memory store. There is no reconnect path.
type Counter struct {
	kv     KV
	remote bool
	logger *zap.Logger

	mu     sync.Mutex
	recent []models.VisitRecord
}

// New probes remote once and picks the backend. remote may be nil to force
// the in-memory store.
func New(ctx context.Context, remote KV, logger *zap.Logger) *Counter {
	c := &Counter{logger: logger}
	if remote != nil {
		err := remote.Ping(ctx)
		if err == nil {
			c.kv = remote
			c.remote = true
			logger.Info("visitor counter using remote backend")
			return c
		}
		logger.Warn("remote visitor backend unreachable, using in-memory fallback", zap.Error(err))
	}
	c.kv = NewMemoryKV()
	return c
}

// RemoteConnected reports whether the remote backend was selected at startup.
func (c *Counter) RemoteConnected() bool { return c.remote }

// RecordVisit increments the visitor count and logs a visit record to the
// backend list and the in-process mirror. The user agent is truncated to 100
// characters before storage.
func (c *Counter) RecordVisit(ctx context.Context, clientIP, userAgent string) (models.VisitRecord, error) {
	if len(userAgent) > uaMaxLen {
		userAgent = userAgent[:uaMaxLen]
	}

	seq, err := c.kv.Incr(ctx, countKey)
	if err != nil {
		return models.VisitRecord{}, err
	}
	record := models.VisitRecord{
		Timestamp: time.Now().UTC(),
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Sequence:  seq,
	}

	if payload, err := json.Marshal(record); err == nil {
		if err := c.kv.LPush(ctx, visitsKey, string(payload)); err == nil {
			if err := c.kv.LTrim(ctx, visitsKey, 0, recentKept-1); err != nil {
				c.logger.Debug("visit list trim failed", zap.Error(err))
			}
		} else {
			c.logger.Debug("visit list push failed", zap.Error(err))
		}
	}

	c.mu.Lock()
	c.recent = append([]models.VisitRecord{record}, c.recent...)
	if len(c.recent) > recentKept {
		c.recent = c.recent[:recentKept]
	}
	c.mu.Unlock()
	return record, nil
}

// Total returns the backend visitor count.
func (c *Counter) Total(ctx context.Context) (int64, error) {
	raw, err := c.kv.Get(ctx, countKey)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// Recent returns up to n visit records from the in-process mirror, newest
// first.
func (c *Counter) Recent(n int) []models.VisitRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.recent) {
		n = len(c.recent)
	}
	out := make([]models.VisitRecord, n)
	copy(out, c.recent[:n])
	return out
}

// RecentFromBackend returns up to n records from the backend list, newest
// first. Unparseable entries are skipped.
func (c *Counter) RecentFromBackend(ctx context.Context, n int) ([]models.VisitRecord, error) {
	raw, err := c.kv.LRange(ctx, visitsKey, 0, int64(n-1))
	if err != nil {
		return nil, err
	}
	records := make([]models.VisitRecord, 0, len(raw))
	for _, entry := range raw {
		var record models.VisitRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
