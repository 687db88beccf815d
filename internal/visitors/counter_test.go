package visitors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newRedisCounter(t *testing.T) (*Counter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	counter := New(context.Background(), NewRedisKVFromClient(client), zap.NewNop())
	if !counter.RemoteConnected() {
		t.Fatal("counter did not select the reachable remote backend")
	}
	return counter, mr
}

func TestIncrementsAreMonotonic(t *testing.T) {
	counter, _ := newRedisCounter(t)
	ctx := context.Background()
	var last int64
	for i := 0; i < 10; i++ {
		record, err := counter.RecordVisit(ctx, "10.0.0.1", "curl/8.0")
		if err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
		if record.Sequence <= last {
			t.Fatalf("sequence %d not greater than previous %d", record.Sequence, last)
		}
		last = record.Sequence
	}
	total, err := counter.Total(ctx)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 10 {
		t.Errorf("total = %d, want 10", total)
	}
}

func TestFallbackWhenRemoteUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := redis.NewClient(&redis.Options{Addr: addr})
	counter := New(context.Background(), NewRedisKVFromClient(client), zap.NewNop())
	if counter.RemoteConnected() {
		t.Fatal("counter claims remote backend after failed ping")
	}

	// The fallback still counts.
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := counter.RecordVisit(ctx, "10.0.0.2", "test"); err != nil {
			t.Fatalf("RecordVisit on fallback: %v", err)
		}
	}
	total, err := counter.Total(ctx)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 3 {
		t.Errorf("fallback total = %d, want 3", total)
	}
}

func TestBackendListTrimmedToFifty(t *testing.T) {
	counter, mr := newRedisCounter(t)
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		if _, err := counter.RecordVisit(ctx, fmt.Sprintf("10.0.0.%d", i), "ua"); err != nil {
			t.Fatalf("RecordVisit %d: %v", i, err)
		}
	}
	entries, err := mr.List(visitsKey)
	if err != nil {
		t.Fatalf("reading backend list: %v", err)
	}
	if len(entries) != recentKept {
		t.Errorf("backend list length = %d, want %d", len(entries), recentKept)
	}

	recent := counter.Recent(recentKept + 10)
	if len(recent) != recentKept {
		t.Errorf("in-process mirror length = %d, want %d", len(recent), recentKept)
	}
	if recent[0].Sequence != 60 {
		t.Errorf("newest mirrored sequence = %d, want 60", recent[0].Sequence)
	}
}

func TestUserAgentTruncated(t *testing.T) {
	counter, _ := newRedisCounter(t)
	long := strings.Repeat("x", 300)
	record, err := counter.RecordVisit(context.Background(), "10.0.0.1", long)
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if len(record.UserAgent) != uaMaxLen {
		t.Errorf("user agent length = %d, want %d", len(record.UserAgent), uaMaxLen)
	}
}

func TestRecentFromBackendRoundTrips(t *testing.T) {
	counter, _ := newRedisCounter(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := counter.RecordVisit(ctx, "10.1.1.1", "agent"); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	records, err := counter.RecentFromBackend(ctx, 3)
	if err != nil {
		t.Fatalf("RecentFromBackend: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[0].Sequence != 5 {
		t.Errorf("newest backend sequence = %d, want 5", records[0].Sequence)
	}
}

// failingKV answers ping but fails everything afterwards; the counter must
// surface Incr errors and never fall back mid-flight.
type failingKV struct{}

func (failingKV) Incr(context.Context, string) (int64, error) { return 0, errors.New("down") }
func (failingKV) LPush(context.Context, string, string) error { return errors.New("down") }
func (failingKV) LTrim(context.Context, string, int64, int64) error {
	return errors.New("down")
}
func (failingKV) LRange(context.Context, string, int64, int64) ([]string, error) {
	return nil, errors.New("down")
}
func (failingKV) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingKV) Ping(context.Context) error                  { return nil }

func TestBackendChoiceIsSticky(t *testing.T) {
	counter := New(context.Background(), failingKV{}, zap.NewNop())
	if !counter.RemoteConnected() {
		t.Fatal("ping succeeded, remote should be selected")
	}
	if _, err := counter.RecordVisit(context.Background(), "10.0.0.1", "ua"); err == nil {
		t.Error("expected error from failed backend, not a silent fallback")
	}
	if !counter.RemoteConnected() {
		t.Error("backend choice must stay sticky after runtime failures")
	}
}
