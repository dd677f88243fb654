package cache

import (
	"context"
	"testing"
	"time"
)

type ttlRecorder struct {
	NullCache
	got time.Duration
}

func (r *ttlRecorder) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	r.got = ttl
	return nil
}

func TestWithTTL(t *testing.T) {
	ctx := context.Background()

	rec := &ttlRecorder{}
	c := WithTTL(rec, time.Minute)
	if err := c.Set(ctx, "k", []byte("v"), TTLLayout); err != nil {
		t.Fatal(err)
	}
	if rec.got != time.Minute {
		t.Errorf("ttl = %v, want %v", rec.got, time.Minute)
	}

	if WithTTL(rec, 0) != Cache(rec) {
		t.Error("zero ttl should return the cache unchanged")
	}
}
