package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory stand-in for *redis.Client.
type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, "")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("miss: hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("layout"), TTLLayout); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := fake.data[DefaultRedisPrefix+"k"]; !ok {
		t.Errorf("key not prefixed: %v", fake.data)
	}
	if fake.ttls[DefaultRedisPrefix+"k"] != TTLLayout {
		t.Errorf("ttl = %v, want %v", fake.ttls[DefaultRedisPrefix+"k"], TTLLayout)
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "layout" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after Delete")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close: err %v, closed %v", err, fake.closed)
	}
}

func TestRedisCacheBackendError(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("connection refused")
	c := newRedisCache(fake, "test:")

	_, hit, err := c.Get(context.Background(), "k")
	if err == nil || hit {
		t.Errorf("Get = hit %v, err %v; want backend error", hit, err)
	}
}

func TestRedisCacheNegativeTTL(t *testing.T) {
	fake := newFakeRedis()
	c := newRedisCache(fake, "test:")
	_ = c.Set(context.Background(), "k", []byte("v"), -time.Second)
	if fake.ttls["test:k"] != 0 {
		t.Errorf("ttl = %v, want 0", fake.ttls["test:k"])
	}
}
