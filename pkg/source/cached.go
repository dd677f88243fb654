package source

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/observability"
)

// Cached keeps the roster of another source in a cache for a short time,
// so that repeated requests do not hit the member store every time.
type Cached struct {
	Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewCached wraps src. A nil keyer selects the default keyer and a zero
// ttl selects cache.TTLRoster.
func NewCached(src Source, c cache.Cache, keyer cache.Keyer, ttl time.Duration, logger *log.Logger) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl <= 0 {
		ttl = cache.TTLRoster
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{Source: src, Cache: c, Keyer: keyer, TTL: ttl, Logger: logger}
}

func (s *Cached) Members(ctx context.Context) ([]family.Member, error) {
	key := s.Keyer.RosterKey(s.Name(), s.Location())
	if data, ok, err := s.Cache.Get(ctx, key); err == nil && ok {
		if members, err := graph.UnmarshalRoster(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "roster")
			return members, nil
		}
		s.Logger.Debug("discarding unreadable cached roster", "key", key)
	} else if err != nil {
		s.Logger.Warn("roster cache unavailable", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "roster")

	members, err := s.Source.Members(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := graph.MarshalRoster(members); err == nil {
		if err := s.Cache.Set(ctx, key, data, s.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "roster", len(data))
		}
	}
	return members, nil
}

// Invalidate drops the cached roster.
func (s *Cached) Invalidate(ctx context.Context) error {
	return s.Cache.Delete(ctx, s.Keyer.RosterKey(s.Name(), s.Location()))
}
