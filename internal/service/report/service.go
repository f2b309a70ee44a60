// internal/service/report/service.go
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"llamacrm-service/internal/domain/report"
	leadsvc "llamacrm-service/internal/service/lead"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Service snapshots the lead collection, applies the date filter and
// runs the aggregation engine. Full report payloads are cached in Redis
// for a short TTL; the cache is best-effort and a Redis failure only
// degrades to recomputing.
type Service struct {
	store  *leadsvc.Store
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(store *leadsvc.Store, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// FilteredStats computes the dashboard KPIs for the requested window.
func (s *Service) FilteredStats(rng DateRange, start, end string) report.DashboardStats {
	leads := FilterByRange(s.store.Snapshot(), rng, start, end)
	return ComputeStats(leads)
}

// Report builds the full roll-up for the requested window, serving a
// cached copy when one is fresh.
func (s *Service) Report(ctx context.Context, rng DateRange, start, end string) report.Report {
	key := s.cacheKey(rng, start, end)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached report.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	leads := FilterByRange(s.store.Snapshot(), rng, start, end)
	result := BuildReport(leads)

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
				s.logger.Warn("report cache write failed", zap.Error(err))
			}
		}
	}

	return result
}

// cacheKey includes the store version so an optimistic add or update
// immediately orphans every payload cached from the prior state; stale
// entries just expire with their TTL.
func (s *Service) cacheKey(rng DateRange, start, end string) string {
	return fmt.Sprintf("report:%d:%s:%s:%s", s.store.Version(), rng, start, end)
}
