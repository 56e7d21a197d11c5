package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/rs/zerolog"

	"clientdesk/internal/cache"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
)

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 30 * time.Second
	recentLimit     = 10
)

// DashboardService composes client aggregates into a single summary.
type DashboardService interface {
	// Summarize never fails: any underlying failure is logged and replaced
	// by a zero-valued summary so the caller can always render something.
	Summarize(ctx context.Context) model.Summary
	// InvalidateCache drops the cached summary after a mutation.
	InvalidateCache(ctx context.Context)
}

type dashboardService struct {
	clients repository.ClientRepository
	cache   *cache.Client
	log     zerolog.Logger
	now     func() time.Time
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(clients repository.ClientRepository, cacheClient *cache.Client, log zerolog.Logger) DashboardService {
	return &dashboardService{clients: clients, cache: cacheClient, log: log, now: time.Now}
}

func (s *dashboardService) Summarize(ctx context.Context) model.Summary {
	if data := s.cache.Get(ctx, summaryCacheKey); data != nil {
		var cached model.Summary
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	stats, err := s.clients.CategoryCounts(ctx)
	if err != nil {
		return s.fallback(err)
	}
	total, err := s.clients.CountAll(ctx)
	if err != nil {
		return s.fallback(err)
	}
	categories, err := s.clients.CountCategories(ctx)
	if err != nil {
		return s.fallback(err)
	}
	recent, err := s.clients.Recent(ctx, recentLimit)
	if err != nil {
		return s.fallback(err)
	}

	var avg float64
	if categories > 0 {
		avg = math.Round(float64(total)/float64(categories)*10) / 10
	}
	var largest int64
	if len(stats) > 0 {
		largest = stats[0].Count
	}

	summary := model.Summary{
		Categories:            stats,
		TotalClients:          total,
		TotalCategories:       categories,
		AvgClientsPerCategory: avg,
		LargestCategory:       largest,
		RecentClients:         recent,
		GeneratedAt:           s.now(),
	}

	if payload, err := json.Marshal(summary); err == nil {
		s.cache.Set(ctx, summaryCacheKey, payload, summaryCacheTTL)
	}
	return summary
}

// fallback absorbs the failure and returns the documented empty summary.
// The error still reaches the log so a broken database is not invisible.
func (s *dashboardService) fallback(err error) model.Summary {
	s.log.Error().Err(err).Msg("dashboard aggregation failed, serving empty summary")
	return model.Summary{
		Categories:    []model.CategoryStat{},
		RecentClients: []model.RecentClient{},
		GeneratedAt:   s.now(),
	}
}

func (s *dashboardService) InvalidateCache(ctx context.Context) {
	s.cache.Delete(ctx, summaryCacheKey)
}
