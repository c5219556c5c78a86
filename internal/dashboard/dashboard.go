package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/api"
	"github.com/noah-isme/academy-console/internal/models"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

// State classifies what the dashboard view should render.
type State int

const (
	// StateOK means the summary is fresh.
	StateOK State = iota
	// StateNoSession means no token is present; the view prompts for login.
	StateNoSession
	// StateSessionExpired means the backend reported unauthorized.
	StateSessionExpired
	// StateError means a non-auth failure; the rest of the summary still
	// renders from the last good data.
	StateError
)

// Summary is the aggregated dashboard payload.
type Summary struct {
	State     State
	Message   string
	Stats     models.DashboardStats
	Upcoming  []models.Announcement
	FetchedAt time.Time
}

type statsFetcher interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type announcementLister interface {
	List(ctx context.Context) ([]models.Announcement, error)
}

// Aggregator composes the dashboard summary from the stats endpoint and the
// announcement list. It remembers the last good data per source, so a
// transient failure degrades to a banner instead of wiping the counts.
type Aggregator struct {
	stats         statsFetcher
	announcements announcementLister
	tokens        api.TokenSource
	logger        *zap.Logger
	now           func() time.Time
	limit         int

	mu           sync.Mutex
	lastStats    models.DashboardStats
	lastUpcoming []models.Announcement
}

// AggregatorParams groups constructor dependencies.
type AggregatorParams struct {
	Stats         statsFetcher
	Announcements announcementLister
	Tokens        api.TokenSource
	Logger        *zap.Logger
	UpcomingLimit int
}

// NewAggregator constructs an Aggregator with sane defaults.
func NewAggregator(params AggregatorParams) *Aggregator {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := params.UpcomingLimit
	if limit <= 0 {
		limit = 3
	}
	return &Aggregator{
		stats:         params.Stats,
		announcements: params.Announcements,
		tokens:        params.Tokens,
		logger:        logger,
		now:           time.Now,
		limit:         limit,
	}
}

// Refresh fetches counts and announcements and classifies the outcome. A
// failure on one source does not block the other from populating, and a
// failed source keeps its last successfully fetched data.
func (a *Aggregator) Refresh(ctx context.Context) Summary {
	now := a.now()
	summary := Summary{State: StateOK, FetchedAt: now}

	if a.tokens == nil || a.tokens.Token() == "" {
		summary.State = StateNoSession
		summary.Message = appErrors.ErrNoSession.Message
		return summary
	}

	var firstErr error

	stats, statsErr := a.stats.Stats(ctx)
	if statsErr != nil {
		firstErr = statsErr
		a.logger.Warn("dashboard stats fetch failed", zap.Error(statsErr))
	}

	items, itemsErr := a.announcements.List(ctx)
	if itemsErr != nil {
		if firstErr == nil {
			firstErr = itemsErr
		}
		a.logger.Warn("dashboard announcements fetch failed", zap.Error(itemsErr))
	}

	a.mu.Lock()
	if statsErr == nil && stats != nil {
		a.lastStats = *stats
	}
	if itemsErr == nil {
		a.lastUpcoming = upcoming(items, now, a.limit)
	}
	summary.Stats = a.lastStats
	summary.Upcoming = a.lastUpcoming
	a.mu.Unlock()

	if firstErr != nil {
		if appErrors.IsUnauthorized(firstErr) {
			summary.State = StateSessionExpired
			summary.Message = appErrors.ErrSessionExpired.Message
		} else {
			summary.State = StateError
			summary.Message = appErrors.UserMessage(firstErr)
		}
	}
	return summary
}

// upcoming keeps the first limit announcements with a future start time,
// ascending by start time.
func upcoming(items []models.Announcement, now time.Time, limit int) []models.Announcement {
	future := make([]models.Announcement, 0, len(items))
	for _, item := range items {
		if item.Upcoming(now) {
			future = append(future, item)
		}
	}
	sort.Slice(future, func(i, j int) bool {
		return future[i].StartTime.Before(future[j].StartTime)
	})
	if len(future) > limit {
		future = future[:limit]
	}
	return future
}
