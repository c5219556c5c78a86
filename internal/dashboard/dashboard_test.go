package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/api"
	"github.com/noah-isme/academy-console/internal/models"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

type fakeStats struct {
	stats *models.DashboardStats
	err   error
}

func (f *fakeStats) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return f.stats, f.err
}

type fakeAnnouncements struct {
	items []models.Announcement
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeAnnouncements) List(ctx context.Context) ([]models.Announcement, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.items, f.err
}

func (f *fakeAnnouncements) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func announcementAt(id string, start time.Time) models.Announcement {
	return models.Announcement{ID: id, Title: "A " + id, StartTime: start}
}

func newAggregator(stats *fakeStats, ann *fakeAnnouncements, token string) *Aggregator {
	return NewAggregator(AggregatorParams{
		Stats:         stats,
		Announcements: ann,
		Tokens:        api.StaticToken(token),
		Logger:        zap.NewNop(),
	})
}

func TestRefreshNoToken(t *testing.T) {
	agg := newAggregator(&fakeStats{}, &fakeAnnouncements{}, "")
	summary := agg.Refresh(context.Background())
	assert.Equal(t, StateNoSession, summary.State)
}

func TestRefreshUnauthorized(t *testing.T) {
	stats := &fakeStats{err: appErrors.Clone(appErrors.ErrSessionExpired, "token expired")}
	agg := newAggregator(stats, &fakeAnnouncements{}, "stale-token")

	summary := agg.Refresh(context.Background())
	assert.Equal(t, StateSessionExpired, summary.State)
}

func TestRefreshGenericErrorDoesNotBlockAnnouncements(t *testing.T) {
	now := time.Now()
	stats := &fakeStats{err: appErrors.Clone(appErrors.ErrServer, "stats unavailable")}
	ann := &fakeAnnouncements{items: []models.Announcement{announcementAt("a1", now.Add(time.Hour))}}
	agg := newAggregator(stats, ann, "tok")

	summary := agg.Refresh(context.Background())
	assert.Equal(t, StateError, summary.State)
	assert.Equal(t, "stats unavailable", summary.Message)
	require.Len(t, summary.Upcoming, 1)
}

func TestRefreshUpcomingTopThreeSorted(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ann := &fakeAnnouncements{items: []models.Announcement{
		announcementAt("past", now.Add(-time.Hour)),
		announcementAt("d", now.Add(4*time.Hour)),
		announcementAt("b", now.Add(2*time.Hour)),
		announcementAt("a", now.Add(time.Hour)),
		announcementAt("c", now.Add(3*time.Hour)),
	}}
	agg := newAggregator(&fakeStats{stats: &models.DashboardStats{TotalStudents: 7}}, ann, "tok")
	agg.now = func() time.Time { return now }

	summary := agg.Refresh(context.Background())
	require.Equal(t, StateOK, summary.State)
	assert.Equal(t, 7, summary.Stats.TotalStudents)
	require.Len(t, summary.Upcoming, 3)
	assert.Equal(t, "a", summary.Upcoming[0].ID)
	assert.Equal(t, "b", summary.Upcoming[1].ID)
	assert.Equal(t, "c", summary.Upcoming[2].ID)
}

func TestRefreshKeepsLastGoodDataOnFailure(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stats := &fakeStats{stats: &models.DashboardStats{TotalStudents: 42}}
	ann := &fakeAnnouncements{items: []models.Announcement{announcementAt("a1", now.Add(time.Hour))}}
	agg := newAggregator(stats, ann, "tok")
	agg.now = func() time.Time { return now }

	first := agg.Refresh(context.Background())
	require.Equal(t, StateOK, first.State)
	assert.Equal(t, 42, first.Stats.TotalStudents)
	require.Len(t, first.Upcoming, 1)

	stats.err = appErrors.Clone(appErrors.ErrServer, "stats unavailable")
	ann.err = appErrors.Clone(appErrors.ErrServer, "announcements unavailable")

	second := agg.Refresh(context.Background())
	assert.Equal(t, StateError, second.State)
	assert.Equal(t, "stats unavailable", second.Message)
	assert.Equal(t, 42, second.Stats.TotalStudents)
	require.Len(t, second.Upcoming, 1)
	assert.Equal(t, "a1", second.Upcoming[0].ID)
}

func TestRefreshNilStatsDefaultsToZero(t *testing.T) {
	agg := newAggregator(&fakeStats{stats: &models.DashboardStats{}}, &fakeAnnouncements{}, "tok")
	summary := agg.Refresh(context.Background())
	assert.Equal(t, StateOK, summary.State)
	assert.Zero(t, summary.Stats.TotalStudents)
	assert.Zero(t, summary.Stats.TotalBatches)
}

func TestPollerEmitsImmediatelyAndStops(t *testing.T) {
	ann := &fakeAnnouncements{}
	agg := newAggregator(&fakeStats{stats: &models.DashboardStats{}}, ann, "tok")

	var mu sync.Mutex
	var updates []Summary
	poller := NewPoller(agg, time.Hour, func(s Summary) {
		mu.Lock()
		updates = append(updates, s)
		mu.Unlock()
	}, zap.NewNop())

	poller.Start(context.Background())
	poller.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 1)
	assert.Equal(t, StateOK, updates[0].State)
	assert.Equal(t, 1, ann.callCount())
}
