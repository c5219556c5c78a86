package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/models"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

type fakeSubjectAPI struct {
	mu       sync.Mutex
	listed   []models.Subject
	listErr  error
	created  *models.Subject
	updated  *models.Subject
	callErr  error
	started  chan struct{}
	listSeq  []func() ([]models.Subject, error)
	releases []chan struct{}
	listCall int
}

func (f *fakeSubjectAPI) List(ctx context.Context) ([]models.Subject, error) {
	f.mu.Lock()
	idx := f.listCall
	f.listCall++
	var next func() ([]models.Subject, error)
	if idx < len(f.listSeq) {
		next = f.listSeq[idx]
	}
	var release chan struct{}
	if idx < len(f.releases) {
		release = f.releases[idx]
	}
	listed, listErr := f.listed, f.listErr
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if next != nil {
		return next()
	}
	if listErr != nil {
		return nil, listErr
	}
	return listed, nil
}

func (f *fakeSubjectAPI) Create(ctx context.Context, payload interface{}) (*models.Subject, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.created, nil
}

func (f *fakeSubjectAPI) Update(ctx context.Context, id string, payload interface{}) (*models.Subject, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.updated, nil
}

func (f *fakeSubjectAPI) Delete(ctx context.Context, id string) error {
	return f.callErr
}

func subjects(ids ...string) []models.Subject {
	out := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Subject{ID: id, Name: "Subject " + id})
	}
	return out
}

func TestListReplacesItemsWholesale(t *testing.T) {
	api := &fakeSubjectAPI{listed: subjects("a", "b")}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())

	require.NoError(t, slice.List(context.Background()))

	snap := slice.Snapshot()
	assert.Equal(t, subjects("a", "b"), snap.Items)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

func TestListFailureLeavesItemsUntouched(t *testing.T) {
	api := &fakeSubjectAPI{listed: subjects("a")}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())
	require.NoError(t, slice.List(context.Background()))

	api.mu.Lock()
	api.listErr = appErrors.Clone(appErrors.ErrServer, "backend down")
	api.mu.Unlock()
	require.Error(t, slice.List(context.Background()))

	snap := slice.Snapshot()
	assert.Equal(t, subjects("a"), snap.Items)
	assert.Equal(t, "backend down", snap.Error)
	assert.False(t, snap.Loading)
}

func TestCreateAppendsServerEntityOnce(t *testing.T) {
	api := &fakeSubjectAPI{
		listed:  subjects("a"),
		created: &models.Subject{ID: "srv1", Name: "Chemistry"},
	}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())
	require.NoError(t, slice.List(context.Background()))

	created, err := slice.Create(context.Background(), models.Subject{Name: "Chemistry"})
	require.NoError(t, err)
	assert.Equal(t, "srv1", created.ID)

	snap := slice.Snapshot()
	count := 0
	for _, item := range snap.Items {
		if item.ID == "srv1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, snap.Success)
}

func TestCreateFailureSetsErrorOnly(t *testing.T) {
	api := &fakeSubjectAPI{
		listed:  subjects("a"),
		callErr: appErrors.Clone(appErrors.ErrValidation, "name taken"),
	}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())
	require.NoError(t, slice.List(context.Background()))

	_, err := slice.Create(context.Background(), models.Subject{})
	require.Error(t, err)

	snap := slice.Snapshot()
	assert.Equal(t, subjects("a"), snap.Items)
	assert.Equal(t, "name taken", snap.Error)
	assert.False(t, snap.Success)
}

func TestUpdateReplacesMatchedEntryInPlace(t *testing.T) {
	api := &fakeSubjectAPI{
		listed:  subjects("a", "b", "c"),
		updated: &models.Subject{ID: "b", Name: "Renamed"},
	}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())
	require.NoError(t, slice.List(context.Background()))

	_, err := slice.Update(context.Background(), "b", models.Subject{Name: "Renamed"})
	require.NoError(t, err)

	snap := slice.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, "Subject a", snap.Items[0].Name)
	assert.Equal(t, "Renamed", snap.Items[1].Name)
	assert.Equal(t, "Subject c", snap.Items[2].Name)
	assert.True(t, snap.Success)
}

func TestUpdateAbsentIDDropsSilently(t *testing.T) {
	api := &fakeSubjectAPI{
		listed:  subjects("a"),
		updated: &models.Subject{ID: "ghost", Name: "Ghost"},
	}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())
	require.NoError(t, slice.List(context.Background()))

	_, err := slice.Update(context.Background(), "ghost", models.Subject{})
	require.NoError(t, err)

	snap := slice.Snapshot()
	assert.Equal(t, subjects("a"), snap.Items)
	assert.True(t, snap.Success)
}

func TestDeleteRemovesOnlyMatch(t *testing.T) {
	api := &fakeSubjectAPI{listed: subjects("a", "b", "c")}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())
	require.NoError(t, slice.List(context.Background()))

	require.NoError(t, slice.Delete(context.Background(), "b"))

	snap := slice.Snapshot()
	assert.Equal(t, subjects("a", "c"), snap.Items)
	assert.True(t, snap.Success)
}

func TestDispatchClearsErrorAndSuccess(t *testing.T) {
	api := &fakeSubjectAPI{callErr: errors.New("boom")}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())

	_, err := slice.Create(context.Background(), models.Subject{})
	require.Error(t, err)
	assert.NotEmpty(t, slice.Snapshot().Error)

	api.callErr = nil
	api.created = &models.Subject{ID: "x"}
	_, err = slice.Create(context.Background(), models.Subject{})
	require.NoError(t, err)

	snap := slice.Snapshot()
	assert.Empty(t, snap.Error)
	assert.True(t, snap.Success)

	// success is consumed exactly once
	assert.True(t, slice.ConsumeSuccess())
	assert.False(t, slice.ConsumeSuccess())
}

func TestOnChangeFiresOnDispatchAndSettle(t *testing.T) {
	api := &fakeSubjectAPI{listed: subjects("a")}
	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())

	var mu sync.Mutex
	notified := 0
	slice.OnChange(func() {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	require.NoError(t, slice.List(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, notified)
}

func TestStaleListResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})

	api := &fakeSubjectAPI{
		started:  started,
		releases: []chan struct{}{releaseFirst, releaseSecond},
		listSeq: []func() ([]models.Subject, error){
			func() ([]models.Subject, error) { return subjects("old"), nil },
			func() ([]models.Subject, error) { return subjects("new"), nil },
		},
	}

	slice := NewSlice[models.Subject]("subjects", api, zap.NewNop())

	firstDone := make(chan struct{})
	secondDone := make(chan struct{})

	go func() {
		defer close(firstDone)
		_ = slice.List(context.Background())
	}()
	<-started // first request dispatched and blocked

	go func() {
		defer close(secondDone)
		_ = slice.List(context.Background())
	}()
	<-started // second request dispatched and blocked

	// the newer request settles first, then the older one straggles in
	close(releaseSecond)
	<-secondDone
	close(releaseFirst)
	<-firstDone

	snap := slice.Snapshot()
	assert.Equal(t, subjects("new"), snap.Items)
	assert.False(t, snap.Loading)
}
