package mockapi

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/api"
	"github.com/noah-isme/academy-console/internal/dashboard"
	"github.com/noah-isme/academy-console/internal/forms"
	"github.com/noah-isme/academy-console/internal/models"
	"github.com/noah-isme/academy-console/internal/store"
	"github.com/noah-isme/academy-console/pkg/config"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

// memoryTokens is a mutable TokenSource for the round-trip tests.
type memoryTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memoryTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memoryTokens) Set(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func testConfig() config.MockAPIConfig {
	return config.MockAPIConfig{
		Port:          0,
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		AdminEmail:    "admin@academy.local",
		AdminPassword: "admin123",
	}
}

func startServer(t *testing.T) (*httptest.Server, *api.Client, *memoryTokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := New(testConfig(), zap.NewNop(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tokens := &memoryTokens{}
	client := api.NewClient(api.Options{BaseURL: ts.URL + "/api", Tokens: tokens})
	return ts, client, tokens
}

func login(t *testing.T, client *api.Client, tokens *memoryTokens) {
	t.Helper()
	resp, err := client.Auth().Login(context.Background(), models.LoginRequest{
		Email:    "admin@academy.local",
		Password: "admin123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	tokens.Set(resp.Token)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	_, client, _ := startServer(t)

	_, err := client.Auth().Login(context.Background(), models.LoginRequest{
		Email:    "admin@academy.local",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsUnauthorized(err))
	assert.Equal(t, "invalid email or password", appErrors.UserMessage(err))
}

func TestProfileReturnsOperator(t *testing.T) {
	_, client, tokens := startServer(t)
	login(t, client, tokens)

	user, err := client.Auth().Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@academy.local", user.Email)
	assert.Equal(t, "admin", user.Role)
}

func TestRequestsWithoutTokenAreUnauthorized(t *testing.T) {
	_, client, _ := startServer(t)

	_, err := client.Students().List(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsUnauthorized(err))
}

func TestStudentCRUDRoundTrip(t *testing.T) {
	_, client, tokens := startServer(t)
	login(t, client, tokens)

	ctx := context.Background()
	st := store.New(client, zap.NewNop())

	require.NoError(t, st.Students().List(ctx))
	require.NoError(t, st.Standards().List(ctx))

	baseline := st.Students().Snapshot()
	require.Len(t, baseline.Items, 2)

	// the seeded student resolves her standard from the bare-id shape
	var ann *models.Student
	for i := range baseline.Items {
		if baseline.Items[i].Name == "Ann Walker" {
			ann = &baseline.Items[i]
		}
	}
	require.NotNil(t, ann)
	std := ann.Standard.Resolve(st.Standards().Snapshot().Items)
	require.NotNil(t, std)
	assert.Equal(t, "Grade 5", std.Name)

	draft := forms.StudentDraft{
		Name:       "New Kid",
		Email:      "new@example.com",
		Phone:      "9555555555",
		Gender:     "other",
		StandardID: "std2",
		ParentName: "Pat",
		Password:   "secret123",
	}
	require.NoError(t, forms.NewValidator().Check("student", draft))

	created, err := st.Students().Create(ctx, draft.Payload())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password)
	assert.True(t, st.Students().ConsumeSuccess())
	assert.Len(t, st.Students().Snapshot().Items, 3)

	update := draft
	update.Name = "New Kid Renamed"
	update.Password = ""
	updated, err := st.Students().Update(ctx, created.ID, update.Payload())
	require.NoError(t, err)
	assert.Equal(t, "New Kid Renamed", updated.Name)

	found := false
	for _, item := range st.Students().Snapshot().Items {
		if item.ID == created.ID {
			found = true
			assert.Equal(t, "New Kid Renamed", item.Name)
		}
	}
	assert.True(t, found)

	require.NoError(t, st.Students().Delete(ctx, created.ID))
	for _, item := range st.Students().Snapshot().Items {
		assert.NotEqual(t, created.ID, item.ID)
	}
}

func TestMixedResponseShapes(t *testing.T) {
	_, client, tokens := startServer(t)
	login(t, client, tokens)
	ctx := context.Background()

	// students are enveloped, standards and batches are bare
	students, err := client.Students().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, students)

	standards, err := client.Standards().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, standards)

	batches, err := client.Batches().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, batches)

	// embedded subject survives the round trip
	var evening *models.Batch
	for i := range batches {
		if batches[i].ID == "b2" {
			evening = &batches[i]
		}
	}
	require.NotNil(t, evening)
	require.NotNil(t, evening.Subject.Entity)
	assert.Equal(t, "Science", evening.Subject.Entity.Name)
}

func TestDashboardAggregationAgainstServer(t *testing.T) {
	_, client, tokens := startServer(t)
	login(t, client, tokens)

	agg := dashboard.NewAggregator(dashboard.AggregatorParams{
		Stats:         client.Dashboard(),
		Announcements: client.Announcements(),
		Tokens:        tokens,
		Logger:        zap.NewNop(),
	})

	summary := agg.Refresh(context.Background())
	require.Equal(t, dashboard.StateOK, summary.State)
	assert.Equal(t, 2, summary.Stats.TotalStudents)
	assert.Equal(t, 1, summary.Stats.ActiveBatches)
	require.Len(t, summary.Upcoming, 2)
	assert.Equal(t, "Parent meeting", summary.Upcoming[0].Title)
}

func TestNotFoundCarriesMessage(t *testing.T) {
	_, client, tokens := startServer(t)
	login(t, client, tokens)

	_, err := client.Students().Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "resource not found", appErrors.UserMessage(err))
}
