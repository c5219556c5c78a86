package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-console/internal/models"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{BaseURL: server.URL, Tokens: StaticToken(token)})
}

func TestListUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"_id":"s1","name":"Ann","email":"a@b.c","phone":"9876543210","gender":"female"}]}`))
	}, "tok")

	students, err := client.Students().List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ann", students[0].Name)
}

func TestListAcceptsBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"std1","name":"Grade 5","level":5}]`))
	}, "tok")

	standards, err := client.Standards().List(context.Background())
	require.NoError(t, err)
	require.Len(t, standards, 1)
	assert.Equal(t, 5, standards[0].Level)
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[]`))
	}, "secret-token")

	_, err := client.Subjects().List(context.Background())
	require.NoError(t, err)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}, "stale")

	_, err := client.Students().List(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsUnauthorized(err))
	assert.Equal(t, "token expired", appErrors.UserMessage(err))
}

func TestServerMessageSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"email already registered"}`))
	}, "tok")

	_, err := client.Students().Create(context.Background(), models.Student{Name: "Ann"})
	require.Error(t, err)
	assert.Equal(t, "email already registered", appErrors.UserMessage(err))
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestErrorWithoutMessageGetsFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "tok")

	_, err := client.Students().List(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, appErrors.UserMessage(err))
}

func TestNetworkFailure(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1", Tokens: StaticToken("tok")})
	_, err := client.Students().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNetwork.Code, appErrors.FromError(err).Code)
}

func TestUpdateSendsPutWithPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/subjects/sub1", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Physics", body["name"])
		_, _ = w.Write([]byte(`{"data":{"_id":"sub1","name":"Physics"}}`))
	}, "tok")

	subject, err := client.Subjects().Update(context.Background(), "sub1", models.Subject{Name: "Physics"})
	require.NoError(t, err)
	assert.Equal(t, "Physics", subject.Name)
}

func TestDeleteIgnoresBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{"data":{"_id":"b1"}}`))
	}, "tok")

	require.NoError(t, client.Batches().Delete(context.Background(), "b1"))
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token":"jwt-token","user":{"_id":"u1","name":"Admin","email":"admin@academy.local"}}`))
	}, "")

	resp, err := client.Auth().Login(context.Background(), models.LoginRequest{Email: "admin@academy.local", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "Admin", resp.User.Name)
}

func TestStatsDefaultsAbsentCountsToZero(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"totalStudents":42}}`))
	}, "tok")

	stats, err := client.Dashboard().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalStudents)
	assert.Zero(t, stats.TotalTeachers)
	assert.Zero(t, stats.ActiveBatches)
}
