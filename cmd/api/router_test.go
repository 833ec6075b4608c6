package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialfeed-backend/internal/config"
	accountHandler "socialfeed-backend/internal/domains/account/handler"
	accountRepo "socialfeed-backend/internal/domains/account/repository"
	accountService "socialfeed-backend/internal/domains/account/service"
	authHandler "socialfeed-backend/internal/domains/auth/handler"
	authService "socialfeed-backend/internal/domains/auth/service"
	feedHandler "socialfeed-backend/internal/domains/feed/handler"
	feedService "socialfeed-backend/internal/domains/feed/service"
	followHandler "socialfeed-backend/internal/domains/follow/handler"
	followService "socialfeed-backend/internal/domains/follow/service"
	"socialfeed-backend/internal/domains/post"
	postHandler "socialfeed-backend/internal/domains/post/handler"
	postService "socialfeed-backend/internal/domains/post/service"
	"socialfeed-backend/internal/infrastructure/events"
	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/pkg/cache"
	"socialfeed-backend/pkg/container"
	"socialfeed-backend/pkg/jwt"
	"socialfeed-backend/pkg/testutil/memstore"
)

const testPageSize = 2

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router   *gin.Engine
	store    *memstore.Store
	recorder *events.Recorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memstore.New()
	rec := &events.Recorder{}
	memCache := cache.NewMemory()

	c := &container.Container{
		Config: &config.Config{
			App:        config.AppConfig{Version: "test"},
			Pagination: config.PaginationConfig{PageSize: testPageSize},
		},
		Cache:       memCache,
		JWTManager:  jwt.NewManager("router-test-secret", 5*time.Minute, time.Hour),
		Publisher:   rec,
		Metrics:     middleware.NewMetrics("router_test"),
		RateLimiter: middleware.NewRateLimiter(1000, 1000),
	}

	c.AccountRepo = accountRepo.NewCachedRepository(store.Accounts(), memCache, time.Minute)
	c.PostRepo = store.Posts()
	c.FollowRepo = store.Follows()
	c.FeedRepo = store.Feed()

	c.AccountService = accountService.NewAccountService(c.AccountRepo, rec, accountService.WithPasswordCost(bcrypt.MinCost))
	c.AuthService = authService.NewAuthService(c.AccountRepo, c.JWTManager)
	c.PostService = postService.NewPostService(c.PostRepo, rec)
	c.FollowService = followService.NewFollowService(c.FollowRepo, rec)
	c.FeedService = feedService.NewFeedService(c.FeedRepo)

	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService, testPageSize)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, testPageSize)
	c.FollowHandler = followHandler.NewFollowHandler(c.FollowService, testPageSize)
	c.FeedHandler = feedHandler.NewFeedHandler(c.FeedService, testPageSize)

	return &testApp{router: SetupRouter(c), store: store, recorder: rec}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Count    int  `json:"count"`
		Page     int  `json:"page"`
		Next     *int `json:"next"`
		Previous *int `json:"previous"`
	} `json:"meta"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type accountBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type postBody struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	User    string `json:"user"`
}

// register tạo account có password rồi obtain access token
func (a *testApp) register(t *testing.T, username string) (string, string) {
	t.Helper()

	status, env := a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusCreated, status)
	acc := decode[accountBody](t, env.Data)

	status, env = a.do(t, http.MethodPost, "/api/v1/token", "", gin.H{
		"username": username,
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusOK, status)
	pair := decode[map[string]string](t, env.Data)
	require.NotEmpty(t, pair["access"])
	require.NotEmpty(t, pair["refresh"])

	return acc.ID, pair["access"]
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/accounts", "/api/v1/posts", "/api/v1/follows", "/api/v1/feed"} {
		status, env := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		require.NotNil(t, env.Error)
		assert.Equal(t, middleware.MsgCredentialsNotProvided, env.Error.Message)
	}
}

func TestTokenEndpoints(t *testing.T) {
	app := newTestApp(t)
	_, _ = app.register(t, "alice")

	status, env := app.do(t, http.MethodPost, "/api/v1/token", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No active account found with the given credentials", env.Error.Message)

	status, env = app.do(t, http.MethodPost, "/api/v1/token", "", gin.H{"username": "alice", "password": "password-alice"})
	require.Equal(t, http.StatusOK, status)
	pair := decode[map[string]string](t, env.Data)

	status, env = app.do(t, http.MethodPost, "/api/v1/token/refresh", "", gin.H{"refresh": pair["refresh"]})
	require.Equal(t, http.StatusOK, status)
	refreshed := decode[map[string]string](t, env.Data)
	assert.NotEmpty(t, refreshed["access"])

	status, env = app.do(t, http.MethodPost, "/api/v1/token/refresh", "", gin.H{"refresh": pair["access"]})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token is invalid or expired", env.Error.Message)

	status, env = app.do(t, http.MethodPost, "/api/v1/token", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Details, "username")
	assert.Contains(t, env.Error.Details, "password")
}

func TestAccountEndpoints(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "alice")

	status, env := app.do(t, http.MethodPost, "/api/v1/accounts", token, gin.H{"username": "bob", "bio": "hello"})
	require.Equal(t, http.StatusCreated, status)
	bob := decode[accountBody](t, env.Data)
	assert.NotContains(t, string(env.Data), "password")

	status, env = app.do(t, http.MethodPost, "/api/v1/accounts", token, gin.H{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []string{"A user with that username already exists."}, env.Error.Details["username"])

	status, _ = app.do(t, http.MethodGet, "/api/v1/accounts/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = app.do(t, http.MethodPatch, "/api/v1/accounts/"+bob.ID, token, gin.H{"bio": "updated"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"bio":"updated"`)

	status, env = app.do(t, http.MethodPut, "/api/v1/accounts/"+bob.ID, token, gin.H{"bio": "no username"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Details, "username")

	status, env = app.do(t, http.MethodGet, "/api/v1/accounts", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, env.Meta.Count)

	status, env = app.do(t, http.MethodGet, "/api/v1/accounts?page=9", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Invalid page.", env.Error.Message)

	status, _ = app.do(t, http.MethodDelete, "/api/v1/accounts/"+bob.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = app.do(t, http.MethodGet, "/api/v1/accounts/"+bob.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found.", env.Error.Message)

	assert.Contains(t, app.recorder.Types(), events.AccountDeleted)
}

func TestPostOwnership(t *testing.T) {
	app := newTestApp(t)
	aliceID, aliceToken := app.register(t, "alice")
	_, bobToken := app.register(t, "bob")

	status, env := app.do(t, http.MethodPost, "/api/v1/posts", aliceToken, gin.H{
		"content": "hello",
		"user":    "00000000-0000-0000-0000-000000000001",
		"media":   "https://cdn.example.com/a.png",
	})
	require.Equal(t, http.StatusCreated, status)
	p := decode[postBody](t, env.Data)
	assert.Equal(t, aliceID, p.User)

	status, env = app.do(t, http.MethodPost, "/api/v1/posts", aliceToken, gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Details, "content")

	status, _ = app.do(t, http.MethodGet, "/api/v1/posts/"+p.ID, bobToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = app.do(t, http.MethodPatch, "/api/v1/posts/"+p.ID, bobToken, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You do not have permission to perform this action.", env.Error.Message)

	status, _ = app.do(t, http.MethodDelete, "/api/v1/posts/"+p.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = app.do(t, http.MethodPut, "/api/v1/posts/"+p.ID, aliceToken, gin.H{"content": "edited"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "edited", decode[postBody](t, env.Data).Content)

	status, _ = app.do(t, http.MethodDelete, "/api/v1/posts/"+p.ID, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = app.do(t, http.MethodPatch, "/api/v1/posts/"+p.ID, bobToken, gin.H{"content": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFollowAndFeedFlow(t *testing.T) {
	app := newTestApp(t)
	aliceID, aliceToken := app.register(t, "alice")
	bobID, bobToken := app.register(t, "bob")

	for _, content := range []string{"one", "two", "three"} {
		status, _ := app.do(t, http.MethodPost, "/api/v1/posts", aliceToken, gin.H{"content": content})
		require.Equal(t, http.StatusCreated, status)
	}

	status, env := app.do(t, http.MethodGet, "/api/v1/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Meta.Count)
	assert.Equal(t, "[]", string(env.Data))

	status, env = app.do(t, http.MethodPost, "/api/v1/follows", bobToken, gin.H{"user": aliceID, "follower": aliceID})
	require.Equal(t, http.StatusCreated, status)
	edge := decode[map[string]string](t, env.Data)
	assert.Equal(t, aliceID, edge["user"])
	assert.Equal(t, bobID, edge["follower"])

	status, env = app.do(t, http.MethodPost, "/api/v1/follows", bobToken, gin.H{"user": aliceID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "The fields user, follower must make a unique set.", env.Error.Message)

	status, env = app.do(t, http.MethodPost, "/api/v1/follows", bobToken, gin.H{"user": bobID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You cannot follow yourself.", env.Error.Message)

	status, env = app.do(t, http.MethodGet, "/api/v1/follows?follower="+bobID, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Meta.Count)

	status, _ = app.do(t, http.MethodGet, "/api/v1/follows?user=bad", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = app.do(t, http.MethodGet, "/api/v1/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, env.Meta.Count)
	require.NotNil(t, env.Meta.Next)
	feed := decode[[]postBody](t, env.Data)
	require.Len(t, feed, testPageSize)
	for _, p := range feed {
		assert.Equal(t, aliceID, p.User)
	}

	status, env = app.do(t, http.MethodGet, "/api/v1/feed?page=2", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]postBody](t, env.Data), 1)

	status, _ = app.do(t, http.MethodGet, "/api/v1/feed?page=abc", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.do(t, http.MethodDelete, "/api/v1/follows/unfollow/"+aliceID, bobToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = app.do(t, http.MethodDelete, "/api/v1/follows/unfollow/"+aliceID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Follow relationship does not exist.", env.Error.Message)

	assert.Equal(t, []events.Type{
		events.PostCreated, events.PostCreated, events.PostCreated,
		events.FollowCreated, events.FollowDeleted,
	}, app.recorder.Types())
}

func TestDeletedAccountTokenRejected(t *testing.T) {
	app := newTestApp(t)
	aliceID, aliceToken := app.register(t, "alice")
	bobID, bobToken := app.register(t, "bob")

	status, _ := app.do(t, http.MethodPost, "/api/v1/posts", aliceToken, gin.H{"content": "soon gone"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = app.do(t, http.MethodPost, "/api/v1/follows", bobToken, gin.H{"user": aliceID})
	require.Equal(t, http.StatusCreated, status)

	// bob xóa alice: cache phải bị invalidate để token của alice không còn dùng được
	status, _ = app.do(t, http.MethodDelete, "/api/v1/accounts/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, env := app.do(t, http.MethodGet, "/api/v1/feed", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, middleware.MsgUserNotFound, env.Error.Message)

	accounts, posts, follows := app.store.Counts()
	assert.Equal(t, 1, accounts)
	assert.Equal(t, 0, posts)
	assert.Equal(t, 0, follows)

	status, env = app.do(t, http.MethodGet, "/api/v1/accounts/"+bobID, bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bob", decode[accountBody](t, env.Data).Username)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disconnected"`)
	assert.Contains(t, w.Body.String(), `"cache":"ok"`)

	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "router_test_http_requests_total"))
}

func TestHugePageIsInvalid(t *testing.T) {
	app := newTestApp(t)
	_, token := app.register(t, "alice")
	status, _ := app.do(t, http.MethodPost, "/api/v1/posts", token, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, status)

	for _, path := range []string{
		"/api/v1/feed?page=5000000000000000000",
		"/api/v1/posts?page=5000000000000000000",
		"/api/v1/follows?page=5000000000000000000",
		"/api/v1/accounts?page=5000000000000000000",
		"/api/v1/accounts?page=99999999999999999999",
	} {
		status, env := app.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, "Invalid page.", env.Error.Message, path)
	}
}

func TestFeedMergesFollowedAccounts(t *testing.T) {
	app := newTestApp(t)
	aliceID, _ := app.register(t, "alice")
	_, bobToken := app.register(t, "bob")
	carolID, _ := app.register(t, "carol")
	daveID, _ := app.register(t, "dave")

	for _, target := range []string{aliceID, carolID} {
		status, _ := app.do(t, http.MethodPost, "/api/v1/follows", bobToken, gin.H{"user": target})
		require.Equal(t, http.StatusCreated, status)
	}

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	seed := []struct {
		owner   string
		content string
		offset  time.Duration
	}{
		{aliceID, "alice 1", 0},
		{carolID, "carol 2", time.Minute},
		{daveID, "dave 3", 2 * time.Minute},
		{aliceID, "alice 4", 3 * time.Minute},
	}
	for _, s := range seed {
		require.NoError(t, app.store.Posts().Create(context.Background(), &post.Post{
			Content:   s.content,
			UserID:    uuid.MustParse(s.owner),
			Timestamp: base.Add(s.offset),
		}))
	}

	var got []string
	for _, path := range []string{"/api/v1/feed", "/api/v1/feed?page=2"} {
		status, env := app.do(t, http.MethodGet, path, bobToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 3, env.Meta.Count)
		for _, p := range decode[[]postBody](t, env.Data) {
			assert.NotEqual(t, daveID, p.User)
			got = append(got, p.Content)
		}
	}
	assert.Equal(t, []string{"alice 4", "carol 2", "alice 1"}, got)
}

func TestFollowAcceptsUppercaseUUID(t *testing.T) {
	app := newTestApp(t)
	aliceID, _ := app.register(t, "alice")
	_, bobToken := app.register(t, "bob")

	upper := strings.ToUpper(aliceID)
	status, env := app.do(t, http.MethodPost, "/api/v1/follows", bobToken, gin.H{"user": upper})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, aliceID, decode[map[string]string](t, env.Data)["user"])

	status, _ = app.do(t, http.MethodDelete, "/api/v1/follows/unfollow/"+upper, bobToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
}
