package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/heroes/internal/config"
	"github.com/deppfellow/heroes/internal/database"
	"github.com/deppfellow/heroes/internal/errs"
	"github.com/deppfellow/heroes/internal/model"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     1,
			Username: "winnie",
			Password: "secret",
			Name:     "heroes",
			SSLMode:  "disable",
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &server.Server{Config: cfg, Logger: &logger, DB: db}
}

type stubCreator struct {
	name string
	err  error
}

func (s *stubCreator) Create(_ context.Context, name string) (*model.Hero, error) {
	s.name = name
	if s.err != nil {
		return nil, s.err
	}
	hero := model.NewHero(name)
	hero.ID = 1
	return hero, nil
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func TestGreet(t *testing.T) {
	h := NewGreetingHandler(newTestServer(t))
	c, rec := newContext(http.MethodGet, "/")

	require.NoError(t, Handle(h.Handler, h.Greet, http.StatusOK)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World Winnie"}`, rec.Body.String())
}

func TestCreateHero(t *testing.T) {
	creator := &stubCreator{}
	h := NewHeroHandler(newTestServer(t), creator)
	c, rec := newContext(http.MethodPost, "/heroes/?name=Spiderboy")

	require.NoError(t, Handle(h.Handler, h.CreateHero, http.StatusOK)(c))
	assert.Equal(t, "Spiderboy", creator.name)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"id":1,"name":"Spiderboy","age":null,"secret_name":"secrete_Spiderboy"}`,
		rec.Body.String(),
	)
}

func TestCreateHero_MissingName(t *testing.T) {
	creator := &stubCreator{}
	h := NewHeroHandler(newTestServer(t), creator)
	endpoint := Handle(h.Handler, h.CreateHero, http.StatusOK)

	c, _ := newContext(http.MethodPost, "/heroes/?name=Spiderboy")
	require.NoError(t, endpoint(c))

	// A later request without the parameter must not see the earlier value.
	c, _ = newContext(http.MethodPost, "/heroes/")
	err := endpoint(c)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, "Spiderboy", creator.name)
}

func TestCreateHero_StorageError(t *testing.T) {
	storeErr := errors.New("connection reset by peer")
	h := NewHeroHandler(newTestServer(t), &stubCreator{err: storeErr})
	c, rec := newContext(http.MethodPost, "/heroes/?name=Spiderboy")

	err := Handle(h.Handler, h.CreateHero, http.StatusOK)(c)
	assert.ErrorIs(t, err, storeErr)
	assert.Zero(t, rec.Body.Len())
}

func TestCheckHealth_DatabaseDown(t *testing.T) {
	h := NewHealthHandler(newTestServer(t))
	c, rec := newContext(http.MethodGet, "/status")

	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks["database"].Status)
	assert.NotEmpty(t, body.Checks["database"].Error)
}

func TestCheckHealth_RedisOnly(t *testing.T) {
	mr := miniredis.RunT(t)

	s := newTestServer(t)
	s.Config.Observability.HealthChecks.Checks = []string{"redis"}
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })

	h := NewHealthHandler(s)
	c, rec := newContext(http.MethodGet, "/status")

	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Environment)
	assert.Equal(t, "healthy", body.Checks["redis"].Status)
	assert.NotContains(t, body.Checks, "database")
}

func TestCheckHealth_RedisFailureIsNotFatal(t *testing.T) {
	mr := miniredis.RunT(t)

	s := newTestServer(t)
	s.Config.Observability.HealthChecks.Checks = []string{"redis"}
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })
	mr.SetError("ERR unavailable")

	h := NewHealthHandler(s)
	c, rec := newContext(http.MethodGet, "/status")

	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
}

func TestOpenAPI(t *testing.T) {
	h := NewOpenAPIHandler(newTestServer(t))

	c, rec := newContext(http.MethodGet, "/openapi.json")
	require.NoError(t, h.ServeOpenAPISpec(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/heroes/")

	c, rec = newContext(http.MethodGet, "/docs")
	require.NoError(t, h.ServeOpenAPIUI(c))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}
