package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "notification-router/internal/common/errors"
	"notification-router/internal/config"
	"notification-router/internal/filter"
)

const testToken = "router-token"

func testConfig() *config.Config {
	return &config.Config{
		Port:            "8080",
		AuthToken:       testToken,
		BloomSize:       filter.DefaultBloomSize,
		BloomHashes:     filter.DefaultBloomHashes,
		DeliveryTimeout: 2 * time.Second,
	}
}

type capture struct {
	mu     sync.Mutex
	bodies []string
	auth   []string
}

func (c *capture) server(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.bodies = append(c.bodies, string(body))
		c.auth = append(c.auth, r.Header.Get("Authorization"))
		c.mu.Unlock()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, h http.Handler, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEndToEndRouting(t *testing.T) {
	critical, cluster := &capture{}, &capture{}
	criticalSrv, clusterSrv := critical.server(t), cluster.server(t)

	hooks := []config.Webhook{
		{
			Name: "critical", HookType: config.HookTypeHTTP, URL: criticalSrv.URL, Token: "hook-token",
			Filters: config.Filters{Enabled: true, Values: []filter.FilterCondition{
				{Field: "severity", Operator: "in", Value: []interface{}{"High", "Critical"}},
			}},
		},
		{
			Name: "prod-cluster", HookType: config.HookTypeHTTP, URL: clusterSrv.URL,
			Filters: config.Filters{Enabled: true, Values: []filter.FilterCondition{
				{Field: "labels.k8s.cluster.name", Operator: "equals", Value: "prod"},
				{Field: "entity.type", Operator: "not_equals", Value: "Pod"},
			}},
		},
		{Name: "debug", HookType: config.HookTypeDebug},
	}

	app, err := NewWithWebhooks(testConfig(), hooks)
	require.NoError(t, err)
	defer app.Cleanup()
	assert.Equal(t, 3, app.Dispatcher.Len())
	_, router := app.RunServer()

	payload := `{"name":"Malfunction","type":"ProblemDetected","severity":"High",
		"entity":{"type":"Service","name":"payments"},"labels":{"k8s.cluster.name":"prod"}}`

	rec := post(t, router, "/webhook", testToken, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Payload forwarded","webhooks":["critical","prod-cluster","debug"]}`, rec.Body.String())

	require.Len(t, critical.bodies, 1)
	assert.JSONEq(t, payload, critical.bodies[0])
	assert.Equal(t, "Bearer hook-token", critical.auth[0])
	require.Len(t, cluster.bodies, 1)
	assert.Empty(t, cluster.auth[0])

	rec = post(t, router, "/webhook/slack", testToken,
		`{"severity":"Low","entity":{"type":"Pod"},"labels":{"k8s.cluster.name":"prod"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Payload forwarded","webhooks":["debug"]}`, rec.Body.String())
	assert.Len(t, critical.bodies, 1)
	assert.Len(t, cluster.bodies, 1)
}

func TestRoutesRequireToken(t *testing.T) {
	app, err := NewWithWebhooks(testConfig(), []config.Webhook{{Name: "debug", HookType: config.HookTypeDebug}})
	require.NoError(t, err)
	_, router := app.RunServer()

	assert.Equal(t, http.StatusUnauthorized, post(t, router, "/webhook", "", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(t, router, "/webhook", "wrong", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(t, router, "/api/match", "", `{}`).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","webhooks":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "router_")
}

func TestDeliveryFailureReturns500(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	app, err := NewWithWebhooks(testConfig(), []config.Webhook{
		{Name: "down", HookType: config.HookTypeHTTP, URL: failing.URL},
		{Name: "debug", HookType: config.HookTypeDebug},
	})
	require.NoError(t, err)
	_, router := app.RunServer()

	rec := post(t, router, "/webhook", testToken, `{"severity":"High"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Failed to forward payload","webhooks":["down","debug"],"failed":["down"]}`, rec.Body.String())
}

func TestRedisHook(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig()
	cfg.RedisAddress = mr.Addr()

	app, err := NewWithWebhooks(cfg, []config.Webhook{{Name: "events", HookType: config.HookTypeRedis, URL: "causely.events"}})
	require.NoError(t, err)
	defer app.Cleanup()
	require.NotNil(t, app.RedisClient)

	_, router := app.RunServer()
	rec := post(t, router, "/webhook", testToken, `{"severity":"High"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"healthy","webhooks":1,"redis":"healthy"}`, rec.Body.String())
}

func TestRedisHookWithoutRedisFails(t *testing.T) {
	_, err := NewWithWebhooks(testConfig(), []config.Webhook{{Name: "events", HookType: config.HookTypeRedis}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestInvalidFiltersFailStartup(t *testing.T) {
	_, err := NewWithWebhooks(testConfig(), []config.Webhook{{
		Name: "bad", HookType: config.HookTypeDebug,
		Filters: config.Filters{Enabled: true, Values: []filter.FilterCondition{
			{Field: "nope", Operator: "equals", Value: "x"},
		}},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	assert.ErrorIs(t, err, filter.ErrUnregisteredField)
}

func TestNewLoadsWebhookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
webhooks:
  - name: "debug"
    hook_type: "debug"
    filters:
      enabled: true
      values:
        - field: "severity"
          operator: "equals"
          value: "Critical"
`), 0o600))

	cfg := testConfig()
	cfg.ConfigPath = path
	app, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"debug"}, app.Store.Names())

	cfg.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	assert.Error(t, err)
}
