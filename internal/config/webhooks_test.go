package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "notification-router/internal/common/errors"
)

const sampleWebhooks = `
webhooks:
  - name: "debug-sink"
    hook_type: "debug"
  - name: "ops channel"
    hook_type: "http"
    url: "http://file.example/hook"
    token: "file-token"
    filters:
      enabled: true
      values:
        - field: "severity"
          operator: "in"
          value: ["High", "Critical"]
        - field: "impactsSLO"
          operator: "equals"
          value: true
  - name: "events"
    hook_type: "redis"
    url: "causely.events"
`

func noEnv(string) string { return "" }

func TestParseWebhooks(t *testing.T) {
	hooks, err := ParseWebhooks([]byte(sampleWebhooks), noEnv)
	require.NoError(t, err)
	require.Len(t, hooks, 3)

	assert.Equal(t, "debug-sink", hooks[0].Name)
	assert.False(t, hooks[0].Filters.Enabled)

	ops := hooks[1]
	assert.Equal(t, HookTypeHTTP, ops.HookType)
	assert.Equal(t, "http://file.example/hook", ops.URL)
	assert.Equal(t, "file-token", ops.Token)
	require.True(t, ops.Filters.Enabled)
	require.Len(t, ops.Filters.Values, 2)
	assert.Equal(t, "severity", ops.Filters.Values[0].Field)
	assert.Equal(t, "in", ops.Filters.Values[0].Operator)
	assert.Equal(t, []interface{}{"High", "Critical"}, ops.Filters.Values[0].Value)
	assert.Equal(t, true, ops.Filters.Values[1].Value)

	assert.Equal(t, "causely.events", hooks[2].URL)
}

func TestParseWebhooksEnvOverrides(t *testing.T) {
	env := map[string]string{
		"URL_OPS_CHANNEL":   "http://env.example/hook",
		"TOKEN_OPS_CHANNEL": "env-token",
	}
	hooks, err := ParseWebhooks([]byte(sampleWebhooks), func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/hook", hooks[1].URL)
	assert.Equal(t, "env-token", hooks[1].Token)
	assert.Equal(t, "causely.events", hooks[2].URL)
}

func TestWebhookEnvName(t *testing.T) {
	assert.Equal(t, "OPS_CHANNEL", Webhook{Name: "ops channel"}.EnvName())
	assert.Equal(t, "SLACK-TEST", Webhook{Name: "slack-test"}.EnvName())
}

func TestParseWebhooksHTTPRequiresURL(t *testing.T) {
	data := `
webhooks:
  - name: "needs url"
    hook_type: "http"
`
	_, err := ParseWebhooks([]byte(data), noEnv)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	assert.Contains(t, err.Error(), "URL_NEEDS_URL")

	hooks, err := ParseWebhooks([]byte(data), func(k string) string {
		if k == "URL_NEEDS_URL" {
			return "http://env.example"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", hooks[0].URL)
}

func TestParseWebhooksInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "webhooks: [\n"},
		{"no webhooks", "webhooks: []\n"},
		{"missing name", "webhooks:\n  - hook_type: debug\n"},
		{"unknown hook type", "webhooks:\n  - name: a\n    hook_type: teams\n"},
		{"duplicate names", "webhooks:\n  - name: a\n    hook_type: debug\n  - name: a\n    hook_type: debug\n"},
		{"filter without field", "webhooks:\n  - name: a\n    hook_type: debug\n    filters:\n      enabled: true\n      values:\n        - operator: equals\n          value: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWebhooks([]byte(tt.data), noEnv)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
		})
	}
}

func TestLoadWebhooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleWebhooks), 0o600))

	hooks, err := LoadWebhooks(path)
	require.NoError(t, err)
	assert.Len(t, hooks, 3)

	_, err = LoadWebhooks(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}
