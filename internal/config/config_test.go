package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/charform/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://register-character-a42evidd3q-uc.a.run.app", cfg.Registry.RegisterURL)
	assert.Equal(t, "https://generate-character-from-image-a42evidd3q-uc.a.run.app", cfg.Registry.AssistURL)
	assert.Equal(t, 30*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, "multipart", cfg.Registry.Encoding)
	assert.Equal(t, "test", cfg.Form.UserID)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CHARFORM_REGISTER_URL", "http://localhost:8080/register")
	t.Setenv("CHARFORM_ASSIST_URL", "http://localhost:8080/generate")
	t.Setenv("CHARFORM_HTTP_TIMEOUT", "5s")
	t.Setenv("CHARFORM_ENCODING", "json")
	t.Setenv("CHARFORM_USER_ID", "player-7")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/register", cfg.Registry.RegisterURL)
	assert.Equal(t, 5*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, "json", cfg.Registry.Encoding)
	assert.Equal(t, "player-7", cfg.Form.UserID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "relative register URL", key: "CHARFORM_REGISTER_URL", value: "/register"},
		{name: "bad timeout", key: "CHARFORM_HTTP_TIMEOUT", value: "soon"},
		{name: "negative timeout", key: "CHARFORM_HTTP_TIMEOUT", value: "-1s"},
		{name: "unknown encoding", key: "CHARFORM_ENCODING", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
