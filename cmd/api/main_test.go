package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ashecone/expense-tracker-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Format(t *testing.T) {
	tests := []struct {
		env      string
		wantJSON bool
	}{
		{"production", true},
		{"development", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&config.Config{Env: tt.env}, &buf)
			logger.Info().Str("port", "3400").Msg("Starting server")

			var entry map[string]interface{}
			isJSON := json.Unmarshal(buf.Bytes(), &entry) == nil
			assert.Equal(t, tt.wantJSON, isJSON, buf.String())
			assert.Contains(t, buf.String(), "Starting server")
		})
	}
}

func TestNewLogger_ProductionFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ENV=production\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("DATABASE_URL", "postgres://localhost/ledger")
	t.Setenv("ENV", "")
	require.NoError(t, os.Unsetenv("ENV"))

	cfg, err := config.Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())

	var buf bytes.Buffer
	logger := newLogger(cfg, &buf)
	logger.Info().Msg("ready")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ready", entry["message"])
}
