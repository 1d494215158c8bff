package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
mode: development
websocket:
  development_url: ws://localhost:8000/websocket
  production_url: wss://chess.example.com/websocket
backend:
  host: localhost
  port: 8000
animation:
  piece_move_duration: 250ms
liveness:
  period: 30s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewReadsYaml(t *testing.T) {
	cfg, err := New(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:8000/websocket", cfg.WebSocketURL())
	assert.Equal(t, "http://localhost:8000", cfg.BackendAddr())
	assert.Equal(t, 250*time.Millisecond, cfg.Animation.PieceMoveDuration)
	assert.Equal(t, 30*time.Second, cfg.Liveness.Period)
}

func TestEnvOverridesModeAndBackend(t *testing.T) {
	t.Setenv("CHESS_MODE", ProductionMode)
	t.Setenv("BACKEND_HOST", "backend")
	t.Setenv("BACKEND_PORT", "9000")

	cfg, err := New(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "wss://chess.example.com/websocket", cfg.WebSocketURL())
	assert.Equal(t, "http://backend:9000", cfg.BackendAddr())
}

func TestDefaultsApplyWhenKeysMissing(t *testing.T) {
	cfg, err := New(writeConfig(t, `
websocket:
  development_url: ws://localhost:8000/websocket
  production_url: ws://localhost:8000/websocket
`))
	require.NoError(t, err)

	assert.Equal(t, DevelopmentMode, cfg.Mode)
	assert.Equal(t, 100*time.Millisecond, cfg.Animation.PieceMoveDuration)
	assert.Equal(t, "http://localhost:8000", cfg.BackendAddr())
}

func TestUnknownModeRejected(t *testing.T) {
	t.Setenv("CHESS_MODE", "staging")
	_, err := New(writeConfig(t, sample))
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestMissingUrlRejected(t *testing.T) {
	_, err := New(writeConfig(t, "mode: development\n"))
	assert.ErrorContains(t, err, "validate config")
}

func TestBadPortRejected(t *testing.T) {
	t.Setenv("BACKEND_PORT", "eighty")
	_, err := New(writeConfig(t, sample))
	assert.ErrorContains(t, err, "BACKEND_PORT")
}

func TestShippedConfigTargetsWebsocketRoute(t *testing.T) {
	t.Setenv("CHESS_MODE", "")
	t.Setenv("BACKEND_HOST", "")
	t.Setenv("BACKEND_PORT", "")
	cfg, err := New(filepath.Join("..", "..", "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:8000/websocket", cfg.WebSocketURL())
	assert.Equal(t, "http://localhost:8000", cfg.BackendAddr())
}
