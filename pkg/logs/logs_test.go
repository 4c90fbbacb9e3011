package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/angket_backend/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "text", true, slog.LevelInfo)).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	slog.New(newHandler(&buf, "text", false, slog.LevelInfo)).Info("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "production always logs json")
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var debug, warn bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	log := slog.New(h).With("k", "v")

	log.Debug("quiet")
	log.Warn("loud")

	assert.Contains(t, debug.String(), "quiet")
	assert.Contains(t, debug.String(), "loud")
	assert.NotContains(t, warn.String(), "quiet")
	assert.Contains(t, warn.String(), "k=v")
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug-4))
}

func TestLokiWriterPushesLine(t *testing.T) {
	var got lokiPush
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/push", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "u", user)
		assert.Equal(t, "p", pass)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Observability.ServiceName = "angket_backend"
	cfg.Server.Environment = "test"
	cfg.Logging.Output.Loki = config.LokiConfig{Enabled: true, Endpoint: srv.URL + "/", Username: "u", Password: "p"}

	h := newLokiHandler(cfg, slog.LevelInfo)
	slog.New(h).Info("ledger committed", "rows", 1)

	require.Len(t, got.Streams, 1)
	assert.Equal(t, map[string]string{"service": "angket_backend", "env": "test"}, got.Streams[0].Stream)
	require.Len(t, got.Streams[0].Values, 1)
	assert.Contains(t, got.Streams[0].Values[0][1], "ledger committed")
}

func TestLokiWriterReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	lw := &lokiWriter{endpoint: srv.URL, client: srv.Client(), now: time.Now}
	_, err := lw.Write([]byte("line\n"))
	assert.Error(t, err)
}
