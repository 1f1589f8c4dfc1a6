package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/session"
	"github.com/vk/wordgrid/internal/testutil"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	sioclient "github.com/zishang520/socket.io-client-go/socket"
)

func receive(t *testing.T, ch <-chan map[string]any) map[string]any {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for server event")
		return nil
	}
}

func TestServer_SessionOverSocketIO(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	reg := prometheus.NewRegistry()
	srv := NewServer(ctxlog.FromContext(ctx), Options{
		Loader:     words,
		Base:       config.Configuration{WordListPath: "words"},
		Registerer: reg,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", srv.Handler())
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})

	opts := sioclient.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))
	manager := sioclient.NewManager(ts.URL, opts)
	io := manager.Socket("/", opts)
	defer io.Disconnect()

	results := make(chan map[string]any, 8)
	copied := make(chan map[string]any, 1)
	io.On(types.EventName(EventResult), func(data ...any) {
		results <- data[0].(map[string]any)
	})
	io.On(types.EventName(EventCopied), func(data ...any) {
		copied <- data[0].(map[string]any)
	})
	io.Connect()

	first := receive(t, results)
	assert.Equal(t, session.NoticeNoConstraints, first["notice"])
	sessionID, _ := first["session"].(string)
	require.NotEmpty(t, sessionID)

	require.NoError(t, io.Emit(EventConfigure, map[string]any{
		"fields": map[string]any{"start": "ap"},
		"width":  40,
	}))
	res := receive(t, results)
	assert.Equal(t, sessionID, res["session"])
	assert.Equal(t, []any{"apt", "apple", "apply"}, res["words"])
	assert.Equal(t, []any{`starts_with("ap")`}, res["predicates"])
	assert.Equal(t, "    apt  apple  apply\n", res["text"])

	require.NoError(t, io.Emit(EventRefresh))
	res = receive(t, results)
	assert.Equal(t, []any{"    apt  apple  apply"}, res["lines"])

	require.NoError(t, io.Emit(EventCopy))
	cp := receive(t, copied)
	assert.Equal(t, "    apt  apple  apply\n", cp["text"])

	assert.Equal(t, 1, srv.Sessions())
	assert.InDelta(t, 1, promtest.ToFloat64(srv.metrics.sessions), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(srv.metrics.events.WithLabelValues(EventConfigure)), 0)

	io.Disconnect()
	require.Eventually(t, func() bool { return srv.Sessions() == 0 }, 10*time.Second, 20*time.Millisecond)
}

func TestServer_SessionContextOutlivesCaller(t *testing.T) {
	t.Parallel()
	ctx, logs := testutil.Context(t)
	ctx, cancel := context.WithCancel(ctx)

	srv := NewServer(ctxlog.FromContext(ctx), Options{Loader: words})
	cancel()

	sessCtx := srv.sessionContext("session", "abc")
	require.NoError(t, sessCtx.Err())
	ctxlog.FromContext(sessCtx).Info("Teardown logged.")
	assert.Contains(t, logs.String(), "Teardown logged.")
	assert.Contains(t, logs.String(), "session=abc")
	srv.Close()
}
