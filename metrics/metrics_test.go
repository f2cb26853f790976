package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Miuzarte/FpsOverlay/fps"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	t.Parallel()

	e := New()
	e.Observe(fps.Stats{
		FPS:       60,
		FrameMs:   16.7,
		Flushes:   3,
		LastFrame: 20 * time.Millisecond,
		Best:      10 * time.Millisecond,
		HasBest:   true,
	})

	assert.InDelta(t, 60, testutil.ToFloat64(e.currentFps), 1e-9)
	assert.InDelta(t, 16.7, testutil.ToFloat64(e.frameMs), 1e-9)
	assert.InDelta(t, 100, testutil.ToFloat64(e.bestFps), 1e-9)
	assert.Zero(t, testutil.ToFloat64(e.worstFps))
	assert.InDelta(t, 20, testutil.ToFloat64(e.lastFrameMs), 1e-9)
	assert.InDelta(t, 3, testutil.ToFloat64(e.flushes), 1e-9)

	e.Observe(fps.Stats{Flushes: 5})
	assert.InDelta(t, 5, testutil.ToFloat64(e.flushes), 1e-9)

	// after a reset the counter keeps growing, even when the new
	// tracker has already flushed more often than the old one
	e.Observe(fps.Stats{Flushes: 7, Generation: 1})
	assert.InDelta(t, 12, testutil.ToFloat64(e.flushes), 1e-9)

	e.Observe(fps.Stats{Flushes: 8, Generation: 1})
	assert.InDelta(t, 13, testutil.ToFloat64(e.flushes), 1e-9)

	e.ObserveCPU(12.5)
	assert.InDelta(t, 12.5, testutil.ToFloat64(e.cpuPercent), 1e-9)
}

func TestServe(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	e := New()
	e.Observe(fps.Stats{FPS: 144})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- e.Serve(ctx, addr)
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, "fpsoverlay_current_fps 144")
	assert.Contains(t, body, "fpsoverlay_sample_windows_total")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
