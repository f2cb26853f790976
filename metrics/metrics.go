package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Miuzarte/FpsOverlay/fps"
	"github.com/Miuzarte/FpsOverlay/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fpsoverlay"

var logger = log.New("Metrics")

// Exporter mirrors tracker snapshots into prometheus gauges.
type Exporter struct {
	registry *prometheus.Registry

	currentFps  prometheus.Gauge
	frameMs     prometheus.Gauge
	bestFps     prometheus.Gauge
	worstFps    prometheus.Gauge
	lastFrameMs prometheus.Gauge
	cpuPercent  prometheus.Gauge
	flushes     prometheus.Counter

	lastFlushes    int
	lastGeneration int
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func New() *Exporter {
	e := &Exporter{
		registry:    prometheus.NewRegistry(),
		currentFps:  newGauge("current_fps", "Frames per second averaged over the last sample window."),
		frameMs:     newGauge("current_frame_ms", "Mean frame time of the last sample window in milliseconds."),
		bestFps:     newGauge("best_fps", "Frames per second derived from the shortest frame of the session."),
		worstFps:    newGauge("worst_fps", "Frames per second derived from the longest frame after warm up."),
		lastFrameMs: newGauge("last_frame_ms", "Duration of the most recent frame in milliseconds."),
		cpuPercent:  newGauge("process_cpu_percent", "CPU usage of the overlay process."),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_windows_total",
			Help:      "Number of completed sample windows.",
		}),
	}
	e.registry.MustRegister(
		e.currentFps, e.frameMs,
		e.bestFps, e.worstFps,
		e.lastFrameMs, e.cpuPercent,
		e.flushes,
	)
	return e
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe is called by a single goroutine.
func (e *Exporter) Observe(s fps.Stats) {
	e.currentFps.Set(s.FPS)
	e.frameMs.Set(s.FrameMs)
	e.bestFps.Set(s.BestFPS())
	e.worstFps.Set(s.WorstFPS())
	e.lastFrameMs.Set(fps.Millis(s.LastFrame))

	// a tracker reset restarts the count
	if s.Generation != e.lastGeneration {
		e.lastGeneration = s.Generation
		e.lastFlushes = 0
	}
	e.flushes.Add(float64(s.Flushes - e.lastFlushes))
	e.lastFlushes = s.Flushes
}

func (e *Exporter) ObserveCPU(percent float64) {
	e.cpuPercent.Set(percent)
}

// Serve exposes /metrics on addr until ctx is done.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}
	logger.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
