package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"

	"github.com/Miuzarte/FpsOverlay/config"
	"github.com/Miuzarte/FpsOverlay/contextWaitGroup"
	"github.com/Miuzarte/FpsOverlay/fps"
	"github.com/Miuzarte/FpsOverlay/log"
	"github.com/Miuzarte/FpsOverlay/metrics"
)

var logger = log.New("Overlay")

var (
	processId   = os.Getpid()
	windowTitle = strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")

	processSelf *process.Process
)

var (
	cfgPath     string
	headless    bool
	flagSample  time.Duration
	flagFps     int
	flagMetrics string
	flagLevel   string
)

var (
	// owned by the frame driver (window or headless loop) once started
	cfg     = config.Default()
	tracker *fps.Tracker

	cfgSignal = make(chan config.Config, 1)

	statsMu sync.RWMutex
	latest  fps.Stats

	cpuBits atomic.Uint64
)

var rootCmd = &cobra.Command{
	Use:          "fpsoverlay",
	Short:        "Frame rate and frame time overlay",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", config.DEFAULT_PATH, "config file, reloaded on change")
	f.BoolVar(&headless, "headless", false, "log statistics instead of opening a window")
	f.DurationVarP(&flagSample, "sample-duration", "s", fps.DefaultSampleDuration, "averaging window in [0s, 2s]")
	f.IntVar(&flagFps, "fps", 60, "frame rate of the headless loop")
	f.StringVar(&flagMetrics, "metrics-addr", "", "serve prometheus metrics on this address")
	f.StringVar(&flagLevel, "log-level", zerolog.LevelInfoValue, "trace, debug, info, warn or error")
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// withFlags lets explicitly set flags win over the file, on every reload too.
func withFlags(cmd *cobra.Command, c config.Config) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("sample-duration") {
		c.SampleDuration = config.Duration(flagSample)
	}
	if flags.Changed("fps") {
		c.HeadlessFps = flagFps
	}
	if flags.Changed("metrics-addr") {
		c.MetricsAddr = flagMetrics
	}
	if flags.Changed("log-level") {
		c.LogLevel = flagLevel
	}
	err := c.Normalize()
	if err != nil {
		return c, err
	}
	return c, nil
}

func run(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg, err = withFlags(cmd, c)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	logger.Debug().Int("pid", processId).Str("config", cfgPath).Msg("starting")

	processSelf, err = process.NewProcess(int32(processId))
	if err != nil {
		return fmt.Errorf("failed to open own process: %w", err)
	}
	raisePriority()

	cwg := contextWaitGroup.New(context.Background())
	defer cwg.WithSignal(syscall.SIGINT, syscall.SIGTERM)()
	defer cwg.Cancel()

	cwg.Go(cpuMeasureLoop)
	cwg.Go(func(ctx context.Context) {
		configLoop(ctx, cmd)
	})
	if cfg.MetricsAddr != "" {
		exporter := metrics.New()
		addr := cfg.MetricsAddr
		cwg.GoErr(func(ctx context.Context) error {
			return exporter.Serve(ctx, addr)
		})
		cwg.Go(func(ctx context.Context) {
			metricsLoop(ctx, exporter)
		})
	}

	if headless {
		tracker = fps.New(cfg.Sample(), fps.LogSinks(&logger, zerolog.InfoLevel))
		cwg.Go(headlessLoop)
		return cwg.Wait()
	}

	tracker = fps.New(cfg.Sample(), panel.Sinks())
	return runWindow(cwg)
}

func cpu() float64 {
	return math.Float64frombits(cpuBits.Load())
}

func cpuMeasureLoop(ctx context.Context) {
	const interval = time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
			percent, err := processSelf.PercentWithContext(ctx, interval)
			if err != nil {
				if ctx.Err() == nil {
					logger.Debug().Err(err).Msg("cpu measure failed")
					time.Sleep(interval)
				}
				continue
			}
			cpuBits.Store(math.Float64bits(percent))
		}
	}
}

func configLoop(ctx context.Context, cmd *cobra.Command) {
	err := config.Watch(ctx, cfgPath, func(c config.Config) {
		c, err := withFlags(cmd, c)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring reloaded config")
			return
		}
		// only the newest config matters
		select {
		case <-cfgSignal:
		default:
		}
		cfgSignal <- c
		wakeDriver()
	})
	if err != nil {
		logger.Warn().Err(err).Msg("config hot reload disabled")
	}
}

// applyConfig runs on the frame driver.
func applyConfig(c config.Config) {
	if c.MetricsAddr != cfg.MetricsAddr {
		logger.Warn().Msg("metrics_addr changes need a restart")
		c.MetricsAddr = cfg.MetricsAddr
	}
	cfg = c
	tracker.SetSampleDuration(cfg.Sample())
	log.SetLevel(cfg.Level())
	applyTheme()
}

func publishStats() {
	s := tracker.Stats()
	statsMu.Lock()
	latest = s
	statsMu.Unlock()
}

func snapshot() fps.Stats {
	statsMu.RLock()
	defer statsMu.RUnlock()
	return latest
}

func metricsLoop(ctx context.Context, exporter *metrics.Exporter) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			exporter.Observe(snapshot())
			exporter.ObserveCPU(cpu())
		}
	}
}

func headlessInterval(rate int) time.Duration {
	return time.Second / time.Duration(max(rate, 1))
}

// headlessLoop stands in for a render loop when there is no window,
// its frame times show how well the process gets scheduled.
func headlessLoop(ctx context.Context) {
	rate := cfg.HeadlessFps
	ticker := time.NewTicker(headlessInterval(rate))
	defer ticker.Stop()

	logger.Info().Int("fps", rate).Dur("sample_duration", tracker.SampleDuration()).Msg("headless loop started")
	tracker.Tick(time.Now())

	for {
		select {
		case <-ctx.Done():
			s := tracker.Stats()
			logger.Info().
				Float64("best_fps", s.BestFPS()).
				Float64("worst_fps", s.WorstFPS()).
				Dur("total", s.Total).
				Msg("headless loop stopped")
			return

		case c := <-cfgSignal:
			applyConfig(c)
			if cfg.HeadlessFps != rate {
				rate = cfg.HeadlessFps
				ticker.Reset(headlessInterval(rate))
			}

		case now := <-ticker.C:
			tracker.Tick(now)
			publishStats()
		}
	}
}
