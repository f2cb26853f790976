package main

import (
	"errors"
	"time"

	"gioui.org/io/key"

	"github.com/Miuzarte/FpsOverlay/config"
	"github.com/Miuzarte/FpsOverlay/fps"
)

const (
	sampleStep     = 250 * time.Millisecond
	sampleStepFine = 50 * time.Millisecond
)

// shortcuts run on the window loop, next to the tracker

func shortcutResetStats(key.Name, key.Modifiers) {
	tracker.Reset()
	publishStats()
	logger.Info().Msg("statistics reset")
}

func shortcutLogStats(key.Name, key.Modifiers) {
	s := tracker.Stats()
	logger.Info().
		Float64("fps", s.FPS).
		Float64("frame_ms", s.FrameMs).
		Float64("best_fps", s.BestFPS()).
		Float64("best_ms", fps.Millis(s.Best)).
		Float64("worst_fps", s.WorstFPS()).
		Float64("worst_ms", fps.Millis(s.Worst)).
		Dur("total", s.Total).
		Float64("cpu", cpu()).
		Msg("statistics")
}

func shortcutSampleDuration(name key.Name, mod key.Modifiers) {
	step := sampleStep
	if mod.Contain(key.ModShift) {
		step = sampleStepFine
	}
	if name == key.NameDownArrow {
		step = -step
	}

	tracker.SetSampleDuration(tracker.SampleDuration() + step)
	cfg.SampleDuration = config.Duration(tracker.SampleDuration())
	logger.Info().Dur("sample_duration", tracker.SampleDuration()).Msg("sample window changed")
}

func shortcutToggleCpu(key.Name, key.Modifiers) {
	cfg.ShowCPU = !cfg.ShowCPU
}

func shortcutToggleHelp(key.Name, key.Modifiers) {
	showHelp = !showHelp
}

func shortcutSaveConfig(key.Name, key.Modifiers) {
	err := cfg.Save(cfgPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to save config")
		return
	}
	logger.Info().Str("path", cfgPath).Msg("config saved")
}

func shortcutCaptureExclusion(_ key.Name, mod key.Modifiers) {
	err := toggleCaptureExclusion(mod.Contain(key.ModShift))
	switch {
	case errors.Is(err, errors.ErrUnsupported):
		logger.Warn().Msg("capture exclusion is only available on windows")
	case err != nil:
		logger.Error().Err(err).Msg("failed to toggle capture exclusion")
	}
}
