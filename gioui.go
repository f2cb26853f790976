package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/kbinani/screenshot"

	"github.com/Miuzarte/FpsOverlay/config"
	"github.com/Miuzarte/FpsOverlay/contextWaitGroup"
	"github.com/Miuzarte/FpsOverlay/widgets"
)

const (
	panelPadding = 6

	minWindowW, minWindowH = 320, 140
)

type rgba struct {
	R, G, B, A uint8
}

var (
	colorWhite = rgba{0xFF, 0xFF, 0xFF, 0xFF}
	colorBlack = rgba{0x10, 0x10, 0x10, 0xFF}

	colorCoral = rgba{0xA6, 0x62, 0x61, 0xFF}

	colorGreen = rgba{0x2E, 0xC4, 0x5A, 0xFF}
	colorRed   = rgba{0xE0, 0x3C, 0x31, 0xFF}
)

var window app.Window

var (
	mTheme = material.NewTheme()
	panel  widgets.StatsPanelStyle

	showHelp bool

	shortcuts = widgets.NewShortcuts(&window,
		widgets.Shortcut{
			Key:  widgets.NewShortcut(0, 0, "R", "r"),
			Desc: "reset statistics",
			F:    shortcutResetStats,
		},
		widgets.Shortcut{
			Key:  widgets.NewShortcut(0, 0, key.NameSpace),
			Desc: "log statistics",
			F:    shortcutLogStats,
		},
		widgets.Shortcut{
			Key:  widgets.NewShortcut(0, key.ModShift, key.NameUpArrow, key.NameDownArrow),
			Desc: "longer/shorter sample window",
			F:    shortcutSampleDuration,
		},
		widgets.Shortcut{
			Key:  widgets.NewShortcut(0, 0, "C", "c"),
			Desc: "toggle cpu usage",
			F:    shortcutToggleCpu,
		},
		widgets.Shortcut{
			Key:  widgets.NewShortcut(key.ModCtrl, 0, "S", "s"),
			Desc: "save config",
			F:    shortcutSaveConfig,
		},
		widgets.Shortcut{
			Key:  widgets.NewShortcut(0, key.ModShift, "T", "t"),
			Desc: "exclude window from capture",
			F:    shortcutCaptureExclusion,
		},
		widgets.Shortcut{
			Key:  widgets.NewShortcut(0, 0, "H", "h"),
			Desc: "toggle this help",
			F:    shortcutToggleHelp,
		},
	)
)

func init() {
	mTheme.Fg = color.NRGBA(colorWhite)
	mTheme.Bg = color.NRGBA(colorBlack)
	mTheme.ContrastFg = color.NRGBA(colorWhite)
	mTheme.ContrastBg = color.NRGBA(colorCoral)
	widgets.Theme = mTheme

	panel = widgets.StatsPanel(
		unit.Sp(config.Default().FontSize), layout.NW, panelPadding,
		color.NRGBA(colorGreen), color.NRGBA(colorRed),
	)
}

func applyTheme() {
	panel.TextSize = unit.Sp(cfg.FontSize)
}

func wakeDriver() {
	if !headless {
		window.Invalidate()
	}
}

// windowSize picks a size proportional to the largest display.
func windowSize() (w, h unit.Dp) {
	numDisplays := screenshot.NumActiveDisplays()
	logger.Debug().Int("displays", numDisplays).Msg("looking for the largest display")

	var maxBounds image.Rectangle
	var maxRes int
	for i := range numDisplays {
		bounds := screenshot.GetDisplayBounds(i)
		size := bounds.Size()
		if res := size.X * size.Y; res > maxRes {
			maxBounds = bounds
			maxRes = res
		}
	}
	if maxRes == 0 {
		return minWindowW, minWindowH
	}
	logger.Debug().Int("w", maxBounds.Dx()).Int("h", maxBounds.Dy()).Msg("using display")

	return unit.Dp(max(maxBounds.Dx()/6, minWindowW)), unit.Dp(max(maxBounds.Dy()/8, minWindowH))
}

func runWindow(cwg *contextWaitGroup.CWG) error {
	if windowTitle == "" {
		return fmt.Errorf("failed to initialize window title")
	}
	applyTheme()

	w, h := windowSize()
	window.Option(
		app.Title(windowTitle),
		app.Size(w, h),
		app.MinSize(minWindowW, minWindowH),
	)

	cwg.Go(func(ctx context.Context) {
		windowLoop(ctx, cwg.Cancel)
	})
	cwg.Go(func(ctx context.Context) {
		<-ctx.Done()
		// using ctrl c to exit in console
		// telling the window on background to response
		window.Invalidate()
	})

	// app.Main owns the main thread and never returns
	go func() {
		err := cwg.Wait()
		if err != nil {
			logger.Error().Err(err).Msg("exiting")
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func windowLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	var ops op.Ops
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch e := window.Event().(type) {
		case app.DestroyEvent:
			if e.Err != nil {
				logger.Error().Err(e.Err).Msg("window error")
			} else {
				logger.Debug().Msg("window closed normally")
			}
			return

		case app.FrameEvent:
			select {
			case c := <-cfgSignal:
				applyConfig(c)
			default:
			}

			tracker.Tick(e.Now)
			publishStats()

			gtx := app.NewContext(&ops, e)
			err := shortcuts.Match(gtx)
			if err != nil {
				logger.Warn().Err(err).Msg("shortcuts match error")
			}
			layoutOverlay(gtx)

			// keep frames coming, every one of them is a sample
			gtx.Execute(op.InvalidateCmd{})
			e.Frame(gtx.Ops)

		default:
			logger.Trace().Msgf("event[%T]: %v", e, e)
		}
	}
}

func layoutOverlay(gtx layout.Context) layout.Dimensions {
	s := tracker.Stats()

	footer := make([]string, 0, 3)
	line := fmt.Sprintf("window %s", tracker.SampleDuration())
	if s.WarmingUp {
		line += " | warming up"
	}
	footer = append(footer, line)
	if cfg.ShowCPU {
		footer = append(footer, fmt.Sprintf("CPU %.1f%%", cpu()))
	}
	if showHelp {
		footer = append(footer, shortcuts.Help()...)
	}

	return panel.Layout(gtx, footer...)
}
