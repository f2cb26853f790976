package widgets

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"

	"github.com/Miuzarte/FpsOverlay/fps"
)

type StatsPanelStyle struct {
	FPS, FPSHigh, FPSLow StatLabel
	Ms, MsLow, MsHigh    StatLabel

	Direction layout.Direction
	Padding   unit.Dp
	TextSize  unit.Sp

	Box
}

// StatsPanel lays the six tracker outputs out as a small table:
//
//	      now  best  worst
//	FPS   ...   ...    ...
//	MS    ...   ...    ...
func StatsPanel(size unit.Sp, direction layout.Direction, pad unit.Dp, best, worst color.NRGBA) (p StatsPanelStyle) {
	p.FPS = NewStatLabel(Theme.Fg)
	p.Ms = NewStatLabel(Theme.Fg)
	p.FPSHigh = NewStatLabel(best)
	p.MsLow = NewStatLabel(best)
	p.FPSLow = NewStatLabel(worst)
	p.MsHigh = NewStatLabel(worst)
	p.Direction = direction
	p.Padding = pad
	p.TextSize = size
	p.Box = NewBox()
	p.Box.Inset = layout.UniformInset(pad)
	p.Box.Background = true
	return p
}

func (p StatsPanelStyle) Sinks() fps.Sinks {
	return fps.Sinks{
		FPS: p.FPS, Ms: p.Ms,
		FPSHigh: p.FPSHigh, MsLow: p.MsLow,
		FPSLow: p.FPSLow, MsHigh: p.MsHigh,
	}
}

func (p StatsPanelStyle) cell(txt string) layout.FlexChild {
	return layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
		return Label(p.TextSize, txt).Mono().Alignment(text.End).MaxLines(1).Layout(gtx)
	})
}

func (p StatsPanelStyle) value(s StatLabel) layout.FlexChild {
	return layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
		return s.Layout(gtx, p.TextSize)
	})
}

func (p StatsPanelStyle) row(children ...layout.FlexChild) layout.FlexChild {
	return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
	})
}

// Layout draws the table followed by one line per footer entry.
func (p StatsPanelStyle) Layout(gtx layout.Context, footer ...string) layout.Dimensions {
	rows := []layout.FlexChild{
		p.row(p.cell(""), p.cell("now"), p.cell("best"), p.cell("worst")),
		p.row(p.cell("FPS"), p.value(p.FPS), p.value(p.FPSHigh), p.value(p.FPSLow)),
		p.row(p.cell("MS"), p.value(p.Ms), p.value(p.MsLow), p.value(p.MsHigh)),
	}
	for _, line := range footer {
		rows = append(rows, layout.Rigid(Label(p.TextSize*0.75, line).Mono().MaxLines(1).Layout))
	}

	return p.Direction.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return p.Box.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
		})
	})
}
