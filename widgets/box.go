package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

const overlayAlpha = 0xD8

// Box draws an optional rounded border and a translucent background
// sized to whatever widget it wraps.
type Box struct {
	Radius                       unit.Dp
	Thickness                    unit.Dp
	Inset                        layout.Inset
	BorderColor, BackgroundColor color.NRGBA
	Border, Background           bool
}

func NewBox() Box {
	bg := Theme.Bg
	bg.A = overlayAlpha
	return Box{
		Radius:          4,
		Thickness:       2,
		Inset:           layout.Inset{},
		BorderColor:     Theme.ContrastBg,
		BackgroundColor: bg,
		Border:          true,
		Background:      false,
	}
}

func (b Box) Layout(gtx layout.Context, widget layout.Widget) layout.Dimensions {
	radius := gtx.Dp(b.Radius)
	thickness := float32(max(gtx.Dp(b.Thickness), 1))

	// measure first, the background has to be painted below the content
	macro := op.Record(gtx.Ops)
	gtx.Constraints.Min = image.Point{}
	dims := b.Inset.Layout(gtx, widget)
	call := macro.Stop()

	rect := clip.RRect{
		SE: radius, SW: radius,
		NW: radius, NE: radius,
		Rect: image.Rectangle{Max: dims.Size},
	}
	if b.Background {
		paint.FillShape(gtx.Ops, b.BackgroundColor, rect.Op(gtx.Ops))
	}
	call.Add(gtx.Ops)
	if b.Border {
		paint.FillShape(gtx.Ops, b.BorderColor, clip.Stroke{
			Path:  rect.Path(gtx.Ops),
			Width: thickness,
		}.Op())
	}
	return dims
}
