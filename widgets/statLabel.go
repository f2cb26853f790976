package widgets

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
)

const placeholder = "-"

type statState struct {
	text    string
	updates int
}

// StatLabel is a value cell the fps.Tracker writes into.
// Copies share the same text, like the other widgets here.
type StatLabel struct {
	*statState
	Color color.NRGBA
}

func NewStatLabel(c color.NRGBA) StatLabel {
	return StatLabel{statState: &statState{text: placeholder}, Color: c}
}

func (s StatLabel) SetText(txt string) {
	s.text = txt
	s.updates++
}

func (s StatLabel) Text() string {
	return s.text
}

// Updates counts SetText calls since creation.
func (s StatLabel) Updates() int {
	return s.updates
}

func (s StatLabel) Layout(gtx layout.Context, size unit.Sp) layout.Dimensions {
	return Label(size, s.text).
		Mono().
		Weight(font.Bold).
		Tint(s.Color).
		Alignment(text.End).
		MaxLines(1).
		Layout(gtx)
}
