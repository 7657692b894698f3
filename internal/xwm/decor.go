package xwm

import (
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb/xproto"
)

var _ wm.Decorator = (*X)(nil)

// Decorate paints the frame background, which is all that shows of the
// border and title bar.
func (x *X) Decorate(f *wm.Frame) {
	color := x.options.UnfocusedColor
	switch {
	case f.IsFocused():
		color = x.options.FocusedColor
	case f.IsTagged():
		color = x.options.TaggedColor
	}

	win := xproto.Window(f.Window())
	xproto.ChangeWindowAttributes(x.conn, win, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(x.conn, false, win, 0, 0, 0, 0)
}
