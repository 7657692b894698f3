package xwm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb/xproto"
)

const (
	modMask    = xproto.ModMask4
	modShift   = xproto.ModMaskShift
	modControl = xproto.ModMaskControl
	// modRelevant drops Lock, NumLock and the button state bits.
	modRelevant = xproto.ModMaskShift | xproto.ModMaskControl | xproto.ModMask1 | xproto.ModMask4
)

// lockMods are grabbed in addition to every binding so that Caps Lock and
// Num Lock do not disable it.
var lockMods = []uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2}

// Keycodes of a PC keyboard under evdev.
const (
	keyEscape    xproto.Keycode = 9
	key1         xproto.Keycode = 10
	keyBackSpace xproto.Keycode = 22
	keyTab       xproto.Keycode = 23
	keyQ         xproto.Keycode = 24
	keyT         xproto.Keycode = 28
	keyI         xproto.Keycode = 31
	keyS         xproto.Keycode = 39
	keyF         xproto.Keycode = 41
	keyGrave     xproto.Keycode = 49
	keyM         xproto.Keycode = 58
	keyUp        xproto.Keycode = 111
	keyPageUp    xproto.Keycode = 112
	keyLeft      xproto.Keycode = 113
	keyRight     xproto.Keycode = 114
	keyDown      xproto.Keycode = 116
	keyPageDown  xproto.Keycode = 117
)

func cleanMods(state uint16) uint16 {
	return state & modRelevant
}

type Key struct {
	Mods uint16
	Code xproto.Keycode
}

type Binding struct {
	Key
	Name string
	Run  func(l *Loop)
}

// onFrame runs fn on the focused frame, if any.
func onFrame(fn func(l *Loop, f *wm.Frame)) func(l *Loop) {
	return func(l *Loop) {
		if f := l.desktop.FocusedFrame(); f != nil {
			fn(l, f)
		}
	}
}

func DefaultBindings() []Binding {
	bindings := []Binding{
		{Key{modMask, keyTab}, "next-frame", func(l *Loop) { l.desktop.NextFrame(true, true) }},
		{Key{modMask | modShift, keyTab}, "prev-frame", func(l *Loop) { l.desktop.NextFrame(false, true) }},
		{Key{modMask, keyBackSpace}, "workspace-last", gotoWorkspace(wm.DirectionLast)},
		{Key{modMask, keyLeft}, "workspace-left", gotoWorkspace(wm.DirectionLeft)},
		{Key{modMask, keyRight}, "workspace-right", gotoWorkspace(wm.DirectionRight)},
		{Key{modMask, keyUp}, "workspace-up", gotoWorkspace(wm.DirectionUp)},
		{Key{modMask, keyDown}, "workspace-down", gotoWorkspace(wm.DirectionDown)},
		{Key{modMask | modShift, keyLeft}, "focus-left", focusDirectional(wm.DirLeft)},
		{Key{modMask | modShift, keyRight}, "focus-right", focusDirectional(wm.DirRight)},
		{Key{modMask | modShift, keyUp}, "focus-up", focusDirectional(wm.DirUp)},
		{Key{modMask | modShift, keyDown}, "focus-down", focusDirectional(wm.DirDown)},
		{Key{modMask | modControl, keyLeft}, "fill-left", fillEdge(wm.DirLeft)},
		{Key{modMask | modControl, keyRight}, "fill-right", fillEdge(wm.DirRight)},
		{Key{modMask | modControl, keyUp}, "fill-top", fillEdge(wm.DirUp)},
		{Key{modMask | modControl, keyDown}, "fill-bottom", fillEdge(wm.DirDown)},
		{Key{modMask, keyF}, "fullscreen", onFrame(func(l *Loop, f *wm.Frame) { f.SetFullscreen(wm.ActionToggle) })},
		{Key{modMask, keyM}, "maximize", onFrame(func(l *Loop, f *wm.Frame) { f.SetMaximized(wm.ActionToggle, true, true, false) })},
		{Key{modMask | modShift, keyM}, "fill", onFrame(func(l *Loop, f *wm.Frame) { f.SetMaximized(wm.ActionToggle, true, true, true) })},
		{Key{modMask, keyS}, "shade", onFrame(func(l *Loop, f *wm.Frame) { f.SetShaded(wm.ActionToggle) })},
		{Key{modMask | modShift, keyS}, "sticky", onFrame(func(l *Loop, f *wm.Frame) { f.SetSticky(wm.ActionToggle) })},
		{Key{modMask, keyI}, "iconify", onFrame(func(l *Loop, f *wm.Frame) { f.Iconify() })},
		{Key{modMask, keyT}, "tag", onFrame(func(l *Loop, f *wm.Frame) { f.Tag() })},
		{Key{modMask | modShift, keyT}, "detach", onFrame(func(l *Loop, f *wm.Frame) {
			if _, err := l.desktop.DetachClient(f.Active()); err != nil {
				l.log.Debug("Detach refused", "error", err)
			}
		})},
		{Key{modMask, keyGrave}, "next-tab", onFrame(func(l *Loop, f *wm.Frame) { f.ActivateNext(true) })},
		{Key{modMask, keyPageUp}, "raise", onFrame(func(l *Loop, f *wm.Frame) { l.desktop.Stacking().Raise(f.Object) })},
		{Key{modMask, keyPageDown}, "lower", onFrame(func(l *Loop, f *wm.Frame) { l.desktop.Stacking().Lower(f.Object) })},
		{Key{modMask, keyQ}, "close", onFrame(func(l *Loop, f *wm.Frame) { l.x.CloseWindow(f.Active().Window()) })},
	}

	for i := 0; i < 9; i++ {
		n := i
		bindings = append(bindings,
			Binding{Key{modMask, key1 + xproto.Keycode(i)}, fmt.Sprintf("workspace-%d", n+1), func(l *Loop) {
				l.desktop.Workspaces().SetWorkspace(n, true, l.desktop.Policy().BackAndForth)
			}},
			Binding{Key{modMask | modShift, key1 + xproto.Keycode(i)}, fmt.Sprintf("send-to-%d", n+1), onFrame(func(l *Loop, f *wm.Frame) {
				l.desktop.Workspaces().SendTo(f.Object, n)
			})},
		)
	}

	return bindings
}

func gotoWorkspace(dir wm.Direction) func(l *Loop) {
	return func(l *Loop) {
		l.desktop.Workspaces().GotoWorkspace(dir, true, false)
	}
}

func focusDirectional(dir wm.Dir) func(l *Loop) {
	return func(l *Loop) {
		l.desktop.FocusResolver().FocusDirectional(dir, true)
	}
}

func fillEdge(dir wm.Dir) func(l *Loop) {
	return onFrame(func(l *Loop, f *wm.Frame) { f.FillEdge(dir, 50) })
}

func (x *X) grabKeys(bindings []Binding) {
	for _, b := range bindings {
		for _, lock := range lockMods {
			xproto.GrabKey(x.conn, true, x.root, b.Mods|lock, b.Code, xproto.GrabModeAsync, xproto.GrabModeAsync)
		}
	}
}

// grabButtons sets up click to focus on plain Button1 and move/resize with
// the modifier held.
func (x *X) grabButtons(frame xproto.Window) {
	const mask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion
	for _, lock := range lockMods {
		xproto.GrabButton(x.conn, false, frame, mask, xproto.GrabModeSync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone, xproto.ButtonIndex1, lock)
		xproto.GrabButton(x.conn, false, frame, mask, xproto.GrabModeAsync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone, xproto.ButtonIndex1, modMask|lock)
		xproto.GrabButton(x.conn, false, frame, mask, xproto.GrabModeAsync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone, xproto.ButtonIndex3, modMask|lock)
	}
}
