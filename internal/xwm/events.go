package xwm

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- xgb.Event) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		if err != nil {
			// Unchecked requests on windows that are already gone end up here.
			slog.Debug("request failed", "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- ev:
		}
	}
}

func (l *Loop) handle(ev xgb.Event) {
	switch ev := ev.(type) {
	case xproto.MapRequestEvent:
		l.mapRequest(wm.WindowID(ev.Window))
	case xproto.UnmapNotifyEvent:
		l.unmapNotify(ev)
	case xproto.DestroyNotifyEvent:
		w := wm.WindowID(ev.Window)
		l.x.Forget(w)
		l.desktop.Unmanage(w)
	case xproto.ConfigureRequestEvent:
		l.configureRequest(ev)
	case xproto.ConfigureNotifyEvent:
		if ev.Window == l.x.root {
			l.log.Debug("Screen changed", "width", ev.Width, "height", ev.Height)
			l.desktop.SetHeads(l.x.Heads())
		}
	case xproto.PropertyNotifyEvent:
		l.propertyNotify(ev)
	case xproto.ClientMessageEvent:
		l.clientMessage(ev)
	case xproto.ButtonPressEvent:
		l.buttonPress(ev)
	case xproto.ButtonReleaseEvent:
		l.endMoveResize(false)
	case xproto.MotionNotifyEvent:
		if l.mr != nil && !l.mr.Motion(int(ev.RootX), int(ev.RootY)) {
			l.mr = nil
		}
	case xproto.KeyPressEvent:
		l.keyPress(ev)
	case xproto.ExposeEvent:
		if ev.Count != 0 {
			return
		}
		if f := l.desktop.FrameOf(wm.WindowID(ev.Window)); f != nil {
			l.x.Decorate(f)
		}
	}
}

func (l *Loop) mapRequest(w wm.WindowID) {
	if c := l.desktop.Client(w); c != nil {
		if f := c.Frame(); f != nil && f.IsIconified() {
			f.Deiconify()
		}
		return
	}

	override, err := l.x.OverrideRedirect(w)
	if err != nil {
		return
	}
	if override {
		l.x.Map(w)
		return
	}

	l.manage(w)
}

func (l *Loop) unmapNotify(ev xproto.UnmapNotifyEvent) {
	w := wm.WindowID(ev.Window)
	if l.x.consumeIgnore(w) {
		return
	}
	c := l.desktop.Client(w)
	if c == nil {
		return
	}

	if f := c.Frame(); f != nil {
		l.x.Release(w, f.ContentArea())
	}
	l.desktop.Unmanage(w)
}

func (l *Loop) configureRequest(ev xproto.ConfigureRequestEvent) {
	if l.desktop.Client(wm.WindowID(ev.Window)) != nil {
		l.desktop.HandleConfigureRequest(configureRequest(ev))
		return
	}

	mask, values := passThrough(ev)
	xproto.ConfigureWindow(l.x.conn, ev.Window, mask, values)
}

func (l *Loop) propertyNotify(ev xproto.PropertyNotifyEvent) {
	c := l.desktop.Client(wm.WindowID(ev.Window))
	if c == nil {
		return
	}
	src := l.x.Source(c.Window())

	switch ev.Atom {
	case xproto.AtomWmNormalHints:
		hints, err := src.SizeHints()
		if err != nil {
			return
		}
		c.SetHints(hints)
	case l.x.atoms.Get(atomStrut), l.x.atoms.Get(atomStrutPartial):
		strut, err := src.Strut()
		if err != nil {
			return
		}
		l.desktop.SetStrut(c, strut)
	}
}

func (l *Loop) clientMessage(ev xproto.ClientMessageEvent) {
	data := ev.Data.Data32
	if ev.Format != 32 || len(data) < 3 {
		return
	}
	w := wm.WindowID(ev.Window)

	switch l.x.atoms.Name(ev.Type) {
	case atomState:
		action, ok := DecodeAction(data[0])
		if !ok {
			return
		}
		state := DecodeState(l.x.atoms, []xproto.Atom{xproto.Atom(data[1]), xproto.Atom(data[2])})
		l.desktop.HandleStateRequest(w, action, state)
	case atomActiveWindow:
		l.desktop.HandleActivate(w)
	case atomCurrentDesktop:
		l.desktop.Workspaces().SetWorkspace(int(data[0]), true, false)
	case atomWMDesktop:
		f := l.desktop.FrameOf(w)
		if f == nil {
			return
		}
		if data[0] == allDesktops {
			f.SetSticky(wm.ActionSet)
		} else {
			l.desktop.Workspaces().SendTo(f.Object, int(data[0]))
		}
	case atomCloseWindow:
		if l.desktop.Client(w) != nil {
			l.x.CloseWindow(w)
		}
	case atomWMChange:
		if f := l.desktop.FrameOf(w); f != nil && data[0] == wmStateIconic {
			f.Iconify()
		}
	}
}

func (l *Loop) buttonPress(ev xproto.ButtonPressEvent) {
	f := l.desktop.FrameOf(wm.WindowID(ev.Event))
	if f == nil {
		xproto.AllowEvents(l.x.conn, xproto.AllowReplayPointer, ev.Time)
		return
	}
	l.endMoveResize(false)

	px, py := int(ev.RootX), int(ev.RootY)
	mods := cleanMods(ev.State)
	switch {
	case mods == modMask && ev.Detail == xproto.ButtonIndex1:
		l.mr = l.desktop.BeginMove(f, px, py)
	case mods == modMask && ev.Detail == xproto.ButtonIndex3:
		l.mr = l.desktop.BeginResize(f, px, py, 0)
	default:
		l.desktop.Stacking().Raise(f.Object)
		l.desktop.Focus(f.Object)
		// A press on the decoration drags the frame, anything else goes
		// on to the client.
		if ev.Child == xproto.WindowNone && ev.Detail == xproto.ButtonIndex1 {
			xproto.AllowEvents(l.x.conn, xproto.AllowAsyncPointer, ev.Time)
			l.mr = l.desktop.BeginMove(f, px, py)
			return
		}
		xproto.AllowEvents(l.x.conn, xproto.AllowReplayPointer, ev.Time)
	}
}

func (l *Loop) keyPress(ev xproto.KeyPressEvent) {
	if l.mr != nil {
		if ev.Detail == keyEscape {
			l.endMoveResize(true)
		}
		return
	}

	b, ok := l.bindings[Key{Mods: cleanMods(ev.State), Code: ev.Detail}]
	if !ok {
		return
	}
	l.log.Debug("Running binding", "binding", b.Name)
	b.Run(l)
}
