package xwm

import (
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb/xproto"
)

const frameEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskExposure

// ICCCM WM_STATE values.
const (
	wmStateWithdrawn = 0
	wmStateNormal    = 1
	wmStateIconic    = 3
)

func (x *X) CreateFrame(r geom.Rect) (wm.WindowID, error) {
	// Generate X window id
	wid, err := xproto.NewWindowId(x.conn)
	if err != nil {
		return wm.None, err
	}

	// Create X window in root
	if err := xproto.CreateWindowChecked(x.conn, x.screen.RootDepth,
		wid, x.root,
		int16(r.X), int16(r.Y), dimension(r.W), dimension(r.H), 0,
		xproto.WindowClassInputOutput, x.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask, // 1, 2
		[]uint32{
			x.options.UnfocusedColor, // 1
			frameEventMask,           // 2
		}).Check(); err != nil {
		return wm.None, err
	}

	x.grabButtons(wid)
	x.frames[wm.WindowID(wid)] = true

	return wm.WindowID(wid), nil
}

func (x *X) DestroyFrame(frame wm.WindowID) {
	delete(x.frames, frame)
	xproto.DestroyWindow(x.conn, xproto.Window(frame))
}

func (x *X) Reparent(client, frame wm.WindowID, rx, ry int) {
	win := xproto.Window(client)
	if attrs, err := xproto.GetWindowAttributes(x.conn, win).Reply(); err == nil && attrs.MapState == xproto.MapStateViewable {
		x.ignore[client]++
	}

	xproto.ChangeSaveSet(x.conn, xproto.SetModeInsert, win)
	xproto.ChangeWindowAttributes(x.conn, win, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange})
	xproto.ConfigureWindow(x.conn, win, xproto.ConfigWindowBorderWidth, []uint32{0})
	xproto.ReparentWindow(x.conn, win, xproto.Window(frame), int16(rx), int16(ry))
}

// Release hands a client that is no longer managed back to the root window.
func (x *X) Release(client wm.WindowID, r geom.Rect) {
	win := xproto.Window(client)
	delete(x.ignore, client)
	xproto.ChangeWindowAttributes(x.conn, win, xproto.CwEventMask, []uint32{xproto.EventMaskNoEvent})
	xproto.ReparentWindow(x.conn, win, x.root, int16(r.X), int16(r.Y))
	xproto.ChangeSaveSet(x.conn, xproto.SetModeDelete, win)
	x.setWMState(win, wmStateWithdrawn)
}

// Forget drops the bookkeeping of a destroyed window.
func (x *X) Forget(w wm.WindowID) {
	delete(x.ignore, w)
}

// consumeIgnore reports whether an UnmapNotify for w was caused by us.
func (x *X) consumeIgnore(w wm.WindowID) bool {
	n := x.ignore[w]
	if n == 0 {
		return false
	}
	if n == 1 {
		delete(x.ignore, w)
	} else {
		x.ignore[w] = n - 1
	}
	return true
}

func (x *X) MoveResize(w wm.WindowID, r geom.Rect) {
	mask, values := geometryValues(r)
	xproto.ConfigureWindow(x.conn, xproto.Window(w), mask, values)
}

func (x *X) ConfigureClient(client wm.WindowID, rel, abs geom.Rect) {
	win := xproto.Window(client)
	mask, values := geometryValues(rel)
	xproto.ConfigureWindow(x.conn, win, mask, values)

	ev := xproto.ConfigureNotifyEvent{
		Event:  win,
		Window: win,
		X:      int16(abs.X),
		Y:      int16(abs.Y),
		Width:  dimension(abs.W),
		Height: dimension(abs.H),
	}
	xproto.SendEvent(x.conn, false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (x *X) Map(w wm.WindowID) {
	if !x.frames[w] {
		x.setWMState(xproto.Window(w), wmStateNormal)
	}
	xproto.MapWindow(x.conn, xproto.Window(w))
}

func (x *X) Unmap(w wm.WindowID) {
	if !x.frames[w] {
		x.ignore[w]++
		x.setWMState(xproto.Window(w), wmStateIconic)
	}
	xproto.UnmapWindow(x.conn, xproto.Window(w))
}

func (x *X) Restack(windows []wm.WindowID, sibling wm.WindowID) {
	for _, req := range restackRequests(windows, sibling) {
		xproto.ConfigureWindow(x.conn, xproto.Window(req.window), req.mask, req.values)
	}
}

type configureWindow struct {
	window wm.WindowID
	mask   uint16
	values []uint32
}

// restackRequests chains windows above sibling, each directly above the
// previous one. Without a sibling the first window goes to the bottom.
func restackRequests(windows []wm.WindowID, sibling wm.WindowID) []configureWindow {
	reqs := make([]configureWindow, 0, len(windows))
	for _, w := range windows {
		if sibling == wm.None {
			reqs = append(reqs, configureWindow{
				window: w,
				mask:   xproto.ConfigWindowStackMode,
				values: []uint32{xproto.StackModeBelow},
			})
		} else {
			reqs = append(reqs, configureWindow{
				window: w,
				mask:   xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode,
				values: []uint32{uint32(sibling), xproto.StackModeAbove},
			})
		}
		sibling = w
	}
	return reqs
}

func geometryValues(r geom.Rect) (uint16, []uint32) {
	return xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(r.X)), uint32(int32(r.Y)), uint32(dimension(r.W)), uint32(dimension(r.H))}
}

// passThrough builds the ConfigureWindow arguments granting an unmanaged
// window exactly what it asked for.
func passThrough(ev xproto.ConfigureRequestEvent) (uint16, []uint32) {
	var values []uint32
	mask := ev.ValueMask
	if mask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(int32(ev.X)))
	}
	if mask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(int32(ev.Y)))
	}
	if mask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if mask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if mask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if mask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if mask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}
	return mask, values
}

// configureRequest converts the request of a managed window.
func configureRequest(ev xproto.ConfigureRequestEvent) wm.ConfigureRequest {
	req := wm.ConfigureRequest{
		Window:  wm.WindowID(ev.Window),
		X:       int(ev.X),
		Y:       int(ev.Y),
		W:       int(ev.Width),
		H:       int(ev.Height),
		Sibling: wm.WindowID(ev.Sibling),
		Detail:  DecodeStackMode(ev.StackMode),
	}
	for _, m := range []struct {
		bit  uint16
		flag wm.ConfigureMask
	}{
		{xproto.ConfigWindowX, wm.ConfigureX},
		{xproto.ConfigWindowY, wm.ConfigureY},
		{xproto.ConfigWindowWidth, wm.ConfigureWidth},
		{xproto.ConfigWindowHeight, wm.ConfigureHeight},
		{xproto.ConfigWindowSibling, wm.ConfigureSibling},
		{xproto.ConfigWindowStackMode, wm.ConfigureStackMode},
	} {
		if ev.ValueMask&m.bit != 0 {
			req.Mask |= m.flag
		}
	}
	return req
}

func dimension(n int) uint16 {
	if n < 1 {
		return 1
	}
	if n > 0xFFFF {
		return 0xFFFF
	}
	return uint16(n)
}
