// Package xwm drives the window manager engine from an X11 display.
package xwm

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/ItsNotGoodName/x-stackwm/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
)

var ErrOtherWM = errors.New("another window manager is running")

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

type Options struct {
	Name           string
	FocusedColor   uint32
	UnfocusedColor uint32
	TaggedColor    uint32
}

// X implements wm.Display on an X connection.
type X struct {
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	root    xproto.Window
	check   xproto.Window
	atoms   Atoms
	cursors *xcursor.Cache
	options Options
	log     *slog.Logger

	xinerama bool
	frames   map[wm.WindowID]bool
	// ignore counts the UnmapNotify events caused by our own requests.
	ignore map[wm.WindowID]int
}

var _ wm.Display = (*X)(nil)

// Open makes conn the window manager of its default screen.
func Open(conn *xgb.Conn, options Options) (*X, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	if err := xproto.ChangeWindowAttributesChecked(conn, screen.Root,
		xproto.CwEventMask, []uint32{rootEventMask}).Check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOtherWM, err)
	}

	atoms, err := InternAtoms(conn)
	if err != nil {
		return nil, err
	}

	x := &X{
		conn:    conn,
		screen:  screen,
		root:    screen.Root,
		atoms:   atoms,
		cursors: xcursor.NewCache(conn),
		options: options,
		log:     slog.With("package", "xwm"),
		frames:  make(map[wm.WindowID]bool),
		ignore:  make(map[wm.WindowID]int),
	}

	if err := xinerama.Init(conn); err != nil {
		x.log.Debug("Xinerama unavailable", "error", err)
	} else {
		x.xinerama = true
	}

	if cursor, err := x.cursors.Get(xcursor.LeftPtr); err == nil {
		xproto.ChangeWindowAttributes(conn, x.root, xproto.CwCursor, []uint32{uint32(cursor)})
	}

	if err := x.setupSupporting(); err != nil {
		return nil, err
	}

	return x, nil
}

// setupSupporting creates the _NET_SUPPORTING_WM_CHECK window and advertises
// the supported hints.
func (x *X) setupSupporting() error {
	wid, err := xproto.NewWindowId(x.conn)
	if err != nil {
		return err
	}

	if err := xproto.CreateWindowChecked(x.conn, xproto.WindowClassCopyFromParent,
		wid, x.root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOutput, xproto.WindowClassCopyFromParent,
		xproto.CwOverrideRedirect, []uint32{1}).Check(); err != nil {
		return err
	}
	x.check = wid

	for _, w := range []xproto.Window{x.root, x.check} {
		x.setWindow(w, x.atoms.Get(atomSupportingCheck), []xproto.Window{x.check})
	}
	x.setString(x.check, x.atoms.Get(atomWMName), x.options.Name)
	xproto.ChangeProperty(x.conn, xproto.PropModeReplace, x.root, x.atoms.Get(atomSupported),
		xproto.AtomAtom, 32, uint32(len(x.atoms.Supported())), putAtoms(x.atoms.Supported()))

	return nil
}

func (x *X) Close() {
	xproto.DeleteProperty(x.conn, x.root, x.atoms.Get(atomSupportingCheck))
	if x.check != 0 {
		xproto.DestroyWindow(x.conn, x.check)
	}
	x.cursors.Free()
	// Round trip so the requests above are flushed.
	xproto.GetInputFocus(x.conn).Reply()
}

func (x *X) Conn() *xgb.Conn {
	return x.conn
}

// Heads returns the physical screens, or the whole root window when Xinerama
// reports none.
func (x *X) Heads() []geom.Rect {
	whole := []geom.Rect{geom.R(0, 0, int(x.screen.WidthInPixels), int(x.screen.HeightInPixels))}
	if !x.xinerama {
		return whole
	}

	reply, err := xinerama.QueryScreens(x.conn).Reply()
	if err != nil {
		x.log.Warn("Failed to query screens", "error", err)
		return whole
	}
	if len(reply.ScreenInfo) == 0 {
		return whole
	}

	heads := make([]geom.Rect, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		heads = append(heads, geom.R(int(s.XOrg), int(s.YOrg), int(s.Width), int(s.Height)))
	}
	return heads
}

// Toplevels lists the mapped, non override-redirect children of the root.
func (x *X) Toplevels() ([]wm.WindowID, error) {
	tree, err := xproto.QueryTree(x.conn, x.root).Reply()
	if err != nil {
		return nil, err
	}

	var out []wm.WindowID
	for _, w := range tree.Children {
		if w == x.check {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(x.conn, w).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		out = append(out, wm.WindowID(w))
	}
	return out, nil
}

// OverrideRedirect reports whether w asked to bypass the window manager.
func (x *X) OverrideRedirect(w wm.WindowID) (bool, error) {
	attrs, err := xproto.GetWindowAttributes(x.conn, xproto.Window(w)).Reply()
	if err != nil {
		return false, err
	}
	return attrs.OverrideRedirect, nil
}

func (x *X) GrabServer() {
	xproto.GrabServer(x.conn)
}

func (x *X) UngrabServer() {
	xproto.UngrabServer(x.conn)
}

var cursorGlyphs = map[wm.Cursor]uint16{
	wm.CursorDefault:           xcursor.LeftPtr,
	wm.CursorMove:              xcursor.Fleur,
	wm.CursorResizeTopLeft:     xcursor.TopLeftCorner,
	wm.CursorResizeTop:         xcursor.TopSide,
	wm.CursorResizeTopRight:    xcursor.TopRightCorner,
	wm.CursorResizeLeft:        xcursor.LeftSide,
	wm.CursorResizeRight:       xcursor.RightSide,
	wm.CursorResizeBottomLeft:  xcursor.BottomLeftCorner,
	wm.CursorResizeBottom:      xcursor.BottomSide,
	wm.CursorResizeBottomRight: xcursor.BottomRightCorner,
}

// GrabPointer grabs the pointer and the keyboard, the latter so that Escape
// reaches us during a move.
func (x *X) GrabPointer(cursor wm.Cursor) bool {
	glyph, ok := cursorGlyphs[cursor]
	if !ok {
		glyph = xcursor.LeftPtr
	}
	c, err := x.cursors.Get(glyph)
	if err != nil {
		x.log.Warn("Failed to create cursor", "error", err)
		c = xproto.CursorNone
	}

	reply, err := xproto.GrabPointer(x.conn, false, x.root,
		xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, c, xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		x.log.Debug("Pointer grab refused", "error", err)
		return false
	}

	xproto.GrabKeyboard(x.conn, false, x.root, xproto.TimeCurrentTime, xproto.GrabModeAsync, xproto.GrabModeAsync)
	return true
}

func (x *X) UngrabPointer() {
	xproto.UngrabKeyboard(x.conn, xproto.TimeCurrentTime)
	xproto.UngrabPointer(x.conn, xproto.TimeCurrentTime)
}

func (x *X) Focus(w wm.WindowID) {
	focus := xproto.Window(w)
	if w == wm.None {
		focus = x.root
	}
	xproto.SetInputFocus(x.conn, xproto.InputFocusPointerRoot, focus, xproto.TimeCurrentTime)
}

func (x *X) QueryPointer() (int, int, bool) {
	reply, err := xproto.QueryPointer(x.conn, x.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), reply.SameScreen
}

func (x *X) WarpPointer(px, py int) {
	xproto.WarpPointer(x.conn, xproto.WindowNone, x.root, 0, 0, 0, 0, int16(px), int16(py))
}

// CloseWindow asks w to close through WM_DELETE_WINDOW, killing its
// connection when it does not take part in the protocol.
func (x *X) CloseWindow(w wm.WindowID) {
	win := xproto.Window(w)
	protocols, _ := x.getAtoms(win, x.atoms.Get(atomWMProtos))
	for _, p := range protocols {
		if p != x.atoms.Get(atomWMDelete) {
			continue
		}
		ev := xproto.ClientMessageEvent{
			Format: 32,
			Window: win,
			Type:   x.atoms.Get(atomWMProtos),
			Data: xproto.ClientMessageDataUnionData32New([]uint32{
				uint32(x.atoms.Get(atomWMDelete)), uint32(xproto.TimeCurrentTime), 0, 0, 0,
			}),
		}
		xproto.SendEvent(x.conn, false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
		return
	}

	xproto.KillClient(x.conn, uint32(win))
}
