package wm

import "github.com/ItsNotGoodName/x-stackwm/internal/geom"

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorResizeTopLeft
	CursorResizeTop
	CursorResizeTopRight
	CursorResizeLeft
	CursorResizeRight
	CursorResizeBottomLeft
	CursorResizeBottom
	CursorResizeBottomRight
)

// Display is the display server as seen by the engine. Calls are fire and
// forget; implementations log their own request errors.
type Display interface {
	// CreateFrame creates an unmapped frame window.
	CreateFrame(r geom.Rect) (WindowID, error)
	DestroyFrame(frame WindowID)
	// Reparent puts client inside frame at the given offset.
	Reparent(client, frame WindowID, x, y int)
	MoveResize(w WindowID, r geom.Rect)
	// ConfigureClient places client at rel inside its frame and tells it its
	// absolute geometry.
	ConfigureClient(client WindowID, rel, abs geom.Rect)
	Map(w WindowID)
	Unmap(w WindowID)
	// Restack places windows, ordered bottom to top, directly above sibling,
	// or at the bottom when sibling is None, in one request batch.
	Restack(windows []WindowID, sibling WindowID)
	GrabServer()
	UngrabServer()
	GrabPointer(cursor Cursor) bool
	UngrabPointer()
	// Focus gives input focus to w, or to the root when w is None.
	Focus(w WindowID)
	QueryPointer() (x, y int, ok bool)
	WarpPointer(x, y int)

	PublishClientList(clients []WindowID)
	PublishStacking(clients []WindowID)
	PublishActive(client WindowID)
	PublishDesktops(active int, names []string)
	PublishClientDesktop(client WindowID, workspace int, sticky bool)
	PublishClientState(client WindowID, state State)
	PublishFrameExtents(client WindowID, left, right, top, bottom int)
}

// Decorator redraws frame decorations.
type Decorator interface {
	Decorate(f *Frame)
}

type NopDecorator struct{}

func (NopDecorator) Decorate(*Frame) {}

// ClientSource reads the properties of a window about to be managed. Any
// error means the window is gone.
type ClientSource interface {
	Window() WindowID
	Geometry() (geom.Rect, error)
	SizeHints() (SizeHints, error)
	TransientFor() (WindowID, error)
	WindowType() (WindowType, error)
	State() (State, error)
	// Workspace returns the requested workspace; ok is false when none was
	// requested. A request for all workspaces is reported as sticky.
	Workspace() (n int, sticky bool, ok bool, err error)
	Strut() (geom.Strut, error)
}

type FocusRaise int

const (
	FocusRaiseAlways FocusRaise = iota
	FocusRaiseIfCovered
	FocusRaiseNever
)

// Policy holds the tunables of the engine.
type Policy struct {
	BorderWidth int
	TitleHeight int

	EdgeAttract  int
	EdgeResist   int
	FrameAttract int
	FrameResist  int

	// FullscreenAbove puts fullscreen frames on LayerAboveDock.
	FullscreenAbove bool
	FocusNew        bool
	// FocusStacking makes the focus fallback scan stacking order instead
	// of the MRU list.
	FocusStacking  bool
	FocusRaise     FocusRaise
	RaiseOverlap   int
	WorkspaceWrap  bool
	BackAndForth   bool
	EdgeWarp       int
	GrabOnMove     bool
	WorkspaceNames []string
	PerRow         int
	// Deny is applied to every client on top of its own mask.
	Deny Deny
}

func DefaultPolicy() Policy {
	return Policy{
		BorderWidth:    1,
		TitleHeight:    20,
		EdgeAttract:    10,
		EdgeResist:     10,
		FrameAttract:   5,
		FrameResist:    5,
		FocusNew:       true,
		FocusRaise:     FocusRaiseAlways,
		RaiseOverlap:   50,
		WorkspaceWrap:  true,
		BackAndForth:   true,
		EdgeWarp:       1,
		WorkspaceNames: []string{"1", "2", "3", "4"},
		PerRow:         2,
	}
}

// Events published on the bus.
type (
	StackingChanged struct {
		Objects []ObjectInfo
	}
	FocusChanged struct {
		ID     ID
		Window WindowID
		Kind   Kind
	}
	WorkspaceChanged struct {
		Active   int
		Previous int
		Names    []string
		PerRow   int
	}
	FrameAdded struct {
		ID     ID
		Window WindowID
	}
	FrameRemoved struct {
		ID     ID
		Window WindowID
	}
)
