package wm

import (
	"errors"
	"testing"

	"github.com/ItsNotGoodName/x-stackwm/internal/bus"
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/stretchr/testify/require"
)

type restackCall struct {
	windows []WindowID
	sibling WindowID
}

type fakeDisplay struct {
	lastFrame WindowID
	createErr error

	created    []WindowID
	destroyed  []WindowID
	mapped     map[WindowID]bool
	geometry   map[WindowID]geom.Rect
	configured map[WindowID]geom.Rect
	configures int
	restacks   []restackCall

	serverGrabs   int
	serverUngrabs int
	pointerGrab   bool
	grabFails     bool

	focus   WindowID
	pointer struct {
		x, y int
		ok   bool
	}
	warps [][2]int

	clientList []WindowID
	stacking   []WindowID
	stackings  int
	active     WindowID
	desktop    int
	names      []string
	states     map[WindowID]State
	desktops   map[WindowID]int
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		lastFrame:  1000,
		mapped:     make(map[WindowID]bool),
		geometry:   make(map[WindowID]geom.Rect),
		configured: make(map[WindowID]geom.Rect),
		states:     make(map[WindowID]State),
		desktops:   make(map[WindowID]int),
	}
}

func (f *fakeDisplay) CreateFrame(r geom.Rect) (WindowID, error) {
	if f.createErr != nil {
		return None, f.createErr
	}
	f.lastFrame++
	f.created = append(f.created, f.lastFrame)
	f.geometry[f.lastFrame] = r
	return f.lastFrame, nil
}

func (f *fakeDisplay) DestroyFrame(w WindowID) { f.destroyed = append(f.destroyed, w) }
func (f *fakeDisplay) Reparent(client, frame WindowID, x, y int) {}
func (f *fakeDisplay) MoveResize(w WindowID, r geom.Rect) { f.geometry[w] = r }
func (f *fakeDisplay) Map(w WindowID) { f.mapped[w] = true }
func (f *fakeDisplay) Unmap(w WindowID) { f.mapped[w] = false }
func (f *fakeDisplay) GrabServer() { f.serverGrabs++ }
func (f *fakeDisplay) UngrabServer() { f.serverUngrabs++ }
func (f *fakeDisplay) UngrabPointer() { f.pointerGrab = false }
func (f *fakeDisplay) Focus(w WindowID) { f.focus = w }
func (f *fakeDisplay) WarpPointer(x, y int) { f.warps = append(f.warps, [2]int{x, y}) }
func (f *fakeDisplay) PublishClientList(c []WindowID) { f.clientList = c }
func (f *fakeDisplay) PublishActive(client WindowID) { f.active = client }
func (f *fakeDisplay) PublishFrameExtents(WindowID, int, int, int, int) {}

func (f *fakeDisplay) ConfigureClient(client WindowID, rel, abs geom.Rect) {
	f.configures++
	f.configured[client] = abs
}

func (f *fakeDisplay) Restack(windows []WindowID, sibling WindowID) {
	f.restacks = append(f.restacks, restackCall{windows: windows, sibling: sibling})
}

func (f *fakeDisplay) GrabPointer(cursor Cursor) bool {
	if f.grabFails {
		return false
	}
	f.pointerGrab = true
	return true
}

func (f *fakeDisplay) QueryPointer() (int, int, bool) {
	return f.pointer.x, f.pointer.y, f.pointer.ok
}

func (f *fakeDisplay) PublishStacking(clients []WindowID) {
	f.stackings++
	f.stacking = clients
}

func (f *fakeDisplay) PublishDesktops(active int, names []string) {
	f.desktop, f.names = active, names
}

func (f *fakeDisplay) PublishClientDesktop(client WindowID, workspace int, sticky bool) {
	f.desktops[client] = workspace
}

func (f *fakeDisplay) PublishClientState(client WindowID, state State) {
	f.states[client] = state
}

type fakeSource struct {
	window       WindowID
	geometry     geom.Rect
	hints        SizeHints
	transientFor WindowID
	typ          WindowType
	state        State
	workspace    int
	sticky       bool
	hasWorkspace bool
	strut        geom.Strut
	err          error
}

func (s fakeSource) Window() WindowID { return s.window }
func (s fakeSource) Geometry() (geom.Rect, error) { return s.geometry, s.err }
func (s fakeSource) SizeHints() (SizeHints, error) { return s.hints, nil }
func (s fakeSource) TransientFor() (WindowID, error) { return s.transientFor, nil }
func (s fakeSource) WindowType() (WindowType, error) { return s.typ, nil }
func (s fakeSource) State() (State, error) { return s.state, nil }
func (s fakeSource) Strut() (geom.Strut, error) { return s.strut, nil }
func (s fakeSource) Workspace() (int, bool, bool, error) {
	return s.workspace, s.sticky, s.hasWorkspace, nil
}

var errGone = errors.New("BadWindow")

var testScreen = geom.R(0, 0, 1000, 800)

// plainPolicy has no decorations and no snapping so frame and client
// geometry are the same.
func plainPolicy() Policy {
	p := DefaultPolicy()
	p.BorderWidth = 0
	p.TitleHeight = 0
	p.EdgeAttract, p.EdgeResist = 0, 0
	p.FrameAttract, p.FrameResist = 0, 0
	return p
}

func newTestDesktop(t *testing.T, p Policy) (*Desktop, *fakeDisplay) {
	t.Helper()
	display := newFakeDisplay()
	return NewDesktop(display, nil, bus.New(), p, []geom.Rect{testScreen}), display
}

// at is a source for a normal window the user placed at r.
func at(w WindowID, r geom.Rect) fakeSource {
	return fakeSource{
		window:   w,
		geometry: r,
		hints:    SizeHints{Flags: HintUSPosition},
	}
}

func manage(t *testing.T, d *Desktop, src fakeSource) *Frame {
	t.Helper()
	c, err := d.Manage(src)
	require.NoError(t, err)
	require.NotNil(t, c.Frame())
	return c.Frame()
}

func windows(objects []*Object) []WindowID {
	var out []WindowID
	for _, o := range objects {
		out = append(out, o.Window())
	}
	return out
}

func requireLayerMonotonic(t *testing.T, d *Desktop) {
	t.Helper()
	order := d.Stacking().Order()
	for i := 1; i < len(order); i++ {
		require.LessOrEqual(t, order[i-1].Layer(), order[i].Layer(), "layer order broken at %d", i)
	}
}

func requireOneFocused(t *testing.T, d *Desktop) {
	t.Helper()
	count := 0
	if d.Root().IsFocused() {
		count++
	}
	for _, o := range d.objects {
		if o.IsFocused() {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func requireContentSynced(t *testing.T, f *Frame) {
	t.Helper()
	require.NotNil(t, f.Active())
	require.Equal(t, f.ContentArea(), f.Active().Geometry())
}
