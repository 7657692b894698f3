package wm

import (
	"testing"

	"github.com/ItsNotGoodName/x-stackwm/internal/bus"
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageWindowGone(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	src := at(1, geom.R(10, 10, 100, 100))
	src.err = errGone

	c, err := d.Manage(src)
	assert.Nil(t, c)
	require.ErrorIs(t, err, ErrWindowGone)
	require.ErrorIs(t, err, errGone)
	assert.Empty(t, display.created)
	assert.Zero(t, d.Stacking().Len())
	assert.Nil(t, d.Client(1))
	assert.Empty(t, d.Frames())
}

func TestManageCreateFrameFails(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	display.createErr = errGone

	_, err := d.Manage(at(1, geom.R(10, 10, 100, 100)))
	require.ErrorIs(t, err, errGone)
	assert.Zero(t, d.Stacking().Len())
	assert.Nil(t, d.Client(1))
	assert.Empty(t, d.clients)
	assert.Empty(t, display.clientList)
}

func TestManageTwice(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	manage(t, d, at(1, geom.R(10, 10, 100, 100)))

	_, err := d.Manage(at(1, geom.R(10, 10, 100, 100)))
	require.ErrorIs(t, err, ErrAlreadyManaged)
	assert.Len(t, d.Frames(), 1)
}

func TestManagePublishes(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	var added []FrameAdded
	bus.Subscribe(d.bus, "test", func(e FrameAdded) error {
		added = append(added, e)
		return nil
	})

	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	assert.Equal(t, []FrameAdded{{ID: f.ID(), Window: f.Window()}}, added)
	assert.Equal(t, []WindowID{1}, display.clientList)
	assert.Equal(t, []WindowID{1}, display.stacking)
	assert.True(t, display.mapped[f.Window()])
	assert.True(t, display.mapped[1])
	assert.Equal(t, WindowID(1), display.active)
	assert.Equal(t, 0, display.desktops[1])
	requireContentSynced(t, f)
}

func TestManagePlacement(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())

	// No position: centered on the head.
	owner := manage(t, d, fakeSource{window: 1, geometry: geom.R(0, 0, 200, 100)})
	assert.Equal(t, geom.R(400, 350, 200, 100), owner.Geometry())

	// Transients are centered on their owner.
	dialog := manage(t, d, fakeSource{window: 2, geometry: geom.R(0, 0, 100, 50), transientFor: 1})
	assert.Equal(t, geom.R(450, 375, 100, 50), dialog.Geometry())

	// The head under the pointer wins.
	d.SetHeads([]geom.Rect{testScreen, geom.R(1000, 0, 1000, 800)})
	display.pointer.x, display.pointer.y, display.pointer.ok = 1500, 100, true
	other := manage(t, d, fakeSource{window: 3, geometry: geom.R(0, 0, 200, 100)})
	assert.Equal(t, geom.R(1400, 350, 200, 100), other.Geometry())
}

func TestManageGravity(t *testing.T) {
	tests := []struct {
		name    string
		gravity Gravity
		want    geom.Rect
	}{
		{"north west", GravityNorthWest, geom.R(100, 100, 302, 222)},
		{"south east", GravitySouthEast, geom.R(98, 78, 302, 222)},
		{"center", GravityCenter, geom.R(99, 89, 302, 222)},
		{"static", GravityStatic, geom.R(99, 79, 302, 222)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDesktop(t, DefaultPolicy())
			src := at(1, geom.R(100, 100, 300, 200))
			src.hints.Flags |= HintPWinGravity
			src.hints.Gravity = tt.gravity

			f := manage(t, d, src)
			assert.Equal(t, tt.want, f.Geometry())
		})
	}
}

func TestManageRequestedState(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())

	src := at(1, geom.R(10, 10, 100, 100))
	src.workspace, src.hasWorkspace = 2, true
	f := manage(t, d, src)
	assert.Equal(t, 2, f.Workspace())
	assert.False(t, f.IsMapped())
	assert.Equal(t, d.Root(), d.Focused())

	src = at(2, geom.R(10, 10, 100, 100))
	src.state = StateFullscreen | StateAbove
	f = manage(t, d, src)
	assert.True(t, f.IsFullscreen())
	assert.Equal(t, LayerOnTop, f.Layer())
	assert.Equal(t, StateFullscreen|StateAbove, display.states[2])

	src = at(3, geom.R(10, 10, 100, 100))
	src.state = StateHidden
	f = manage(t, d, src)
	assert.True(t, f.IsIconified())
	assert.False(t, f.IsMapped())
}

func TestUnmanage(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	var removed []FrameRemoved
	bus.Subscribe(d.bus, "test", func(e FrameRemoved) error {
		removed = append(removed, e)
		return nil
	})
	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))

	destroyed := false
	d.Watch(f.ID(), func() { destroyed = true })
	cancelled := false
	cancel := d.Watch(f.ID(), func() { cancelled = true })
	cancel()

	require.True(t, d.Unmanage(1))
	assert.True(t, destroyed)
	assert.False(t, cancelled)
	assert.Equal(t, []WindowID{f.Window()}, display.destroyed)
	assert.Equal(t, []FrameRemoved{{ID: f.ID(), Window: f.Window()}}, removed)
	assert.Nil(t, d.Lookup(f.ID()))
	assert.Empty(t, d.Frames())
	assert.Empty(t, display.clientList)
	assert.Equal(t, d.Root(), d.Focused())
	requireOneFocused(t, d)

	assert.False(t, d.Unmanage(1))
	assert.False(t, f.SetMaximized(ActionSet, true, true, false))
	assert.False(t, f.FixGeometry())
}

func TestUnmanageTab(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	require.True(t, f.Tag())
	assert.True(t, f.IsTagged())
	manage(t, d, at(2, geom.R(0, 0, 10, 10)))

	require.True(t, d.Unmanage(2))
	assert.Empty(t, display.destroyed)
	assert.Equal(t, WindowID(1), f.Active().Window())
	assert.True(t, display.mapped[1])
	assert.Equal(t, f.Object, d.Focused())
	assert.Equal(t, WindowID(1), display.focus)
	requireContentSynced(t, f)

	require.True(t, d.Unmanage(1))
	assert.Nil(t, d.Tagged())
}

func TestUnmanageForgetsTransients(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	owner := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	dialog := manage(t, d, fakeSource{window: 2, geometry: geom.R(20, 20, 50, 50), transientFor: 1})
	ownerID, dialogID := owner.Active().ID(), dialog.Active().ID()
	require.True(t, d.Transients().IsTransientOf(dialogID, ownerID))

	require.True(t, d.Unmanage(1))
	_, ok := d.Transients().OwnerOf(dialogID)
	assert.False(t, ok)
	assert.Empty(t, d.Transients().Transients(ownerID))
}

func TestTransientOwnerManagedLater(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	dialog := manage(t, d, fakeSource{window: 2, geometry: geom.R(20, 20, 50, 50), transientFor: 1})
	owner := manage(t, d, at(1, geom.R(10, 10, 100, 100)))

	assert.True(t, d.Transients().IsTransientOf(dialog.Active().ID(), owner.Active().ID()))
}

func TestTransientOwnerManagedLaterStacking(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	dialog := manage(t, d, fakeSource{window: 2, geometry: geom.R(20, 20, 50, 50), transientFor: 1})
	other := manage(t, d, at(3, geom.R(500, 500, 100, 100)))
	owner := manage(t, d, at(1, geom.R(10, 10, 100, 100)))

	assert.Equal(t, []*Object{other.Object, owner.Object, dialog.Object}, d.Stacking().Order())

	require.True(t, d.Stacking().Raise(other.Object))
	require.True(t, d.Stacking().Raise(owner.Object))
	assert.Equal(t, []*Object{other.Object, owner.Object, dialog.Object}, d.Stacking().Order())
}

func TestStrut(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	manage(t, d, fakeSource{window: 1, geometry: geom.R(0, 770, 1000, 30), typ: TypeDock, strut: geom.Strut{Bottom: 30}})
	assert.Equal(t, geom.R(0, 0, 1000, 770), d.Heads()[0].Usable)

	require.True(t, d.Unmanage(1))
	assert.Equal(t, testScreen, d.Heads()[0].Usable)
}

func TestDetachAttach(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	require.True(t, f.Tag())
	c2, err := d.Manage(at(2, geom.R(0, 0, 10, 10)))
	require.NoError(t, err)
	require.True(t, f.Tag())
	assert.Nil(t, d.Tagged())

	g, err := d.DetachClient(c2)
	require.NoError(t, err)
	require.NotEqual(t, f, g)
	assert.Len(t, f.Clients(), 1)
	assert.Equal(t, g, c2.Frame())
	assert.True(t, g.IsMapped())
	requireContentSynced(t, g)
	requireContentSynced(t, f)

	require.True(t, d.AttachClient(c2, f))
	assert.Len(t, f.Clients(), 2)
	assert.False(t, d.registered(g.Object))
	assert.Len(t, d.Frames(), 1)
}

func TestMoveResize(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 200, 200)))

	m := d.BeginMove(f, 150, 150)
	require.NotNil(t, m)
	assert.True(t, display.pointerGrab)
	require.True(t, m.Motion(160, 170))
	assert.Equal(t, geom.R(110, 120, 200, 200), f.Geometry())
	require.True(t, m.End())
	assert.False(t, display.pointerGrab)

	m = d.BeginResize(f, 300, 300, EdgeRight|EdgeBottom)
	require.NotNil(t, m)
	require.True(t, m.Motion(350, 320))
	assert.Equal(t, geom.R(110, 120, 250, 220), f.Geometry())
	requireContentSynced(t, f)
	require.True(t, m.Cancel())
	assert.Equal(t, geom.R(110, 120, 200, 200), f.Geometry())
	assert.False(t, display.pointerGrab)
}

func TestResizeKeepsOppositeEdge(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	src := at(1, geom.R(100, 100, 120, 152))
	src.hints = SizeHints{
		Flags: HintUSPosition | HintPMinSize | HintPResizeInc,
		MinW:  40,
		MinH:  40,
		IncW:  8,
		IncH:  16,
	}
	f := manage(t, d, src)

	m := d.BeginResize(f, 100, 150, EdgeLeft)
	require.NotNil(t, m)
	require.True(t, m.Motion(87, 150))
	assert.Equal(t, geom.R(92, 100, 128, 152), f.Geometry())
	assert.Equal(t, 220, f.Geometry().Right())
	require.True(t, m.End())
}

func TestResizeSnapsDraggedEdges(t *testing.T) {
	p := plainPolicy()
	p.EdgeAttract, p.EdgeResist = 10, 10
	p.FrameAttract, p.FrameResist = 5, 5
	d, _ := newTestDesktop(t, p)
	manage(t, d, at(1, geom.R(400, 400, 100, 100)))
	f := manage(t, d, at(2, geom.R(300, 100, 200, 200)))

	m := d.BeginResize(f, 500, 300, EdgeRight)
	require.NotNil(t, m)
	require.True(t, m.Motion(995, 300))
	assert.Equal(t, geom.R(300, 100, 700, 200), f.Geometry())
	require.True(t, m.Cancel())

	m = d.BeginResize(f, 500, 300, EdgeBottom)
	require.NotNil(t, m)
	require.True(t, m.Motion(500, 397))
	assert.Equal(t, geom.R(300, 100, 200, 300), f.Geometry())
	requireContentSynced(t, f)
	require.True(t, m.End())
}

func TestMoveResizeTargetDestroyed(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 200, 200)))

	m := d.BeginMove(f, 150, 150)
	require.NotNil(t, m)
	require.True(t, d.Unmanage(1))
	assert.Nil(t, m.Frame())

	assert.False(t, m.Motion(200, 200))
	assert.False(t, display.pointerGrab)
	assert.False(t, m.End())
	assert.False(t, m.Cancel())
}

func TestMoveResizeRefused(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 200, 200)))

	f.Active().SetDeny(DenyMove)
	assert.Nil(t, d.BeginMove(f, 0, 0))
	assert.NotNil(t, d.BeginResize(f, 0, 0, 0).Frame())

	f.Active().SetDeny(0)
	display.pointerGrab = false
	display.grabFails = true
	assert.Nil(t, d.BeginMove(f, 0, 0))

	display.grabFails = false
	require.True(t, f.SetFullscreen(ActionSet))
	assert.Nil(t, d.BeginMove(f, 0, 0))
}

func TestConfigureRequest(t *testing.T) {
	d, display := newTestDesktop(t, DefaultPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))
	b := manage(t, d, at(2, geom.R(400, 400, 100, 100)))

	configures := display.configures
	require.True(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureX | ConfigureY, X: 200, Y: 200}))
	assert.Equal(t, geom.R(200, 200, 302, 222), f.Geometry())
	assert.Equal(t, geom.R(201, 221, 300, 200), f.Active().Geometry())
	assert.Greater(t, display.configures, configures)

	require.True(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureWidth | ConfigureHeight, W: 400, H: 300}))
	assert.Equal(t, geom.R(200, 200, 402, 322), f.Geometry())

	// Denied moves still get a reply.
	f.Active().SetDeny(DenyMove)
	configures = display.configures
	assert.False(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureX, X: 0}))
	assert.Equal(t, geom.R(200, 200, 402, 322), f.Geometry())
	assert.Greater(t, display.configures, configures)

	require.True(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureStackMode, Detail: StackAbove}))
	assert.Equal(t, []*Object{b.Object, f.Object}, d.Stacking().Order())

	require.True(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureStackMode | ConfigureSibling, Sibling: 2, Detail: StackBelow}))
	assert.Equal(t, []*Object{f.Object, b.Object}, d.Stacking().Order())

	require.True(t, f.SetFullscreen(ActionSet))
	f.Active().SetDeny(0)
	assert.False(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureX, X: 5}))
	assert.Equal(t, testScreen, f.Geometry())

	assert.False(t, d.HandleConfigureRequest(ConfigureRequest{Window: 99, Mask: ConfigureX}))
}

func TestConfigureRequestInactiveTab(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	require.True(t, f.Tag())
	manage(t, d, at(2, geom.R(0, 0, 10, 10)))
	require.Equal(t, WindowID(2), f.Active().Window())

	delete(display.configured, 1)
	assert.False(t, d.HandleConfigureRequest(ConfigureRequest{Window: 1, Mask: ConfigureWidth, W: 500}))
	assert.Equal(t, geom.R(10, 10, 100, 100), f.Geometry())
	assert.Equal(t, f.ContentArea(), display.configured[1])
}

func TestStateRequest(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 200, 200)))

	require.True(t, d.HandleStateRequest(1, ActionSet, StateMaximizedHorz|StateMaximizedVert))
	assert.Equal(t, testScreen, f.Geometry())
	assert.Equal(t, StateMaximizedHorz|StateMaximizedVert, display.states[1])

	require.True(t, d.HandleStateRequest(1, ActionToggle, StateMaximizedHorz|StateMaximizedVert))
	assert.Equal(t, geom.R(100, 100, 200, 200), f.Geometry())

	require.True(t, d.HandleStateRequest(1, ActionSet, StateAbove))
	assert.Equal(t, LayerOnTop, f.Layer())
	require.True(t, d.HandleStateRequest(1, ActionSet, StateBelow))
	assert.Equal(t, LayerBelow, f.Layer())
	require.True(t, d.HandleStateRequest(1, ActionUnset, StateBelow))
	assert.Equal(t, LayerNormal, f.Layer())

	f.Active().SetDeny(DenyFullscreen)
	assert.False(t, d.HandleStateRequest(1, ActionSet, StateFullscreen))
	assert.False(t, f.IsFullscreen())

	require.True(t, d.HandleStateRequest(1, ActionSet, StateHidden))
	assert.True(t, f.IsIconified())
	assert.True(t, display.states[1].Has(StateHidden))
	require.True(t, d.HandleStateRequest(1, ActionUnset, StateHidden))
	assert.True(t, f.IsMapped())

	// Focused windows never demand attention.
	require.True(t, d.Focus(f.Object))
	assert.False(t, d.HandleStateRequest(1, ActionSet, StateDemandsAttention))

	assert.False(t, d.HandleStateRequest(99, ActionSet, StateAbove))
}

func TestActivate(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(100, 100, 200, 200)))
	b := manage(t, d, at(2, geom.R(100, 100, 200, 200)))
	require.True(t, d.Workspaces().SendTo(a.Object, 1))

	require.True(t, d.HandleActivate(1))
	assert.Equal(t, 1, d.Workspaces().Active())
	assert.Equal(t, a.Object, d.Focused())

	b.Active().SetDeny(DenyActivate)
	assert.False(t, d.HandleActivate(2))
	assert.True(t, b.Active().DemandsAttention())
	assert.True(t, display.states[2].Has(StateDemandsAttention))
	assert.Equal(t, 1, d.Workspaces().Active())
}
