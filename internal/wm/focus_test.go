package wm

import (
	"testing"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseFocusesMRU(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(20, 20, 100, 100)))
	c := manage(t, d, at(3, geom.R(30, 30, 100, 100)))
	require.True(t, d.Focus(b.Object))
	require.True(t, d.Focus(a.Object))

	require.True(t, d.Unmanage(1))
	assert.Equal(t, b.Object, d.Focused())
	assert.Equal(t, WindowID(2), display.focus)
	assert.Equal(t, WindowID(2), display.active)
	assert.Equal(t, []*Object{c.Object, b.Object}, d.Stacking().Order())
	requireOneFocused(t, d)
}

func TestCloseFocusesStacking(t *testing.T) {
	p := plainPolicy()
	p.FocusStacking = true
	d, _ := newTestDesktop(t, p)
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(20, 20, 100, 100)))
	c := manage(t, d, at(3, geom.R(30, 30, 100, 100)))
	require.True(t, d.Focus(b.Object))
	require.True(t, d.Focus(a.Object))

	require.True(t, d.Unmanage(1))
	assert.Equal(t, c.Object, d.Focused())
	requireOneFocused(t, d)
}

func TestFocusCandidateTypes(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	manage(t, d, fakeSource{window: 1, geometry: geom.R(0, 0, 1000, 20), typ: TypeDock})
	manage(t, d, fakeSource{window: 2, geometry: geom.R(10, 10, 100, 100), typ: TypeSplash})
	manage(t, d, at(3, geom.R(30, 30, 100, 100)))

	require.True(t, d.Unmanage(3))
	assert.Equal(t, d.Root(), d.Focused())
	assert.Equal(t, None, display.focus)
	assert.Equal(t, None, display.active)
	requireOneFocused(t, d)

	assert.Nil(t, d.FocusResolver().FindFocusCandidate(false))
	assert.Nil(t, d.FocusResolver().FindFocusCandidate(true))
}

func TestFindWOAndFocusHint(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(20, 20, 100, 100)))
	r := d.FocusResolver()

	// A valid hint is focused without raising.
	assert.Equal(t, a.Object, r.FindWOAndFocus(a.Object))
	assert.Equal(t, a.Object, d.Focused())
	assert.Equal(t, []*Object{a.Object, b.Object}, d.Stacking().Order())

	// An unmapped hint falls back.
	require.True(t, d.Workspaces().SendTo(b.Object, 1))
	assert.Equal(t, a.Object, r.FindWOAndFocus(b.Object))
	requireOneFocused(t, d)
}

func TestFocusRaiseIfCovered(t *testing.T) {
	p := plainPolicy()
	p.FocusRaise = FocusRaiseIfCovered
	d, _ := newTestDesktop(t, p)
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(60, 60, 100, 100)))
	s := d.Stacking()

	closeFocused := func(w WindowID) {
		manage(t, d, at(w, geom.R(600, 600, 100, 100)))
		require.True(t, d.Focus(a.Object))
		require.True(t, d.Focus(d.Client(w).Frame().Object))
		require.True(t, d.Unmanage(w))
	}

	closeFocused(3)
	require.Equal(t, a.Object, d.Focused())
	assert.Equal(t, []*Object{a.Object, b.Object}, s.Order())

	require.True(t, b.Move(10, 10))
	closeFocused(4)
	require.Equal(t, a.Object, d.Focused())
	assert.Equal(t, []*Object{b.Object, a.Object}, s.Order())
}

func TestFocusRaiseNever(t *testing.T) {
	p := plainPolicy()
	p.FocusRaise = FocusRaiseNever
	d, _ := newTestDesktop(t, p)
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(10, 10, 100, 100)))
	manage(t, d, at(3, geom.R(600, 600, 100, 100)))
	require.True(t, d.Focus(a.Object))
	require.True(t, d.Focus(d.Client(3).Frame().Object))

	require.True(t, d.Unmanage(3))
	assert.Equal(t, a.Object, d.Focused())
	assert.Equal(t, []*Object{a.Object, b.Object}, d.Stacking().Order())
}

func TestFindDirectional(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(300, 10, 100, 100)))
	c := manage(t, d, at(3, geom.R(10, 300, 100, 100)))
	e := manage(t, d, at(4, geom.R(300, 300, 100, 100)))
	r := d.FocusResolver()

	assert.Equal(t, b, r.FindDirectional(a.Object, DirRight))
	assert.Equal(t, c, r.FindDirectional(a.Object, DirDown))
	assert.Nil(t, r.FindDirectional(a.Object, DirLeft))
	assert.Nil(t, r.FindDirectional(a.Object, DirUp))
	assert.Equal(t, c, r.FindDirectional(e.Object, DirLeft))
	assert.Equal(t, b, r.FindDirectional(e.Object, DirUp))

	require.True(t, d.HandleStateRequest(2, ActionSet, StateSkipTaskbar))
	assert.Equal(t, e, r.FindDirectional(a.Object, DirRight))

	require.True(t, d.Focus(a.Object))
	require.True(t, r.FocusDirectional(DirDown, false))
	assert.Equal(t, c.Object, d.Focused())
	requireOneFocused(t, d)
}

func TestFocusRejectsInvalid(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	dock := manage(t, d, fakeSource{window: 2, geometry: geom.R(0, 0, 1000, 20), typ: TypeDock})

	assert.False(t, d.Focus(dock.Object))
	require.True(t, a.Iconify())
	assert.False(t, d.Focus(a.Object))
	assert.Equal(t, d.Root(), d.Focused())
	requireOneFocused(t, d)
}

func TestNextFrame(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	b := manage(t, d, at(2, geom.R(20, 20, 100, 100)))
	c := manage(t, d, at(3, geom.R(30, 30, 100, 100)))

	assert.Equal(t, a, d.NextFrame(true, false))
	assert.Equal(t, a.Object, d.Focused())
	assert.Equal(t, a.Object, d.Stacking().Order()[2])

	assert.Equal(t, c, d.NextFrame(false, false))
	assert.Equal(t, b, d.NextFrame(false, false))

	// MRU is b, c, a: the next one is the previously focused frame.
	assert.Equal(t, c, d.NextFrame(true, true))
	requireOneFocused(t, d)
}

func TestMenuFocus(t *testing.T) {
	d, display := newTestDesktop(t, plainPolicy())
	a := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	menu := d.AddMenu(50, geom.R(5, 5, 50, 100))

	assert.Equal(t, LayerMenu, menu.Layer())
	assert.True(t, menu.IsSticky())
	require.True(t, d.Focus(menu))
	assert.Equal(t, WindowID(50), display.focus)

	require.True(t, d.RemoveMenu(menu))
	assert.Equal(t, a.Object, d.Focused())
	assert.False(t, d.RemoveMenu(menu))
}
