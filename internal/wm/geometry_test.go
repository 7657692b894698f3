package wm

import (
	"testing"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeHintsIncrement(t *testing.T) {
	h := SizeHints{
		Flags: HintPMinSize | HintPResizeInc,
		MinW:  40,
		MinH:  40,
		IncW:  8,
		IncH:  16,
	}

	w, hh := h.Constrain(123, 167)
	assert.Equal(t, 120, w)
	assert.Equal(t, 152, hh)

	// Never below the minimum.
	w, hh = h.Constrain(10, 10)
	assert.Equal(t, 40, w)
	assert.Equal(t, 40, hh)
}

func TestSizeHintsConstrain(t *testing.T) {
	tests := []struct {
		name  string
		hints SizeHints
		w, h  int
		wantW int
		wantH int
	}{
		{"none", SizeHints{}, 123, 45, 123, 45},
		{"zero", SizeHints{}, 0, -5, 1, 1},
		{"max", SizeHints{Flags: HintPMaxSize, MaxW: 100, MaxH: 50}, 123, 45, 100, 45},
		{"base", SizeHints{Flags: HintPBaseSize | HintPResizeInc, BaseW: 4, BaseH: 4, IncW: 10, IncH: 10}, 37, 59, 34, 54},
		{"aspect", SizeHints{Flags: HintPAspect, MinAspect: Aspect{1, 1}, MaxAspect: Aspect{1, 1}}, 200, 100, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.hints.Constrain(tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestMaximizeRoundTrip(t *testing.T) {
	d, _ := newTestDesktop(t, DefaultPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))
	start := f.Geometry()
	require.Equal(t, geom.R(100, 100, 302, 222), start)

	require.True(t, f.SetMaximized(ActionSet, true, true, false))
	assert.Equal(t, testScreen, f.Geometry())
	assert.True(t, f.IsMaximizedHorz())
	assert.True(t, f.IsMaximizedVert())
	requireContentSynced(t, f)

	require.True(t, f.SetMaximized(ActionUnset, true, true, false))
	assert.Equal(t, start, f.Geometry())
	requireContentSynced(t, f)

	// One axis at a time.
	require.True(t, f.SetMaximized(ActionSet, true, false, false))
	assert.Equal(t, geom.R(0, 100, 1000, 222), f.Geometry())
	require.True(t, f.SetMaximized(ActionToggle, true, false, false))
	assert.Equal(t, start, f.Geometry())
}

func TestMaximizeRespectsHints(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	src := at(1, geom.R(10, 10, 120, 152))
	src.hints = SizeHints{
		Flags: HintUSPosition | HintPMinSize | HintPResizeInc,
		MinW:  40,
		MinH:  40,
		IncW:  8,
		IncH:  16,
	}
	f := manage(t, d, src)

	require.True(t, f.SetMaximized(ActionSet, true, true, false))
	assert.Equal(t, geom.R(0, 0, 1000, 792), f.Geometry())

	f.Active().SetHints(SizeHints{Flags: HintPMaxSize, MaxW: 500, MaxH: 400})
	require.True(t, f.SetMaximized(ActionUnset, true, true, false))
	require.True(t, f.SetMaximized(ActionSet, true, true, false))
	assert.Equal(t, geom.R(0, 0, 500, 400), f.Geometry())
}

func TestMaximizeDenied(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))
	f.Active().SetDeny(DenyMaximizeHorz)

	assert.False(t, f.SetMaximized(ActionSet, true, false, false))
	assert.Equal(t, geom.R(10, 10, 100, 100), f.Geometry())

	require.True(t, f.SetMaximized(ActionSet, true, true, false))
	assert.False(t, f.IsMaximizedHorz())
	assert.True(t, f.IsMaximizedVert())
	assert.Equal(t, geom.R(10, 0, 100, 800), f.Geometry())
}

func TestMaximizeToggleSync(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(10, 10, 100, 100)))

	require.True(t, f.SetMaximized(ActionSet, false, true, false))
	require.True(t, f.SetMaximized(ActionToggle, true, true, false))
	assert.True(t, f.IsMaximizedHorz())
	assert.True(t, f.IsMaximizedVert())

	require.True(t, f.SetMaximized(ActionToggle, true, true, false))
	assert.False(t, f.IsMaximizedHorz())
	assert.False(t, f.IsMaximizedVert())
	assert.Equal(t, geom.R(10, 10, 100, 100), f.Geometry())
}

func TestMaximizeFill(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(10, 10, 200, 200)))
	manage(t, d, at(2, geom.R(500, 0, 200, 200)))
	manage(t, d, at(3, geom.R(0, 600, 200, 200)))

	require.True(t, f.SetMaximized(ActionSet, true, true, true))
	assert.Equal(t, geom.R(0, 0, 500, 600), f.Geometry())
	dir, ok := f.EdgeFilled()
	assert.True(t, ok)
	assert.Equal(t, DirNone, dir)
	assert.False(t, f.IsMaximizedHorz())
	assert.Equal(t, geom.Rect{}, f.OldGeometry())

	require.True(t, f.SetMaximized(ActionUnset, true, true, true))
	assert.Equal(t, geom.R(10, 10, 200, 200), f.Geometry())
	_, ok = f.EdgeFilled()
	assert.False(t, ok)
}

func TestFillEdge(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))

	require.True(t, f.FillEdge(DirLeft, 50))
	assert.Equal(t, geom.R(0, 0, 500, 800), f.Geometry())
	dir, ok := f.EdgeFilled()
	assert.True(t, ok)
	assert.Equal(t, DirLeft, dir)

	require.True(t, f.FillEdge(DirUp, 25))
	assert.Equal(t, geom.R(0, 0, 1000, 200), f.Geometry())

	// Opposite of up restores the geometry from before the first fill.
	require.True(t, f.FillEdge(DirDown, 50))
	assert.Equal(t, geom.R(100, 100, 300, 200), f.Geometry())
	_, ok = f.EdgeFilled()
	assert.False(t, ok)
	requireContentSynced(t, f)
}

func TestFullscreenRestore(t *testing.T) {
	p := DefaultPolicy()
	p.FullscreenAbove = true
	d, _ := newTestDesktop(t, p)
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))
	start := f.Geometry()

	require.True(t, f.SetFullscreen(ActionSet))
	assert.Equal(t, testScreen, f.Geometry())
	assert.Equal(t, testScreen, f.Active().Geometry())
	assert.Equal(t, Decor{}, f.Decor())
	assert.Equal(t, LayerAboveDock, f.Layer())
	assert.True(t, f.Active().State().Has(StateFullscreen))

	assert.False(t, f.SetFullscreen(ActionSet))

	require.True(t, f.SetFullscreen(ActionToggle))
	assert.Equal(t, start, f.Geometry())
	assert.Equal(t, Decor{Border: true, Titlebar: true}, f.Decor())
	assert.Equal(t, LayerNormal, f.Layer())
	requireContentSynced(t, f)
}

func TestFullscreenIgnoresStrut(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	manage(t, d, fakeSource{window: 9, geometry: geom.R(0, 0, 1000, 30), typ: TypeDock, strut: geom.Strut{Top: 30}})
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))

	require.True(t, f.SetMaximized(ActionSet, true, true, false))
	assert.Equal(t, geom.R(0, 30, 1000, 770), f.Geometry())

	require.True(t, f.SetFullscreen(ActionSet))
	assert.Equal(t, testScreen, f.Geometry())
	assert.True(t, f.IsFullscreen())
}

func TestShade(t *testing.T) {
	d, _ := newTestDesktop(t, DefaultPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))
	start := f.Geometry()

	require.True(t, f.SetShaded(ActionSet))
	assert.Equal(t, 22, f.Geometry().H)
	assert.True(t, f.IsShaded())
	requireContentSynced(t, f)

	require.True(t, f.SetShaded(ActionUnset))
	assert.Equal(t, start, f.Geometry())

	// A frame without decorations cannot be shaded.
	require.True(t, f.SetDecor(Decor{}))
	assert.False(t, f.SetShaded(ActionSet))
	assert.False(t, f.IsShaded())
}

func TestMaximizeUnshades(t *testing.T) {
	d, _ := newTestDesktop(t, DefaultPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))

	require.True(t, f.SetShaded(ActionSet))
	require.True(t, f.SetMaximized(ActionSet, true, true, false))
	assert.False(t, f.IsShaded())
	assert.Equal(t, testScreen, f.Geometry())
}

func TestFixGeometryIdempotent(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))

	require.True(t, f.Move(900, 700))
	assert.True(t, f.FixGeometry())
	assert.Equal(t, geom.R(700, 600, 300, 200), f.Geometry())
	assert.False(t, f.FixGeometry())
	assert.Equal(t, geom.R(700, 600, 300, 200), f.Geometry())
}

func TestSetHeadsRefits(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	f := manage(t, d, at(1, geom.R(700, 500, 300, 200)))

	d.SetHeads([]geom.Rect{geom.R(0, 0, 800, 600)})
	assert.Equal(t, geom.R(500, 400, 300, 200), f.Geometry())
}

func TestSetHeadsKeepsSizeHints(t *testing.T) {
	d, _ := newTestDesktop(t, plainPolicy())
	src := at(1, geom.R(0, 0, 300, 300))
	src.hints = SizeHints{Flags: HintUSPosition | HintPBaseSize | HintPResizeInc, IncW: 10, IncH: 10}
	f := manage(t, d, src)
	require.Equal(t, geom.R(0, 0, 300, 300), f.Geometry())

	d.SetHeads([]geom.Rect{geom.R(0, 0, 255, 255)})
	assert.Equal(t, geom.R(0, 0, 250, 250), f.Geometry())
	requireContentSynced(t, f)
	assert.False(t, f.FixGeometry())

	// A minimum size wider than the head wins, anchored at the top left.
	small := at(2, geom.R(0, 0, 200, 200))
	small.hints = SizeHints{Flags: HintUSPosition | HintPMinSize, MinW: 200, MinH: 200}
	g := manage(t, d, small)

	d.SetHeads([]geom.Rect{geom.R(0, 0, 150, 150)})
	assert.Equal(t, geom.R(0, 0, 200, 200), g.Geometry())
	assert.False(t, g.FixGeometry())
	assert.Equal(t, geom.R(0, 0, 150, 150), f.Geometry())
}

func TestCheckSnap(t *testing.T) {
	p := plainPolicy()
	p.EdgeAttract, p.EdgeResist = 10, 10
	p.FrameAttract, p.FrameResist = 5, 5
	d, _ := newTestDesktop(t, p)
	manage(t, d, at(1, geom.R(300, 300, 100, 100)))
	f := manage(t, d, at(2, geom.R(600, 100, 100, 100)))

	tests := []struct {
		name string
		in   geom.Rect
		want geom.Rect
	}{
		{"left edge", geom.R(5, 200, 100, 100), geom.R(0, 200, 100, 100)},
		{"left edge resist", geom.R(-8, 200, 100, 100), geom.R(0, 200, 100, 100)},
		{"right edge", geom.R(895, 200, 100, 100), geom.R(900, 200, 100, 100)},
		{"bottom edge", geom.R(600, 708, 100, 100), geom.R(600, 700, 100, 100)},
		{"free", geom.R(600, 100, 100, 100), geom.R(600, 100, 100, 100)},
		{"frame right side", geom.R(403, 320, 100, 100), geom.R(400, 320, 100, 100)},
		{"frame left side", geom.R(197, 320, 100, 100), geom.R(200, 320, 100, 100)},
		{"frame top side", geom.R(320, 197, 100, 100), geom.R(320, 200, 100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.CheckSnap(tt.in))
		})
	}
}

func TestActivateTabKeepsContent(t *testing.T) {
	d, display := newTestDesktop(t, DefaultPolicy())
	f := manage(t, d, at(1, geom.R(100, 100, 300, 200)))
	require.True(t, f.Tag())

	c2, err := d.Manage(at(2, geom.R(0, 0, 50, 50)))
	require.NoError(t, err)
	require.Equal(t, f, c2.Frame())
	assert.Len(t, f.Clients(), 2)
	assert.Equal(t, c2, f.Active())
	assert.True(t, display.mapped[2])
	assert.False(t, display.mapped[1])
	requireContentSynced(t, f)

	require.True(t, f.ActivateNext(true))
	assert.Equal(t, WindowID(1), f.Active().Window())
	assert.Equal(t, f.ContentArea(), display.configured[1])
	requireContentSynced(t, f)
}
