package wm

import (
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

func (f *Frame) denied(flag Deny) bool {
	return f.active != nil && (f.active.deny|f.d.policy.Deny).Has(flag)
}

func (f *Frame) head() geom.Head {
	return f.d.HeadFor(f.geometry)
}

// alive reports whether operations on f may run.
func (f *Frame) alive() bool {
	return f != nil && f.d.registered(f.Object) && f.active != nil
}

// constrain applies the active client's size hints to the frame rectangle
// g. keepX and keepY pin the left and top edges; otherwise the right and
// bottom edges stay put.
func (f *Frame) constrain(g geom.Rect, keepX, keepY bool) geom.Rect {
	if f.active == nil {
		return g
	}
	side, top := f.Insets()
	w, h := f.active.hints.Constrain(g.W-2*side, g.H-top-side)

	n := geom.Rect{X: g.X, Y: g.Y, W: w + 2*side, H: h + top + side}
	if !keepX {
		n.X = g.Right() - n.W
	}
	if !keepY {
		n.Y = g.Bottom() - n.H
	}
	return n
}

// SetGeometry moves and resizes the frame within the client's size hints.
func (f *Frame) SetGeometry(g geom.Rect, keepX, keepY bool) bool {
	if !f.alive() {
		return false
	}
	if f.shaded {
		g.H = f.geometry.H
		return f.apply(f.constrainWidth(g, keepX))
	}
	return f.apply(f.constrain(g, keepX, keepY))
}

func (f *Frame) constrainWidth(g geom.Rect, keepX bool) geom.Rect {
	full := g
	full.H = f.shadeHeight
	c := f.constrain(full, keepX, true)
	g.X, g.W = c.X, c.W
	return g
}

// Move places the frame at x, y without resizing it.
func (f *Frame) Move(x, y int) bool {
	if !f.alive() {
		return false
	}
	g := f.geometry
	g.X, g.Y = x, y
	return f.apply(g)
}

// SetMaximized maximizes or restores the frame along the requested axes.
// With fill the frame grows until it touches other frames instead of the
// head edge, and restores from its own saved geometry. Denied axes are
// treated as Unset.
func (f *Frame) SetMaximized(action Action, horz, vert, fill bool) bool {
	if !f.alive() || (!horz && !vert) {
		return false
	}
	reset := f.shaded || f.fullscreen
	f.setShaded(false)
	f.setFullscreen(false)

	curH, curV := f.maxHorz, f.maxVert
	if fill {
		filled := f.fill.active && f.fill.dir == DirNone
		curH, curV = filled, filled
	}
	if action == ActionToggle && horz && vert && curH != curV {
		action = ActionSet
	}

	wantH, wantV := curH, curV
	if horz {
		wantH = action.resolve(curH) && !f.denied(DenyMaximizeHorz)
	}
	if vert {
		wantV = action.resolve(curV) && !f.denied(DenyMaximizeVert)
	}
	if wantH == curH && wantV == curV {
		if reset {
			f.d.publishState(f.active)
		}
		return reset
	}

	if fill {
		return f.setFill(wantH || wantV, horz, vert)
	}

	g := f.geometry
	bounds := f.head().Usable
	setH, setV := wantH && !curH, wantV && !curV

	if setH {
		f.oldGeometry.X, f.oldGeometry.W = g.X, g.W
		g.X, g.W = bounds.X, bounds.W
	}
	if setV {
		f.oldGeometry.Y, f.oldGeometry.H = g.Y, g.H
		g.Y, g.H = bounds.Y, bounds.H
	}
	if setH || setV {
		g = f.constrain(g, true, true)
	}
	if !wantH && curH {
		g.X, g.W = f.oldGeometry.X, f.oldGeometry.W
	}
	if !wantV && curV {
		g.Y, g.H = f.oldGeometry.Y, f.oldGeometry.H
	}

	f.maxHorz, f.maxVert = wantH, wantV
	f.apply(g)
	if setH || setV {
		f.FixGeometry()
	}
	f.d.publishState(f.active)
	return true
}

func (f *Frame) setFill(on, horz, vert bool) bool {
	if !on {
		f.fill.active = false
		f.apply(f.fill.saved)
		f.d.publishState(f.active)
		return true
	}

	if !f.fill.active {
		f.fill.saved = f.geometry
	}
	bounds := f.fillBounds(horz, vert)
	g := f.geometry
	if horz {
		g.X, g.W = bounds.X, bounds.W
	}
	if vert {
		g.Y, g.H = bounds.Y, bounds.H
	}

	f.fill.active, f.fill.dir = true, DirNone
	f.apply(f.constrain(g, true, true))
	f.FixGeometry()
	f.d.publishState(f.active)
	return true
}

// fillBounds returns the largest rectangle around f, within the usable head
// area, that does not overlap any other visible frame along the requested
// axes.
func (f *Frame) fillBounds(horz, vert bool) geom.Rect {
	u := f.head().Usable
	g := f.geometry
	left, right, top, bottom := u.X, u.Right(), u.Y, u.Bottom()

	for _, o := range f.d.stacking.order {
		other, ok := o.Frame()
		if !ok || other == f || !o.IsMapped() {
			continue
		}
		og := o.geometry
		if horz && og.Y < g.Bottom() && og.Bottom() > g.Y {
			if og.Right() <= g.X {
				left = max(left, og.Right())
			}
			if og.X >= g.Right() {
				right = min(right, og.X)
			}
		}
		if vert && og.X < g.Right() && og.Right() > g.X {
			if og.Bottom() <= g.Y {
				top = max(top, og.Bottom())
			}
			if og.Y >= g.Bottom() {
				bottom = min(bottom, og.Y)
			}
		}
	}

	return geom.Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// FillEdge docks the frame to edge dir of the usable head area, taking
// percent of it. Filling toward the opposite edge restores the geometry the
// frame had before the first fill.
func (f *Frame) FillEdge(dir Dir, percent int) bool {
	if !f.alive() || dir == DirNone {
		return false
	}
	f.setShaded(false)
	f.setFullscreen(false)

	if f.fill.active && f.fill.dir != DirNone && f.fill.dir == dir.Opposite() {
		return f.setFill(false, false, false)
	}

	percent = min(max(percent, 1), 100)
	u := f.head().Usable
	w, h := u.W*percent/100, u.H*percent/100

	var g geom.Rect
	switch dir {
	case DirLeft:
		g = geom.Rect{X: u.X, Y: u.Y, W: w, H: u.H}
	case DirRight:
		g = geom.Rect{X: u.Right() - w, Y: u.Y, W: w, H: u.H}
	case DirUp:
		g = geom.Rect{X: u.X, Y: u.Y, W: u.W, H: h}
	case DirDown:
		g = geom.Rect{X: u.X, Y: u.Bottom() - h, W: u.W, H: h}
	}

	if !f.fill.active {
		f.fill.saved = f.geometry
	}
	f.fill.active, f.fill.dir = true, dir
	changed := f.apply(f.constrain(g, dir != DirRight, dir != DirDown))
	f.d.publishState(f.active)
	return changed
}

// SetFullscreen covers the whole head, ignoring struts, without
// decorations. Leaving fullscreen restores geometry, decorations and layer
// exactly.
func (f *Frame) SetFullscreen(action Action) bool {
	if !f.alive() {
		return false
	}
	if f.denied(DenyFullscreen) {
		action = ActionUnset
	}
	want := action.resolve(f.fullscreen)
	if want == f.fullscreen {
		return false
	}
	if want {
		f.setShaded(false)
	}
	f.setFullscreen(want)
	f.d.publishState(f.active)
	return true
}

func (f *Frame) setFullscreen(on bool) {
	if on == f.fullscreen {
		return
	}

	if on {
		f.fsSaved.geometry = f.geometry
		f.fsSaved.decor = f.decor
		f.fsSaved.layer = f.layer
		f.fullscreen = true
		f.decor = Decor{}
		if f.d.policy.FullscreenAbove {
			f.layer = LayerAboveDock
		}
		f.apply(f.head().Rect)
		f.publishExtents()
		f.d.decorate(f)
		f.d.stacking.Raise(f.Object)
		return
	}

	layer := f.layer
	f.fullscreen = false
	f.decor = f.fsSaved.decor
	f.layer = f.fsSaved.layer
	f.demoted = false
	f.apply(f.fsSaved.geometry)
	f.publishExtents()
	f.d.decorate(f)
	if layer != f.layer {
		f.d.stacking.Raise(f.Object)
	}
}

// SetShaded collapses the frame to its titlebar. A frame without border and
// titlebar cannot be shaded.
func (f *Frame) SetShaded(action Action) bool {
	if !f.alive() {
		return false
	}
	if f.denied(DenyShade) {
		action = ActionUnset
	}
	want := action.resolve(f.shaded)
	if want == f.shaded {
		return false
	}
	if want && (f.fullscreen || !f.decor.Border && !f.decor.Titlebar) {
		return false
	}
	f.setShaded(want)
	f.d.publishState(f.active)
	return true
}

func (f *Frame) setShaded(on bool) {
	if on == f.shaded {
		return
	}
	g := f.geometry
	if on {
		f.shadeHeight = g.H
		f.shaded = true
		g.H = f.collapsedHeight()
	} else {
		f.shaded = false
		g.H = f.shadeHeight
	}
	f.apply(g)
}

// FixGeometry pulls the frame inside the usable area of its head, or the
// full head while fullscreen. A frame that has to shrink keeps to the
// client's size hints. It reports whether the frame moved.
func (f *Frame) FixGeometry() bool {
	if f == nil || !f.d.registered(f.Object) {
		return false
	}
	head := f.head()
	b := head.Usable
	if f.fullscreen {
		b = head.Rect
	}

	g := f.geometry
	if g.W > b.W || g.H > b.H {
		g.W, g.H = min(g.W, b.W), min(g.H, b.H)
		switch {
		case f.fullscreen:
		case f.shaded:
			g = f.constrainWidth(g, true)
		default:
			g = f.constrain(g, true, true)
		}
	}
	// A client minimum larger than the head keeps the left and top edges
	// on screen.
	g.X = max(min(g.X, b.Right()-g.W), b.X)
	g.Y = max(min(g.Y, b.Bottom()-g.H), b.Y)

	if g == f.geometry {
		return false
	}
	return f.apply(g)
}
