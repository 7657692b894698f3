package wm

import "github.com/ItsNotGoodName/x-stackwm/internal/geom"

func isBetween(lo, hi, v int) bool {
	return v >= lo && v <= hi
}

// CheckSnap adjusts the position of a frame being moved to g. Edges within
// the attract distance outside, or the resist distance inside, of a head
// edge or another frame's edge snap onto it. Frame snapping runs after head
// snapping and wins on the same axis.
func (f *Frame) CheckSnap(g geom.Rect) geom.Rect {
	p := f.d.policy
	if p.EdgeAttract > 0 || p.EdgeResist > 0 {
		g = snapEdge(g, f.d.HeadFor(g).Usable, p.EdgeAttract, p.EdgeResist)
	}
	if p.FrameAttract > 0 || p.FrameResist > 0 {
		for _, o := range f.d.stacking.order {
			other, ok := o.Frame()
			if !ok || other == f || !o.IsMapped() {
				continue
			}
			g = snapFrame(g, o.geometry, p.FrameAttract, p.FrameResist)
		}
	}
	return g
}

// CheckSnapEdges is CheckSnap for a resize: only the dragged edges snap and
// the others stay put.
func (f *Frame) CheckSnapEdges(g geom.Rect, edges Edge) geom.Rect {
	p := f.d.policy
	left, top, right, bottom := g.X, g.Y, g.Right(), g.Bottom()
	if p.EdgeAttract > 0 || p.EdgeResist > 0 {
		b := f.d.HeadFor(g).Usable
		attract, resist := p.EdgeAttract, p.EdgeResist
		if edges&EdgeLeft != 0 && isBetween(b.X-resist, b.X+attract, left) {
			left = b.X
		}
		if edges&EdgeRight != 0 && isBetween(b.Right()-attract, b.Right()+resist, right) {
			right = b.Right()
		}
		if edges&EdgeTop != 0 && isBetween(b.Y-resist, b.Y+attract, top) {
			top = b.Y
		}
		if edges&EdgeBottom != 0 && isBetween(b.Bottom()-attract, b.Bottom()+resist, bottom) {
			bottom = b.Bottom()
		}
	}
	if p.FrameAttract > 0 || p.FrameResist > 0 {
		attract, resist := p.FrameAttract, p.FrameResist
		for _, o := range f.d.stacking.order {
			other, ok := o.Frame()
			if !ok || other == f || !o.IsMapped() {
				continue
			}
			r := o.geometry
			if isBetween(r.Y-g.H, r.Bottom(), g.Y) {
				if edges&EdgeLeft != 0 && isBetween(r.Right()-resist, r.Right()+attract, left) {
					left = r.Right()
				}
				if edges&EdgeRight != 0 && isBetween(r.X-attract, r.X+resist, right) {
					right = r.X
				}
			}
			if isBetween(r.X-g.W, r.Right(), g.X) {
				if edges&EdgeTop != 0 && isBetween(r.Bottom()-resist, r.Bottom()+attract, top) {
					top = r.Bottom()
				}
				if edges&EdgeBottom != 0 && isBetween(r.Y-attract, r.Y+resist, bottom) {
					bottom = r.Y
				}
			}
		}
	}
	return geom.R(left, top, right-left, bottom-top)
}

// snapEdge keeps g inside b: attract pulls from outside, resist holds from
// inside.
func snapEdge(g, b geom.Rect, attract, resist int) geom.Rect {
	switch {
	case isBetween(b.X-resist, b.X+attract, g.X):
		g.X = b.X
	case isBetween(b.Right()-attract, b.Right()+resist, g.Right()):
		g.X = b.Right() - g.W
	}
	switch {
	case isBetween(b.Y-resist, b.Y+attract, g.Y):
		g.Y = b.Y
	case isBetween(b.Bottom()-attract, b.Bottom()+resist, g.Bottom()):
		g.Y = b.Bottom() - g.H
	}
	return g
}

// snapFrame snaps g against the outside edges of o when they are side by
// side.
func snapFrame(g, o geom.Rect, attract, resist int) geom.Rect {
	if isBetween(o.Y-g.H, o.Bottom(), g.Y) {
		switch {
		case isBetween(o.Right()-resist, o.Right()+attract, g.X):
			g.X = o.Right()
		case isBetween(o.X-attract, o.X+resist, g.Right()):
			g.X = o.X - g.W
		}
	}
	if isBetween(o.X-g.W, o.Right(), g.X) {
		switch {
		case isBetween(o.Bottom()-resist, o.Bottom()+attract, g.Y):
			g.Y = o.Bottom()
		case isBetween(o.Y-attract, o.Y+resist, g.Bottom()):
			g.Y = o.Y - g.H
		}
	}
	return g
}
