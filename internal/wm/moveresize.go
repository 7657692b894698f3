package wm

import "github.com/ItsNotGoodName/x-stackwm/internal/geom"

// Edge selects the frame edges an interactive resize drags.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// MoveResize is an interactive move or resize in progress. It lives from the
// button press to the release. If the frame is destroyed meanwhile the next
// event releases the grab and ends the operation.
type MoveResize struct {
	d       *Desktop
	frame   *Frame
	unwatch func()

	resize  bool
	edges   Edge
	start   geom.Rect
	px, py  int
	moved   bool
	grabbed bool
}

// BeginMove starts moving f with the pointer at px, py.
func (d *Desktop) BeginMove(f *Frame, px, py int) *MoveResize {
	return d.begin(f, px, py, false, 0)
}

// BeginResize starts resizing f. With no edges the edges closest to the
// pointer are used.
func (d *Desktop) BeginResize(f *Frame, px, py int, edges Edge) *MoveResize {
	if edges == 0 && f != nil {
		cx, cy := f.geometry.Center()
		if px < cx {
			edges |= EdgeLeft
		} else {
			edges |= EdgeRight
		}
		if py < cy {
			edges |= EdgeTop
		} else {
			edges |= EdgeBottom
		}
	}
	return d.begin(f, px, py, true, edges)
}

func (d *Desktop) begin(f *Frame, px, py int, resize bool, edges Edge) *MoveResize {
	if !f.alive() || f.fullscreen {
		return nil
	}
	if resize && f.denied(DenyResize) || !resize && f.denied(DenyMove) {
		return nil
	}

	cursor := CursorMove
	if resize {
		cursor = edgeCursor(edges)
	}
	if !d.display.GrabPointer(cursor) {
		return nil
	}

	m := &MoveResize{
		d:       d,
		frame:   f,
		resize:  resize,
		edges:   edges,
		start:   f.geometry,
		px:      px,
		py:      py,
		grabbed: true,
	}
	m.unwatch = d.Watch(f.id, func() {
		m.frame = nil
	})
	return m
}

func edgeCursor(edges Edge) Cursor {
	switch edges {
	case EdgeTop | EdgeLeft:
		return CursorResizeTopLeft
	case EdgeTop:
		return CursorResizeTop
	case EdgeTop | EdgeRight:
		return CursorResizeTopRight
	case EdgeLeft:
		return CursorResizeLeft
	case EdgeRight:
		return CursorResizeRight
	case EdgeBottom | EdgeLeft:
		return CursorResizeBottomLeft
	case EdgeBottom:
		return CursorResizeBottom
	default:
		return CursorResizeBottomRight
	}
}

// Frame returns the frame being manipulated, nil once it is gone.
func (m *MoveResize) Frame() *Frame {
	return m.frame
}

func (m *MoveResize) IsResize() bool {
	return m.resize
}

// Motion follows the pointer. It returns false when the operation is over,
// which happens when the frame was destroyed.
func (m *MoveResize) Motion(px, py int) bool {
	if m.frame == nil {
		m.release()
		return false
	}
	if !m.grabbed {
		return false
	}

	dx, dy := px-m.px, py-m.py
	g := m.start
	f := m.frame

	if m.d.policy.GrabOnMove {
		m.d.display.GrabServer()
		defer m.d.display.UngrabServer()
	}

	if !m.resize {
		g = f.CheckSnap(g.Translate(dx, dy))
		if f.Move(g.X, g.Y) {
			m.moved = true
		}
		return true
	}

	if m.edges&EdgeLeft != 0 {
		g.X, g.W = g.X+dx, g.W-dx
	}
	if m.edges&EdgeRight != 0 {
		g.W += dx
	}
	if m.edges&EdgeTop != 0 {
		g.Y, g.H = g.Y+dy, g.H-dy
	}
	if m.edges&EdgeBottom != 0 {
		g.H += dy
	}
	g = f.CheckSnapEdges(g, m.edges)
	if g.W < 1 {
		if m.edges&EdgeLeft != 0 {
			g.X = m.start.Right() - 1
		}
		g.W = 1
	}
	if g.H < 1 {
		if m.edges&EdgeTop != 0 {
			g.Y = m.start.Bottom() - 1
		}
		g.H = 1
	}

	if f.SetGeometry(g, m.edges&EdgeLeft == 0, m.edges&EdgeTop == 0) {
		m.moved = true
	}
	return true
}

// End finishes the operation, keeping the new geometry.
func (m *MoveResize) End() bool {
	f := m.frame
	m.release()
	if f == nil || !m.moved {
		return false
	}

	f.fill.active = false
	if m.resize {
		if m.edges&(EdgeLeft|EdgeRight) != 0 {
			f.maxHorz = false
		}
		if m.edges&(EdgeTop|EdgeBottom) != 0 {
			f.maxVert = false
		}
	}
	m.d.publishState(f.active)
	return true
}

// Cancel puts the frame back where it started.
func (m *MoveResize) Cancel() bool {
	f := m.frame
	m.release()
	if f == nil || !f.alive() {
		return false
	}
	return f.apply(m.start)
}

func (m *MoveResize) release() {
	if m.unwatch != nil {
		m.unwatch()
		m.unwatch = nil
	}
	if m.grabbed {
		m.d.display.UngrabPointer()
		m.grabbed = false
	}
	m.frame = nil
}
