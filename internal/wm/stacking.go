package wm

import (
	"slices"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

// StackDetail is the relative positioning requested in a restack.
type StackDetail int

const (
	StackAbove StackDetail = iota
	StackBelow
	StackTopIf
	StackBottomIf
	StackOpposite
)

func (s StackDetail) String() string {
	switch s {
	case StackAbove:
		return "above"
	case StackBelow:
		return "below"
	case StackTopIf:
		return "top-if"
	case StackBottomIf:
		return "bottom-if"
	case StackOpposite:
		return "opposite"
	default:
		return "unknown"
	}
}

// Stacking is the single bottom to top order of all top-level objects.
//
// Layers never interleave: scanning bottom to top the layer never decreases.
// A frame and the frames of its active client's transients on the same layer
// form one contiguous block that moves together.
type Stacking struct {
	d     *Desktop
	order []*Object
}

// Order returns the objects bottom to top.
func (s *Stacking) Order() []*Object {
	return slices.Clone(s.order)
}

func (s *Stacking) Len() int {
	return len(s.order)
}

func (s *Stacking) index(o *Object) int {
	return slices.Index(s.order, o)
}

// Contains reports whether o is in the order.
func (s *Stacking) Contains(o *Object) bool {
	return o != nil && s.index(o) >= 0
}

// Insert adds o to the order. raise=false puts it at the bottom of its
// layer, raise=true at the top.
func (s *Stacking) Insert(o *Object, raise bool) bool {
	if o == nil || o.kind == KindRoot || s.Contains(o) {
		return false
	}
	before := slices.Clone(s.order)
	s.place(o, raise)
	return s.commit(before)
}

// Remove takes o out of the order and out of every workspace's last focused
// slot. Removing an absent object is a no-op.
func (s *Stacking) Remove(o *Object) bool {
	i := s.index(o)
	if i < 0 {
		return false
	}
	s.order = slices.Delete(s.order, i, i+1)
	s.d.workspaces.clearLastFocused(o.id)
	s.d.publishStacking()
	return true
}

// Raise moves o and its transient block to the top of its layer.
func (s *Stacking) Raise(o *Object) bool {
	if !s.Contains(o) {
		return false
	}
	before := slices.Clone(s.order)

	f, isFrame := o.Frame()
	if isFrame && f.demoted {
		f.layer = f.demotedFrom
		f.demoted = false
	}
	if s.d.policy.FullscreenAbove && !(isFrame && f.fullscreen) {
		s.demoteFullscreen(o.layer)
	}
	s.place(o, true)

	return s.commit(before)
}

// Lower moves o and its transient block to the bottom of its layer. A
// transient never goes below its owner.
func (s *Stacking) Lower(o *Object) bool {
	if !s.Contains(o) {
		return false
	}
	before := slices.Clone(s.order)
	s.place(o, false)
	return s.commit(before)
}

// Restack positions o relative to sibling, or relative to the whole order
// when sibling is nil. It reports whether the order changed.
func (s *Stacking) Restack(o, sibling *Object, detail StackDetail) bool {
	if !s.Contains(o) {
		return false
	}
	if sibling == o || !s.Contains(sibling) {
		sibling = nil
	}

	switch detail {
	case StackAbove:
		if sibling == nil || sibling.layer > o.layer {
			return s.Raise(o)
		}
		if sibling.layer < o.layer {
			return s.Lower(o)
		}
		before := slices.Clone(s.order)
		s.move(o, func() int {
			i := s.index(sibling)
			if i < 0 {
				return s.layerIndex(o.layer, true)
			}
			block := s.transientBlock(sibling)
			for i+1 < len(s.order) && slices.Contains(block, s.order[i+1]) {
				i++
			}
			return i + 1
		})
		return s.commit(before)
	case StackBelow:
		if sibling == nil || sibling.layer < o.layer {
			return s.Lower(o)
		}
		if sibling.layer > o.layer {
			return s.Raise(o)
		}
		before := slices.Clone(s.order)
		s.move(o, func() int {
			if i := s.index(sibling); i >= 0 {
				return i
			}
			return s.layerIndex(o.layer, false)
		})
		return s.commit(before)
	case StackTopIf:
		if s.covered(o, sibling) {
			return s.Raise(o)
		}
		return false
	case StackBottomIf:
		if s.covers(o, sibling) {
			return s.Lower(o)
		}
		return false
	case StackOpposite:
		if s.Restack(o, sibling, StackTopIf) {
			return true
		}
		return s.Restack(o, sibling, StackBottomIf)
	}

	return false
}

// covered reports whether o is occluded by sibling, or by any mapped object
// above it on its layer.
func (s *Stacking) covered(o, sibling *Object) bool {
	if sibling != nil {
		return s.IsOccluding(sibling, o)
	}
	i := s.index(o)
	for _, x := range s.order[i+1:] {
		if x.layer == o.layer && s.IsOccluding(x, o) {
			return true
		}
	}
	return false
}

// covers reports whether o occludes sibling, or any object below it on its
// layer.
func (s *Stacking) covers(o, sibling *Object) bool {
	if sibling != nil {
		return s.IsOccluding(o, sibling)
	}
	i := s.index(o)
	for _, x := range s.order[:i] {
		if x.layer == o.layer && s.IsOccluding(o, x) {
			return true
		}
	}
	return false
}

// IsOccluding reports whether a is mapped, above b and intersects it.
func (s *Stacking) IsOccluding(a, b *Object) bool {
	if a == nil || b == nil || a == b || !a.IsMapped() {
		return false
	}
	ia, ib := s.index(a), s.index(b)
	if ia < 0 || ib < 0 || ia < ib {
		return false
	}
	return a.geometry.Intersects(b.geometry)
}

// OverlapPercent returns how much of o, in percent, is covered by the mapped
// objects above it on the same or a higher layer.
func (s *Stacking) OverlapPercent(o *Object) int {
	i := s.index(o)
	area := o.geometry.Area()
	if i < 0 || area == 0 {
		return 0
	}

	var rects []geom.Rect
	for _, x := range s.order[i+1:] {
		if !x.IsMapped() || x.layer < o.layer {
			continue
		}
		if r := x.geometry.Intersect(o.geometry); !r.Empty() {
			rects = append(rects, r)
		}
	}

	return geom.UnionArea(rects) * 100 / area
}

// Above returns the mapped objects stacked above o, bottom to top.
func (s *Stacking) Above(o *Object) []*Object {
	i := s.index(o)
	if i < 0 {
		return nil
	}
	var out []*Object
	for _, x := range s.order[i+1:] {
		if x.IsMapped() {
			out = append(out, x)
		}
	}
	return out
}

// place positions o, which may or may not be in the order yet.
func (s *Stacking) place(o *Object, raise bool) {
	s.move(o, func() int {
		if !raise {
			if owner := s.ownerFrame(o); owner != nil {
				if i := s.index(owner.Object); i >= 0 {
					return i + 1
				}
			}
		}
		return s.layerIndex(o.layer, raise)
	})
}

// layerIndex returns the insert position at the top (raise) or bottom of
// layer l.
func (s *Stacking) layerIndex(l Layer, raise bool) int {
	for i, x := range s.order {
		if raise && x.layer > l || !raise && x.layer >= l {
			return i
		}
	}
	return len(s.order)
}

// move lifts o and its transient block out of the order and inserts the
// block at the position pos returns. The whole block is restacked with one
// display call.
func (s *Stacking) move(o *Object, pos func() int) {
	block := append([]*Object{o}, s.transientBlock(o)...)
	before := slices.Clone(s.order)

	s.order = slices.DeleteFunc(s.order, func(x *Object) bool {
		return slices.Contains(block, x)
	})
	i := min(max(pos(), 0), len(s.order))
	s.order = slices.Insert(s.order, i, block...)

	if slices.Equal(before, s.order) {
		return
	}

	sibling := None
	if i > 0 {
		sibling = s.order[i-1].window
	}
	windows := make([]WindowID, 0, len(block))
	for _, x := range block {
		windows = append(windows, x.window)
	}
	s.d.display.Restack(windows, sibling)
}

// transientBlock returns the frames holding transients of o's active client
// that share o's layer, in their current stacking order.
func (s *Stacking) transientBlock(o *Object) []*Object {
	f, ok := o.Frame()
	if !ok || f.active == nil {
		return nil
	}

	var block []*Object
	for _, id := range s.d.transients.Descendants(f.active.id) {
		c := s.d.clients[id]
		if c == nil || c.frame == nil {
			continue
		}
		x := c.frame.Object
		if x == o || x.layer != o.layer || slices.Contains(block, x) || !s.Contains(x) {
			continue
		}
		block = append(block, x)
	}

	slices.SortFunc(block, func(a, b *Object) int {
		return s.index(a) - s.index(b)
	})
	return block
}

// ownerFrame returns the frame of the owner of o's active client when it
// shares o's layer.
func (s *Stacking) ownerFrame(o *Object) *Frame {
	f, ok := o.Frame()
	if !ok || f.active == nil {
		return nil
	}
	id, ok := s.d.transients.OwnerOf(f.active.id)
	if !ok {
		return nil
	}
	owner := s.d.clients[id]
	if owner == nil || owner.frame == nil || owner.frame == f || owner.frame.layer != o.layer {
		return nil
	}
	return owner.frame
}

// demoteFullscreen drops mapped fullscreen frames above layer l down to l,
// one at a time from the bottom. Each returns to its own layer when raised.
func (s *Stacking) demoteFullscreen(l Layer) {
	var demote []*Frame
	for _, x := range s.order {
		if f, ok := x.Frame(); ok && f.fullscreen && x.IsMapped() && x.layer > l {
			demote = append(demote, f)
		}
	}

	for _, f := range demote {
		if !f.demoted {
			f.demotedFrom = f.layer
			f.demoted = true
		}
		f.layer = l
		s.place(f.Object, true)
	}
}

func (s *Stacking) commit(before []*Object) bool {
	if slices.Equal(before, s.order) {
		return false
	}
	s.d.publishStacking()
	return true
}
