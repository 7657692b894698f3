package wm

// Dir is a screen direction.
type Dir int

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// FocusResolver picks the window to focus after a close, a workspace switch
// or a directional request.
type FocusResolver struct {
	d *Desktop
}

// FindFocusCandidate returns the frame that should get focus. Unless
// stacking is set the MRU list is tried first, then the stacking order from
// the top.
func (r *FocusResolver) FindFocusCandidate(stacking bool) *Frame {
	if !stacking {
		for _, f := range r.d.workspaces.mru {
			if r.candidate(f.Object) {
				return f
			}
		}
	}

	order := r.d.stacking.order
	for i := len(order) - 1; i >= 0; i-- {
		if r.candidate(order[i]) {
			f, _ := order[i].Frame()
			return f
		}
	}
	return nil
}

func (r *FocusResolver) candidate(o *Object) bool {
	f, ok := o.Frame()
	if !ok || !r.d.canFocus(o) || !r.d.visible(o) {
		return false
	}
	return f.active.typ.focusCandidate()
}

// FindWOAndFocus focuses hint if it can still take focus. Otherwise the best
// candidate is focused and raised according to policy, or the root when
// nothing qualifies.
func (r *FocusResolver) FindWOAndFocus(hint *Object) *Object {
	d := r.d
	if hint != nil && d.canFocus(hint) && d.visible(hint) {
		d.Focus(hint)
		return hint
	}

	f := r.FindFocusCandidate(d.policy.FocusStacking)
	if f == nil {
		d.Focus(d.root)
		return d.root
	}

	switch d.policy.FocusRaise {
	case FocusRaiseAlways:
		d.stacking.Raise(f.Object)
	case FocusRaiseIfCovered:
		if d.stacking.OverlapPercent(f.Object) > d.policy.RaiseOverlap {
			d.stacking.Raise(f.Object)
		}
	case FocusRaiseNever:
	}
	d.Focus(f.Object)

	return f.Object
}

// FindDirectional returns the closest visible frame whose center lies in
// direction dir from the center of from.
func (r *FocusResolver) FindDirectional(from *Object, dir Dir) *Frame {
	if from == nil || dir == DirNone {
		return nil
	}
	fx, fy := from.geometry.Center()
	fg := from.geometry

	var best *Frame
	bestScore := -1
	for _, o := range r.d.stacking.order {
		f, ok := o.Frame()
		if !ok || o == from || !o.IsMapped() || f.active == nil || f.active.SkipTaskbar() {
			continue
		}
		cx, cy := o.geometry.Center()
		g := o.geometry

		var main, cross int
		var overlap bool
		switch dir {
		case DirUp:
			main, cross = fy-cy, abs(cx-fx)
			overlap = g.X < fg.Right() && g.Right() > fg.X
		case DirDown:
			main, cross = cy-fy, abs(cx-fx)
			overlap = g.X < fg.Right() && g.Right() > fg.X
		case DirLeft:
			main, cross = fx-cx, abs(cy-fy)
			overlap = g.Y < fg.Bottom() && g.Bottom() > fg.Y
		case DirRight:
			main, cross = cx-fx, abs(cy-fy)
			overlap = g.Y < fg.Bottom() && g.Bottom() > fg.Y
		}
		if main <= 0 {
			continue
		}

		score := main + cross
		if !overlap {
			score += cross
		}
		if best == nil || score < bestScore {
			best, bestScore = f, score
		}
	}

	return best
}

// FocusDirectional moves focus to the frame found by FindDirectional.
func (r *FocusResolver) FocusDirectional(dir Dir, raise bool) bool {
	from := r.d.focused
	if from == r.d.root {
		return false
	}
	f := r.FindDirectional(from, dir)
	if f == nil {
		return false
	}
	if raise {
		r.d.stacking.Raise(f.Object)
	}
	return r.d.Focus(f.Object)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
