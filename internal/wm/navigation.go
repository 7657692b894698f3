package wm

import "slices"

// NextFrame focuses and raises the next visible frame after the focused
// one, walking either the MRU list or the order frames were created in.
func (d *Desktop) NextFrame(forward, mru bool) *Frame {
	list := d.frames
	if mru {
		list = d.workspaces.mru
	}
	if len(list) == 0 {
		return nil
	}

	start := slices.Index(list, d.FocusedFrame())
	step := 1
	if !forward {
		step = -1
	}
	if start < 0 && !forward {
		start = 0
	}

	n := len(list)
	for i := 1; i <= n; i++ {
		f := list[((start+i*step)%n+n)%n]
		if f == d.FocusedFrame() || !d.canFocus(f.Object) || !d.visible(f.Object) || f.active.SkipTaskbar() {
			continue
		}
		d.stacking.Raise(f.Object)
		d.Focus(f.Object)
		return f
	}
	return nil
}
