package wm

// ConfigureMask says which fields of a ConfigureRequest are set.
type ConfigureMask uint16

const (
	ConfigureX ConfigureMask = 1 << iota
	ConfigureY
	ConfigureWidth
	ConfigureHeight
	ConfigureSibling
	ConfigureStackMode
)

func (m ConfigureMask) Has(f ConfigureMask) bool { return m&f != 0 }

// ConfigureRequest is a client asking to move, resize or restack itself.
// Coordinates are those of the client window.
type ConfigureRequest struct {
	Window  WindowID
	Mask    ConfigureMask
	X, Y    int
	W, H    int
	Sibling WindowID
	Detail  StackDetail
}

// HandleConfigureRequest applies what policy allows of req. The client is
// always told its resulting geometry.
func (d *Desktop) HandleConfigureRequest(req ConfigureRequest) bool {
	c := d.windows[req.Window]
	if c == nil || c.frame == nil {
		return false
	}
	f := c.frame
	changed := false

	geometry := req.Mask & (ConfigureX | ConfigureY | ConfigureWidth | ConfigureHeight)
	if c == f.active && !f.fullscreen && geometry != 0 {
		content := f.ContentArea()
		g := f.geometry
		if f.shaded {
			g.H = f.shadeHeight
		}
		side, top := f.Insets()

		if !f.denied(DenyResize) {
			if req.Mask.Has(ConfigureWidth) {
				content.W = req.W
			}
			if req.Mask.Has(ConfigureHeight) {
				content.H = req.H
			}
			g.W, g.H = content.W+2*side, content.H+top+side
		}
		if !f.denied(DenyMove) {
			dx, dy := gravityOffset(c.hints.Gravity, f.decor, d.policy)
			if req.Mask.Has(ConfigureX) {
				g.X = req.X + dx
			}
			if req.Mask.Has(ConfigureY) {
				g.Y = req.Y + dy
			}
		}

		if f.shaded {
			f.shadeHeight = f.constrain(g, true, true).H
			g.H = f.collapsedHeight()
			changed = f.apply(f.constrainWidth(g, true))
		} else {
			changed = f.apply(f.constrain(g, true, true))
		}
		if f.FixGeometry() {
			changed = true
		}
		if changed {
			f.fill.active = false
			f.d.publishState(c)
		}
	}

	if req.Mask.Has(ConfigureStackMode) && !f.denied(DenyStacking) {
		var sibling *Object
		if req.Mask.Has(ConfigureSibling) {
			if sf := d.FrameOf(req.Sibling); sf != nil {
				sibling = sf.Object
			}
		}
		if d.stacking.Restack(f.Object, sibling, req.Detail) {
			changed = true
		}
	}

	if c != f.active {
		f.syncClient(c)
	}
	f.syncActive()
	return changed
}

// HandleStateRequest applies a client's request to add, remove or toggle
// states. Denied states are treated as removed.
func (d *Desktop) HandleStateRequest(w WindowID, action Action, state State) bool {
	c := d.windows[w]
	if c == nil || c.frame == nil {
		return false
	}
	f := c.frame
	changed := false
	set := func(ok bool) {
		changed = changed || ok
	}

	if state.Has(StateSticky) {
		set(f.SetSticky(action))
	}
	if horz, vert := state.Has(StateMaximizedHorz), state.Has(StateMaximizedVert); horz || vert {
		set(f.SetMaximized(action, horz, vert, false))
	}
	if state.Has(StateShaded) {
		set(f.SetShaded(action))
	}
	if state.Has(StateHidden) {
		hidden := action.resolve(f.IsIconified()) && !f.denied(DenyHidden)
		if hidden {
			set(f.Iconify())
		} else {
			set(f.Deiconify())
		}
	}
	if state.Has(StateFullscreen) {
		set(f.SetFullscreen(action))
	}
	if state.Has(StateAbove) {
		set(d.setLayerState(f, action, LayerOnTop, DenyAbove))
	}
	if state.Has(StateBelow) {
		set(d.setLayerState(f, action, LayerBelow, DenyBelow))
	}

	for _, flag := range []State{StateSkipTaskbar, StateSkipPager, StateDemandsAttention} {
		if !state.Has(flag) {
			continue
		}
		on := action.resolve(c.state.Has(flag))
		if flag == StateDemandsAttention && f.IsFocused() {
			on = false
		}
		if on != c.state.Has(flag) {
			if on {
				c.state |= flag
			} else {
				c.state &^= flag
			}
			changed = true
		}
	}

	d.publishState(c)
	return changed
}

func (d *Desktop) setLayerState(f *Frame, action Action, layer Layer, deny Deny) bool {
	current := f.layer
	if f.fullscreen {
		current = f.fsSaved.layer
	}
	if f.demoted {
		current = f.demotedFrom
	}

	on := action.resolve(current == layer) && !f.denied(deny)
	switch {
	case on && current != layer:
		return d.setBaseLayer(f, layer)
	case !on && current == layer:
		return d.setBaseLayer(f, LayerNormal)
	}
	return false
}

// setBaseLayer changes the layer a frame returns to when it leaves
// fullscreen or demotion.
func (d *Desktop) setBaseLayer(f *Frame, layer Layer) bool {
	if f.fullscreen {
		f.fsSaved.layer = layer
		if d.policy.FullscreenAbove {
			return true
		}
	}
	return f.SetLayer(layer)
}

// HandleActivate is a request to show and focus the client of w. Clients
// denied activation are marked as demanding attention instead.
func (d *Desktop) HandleActivate(w WindowID) bool {
	c := d.windows[w]
	if c == nil || c.frame == nil {
		return false
	}
	f := c.frame
	if (c.deny | d.policy.Deny).Has(DenyActivate) {
		if !f.IsFocused() && !c.state.Has(StateDemandsAttention) {
			c.state |= StateDemandsAttention
			d.publishState(c)
		}
		return false
	}

	if !f.IsSticky() && f.workspace != d.workspaces.Active() {
		d.workspaces.SetWorkspace(f.workspace, false, false)
	}
	f.Deiconify()
	f.Activate(c)
	d.stacking.Raise(f.Object)
	return d.Focus(f.Object)
}
