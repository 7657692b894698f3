package wm

import (
	"fmt"
	"slices"

	"github.com/ItsNotGoodName/x-stackwm/internal/bus"
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

// Manage adopts the window behind src. Nothing is registered when reading
// the window or creating its frame fails.
func (d *Desktop) Manage(src ClientSource) (*Client, error) {
	if d.windows[src.Window()] != nil {
		return nil, ErrAlreadyManaged
	}
	c, err := NewClient(src)
	if err != nil {
		return nil, err
	}

	owner := d.windows[c.transientFor]

	if t := d.Tagged(); t != nil && t.active != nil && c.typ == TypeNormal {
		d.adopt(c, owner)
		t.AddClient(c, true)
		if len(d.transients.Transients(c.id)) > 0 {
			d.stacking.Raise(t.Object)
		}
		d.publishClientList()
		d.publishStacking()
		if d.policy.FocusNew && t.IsMapped() {
			d.Focus(t.Object)
		}
		d.log.Debug("Client added as tab", "window", c.window, "frame", t.id)
		return c, nil
	}

	decor := Decor{Border: true, Titlebar: true}
	if c.typ == TypeDock || c.typ == TypeDesktop || c.typ == TypeSplash {
		decor = Decor{}
	}
	layer := d.initialLayer(c, owner)
	workspace, sticky := d.initialWorkspace(c, owner)
	g := d.initialGeometry(c, owner, decor)

	window, err := d.display.CreateFrame(g)
	if err != nil {
		return nil, fmt.Errorf("create frame: %w", err)
	}

	d.adopt(c, owner)

	f := d.newFrame(window, g, layer, workspace, decor)
	if c.typ != TypeDock {
		f.setFlag(FlagFocusable, true)
	}
	f.setFlag(FlagSticky, sticky || c.typ == TypeDock || c.state.Has(StateSticky))
	f.setFlag(FlagIconified, c.state.Has(StateHidden))
	f.AddClient(c, true)

	if c.typ != TypeDock && c.typ != TypeDesktop {
		f.FixGeometry()
	}
	if d.visible(f.Object) {
		d.mapObject(f.Object)
	}
	if of := d.stacking.ownerFrame(f.Object); of != nil {
		d.stacking.Raise(of.Object)
	}
	// Transients managed before their owner join its block.
	if len(d.transients.Transients(c.id)) > 0 {
		d.stacking.Raise(f.Object)
	}

	switch {
	case c.state.Has(StateFullscreen):
		f.SetFullscreen(ActionSet)
	case c.state.Has(StateMaximizedHorz) || c.state.Has(StateMaximizedVert):
		f.SetMaximized(ActionSet, c.state.Has(StateMaximizedHorz), c.state.Has(StateMaximizedVert), false)
	}
	if c.state.Has(StateShaded) {
		f.SetShaded(ActionSet)
	}

	d.publishClientList()
	d.publishStacking()
	d.publishState(c)
	bus.Publish(d.bus, FrameAdded{ID: f.id, Window: f.window})
	d.log.Debug("Client managed", "window", c.window, "frame", f.id, "layer", f.layer, "workspace", f.workspace)

	if d.policy.FocusNew && f.IsMapped() && c.typ.focusCandidate() {
		d.Focus(f.Object)
	}

	return c, nil
}

// adopt registers c and its transient relation.
func (d *Desktop) adopt(c *Client, owner *Client) {
	c.id = d.newID()
	d.clients[c.id] = c
	d.windows[c.window] = c
	d.managed = append(d.managed, c)
	if owner != nil {
		d.transients.Set(c.id, owner.id)
	}
	for _, id := range d.orphansOf(c.window) {
		d.transients.Set(id, c.id)
	}
	d.setStrut(c.id, c.strut)
}

// orphansOf returns clients that declared w as their owner before w was
// managed.
func (d *Desktop) orphansOf(w WindowID) []ID {
	var ids []ID
	for _, x := range d.managed {
		if x.transientFor == w && x.window != w {
			if _, ok := d.transients.OwnerOf(x.id); !ok {
				ids = append(ids, x.id)
			}
		}
	}
	return ids
}

func (d *Desktop) newFrame(window WindowID, g geom.Rect, layer Layer, workspace int, decor Decor) *Frame {
	f := &Frame{
		Object: &Object{
			id:        d.newID(),
			kind:      KindFrame,
			window:    window,
			geometry:  g,
			workspace: workspace,
			layer:     layer,
		},
		d:     d,
		decor: decor,
	}
	f.Object.frame = f
	d.register(f.Object, true)
	d.frames = append(d.frames, f)
	return f
}

func (d *Desktop) initialLayer(c *Client, owner *Client) Layer {
	switch c.typ {
	case TypeDesktop:
		return LayerDesktop
	case TypeDock:
		return LayerDock
	}
	switch {
	case c.state.Has(StateAbove):
		return LayerOnTop
	case c.state.Has(StateBelow):
		return LayerBelow
	}
	if owner != nil && owner.frame != nil {
		return owner.frame.layer
	}
	return LayerNormal
}

func (d *Desktop) initialWorkspace(c *Client, owner *Client) (int, bool) {
	if c.request.ok {
		if c.request.sticky {
			return d.workspaces.Active(), true
		}
		if c.request.workspace < d.workspaces.Len() {
			return c.request.workspace, false
		}
	}
	if owner != nil && owner.frame != nil {
		return owner.frame.workspace, owner.frame.IsSticky()
	}
	return d.workspaces.Active(), false
}

// initialGeometry places a new frame. Positioned windows keep their
// position adjusted for gravity; others are centered over their owner or on
// the head under the pointer.
func (d *Desktop) initialGeometry(c *Client, owner *Client, decor Decor) geom.Rect {
	side, top := insets(decor, d.policy)
	w, h := c.hints.Constrain(c.geometry.W, c.geometry.H)
	g := geom.Rect{W: w + 2*side, H: h + top + side}

	positioned := c.hints.Has(HintUSPosition|HintPPosition) || c.geometry.X != 0 || c.geometry.Y != 0
	switch {
	case c.typ == TypeDock || c.typ == TypeDesktop:
		g.X, g.Y = c.geometry.X, c.geometry.Y
	case positioned:
		dx, dy := gravityOffset(c.hints.Gravity, decor, d.policy)
		g.X, g.Y = c.geometry.X+dx, c.geometry.Y+dy
	default:
		area := d.heads[0].Usable
		if owner != nil && owner.frame != nil {
			area = owner.frame.geometry
		} else if x, y, ok := d.display.QueryPointer(); ok {
			area = d.HeadFor(geom.R(x, y, 1, 1)).Usable
		}
		cx, cy := area.Center()
		g.X, g.Y = cx-g.W/2, cy-g.H/2
	}
	return g
}

// gravityOffset converts a client position into a frame position for
// gravity.
func gravityOffset(gravity Gravity, decor Decor, p Policy) (dx, dy int) {
	side, top := insets(decor, p)
	dw, dh := 2*side, top+side

	switch gravity {
	case GravityStatic:
		return -side, -top
	case GravityNorth, GravityCenter, GravitySouth:
		dx = -dw / 2
	case GravityNorthEast, GravityEast, GravitySouthEast:
		dx = -dw
	}
	switch gravity {
	case GravityWest, GravityCenter, GravityEast:
		dy = -dh / 2
	case GravitySouthWest, GravitySouth, GravitySouthEast:
		dy = -dh
	}
	return dx, dy
}

// Unmanage forgets the client of window w. An emptied frame is destroyed
// and focus moves on if it was focused.
func (d *Desktop) Unmanage(w WindowID) bool {
	c := d.windows[w]
	if c == nil {
		return false
	}

	d.notify(c.id)
	d.transients.Forget(c.id)
	delete(d.clients, c.id)
	delete(d.windows, c.window)
	d.managed = slices.DeleteFunc(d.managed, func(x *Client) bool { return x == c })
	d.setStrut(c.id, geom.Strut{})

	f := c.frame
	wasFocused := f != nil && f.IsFocused()
	if f != nil {
		f.RemoveClient(c)
		if f.Empty() {
			d.destroyFrame(f)
		}
	}

	d.publishClientList()
	d.publishStacking()
	d.log.Debug("Client unmanaged", "window", w)

	if wasFocused {
		if d.registered(f.Object) {
			d.Focus(f.Object)
		} else {
			d.focus.FindWOAndFocus(nil)
		}
	}
	return true
}

// destroyFrame tears down an empty frame.
func (d *Desktop) destroyFrame(f *Frame) {
	if d.tagged == f.id {
		d.tagged = 0
	}
	d.unregister(f.Object)
	d.frames = slices.DeleteFunc(d.frames, func(x *Frame) bool { return x == f })
	d.display.DestroyFrame(f.window)
	bus.Publish(d.bus, FrameRemoved{ID: f.id, Window: f.window})
}

// DetachClient moves a tab out into a frame of its own.
func (d *Desktop) DetachClient(c *Client) (*Frame, error) {
	src := c.frame
	if d.clients[c.id] != c || src == nil {
		return nil, ErrWindowGone
	}
	if len(src.clients) < 2 {
		return src, nil
	}

	g := src.geometry
	if src.shaded {
		g.H = src.shadeHeight
	}
	g = g.Translate(d.policy.TitleHeight, d.policy.TitleHeight)
	window, err := d.display.CreateFrame(g)
	if err != nil {
		return nil, fmt.Errorf("create frame: %w", err)
	}

	src.RemoveClient(c)
	layer := src.layer
	if src.fullscreen {
		layer = src.fsSaved.layer
	}
	decor := src.decor
	if src.fullscreen {
		decor = src.fsSaved.decor
	}

	f := d.newFrame(window, g, layer, src.workspace, decor)
	f.flags = src.flags &^ (FlagMapped | FlagFocused)
	f.AddClient(c, true)
	f.FixGeometry()
	if d.visible(f.Object) {
		d.mapObject(f.Object)
	}
	d.publishStacking()
	bus.Publish(d.bus, FrameAdded{ID: f.id, Window: f.window})
	return f, nil
}

// AttachClient moves c into frame dst as a tab. The frame c leaves is
// destroyed when it becomes empty.
func (d *Desktop) AttachClient(c *Client, dst *Frame) bool {
	src := c.frame
	if d.clients[c.id] != c || src == nil || src == dst || !d.registered(dst.Object) {
		return false
	}
	wasFocused := src.IsFocused()

	src.RemoveClient(c)
	if src.Empty() {
		d.destroyFrame(src)
	}
	dst.AddClient(c, true)
	d.publishStacking()

	if wasFocused && dst.IsMapped() {
		d.Focus(dst.Object)
	} else if wasFocused {
		d.focus.FindWOAndFocus(nil)
	}
	return true
}
