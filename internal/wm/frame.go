package wm

import (
	"slices"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

// Decor says which decorations a frame draws.
type Decor struct {
	Border   bool
	Titlebar bool
}

// Frame is a window object holding clients as tabs. Exactly one client is
// active while the frame is not empty and its geometry always equals the
// frame's content area.
//
// A frame never destroys itself. Whoever removes the last client checks
// Empty and has the Desktop destroy the frame.
type Frame struct {
	*Object
	d *Desktop

	clients []*Client
	active  *Client
	decor   Decor

	maxHorz     bool
	maxVert     bool
	fullscreen  bool
	shaded      bool
	shadeHeight int
	oldGeometry geom.Rect

	fill struct {
		active bool
		dir    Dir
		saved  geom.Rect
	}
	fsSaved struct {
		geometry geom.Rect
		decor    Decor
		layer    Layer
	}

	demoted     bool
	demotedFrom Layer
}

func (f *Frame) Clients() []*Client { return slices.Clone(f.clients) }
func (f *Frame) Active() *Client { return f.active }
func (f *Frame) Decor() Decor { return f.decor }
func (f *Frame) Empty() bool { return len(f.clients) == 0 }
func (f *Frame) IsMaximizedHorz() bool { return f.maxHorz }
func (f *Frame) IsMaximizedVert() bool { return f.maxVert }
func (f *Frame) IsFullscreen() bool { return f.fullscreen }
func (f *Frame) IsShaded() bool { return f.shaded }
func (f *Frame) IsTagged() bool { return f.d.tagged == f.id }
func (f *Frame) OldGeometry() geom.Rect { return f.oldGeometry }

// EdgeFilled returns the direction the frame is docked to by FillEdge or a
// fill maximize. DirNone with ok set means a fill maximize.
func (f *Frame) EdgeFilled() (Dir, bool) {
	return f.fill.dir, f.fill.active
}

// Insets returns the decoration sizes around the client.
func (f *Frame) Insets() (side, top int) {
	return insets(f.decor, f.d.policy)
}

func insets(decor Decor, p Policy) (side, top int) {
	if decor.Border {
		side = p.BorderWidth
	}
	top = side
	if decor.Titlebar {
		top += p.TitleHeight
	}
	return side, top
}

// ContentArea is the frame geometry minus the decoration insets.
func (f *Frame) ContentArea() geom.Rect {
	side, top := f.Insets()
	g := f.geometry
	if f.shaded {
		g.H = f.shadeHeight
	}
	return geom.Rect{
		X: g.X + side,
		Y: g.Y + top,
		W: max(g.W-2*side, 1),
		H: max(g.H-top-side, 1),
	}
}

// outer converts a client rectangle into the frame rectangle around it.
func (f *Frame) outer(content geom.Rect) geom.Rect {
	side, top := f.Insets()
	return geom.Rect{
		X: content.X - side,
		Y: content.Y - top,
		W: content.W + 2*side,
		H: content.H + top + side,
	}
}

func (f *Frame) collapsedHeight() int {
	side, top := f.Insets()
	return top + side
}

// apply moves the frame window and keeps the active client on the content
// area. It reports whether the geometry changed.
func (f *Frame) apply(g geom.Rect) bool {
	if g == f.geometry {
		f.syncActive()
		return false
	}
	f.geometry = g
	f.d.display.MoveResize(f.window, g)
	f.syncActive()
	f.d.decorate(f)
	return true
}

func (f *Frame) syncActive() {
	if f.active == nil {
		return
	}
	f.syncClient(f.active)
}

// syncClient tells c the frame's content area.
func (f *Frame) syncClient(c *Client) {
	abs := f.ContentArea()
	side, top := f.Insets()
	c.geometry = abs
	f.d.display.ConfigureClient(c.window, geom.Rect{X: side, Y: top, W: abs.W, H: abs.H}, abs)
}

func (f *Frame) publishExtents() {
	side, top := f.Insets()
	for _, c := range f.clients {
		f.d.display.PublishFrameExtents(c.window, side, side, top, side)
	}
}

// SetDecor changes the decorations while keeping the client where it is on
// screen.
func (f *Frame) SetDecor(decor Decor) bool {
	if !f.d.registered(f.Object) || decor == f.decor || f.fullscreen {
		return false
	}
	content := f.ContentArea()
	f.decor = decor
	if f.shaded && !decor.Border && !decor.Titlebar {
		f.shaded = false
	}
	g := f.outer(content)
	if f.shaded {
		g.H = f.collapsedHeight()
	}
	f.apply(g)
	f.publishExtents()
	return true
}

// AddClient appends c as a tab. The first client, or any client when
// activate is set, becomes active.
func (f *Frame) AddClient(c *Client, activate bool) bool {
	if c.frame != nil || slices.Contains(f.clients, c) {
		return false
	}
	c.frame = f
	f.clients = append(f.clients, c)

	side, top := f.Insets()
	f.d.display.Reparent(c.window, f.window, side, top)
	f.d.display.PublishClientDesktop(c.window, f.workspace, f.IsSticky())
	f.d.display.PublishFrameExtents(c.window, side, side, top, side)

	if f.active == nil || activate {
		f.Activate(c)
	} else {
		f.d.display.Unmap(c.window)
	}
	return true
}

// RemoveClient detaches c. When c was active the neighbouring tab takes
// over. The frame is left in place even when it becomes empty.
func (f *Frame) RemoveClient(c *Client) bool {
	i := slices.Index(f.clients, c)
	if i < 0 {
		return false
	}
	f.clients = slices.Delete(f.clients, i, i+1)
	c.frame = nil

	if f.active == c {
		f.active = nil
		if len(f.clients) > 0 {
			f.Activate(f.clients[min(i, len(f.clients)-1)])
		}
	}
	f.d.decorate(f)
	return true
}

// Activate makes c the visible tab.
func (f *Frame) Activate(c *Client) bool {
	if c == nil || c.frame != f {
		return false
	}
	if f.active == c {
		return true
	}

	prev := f.active
	f.active = c
	if !f.shaded {
		f.d.display.Map(c.window)
	}
	if prev != nil {
		f.d.display.Unmap(prev.window)
	}

	// The new tab may have stricter size hints.
	content := f.ContentArea()
	w, h := c.hints.Constrain(content.W, content.H)
	if !f.fullscreen && !f.shaded && (w != content.W || h != content.H) {
		content.W, content.H = w, h
		f.apply(f.outer(content))
	} else {
		f.syncActive()
	}

	if f.IsFocused() {
		f.d.display.Focus(c.window)
		f.d.display.PublishActive(c.window)
	}
	f.d.decorate(f)
	f.d.publishState(c)
	return true
}

// ActivateNext cycles through the tabs.
func (f *Frame) ActivateNext(forward bool) bool {
	if len(f.clients) < 2 {
		return false
	}
	i := slices.Index(f.clients, f.active)
	if forward {
		i = (i + 1) % len(f.clients)
	} else {
		i = (i - 1 + len(f.clients)) % len(f.clients)
	}
	return f.Activate(f.clients[i])
}

// Tag marks f as the frame new clients are added to as tabs. Tagging the
// tagged frame again clears the tag.
func (f *Frame) Tag() bool {
	if !f.d.registered(f.Object) {
		return false
	}
	if f.d.tagged == f.id {
		f.d.tagged = 0
	} else {
		f.d.tagged = f.id
	}
	f.d.decorate(f)
	return true
}

// Tagged returns the tagged frame, if it is still alive.
func (d *Desktop) Tagged() *Frame {
	o := d.objects[d.tagged]
	if o == nil {
		d.tagged = 0
		return nil
	}
	f, _ := o.Frame()
	return f
}

// Iconify hides the frame until Deiconify.
func (f *Frame) Iconify() bool {
	if !f.d.registered(f.Object) || f.IsIconified() {
		return false
	}
	if f.active != nil && (f.active.deny|f.d.policy.Deny).Has(DenyHidden) {
		return false
	}
	wasFocused := f.IsFocused()
	f.setFlag(FlagIconified, true)
	f.d.unmapObject(f.Object)
	f.d.publishState(f.active)
	if wasFocused {
		f.d.focus.FindWOAndFocus(nil)
	}
	return true
}

func (f *Frame) Deiconify() bool {
	if !f.d.registered(f.Object) || !f.IsIconified() {
		return false
	}
	f.setFlag(FlagIconified, false)
	if f.d.visible(f.Object) {
		f.d.mapObject(f.Object)
	}
	f.d.publishState(f.active)
	return true
}

// SetSticky shows the frame on every workspace.
func (f *Frame) SetSticky(action Action) bool {
	if !f.d.registered(f.Object) {
		return false
	}
	if f.active != nil && (f.active.deny|f.d.policy.Deny).Has(DenySticky) {
		action = ActionUnset
	}
	sticky := action.resolve(f.IsSticky())
	if sticky == f.IsSticky() {
		return false
	}

	f.setFlag(FlagSticky, sticky)
	if sticky {
		f.workspace = f.d.workspaces.Active()
	}
	for _, c := range f.clients {
		f.d.display.PublishClientDesktop(c.window, f.workspace, sticky)
	}
	f.d.publishState(f.active)
	return true
}

// SetLayer moves f to another layer and places it at the top of that layer.
func (f *Frame) SetLayer(l Layer) bool {
	if !f.d.registered(f.Object) || l == f.layer || l < LayerDesktop || l > LayerMenu {
		return false
	}
	f.layer = l
	f.demoted = false
	f.d.stacking.Raise(f.Object)
	f.d.publishState(f.active)
	return true
}
