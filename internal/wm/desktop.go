// Package wm is the window management engine: stacking order, workspaces,
// the frame geometry state machine and focus resolution.
//
// All state lives in one Desktop value. It is not safe for concurrent use;
// the owner feeds it one display event at a time.
package wm

import (
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/x-stackwm/internal/bus"
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

type Desktop struct {
	display Display
	decor   Decorator
	bus     *bus.Bus
	policy  Policy
	log     *slog.Logger

	headRects []geom.Rect
	heads     []geom.Head
	struts    map[ID]geom.Strut

	lastID  ID
	objects map[ID]*Object
	clients map[ID]*Client
	windows map[WindowID]*Client
	frames  []*Frame
	managed []*Client
	root    *Object
	focused *Object
	tagged  ID

	observers map[ID]map[int]func()
	lastWatch int

	stacking   *Stacking
	workspaces *Workspaces
	transients *TransientGraph
	focus      *FocusResolver
}

// NewDesktop builds the engine state. heads are the physical display areas;
// at least one is required, a 1x1 head is assumed otherwise.
func NewDesktop(display Display, decor Decorator, b *bus.Bus, policy Policy, heads []geom.Rect) *Desktop {
	if decor == nil {
		decor = NopDecorator{}
	}
	if len(heads) == 0 {
		heads = []geom.Rect{geom.R(0, 0, 1, 1)}
	}

	d := &Desktop{
		display:    display,
		decor:      decor,
		bus:        b,
		policy:     policy,
		log:        slog.With("package", "wm"),
		struts:     make(map[ID]geom.Strut),
		objects:    make(map[ID]*Object),
		clients:    make(map[ID]*Client),
		windows:    make(map[WindowID]*Client),
		observers:  make(map[ID]map[int]func()),
		transients: NewTransientGraph(),
	}
	d.stacking = &Stacking{d: d}
	d.workspaces = newWorkspaces(d, policy.WorkspaceNames, policy.PerRow)
	d.focus = &FocusResolver{d: d}
	d.root = &Object{
		id:    d.newID(),
		kind:  KindRoot,
		flags: FlagMapped | FlagFocusable | FlagFocused,
	}
	d.focused = d.root
	d.setHeads(heads)

	return d
}

func (d *Desktop) newID() ID {
	d.lastID++
	return d.lastID
}

func (d *Desktop) Policy() Policy { return d.policy }
func (d *Desktop) Stacking() *Stacking { return d.stacking }
func (d *Desktop) Workspaces() *Workspaces { return d.workspaces }
func (d *Desktop) Transients() *TransientGraph { return d.transients }
func (d *Desktop) FocusResolver() *FocusResolver { return d.focus }
func (d *Desktop) Root() *Object { return d.root }

// SetPolicy swaps the tunables. Workspace names and grid width follow the
// new policy; decoration sizes apply on the next geometry change of each
// frame.
func (d *Desktop) SetPolicy(p Policy) {
	d.policy = p
	d.workspaces.setLayout(p.WorkspaceNames, p.PerRow)
	for _, f := range d.frames {
		f.syncActive()
		d.decorate(f)
	}
	d.log.Debug("Policy updated", "workspaces", d.workspaces.Len(), "per-row", d.workspaces.PerRow())
}

// Lookup resolves an ID to a registered object.
func (d *Desktop) Lookup(id ID) *Object {
	return d.objects[id]
}

// Client returns the managed client owning window w.
func (d *Desktop) Client(w WindowID) *Client {
	return d.windows[w]
}

// ClientByID resolves a client ID.
func (d *Desktop) ClientByID(id ID) *Client {
	return d.clients[id]
}

// FrameOf returns the frame whose frame window or client window is w.
func (d *Desktop) FrameOf(w WindowID) *Frame {
	if c := d.windows[w]; c != nil {
		return c.frame
	}
	for _, f := range d.frames {
		if f.window == w {
			return f
		}
	}
	return nil
}

// Frames returns the frames in registration order.
func (d *Desktop) Frames() []*Frame {
	return slices.Clone(d.frames)
}

// Focused returns the object holding input focus. It is the root when no
// window has focus.
func (d *Desktop) Focused() *Object {
	return d.focused
}

// FocusedFrame returns the focused frame, if any.
func (d *Desktop) FocusedFrame() *Frame {
	f, _ := d.focused.Frame()
	return f
}

func (d *Desktop) registered(o *Object) bool {
	return o != nil && d.objects[o.id] == o
}

// register adds o to the registry and the stacking order in one step.
func (d *Desktop) register(o *Object, raise bool) {
	d.objects[o.id] = o
	d.stacking.Insert(o, raise)
}

// unregister is the single teardown path of an object: observers first, then
// stacking order, last-focused slots and MRU together.
func (d *Desktop) unregister(o *Object) {
	if !d.registered(o) {
		return
	}

	d.notify(o.id)
	d.stacking.Remove(o)
	d.workspaces.clearLastFocused(o.id)
	if f, ok := o.Frame(); ok {
		d.workspaces.RemoveFromMRU(f)
	}
	delete(d.objects, o.id)

	if d.focused == o {
		o.setFlag(FlagFocused, false)
		d.focused = nil
	}
}

// Watch calls fn once when id is destroyed. The returned function cancels
// the watch.
func (d *Desktop) Watch(id ID, fn func()) func() {
	d.lastWatch++
	token := d.lastWatch

	if d.observers[id] == nil {
		d.observers[id] = make(map[int]func())
	}
	d.observers[id][token] = fn

	return func() {
		if m := d.observers[id]; m != nil {
			delete(m, token)
			if len(m) == 0 {
				delete(d.observers, id)
			}
		}
	}
}

func (d *Desktop) notify(id ID) {
	m := d.observers[id]
	delete(d.observers, id)
	for _, fn := range m {
		fn()
	}
}

// AddMenu registers a menu window. Menus are sticky and live on LayerMenu.
func (d *Desktop) AddMenu(w WindowID, r geom.Rect) *Object {
	o := &Object{
		id:        d.newID(),
		kind:      KindMenu,
		window:    w,
		geometry:  r,
		workspace: d.workspaces.Active(),
		layer:     LayerMenu,
		flags:     FlagSticky | FlagFocusable,
	}
	d.register(o, true)
	d.mapObject(o)
	return o
}

// RemoveMenu unregisters a menu created by AddMenu.
func (d *Desktop) RemoveMenu(o *Object) bool {
	if !d.registered(o) || o.kind != KindMenu {
		return false
	}
	wasFocused := d.focused == o
	d.unregister(o)
	d.display.Unmap(o.window)
	if wasFocused {
		d.focus.FindWOAndFocus(nil)
	}
	return true
}

func (d *Desktop) mapObject(o *Object) {
	if o.IsMapped() {
		return
	}
	o.setFlag(FlagMapped, true)
	d.display.Map(o.window)
}

func (d *Desktop) unmapObject(o *Object) {
	if !o.IsMapped() {
		return
	}
	o.setFlag(FlagMapped, false)
	d.display.Unmap(o.window)
}

// visible reports whether o belongs on screen right now.
func (d *Desktop) visible(o *Object) bool {
	if o.IsIconified() || o.IsHidden() {
		return false
	}
	return o.IsSticky() || o.workspace == d.workspaces.Active()
}

// Focus gives input focus to o. Only registered, mapped, focusable objects
// and the root can take focus.
func (d *Desktop) Focus(o *Object) bool {
	if o != d.root && !d.canFocus(o) {
		return false
	}

	if prev := d.focused; prev != nil && prev != o {
		prev.setFlag(FlagFocused, false)
		if f, ok := prev.Frame(); ok {
			d.decorate(f)
		}
	}
	o.setFlag(FlagFocused, true)
	d.focused = o

	win, active := None, None
	switch o.kind {
	case KindFrame:
		f := o.frame
		win, active = f.active.window, f.active.window
		f.active.state &^= StateDemandsAttention
		d.workspaces.AddToMRUFront(f)
		d.workspaces.setLastFocused(o)
		d.decorate(f)
		d.publishState(f.active)
	case KindMenu:
		win = o.window
	case KindRoot:
	}

	d.display.Focus(win)
	d.display.PublishActive(active)
	bus.Publish(d.bus, FocusChanged{ID: o.id, Window: win, Kind: o.kind})

	return true
}

func (d *Desktop) canFocus(o *Object) bool {
	if !d.registered(o) || !o.IsMapped() || !o.IsFocusable() {
		return false
	}
	if f, ok := o.Frame(); ok {
		return f.active != nil
	}
	return true
}

func (d *Desktop) decorate(f *Frame) {
	if f != nil && d.registered(f.Object) {
		d.decor.Decorate(f)
	}
}

// Heads returns the current heads.
func (d *Desktop) Heads() []geom.Head {
	return slices.Clone(d.heads)
}

// Screen is the bounding box of all heads.
func (d *Desktop) Screen() geom.Rect {
	return geom.Bounds(d.headRects)
}

// HeadFor returns the head r belongs to.
func (d *Desktop) HeadFor(r geom.Rect) geom.Head {
	return d.heads[geom.HeadFor(d.heads, r)]
}

// SetHeads replaces the display areas and pulls every frame back on screen.
func (d *Desktop) SetHeads(rects []geom.Rect) {
	if len(rects) == 0 {
		return
	}
	d.setHeads(rects)

	for _, f := range d.frames {
		if f.fullscreen {
			f.apply(d.HeadFor(f.geometry).Rect)
			continue
		}
		f.FixGeometry()
	}
	d.log.Debug("Heads updated", "count", len(rects))
}

func (d *Desktop) setHeads(rects []geom.Rect) {
	d.headRects = slices.Clone(rects)
	d.recomputeHeads()
}

func (d *Desktop) recomputeHeads() {
	var total geom.Strut
	for _, s := range d.struts {
		total = total.Add(s)
	}
	d.heads = geom.NewHeads(d.headRects, total)
}

func (d *Desktop) setStrut(id ID, s geom.Strut) {
	if s.IsZero() {
		if _, ok := d.struts[id]; !ok {
			return
		}
		delete(d.struts, id)
	} else {
		d.struts[id] = s
	}
	d.recomputeHeads()
}

// SetStrut updates the space reserved by client c.
func (d *Desktop) SetStrut(c *Client, s geom.Strut) bool {
	if d.clients[c.id] != c {
		return false
	}
	c.strut = s
	d.setStrut(c.id, s)
	return true
}

// publishStacking re-publishes the stacking order after a change.
func (d *Desktop) publishStacking() {
	objects := make([]ObjectInfo, 0, len(d.stacking.order))
	var clients []WindowID
	for _, o := range d.stacking.order {
		objects = append(objects, o.Info())
		if f, ok := o.Frame(); ok {
			for _, c := range f.clients {
				if c != f.active {
					clients = append(clients, c.window)
				}
			}
			if f.active != nil {
				clients = append(clients, f.active.window)
			}
		}
	}

	d.display.PublishStacking(clients)
	bus.Publish(d.bus, StackingChanged{Objects: objects})
}

func (d *Desktop) publishClientList() {
	clients := make([]WindowID, 0, len(d.managed))
	for _, c := range d.managed {
		clients = append(clients, c.window)
	}
	d.display.PublishClientList(clients)
}

func (d *Desktop) publishDesktops() {
	w := d.workspaces
	names := w.Names()
	d.display.PublishDesktops(w.active, names)
	bus.Publish(d.bus, WorkspaceChanged{
		Active:   w.active,
		Previous: w.previous,
		Names:    names,
		PerRow:   w.perRow,
	})
}

func (d *Desktop) publishState(c *Client) {
	if c == nil {
		return
	}
	d.display.PublishClientState(c.window, c.State())
}

// Snapshot returns the stacking order as copies, bottom to top.
func (d *Desktop) Snapshot() []ObjectInfo {
	out := make([]ObjectInfo, 0, len(d.stacking.order))
	for _, o := range d.stacking.order {
		out = append(out, o.Info())
	}
	return out
}

// Publish re-sends every output, used after start-up and reloads.
func (d *Desktop) Publish() {
	d.publishDesktops()
	d.publishClientList()
	d.publishStacking()
	active := None
	if f := d.FocusedFrame(); f != nil && f.active != nil {
		active = f.active.window
	}
	d.display.PublishActive(active)
}
