package wm

import (
	"slices"
	"strconv"
)

// Direction picks the target of GotoWorkspace. Non-negative values are
// absolute workspace indexes, see Absolute.
type Direction int

const (
	DirectionLeft Direction = -(iota + 1)
	DirectionRight
	DirectionUp
	DirectionDown
	DirectionPrev
	DirectionNext
	DirectionPrevV
	DirectionNextV
	DirectionLast
)

// Absolute addresses workspace n directly.
func Absolute(n int) Direction {
	return Direction(n)
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionPrev:
		return "prev"
	case DirectionNext:
		return "next"
	case DirectionPrevV:
		return "prev-v"
	case DirectionNextV:
		return "next-v"
	case DirectionLast:
		return "last"
	default:
		return strconv.Itoa(int(d))
	}
}

type Workspace struct {
	Name string

	lastFocused ID
}

// Workspaces is the grid of workspaces, perRow wide, plus the MRU list of
// frames.
type Workspaces struct {
	d        *Desktop
	list     []*Workspace
	active   int
	previous int
	perRow   int
	mru      []*Frame
}

func newWorkspaces(d *Desktop, names []string, perRow int) *Workspaces {
	w := &Workspaces{d: d}
	if len(names) == 0 {
		names = []string{"1"}
	}
	for _, name := range names {
		w.list = append(w.list, &Workspace{Name: name})
	}
	w.perRow = w.clampPerRow(perRow)
	return w
}

func (w *Workspaces) clampPerRow(perRow int) int {
	return min(max(perRow, 1), len(w.list))
}

func (w *Workspaces) Len() int { return len(w.list) }
func (w *Workspaces) Active() int { return w.active }
func (w *Workspaces) Previous() int { return w.previous }
func (w *Workspaces) PerRow() int { return w.perRow }

func (w *Workspaces) Names() []string {
	names := make([]string, 0, len(w.list))
	for _, ws := range w.list {
		names = append(names, ws.Name)
	}
	return names
}

// Get returns workspace n or nil.
func (w *Workspaces) Get(n int) *Workspace {
	if n < 0 || n >= len(w.list) {
		return nil
	}
	return w.list[n]
}

// LastFocused returns the object last focused on workspace n, if it is still
// registered, mapped, focusable and on that workspace.
func (w *Workspaces) LastFocused(n int) *Object {
	ws := w.Get(n)
	if ws == nil {
		return nil
	}
	o := w.d.objects[ws.lastFocused]
	if o == nil || !w.d.canFocus(o) {
		return nil
	}
	if !o.IsSticky() && o.workspace != n {
		return nil
	}
	return o
}

func (w *Workspaces) setLastFocused(o *Object) {
	n := o.workspace
	if o.IsSticky() {
		n = w.active
	}
	if ws := w.Get(n); ws != nil {
		ws.lastFocused = o.id
	}
}

func (w *Workspaces) clearLastFocused(id ID) {
	for _, ws := range w.list {
		if ws.lastFocused == id {
			ws.lastFocused = 0
		}
	}
}

// SetWorkspace makes n the active workspace. Switching to the active
// workspace goes back to the previous one when backAndForth is set.
func (w *Workspaces) SetWorkspace(n int, focus, backAndForth bool) bool {
	if n == w.active {
		if !backAndForth || w.previous == w.active {
			return false
		}
		n = w.previous
	}
	if n < 0 || n >= len(w.list) {
		return false
	}

	d := w.d
	old := w.active

	d.display.GrabServer()
	for _, o := range d.stacking.order {
		if o.workspace == old && !o.IsSticky() {
			d.unmapObject(o)
		}
	}
	w.previous, w.active = old, n
	for _, o := range d.stacking.order {
		if o.IsSticky() {
			o.workspace = n
			continue
		}
		if o.workspace == n && !o.IsIconified() && !o.IsHidden() {
			d.mapObject(o)
		}
	}
	d.display.UngrabServer()

	d.log.Debug("Workspace switched", "from", old, "to", n)
	d.publishDesktops()

	if focus {
		d.focus.FindWOAndFocus(w.LastFocused(n))
	} else {
		d.Focus(d.root)
	}

	return true
}

// GotoWorkspace moves through the grid. With warp the pointer is moved to
// the screen edge opposite the direction of travel.
func (w *Workspaces) GotoWorkspace(dir Direction, focus, warp bool) bool {
	n, ok := w.resolve(dir)
	if !ok || n == w.active {
		return false
	}
	if !w.SetWorkspace(n, focus, false) {
		return false
	}
	if warp {
		w.warp(dir)
	}
	return true
}

// resolve maps a direction to a workspace index.
func (w *Workspaces) resolve(dir Direction) (int, bool) {
	count, cur, per := len(w.list), w.active, w.perRow
	wrap := w.d.policy.WorkspaceWrap
	rowStart := cur / per * per
	rowEnd := min(rowStart+per, count) - 1

	switch dir {
	case DirectionLeft:
		if cur > rowStart {
			return cur - 1, true
		}
		return rowEnd, wrap
	case DirectionRight:
		if cur < rowEnd {
			return cur + 1, true
		}
		return rowStart, wrap
	case DirectionUp:
		return w.up(cur, wrap)
	case DirectionDown:
		return w.down(cur, wrap)
	case DirectionNextV:
		return w.up(cur, true)
	case DirectionPrevV:
		return w.down(cur, true)
	case DirectionPrev:
		if cur > 0 {
			return cur - 1, true
		}
		return count - 1, wrap
	case DirectionNext:
		if cur+1 < count {
			return cur + 1, true
		}
		return 0, wrap
	case DirectionLast:
		return w.previous, true
	}

	n := int(dir)
	return n, n >= 0 && n < count
}

// up moves one row forward in the grid, wrapping to the first row.
func (w *Workspaces) up(cur int, wrap bool) (int, bool) {
	if n := cur + w.perRow; n < len(w.list) {
		return n, true
	}
	return cur % w.perRow, wrap
}

// down moves one row back in the grid, wrapping to the last row that has the
// same column.
func (w *Workspaces) down(cur int, wrap bool) (int, bool) {
	if n := cur - w.perRow; n >= 0 {
		return n, true
	}
	n := cur % w.perRow
	for n+w.perRow < len(w.list) {
		n += w.perRow
	}
	return n, wrap
}

func (w *Workspaces) warp(dir Direction) {
	x, y, ok := w.d.display.QueryPointer()
	if !ok {
		return
	}
	screen := w.d.Screen()
	edge := max(w.d.policy.EdgeWarp, 1)

	switch dir {
	case DirectionLeft, DirectionPrev:
		x = screen.Right() - edge - 1
	case DirectionRight, DirectionNext:
		x = screen.X + edge
	case DirectionUp, DirectionNextV:
		y = screen.Bottom() - edge - 1
	case DirectionDown, DirectionPrevV:
		y = screen.Y + edge
	default:
		return
	}
	w.d.display.WarpPointer(x, y)
}

// SendTo moves o to workspace n, hiding it if n is not active.
func (w *Workspaces) SendTo(o *Object, n int) bool {
	d := w.d
	if !d.registered(o) || o.kind == KindRoot || n < 0 || n >= len(w.list) {
		return false
	}
	if f, ok := o.Frame(); ok && f.active != nil && (f.active.deny|d.policy.Deny).Has(DenyWorkspace) {
		return false
	}
	if o.workspace == n && !o.IsSticky() {
		return false
	}

	wasFocused := d.focused == o
	o.setFlag(FlagSticky, false)
	o.workspace = n
	w.clearLastFocused(o.id)

	if d.visible(o) {
		d.mapObject(o)
	} else {
		d.unmapObject(o)
	}
	if f, ok := o.Frame(); ok {
		for _, c := range f.clients {
			d.display.PublishClientDesktop(c.window, n, false)
		}
		d.publishState(f.active)
	}
	if wasFocused && !o.IsMapped() {
		d.focus.FindWOAndFocus(nil)
	}

	return true
}

// SetLayout renames and resizes the grid. Objects on removed workspaces move
// to the new last one.
func (w *Workspaces) SetLayout(names []string, perRow int) {
	w.setLayout(names, perRow)
}

func (w *Workspaces) setLayout(names []string, perRow int) {
	if len(names) == 0 {
		names = []string{"1"}
	}
	for i, name := range names {
		if i < len(w.list) {
			w.list[i].Name = name
		} else {
			w.list = append(w.list, &Workspace{Name: name})
		}
	}
	w.list = w.list[:len(names)]
	w.perRow = w.clampPerRow(perRow)

	last := len(w.list) - 1
	for _, o := range w.d.stacking.order {
		if o.workspace > last {
			o.workspace = last
			if f, ok := o.Frame(); ok {
				for _, c := range f.clients {
					w.d.display.PublishClientDesktop(c.window, last, o.IsSticky())
				}
			}
			if w.d.visible(o) {
				w.d.mapObject(o)
			}
		}
	}
	w.previous = min(w.previous, last)
	if w.active > last && w.SetWorkspace(last, true, false) {
		return
	}
	w.d.publishDesktops()
}

// AddWorkspace appends a workspace.
func (w *Workspaces) AddWorkspace(name string) int {
	w.setLayout(append(w.Names(), name), w.perRow)
	return len(w.list) - 1
}

// RemoveWorkspace drops the last workspace. The last remaining one cannot be
// removed.
func (w *Workspaces) RemoveWorkspace() bool {
	if len(w.list) == 1 {
		return false
	}
	names := w.Names()
	w.setLayout(names[:len(names)-1], w.perRow)
	return true
}

// MRU returns the frames most recently focused first.
func (w *Workspaces) MRU() []*Frame {
	return slices.Clone(w.mru)
}

func (w *Workspaces) AddToMRUFront(f *Frame) {
	w.RemoveFromMRU(f)
	w.mru = slices.Insert(w.mru, 0, f)
}

func (w *Workspaces) AddToMRUBack(f *Frame) {
	w.RemoveFromMRU(f)
	w.mru = append(w.mru, f)
}

func (w *Workspaces) RemoveFromMRU(f *Frame) {
	w.mru = slices.DeleteFunc(w.mru, func(x *Frame) bool { return x == f })
}
