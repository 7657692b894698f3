package xwm

import (
	"strings"

	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb/xproto"
)

func (x *X) setUint32s(w xproto.Window, prop, typ xproto.Atom, values []uint32) {
	xproto.ChangeProperty(x.conn, xproto.PropModeReplace, w, prop, typ, 32, uint32(len(values)), putUint32s(values))
}

func (x *X) setCardinal(w xproto.Window, prop xproto.Atom, v uint32) {
	x.setUint32s(w, prop, xproto.AtomCardinal, []uint32{v})
}

func (x *X) setWindow(w xproto.Window, prop xproto.Atom, windows []xproto.Window) {
	values := make([]uint32, len(windows))
	for i, win := range windows {
		values[i] = uint32(win)
	}
	x.setUint32s(w, prop, xproto.AtomWindow, values)
}

func (x *X) setString(w xproto.Window, prop xproto.Atom, s string) {
	xproto.ChangeProperty(x.conn, xproto.PropModeReplace, w, prop, x.atoms.Get(atomUTF8String), 8, uint32(len(s)), []byte(s))
}

func (x *X) setWMState(w xproto.Window, state uint32) {
	x.setUint32s(w, x.atoms.Get(atomWMState), x.atoms.Get(atomWMState), []uint32{state, 0})
}

// getUint32s reads up to n words of a format 32 property. A missing property
// is not an error and yields nil.
func (x *X) getUint32s(w xproto.Window, prop, typ xproto.Atom, n uint32) ([]uint32, error) {
	reply, err := xproto.GetProperty(x.conn, false, w, prop, typ, 0, n).Reply()
	if err != nil {
		return nil, err
	}
	if reply.Format != 32 {
		return nil, nil
	}
	return getUint32s(reply.Value), nil
}

func (x *X) getAtoms(w xproto.Window, prop xproto.Atom) ([]xproto.Atom, error) {
	reply, err := xproto.GetProperty(x.conn, false, w, prop, xproto.AtomAtom, 0, 64).Reply()
	if err != nil {
		return nil, err
	}
	if reply.Format != 32 {
		return nil, nil
	}
	return getAtoms(reply.Value), nil
}

func windows(ids []wm.WindowID) []xproto.Window {
	out := make([]xproto.Window, len(ids))
	for i, id := range ids {
		out[i] = xproto.Window(id)
	}
	return out
}

func (x *X) PublishClientList(clients []wm.WindowID) {
	x.setWindow(x.root, x.atoms.Get(atomClientList), windows(clients))
}

func (x *X) PublishStacking(clients []wm.WindowID) {
	x.setWindow(x.root, x.atoms.Get(atomClientStacking), windows(clients))
}

func (x *X) PublishActive(client wm.WindowID) {
	x.setWindow(x.root, x.atoms.Get(atomActiveWindow), []xproto.Window{xproto.Window(client)})
}

func (x *X) PublishDesktops(active int, names []string) {
	x.setCardinal(x.root, x.atoms.Get(atomNumberDesktops), uint32(len(names)))
	x.setCardinal(x.root, x.atoms.Get(atomCurrentDesktop), uint32(active))
	x.setString(x.root, x.atoms.Get(atomDesktopNames), strings.Join(names, "\x00")+"\x00")
}

func (x *X) PublishClientDesktop(client wm.WindowID, workspace int, sticky bool) {
	v := uint32(workspace)
	if sticky {
		v = allDesktops
	}
	x.setCardinal(xproto.Window(client), x.atoms.Get(atomWMDesktop), v)
}

func (x *X) PublishClientState(client wm.WindowID, state wm.State) {
	atoms := EncodeState(x.atoms, state)
	xproto.ChangeProperty(x.conn, xproto.PropModeReplace, xproto.Window(client), x.atoms.Get(atomState),
		xproto.AtomAtom, 32, uint32(len(atoms)), putAtoms(atoms))
}

func (x *X) PublishFrameExtents(client wm.WindowID, left, right, top, bottom int) {
	x.setUint32s(xproto.Window(client), x.atoms.Get(atomFrameExtents), xproto.AtomCardinal,
		[]uint32{uint32(left), uint32(right), uint32(top), uint32(bottom)})
}
