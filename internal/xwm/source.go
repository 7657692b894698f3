package xwm

import (
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb/xproto"
)

// source reads the properties of a window that is about to be managed.
type source struct {
	x *X
	w xproto.Window
}

var _ wm.ClientSource = source{}

func (x *X) Source(w wm.WindowID) wm.ClientSource {
	return source{x: x, w: xproto.Window(w)}
}

func (s source) Window() wm.WindowID {
	return wm.WindowID(s.w)
}

func (s source) Geometry() (geom.Rect, error) {
	reply, err := xproto.GetGeometry(s.x.conn, xproto.Drawable(s.w)).Reply()
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.R(int(reply.X), int(reply.Y), int(reply.Width), int(reply.Height)), nil
}

func (s source) SizeHints() (wm.SizeHints, error) {
	values, err := s.x.getUint32s(s.w, xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 18)
	if err != nil {
		return wm.SizeHints{}, err
	}
	if values == nil {
		return wm.SizeHints{Gravity: wm.GravityNorthWest}, nil
	}
	return DecodeSizeHints(values), nil
}

func (s source) TransientFor() (wm.WindowID, error) {
	values, err := s.x.getUint32s(s.w, xproto.AtomWmTransientFor, xproto.AtomWindow, 1)
	if err != nil || len(values) == 0 {
		return wm.None, err
	}
	if xproto.Window(values[0]) == s.w {
		return wm.None, nil
	}
	return wm.WindowID(values[0]), nil
}

// WindowType falls back to dialog for transients and normal otherwise.
func (s source) WindowType() (wm.WindowType, error) {
	list, err := s.x.getAtoms(s.w, s.x.atoms.Get(atomWindowType))
	if err != nil {
		return wm.TypeNormal, err
	}
	if typ, ok := DecodeWindowType(s.x.atoms, list); ok {
		return typ, nil
	}

	owner, err := s.TransientFor()
	if err != nil {
		return wm.TypeNormal, err
	}
	if owner != wm.None {
		return wm.TypeDialog, nil
	}
	return wm.TypeNormal, nil
}

func (s source) State() (wm.State, error) {
	list, err := s.x.getAtoms(s.w, s.x.atoms.Get(atomState))
	if err != nil {
		return 0, err
	}
	return DecodeState(s.x.atoms, list), nil
}

func (s source) Workspace() (int, bool, bool, error) {
	values, err := s.x.getUint32s(s.w, s.x.atoms.Get(atomWMDesktop), xproto.AtomCardinal, 1)
	if err != nil {
		return 0, false, false, err
	}
	n, sticky, ok := DecodeDesktop(values)
	return n, sticky, ok, nil
}

// Strut prefers _NET_WM_STRUT_PARTIAL over _NET_WM_STRUT.
func (s source) Strut() (geom.Strut, error) {
	for _, name := range []string{atomStrutPartial, atomStrut} {
		values, err := s.x.getUint32s(s.w, s.x.atoms.Get(name), xproto.AtomCardinal, 12)
		if err != nil {
			return geom.Strut{}, err
		}
		if len(values) >= 4 {
			return DecodeStrut(values), nil
		}
	}
	return geom.Strut{}, nil
}
