package xwm

import (
	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// allDesktops is the _NET_WM_DESKTOP value meaning every workspace.
const allDesktops = 0xFFFFFFFF

func getUint32s(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = xgb.Get32(data[i*4:])
	}
	return out
}

func putUint32s(values []uint32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}

func getAtoms(data []byte) []xproto.Atom {
	values := getUint32s(data)
	out := make([]xproto.Atom, len(values))
	for i, v := range values {
		out[i] = xproto.Atom(v)
	}
	return out
}

func putAtoms(atoms []xproto.Atom) []byte {
	values := make([]uint32, len(atoms))
	for i, a := range atoms {
		values[i] = uint32(a)
	}
	return putUint32s(values)
}

// DecodeSizeHints decodes the 18 word WM_NORMAL_HINTS property. Fields whose
// flag is unset are left zero.
func DecodeSizeHints(v []uint32) wm.SizeHints {
	if len(v) < 18 {
		v = append(v, make([]uint32, 18-len(v))...)
	}

	h := wm.SizeHints{
		Flags:   wm.HintFlags(v[0]),
		Gravity: wm.GravityNorthWest,
	}
	if h.Has(wm.HintPMinSize) {
		h.MinW, h.MinH = int(int32(v[5])), int(int32(v[6]))
	}
	if h.Has(wm.HintPMaxSize) {
		h.MaxW, h.MaxH = int(int32(v[7])), int(int32(v[8]))
	}
	if h.Has(wm.HintPResizeInc) {
		h.IncW, h.IncH = int(int32(v[9])), int(int32(v[10]))
	}
	if h.Has(wm.HintPAspect) {
		h.MinAspect = wm.Aspect{Num: int(int32(v[11])), Den: int(int32(v[12]))}
		h.MaxAspect = wm.Aspect{Num: int(int32(v[13])), Den: int(int32(v[14]))}
	}
	if h.Has(wm.HintPBaseSize) {
		h.BaseW, h.BaseH = int(int32(v[15])), int(int32(v[16]))
	}
	if h.Has(wm.HintPWinGravity) && v[17] <= uint32(wm.GravityStatic) {
		h.Gravity = wm.Gravity(v[17])
	}

	return h
}

var windowTypes = []struct {
	name string
	typ  wm.WindowType
}{
	{atomWindowTypeDesktop, wm.TypeDesktop},
	{atomWindowTypeDock, wm.TypeDock},
	{atomWindowTypeToolbar, wm.TypeToolbar},
	{atomWindowTypeMenu, wm.TypeMenu},
	{atomWindowTypeUtility, wm.TypeUtility},
	{atomWindowTypeSplash, wm.TypeSplash},
	{atomWindowTypeDialog, wm.TypeDialog},
	{atomWindowTypeNotification, wm.TypeNotification},
	{atomWindowTypeNormal, wm.TypeNormal},
}

// DecodeWindowType returns the first type in the list that is understood.
func DecodeWindowType(atoms Atoms, list []xproto.Atom) (wm.WindowType, bool) {
	for _, atom := range list {
		name := atoms.Name(atom)
		for _, t := range windowTypes {
			if t.name == name {
				return t.typ, true
			}
		}
	}
	return wm.TypeNormal, false
}

var states = []struct {
	name  string
	state wm.State
}{
	{atomStateSticky, wm.StateSticky},
	{atomStateMaximizedHorz, wm.StateMaximizedHorz},
	{atomStateMaximizedVert, wm.StateMaximizedVert},
	{atomStateShaded, wm.StateShaded},
	{atomStateHidden, wm.StateHidden},
	{atomStateFullscreen, wm.StateFullscreen},
	{atomStateAbove, wm.StateAbove},
	{atomStateBelow, wm.StateBelow},
	{atomStateSkipTaskbar, wm.StateSkipTaskbar},
	{atomStateSkipPager, wm.StateSkipPager},
	{atomStateDemandsAttention, wm.StateDemandsAttention},
}

func DecodeState(atoms Atoms, list []xproto.Atom) wm.State {
	var s wm.State
	for _, atom := range list {
		name := atoms.Name(atom)
		for _, st := range states {
			if st.name == name {
				s |= st.state
			}
		}
	}
	return s
}

func EncodeState(atoms Atoms, s wm.State) []xproto.Atom {
	var out []xproto.Atom
	for _, st := range states {
		if s.Has(st.state) {
			out = append(out, atoms.Get(st.name))
		}
	}
	return out
}

// DecodeStrut reads the first four words of _NET_WM_STRUT or
// _NET_WM_STRUT_PARTIAL.
func DecodeStrut(v []uint32) geom.Strut {
	if len(v) < 4 {
		return geom.Strut{}
	}
	return geom.Strut{
		Left:   int(v[0]),
		Right:  int(v[1]),
		Top:    int(v[2]),
		Bottom: int(v[3]),
	}
}

// DecodeDesktop reads _NET_WM_DESKTOP.
func DecodeDesktop(v []uint32) (n int, sticky bool, ok bool) {
	if len(v) == 0 {
		return 0, false, false
	}
	if v[0] == allDesktops {
		return 0, true, true
	}
	return int(v[0]), false, true
}

// DecodeAction maps the _NET_WM_STATE client message action.
func DecodeAction(v uint32) (wm.Action, bool) {
	switch v {
	case 0:
		return wm.ActionUnset, true
	case 1:
		return wm.ActionSet, true
	case 2:
		return wm.ActionToggle, true
	default:
		return 0, false
	}
}

// DecodeStackMode maps an X stack mode onto a stacking detail.
func DecodeStackMode(mode byte) wm.StackDetail {
	switch mode {
	case xproto.StackModeBelow:
		return wm.StackBelow
	case xproto.StackModeTopIf:
		return wm.StackTopIf
	case xproto.StackModeBottomIf:
		return wm.StackBottomIf
	case xproto.StackModeOpposite:
		return wm.StackOpposite
	default:
		return wm.StackAbove
	}
}
