package xwm

import (
	"fmt"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	atomUTF8String = "UTF8_STRING"
	atomWMState    = "WM_STATE"
	atomWMProtos   = "WM_PROTOCOLS"
	atomWMDelete   = "WM_DELETE_WINDOW"
	atomWMChange   = "WM_CHANGE_STATE"

	atomSupported       = "_NET_SUPPORTED"
	atomSupportingCheck = "_NET_SUPPORTING_WM_CHECK"
	atomWMName          = "_NET_WM_NAME"
	atomClientList      = "_NET_CLIENT_LIST"
	atomClientStacking  = "_NET_CLIENT_LIST_STACKING"
	atomActiveWindow    = "_NET_ACTIVE_WINDOW"
	atomNumberDesktops  = "_NET_NUMBER_OF_DESKTOPS"
	atomCurrentDesktop  = "_NET_CURRENT_DESKTOP"
	atomDesktopNames    = "_NET_DESKTOP_NAMES"
	atomWMDesktop       = "_NET_WM_DESKTOP"
	atomFrameExtents    = "_NET_FRAME_EXTENTS"
	atomStrut           = "_NET_WM_STRUT"
	atomStrutPartial    = "_NET_WM_STRUT_PARTIAL"
	atomCloseWindow     = "_NET_CLOSE_WINDOW"

	atomWindowType             = "_NET_WM_WINDOW_TYPE"
	atomWindowTypeDesktop      = "_NET_WM_WINDOW_TYPE_DESKTOP"
	atomWindowTypeDock         = "_NET_WM_WINDOW_TYPE_DOCK"
	atomWindowTypeToolbar      = "_NET_WM_WINDOW_TYPE_TOOLBAR"
	atomWindowTypeMenu         = "_NET_WM_WINDOW_TYPE_MENU"
	atomWindowTypeUtility      = "_NET_WM_WINDOW_TYPE_UTILITY"
	atomWindowTypeSplash       = "_NET_WM_WINDOW_TYPE_SPLASH"
	atomWindowTypeDialog       = "_NET_WM_WINDOW_TYPE_DIALOG"
	atomWindowTypeNotification = "_NET_WM_WINDOW_TYPE_NOTIFICATION"
	atomWindowTypeNormal       = "_NET_WM_WINDOW_TYPE_NORMAL"

	atomState                 = "_NET_WM_STATE"
	atomStateSticky           = "_NET_WM_STATE_STICKY"
	atomStateMaximizedHorz    = "_NET_WM_STATE_MAXIMIZED_HORZ"
	atomStateMaximizedVert    = "_NET_WM_STATE_MAXIMIZED_VERT"
	atomStateShaded           = "_NET_WM_STATE_SHADED"
	atomStateHidden           = "_NET_WM_STATE_HIDDEN"
	atomStateFullscreen       = "_NET_WM_STATE_FULLSCREEN"
	atomStateAbove            = "_NET_WM_STATE_ABOVE"
	atomStateBelow            = "_NET_WM_STATE_BELOW"
	atomStateSkipTaskbar      = "_NET_WM_STATE_SKIP_TASKBAR"
	atomStateSkipPager        = "_NET_WM_STATE_SKIP_PAGER"
	atomStateDemandsAttention = "_NET_WM_STATE_DEMANDS_ATTENTION"
)

var atomNames = []string{
	atomUTF8String, atomWMState, atomWMProtos, atomWMDelete, atomWMChange,
	atomSupported, atomSupportingCheck, atomWMName,
	atomClientList, atomClientStacking, atomActiveWindow,
	atomNumberDesktops, atomCurrentDesktop, atomDesktopNames, atomWMDesktop,
	atomFrameExtents, atomStrut, atomStrutPartial, atomCloseWindow,
	atomWindowType,
	atomWindowTypeDesktop, atomWindowTypeDock, atomWindowTypeToolbar, atomWindowTypeMenu,
	atomWindowTypeUtility, atomWindowTypeSplash, atomWindowTypeDialog,
	atomWindowTypeNotification, atomWindowTypeNormal,
	atomState,
	atomStateSticky, atomStateMaximizedHorz, atomStateMaximizedVert, atomStateShaded,
	atomStateHidden, atomStateFullscreen, atomStateAbove, atomStateBelow,
	atomStateSkipTaskbar, atomStateSkipPager, atomStateDemandsAttention,
}

// Atoms maps atom names to their interned values and back.
type Atoms struct {
	byName map[string]xproto.Atom
	byAtom map[xproto.Atom]string
}

func newAtoms(names map[string]xproto.Atom) Atoms {
	a := Atoms{
		byName: names,
		byAtom: make(map[xproto.Atom]string, len(names)),
	}
	for name, atom := range names {
		a.byAtom[atom] = name
	}
	return a
}

// InternAtoms interns every atom the window manager uses. Requests are sent
// before any reply is read.
func InternAtoms(conn *xgb.Conn) (Atoms, error) {
	cookies := make([]xproto.InternAtomCookie, len(atomNames))
	for i, name := range atomNames {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(name)), name)
	}

	names := make(map[string]xproto.Atom, len(atomNames))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return Atoms{}, fmt.Errorf("intern atom %s: %w", atomNames[i], err)
		}
		names[atomNames[i]] = reply.Atom
	}

	return newAtoms(names), nil
}

func (a Atoms) Get(name string) xproto.Atom {
	return a.byName[name]
}

func (a Atoms) Name(atom xproto.Atom) string {
	return a.byAtom[atom]
}

// Supported lists the atoms advertised in _NET_SUPPORTED.
func (a Atoms) Supported() []xproto.Atom {
	out := make([]xproto.Atom, 0, len(atomNames))
	for _, name := range atomNames {
		if strings.HasPrefix(name, "_NET_") {
			out = append(out, a.byName[name])
		}
	}
	return out
}
