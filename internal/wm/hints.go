package wm

// HintFlags mirrors the ICCCM WM_NORMAL_HINTS flag word.
type HintFlags uint32

const (
	HintUSPosition HintFlags = 1 << iota
	HintUSSize
	HintPPosition
	HintPSize
	HintPMinSize
	HintPMaxSize
	HintPResizeInc
	HintPAspect
	HintPBaseSize
	HintPWinGravity
)

type Gravity int

const (
	GravityForget Gravity = iota
	GravityNorthWest
	GravityNorth
	GravityNorthEast
	GravityWest
	GravityCenter
	GravityEast
	GravitySouthWest
	GravitySouth
	GravitySouthEast
	GravityStatic
)

// Aspect is a width:height ratio.
type Aspect struct {
	Num int
	Den int
}

func (a Aspect) valid() bool { return a.Num > 0 && a.Den > 0 }

// SizeHints are the client's size constraints, in content (client) pixels.
type SizeHints struct {
	Flags     HintFlags
	MinW      int
	MinH      int
	MaxW      int
	MaxH      int
	IncW      int
	IncH      int
	BaseW     int
	BaseH     int
	MinAspect Aspect
	MaxAspect Aspect
	Gravity   Gravity
}

func (h SizeHints) Has(f HintFlags) bool { return h.Flags&f != 0 }

// base returns the size increments are counted from. ICCCM falls back to
// the minimum size when no base size is given.
func (h SizeHints) base() (int, int) {
	switch {
	case h.Has(HintPBaseSize):
		return h.BaseW, h.BaseH
	case h.Has(HintPMinSize):
		return h.MinW, h.MinH
	default:
		return 0, 0
	}
}

func (h SizeHints) min() (int, int) {
	w, hh := 1, 1
	switch {
	case h.Has(HintPMinSize):
		w, hh = h.MinW, h.MinH
	case h.Has(HintPBaseSize):
		w, hh = h.BaseW, h.BaseH
	}
	return max(w, 1), max(hh, 1)
}

// Clamp forces w, h into the min/max range.
func (h SizeHints) Clamp(w, hh int) (int, int) {
	minW, minH := h.min()
	w, hh = max(w, minW), max(hh, minH)
	if h.Has(HintPMaxSize) {
		if h.MaxW > 0 {
			w = min(w, h.MaxW)
		}
		if h.MaxH > 0 {
			hh = min(hh, h.MaxH)
		}
	}
	return w, hh
}

// DownSize reduces w, h to the largest size not above them that is a whole
// number of resize increments from the base size.
func (h SizeHints) DownSize(w, hh int) (int, int) {
	if !h.Has(HintPResizeInc) {
		return w, hh
	}
	bw, bh := h.base()
	if h.IncW > 1 && w > bw {
		w -= (w - bw) % h.IncW
	}
	if h.IncH > 1 && hh > bh {
		hh -= (hh - bh) % h.IncH
	}
	return w, hh
}

// ApplyAspect shrinks one dimension so that w/h lies within the aspect
// bounds.
func (h SizeHints) ApplyAspect(w, hh int) (int, int) {
	if !h.Has(HintPAspect) || hh <= 0 {
		return w, hh
	}
	if a := h.MinAspect; a.valid() && w*a.Den < a.Num*hh {
		hh = w * a.Den / a.Num
	}
	if a := h.MaxAspect; a.valid() && w*a.Den > a.Num*hh {
		w = hh * a.Num / a.Den
	}
	return w, hh
}

// Constrain applies every size rule. Increment rounding runs last so the
// result stays conformant; it never rounds below the minimum.
func (h SizeHints) Constrain(w, hh int) (int, int) {
	w, hh = h.Clamp(w, hh)
	w, hh = h.ApplyAspect(w, hh)
	w, hh = h.Clamp(w, hh)

	dw, dh := h.DownSize(w, hh)
	minW, minH := h.min()
	if dw >= minW {
		w = dw
	}
	if dh >= minH {
		hh = dh
	}
	return w, hh
}

// WindowType is the client's declared role.
type WindowType int

const (
	TypeNormal WindowType = iota
	TypeDesktop
	TypeDock
	TypeToolbar
	TypeMenu
	TypeUtility
	TypeSplash
	TypeDialog
	TypeNotification
)

func (t WindowType) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeDesktop:
		return "desktop"
	case TypeDock:
		return "dock"
	case TypeToolbar:
		return "toolbar"
	case TypeMenu:
		return "menu"
	case TypeUtility:
		return "utility"
	case TypeSplash:
		return "splash"
	case TypeDialog:
		return "dialog"
	case TypeNotification:
		return "notification"
	default:
		return "unknown"
	}
}

// focusCandidate lists the types the focus fallback may pick.
func (t WindowType) focusCandidate() bool {
	switch t {
	case TypeDesktop, TypeUtility, TypeDialog, TypeNormal:
		return true
	default:
		return false
	}
}

// State is the requested-state vocabulary a client may add, remove or
// toggle.
type State uint32

const (
	StateSticky State = 1 << iota
	StateMaximizedHorz
	StateMaximizedVert
	StateShaded
	StateHidden
	StateFullscreen
	StateAbove
	StateBelow
	StateSkipTaskbar
	StateSkipPager
	StateDemandsAttention
)

func (s State) Has(f State) bool { return s&f != 0 }

// Deny lets policy refuse specific client requests.
type Deny uint32

const (
	DenyMove Deny = 1 << iota
	DenyResize
	DenyStacking
	DenyMaximizeHorz
	DenyMaximizeVert
	DenyFullscreen
	DenyShade
	DenySticky
	DenyHidden
	DenyAbove
	DenyBelow
	DenyWorkspace
	DenyActivate
)

func (d Deny) Has(f Deny) bool { return d&f != 0 }

type Action int

const (
	ActionSet Action = iota
	ActionUnset
	ActionToggle
)

// resolve turns an action into the wanted boolean given the current value.
func (a Action) resolve(current bool) bool {
	switch a {
	case ActionSet:
		return true
	case ActionUnset:
		return false
	default:
		return !current
	}
}
