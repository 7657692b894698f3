package wm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

// ID identifies a window object or client for its whole lifetime. IDs are
// never reused, so a stale ID simply fails to resolve.
type ID uint64

// WindowID is the display server's handle for a window.
type WindowID uint32

const None WindowID = 0

type Layer int

const (
	LayerDesktop Layer = iota
	LayerBelow
	LayerNormal
	LayerOnTop
	LayerDock
	LayerAboveDock
	LayerMenu
)

var layerNames = [...]string{"desktop", "below", "normal", "ontop", "dock", "abovedock", "menu"}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// ParseLayer is the inverse of Layer.String.
func ParseLayer(s string) (Layer, error) {
	for i, name := range layerNames {
		if name == s {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}

// Kind is the closed set of window object variants.
type Kind int

const (
	KindFrame Kind = iota + 1
	KindMenu
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindMenu:
		return "menu"
	case KindRoot:
		return "root"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Flags uint8

const (
	FlagMapped Flags = 1 << iota
	FlagIconified
	FlagSticky
	FlagFocusable
	FlagFocused
	FlagHidden
)

// Object is anything taking part in stacking and focus.
type Object struct {
	id        ID
	kind      Kind
	window    WindowID
	geometry  geom.Rect
	workspace int
	layer     Layer
	flags     Flags

	// Payload, set when kind == KindFrame.
	frame *Frame
}

func (o *Object) ID() ID { return o.id }
func (o *Object) Kind() Kind { return o.kind }
func (o *Object) Window() WindowID { return o.window }
func (o *Object) Geometry() geom.Rect { return o.geometry }
func (o *Object) Workspace() int { return o.workspace }
func (o *Object) Layer() Layer { return o.layer }
func (o *Object) Has(flag Flags) bool { return o.flags&flag != 0 }
func (o *Object) IsMapped() bool { return o.Has(FlagMapped) }
func (o *Object) IsFocused() bool { return o.Has(FlagFocused) }
func (o *Object) IsFocusable() bool { return o.Has(FlagFocusable) }
func (o *Object) IsSticky() bool { return o.Has(FlagSticky) }
func (o *Object) IsIconified() bool { return o.Has(FlagIconified) }
func (o *Object) IsHidden() bool { return o.Has(FlagHidden) }

func (o *Object) setFlag(f Flags, on bool) {
	if on {
		o.flags |= f
	} else {
		o.flags &^= f
	}
}

// Frame returns the frame payload of a KindFrame object.
func (o *Object) Frame() (*Frame, bool) {
	if o == nil || o.kind != KindFrame {
		return nil, false
	}
	return o.frame, o.frame != nil
}

func (o *Object) String() string {
	return fmt.Sprintf("%s(id=%d, window=%d)", o.kind, o.id, o.window)
}

// ObjectInfo is a copy of an object's public state, safe to hand to other
// goroutines.
type ObjectInfo struct {
	ID        ID        `json:"id"`
	Kind      string    `json:"kind"`
	Window    WindowID  `json:"window"`
	Geometry  geom.Rect `json:"geometry"`
	Workspace int       `json:"workspace"`
	Layer     string    `json:"layer"`
	Mapped    bool      `json:"mapped"`
	Focused   bool      `json:"focused"`
	Sticky    bool      `json:"sticky"`
}

func (o *Object) Info() ObjectInfo {
	return ObjectInfo{
		ID:        o.id,
		Kind:      o.kind.String(),
		Window:    o.window,
		Geometry:  o.geometry,
		Workspace: o.workspace,
		Layer:     o.layer.String(),
		Mapped:    o.IsMapped(),
		Focused:   o.IsFocused(),
		Sticky:    o.IsSticky(),
	}
}
