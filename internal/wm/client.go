package wm

import (
	"errors"
	"fmt"

	"github.com/ItsNotGoodName/x-stackwm/internal/geom"
)

var (
	ErrWindowGone     = errors.New("window gone")
	ErrAlreadyManaged = errors.New("window already managed")
)

// Client is an application window held by a frame.
type Client struct {
	id       ID
	window   WindowID
	frame    *Frame
	geometry geom.Rect
	hints    SizeHints
	typ      WindowType
	deny     Deny
	state    State
	strut    geom.Strut

	transientFor WindowID
	request      struct {
		geometry  geom.Rect
		workspace int
		sticky    bool
		ok        bool
	}
}

// NewClient reads everything the engine needs from src. It fails without
// side effects when the window vanished while being read.
func NewClient(src ClientSource) (*Client, error) {
	g, err := src.Geometry()
	if err != nil {
		return nil, fmt.Errorf("%w: geometry: %w", ErrWindowGone, err)
	}
	hints, err := src.SizeHints()
	if err != nil {
		return nil, fmt.Errorf("%w: size hints: %w", ErrWindowGone, err)
	}
	transientFor, err := src.TransientFor()
	if err != nil {
		return nil, fmt.Errorf("%w: transient for: %w", ErrWindowGone, err)
	}
	typ, err := src.WindowType()
	if err != nil {
		return nil, fmt.Errorf("%w: window type: %w", ErrWindowGone, err)
	}
	state, err := src.State()
	if err != nil {
		return nil, fmt.Errorf("%w: state: %w", ErrWindowGone, err)
	}
	ws, sticky, ok, err := src.Workspace()
	if err != nil {
		return nil, fmt.Errorf("%w: workspace: %w", ErrWindowGone, err)
	}
	strut, err := src.Strut()
	if err != nil {
		return nil, fmt.Errorf("%w: strut: %w", ErrWindowGone, err)
	}

	c := &Client{
		window:       src.Window(),
		geometry:     g,
		hints:        hints,
		typ:          typ,
		state:        state,
		strut:        strut,
		transientFor: transientFor,
	}
	c.request.geometry = g
	c.request.workspace, c.request.sticky, c.request.ok = ws, sticky, ok

	return c, nil
}

func (c *Client) ID() ID { return c.id }
func (c *Client) Window() WindowID { return c.window }
func (c *Client) Frame() *Frame { return c.frame }
func (c *Client) Geometry() geom.Rect { return c.geometry }
func (c *Client) Hints() SizeHints { return c.hints }
func (c *Client) Type() WindowType { return c.typ }
func (c *Client) Deny() Deny { return c.deny }
func (c *Client) Strut() geom.Strut { return c.strut }
func (c *Client) TransientFor() WindowID { return c.transientFor }
func (c *Client) SkipTaskbar() bool { return c.state.Has(StateSkipTaskbar) }
func (c *Client) SkipPager() bool { return c.state.Has(StateSkipPager) }
func (c *Client) DemandsAttention() bool { return c.state.Has(StateDemandsAttention) }
func (c *Client) SetDeny(deny Deny) { c.deny = deny }

// SetHints replaces the size hints and re-fits the frame to them.
func (c *Client) SetHints(h SizeHints) {
	c.hints = h
	f := c.frame
	if f == nil || f.active != c || f.fullscreen || f.shaded {
		return
	}
	content := f.ContentArea()
	w, hh := h.Constrain(content.W, content.H)
	content.W, content.H = w, hh
	f.apply(f.outer(content))
	f.FixGeometry()
}

// State is the client's state as published to other clients. Most of it
// belongs to the frame.
func (c *Client) State() State {
	s := c.state & (StateSkipTaskbar | StateSkipPager | StateDemandsAttention)
	f := c.frame
	if f == nil {
		return s
	}
	if f.IsSticky() {
		s |= StateSticky
	}
	if f.maxHorz {
		s |= StateMaximizedHorz
	}
	if f.maxVert {
		s |= StateMaximizedVert
	}
	if f.shaded {
		s |= StateShaded
	}
	if f.IsIconified() || f.IsHidden() {
		s |= StateHidden
	}
	if f.fullscreen {
		s |= StateFullscreen
	}
	layer := f.layer
	if f.fullscreen {
		layer = f.fsSaved.layer
	}
	if f.demoted {
		layer = f.demotedFrom
	}
	switch layer {
	case LayerOnTop:
		s |= StateAbove
	case LayerBelow:
		s |= StateBelow
	}
	return s
}
