// Package app turns configuration into engine policy and runs the services.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ItsNotGoodName/x-stackwm/internal/config"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/ItsNotGoodName/x-stackwm/internal/xwm"
	"github.com/ItsNotGoodName/x-stackwm/pkg/sutureext"
	"github.com/thejerf/suture/v4"
)

var denyNames = map[string]wm.Deny{
	"move":          wm.DenyMove,
	"resize":        wm.DenyResize,
	"stacking":      wm.DenyStacking,
	"maximize-horz": wm.DenyMaximizeHorz,
	"maximize-vert": wm.DenyMaximizeVert,
	"fullscreen":    wm.DenyFullscreen,
	"shade":         wm.DenyShade,
	"sticky":        wm.DenySticky,
	"hidden":        wm.DenyHidden,
	"above":         wm.DenyAbove,
	"below":         wm.DenyBelow,
	"workspace":     wm.DenyWorkspace,
	"activate":      wm.DenyActivate,
}

func ParseDeny(names []string) (wm.Deny, error) {
	var deny wm.Deny
	for _, name := range names {
		d, ok := denyNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown deny %q", name)
		}
		deny |= d
	}
	return deny, nil
}

func ParseRaise(s string) (wm.FocusRaise, error) {
	switch s {
	case config.RaiseAlways:
		return wm.FocusRaiseAlways, nil
	case config.RaiseIfCovered:
		return wm.FocusRaiseIfCovered, nil
	case config.RaiseNever:
		return wm.FocusRaiseNever, nil
	default:
		return 0, fmt.Errorf("unknown raise mode %q", s)
	}
}

// Policy converts cfg into engine policy. cfg should be normalized first.
func Policy(cfg config.Config) (wm.Policy, error) {
	raise, err := ParseRaise(cfg.Focus.Raise)
	if err != nil {
		return wm.Policy{}, err
	}

	deny, err := ParseDeny(cfg.Deny)
	if err != nil {
		return wm.Policy{}, err
	}

	names := make([]string, 0, len(cfg.Workspaces))
	for _, ws := range cfg.Workspaces {
		names = append(names, ws.Name)
	}

	return wm.Policy{
		BorderWidth:     cfg.Decor.BorderWidth,
		TitleHeight:     cfg.Decor.TitleHeight,
		EdgeAttract:     cfg.Snap.EdgeAttract,
		EdgeResist:      cfg.Snap.EdgeResist,
		FrameAttract:    cfg.Snap.FrameAttract,
		FrameResist:     cfg.Snap.FrameResist,
		FullscreenAbove: cfg.FullscreenAbove,
		FocusNew:        cfg.Focus.New,
		FocusStacking:   cfg.Focus.Stacking,
		FocusRaise:      raise,
		RaiseOverlap:    cfg.Focus.RaiseOverlap,
		WorkspaceWrap:   cfg.WorkspaceWrap,
		BackAndForth:    cfg.BackAndForth,
		EdgeWarp:        cfg.EdgeWarp,
		GrabOnMove:      cfg.GrabOnMove,
		WorkspaceNames:  names,
		PerRow:          cfg.PerRow,
		Deny:            deny,
	}, nil
}

// Options returns the X backend options. Colors are only read at start-up.
func Options(name string, cfg config.Config) (xwm.Options, error) {
	var (
		options = xwm.Options{Name: name}
		err     error
	)
	if options.FocusedColor, err = config.ParseColor(cfg.Decor.FocusedColor); err != nil {
		return xwm.Options{}, err
	}
	if options.UnfocusedColor, err = config.ParseColor(cfg.Decor.UnfocusedColor); err != nil {
		return xwm.Options{}, err
	}
	if options.TaggedColor, err = config.ParseColor(cfg.Decor.TaggedColor); err != nil {
		return xwm.Options{}, err
	}
	return options, nil
}

// LoadPolicy reads, normalizes and converts the stored configuration.
func LoadPolicy(store *config.Store) (wm.Policy, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return wm.Policy{}, err
	}
	cfg, _ = config.Normalize(cfg)
	return Policy(cfg)
}

type PolicySetter interface {
	SetPolicy(p wm.Policy)
}

// Reloader applies the configuration to target every time changes fires.
type Reloader struct {
	store   *config.Store
	changes <-chan struct{}
	target  PolicySetter
}

func NewReloader(store *config.Store, changes <-chan struct{}, target PolicySetter) Reloader {
	return Reloader{
		store:   store,
		changes: changes,
		target:  target,
	}
}

func (r Reloader) String() string {
	return "app.Reloader"
}

func (r Reloader) Serve(ctx context.Context) error {
	slog := slog.With("func", "app.Reloader.Serve")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.changes:
			p, err := LoadPolicy(r.store)
			if err != nil {
				slog.Warn("Failed to reload config", "error", err)
				continue
			}
			r.target.SetPolicy(p)
			slog.Info("Config reloaded")
		}
	}
}

// Services is everything the supervisor runs.
type Services struct {
	Loop     sutureext.Service
	Status   sutureext.Service
	Watcher  sutureext.Service
	Reloader sutureext.Service
}

func NewSupervisor(services Services) *suture.Supervisor {
	super := sutureext.NewSimple("root")
	for _, s := range []sutureext.Service{services.Loop, services.Status, services.Watcher, services.Reloader} {
		if s != nil {
			sutureext.Add(super, s)
		}
	}
	return super
}
