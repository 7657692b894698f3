package xwm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/jezek/xgb"
	"github.com/thejerf/suture/v4"
)

var errConnClosed = errors.New("x connection closed")

// Loop feeds X events into the desktop. Everything touching the desktop runs
// on the goroutine calling Serve.
type Loop struct {
	x        *X
	desktop  *wm.Desktop
	bindings map[Key]Binding
	policyC  chan wm.Policy
	log      *slog.Logger

	started bool
	// mr is the interactive move or resize in progress.
	mr *wm.MoveResize
}

func NewLoop(x *X, desktop *wm.Desktop, bindings []Binding) *Loop {
	m := make(map[Key]Binding, len(bindings))
	for _, b := range bindings {
		m[b.Key] = b
	}
	x.grabKeys(bindings)

	return &Loop{
		x:        x,
		desktop:  desktop,
		bindings: m,
		policyC:  make(chan wm.Policy, 1),
		log:      slog.With("package", "xwm", "service", "loop"),
	}
}

func (l *Loop) String() string {
	return "xwm.Loop"
}

// SetPolicy queues a policy change. Only the latest queued policy is applied.
func (l *Loop) SetPolicy(p wm.Policy) {
	for {
		select {
		case l.policyC <- p:
			return
		default:
		}
		select {
		case <-l.policyC:
		default:
		}
	}
}

func (l *Loop) Serve(ctx context.Context) error {
	if !l.started {
		l.adoptExisting()
		l.desktop.Publish()
		l.started = true
	}

	eventC := make(chan xgb.Event)
	go ReceiveEvents(ctx, l.x.conn, eventC)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-l.policyC:
			l.log.Info("Applying policy")
			l.desktop.SetPolicy(p)
		case ev, ok := <-eventC:
			if !ok {
				return errors.Join(suture.ErrTerminateSupervisorTree, errConnClosed)
			}
			l.handle(ev)
		}
	}
}

// adoptExisting manages the windows that were mapped before we started.
func (l *Loop) adoptExisting() {
	l.x.GrabServer()
	defer l.x.UngrabServer()

	windows, err := l.x.Toplevels()
	if err != nil {
		l.log.Warn("Failed to list existing windows", "error", err)
		return
	}
	for _, w := range windows {
		l.manage(w)
	}
}

func (l *Loop) manage(w wm.WindowID) {
	c, err := l.desktop.Manage(l.x.Source(w))
	switch {
	case err == nil:
		l.log.Debug("Managing window", "window", w, "type", c.Type())
	case errors.Is(err, wm.ErrWindowGone), errors.Is(err, wm.ErrAlreadyManaged):
		l.log.Debug("Skipping window", "window", w, "error", err)
	default:
		// Better an undecorated window than an invisible one.
		l.log.Warn("Failed to manage window", "window", w, "error", err)
		l.x.Map(w)
	}
}

// endMoveResize finishes the interactive operation, if any.
func (l *Loop) endMoveResize(cancel bool) {
	if l.mr == nil {
		return
	}
	if cancel {
		l.mr.Cancel()
	} else {
		l.mr.End()
	}
	l.mr = nil
}
