package status

import (
	"slices"
	"sync"

	"github.com/ItsNotGoodName/x-stackwm/internal/bus"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
)

// Focus is the focused object, zero when nothing has focus.
type Focus struct {
	ID     wm.ID       `json:"id"`
	Window wm.WindowID `json:"window"`
	Kind   string      `json:"kind"`
}

type Workspaces struct {
	Active   int      `json:"active"`
	Previous int      `json:"previous"`
	Names    []string `json:"names"`
	PerRow   int      `json:"per_row"`
}

// Store keeps copies of the engine state taken from bus events. The engine
// publishes on its own goroutine; HTTP handlers read from theirs.
type Store struct {
	metrics *Metrics

	mu         sync.RWMutex
	stacking   []wm.ObjectInfo
	focus      Focus
	workspaces Workspaces
	seen       bool
}

func NewStore(metrics *Metrics) *Store {
	return &Store{
		metrics:  metrics,
		stacking: []wm.ObjectInfo{},
		workspaces: Workspaces{
			Names: []string{},
		},
	}
}

// Subscribe registers the store on b. The returned function unsubscribes.
func (s *Store) Subscribe(b *bus.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(b, "status.stacking", s.onStacking),
		bus.Subscribe(b, "status.focus", s.onFocus),
		bus.Subscribe(b, "status.workspace", s.onWorkspace),
		bus.Subscribe(b, "status.frame-added", s.onFrameAdded),
		bus.Subscribe(b, "status.frame-removed", s.onFrameRemoved),
	}
	return func() {
		for _, fn := range unsubs {
			fn()
		}
	}
}

func (s *Store) onStacking(ev wm.StackingChanged) error {
	s.mu.Lock()
	s.stacking = slices.Clone(ev.Objects)
	if s.stacking == nil {
		s.stacking = []wm.ObjectInfo{}
	}
	s.mu.Unlock()

	s.metrics.Restacks.Inc()
	return nil
}

func (s *Store) onFocus(ev wm.FocusChanged) error {
	focus := Focus{ID: ev.ID, Window: ev.Window}
	if ev.ID != 0 {
		focus.Kind = ev.Kind.String()
	}

	s.mu.Lock()
	s.focus = focus
	s.mu.Unlock()

	s.metrics.FocusChanges.Inc()
	return nil
}

func (s *Store) onWorkspace(ev wm.WorkspaceChanged) error {
	s.mu.Lock()
	switched := s.seen && s.workspaces.Active != ev.Active
	s.seen = true
	s.workspaces = Workspaces{
		Active:   ev.Active,
		Previous: ev.Previous,
		Names:    slices.Clone(ev.Names),
		PerRow:   ev.PerRow,
	}
	if s.workspaces.Names == nil {
		s.workspaces.Names = []string{}
	}
	s.mu.Unlock()

	if switched {
		s.metrics.WorkspaceSwitches.Inc()
	}
	s.metrics.Workspaces.Set(float64(len(ev.Names)))
	return nil
}

func (s *Store) onFrameAdded(wm.FrameAdded) error {
	s.metrics.FramesAdded.Inc()
	s.metrics.FramesManaged.Inc()
	return nil
}

func (s *Store) onFrameRemoved(wm.FrameRemoved) error {
	s.metrics.FramesRemoved.Inc()
	s.metrics.FramesManaged.Dec()
	return nil
}

func (s *Store) Stacking() []wm.ObjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stacking)
}

func (s *Store) Focus() Focus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focus
}

func (s *Store) Workspaces() Workspaces {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws := s.workspaces
	ws.Names = slices.Clone(ws.Names)
	return ws
}
