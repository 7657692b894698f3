package app

import (
	"context"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-stackwm/internal/config"
	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyDefaults(t *testing.T) {
	cfg, _ := config.Normalize(config.DefaultConfig())

	p, err := Policy(cfg)
	require.NoError(t, err)
	assert.Equal(t, wm.DefaultPolicy(), p)
}

func TestPolicy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workspaces = []config.Workspace{{Name: "web"}, {Name: "code"}}
	cfg.PerRow = 1
	cfg.Focus.Raise = config.RaiseIfCovered
	cfg.Focus.Stacking = true
	cfg.FullscreenAbove = true
	cfg.Deny = []string{"move", " Resize "}

	p, err := Policy(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "code"}, p.WorkspaceNames)
	assert.Equal(t, 1, p.PerRow)
	assert.Equal(t, wm.FocusRaiseIfCovered, p.FocusRaise)
	assert.True(t, p.FocusStacking)
	assert.True(t, p.FullscreenAbove)
	assert.Equal(t, wm.DenyMove|wm.DenyResize, p.Deny)
}

func TestPolicyInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Deny = []string{"teleport"}
	_, err := Policy(cfg)
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Focus.Raise = "sometimes"
	_, err = Policy(cfg)
	assert.Error(t, err)
}

func TestParseDeny(t *testing.T) {
	deny, err := ParseDeny(nil)
	require.NoError(t, err)
	assert.Zero(t, deny)

	for name, want := range denyNames {
		got, err := ParseDeny([]string{name})
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestOptions(t *testing.T) {
	options, err := Options("x-stackwm", config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "x-stackwm", options.Name)
	assert.Equal(t, uint32(0x5294e2), options.FocusedColor)
	assert.Equal(t, uint32(0x383c4a), options.UnfocusedColor)
	assert.Equal(t, uint32(0xd08770), options.TaggedColor)

	cfg := config.DefaultConfig()
	cfg.Decor.TaggedColor = "red"
	_, err = Options("x-stackwm", cfg)
	assert.Error(t, err)
}

type policyRecorder struct {
	c chan wm.Policy
}

func (r policyRecorder) SetPolicy(p wm.Policy) {
	r.c <- p
}

func TestReloader(t *testing.T) {
	store, err := config.NewStore(config.NewMemory())
	require.NoError(t, err)

	changes := make(chan struct{}, 1)
	target := policyRecorder{c: make(chan wm.Policy, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errC := make(chan error, 1)
	go func() { errC <- NewReloader(&store, changes, target).Serve(ctx) }()

	require.NoError(t, store.UpdateConfig(func(cfg config.Config) (config.Config, error) {
		cfg.EdgeWarp = 7
		return cfg, nil
	}))
	changes <- struct{}{}

	select {
	case p := <-target.c:
		assert.Equal(t, 7, p.EdgeWarp)
	case <-time.After(5 * time.Second):
		t.Fatal("policy not applied")
	}

	// A bad file keeps the previous policy.
	require.NoError(t, store.UpdateConfig(func(cfg config.Config) (config.Config, error) {
		cfg.Deny = []string{"teleport"}
		return cfg, nil
	}))
	changes <- struct{}{}

	select {
	case <-target.c:
		t.Fatal("invalid config applied")
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-errC, context.Canceled)
}
