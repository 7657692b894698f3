package config

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/ItsNotGoodName/x-stackwm/internal/core"
	"github.com/google/uuid"
)

type Driver interface {
	Exists() (bool, error)
	Write(config Config) error
	Read() (Config, error)
}

func NewStore(driver Driver) (Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return Store{}, err
	}
	if !exists {
		if err := driver.Write(DefaultConfig()); err != nil {
			return Store{}, err
		}
	}

	return Store{
		driver: driver,
	}, nil
}

type Store struct {
	driver Driver
}

func (p *Store) GetConfig() (Config, error) {
	return p.driver.Read()
}

func (p *Store) UpdateConfig(fn func(cfg Config) (Config, error)) error {
	cfg, err := p.driver.Read()
	if err != nil {
		return err
	}

	cfg, err = fn(cfg)
	if err != nil {
		return err
	}

	return p.driver.Write(cfg)
}

// NormalizeStore normalizes the stored configuration, writing it back only
// when something changed.
func NormalizeStore(store *Store) error {
	cfg, err := store.GetConfig()
	if err != nil {
		return err
	}
	if _, changed := Normalize(cfg); !changed {
		return nil
	}

	return store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg, _ = Normalize(cfg)
		return cfg, nil
	})
}

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Normalize gives every workspace a UUID and a name and clamps values that
// cannot be used.
func Normalize(cfg Config) (Config, bool) {
	changed := false
	set := func(dst *int, v int) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}

	if len(cfg.Workspaces) == 0 {
		cfg.Workspaces = DefaultConfig().Workspaces
		changed = true
	} else {
		cfg.Workspaces = slices.Clone(cfg.Workspaces)
	}

	seen := make(map[string]bool, len(cfg.Workspaces))
	for i := range cfg.Workspaces {
		ws := &cfg.Workspaces[i]
		if _, err := uuid.Parse(ws.UUID); err != nil || seen[ws.UUID] {
			ws.UUID = uuid.NewString()
			changed = true
		}
		seen[ws.UUID] = true
		if ws.Name == "" {
			ws.Name = strconv.Itoa(i + 1)
			changed = true
		}
	}

	set(&cfg.PerRow, core.Clamp(cfg.PerRow, 1, len(cfg.Workspaces)))
	set(&cfg.Decor.BorderWidth, max(cfg.Decor.BorderWidth, 0))
	set(&cfg.Decor.TitleHeight, max(cfg.Decor.TitleHeight, 0))
	set(&cfg.Snap.EdgeAttract, max(cfg.Snap.EdgeAttract, 0))
	set(&cfg.Snap.EdgeResist, max(cfg.Snap.EdgeResist, 0))
	set(&cfg.Snap.FrameAttract, max(cfg.Snap.FrameAttract, 0))
	set(&cfg.Snap.FrameResist, max(cfg.Snap.FrameResist, 0))
	set(&cfg.Focus.RaiseOverlap, core.Clamp(cfg.Focus.RaiseOverlap, 0, 100))
	set(&cfg.EdgeWarp, max(cfg.EdgeWarp, 0))

	switch cfg.Focus.Raise {
	case RaiseAlways, RaiseIfCovered, RaiseNever:
	default:
		cfg.Focus.Raise = RaiseAlways
		changed = true
	}

	def := defaultConfig.Decor
	for _, c := range []struct {
		dst *string
		def string
	}{
		{&cfg.Decor.FocusedColor, def.FocusedColor},
		{&cfg.Decor.UnfocusedColor, def.UnfocusedColor},
		{&cfg.Decor.TaggedColor, def.TaggedColor},
	} {
		if !colorRe.MatchString(*c.dst) {
			*c.dst = c.def
			changed = true
		}
	}

	if cfg.Deny == nil {
		cfg.Deny = []string{}
		changed = true
	}

	return cfg, changed
}

// ParseColor parses a #rrggbb color into a 24 bit pixel value.
func ParseColor(s string) (uint32, error) {
	if !colorRe.MatchString(s) {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
