package config

var defaultConfig = Config{
	Workspaces: []Workspace{
		{Name: "1"},
		{Name: "2"},
		{Name: "3"},
		{Name: "4"},
	},
	PerRow: 2,
	Decor: Decor{
		BorderWidth:    1,
		TitleHeight:    20,
		FocusedColor:   "#5294e2",
		UnfocusedColor: "#383c4a",
		TaggedColor:    "#d08770",
	},
	Snap: Snap{
		EdgeAttract:  10,
		EdgeResist:   10,
		FrameAttract: 5,
		FrameResist:  5,
	},
	Focus: Focus{
		New:          true,
		Raise:        RaiseAlways,
		RaiseOverlap: 50,
	},
	WorkspaceWrap: true,
	BackAndForth:  true,
	EdgeWarp:      1,
	Deny:          []string{},
}

func DefaultConfig() Config {
	cfg := defaultConfig
	cfg.Workspaces = append([]Workspace(nil), defaultConfig.Workspaces...)
	cfg.Deny = []string{}
	return cfg
}

type Config struct {
	Workspaces []Workspace `json:"workspaces" yaml:"workspaces"`
	PerRow     int         `json:"per_row" yaml:"per_row"`
	Decor      Decor       `json:"decor" yaml:"decor"`
	Snap       Snap        `json:"snap" yaml:"snap"`
	Focus      Focus       `json:"focus" yaml:"focus"`

	FullscreenAbove bool `json:"fullscreen_above" yaml:"fullscreen_above"`
	WorkspaceWrap   bool `json:"workspace_wrap" yaml:"workspace_wrap"`
	BackAndForth    bool `json:"back_and_forth" yaml:"back_and_forth"`
	EdgeWarp        int  `json:"edge_warp" yaml:"edge_warp"`
	GrabOnMove      bool `json:"grab_on_move" yaml:"grab_on_move"`
	// Deny lists client requests refused for every window.
	Deny []string `json:"deny" yaml:"deny"`
}

type Workspace struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name" yaml:"name"`
}

type Decor struct {
	BorderWidth    int    `json:"border_width" yaml:"border_width"`
	TitleHeight    int    `json:"title_height" yaml:"title_height"`
	FocusedColor   string `json:"focused_color" yaml:"focused_color"`
	UnfocusedColor string `json:"unfocused_color" yaml:"unfocused_color"`
	TaggedColor    string `json:"tagged_color" yaml:"tagged_color"`
}

// Snap distances are in pixels; zero disables.
type Snap struct {
	EdgeAttract  int `json:"edge_attract" yaml:"edge_attract"`
	EdgeResist   int `json:"edge_resist" yaml:"edge_resist"`
	FrameAttract int `json:"frame_attract" yaml:"frame_attract"`
	FrameResist  int `json:"frame_resist" yaml:"frame_resist"`
}

const (
	RaiseAlways    = "always"
	RaiseIfCovered = "if-covered"
	RaiseNever     = "never"
)

type Focus struct {
	New      bool   `json:"new" yaml:"new"`
	Stacking bool   `json:"stacking" yaml:"stacking"`
	Raise    string `json:"raise" yaml:"raise"` // [always, if-covered, never]
	// RaiseOverlap is the percentage of a frame that must be covered before
	// an if-covered raise happens.
	RaiseOverlap int `json:"raise_overlap" yaml:"raise_overlap"`
}
