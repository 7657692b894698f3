package build

import (
	"fmt"
	"time"
)

var (
	commit  = ""
	date    = ""
	version = "dev"
)

func init() {
	date, _ := time.Parse(time.RFC3339, date)

	Current = Build{
		Commit:  commit,
		Version: version,
		Date:    date,
	}
}

var Current Build

type Build struct {
	Commit  string    `json:"commit,omitempty"`
	Version string    `json:"version,omitempty"`
	Date    time.Time `json:"date,omitempty"`
}

// String is the text printed by --version.
func (b Build) String() string {
	s := b.Version
	if b.Commit != "" {
		s += fmt.Sprintf(" (%s)", b.Commit)
	}
	if !b.Date.IsZero() {
		s += " " + b.Date.Format(time.DateOnly)
	}
	return s
}
