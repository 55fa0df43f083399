package prefs

import (
	"fmt"
	"strings"
)

type ExampleSettings struct {
	FieldU32 uint32 `json:"field_u32" toml:"field_u32" yaml:"field_u32"`
}

type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

var difficultyNames = [...]string{"easy", "normal", "hard"}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(difficultyNames) {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(difficultyNames[d]), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	for i, name := range difficultyNames {
		if strings.EqualFold(name, string(text)) {
			*d = Difficulty(i)
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", text)
}

type Window struct {
	Width  int  `json:"width" toml:"width" yaml:"width"`
	Height int  `json:"height" toml:"height" yaml:"height"`
	VSync  bool `json:"vsync" toml:"vsync" yaml:"vsync"`
}

type GameSettings struct {
	PlayerName string     `json:"player_name" toml:"player_name" yaml:"player_name"`
	Volume     float64    `json:"volume" toml:"volume" yaml:"volume"`
	Seed       int64      `json:"seed" toml:"seed" yaml:"seed"`
	Difficulty Difficulty `json:"difficulty" toml:"difficulty" yaml:"difficulty"`
	Window     Window     `json:"window" toml:"window" yaml:"window"`
	Favorite   *string    `json:"favorite" toml:"favorite,omitempty" yaml:"favorite"`
	Tags       []string   `json:"tags" toml:"tags" yaml:"tags"`
}

func (GameSettings) Default() GameSettings {
	return GameSettings{
		PlayerName: "player",
		Volume:     0.8,
		Difficulty: Normal,
		Window:     Window{Width: 1280, Height: 720, VSync: true},
	}
}

type Badge struct {
	Label *string `json:"label" toml:"label" yaml:"label"`
}

// PlayerProfile has optionals that are set by default.
type PlayerProfile struct {
	Name   *string `json:"name" toml:"name" yaml:"name"`
	Visits int     `json:"visits" toml:"visits" yaml:"visits"`
	Badge  *Badge  `json:"badge" toml:"badge" yaml:"badge"`
}

func (PlayerProfile) Default() PlayerProfile {
	return PlayerProfile{
		Name:  ptr("guest"),
		Badge: &Badge{Label: ptr("rookie")},
	}
}

type AudioSettings struct {
	Master float64 `json:"master" toml:"master" yaml:"master"`
	Muted  bool    `json:"muted" toml:"muted" yaml:"muted"`
}

// renamedSettings is stored under a custom key.
type renamedSettings struct {
	Theme string `json:"theme" toml:"theme" yaml:"theme"`
}

func (renamedSettings) PreferencesKey() string { return "ui.theme" }

// clashingSettings claims the same key as renamedSettings.
type clashingSettings struct {
	Other int `json:"other" toml:"other" yaml:"other"`
}

func (clashingSettings) PreferencesKey() string { return "ui.theme" }

func ptr[T any](v T) *T { return &v }
