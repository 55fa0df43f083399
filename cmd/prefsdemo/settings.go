package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityUltra
)

var qualityNames = [...]string{"low", "medium", "high", "ultra"}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

func (q Quality) MarshalText() ([]byte, error) {
	if q < 0 || int(q) >= len(qualityNames) {
		return nil, errors.Errorf("unknown quality %d", int(q))
	}
	return []byte(qualityNames[q]), nil
}

func (q *Quality) UnmarshalText(text []byte) error {
	for i, name := range qualityNames {
		if strings.EqualFold(name, string(text)) {
			*q = Quality(i)
			return nil
		}
	}
	return errors.Errorf("unknown quality %q", text)
}

type GraphicsSettings struct {
	Width      int     `json:"width" toml:"width" yaml:"width"`
	Height     int     `json:"height" toml:"height" yaml:"height"`
	Fullscreen bool    `json:"fullscreen" toml:"fullscreen" yaml:"fullscreen"`
	VSync      bool    `json:"vsync" toml:"vsync" yaml:"vsync"`
	Quality    Quality `json:"quality" toml:"quality" yaml:"quality"`
	// FPSLimit is unlimited when nil.
	FPSLimit *uint32 `json:"fps_limit" toml:"fps_limit,omitempty" yaml:"fps_limit"`
}

func (GraphicsSettings) Default() GraphicsSettings {
	return GraphicsSettings{Width: 1280, Height: 720, VSync: true, Quality: QualityMedium}
}

type AudioSettings struct {
	Master  float64 `json:"master" toml:"master" yaml:"master"`
	Music   float64 `json:"music" toml:"music" yaml:"music"`
	Effects float64 `json:"effects" toml:"effects" yaml:"effects"`
	Muted   bool    `json:"muted" toml:"muted" yaml:"muted"`
}

func (AudioSettings) Default() AudioSettings {
	return AudioSettings{Master: 0.8, Music: 0.6, Effects: 1}
}

type SessionStats struct {
	Launches   uint64 `json:"launches" toml:"launches" yaml:"launches"`
	LastLaunch string `json:"last_launch" toml:"last_launch" yaml:"last_launch"`
}

// registerSettings registers every settings type of the demo.
func registerSettings(app *ecs.App) error {
	return errors.Collapse([]error{
		prefs.Register[GraphicsSettings](app),
		prefs.Register[AudioSettings](app),
		prefs.Register[SessionStats](app),
	})
}

// countLaunch runs at Startup, after the stored stats were loaded.
func countLaunch(now func() time.Time) ecs.System {
	return func(ctx *ecs.Context) {
		stats, ok := prefs.Param[SessionStats](ctx)
		if !ok {
			return
		}
		stats.Update(func(s *SessionStats) {
			s.Launches++
			s.LastLaunch = now().UTC().Format(time.RFC3339)
		})
		ctx.Logger().Infof("launch #%d", stats.Get().Launches)
	}
}
