package entity

import (
	"time"

	"github.com/habitquest/backend/pkg/enum"
)

type Theme string

var (
	ThemeSystem = enum.New(Theme("system"))
	ThemeLight  = enum.New(Theme("light"))
	ThemeDark   = enum.New(Theme("dark"))
)

type Units string

var (
	UnitsMetric   = enum.New(Units("metric"))
	UnitsImperial = enum.New(Units("imperial"))
)

type Settings struct {
	Theme         Theme        `json:"theme"`
	Units         Units        `json:"units"`
	Notifications bool         `json:"notifications"`
	Sound         bool         `json:"sound"`
	WeekStartDay  time.Weekday `json:"weekStartDay"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeSystem,
		Units:         UnitsMetric,
		Notifications: true,
		Sound:         true,
		WeekStartDay:  time.Monday,
	}
}
