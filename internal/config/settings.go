package config

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// SettingsGetter is an interface for retrieving settings from a backing source
type SettingsGetter interface {
	GetSetting(key string) (string, error)
}

// Loader provides typed access to settings with default values.
// Unset keys yield the default; unreadable or malformed values are logged and
// also yield the default.
type Loader struct {
	src SettingsGetter
}

// NewLoader creates a new settings loader
func NewLoader(src SettingsGetter) *Loader {
	return &Loader{src: src}
}

// Int retrieves an integer setting
func (l *Loader) Int(key string, defaultVal int) int {
	return lookup(l, key, defaultVal, strconv.Atoi)
}

// Bool retrieves a boolean setting in any form understood by strconv.ParseBool
func (l *Loader) Bool(key string, defaultVal bool) bool {
	return lookup(l, key, defaultVal, strconv.ParseBool)
}

// String retrieves a string setting
func (l *Loader) String(key, defaultVal string) string {
	return lookup(l, key, defaultVal, func(s string) (string, error) { return s, nil })
}

// Duration retrieves a duration in Go format (e.g., "1h30m", "5s")
func (l *Loader) Duration(key string, defaultVal time.Duration) time.Duration {
	return lookup(l, key, defaultVal, time.ParseDuration)
}

func lookup[T any](l *Loader, key string, defaultVal T, parse func(string) (T, error)) T {
	val, err := l.src.GetSetting(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read setting, using default")
		return defaultVal
	}
	if val == "" {
		return defaultVal
	}

	v, err := parse(val)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Ignoring malformed setting, using default")
		return defaultVal
	}
	return v
}
