package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLevel = errors.New("invalid logging level")

// Level is the severity of a logging event.
type Level string

const (
	// LevelDebug is information that is diagnostically helpful to people more than just developers.
	LevelDebug Level = "debug"

	// LevelInfo is generally useful information, e.g. service start/stop or configuration assumptions.
	LevelInfo Level = "info"

	// LevelWarn is for non-fatal errors that can potentially cause application oddities.
	LevelWarn Level = "warn"

	// LevelError is any error which is fatal to the operation, but not the service or application.
	LevelError Level = "error"

	// LevelCritical is any error that is forcing a shutdown of the service or application
	// to prevent data loss (or further data loss).
	LevelCritical Level = "critical"
)

// Levels returns all supported levels, ordered from the lowest to the highest severity.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}
}

// ParseLevel returns the Level for the given name. The name is case-insensitive
// and "warning" is accepted as an alias of LevelWarn.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		return LevelWarn, nil
	}

	for _, l := range Levels() {
		if string(l) == name {
			return l, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

func (l Level) String() string {
	return string(l)
}
