package logger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level type
type Level uint8

// These are the different logging levels.
const (
	// levelUnknown represent an unparsable level
	levelUnknown Level = iota

	// LevelError logs the failures.
	LevelError

	// LevelWarning logs non critical entries that deserve some attention.
	LevelWarning

	// LevelInfo logs what's going on, like the files written by the CLI.
	LevelInfo

	// LevelDebug logs the details of each avatar, like the color picked for
	// a random background.
	LevelDebug
)

var ErrInvalidLevel = errors.New("not a valid logging Level")

// String converts the Level to a string. E.g. LevelDebug becomes "debug".
func (level Level) String() string {
	if b, err := level.MarshalText(); err == nil {
		return string(b)
	}
	return "unknown"
}

// ParseLevel takes a string level and returns the log level constant.
func ParseLevel(lvl string) (Level, error) {
	switch strings.ToLower(lvl) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}
	return levelUnknown, fmt.Errorf("%q: %w", lvl, ErrInvalidLevel)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (level *Level) UnmarshalText(text []byte) error {
	l, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*level = l
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (level Level) MarshalText() ([]byte, error) {
	switch level {
	case LevelDebug:
		return []byte("debug"), nil
	case LevelInfo:
		return []byte("info"), nil
	case LevelWarning:
		return []byte("warning"), nil
	case LevelError:
		return []byte("error"), nil
	}
	return nil, fmt.Errorf("not a valid logging level %d", level)
}

func (level Level) logrus() logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarning:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}
