package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Field names attached to every CLI log line
const (
	RunIDKey   string = "run"
	CommandKey string = "command"
	WorkersKey string = "workers"
)

// colorEnvVar toggles ANSI colors in console output; unset means colored
const colorEnvVar = "COLORIZE_LOG"

// colorEnabled reports whether COLORIZE_LOG is unset or a true boolean
// ("1", "true", "TRUE", ...). Anything else disables colors.
func colorEnabled() bool {
	v, ok := os.LookupEnv(colorEnvVar)
	if !ok || v == "" {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

// GetZeroLogger returns a timestamped console logger tagged with name.
// Output goes to out, or to stderr when out is nil, so results printed on
// stdout stay machine readable.
func GetZeroLogger(name string, out io.Writer) *zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	output := zerolog.ConsoleWriter{Out: out, NoColor: !colorEnabled(), TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Str("logger", name).Logger()
	return &logger
}

// ParseLevel maps a level name to a zerolog level
func ParseLevel(l string) (zerolog.Level, error) {
	switch strings.ToLower(l) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		fallthrough
	case "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, errors.Errorf("unsupported log level: %s", l)
	}
}
