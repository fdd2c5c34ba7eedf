package flagtypes

import (
	"errors"
	"strings"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ensure it conforms to the interface
var _ pflag.Value = new(LogLevel)

// LogLevel is a flag type for setting the minimum logging level.
type LogLevel logger.Level

// Level returns the underlying logger.Level.
func (l LogLevel) Level() logger.Level {
	return logger.Level(l)
}

// String implements the pflag.Value and fmt.Stringer interfaces.
func (l *LogLevel) String() string {
	switch l.Level() {
	case logger.LevelDebug:
		return "debug"
	case logger.LevelInfo:
		return "info"
	case logger.LevelWarn:
		return "warn"
	case logger.LevelError:
		return "error"
	case logger.LevelPanic:
		return "panic"
	default:
		return l.Level().String()
	}
}

// Set implements the pflag.Value interface.
func (l *LogLevel) Set(val string) error {
	newLevel, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = LogLevel(newLevel)
	return nil
}

// Type implements the pflag.Value interface.
// The value is only used in help text.
func (l *LogLevel) Type() string {
	return "loglevel"
}

// ParseLogLevel parses a logging level. It accepts more aliases than are
// listed in the completions, to be more user friendly.
func ParseLogLevel(lvl string) (logger.Level, error) {
	switch strings.ToLower(lvl) {
	case "5", "d", "debug", "debugging":
		return logger.LevelDebug, nil
	case "4", "i", "info", "information":
		return logger.LevelInfo, nil
	case "3", "w", "warn", "warning", "warnings":
		return logger.LevelWarn, nil
	case "2", "e", "error", "errors":
		return logger.LevelError, nil
	case "1", "p", "panic", "panics":
		return logger.LevelPanic, nil
	default:
		// Errors shouldn't have mutliple lines, but as this is solely for
		// pflag.Value usage then this is an exception.
		return logger.LevelInfo, errors.New(`invalid logging level, possible values:
	5  d  debug  debugging
	4  i  info   information
	3  w  warn   warning      warnings
	2  e  error  errors
	1  p  panic  panics`)
	}
}

// CompleteLogLevel returns completions for the LogLevel type.
func CompleteLogLevel(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"debug\tIncludes all logs",
		"info\tIncludes INFO, WARN, ERROR, and PANIC logs (default)",
		"warn\tIncludes WARN, ERROR, and PANIC logs",
		"error\tIncludes ERROR, and PANIC logs",
		"panic\tSilent, except for PANIC logs",
	}, cobra.ShellCompDirectiveNoFileComp
}
