// Package logger provides a named, color tagged logger used across the services.
package logger

import (
	"errors"
	"io"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/rs/zerolog"
)

var _ i.Logger = &Logger{}

const (
	componentField = "component"
	colorReset     = "\033[0m"
)

// Logger writes leveled console lines tagged with a colored component name.
type Logger struct {
	l zerolog.Logger
}

// New creates a Logger for the component name, printing the name in color.
// An empty color disables coloring entirely.
func New(name, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger writer is nil")
	}
	if name == "" {
		return nil, errors.New("logger name is empty")
	}

	component := "[" + name + "]"
	if color != "" {
		component = color + component + colorReset
	}

	// The component is printed as its own part, ahead of the message, instead of as a
	// trailing key=value field.
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color == "",
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			componentField,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{componentField},
	}
	l := zerolog.New(out).With().Timestamp().Str(componentField, component).Logger()
	return &Logger{l: l}, nil
}

// Info logs an informational message.
func (lg *Logger) Info(msg string) {
	lg.l.Info().Msg(msg)
}

// Warning logs a recoverable problem.
func (lg *Logger) Warning(msg string) {
	lg.l.Warn().Msg(msg)
}

// Error logs a failure.
func (lg *Logger) Error(msg string) {
	lg.l.Error().Msg(msg)
}
