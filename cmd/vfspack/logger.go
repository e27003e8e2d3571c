package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"vfspack/internal/pipeline"
)

// zerologAdapter bridges the pipeline's Logger interface onto a
// zerolog backend.
type zerologAdapter struct {
	logger zerolog.Logger
}

// newLogger creates the CLI logger. Progress goes to stderr so the
// single confirmation line on stdout stays clean; quiet raises the
// level to errors only.
func newLogger(quiet bool) pipeline.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.ErrorLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return &zerologAdapter{logger: logger}
}

func (z *zerologAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.log(z.logger.Debug(), msg, keysAndValues)
}

func (z *zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.log(z.logger.Info(), msg, keysAndValues)
}

func (z *zerologAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.log(z.logger.Warn(), msg, keysAndValues)
}

func (z *zerologAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.log(z.logger.Error(), msg, keysAndValues)
}

// log attaches alternating key-value pairs to the event. A trailing
// key without a value is logged under "extra".
func (z *zerologAdapter) log(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	if len(keysAndValues)%2 != 0 {
		event = event.Interface("extra", keysAndValues[len(keysAndValues)-1])
	}
	event.Msg(msg)
}
