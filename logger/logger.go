package logger

import (
	"github.com/rs/zerolog"
	"os"
)

var levels = map[string]zerolog.Level{
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
	"PANIC": zerolog.PanicLevel,
}

// SetupLogging aligns field names with the platform-wide log schema.
func SetupLogging() {
	zerolog.LevelFieldName = "level_name"
	zerolog.TimestampFieldName = "timestamp"
}

func NewLogger(component string) zerolog.Logger {
	levelValue := zerolog.InfoLevel
	if name, ok := os.LookupEnv("MDL_COMN_LOGLEVEL"); ok {
		if level, known := levels[name]; known {
			levelValue = level
		}
	}

	return zerolog.New(os.Stderr).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(levelValue)
}
