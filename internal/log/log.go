package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// level reads LOG_LEVEL first. ENV=development falls back to trace, anything else to info.
func level() zerolog.Level {
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	if os.Getenv("ENV") == "development" {
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

// InitLogger builds the process wide logger once. Later calls return the first logger whatever
// filepath they pass. An empty filepath logs to stdout only.
func InitLogger(filepath string) zerolog.Logger {
	once.Do(func() {
		zerolog.DurationFieldUnit = time.Microsecond
		zerolog.ErrorFieldName = "error"
		zerolog.ErrorStackFieldName = "stack-trace"
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.LevelFieldName = "level"
		zerolog.MessageFieldName = "message"
		zerolog.TimestampFieldName = "timestamp"

		var output io.Writer = os.Stdout
		if filepath != "" {
			output = zerolog.MultiLevelWriter(os.Stdout, &lumberjack.Logger{
				Filename:   filepath,
				MaxSize:    100,
				MaxBackups: 5,
				MaxAge:     28,
				Compress:   true,
			})
		}

		logger = zerolog.New(output).
			Level(level()).
			Hook(AttachTraceIdFromContext()).
			With().
			Timestamp().
			Caller().
			Stack().
			Int("pid", os.Getpid()).
			Logger()

		logger.Info().
			Str(KeyTag, "InitLogger").
			Str(KeyProcess, "InitLogger").
			Str("logLevel", logger.GetLevel().String()).
			Msg("initialized logger")
	})
	return logger
}
