package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type contextKey string

const LoggerKey contextKey = "logger"

// InitLogger builds the console logger, reports configuration warnings and stores it in ctx.
func InitLogger(ctx context.Context, logLevel string, warnings []string) (context.Context, *zerolog.Logger) {
	log := NewLogger(logLevel)
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	ctx = context.WithValue(ctx, LoggerKey, log)
	return ctx, log
}

// NewLogger creates a colorized console logger on stderr and sets the global log level.
func NewLogger(logLevel string) *zerolog.Logger {
	zerolog.SetGlobalLevel(getLogLevel(logLevel))

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	output.FormatLevel = formatLevel

	logger := zerolog.New(output).With().Timestamp().Logger()

	return &logger
}

// FromContext extracts the main logger from the context.
func FromContext(ctx context.Context) *zerolog.Logger {
	logger, ok := ctx.Value(LoggerKey).(*zerolog.Logger)
	if !ok {
		// Fallback to a default logger if none is found in the context.
		defaultLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		defaultLogger.Error().Msg("Failed to extract logger from context")
		return &defaultLogger
	}
	return logger
}

func formatLevel(i interface{}) string {
	var l string
	if ll, ok := i.(string); ok {
		switch ll {
		case "debug":
			l = colorize(ll, 36) // cyan
		case "info":
			l = colorize(ll, 34) // blue
		case "warn":
			l = colorize(ll, 33) // yellow
		case "error":
			l = colorize(ll, 31) // red
		case "fatal":
			l = colorize(ll, 35) // magenta
		case "panic":
			l = colorize(ll, 41) // white on red background
		default:
			l = colorize(ll, 37) // white
		}
	} else {
		if i == nil {
			l = colorize("???", 37)
		} else {
			lStr := strings.ToUpper(fmt.Sprintf("%s", i))
			if len(lStr) > 3 {
				lStr = lStr[:3]
			}
			l = lStr
		}
	}
	return fmt.Sprintf("| %s |", l)
}

func getLogLevel(logLevel string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func colorize(s string, color int) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, s)
}
