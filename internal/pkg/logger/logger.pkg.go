package logger

import (
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level loggers used across the application. They print to the console until
// Setup routes them through zap.
var (
	Info    = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warning = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error   = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug   = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	HTTP    = log.New(os.Stdout, "HTTP: ", log.Ldate|log.Ltime)
)

var base = zap.NewNop()

// Setup builds a JSON zap logger at the given level ("debug", "info", "warn",
// "error") and redirects the level loggers to it. Unknown levels mean info.
func Setup(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		Error.Println("failed to build zap logger, keeping console loggers:", err)
		return
	}
	base = z

	Info = stdLog(z, "app", zapcore.InfoLevel)
	Warning = stdLog(z, "app", zapcore.WarnLevel)
	Error = stdLog(z, "app", zapcore.ErrorLevel)
	Debug = stdLog(z, "app", zapcore.DebugLevel)
	HTTP = stdLog(z, "http", zapcore.InfoLevel)
}

func stdLog(z *zap.Logger, name string, lvl zapcore.Level) *log.Logger {
	l, err := zap.NewStdLogAt(z.Named(name), lvl)
	if err != nil {
		return zap.NewStdLog(z.Named(name))
	}
	return l
}

// Zap returns the structured logger behind the level loggers.
func Zap() *zap.Logger {
	return base
}

func Sync() {
	_ = base.Sync()
}
