// Package logging builds the zap logger shared by every component.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is the minimum level written to the log file. Defaults to info.
	Level string
	// File enables a rotating JSON log file when set.
	File string
	// Verbose lowers the console level from warn to debug.
	Verbose bool
	// Console receives human readable output. Defaults to stderr.
	Console io.Writer
}

// New creates a logger with a console core teed with an optional rotating file core.
func New(opts Options) (logger *zap.Logger, err error) {
	fileLevel := zapcore.InfoLevel
	if opts.Level != "" {
		fileLevel, err = zapcore.ParseLevel(opts.Level)
		if err != nil {
			err = errors.Wrapf(err, "invalid log level %q", opts.Level)
			return logger, err
		}
	}

	consoleLevel := zapcore.WarnLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(console)),
		consoleLevel,
	)

	cores := []zapcore.Core{consoleCore}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.MessageKey = "message"
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotator),
			fileLevel,
		))
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, err
}

// Module returns a child logger tagging every record with the module name.
func Module(logger *zap.Logger, module string) (child *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	child = logger.With(zap.String("module", module))
	return child
}
