// Package logger holds the loggers shared by the style engine.
//
// Both loggers derive from one root zap logger, which may be replaced
// with SetLogger (for instance by the command line tool or by tests).
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// ProgressLogger logs the main steps of the style resolution
	// (sheet loading, cascade of a whole document).
	ProgressLogger *zap.SugaredLogger

	// WarningLogger emits a warning for each non fatal error, like unsupported CSS
	// properties, invalid declarations or rejected attr() reads.
	WarningLogger *zap.SugaredLogger

	root *zap.Logger
)

func init() { SetLogger(newDefault()) }

func newDefault() *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), zapcore.InfoLevel)
	return zap.New(core)
}

// SetLogger replaces the root logger. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	root = l.Named("webstyle")
	ProgressLogger = root.Named("progress").Sugar()
	WarningLogger = root.Named("warning").Sugar()
}

// Root returns the current root logger, to be specialized
// with Named by components owning their own logger.
func Root() *zap.Logger { return root }
