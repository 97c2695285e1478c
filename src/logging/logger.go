package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

var level = new(slog.LevelVar)

var base atomic.Pointer[slog.Logger]

func init() {
	SetOutput(os.Stderr)
}

// SetOutput replaces the destination of all log output (tests capture with a buffer).
func SetOutput(w io.Writer) {
	base.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	level.Set(l)
}

// GetLogLevel returns the current global level.
func GetLogLevel() slog.Level { return level.Level() }

// Logger exposes the underlying structured logger for callers that want attrs.
func Logger() *slog.Logger { return base.Load() }

func logf(l slog.Level, format string, args ...interface{}) {
	lg := base.Load()
	if !lg.Enabled(context.Background(), l) {
		return
	}
	// Plain messages are not run through Sprintf so literal % signs survive.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	lg.Log(context.Background(), l, msg)
}

func Debugf(format string, a ...interface{}) { logf(slog.LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(slog.LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(slog.LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(slog.LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level. Use with defer.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
