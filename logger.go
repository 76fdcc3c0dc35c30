package tilemap

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for tilemap and its sub-packages.
// By default, tilemap produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by tilemap:
//   - [slog.LevelDebug]: derived geometry (world size, offset, atlas tile counts)
//   - [slog.LevelInfo]: a map became render-ready
//   - [slog.LevelWarn]: non-invertible object transforms
//   - [slog.LevelError]: atlas geometry that does not match the tile size, logged
//     right before the panic
//
// Example:
//
//	tilemap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by tilemap.
// Sub-packages (gpulayout, mapfile, atlasimage, preview, ebitenmap) call this
// to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
