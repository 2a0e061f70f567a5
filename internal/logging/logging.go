// Package logging builds the structured logger used by the jsonv command.
package logging

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger writing to w. Debug lines are dropped unless
// debug is set.
func New(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))

	allowed := level.AllowInfo()
	if debug {
		allowed = level.AllowDebug()
	}
	// The caller valuer sits above the filter so level.X(logger) shares its
	// context and the stack depth matches the call site.
	logger = level.NewFilter(logger, allowed)
	return log.With(logger, "caller", log.DefaultCaller)
}

// Nop returns a logger that discards everything.
func Nop() log.Logger {
	return log.NewNopLogger()
}
