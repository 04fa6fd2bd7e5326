// Package safego runs goroutines that recover from panics instead of
// crashing the process.
package safego

import (
	"context"
	"runtime/debug"

	"github.com/colonyops/cockpit/pkg/logger"
)

// Go runs fn in a new goroutine. A panic inside fn is logged with a stack
// trace and swallowed.
func Go(_ context.Context, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("[safego] recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
