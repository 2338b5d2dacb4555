package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the review cycle from the event context into the event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if cycle := GetCycle(ctx); cycle != 0 {
		e.Int("cycle", cycle)
	}
}
