package logging

import "context"

type contextKey string

const cycleKey contextKey = "review_cycle"

// WithCycle tags the context with a review cycle number.
func WithCycle(ctx context.Context, cycle int) context.Context {
	return context.WithValue(ctx, cycleKey, cycle)
}

// GetCycle returns the review cycle number stored in ctx.
// Returns 0 if not present.
func GetCycle(ctx context.Context) int {
	if id, ok := ctx.Value(cycleKey).(int); ok {
		return id
	}
	return 0
}
