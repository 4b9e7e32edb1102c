package scheduler

import (
	"context"
	"time"

	"k8s.io/utils/clock"
)

// Burst calls fn n times, the first immediately and the rest spacing apart.
// It returns early with ctx's error if ctx is cancelled between calls.
func Burst(ctx context.Context, clk clock.Clock, n int, spacing time.Duration, fn func(ctx context.Context)) error {
	if clk == nil {
		clk = clock.RealClock{}
	}

	for i := 0; i < n; i++ {
		if i > 0 {
			timer := clk.NewTimer(spacing)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C():
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(ctx)
	}
	return nil
}
