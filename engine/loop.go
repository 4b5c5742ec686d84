package engine

import (
	"context"
	"time"

	"termtris/types"
)

// FramePeriod is the default frame rate for RunFrames.
const FramePeriod = 16 * time.Millisecond

// RunFrames calls eng.Frame once per period until ctx is cancelled or the game is over.
// dispatch runs each frame on the goroutine that owns eng (for tview, QueueUpdateDraw);
// nil calls it directly. RunFrames blocks until it stops.
func RunFrames(ctx context.Context, eng GameEngine, period time.Duration, dispatch func(func())) {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			over := make(chan bool, 1)
			dispatch(func() {
				eng.Frame(now)
				over <- eng.Status() != types.Running
			})
			select {
			case <-ctx.Done():
				return
			case stop := <-over:
				if stop {
					return
				}
			}
		}
	}
}
