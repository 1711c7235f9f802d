package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds one completion run so a stuck database cannot pile up runs.
const sweepTimeout = 2 * time.Minute

// Completer completes confirmed reservations that ended at least grace ago.
type Completer interface {
	CompleteFinished(ctx context.Context, grace time.Duration) (int, error)
}

// RegisterCompletionSweep schedules the completion sweep on c. Bookings stay
// CONFIRMED for grace after their end so a no-show can still be recorded.
// The caller starts and stops the scheduler.
func RegisterCompletionSweep(c *cron.Cron, schedule string, grace time.Duration, completer Completer) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		runCompletionSweep(context.Background(), completer, grace)
	})
}

func runCompletionSweep(ctx context.Context, completer Completer, grace time.Duration) int {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	started := time.Now()
	n, err := completer.CompleteFinished(ctx, grace)
	if err != nil {
		log.Printf("job=completion_sweep status=failed grace=%s error=%v", grace, err)
		return 0
	}
	log.Printf("job=completion_sweep status=ok completed=%d grace=%s duration=%s", n, grace, time.Since(started))
	return n
}
