package app

import (
	"context"
	"time"

	"github.com/ebike-foss/ctrlcore/internal/lcd"
)

// TickInterval is the fixed 10 Hz slow-tick period the control pipeline
// runs at, per spec.md §5.
const TickInterval = 100 * time.Millisecond

// Run ticks the App at TickInterval until ctx is cancelled, invoking
// onTick with the telemetry frame produced by each successful Tick.
// Grounded on the teacher logger's ticker-driven pollLoop.
func (a *App) Run(ctx context.Context, onTick func(lcd.TXTelemetry)) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tx, err := a.Tick()
			if err != nil {
				a.log.Error("tick failed", "error", err)
				continue
			}
			if onTick != nil {
				onTick(tx)
			}
		}
	}
}
