package main

import (
	"context"
	"log"
	"time"

	"homehelpBack/internal/repositories"
)

const suspensionCleanerTimeout = 1 * time.Minute

// startSuspensionCleaner periodically reactivates accounts whose suspension
// window has passed.
func startSuspensionCleaner(ctx context.Context, repo *repositories.UserRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, suspensionCleanerTimeout)
			reactivated, err := repo.ReactivateExpiredSuspensions(runCtx, time.Now())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("suspension cleaner: failed to reactivate accounts: %v", err)
				}
			} else if reactivated > 0 && infoLog != nil {
				infoLog.Printf("suspension cleaner: reactivated %d accounts", reactivated)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
