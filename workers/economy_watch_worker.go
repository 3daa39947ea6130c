package workers

import (
	"context"
	"log"
	"time"

	"pixel-hunt-system/models"
)

// PingableEconomy is an economy whose backing store can be probed.
type PingableEconomy interface {
	models.Economy
	Ping(ctx context.Context) error
}

// EconomySink receives the economy, or nil once it becomes unavailable.
type EconomySink interface {
	Set(economy models.Economy)
}

// CheckEconomy probes economy once and publishes the outcome to sink.
func CheckEconomy(ctx context.Context, economy PingableEconomy, sink EconomySink) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := economy.Ping(pingCtx); err != nil {
		log.Printf("❌ Economy unavailable: %v", err)
		sink.Set(nil)
		return false
	}
	sink.Set(economy)
	return true
}

// WatchEconomy keeps sink in step with the economy's availability until ctx ends.
func WatchEconomy(ctx context.Context, economy PingableEconomy, sink EconomySink, pollInterval time.Duration) {
	log.Printf("Starting economy watch (every %s)...", pollInterval)
	up := CheckEconomy(ctx, economy, sink)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Economy watch stopped.")
			return
		case <-ticker.C:
			now := CheckEconomy(ctx, economy, sink)
			if now != up {
				if now {
					log.Println("✅ Economy is back, currency rewards enabled.")
				} else {
					log.Println("⚠️ Economy lost, currency rewards paused.")
				}
			}
			up = now
		}
	}
}
