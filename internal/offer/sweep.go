package offer

import (
	"context"
	"log"
	"time"
)

// Sweep removes used and expired records as of now.
func (s *Service) Sweep(now time.Time) int {
	return s.store.Sweep(now.Add(-s.ttl))
}

// RunSweeper periodically evicts used and expired tokens so the in-memory
// store doesn't grow without bound on a long-running process. It blocks
// until ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.Sweep(now); removed > 0 {
				log.Printf("offer sweeper: evicted %d token(s)\n", removed)
			}
		}
	}
}
