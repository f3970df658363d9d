package search

import (
	"context"
	"fmt"
	"time"

	"github.com/crimson-sun/stackgrep/internal/logsearch"
	"github.com/crimson-sun/stackgrep/internal/model"
)

// awaitCompletion polls each live handle's status on the configured interval
// until every query reaches a terminal state or the QueryWait deadline
// passes. Each handle moves Submitted -> Running -> Complete; a Failed,
// Cancelled or backend-side Timeout status surfaces as an error. Handles
// still running at the deadline are logged and left for best-effort
// collection. A linear progress indicator is redrawn on every poll tick.
func (s *Searcher) awaitCompletion(ctx context.Context, handles []model.QueryHandle) error {
	var pending []int
	for i, h := range handles {
		if !h.Inert() {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	total := time.Duration(s.opts.QueryWait) * time.Second
	start := time.Now()
	deadline := start.Add(total)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()
	defer s.progress.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			var still []int
			for _, i := range pending {
				status, err := s.backend.QueryStatus(ctx, handles[i].QueryID)
				if err != nil {
					return err
				}
				switch status {
				case logsearch.StatusComplete:
					// terminal, ready for collection
				case logsearch.StatusFailed, logsearch.StatusCancelled, logsearch.StatusTimeout:
					return fmt.Errorf("query %s for log group %s ended with status %s",
						handles[i].QueryID, handles[i].LogGroup, status)
				default:
					still = append(still, i)
				}
			}
			pending = still

			if len(pending) == 0 {
				s.progress.Render(100)
				return nil
			}
			if !now.Before(deadline) {
				s.progress.Render(100)
				for _, i := range pending {
					s.logger.Warn("query still running at deadline; collecting partial results",
						"log_group", handles[i].LogGroup, "query_id", handles[i].QueryID)
				}
				return nil
			}
			s.progress.Render(int(now.Sub(start) * 100 / total))
		}
	}
}
