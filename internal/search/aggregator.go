package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// collect fetches the current result set of every live handle with bounded
// parallelism. Inert handles and empty result sets are dropped; the retained
// results keep the order of the input handle list, not completion order.
func (s *Searcher) collect(ctx context.Context, handles []model.QueryHandle) ([]model.QueryResult, error) {
	slots := make([][]model.Record, len(handles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, h := range handles {
		if h.Inert() {
			continue
		}
		i, h := i, h
		g.Go(func() error {
			records, err := s.backend.GetResults(ctx, h.QueryID)
			if err != nil {
				return err
			}
			slots[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []model.QueryResult
	for i, records := range slots {
		if len(records) == 0 {
			continue
		}
		results = append(results, model.QueryResult{
			LogGroup: handles[i].LogGroup,
			Records:  records,
		})
	}
	return results, nil
}
