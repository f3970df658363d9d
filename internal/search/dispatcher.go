package search

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/stackgrep/internal/logsearch"
	"github.com/crimson-sun/stackgrep/internal/model"
)

// dispatch submits one query per log group with bounded parallelism. The
// returned handles are slotted by input index, so their order matches the
// log group list regardless of completion order. A log group the backend
// does not know yields an inert handle and a warning; any other backend
// failure aborts the dispatch.
func (s *Searcher) dispatch(ctx context.Context, logGroups []string, queryString string, window model.TimeWindow) ([]model.QueryHandle, error) {
	handles := make([]model.QueryHandle, len(logGroups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, group := range logGroups {
		i, group := i, group
		g.Go(func() error {
			queryID, err := s.backend.StartQuery(ctx, group, queryString, s.opts.QueryLimit, window)
			if err != nil {
				if errors.Is(err, logsearch.ErrSourceNotFound) {
					s.logger.Warn("log group not found; it likely has no log stream", "log_group", group)
					handles[i] = model.QueryHandle{LogGroup: group}
					return nil
				}
				return err
			}
			handles[i] = model.QueryHandle{LogGroup: group, QueryID: queryID}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return handles, nil
}
