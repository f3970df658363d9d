// Package search implements the orchestration pipeline: resolve the log
// groups of a stack, dispatch a term query per group, wait for the backend
// to finish, and aggregate non-empty results into a report.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crimson-sun/stackgrep/internal/directory"
	"github.com/crimson-sun/stackgrep/internal/logsearch"
	"github.com/crimson-sun/stackgrep/internal/model"
)

// Options configures a search run.
type Options struct {
	StackName        string
	PartialStackName string
	QueryWait        int // seconds; poll deadline for query completion
	QueryLimit       int // per-source result cap
	StartMins        *int
	StartHours       *int
	StartDays        *int
	EndTimeMillis    int64
	Concurrency      int
	PollInterval     time.Duration
}

// Validate checks the option set before any backend call is made. Violations
// are configuration errors and abort the run.
func (o Options) Validate() error {
	if o.StackName != "" && o.PartialStackName != "" {
		return errors.New("stack name and partial stack name are mutually exclusive; supply only one")
	}
	if o.StackName == "" && o.PartialStackName == "" {
		return errors.New("either a stack name or a partial stack name is required")
	}
	if _, err := o.offsetMillis(); err != nil {
		return err
	}
	if o.QueryWait <= 0 {
		return fmt.Errorf("query wait must be positive, got %d", o.QueryWait)
	}
	if o.QueryLimit <= 0 {
		return fmt.Errorf("query limit must be positive, got %d", o.QueryLimit)
	}
	if o.EndTimeMillis <= 0 {
		return fmt.Errorf("end time must be a positive epoch millisecond value, got %d", o.EndTimeMillis)
	}
	if o.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", o.Concurrency)
	}
	if o.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", o.PollInterval)
	}
	return nil
}

// ReportWriter persists a non-empty report and returns the artifact path.
type ReportWriter interface {
	Write(report model.Report) (string, error)
}

// ProgressRenderer displays completion progress while queries run.
type ProgressRenderer interface {
	// Render draws the bar at the given percentage (0-100).
	Render(percent int)
	// Done terminates the progress display.
	Done()
}

// Searcher runs the search pipeline. All collaborators are injected; the
// Searcher holds no global state and is created fresh per invocation.
type Searcher struct {
	directory directory.Directory
	backend   logsearch.Backend
	reports   ReportWriter
	progress  ProgressRenderer
	logger    *slog.Logger
	terms     []string
	opts      Options
}

// New creates a Searcher from its collaborators.
func New(dir directory.Directory, backend logsearch.Backend, reports ReportWriter, progress ProgressRenderer, logger *slog.Logger, terms []string, opts Options) *Searcher {
	return &Searcher{
		directory: dir,
		backend:   backend,
		reports:   reports,
		progress:  progress,
		logger:    logger,
		terms:     terms,
		opts:      opts,
	}
}

// Run executes the search for the configured stack, or for every stable
// stack matching the partial name. Stacks under a partial-name filter are
// processed sequentially; a hard failure aborts the remaining stacks.
func (s *Searcher) Run(ctx context.Context) error {
	if err := s.opts.Validate(); err != nil {
		return err
	}
	if len(s.terms) == 0 {
		return errors.New("no query terms configured")
	}
	window, err := s.opts.Window()
	if err != nil {
		return err
	}

	s.logger.Info("query terms", "terms", strings.Join(s.terms, ", "))

	if s.opts.PartialStackName != "" {
		stacks, err := s.directory.ListStableStacks(ctx, s.opts.PartialStackName)
		if err != nil {
			return err
		}
		if len(stacks) == 0 {
			s.logger.Info("no stable stacks match the partial name", "partial_name", s.opts.PartialStackName)
			return nil
		}
		for _, stack := range stacks {
			if err := s.searchStack(ctx, stack, window); err != nil {
				return err
			}
		}
		return nil
	}

	return s.searchStack(ctx, s.opts.StackName, window)
}

// searchStack runs the full pipeline for one stack.
func (s *Searcher) searchStack(ctx context.Context, stackName string, window model.TimeWindow) error {
	resources, err := s.directory.ListResources(ctx, stackName)
	if err != nil {
		return err
	}

	loggable := FilterLoggable(resources)
	s.logger.Info("found loggable resources", "count", len(loggable), "stack", stackName)
	if len(loggable) == 0 {
		s.logger.Info("no log groups to query", "stack", stackName)
		return nil
	}

	logGroups, err := DeriveLogGroups(loggable)
	if err != nil {
		return err
	}

	queryString := BuildQuery(s.terms, s.opts.QueryLimit)
	handles, err := s.dispatch(ctx, logGroups, queryString, window)
	if err != nil {
		return err
	}
	s.logger.Info("started queries", "count", liveCount(handles), "stack", stackName)

	s.logger.Info("waiting for queries to complete", "max_wait_seconds", s.opts.QueryWait)
	if err := s.awaitCompletion(ctx, handles); err != nil {
		return err
	}

	s.logger.Info("collecting query results", "stack", stackName)
	results, err := s.collect(ctx, handles)
	if err != nil {
		return err
	}

	report := model.Report{Stack: stackName, Results: results}
	if report.Empty() {
		s.logger.Info("no query term matches", "stack", stackName, "log_groups_checked", len(logGroups))
		for _, group := range logGroups {
			s.logger.Info("checked log group", "log_group", group)
		}
		return nil
	}

	s.logger.Warn("query term match found", "stack", stackName, "log_groups_affected", len(report.Results))
	for _, result := range report.Results {
		s.logger.Warn("affected log group", "log_group", result.LogGroup)
	}

	path, err := s.reports.Write(report)
	if err != nil {
		return err
	}
	s.logger.Info("results file written", "stack", stackName, "path", path)
	return nil
}

func liveCount(handles []model.QueryHandle) int {
	n := 0
	for _, h := range handles {
		if !h.Inert() {
			n++
		}
	}
	return n
}
