// Package logsearch talks to the asynchronous log search backend.
package logsearch

import (
	"context"
	"errors"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// ErrSourceNotFound reports that the log group does not exist. This is an
// expected condition: a loggable resource that never emitted a log stream
// has no group behind it.
var ErrSourceNotFound = errors.New("logsearch: log group not found")

// Status is the lifecycle state of an asynchronous query.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusRunning   Status = "Running"
	StatusComplete  Status = "Complete"
	StatusFailed    Status = "Failed"
	StatusCancelled Status = "Cancelled"
	StatusTimeout   Status = "Timeout"
	StatusUnknown   Status = "Unknown"
)

// Terminal reports whether the backend will make no further progress on the query.
func (s Status) Terminal() bool {
	switch s {
	case StatusComplete, StatusFailed, StatusCancelled, StatusTimeout:
		return true
	}
	return false
}

// Backend submits term-search queries against individual log groups and
// reads back their results.
type Backend interface {
	// StartQuery submits queryString against logGroup over the given window
	// and returns the backend's correlation id. Returns ErrSourceNotFound
	// (possibly wrapped) when the log group does not exist.
	StartQuery(ctx context.Context, logGroup, queryString string, limit int, window model.TimeWindow) (string, error)

	// QueryStatus reports the current lifecycle state of a query.
	QueryStatus(ctx context.Context, queryID string) (Status, error)

	// GetResults returns the records matched so far by the query.
	GetResults(ctx context.Context, queryID string) ([]model.Record, error)
}
