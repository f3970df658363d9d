// Package model holds the domain types shared across the search pipeline.
package model

// Resource is a provisioned CloudFormation stack resource. Only the fields
// the resolver can act on are carried; bookkeeping attributes such as
// timestamps and drift information never enter the pipeline.
type Resource struct {
	LogicalID    string
	ResourceType string
	PhysicalID   string
	Status       string
}

// TimeWindow bounds a search to [StartMillis, EndMillis) in epoch milliseconds.
type TimeWindow struct {
	StartMillis int64
	EndMillis   int64
}

// Record is a single matched log record, keyed by result field name
// (typically "@timestamp" and "@message").
type Record map[string]string

// QueryHandle pairs a log group with the correlation id of an in-flight
// Insights query. A handle with an empty QueryID is inert: the log group
// could not be queried and contributes nothing to aggregation.
type QueryHandle struct {
	LogGroup string
	QueryID  string
}

// Inert reports whether the handle carries no query to collect.
func (h QueryHandle) Inert() bool {
	return h.QueryID == ""
}

// QueryResult pairs a log group with the records that matched in it.
type QueryResult struct {
	LogGroup string   `json:"log_group_name"`
	Records  []Record `json:"results"`
}

// Report is the full set of non-empty query results for one stack's search.
type Report struct {
	Stack   string
	Results []QueryResult
}

// Empty reports whether no log group produced a match.
func (r Report) Empty() bool {
	return len(r.Results) == 0
}
