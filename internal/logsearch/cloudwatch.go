package logsearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// cloudWatchLogsAPI is the subset of the CloudWatch Logs client the backend
// needs. Narrowed so tests can substitute a fake.
type cloudWatchLogsAPI interface {
	StartQuery(ctx context.Context, params *cloudwatchlogs.StartQueryInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StartQueryOutput, error)
	GetQueryResults(ctx context.Context, params *cloudwatchlogs.GetQueryResultsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetQueryResultsOutput, error)
}

// CloudWatch implements Backend against CloudWatch Logs Insights.
type CloudWatch struct {
	client cloudWatchLogsAPI
}

// NewCloudWatch creates a Backend backed by the given CloudWatch Logs client.
func NewCloudWatch(client *cloudwatchlogs.Client) *CloudWatch {
	return &CloudWatch{client: client}
}

// StartQuery submits an Insights query. The window arrives in epoch
// milliseconds; the API takes epoch seconds.
func (b *CloudWatch) StartQuery(ctx context.Context, logGroup, queryString string, limit int, window model.TimeWindow) (string, error) {
	out, err := b.client.StartQuery(ctx, &cloudwatchlogs.StartQueryInput{
		LogGroupName: aws.String(logGroup),
		QueryString:  aws.String(queryString),
		StartTime:    aws.Int64(window.StartMillis / 1000),
		EndTime:      aws.Int64(window.EndMillis / 1000),
		Limit:        aws.Int32(int32(limit)),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, logGroup)
		}
		return "", fmt.Errorf("logsearch: start query for %s: %w", logGroup, err)
	}
	return aws.ToString(out.QueryId), nil
}

// QueryStatus reads the query's lifecycle state from GetQueryResults.
func (b *CloudWatch) QueryStatus(ctx context.Context, queryID string) (Status, error) {
	out, err := b.client.GetQueryResults(ctx, &cloudwatchlogs.GetQueryResultsInput{
		QueryId: aws.String(queryID),
	})
	if err != nil {
		return StatusUnknown, fmt.Errorf("logsearch: status of query %s: %w", queryID, err)
	}
	return mapStatus(out.Status), nil
}

// GetResults fetches the query's current result set, flattening each row's
// field list into a Record.
func (b *CloudWatch) GetResults(ctx context.Context, queryID string) ([]model.Record, error) {
	out, err := b.client.GetQueryResults(ctx, &cloudwatchlogs.GetQueryResultsInput{
		QueryId: aws.String(queryID),
	})
	if err != nil {
		return nil, fmt.Errorf("logsearch: results of query %s: %w", queryID, err)
	}

	records := make([]model.Record, 0, len(out.Results))
	for _, row := range out.Results {
		rec := make(model.Record, len(row))
		for _, field := range row {
			rec[aws.ToString(field.Field)] = aws.ToString(field.Value)
		}
		records = append(records, rec)
	}
	return records, nil
}

func mapStatus(s types.QueryStatus) Status {
	switch s {
	case types.QueryStatusScheduled:
		return StatusScheduled
	case types.QueryStatusRunning:
		return StatusRunning
	case types.QueryStatusComplete:
		return StatusComplete
	case types.QueryStatusFailed:
		return StatusFailed
	case types.QueryStatusCancelled:
		return StatusCancelled
	case types.QueryStatusTimeout:
		return StatusTimeout
	default:
		return StatusUnknown
	}
}
