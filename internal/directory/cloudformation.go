package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// stableStatuses are the stack statuses considered successfully deployed.
var stableStatuses = []types.StackStatus{
	types.StackStatusCreateComplete,
	types.StackStatusUpdateComplete,
}

// cloudFormationAPI is the subset of the CloudFormation client the directory
// needs. Narrowed so tests can substitute a fake.
type cloudFormationAPI interface {
	cloudformation.ListStacksAPIClient
	DescribeStackResources(ctx context.Context, params *cloudformation.DescribeStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourcesOutput, error)
}

// CloudFormation implements Directory against the AWS CloudFormation API.
type CloudFormation struct {
	client cloudFormationAPI
}

// NewCloudFormation creates a Directory backed by the given CloudFormation client.
func NewCloudFormation(client *cloudformation.Client) *CloudFormation {
	return &CloudFormation{client: client}
}

// ListStableStacks pages through ListStacks filtered to CREATE_COMPLETE and
// UPDATE_COMPLETE, keeping stacks whose name contains nameFilter.
func (d *CloudFormation) ListStableStacks(ctx context.Context, nameFilter string) ([]string, error) {
	paginator := cloudformation.NewListStacksPaginator(d.client, &cloudformation.ListStacksInput{
		StackStatusFilter: stableStatuses,
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("directory: list stacks: %w", err)
		}
		for _, summary := range page.StackSummaries {
			name := aws.ToString(summary.StackName)
			if strings.Contains(name, nameFilter) {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// ListResources returns the stack's resource inventory. Bookkeeping
// attributes (timestamps, drift information) are not carried over.
func (d *CloudFormation) ListResources(ctx context.Context, stackName string) ([]model.Resource, error) {
	out, err := d.client.DescribeStackResources(ctx, &cloudformation.DescribeStackResourcesInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("directory: describe resources for %s: %w", stackName, err)
	}

	resources := make([]model.Resource, 0, len(out.StackResources))
	for _, r := range out.StackResources {
		resources = append(resources, model.Resource{
			LogicalID:    aws.ToString(r.LogicalResourceId),
			ResourceType: aws.ToString(r.ResourceType),
			PhysicalID:   aws.ToString(r.PhysicalResourceId),
			Status:       string(r.ResourceStatus),
		})
	}
	return resources, nil
}
