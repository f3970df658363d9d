// Package directory resolves deployment stacks and their resource
// inventories from the infrastructure directory service.
package directory

import (
	"context"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// Directory lists deployed stacks and the resources belonging to them.
type Directory interface {
	// ListStableStacks returns the names of every successfully
	// created or updated stack whose name contains nameFilter.
	// An empty filter matches all stable stacks.
	ListStableStacks(ctx context.Context, nameFilter string) ([]string, error)

	// ListResources returns the resource inventory of the named stack.
	ListResources(ctx context.Context, stackName string) ([]model.Resource, error)
}
