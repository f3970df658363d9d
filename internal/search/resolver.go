package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crimson-sun/stackgrep/internal/model"
)

// logGroupDerivers maps each loggable resource type to the rule deriving its
// log group name. The map doubles as the allow-list, so every accepted type
// has a derivation rule by construction.
var logGroupDerivers = map[string]func(model.Resource) string{
	"AWS::Logs::LogGroup": func(r model.Resource) string {
		return r.PhysicalID
	},
	"AWS::Lambda::Function": func(r model.Resource) string {
		return "/aws/lambda/" + r.PhysicalID
	},
}

// LoggableResourceTypes returns the allow-listed resource types, sorted.
func LoggableResourceTypes() []string {
	types := make([]string, 0, len(logGroupDerivers))
	for t := range logGroupDerivers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidationError reports a resource type outside the loggable allow-list
// reaching log group derivation.
type ValidationError struct {
	ResourceType string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("resource type %s does not match one of the expected types: %s",
		e.ResourceType, strings.Join(LoggableResourceTypes(), ","))
}

// FilterLoggable keeps only resources whose type is on the loggable
// allow-list, preserving input order.
func FilterLoggable(resources []model.Resource) []model.Resource {
	var loggable []model.Resource
	for _, r := range resources {
		if _, ok := logGroupDerivers[r.ResourceType]; ok {
			loggable = append(loggable, r)
		}
	}
	return loggable
}

// DeriveLogGroups translates each loggable resource into its log group name,
// one name per resource, in input order. A resource type outside the
// allow-list is unreachable after FilterLoggable but is still rejected with a
// ValidationError rather than skipped.
func DeriveLogGroups(resources []model.Resource) ([]string, error) {
	groups := make([]string, 0, len(resources))
	for _, r := range resources {
		derive, ok := logGroupDerivers[r.ResourceType]
		if !ok {
			return nil, &ValidationError{ResourceType: r.ResourceType}
		}
		groups = append(groups, derive(r))
	}
	return groups, nil
}
