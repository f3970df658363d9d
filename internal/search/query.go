package search

import (
	"fmt"
	"strings"
)

// BuildQuery produces the Insights query for the given terms and result cap,
// with its four clauses in fixed order: project timestamp and message, sort
// newest first, filter to messages containing any term, cap at limit.
// Deterministic for identical inputs.
func BuildQuery(terms []string, limit int) string {
	clauses := make([]string, len(terms))
	for i, term := range terms {
		clauses[i] = fmt.Sprintf("@message like '%s'", escapeTerm(term))
	}
	return fmt.Sprintf(
		"fields @timestamp, @message | sort @timestamp desc | filter (%s) | limit %d",
		strings.Join(clauses, " or "), limit)
}

// escapeTerm neutralizes the query-string delimiters in a literal term so it
// cannot break out of its like clause. Backslashes first, then quotes.
func escapeTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `'`, `\'`)
}
