// Package terms loads the list of search terms from a YAML file.
package terms

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// termsFile mirrors the query_terms.yaml layout:
//
//	query-terms:
//	  - ERROR
//	  - Traceback
type termsFile struct {
	QueryTerms []string `yaml:"query-terms"`
}

// Load reads the ordered term list from path. The list must contain at least
// one term and no blank entries; either violation is a configuration error.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("terms: read %s: %w", path, err)
	}

	var tf termsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("terms: parse %s: %w", path, err)
	}

	if len(tf.QueryTerms) == 0 {
		return nil, fmt.Errorf("terms: %s contains no query terms", path)
	}
	for i, term := range tf.QueryTerms {
		if strings.TrimSpace(term) == "" {
			return nil, fmt.Errorf("terms: %s: term %d is blank", path, i+1)
		}
	}

	return tf.QueryTerms, nil
}
