package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrProfileNotFound = errors.New("profile not found")

// ValidationError carries per-field problems keyed by json path,
// e.g. "availabilities[1].end_time".
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid settings: " + strings.Join(parts, ", ")
}
