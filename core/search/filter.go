package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter builds a Meilisearch filter expression clause by clause. Values are
// always escaped before entering the expression; callers never concatenate
// raw input into the predicate language.
type Filter struct {
	clauses []string
}

// NewFilter returns an empty filter builder.
func NewFilter() *Filter {
	return &Filter{}
}

// Eq appends a `field = value` clause.
func (f *Filter) Eq(field string, value any) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s = %s", field, formatValue(value)))
	return f
}

// Gt appends a `field > value` clause.
func (f *Filter) Gt(field string, value any) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s > %s", field, formatValue(value)))
	return f
}

// In appends a `field IN [...]` clause. An empty list matches nothing, so it
// is emitted as an impossible clause rather than dropped silently.
func (f *Filter) In(field string, values []int) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s IN %s", field, formatIntList(values)))
	return f
}

// NotIn appends a `field NOT IN [...]` clause.
func (f *Filter) NotIn(field string, values []int) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s NOT IN %s", field, formatIntList(values)))
	return f
}

// Empty reports whether no clauses have been added.
func (f *Filter) Empty() bool {
	return len(f.clauses) == 0
}

// String joins the clauses with AND into the final expression.
func (f *Filter) String() string {
	return strings.Join(f.clauses, " AND ")
}

func formatIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatValue renders a single value for the filter language. Strings are
// quoted with backslash escaping; everything else has a canonical unquoted
// form.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		escaped := strings.ReplaceAll(v, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%d", v)
	}
}
