package softdelete

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const deletedAtColumn = "deleted_at"

// NullCond marks a column as IS NULL / IS NOT NULL inside a Where.
type NullCond int

const (
	// Null matches rows where the column is NULL. For deleted_at this is
	// the "live records" condition.
	Null NullCond = iota
	// NotNull matches rows where the column is set. For deleted_at this is
	// the "trash" condition.
	NotNull
)

// Where is a conjunction of column conditions. Values are bound as query
// parameters; NullCond values (and untyped nil) become IS [NOT] NULL
// clauses.
type Where map[string]any

var (
	columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	orderPattern  = regexp.MustCompile(`^[a-z_][a-z0-9_]*( (asc|desc|ASC|DESC))?$`)
)

// WithLiveFilter merges the implicit "not deleted" condition into the
// filter. The default is injected only when the caller's filter carries no
// deleted_at clause at all: an explicit Null (or nil) is kept as-is —
// semantically identical to the default — and an explicit NotNull must
// survive so callers can query the trash.
func (w Where) WithLiveFilter() Where {
	if _, ok := w[deletedAtColumn]; ok {
		return w
	}
	out := make(Where, len(w)+1)
	for k, v := range w {
		out[k] = v
	}
	out[deletedAtColumn] = Null
	return out
}

// HasDeletedAtClause reports whether the caller constrained deleted_at
// explicitly.
func (w Where) HasDeletedAtClause() bool {
	_, ok := w[deletedAtColumn]
	return ok
}

// Conditions renders the filter as a parameterized SQL fragment plus its
// bound arguments. Column names are validated against a strict identifier
// pattern; values are never interpolated. Keys are sorted so the output is
// deterministic.
func (w Where) Conditions() (string, []any, error) {
	if len(w) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, col := range keys {
		if !columnPattern.MatchString(col) {
			return "", nil, fmt.Errorf("invalid column name %q in filter", col)
		}
		switch v := w[col].(type) {
		case nil:
			clauses = append(clauses, col+" IS NULL")
		case NullCond:
			if v == NotNull {
				clauses = append(clauses, col+" IS NOT NULL")
			} else {
				clauses = append(clauses, col+" IS NULL")
			}
		default:
			clauses = append(clauses, col+" = ?")
			args = append(args, v)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}
