package postgresql

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed predicates with positional parameters.
// Predicates are fixed SQL fragments; values only ever travel as arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends cond, replacing each %s with the next placeholder bound to the
// matching value.
func (w *whereBuilder) add(cond string, values ...any) {
	placeholders := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = w.next(v)
	}
	w.conds = append(w.conds, fmt.Sprintf(cond, placeholders...))
}

// next binds v and returns its placeholder.
func (w *whereBuilder) next(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) where() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
