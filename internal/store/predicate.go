package store

import "strings"

// cond is one column of a NULL-aware identity predicate. A nil value matches
// with IS NULL; SQL equality against NULL never matches, so building the
// predicate from the values is the only way an exact-tuple lookup works.
type cond struct {
	column string
	value  any
}

// eq builds a condition comparing column to a required value.
func eq(column string, value any) cond {
	return cond{column: column, value: value}
}

// eqString builds a condition for a nullable text column.
func eqString(column string, value *string) cond {
	if value == nil {
		return cond{column: column}
	}
	return cond{column: column, value: *value}
}

// eqInt64 builds a condition for a nullable integer column.
func eqInt64(column string, value *int64) cond {
	if value == nil {
		return cond{column: column}
	}
	return cond{column: column, value: *value}
}

// whereClause renders conditions as "WHERE a = ? AND b IS NULL ..." plus the
// bind arguments for the non-NULL values, in column order.
func whereClause(conds []cond) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(conds))
	sb.WriteString("WHERE ")
	for i, c := range conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.column)
		if c.value == nil {
			sb.WriteString(" IS NULL")
		} else {
			sb.WriteString(" = ?")
			args = append(args, c.value)
		}
	}
	return sb.String(), args
}
