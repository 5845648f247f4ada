package repository

import (
	"fmt"
	"strings"
)

// assignments accumulates the SET list of a partial UPDATE with positional args
type assignments struct {
	cols []string
	args []any
}

func (a *assignments) set(col string, v any) {
	a.args = append(a.args, v)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", col, len(a.args)))
}

func (a *assignments) empty() bool {
	return len(a.cols) == 0
}

// query builds UPDATE table SET ... WHERE id = $n RETURNING returning
func (a *assignments) query(table, id, returning string) (string, []any) {
	args := append(a.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(a.cols, ", "), len(args), returning)
	return q, args
}
