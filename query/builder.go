package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/stokaro/tabula/entity"
)

// BuildInsert generates the INSERT statement for a descriptor and the matching
// argument list. The id is always bound to $1; field values follow in declared
// order.
func BuildInsert(d entity.Descriptor, id any, values []any) (string, []any) {
	placeholders := make([]string, len(values)+1)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Table,
		strings.Join(d.Columns(), ", "),
		strings.Join(placeholders, ", "))

	args := make([]any, 0, len(values)+1)
	args = append(args, id)
	return stmt, append(args, values...)
}

// BuildUpdate generates the UPDATE statement for a descriptor and the matching
// argument list. Fields take $1..$k in declared order; the id is bound last to
// $(k+1) in the WHERE clause.
func BuildUpdate(d entity.Descriptor, id any, values []any) (string, []any) {
	sets := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		sets[i] = fmt.Sprintf("%s = $%d", f.Name, i+1)
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		d.Table,
		strings.Join(sets, ", "),
		d.ID.Name,
		len(d.Fields)+1)

	return stmt, append(slices.Clone(values), id)
}

// BuildSelect generates a SELECT over the table filtered by the given
// conditions. An empty condition list yields an unfiltered select. There is no
// ordering support; rows come back in the store's natural order.
func BuildSelect(table string, conds []Condition) (string, []any) {
	stmt := "SELECT * FROM " + table
	if len(conds) == 0 {
		return stmt, nil
	}

	var b strings.Builder
	b.WriteString(stmt)
	b.WriteString(" WHERE 1 = 1")
	args := make([]any, 0, len(conds))
	for i, c := range conds {
		b.WriteString(" AND ")
		b.WriteString(c.render(i + 1))
		args = append(args, c.arg())
	}
	return b.String(), args
}
