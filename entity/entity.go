// Package entity describes aggregates mapped one-to-one onto tables: a unique
// id column plus an ordered list of typed fields. Descriptors drive the
// statement builder in the query package, so the declared field order is the
// order columns appear in generated SQL.
package entity

// Field is a single named column with its SQL type.
type Field struct {
	Name    string
	SQLType string
}

// Descriptor maps one aggregate to one table. ID is the primary key and is
// kept apart from Fields: generated statements bind it first on insert and
// last on update.
type Descriptor struct {
	Table  string
	ID     Field
	Fields []Field
}

// FieldNames returns the non-id column names in declared order.
func (d Descriptor) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// Columns returns every column name, id first, then the fields in declared
// order.
func (d Descriptor) Columns() []string {
	cols := make([]string, 0, len(d.Fields)+1)
	cols = append(cols, d.ID.Name)
	return append(cols, d.FieldNames()...)
}
