// Package query renders entity criteria and statements to parameterized
// PostgreSQL. Placeholders are positional ($1, $2, ...) and numbered by one
// running counter per statement, never per condition.
package query

import (
	"fmt"

	"github.com/lib/pq"
)

// Op is a comparison operator applied to one entity field.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
	OpNin
	OpLike
	OpNLike
)

// Condition is a typed filter over one field. Conditions in a list are
// implicitly ANDed; there is no boolean grouping.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Eq matches rows whose field equals the value.
func Eq(field string, value any) Condition { return Condition{Field: field, Op: OpEq, Value: value} }

// Neq matches rows whose field differs from the value.
func Neq(field string, value any) Condition { return Condition{Field: field, Op: OpNeq, Value: value} }

// Gt matches rows whose field is greater than the value.
func Gt(field string, value any) Condition { return Condition{Field: field, Op: OpGt, Value: value} }

// Gte matches rows whose field is greater than or equal to the value.
func Gte(field string, value any) Condition { return Condition{Field: field, Op: OpGte, Value: value} }

// Lt matches rows whose field is less than the value.
func Lt(field string, value any) Condition { return Condition{Field: field, Op: OpLt, Value: value} }

// Lte matches rows whose field is less than or equal to the value.
func Lte(field string, value any) Condition { return Condition{Field: field, Op: OpLte, Value: value} }

// In matches rows whose field equals any element of the list value.
func In(field string, values any) Condition { return Condition{Field: field, Op: OpIn, Value: values} }

// Nin matches rows whose field equals no element of the list value.
func Nin(field string, values any) Condition {
	return Condition{Field: field, Op: OpNin, Value: values}
}

// Like matches rows whose field matches the SQL pattern.
func Like(field string, pattern string) Condition {
	return Condition{Field: field, Op: OpLike, Value: pattern}
}

// NLike matches rows whose field does not match the SQL pattern.
func NLike(field string, pattern string) Condition {
	return Condition{Field: field, Op: OpNLike, Value: pattern}
}

// render returns the SQL fragment for the condition bound to placeholder n.
func (c Condition) render(n int) string {
	switch c.Op {
	case OpEq:
		return fmt.Sprintf("%s = $%d", c.Field, n)
	case OpNeq:
		return fmt.Sprintf("%s != $%d", c.Field, n)
	case OpGt:
		return fmt.Sprintf("%s > $%d", c.Field, n)
	case OpGte:
		return fmt.Sprintf("%s >= $%d", c.Field, n)
	case OpLt:
		return fmt.Sprintf("%s < $%d", c.Field, n)
	case OpLte:
		return fmt.Sprintf("%s <= $%d", c.Field, n)
	case OpIn:
		return fmt.Sprintf("%s = ANY($%d)", c.Field, n)
	case OpNin:
		return fmt.Sprintf("%s != ANY($%d)", c.Field, n)
	case OpLike:
		return fmt.Sprintf("%s LIKE $%d", c.Field, n)
	case OpNLike:
		return fmt.Sprintf("%s NOT LIKE $%d", c.Field, n)
	default:
		panic(fmt.Sprintf("query: unknown operator %d", c.Op))
	}
}

// arg returns the driver-facing value for the condition. List values for
// In/Nin are wrapped so the driver binds them as a postgres array.
func (c Condition) arg() any {
	if c.Op == OpIn || c.Op == OpNin {
		return pq.Array(c.Value)
	}
	return c.Value
}
