// Package repo provides generic statement operations over a single entity
// descriptor: insert, update and the three select shapes. Operations run
// against anything satisfying Querier, so the same repository serves both
// plain connections and transactions.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	"github.com/stokaro/tabula/entity"
	"github.com/stokaro/tabula/query"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RowScanner decodes the current row of a result set into a value.
type RowScanner[T any] func(rows *sql.Rows) (T, error)

// Repo is the generic repository for one entity.
type Repo[T any] struct {
	desc entity.Descriptor
	scan RowScanner[T]
}

// New creates a repository from an entity descriptor and its row scanner.
func New[T any](desc entity.Descriptor, scan RowScanner[T]) *Repo[T] {
	return &Repo[T]{desc: desc, scan: scan}
}

// Descriptor returns the entity descriptor the repository operates on.
func (r *Repo[T]) Descriptor() entity.Descriptor {
	return r.desc
}

// Insert executes the generated INSERT with the id bound first and values in
// declared field order.
func (r *Repo[T]) Insert(ctx context.Context, q Querier, id any, values []any) error {
	if len(values) != len(r.desc.Fields) {
		return &Error{
			Op:  "insert " + r.desc.Table,
			Err: fmt.Errorf("got %d values for %d fields", len(values), len(r.desc.Fields)),
		}
	}
	stmt, args := query.BuildInsert(r.desc, id, values)
	if _, err := q.ExecContext(ctx, stmt, args...); err != nil {
		return &Error{Op: "insert " + r.desc.Table, Err: err}
	}
	return nil
}

// Update executes the generated UPDATE with values in declared field order and
// the id bound last.
func (r *Repo[T]) Update(ctx context.Context, q Querier, id any, values []any) error {
	if len(values) != len(r.desc.Fields) {
		return &Error{
			Op:  "update " + r.desc.Table,
			Err: fmt.Errorf("got %d values for %d fields", len(values), len(r.desc.Fields)),
		}
	}
	stmt, args := query.BuildUpdate(r.desc, id, values)
	if _, err := q.ExecContext(ctx, stmt, args...); err != nil {
		return &Error{Op: "update " + r.desc.Table, Err: err}
	}
	return nil
}

// FindOne returns the first matching row, or nil when nothing matches.
// Multiple matches are not detected; callers guarantee uniqueness through
// their conditions.
func (r *Repo[T]) FindOne(ctx context.Context, q Querier, conds ...query.Condition) (*T, error) {
	stmt, args := query.BuildSelect(r.desc.Table, conds)
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &Error{Op: "select " + r.desc.Table, Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &Error{Op: "select " + r.desc.Table, Err: err}
		}
		return nil, nil
	}
	v, err := r.scan(rows)
	if err != nil {
		return nil, &Error{Op: "scan " + r.desc.Table, Err: err}
	}
	return &v, nil
}

// FindAll eagerly returns every matching row in the store's natural order.
func (r *Repo[T]) FindAll(ctx context.Context, q Querier, conds ...query.Condition) ([]T, error) {
	stmt, args := query.BuildSelect(r.desc.Table, conds)
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &Error{Op: "select " + r.desc.Table, Err: err}
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, &Error{Op: "scan " + r.desc.Table, Err: err}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "select " + r.desc.Table, Err: err}
	}
	return out, nil
}

// Stream returns a lazy, single-pass sequence of matching rows. The sequence
// is not restartable; the underlying result set is closed when iteration
// stops. A row that fails to decode never aborts the stream: it is replaced
// by fallback, and callers that need per-row failure visibility detect the
// fallback value downstream.
func (r *Repo[T]) Stream(ctx context.Context, q Querier, fallback T, conds ...query.Condition) (iter.Seq[T], error) {
	stmt, args := query.BuildSelect(r.desc.Table, conds)
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &Error{Op: "select " + r.desc.Table, Err: err}
	}
	return func(yield func(T) bool) {
		defer rows.Close()
		for rows.Next() {
			v, err := r.scan(rows)
			if err != nil {
				v = fallback
			}
			if !yield(v) {
				return
			}
		}
	}, nil
}
