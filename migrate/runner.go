// Package migrate tracks applied migrations in a ledger table and applies
// pending definitions one transaction at a time. DDL and the ledger write for
// a definition commit together or not at all.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stokaro/tabula/query"
	"github.com/stokaro/tabula/repo"
)

const ledgerSchemaSQL = `CREATE TABLE IF NOT EXISTS migrations (
	id uuid NOT NULL PRIMARY KEY,
	name text,
	seq_order integer,
	up text,
	down text,
	applied_on timestamp DEFAULT current_timestamp
)`

// Status reports which definitions of a registry have been applied.
type Status struct {
	Applied []int
	Pending []int
}

// Runner applies migration definitions against a database. Each definition
// runs inside its own transaction together with its ledger record.
type Runner struct {
	db     *sql.DB
	ledger *repo.Repo[Record]
	logger *slog.Logger
}

// NewRunner creates a runner for the given database.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{
		db:     db,
		ledger: NewLedger(),
		logger: slog.Default(),
	}
}

// WithLogger returns a copy of the runner using the given logger.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	tmp := *r
	tmp.logger = l
	return &tmp
}

// Initialize creates the ledger table if it does not exist.
func (r *Runner) Initialize(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, ledgerSchemaSQL); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	return nil
}

// Apply runs one definition. The ledger is checked for a record with the same
// seq_order: presence is a no-op success, absence triggers application. The
// up statements and the ledger insert share one transaction.
//
// When an up statement fails, the transaction is rolled back and the down
// statements run as best-effort cleanup on the plain connection. Their
// failures are logged and swallowed; the up failure is what the caller sees.
func (r *Runner) Apply(ctx context.Context, def Definition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction for migration %d: %v", repo.ErrUnknown, def.Seq, err)
	}

	existing, err := r.ledger.FindOne(ctx, tx, query.Eq("seq_order", def.Seq))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if existing != nil {
		r.logger.Info("migration already applied", "seq", def.Seq, "name", def.Title())
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("%w: commit transaction for migration %d: %v", repo.ErrUnknown, def.Seq, err)
		}
		return nil
	}

	r.logger.Info("applying migration", "seq", def.Seq, "name", def.Title())
	for _, stmt := range def.Up {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			r.runDown(ctx, def)
			return &repo.Error{Op: fmt.Sprintf("apply migration %d", def.Seq), Err: err}
		}
	}

	rec := Record{
		ID:        uuid.New(),
		Name:      def.Name,
		SeqOrder:  def.Seq,
		Up:        strings.Join(def.Up, "\n"),
		Down:      strings.Join(def.Down, "\n"),
		AppliedOn: time.Now().UTC(),
	}
	if err := r.ledger.Insert(ctx, tx, rec.ID, rec.fieldValues()); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction for migration %d: %v", repo.ErrUnknown, def.Seq, err)
	}
	r.logger.Info("applied migration", "seq", def.Seq, "name", def.Title())
	return nil
}

// runDown executes the down statements after a failed up. The enclosing
// transaction is already gone, so this is best effort only.
func (r *Runner) runDown(ctx context.Context, def Definition) {
	for _, stmt := range def.Down {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.logger.Error("migration down step failed", "seq", def.Seq, "error", err)
		}
	}
}

// ApplyAll applies every registered definition in ascending seq order,
// stopping at the first failure.
func (r *Runner) ApplyAll(ctx context.Context, reg *Registry) error {
	for _, def := range reg.Definitions() {
		if err := r.Apply(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

// GetStatus reports applied and pending seq orders for the registry.
func (r *Runner) GetStatus(ctx context.Context, reg *Registry) (*Status, error) {
	records, err := r.ledger.FindAll(ctx, r.db)
	if err != nil {
		return nil, err
	}
	applied := make(map[int]bool, len(records))
	status := &Status{}
	for _, rec := range records {
		applied[rec.SeqOrder] = true
		status.Applied = append(status.Applied, rec.SeqOrder)
	}
	sort.Ints(status.Applied)
	for _, def := range reg.Definitions() {
		if !applied[def.Seq] {
			status.Pending = append(status.Pending, def.Seq)
		}
	}
	return status, nil
}

// Records streams the ledger contents. A record that fails to decode is
// replaced by a zero Record.
func (r *Runner) Records(ctx context.Context) (iter.Seq[Record], error) {
	return r.ledger.Stream(ctx, r.db, Record{})
}
