package migrate_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	qt "github.com/frankban/quicktest"
	"github.com/go-extras/go-kit/must"
	"github.com/google/uuid"

	"github.com/stokaro/tabula/migrate"
	"github.com/stokaro/tabula/repo"
)

const ledgerSelectSQL = "SELECT * FROM migrations WHERE 1 = 1 AND seq_order = $1"

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func emptyLedgerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "seq_order", "up", "down", "applied_on"})
}

func testDefinition() migrate.Definition {
	return migrate.Definition{
		Seq:  1,
		Name: "create_accounts",
		Up:   []string{"CREATE TABLE accounts (id uuid PRIMARY KEY)"},
		Down: []string{"DROP TABLE accounts"},
	}
}

func TestRunner_Initialize(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := migrate.NewRunner(db).Initialize(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(mock.ExpectationsWereMet(), qt.IsNil)
}

func TestRunner_Apply_Fresh(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)
	def := testDefinition()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ledgerSelectSQL)).
		WithArgs(def.Seq).
		WillReturnRows(emptyLedgerRows())
	mock.ExpectExec(regexp.QuoteMeta(def.Up[0])).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO migrations (id, name, seq_order, up, down, applied_on) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs(sqlmock.AnyArg(), def.Name, def.Seq, def.Up[0], def.Down[0], sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := migrate.NewRunner(db).Apply(context.Background(), def)
	c.Assert(err, qt.IsNil)
	c.Assert(mock.ExpectationsWereMet(), qt.IsNil)
}

func TestRunner_Apply_AlreadyApplied(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)
	def := testDefinition()

	appliedOn := must.Must(time.Parse(time.RFC3339, "2024-01-01T00:00:00Z"))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ledgerSelectSQL)).
		WithArgs(def.Seq).
		WillReturnRows(emptyLedgerRows().
			AddRow(uuid.New().String(), def.Name, def.Seq, def.Up[0], def.Down[0], appliedOn))
	mock.ExpectCommit()

	// No DDL executes; the matching ledger record makes this a no-op success.
	err := migrate.NewRunner(db).Apply(context.Background(), def)
	c.Assert(err, qt.IsNil)
	c.Assert(mock.ExpectationsWereMet(), qt.IsNil)
}

func TestRunner_Apply_UpFailureRunsDown(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)
	def := testDefinition()

	upErr := errors.New(`syntax error at or near "TABLE"`)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ledgerSelectSQL)).
		WithArgs(def.Seq).
		WillReturnRows(emptyLedgerRows())
	mock.ExpectExec(regexp.QuoteMeta(def.Up[0])).WillReturnError(upErr)
	mock.ExpectRollback()
	// Down runs best-effort on the plain connection after rollback.
	mock.ExpectExec(regexp.QuoteMeta(def.Down[0])).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := migrate.NewRunner(db).Apply(context.Background(), def)

	var repoErr *repo.Error
	c.Assert(errors.As(err, &repoErr), qt.IsTrue)
	c.Assert(err.Error(), qt.Contains, "syntax error")
	c.Assert(mock.ExpectationsWereMet(), qt.IsNil)
}

func TestRunner_Apply_DownFailureNeverOverridesUpError(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)
	def := testDefinition()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(ledgerSelectSQL)).
		WithArgs(def.Seq).
		WillReturnRows(emptyLedgerRows())
	mock.ExpectExec(regexp.QuoteMeta(def.Up[0])).
		WillReturnError(errors.New("up went wrong"))
	mock.ExpectRollback()
	mock.ExpectExec(regexp.QuoteMeta(def.Down[0])).
		WillReturnError(errors.New("down went wrong too"))

	err := migrate.NewRunner(db).Apply(context.Background(), def)

	// The caller sees the up failure; the down failure is only logged.
	c.Assert(err, qt.IsNotNil)
	c.Assert(err.Error(), qt.Contains, "up went wrong")
	c.Assert(err.Error(), qt.Not(qt.Contains), "down went wrong")
	c.Assert(mock.ExpectationsWereMet(), qt.IsNil)
}

func TestRunner_Apply_BeginFailureIsUnknown(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := migrate.NewRunner(db).Apply(context.Background(), testDefinition())
	c.Assert(errors.Is(err, repo.ErrUnknown), qt.IsTrue)
	c.Assert(err.Error(), qt.Contains, "too many connections")
}

func TestRunner_ApplyAll_AscendingOrder(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)

	first := migrate.Definition{Seq: 1, Name: "first", Up: []string{"CREATE TABLE a (id int)"}}
	second := migrate.Definition{Seq: 2, Name: "second", Up: []string{"CREATE TABLE b (id int)"}}
	reg := migrate.NewRegistry(second, first)

	for _, def := range []migrate.Definition{first, second} {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(ledgerSelectSQL)).
			WithArgs(def.Seq).
			WillReturnRows(emptyLedgerRows())
		mock.ExpectExec(regexp.QuoteMeta(def.Up[0])).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO migrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	err := migrate.NewRunner(db).ApplyAll(context.Background(), reg)
	c.Assert(err, qt.IsNil)
	c.Assert(mock.ExpectationsWereMet(), qt.IsNil)
}

func TestRunner_GetStatus(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(t)

	appliedOn := must.Must(time.Parse(time.RFC3339, "2024-01-01T00:00:00Z"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM migrations")).
		WillReturnRows(emptyLedgerRows().
			AddRow(uuid.New().String(), "first", 1, "up", "down", appliedOn))

	reg := migrate.NewRegistry(
		migrate.Definition{Seq: 1, Name: "first"},
		migrate.Definition{Seq: 2, Name: "second"},
	)

	status, err := migrate.NewRunner(db).GetStatus(context.Background(), reg)
	c.Assert(err, qt.IsNil)
	c.Assert(status.Applied, qt.DeepEquals, []int{1})
	c.Assert(status.Pending, qt.DeepEquals, []int{2})
}
