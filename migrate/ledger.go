package migrate

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stokaro/tabula/entity"
	"github.com/stokaro/tabula/repo"
)

// Record is one row of the applied-migrations ledger. The presence of a
// record for a seq_order means that order's up statements already executed
// and committed. Records are written once and never updated or deleted under
// normal operation.
type Record struct {
	ID        uuid.UUID
	Name      string
	SeqOrder  int
	Up        string
	Down      string
	AppliedOn time.Time
}

var ledgerDescriptor = entity.Descriptor{
	Table: "migrations",
	ID:    entity.Field{Name: "id", SQLType: "uuid"},
	Fields: []entity.Field{
		{Name: "name", SQLType: "text"},
		{Name: "seq_order", SQLType: "integer"},
		{Name: "up", SQLType: "text"},
		{Name: "down", SQLType: "text"},
		{Name: "applied_on", SQLType: "timestamp"},
	},
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	err := rows.Scan(&rec.ID, &rec.Name, &rec.SeqOrder, &rec.Up, &rec.Down, &rec.AppliedOn)
	return rec, err
}

func (r Record) fieldValues() []any {
	return []any{r.Name, r.SeqOrder, r.Up, r.Down, r.AppliedOn}
}

// NewLedger returns the repository for the ledger table.
func NewLedger() *repo.Repo[Record] {
	return repo.New(ledgerDescriptor, scanRecord)
}
