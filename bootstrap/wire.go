package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stokaro/tabula/query"
	"github.com/stokaro/tabula/repo"
)

// TxDeps builds the production seams over one transaction.
func TxDeps(tx *sql.Tx) Deps {
	users := NewUserRepo()
	accounts := NewAccountRepo()
	return Deps{
		FindSuperUser: func(ctx context.Context) (*User, error) {
			return users.FindOne(ctx, tx, query.Like("roles", "%"+SuperUserRole+"%"))
		},
		FindAccount: func(ctx context.Context, id uuid.UUID) (*Account, error) {
			return accounts.FindOne(ctx, tx, query.Eq("id", id))
		},
		InsertAccount: func(ctx context.Context, account Account) error {
			return accounts.Insert(ctx, tx, account.ID, account.fieldValues())
		},
		InsertUser: func(ctx context.Context, user User) error {
			return users.Insert(ctx, tx, user.ID, user.fieldValues())
		},
	}
}

// Run executes CreateSuperUser inside a single transaction, so the two
// inserts commit together or not at all. The isolation level is left at the
// store's default.
func Run(ctx context.Context, db *sql.DB, userIn UserInput, accountIn AccountInput) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin bootstrap transaction: %v", repo.ErrUnknown, err)
	}
	if err := CreateSuperUser(ctx, TxDeps(tx), userIn, accountIn); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit bootstrap transaction: %v", repo.ErrUnknown, err)
	}
	return nil
}
