package bootstrap

import (
	"context"

	"github.com/google/uuid"
)

// The repository seams CreateSuperUser needs. Each is supplied per call site
// and invoked at most once per call, which keeps the operation
// persistence-agnostic and testable with deterministic stand-ins.
type (
	// FindSuperUserFunc looks up an existing user carrying the superuser
	// role marker.
	FindSuperUserFunc func(ctx context.Context) (*User, error)
	// FindAccountFunc looks up an existing account by id.
	FindAccountFunc func(ctx context.Context, id uuid.UUID) (*Account, error)
	// InsertAccountFunc inserts the account.
	InsertAccountFunc func(ctx context.Context, account Account) error
	// InsertUserFunc inserts the user.
	InsertUserFunc func(ctx context.Context, user User) error
)

// Deps bundles the four seams.
type Deps struct {
	FindSuperUser FindSuperUserFunc
	FindAccount   FindAccountFunc
	InsertAccount InsertAccountFunc
	InsertUser    InsertUserFunc
}

// CreateSuperUser creates the first account and its superuser. Steps run in
// order, each gated on the previous one's success: validate the user, validate
// the account (both without I/O), check that no superuser exists, check that
// the account id is free, insert the account, insert the user. Conflicts
// short-circuit before any insert, so no partial writes happen on a conflict
// path. Repository failures pass through unwrapped with their original
// diagnostics.
//
// The two existence checks and the two inserts form a check-then-insert
// sequence. Without a database-level unique constraint or stricter isolation,
// two concurrent invocations can both pass the checks and both insert; see
// the package tests.
func CreateSuperUser(ctx context.Context, deps Deps, userIn UserInput, accountIn AccountInput) error {
	if err := validate.Struct(userIn); err != nil {
		return &UserInvalidError{Fields: fieldMessages(err)}
	}
	if err := validate.Struct(accountIn); err != nil {
		return &AccountInvalidError{Fields: fieldMessages(err)}
	}

	existingUser, err := deps.FindSuperUser(ctx)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return ErrSuperUserExists
	}

	existingAccount, err := deps.FindAccount(ctx, accountIn.ID)
	if err != nil {
		return err
	}
	if existingAccount != nil {
		return ErrAccountExists
	}

	if err := deps.InsertAccount(ctx, accountIn.Account()); err != nil {
		return err
	}
	return deps.InsertUser(ctx, userIn.User())
}
