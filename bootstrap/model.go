// Package bootstrap creates the first account and its superuser in one
// transaction: validation, conflict detection, then two ordered inserts. The
// core operation is persistence-agnostic; all repository calls are injected
// as single-use callables.
package bootstrap

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/stokaro/tabula/entity"
	"github.com/stokaro/tabula/repo"
)

// SuperUserRole marks the single superuser. The lookup matches it as a
// substring of the roles column.
const SuperUserRole = "super_admin"

// Account is the aggregate a superuser belongs to.
type Account struct {
	ID        uuid.UUID
	Name      string
	CreatedOn time.Time
}

// User is a stored user. Password is stored as supplied.
type User struct {
	ID        uuid.UUID
	Username  string
	Password  string
	Roles     string
	AccountID uuid.UUID
	CreatedOn time.Time
}

// created_on is filled by the store, so it is absent from the descriptors and
// never part of generated inserts or updates.
var accountDescriptor = entity.Descriptor{
	Table: "accounts",
	ID:    entity.Field{Name: "id", SQLType: "uuid"},
	Fields: []entity.Field{
		{Name: "name", SQLType: "varchar(255)"},
	},
}

var userDescriptor = entity.Descriptor{
	Table: "users",
	ID:    entity.Field{Name: "id", SQLType: "uuid"},
	Fields: []entity.Field{
		{Name: "username", SQLType: "varchar(255)"},
		{Name: "password", SQLType: "varchar(255)"},
		{Name: "roles", SQLType: "text"},
		{Name: "account_id", SQLType: "uuid"},
	},
}

func scanAccount(rows *sql.Rows) (Account, error) {
	var a Account
	var createdOn sql.NullTime
	if err := rows.Scan(&a.ID, &a.Name, &createdOn); err != nil {
		return Account{}, err
	}
	a.CreatedOn = createdOn.Time
	return a, nil
}

func scanUser(rows *sql.Rows) (User, error) {
	var u User
	var createdOn sql.NullTime
	if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Roles, &u.AccountID, &createdOn); err != nil {
		return User{}, err
	}
	u.CreatedOn = createdOn.Time
	return u, nil
}

func (a Account) fieldValues() []any {
	return []any{a.Name}
}

func (u User) fieldValues() []any {
	return []any{u.Username, u.Password, u.Roles, u.AccountID}
}

// NewAccountRepo returns the repository for the accounts table.
func NewAccountRepo() *repo.Repo[Account] {
	return repo.New(accountDescriptor, scanAccount)
}

// NewUserRepo returns the repository for the users table.
func NewUserRepo() *repo.Repo[User] {
	return repo.New(userDescriptor, scanUser)
}
