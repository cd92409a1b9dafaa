package bootstrap

import (
	"github.com/stokaro/tabula/migrate"
)

const accountsDDL = `CREATE TABLE IF NOT EXISTS accounts (
	id uuid NOT NULL PRIMARY KEY,
	name varchar(255),
	created_on timestamp DEFAULT current_timestamp
)`

const usersDDL = `CREATE TABLE IF NOT EXISTS users (
	id uuid NOT NULL PRIMARY KEY,
	username varchar(255) NOT NULL,
	password varchar(255) NOT NULL,
	roles text NOT NULL,
	account_id uuid NOT NULL REFERENCES accounts(id),
	created_on timestamp DEFAULT current_timestamp
)`

// InitialSchema is the first migration: the accounts and users tables.
// Uniqueness of the superuser role is not enforced here; it relies on the
// check-then-insert sequence in CreateSuperUser.
func InitialSchema() migrate.Definition {
	return migrate.Definition{
		Seq:  1,
		Name: "create_accounts_and_users",
		Up:   []string{accountsDDL, usersDDL},
		Down: []string{"DROP TABLE users", "DROP TABLE accounts"},
	}
}
