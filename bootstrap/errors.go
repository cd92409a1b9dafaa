package bootstrap

import (
	"errors"
	"sort"
	"strings"
)

// Conflict outcomes. They are distinct so callers can tell which existence
// check failed; by construction no insert has happened on either path.
var (
	ErrSuperUserExists = errors.New("only one super user can exist on a system")
	ErrAccountExists   = errors.New("account already exists")
)

// UserInvalidError reports user descriptor validation failures, one message
// per offending field. It is returned before any I/O happens.
type UserInvalidError struct {
	Fields map[string]string
}

func (e *UserInvalidError) Error() string {
	return "user invalid: " + joinFields(e.Fields)
}

// AccountInvalidError reports account descriptor validation failures, one
// message per offending field. It is returned before any I/O happens.
type AccountInvalidError struct {
	Fields map[string]string
}

func (e *AccountInvalidError) Error() string {
	return "account invalid: " + joinFields(e.Fields)
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fields[k]
	}
	return strings.Join(parts, ", ")
}
