package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserInput is the superuser descriptor before validation.
type UserInput struct {
	ID        uuid.UUID `validate:"required"`
	Username  string    `validate:"min=3"`
	Password  string    `validate:"min=8,max=18"`
	Roles     string    `validate:"required"`
	AccountID uuid.UUID `validate:"required"`
}

// AccountInput is the account descriptor before validation.
type AccountInput struct {
	ID   uuid.UUID `validate:"required"`
	Name string    `validate:"required"`
}

// User maps the validated input onto the stored aggregate.
func (in UserInput) User() User {
	return User{
		ID:        in.ID,
		Username:  in.Username,
		Password:  in.Password,
		Roles:     in.Roles,
		AccountID: in.AccountID,
	}
}

// Account maps the validated input onto the stored aggregate.
func (in AccountInput) Account() Account {
	return Account{ID: in.ID, Name: in.Name}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages flattens a validator error into a field-to-message map keyed
// by lowercase field names.
func fieldMessages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"input": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
