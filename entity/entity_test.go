package entity_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/stokaro/tabula/entity"
)

var userDesc = entity.Descriptor{
	Table: "users",
	ID:    entity.Field{Name: "id", SQLType: "uuid"},
	Fields: []entity.Field{
		{Name: "username", SQLType: "varchar(255)"},
		{Name: "password", SQLType: "varchar(255)"},
		{Name: "roles", SQLType: "text"},
		{Name: "account_id", SQLType: "uuid"},
	},
}

func TestDescriptor_FieldNames(t *testing.T) {
	c := qt.New(t)

	c.Assert(userDesc.FieldNames(), qt.DeepEquals, []string{"username", "password", "roles", "account_id"})
}

func TestDescriptor_Columns(t *testing.T) {
	c := qt.New(t)

	// id always comes first; the rest keep declared order.
	c.Assert(userDesc.Columns(), qt.DeepEquals, []string{"id", "username", "password", "roles", "account_id"})
}

func TestDescriptor_NoFields(t *testing.T) {
	c := qt.New(t)

	d := entity.Descriptor{Table: "t", ID: entity.Field{Name: "id", SQLType: "uuid"}}
	c.Assert(d.FieldNames(), qt.HasLen, 0)
	c.Assert(d.Columns(), qt.DeepEquals, []string{"id"})
}
