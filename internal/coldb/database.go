package coldb

import (
	"fmt"

	"coldb/internal/query"
)

// Database owns the ordered sequence of tables. Table names are not
// required to be unique; lookups resolve to the first match by
// insertion order.
type Database struct {
	Tables []*Table
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{}
}

// AddTable appends table to the database.
func (d *Database) AddTable(t *Table) {
	d.Tables = append(d.Tables, t)
}

// TableExists reports whether any table matches name.
func (d *Database) TableExists(name string) bool {
	for _, t := range d.Tables {
		if t.Name == name {
			return true
		}
	}
	return false
}

// GetTable returns the first table matching name. A missing name is a
// recoverable error at this layer (the engine surfaces it as
// UnknownTable); unlike Table.GetColumn, callers here are not expected
// to have pre-checked TableExists.
func (d *Database) GetTable(name string) (*Table, error) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, query.NewError(query.UnknownTable, fmt.Sprintf("unknown table %q", name))
}

// GetTableMut returns the same *Table as GetTable; Table's methods
// mutate through pointer receivers, so there is no separate
// const/mutable view to distinguish in Go.
func (d *Database) GetTableMut(name string) (*Table, error) {
	return d.GetTable(name)
}

// TableNames returns the declared table names in insertion order. Read
// -only convenience used by the REPL's `.tables` rendering.
func (d *Database) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}
