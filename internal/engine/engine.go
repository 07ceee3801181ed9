// Package engine is the single entry point that dispatches a query
// descriptor against a *coldb.Database. It owns no state beyond the
// database handed to it, and validates table/column existence and
// unique constraints at the boundary before calling into storage.
package engine

import (
	"fmt"

	"coldb/internal/coldb"
	"coldb/internal/query"
)

// Result carries the outcome of Execute. For CREATE and INSERT,
// Header and Rows are both empty. For SELECT, Header names the
// resolved projection (after "*" expansion) and Rows is the row-major
// matrix PlanAndExecute produced.
type Result struct {
	Header []string
	Rows   [][]string
}

// Engine wraps a *coldb.Database and dispatches descriptors into it.
type Engine struct {
	db *coldb.Database
}

// New returns an Engine backed by db. Passing nil starts a fresh,
// empty database.
func New(db *coldb.Database) *Engine {
	if db == nil {
		db = coldb.NewDatabase()
	}
	return &Engine{db: db}
}

// Database returns the engine's backing database, e.g. for snapshot
// persistence or REPL introspection (`.tables`, `.data`).
func (e *Engine) Database() *coldb.Database {
	return e.db
}

// SetDatabase swaps the engine's backing database, e.g. after
// restoring a snapshot.
func (e *Engine) SetDatabase(db *coldb.Database) {
	e.db = db
}

// Execute type-switches on descriptor and calls into coldb.
func (e *Engine) Execute(descriptor any) (Result, error) {
	switch d := descriptor.(type) {
	case query.CreateDescriptor:
		return e.executeCreate(d)
	case query.InsertDescriptor:
		return e.executeInsert(d)
	case query.SelectDescriptor:
		return e.executeSelect(d)
	default:
		return Result{}, query.NewError(query.Unsupported, fmt.Sprintf("unsupported descriptor type %T", descriptor))
	}
}

func (e *Engine) executeCreate(d query.CreateDescriptor) (Result, error) {
	tbl, err := coldb.NewTable(d)
	if err != nil {
		return Result{}, err
	}
	e.db.AddTable(tbl)
	return Result{}, nil
}

func (e *Engine) executeInsert(d query.InsertDescriptor) (Result, error) {
	if !e.db.TableExists(d.TableName) {
		return Result{}, query.NewError(query.UnknownTable, fmt.Sprintf("unknown table %q", d.TableName))
	}
	tbl, err := e.db.GetTable(d.TableName)
	if err != nil {
		return Result{}, err
	}

	for _, col := range d.Columns {
		if !tbl.ColumnExists(col) {
			return Result{}, query.NewError(query.UnknownColumn, fmt.Sprintf("unknown column %q on table %q", col, d.TableName))
		}
	}

	for _, row := range d.Values {
		if err := tbl.CheckUniqueConstraint(d.Columns, row); err != nil {
			return Result{}, err
		}
	}

	if err := tbl.InsertRow(d.Columns, d.Values); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

func (e *Engine) executeSelect(d query.SelectDescriptor) (Result, error) {
	if !e.db.TableExists(d.From) {
		return Result{}, query.NewError(query.UnknownTable, fmt.Sprintf("unknown table %q", d.From))
	}
	tbl, err := e.db.GetTable(d.From)
	if err != nil {
		return Result{}, err
	}

	rows, err := tbl.PlanAndExecute(d)
	if err != nil {
		return Result{}, err
	}

	header := make([]string, 0, len(d.Projection))
	for _, name := range d.Projection {
		if name == "*" {
			header = append(header, tbl.ColumnNames()...)
			continue
		}
		header = append(header, name)
	}
	return Result{Header: header, Rows: rows}, nil
}
