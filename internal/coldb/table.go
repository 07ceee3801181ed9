package coldb

import (
	"fmt"
	"strconv"

	"coldb/internal/query"
)

// Table owns the ordered column headers, the parallel column stores,
// and the table name. It implements insert, unique-constraint
// checking, and the selection planner/executor.
//
// Stores is kept as a slice aligned index-for-index with Headers
// rather than a name-keyed map: Go map iteration order is randomized,
// which would make gob snapshot encoding non-deterministic, so two
// encodes of the same unchanged database could produce different
// bytes. Name lookup goes through the same linear search ColumnExists
// already does.
type Table struct {
	Name    string
	Headers []*ColumnHeader
	Stores  []*ColumnStore
}

// NewTable builds a Table from a CreateDescriptor: headers in the
// given order, and an empty, correctly-typed store per column.
func NewTable(desc query.CreateDescriptor) (*Table, error) {
	if desc.TableName == "" {
		return nil, query.NewError(query.Internal, "create: table name must not be empty")
	}
	t := &Table{
		Name:    desc.TableName,
		Headers: make([]*ColumnHeader, 0, len(desc.Columns)),
		Stores:  make([]*ColumnStore, 0, len(desc.Columns)),
	}
	for _, col := range desc.Columns {
		header := NewColumnHeader(col.Name, col.TypeName, col.IsPrimaryKey)
		t.Headers = append(t.Headers, header)
		t.Stores = append(t.Stores, NewColumnStore(header.LogicalType))
	}
	return t, nil
}

// ColumnNames returns the declared column names in header order. Read
// -only convenience used by the REPL's `.tables`/`.data` rendering and
// by snapshot tests; not part of the original engine contract.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		names[i] = h.Name
	}
	return names
}

// RowCount returns the table's row count (the length of every column
// store, per the table's length invariant). A table with no columns
// has zero rows.
func (t *Table) RowCount() int {
	if len(t.Stores) == 0 {
		return 0
	}
	return t.Stores[0].Len()
}

// indexOfColumn returns the header/store slot for name, or -1.
func (t *Table) indexOfColumn(name string) int {
	for i, h := range t.Headers {
		if h.Name == name {
			return i
		}
	}
	return -1
}

// store returns the ColumnStore for name. Callers must have already
// established the column exists.
func (t *Table) store(name string) *ColumnStore {
	return t.Stores[t.indexOfColumn(name)]
}

// ColumnExists does a linear search over the headers.
func (t *Table) ColumnExists(name string) bool {
	return t.indexOfColumn(name) >= 0
}

// GetColumn returns the header matching name. A missing name is a
// fatal error: callers are expected to have checked ColumnExists
// first wherever a missing column is a user-facing, recoverable
// condition (unknown column on INSERT or SELECT).
func (t *Table) GetColumn(name string) (*ColumnHeader, error) {
	i := t.indexOfColumn(name)
	if i < 0 {
		panic(fmt.Sprintf("coldb: get_column: no such column %q on table %q", name, t.Name))
	}
	return t.Headers[i], nil
}

// CheckUniqueConstraint walks the table's primary-key headers in
// order. For the first one named in cols, it parses the corresponding
// value and checks the header's index; a primary key with a None index
// (a Float column) is not checked. It returns as soon as it finds
// a primary-key column named in cols, whether or not the check
// succeeds — it does not continue on to check any other primary-key
// column. This early return is a known, intentionally preserved
// limitation: multi-column primary keys are not correctly enforced.
func (t *Table) CheckUniqueConstraint(cols []string, values []string) error {
	for _, h := range t.Headers {
		if !h.IsPrimaryKey {
			continue
		}
		i := indexOf(cols, h.Name)
		if i < 0 {
			continue
		}
		if h.Index == nil || h.Index.IsNone() {
			return nil
		}
		key, err := parseNative(h.LogicalType, values[i])
		if err != nil {
			return err
		}
		if _, found := pointFind(h.Index, key); found {
			return query.NewError(query.UniqueViolation, fmt.Sprintf(
				"unique constraint violation for column %s. Value %s already exists for column %s",
				h.Name, values[i], h.Name))
		}
		return nil
	}
	return nil
}

// parseNative parses a string value into the Go type matching lt. An
// Int/Bool parse failure is fatal, matching ColumnStore.Append; a Str
// value passes through unchanged.
func parseNative(lt LogicalType, value string) (any, error) {
	switch lt {
	case Int:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("coldb: unique check: %q is not a valid int: %v", value, err))
		}
		return int32(v), nil
	case Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			panic(fmt.Sprintf("coldb: unique check: %q is not a valid bool: %v", value, err))
		}
		return v, nil
	case Str:
		return value, nil
	default:
		return nil, query.NewError(query.TypeMismatch, fmt.Sprintf("cannot parse value for column type %s", lt))
	}
}

func pointFind(idx *ColumnIndex, key any) (int, bool) {
	switch idx.Type {
	case Int:
		return idx.Int.find(key.(int32))
	case Str:
		return idx.Str.find(key.(string))
	case Bool:
		return idx.Bool.find(key.(bool))
	default:
		return 0, false
	}
}

func indexOf(xs []string, target string) int {
	for i, x := range xs {
		if x == target {
			return i
		}
	}
	return -1
}

// InsertRow appends one value per row into each named column's store,
// updating that column's index when it has one. The caller must have
// already validated column existence and the unique constraint;
// InsertRow does not re-check either. A column name in cols that
// doesn't exist on the table is a fatal error.
func (t *Table) InsertRow(cols []string, rows [][]string) error {
	for i, colName := range cols {
		header, err := t.GetColumn(colName)
		if err != nil {
			return err
		}
		store := t.store(colName)
		for _, row := range rows {
			v := store.Append(row[i])
			if header.Index != nil && !header.Index.IsNone() {
				header.Index.Insert(v, store.Len()-1)
			}
		}
	}
	return nil
}

// PlanAndExecute resolves a SELECT descriptor against the table,
// choosing an indexed lookup or a full scan for the (at most one)
// WHERE predicate honored, and returns a row-major matrix of
// stringified cells.
func (t *Table) PlanAndExecute(sel query.SelectDescriptor) ([][]string, error) {
	projection, err := t.resolveProjection(sel.Projection)
	if err != nil {
		return nil, err
	}

	var positions []int
	if len(sel.WhereExpressions) == 0 {
		positions = allPositions(t.RowCount())
	} else {
		positions, err = t.evalWhere(sel.WhereExpressions[0])
		if err != nil {
			return nil, err
		}
	}

	columnMajor := make([][]string, len(projection))
	for i, name := range projection {
		columnMajor[i] = t.store(name).Materialize(positions)
	}

	rows := rotate(columnMajor, len(positions))
	rows = applyLimitOffset(rows, sel.Limit, sel.Offset)
	return rows, nil
}

// resolveProjection expands any "*" entry to the full column list in
// header order, in place, then validates every remaining name exists.
func (t *Table) resolveProjection(projection []string) ([]string, error) {
	out := make([]string, 0, len(projection))
	for _, name := range projection {
		if name == "*" {
			out = append(out, t.ColumnNames()...)
			continue
		}
		out = append(out, name)
	}
	for _, name := range out {
		if !t.ColumnExists(name) {
			return nil, query.NewError(query.UnknownColumn, fmt.Sprintf("unknown column %q on table %q", name, t.Name))
		}
	}
	return out, nil
}

func (t *Table) evalWhere(w query.WhereExpression) ([]int, error) {
	if !t.ColumnExists(w.Left) {
		return nil, query.NewError(query.UnknownColumn, fmt.Sprintf("unknown column %q on table %q", w.Left, t.Name))
	}
	header, err := t.GetColumn(w.Left)
	if err != nil {
		return nil, err
	}
	if header.IsIndexed {
		if w.Op == query.Eq {
			pos, found, err := header.Index.PointLookup(w.Right)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, nil
			}
			return []int{pos}, nil
		}
		return header.Index.RangeLookup(w.Right, w.Op)
	}
	return t.store(w.Left).Scan(w.Op, w.Right)
}

func allPositions(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// rotate turns a column-major [][]string (len == number of projected
// columns, each inner slice len == nRows) into a row-major matrix.
func rotate(columnMajor [][]string, nRows int) [][]string {
	rows := make([][]string, nRows)
	for r := 0; r < nRows; r++ {
		row := make([]string, len(columnMajor))
		for c, col := range columnMajor {
			row[c] = col[r]
		}
		rows[r] = row
	}
	return rows
}

func applyLimitOffset(rows [][]string, limit, offset *uint64) [][]string {
	if offset != nil {
		off := int(*offset)
		if off >= len(rows) {
			return [][]string{}
		}
		rows = rows[off:]
	}
	if limit != nil {
		lim := int(*limit)
		if lim < len(rows) {
			rows = rows[:lim]
		}
	}
	return rows
}
