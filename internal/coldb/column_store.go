package coldb

import (
	"fmt"
	"strconv"

	"coldb/internal/query"
)

// ColumnStore is a type-tagged variant holding a homogeneous ordered
// sequence of values for one column. Only the typed slice selected by
// Type is used; an Invalid-typed column carries a None store, which
// panics on Append, RowAt and Scan. Len does not panic on a None store:
// it reports 0.
type ColumnStore struct {
	Type   LogicalType
	Ints   []int32
	Strs   []string
	Floats []float32
	Bools  []bool
}

// NewColumnStore returns an empty store tagged for typ.
func NewColumnStore(typ LogicalType) *ColumnStore {
	cs := &ColumnStore{Type: typ}
	switch typ {
	case Int:
		cs.Ints = []int32{}
	case Str:
		cs.Strs = []string{}
	case Float:
		cs.Floats = []float32{}
	case Bool:
		cs.Bools = []bool{}
	}
	return cs
}

func (cs *ColumnStore) requireNotNone(op string) {
	if cs.Type == Invalid {
		panic(fmt.Sprintf("coldb: %s on a None column store", op))
	}
}

// Append parses value into the store's native type and pushes it to
// the tail, returning the parsed native value so callers (Table) can
// hand it straight to a column index without re-parsing. A parse
// failure, or an Append on a None store, is a fatal error: the caller
// is expected to have pre-validated the descriptor.
func (cs *ColumnStore) Append(value string) any {
	cs.requireNotNone("append")
	switch cs.Type {
	case Int:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("coldb: append: %q is not a valid int: %v", value, err))
		}
		cs.Ints = append(cs.Ints, int32(v))
		return int32(v)
	case Str:
		cs.Strs = append(cs.Strs, value)
		return value
	case Float:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			panic(fmt.Sprintf("coldb: append: %q is not a valid float: %v", value, err))
		}
		cs.Floats = append(cs.Floats, float32(v))
		return float32(v)
	case Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			panic(fmt.Sprintf("coldb: append: %q is not a valid bool: %v", value, err))
		}
		cs.Bools = append(cs.Bools, v)
		return v
	default:
		panic("coldb: unreachable column type")
	}
}

// Len returns the current row count; 0 for a None store.
func (cs *ColumnStore) Len() int {
	switch cs.Type {
	case Int:
		return len(cs.Ints)
	case Str:
		return len(cs.Strs)
	case Float:
		return len(cs.Floats)
	case Bool:
		return len(cs.Bools)
	default:
		return 0
	}
}

// RowAt stringifies the i-th value. Out-of-range is undefined.
func (cs *ColumnStore) RowAt(i int) string {
	cs.requireNotNone("row_at")
	switch cs.Type {
	case Int:
		return strconv.FormatInt(int64(cs.Ints[i]), 10)
	case Str:
		return cs.Strs[i]
	case Float:
		return strconv.FormatFloat(float64(cs.Floats[i]), 'g', -1, 32)
	case Bool:
		return strconv.FormatBool(cs.Bools[i])
	default:
		panic("coldb: unreachable column type")
	}
}

// Materialize maps each index through RowAt, preserving order and
// duplicates.
func (cs *ColumnStore) Materialize(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = cs.RowAt(idx)
	}
	return out
}

// FullDump is equivalent to Materialize(0..Len()).
func (cs *ColumnStore) FullDump() []string {
	n := cs.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return cs.Materialize(indices)
}

// Scan walks the store in ascending position order and returns the
// positions whose value satisfies `value op term`. The search term is
// parsed into the store's native type; a parse failure is reported as
// a *query.Error rather than a panic, so callers can surface it to the
// user without a recover. Scanning a None store still panics
// immediately: there is no well-typed value to compare against.
func (cs *ColumnStore) Scan(op query.Binary, term string) ([]int, error) {
	cs.requireNotNone("scan")
	switch cs.Type {
	case Int:
		v, err := strconv.ParseInt(term, 10, 32)
		if err != nil {
			return nil, query.NewError(query.TypeMismatch, fmt.Sprintf("scan: %q is not a valid int", term))
		}
		want := int32(v)
		var out []int
		for i, x := range cs.Ints {
			if matches(compareInt32(x, want), op) {
				out = append(out, i)
			}
		}
		return out, nil
	case Str:
		var out []int
		for i, x := range cs.Strs {
			if matches(compareString(x, term), op) {
				out = append(out, i)
			}
		}
		return out, nil
	case Float:
		v, err := strconv.ParseFloat(term, 32)
		if err != nil {
			return nil, query.NewError(query.TypeMismatch, fmt.Sprintf("scan: %q is not a valid float", term))
		}
		want := float32(v)
		var out []int
		for i, x := range cs.Floats {
			if matches(compareFloat32(x, want), op) {
				out = append(out, i)
			}
		}
		return out, nil
	case Bool:
		v, err := strconv.ParseBool(term)
		if err != nil {
			return nil, query.NewError(query.TypeMismatch, fmt.Sprintf("scan: %q is not a valid bool", term))
		}
		var out []int
		for i, x := range cs.Bools {
			if matches(compareBool(x, v), op) {
				out = append(out, i)
			}
		}
		return out, nil
	default:
		panic("coldb: unreachable column type")
	}
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat32(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareBool orders false < true, matching the total order the spec
// requires for boolean columns.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

func matches(cmp int, op query.Binary) bool {
	switch op {
	case query.Eq:
		return cmp == 0
	case query.NotEq:
		return cmp != 0
	case query.Lt:
		return cmp < 0
	case query.LtEq:
		return cmp <= 0
	case query.Gt:
		return cmp > 0
	case query.GtEq:
		return cmp >= 0
	default:
		return false
	}
}
