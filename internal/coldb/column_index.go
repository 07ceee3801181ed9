package coldb

import (
	"fmt"
	"sort"
	"strconv"

	"coldb/internal/query"
)

// ColumnIndex is a type-tagged variant wrapping an ordered map from a
// column's typed value to its row position. It is None for Float or
// Invalid columns, and for any column that isn't a primary key.
//
// The ordered map itself is a hand-rolled sorted-slice structure
// (binary-search insertion point, slice insert).
type ColumnIndex struct {
	Type LogicalType
	Int  *intOrderedMap
	Str  *strOrderedMap
	Bool *boolOrderedMap
}

// NewColumnIndex returns an empty index tagged for typ, or a None
// index if typ isn't indexable (Float, Invalid).
func NewColumnIndex(typ LogicalType) *ColumnIndex {
	switch typ {
	case Int:
		return &ColumnIndex{Type: Int, Int: newIntOrderedMap()}
	case Str:
		return &ColumnIndex{Type: Str, Str: newStrOrderedMap()}
	case Bool:
		return &ColumnIndex{Type: Bool, Bool: newBoolOrderedMap()}
	default:
		return &ColumnIndex{Type: Invalid}
	}
}

// IsNone reports whether this index carries no ordered map at all.
func (idx *ColumnIndex) IsNone() bool {
	return idx == nil || idx.Type == Invalid
}

// Insert upserts (value, position) into the index. value must be the
// native type matching idx.Type; a mismatch is a fatal error, since it
// can only happen if a caller bypassed the column store that produced
// the value in the first place.
func (idx *ColumnIndex) Insert(value any, position int) {
	if idx.IsNone() {
		panic("coldb: insert on a None column index")
	}
	switch idx.Type {
	case Int:
		v, ok := value.(int32)
		if !ok {
			panic(fmt.Sprintf("coldb: index type mismatch: want int32, got %T", value))
		}
		idx.Int.insert(v, position)
	case Str:
		v, ok := value.(string)
		if !ok {
			panic(fmt.Sprintf("coldb: index type mismatch: want string, got %T", value))
		}
		idx.Str.insert(v, position)
	case Bool:
		v, ok := value.(bool)
		if !ok {
			panic(fmt.Sprintf("coldb: index type mismatch: want bool, got %T", value))
		}
		idx.Bool.insert(v, position)
	default:
		panic("coldb: unreachable index type")
	}
}

// PointLookup parses term into the index's native type and returns the
// stored position for an exact match, if any. A parse failure is a
// recoverable error.
func (idx *ColumnIndex) PointLookup(term string) (int, bool, error) {
	if idx.IsNone() {
		return 0, false, nil
	}
	switch idx.Type {
	case Int:
		v, err := strconv.ParseInt(term, 10, 32)
		if err != nil {
			return 0, false, query.NewError(query.ParseError, fmt.Sprintf("point lookup: %q is not a valid int", term))
		}
		pos, ok := idx.Int.find(int32(v))
		return pos, ok, nil
	case Str:
		pos, ok := idx.Str.find(term)
		return pos, ok, nil
	case Bool:
		v, err := strconv.ParseBool(term)
		if err != nil {
			return 0, false, query.NewError(query.ParseError, fmt.Sprintf("point lookup: %q is not a valid bool", term))
		}
		pos, ok := idx.Bool.find(v)
		return pos, ok, nil
	default:
		return 0, false, nil
	}
}

// RangeLookup parses term and queries the index under op using the
// Included/Excluded/Unbounded bound mapping table. Positions are
// returned in key order. NotEq maps to an empty (Excluded, Excluded)
// bound pair and therefore always yields no rows through the index
// path — a known, intentionally preserved limitation; the scan path
// (ColumnStore.Scan) handles NotEq correctly.
func (idx *ColumnIndex) RangeLookup(term string, op query.Binary) ([]int, error) {
	if idx.IsNone() {
		return nil, nil
	}
	if op == query.NotEq {
		return nil, nil
	}
	switch idx.Type {
	case Int:
		v, err := strconv.ParseInt(term, 10, 32)
		if err != nil {
			return nil, query.NewError(query.ParseError, fmt.Sprintf("range lookup: %q is not a valid int", term))
		}
		return idx.Int.rangeQuery(int32(v), op), nil
	case Str:
		return idx.Str.rangeQuery(term, op), nil
	case Bool:
		v, err := strconv.ParseBool(term)
		if err != nil {
			return nil, query.NewError(query.ParseError, fmt.Sprintf("range lookup: %q is not a valid bool", term))
		}
		return idx.Bool.rangeQuery(v, op), nil
	default:
		return nil, nil
	}
}

// --- int32 ordered map ---

type intOrderedMap struct {
	Keys []int32
	Pos  []int
}

func newIntOrderedMap() *intOrderedMap { return &intOrderedMap{} }

func (m *intOrderedMap) insert(key int32, pos int) {
	i := sort.Search(len(m.Keys), func(i int) bool { return m.Keys[i] >= key })
	if i < len(m.Keys) && m.Keys[i] == key {
		m.Pos[i] = pos
		return
	}
	m.Keys = append(m.Keys, 0)
	copy(m.Keys[i+1:], m.Keys[i:])
	m.Keys[i] = key
	m.Pos = append(m.Pos, 0)
	copy(m.Pos[i+1:], m.Pos[i:])
	m.Pos[i] = pos
}

func (m *intOrderedMap) find(key int32) (int, bool) {
	i := sort.Search(len(m.Keys), func(i int) bool { return m.Keys[i] >= key })
	if i < len(m.Keys) && m.Keys[i] == key {
		return m.Pos[i], true
	}
	return 0, false
}

func (m *intOrderedMap) rangeQuery(v int32, op query.Binary) []int {
	lo, hi := intBounds(m.Keys, v, op)
	return append([]int(nil), m.Pos[lo:hi]...)
}

func intBounds(keys []int32, v int32, op query.Binary) (int, int) {
	switch op {
	case query.Eq:
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] >= v })
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] > v })
		return lo, hi
	case query.Gt:
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] > v })
		return lo, len(keys)
	case query.GtEq:
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] >= v })
		return lo, len(keys)
	case query.Lt:
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] >= v })
		return 0, hi
	case query.LtEq:
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] > v })
		return 0, hi
	default:
		return 0, 0
	}
}

// --- string ordered map ---

type strOrderedMap struct {
	Keys []string
	Pos  []int
}

func newStrOrderedMap() *strOrderedMap { return &strOrderedMap{} }

func (m *strOrderedMap) insert(key string, pos int) {
	i := sort.Search(len(m.Keys), func(i int) bool { return m.Keys[i] >= key })
	if i < len(m.Keys) && m.Keys[i] == key {
		m.Pos[i] = pos
		return
	}
	m.Keys = append(m.Keys, "")
	copy(m.Keys[i+1:], m.Keys[i:])
	m.Keys[i] = key
	m.Pos = append(m.Pos, 0)
	copy(m.Pos[i+1:], m.Pos[i:])
	m.Pos[i] = pos
}

func (m *strOrderedMap) find(key string) (int, bool) {
	i := sort.Search(len(m.Keys), func(i int) bool { return m.Keys[i] >= key })
	if i < len(m.Keys) && m.Keys[i] == key {
		return m.Pos[i], true
	}
	return 0, false
}

func (m *strOrderedMap) rangeQuery(v string, op query.Binary) []int {
	lo, hi := strBounds(m.Keys, v, op)
	return append([]int(nil), m.Pos[lo:hi]...)
}

func strBounds(keys []string, v string, op query.Binary) (int, int) {
	switch op {
	case query.Eq:
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] >= v })
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] > v })
		return lo, hi
	case query.Gt:
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] > v })
		return lo, len(keys)
	case query.GtEq:
		lo := sort.Search(len(keys), func(i int) bool { return keys[i] >= v })
		return lo, len(keys)
	case query.Lt:
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] >= v })
		return 0, hi
	case query.LtEq:
		hi := sort.Search(len(keys), func(i int) bool { return keys[i] > v })
		return 0, hi
	default:
		return 0, 0
	}
}

// --- bool ordered map ---
//
// A boolean column's index only ever has at most two distinct keys, so
// this keeps the same sorted-slice shape as the others (false orders
// before true) rather than special-casing a two-bucket map.

type boolOrderedMap struct {
	Keys []bool
	Pos  []int
}

func newBoolOrderedMap() *boolOrderedMap { return &boolOrderedMap{} }

func boolLess(a, b bool) bool { return !a && b }

func (m *boolOrderedMap) insert(key bool, pos int) {
	i := sort.Search(len(m.Keys), func(i int) bool { return !boolLess(m.Keys[i], key) })
	if i < len(m.Keys) && m.Keys[i] == key {
		m.Pos[i] = pos
		return
	}
	m.Keys = append(m.Keys, false)
	copy(m.Keys[i+1:], m.Keys[i:])
	m.Keys[i] = key
	m.Pos = append(m.Pos, 0)
	copy(m.Pos[i+1:], m.Pos[i:])
	m.Pos[i] = pos
}

func (m *boolOrderedMap) find(key bool) (int, bool) {
	i := sort.Search(len(m.Keys), func(i int) bool { return !boolLess(m.Keys[i], key) })
	if i < len(m.Keys) && m.Keys[i] == key {
		return m.Pos[i], true
	}
	return 0, false
}

func (m *boolOrderedMap) rangeQuery(v bool, op query.Binary) []int {
	lo, hi := boolBounds(m.Keys, v, op)
	return append([]int(nil), m.Pos[lo:hi]...)
}

func boolBounds(keys []bool, v bool, op query.Binary) (int, int) {
	geq := func(i int) bool { return !boolLess(keys[i], v) }
	gt := func(i int) bool { return boolLess(v, keys[i]) }
	switch op {
	case query.Eq:
		lo := sort.Search(len(keys), geq)
		hi := sort.Search(len(keys), gt)
		return lo, hi
	case query.Gt:
		lo := sort.Search(len(keys), gt)
		return lo, len(keys)
	case query.GtEq:
		lo := sort.Search(len(keys), geq)
		return lo, len(keys)
	case query.Lt:
		hi := sort.Search(len(keys), geq)
		return 0, hi
	case query.LtEq:
		hi := sort.Search(len(keys), gt)
		return 0, hi
	default:
		return 0, 0
	}
}
