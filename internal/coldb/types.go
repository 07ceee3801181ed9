// Package coldb implements the column-oriented, in-memory storage and
// execution engine: typed column stores, per-column ordered indexes,
// unique-constraint enforcement bound to primary keys, and the
// selection operator that chooses between an indexed lookup and a full
// column scan.
package coldb

import "strings"

// LogicalType is the resolved type tag of a column.
type LogicalType int

const (
	Invalid LogicalType = iota
	Int
	Str
	Float
	Bool
)

func (t LogicalType) String() string {
	switch t {
	case Int:
		return "int"
	case Str:
		return "string"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "invalid"
	}
}

// ResolveLogicalType maps a textual type name to a LogicalType,
// case-insensitively. Any name it doesn't recognize resolves to
// Invalid; the column is still created but silently accepts no rows.
func ResolveLogicalType(typeName string) LogicalType {
	switch strings.ToLower(typeName) {
	case "int":
		return Int
	case "string":
		return Str
	case "float":
		return Float
	case "double":
		return Float
	case "bool":
		return Bool
	default:
		return Invalid
	}
}
