package sqlfront

import (
	"github.com/pingcap/tidb/pkg/parser/ast"
	tidbtypes "github.com/pingcap/tidb/pkg/parser/mysql"

	"coldb/internal/query"
)

func (p *Parser) convertCreateTable(stmt *ast.CreateTableStmt) (query.CreateDescriptor, error) {
	desc := query.CreateDescriptor{
		TableName: stmt.Table.Name.O,
		Columns:   make([]query.ColumnDescriptor, 0, len(stmt.Cols)),
	}

	for _, colDef := range stmt.Cols {
		col := query.ColumnDescriptor{
			Name:     colDef.Name.Name.O,
			TypeName: logicalTypeName(colDef.Tp.GetType()),
		}
		for _, opt := range colDef.Options {
			if opt.Tp == ast.ColumnOptionPrimaryKey {
				col.IsPrimaryKey = true
			}
		}
		desc.Columns = append(desc.Columns, col)
	}

	for _, constraint := range stmt.Constraints {
		if constraint.Tp != ast.ConstraintPrimaryKey || len(constraint.Keys) == 0 {
			continue
		}
		// Only the first key of a table-level PRIMARY KEY is honored:
		// multi-column primary keys aren't supported by the storage
		// engine's unique-constraint check.
		name := constraint.Keys[0].Column.Name.O
		for i := range desc.Columns {
			if desc.Columns[i].Name == name {
				desc.Columns[i].IsPrimaryKey = true
			}
		}
	}

	return desc, nil
}

// logicalTypeName maps a tidb column type byte to one of the four
// canonical type names the storage engine resolves (int/string/float
// /bool). Anything this grammar subset doesn't expect to see maps to
// "unsupported", which coldb.ResolveLogicalType then resolves to
// Invalid.
//
// TypeTiny is mapped unconditionally to "bool": this grammar's CREATE
// TABLE columns are only ever declared as BOOL/BOOLEAN or one of the
// other three names, and MySQL's BOOL/BOOLEAN keyword itself lowers to
// TINYINT(1) during parsing, so there's no TINYINT spelling in this
// grammar for TypeTiny to otherwise mean.
func logicalTypeName(tp byte) string {
	switch tp {
	case tidbtypes.TypeTiny:
		return "bool"
	case tidbtypes.TypeShort, tidbtypes.TypeLong, tidbtypes.TypeLonglong, tidbtypes.TypeInt24:
		return "int"
	case tidbtypes.TypeFloat, tidbtypes.TypeDouble, tidbtypes.TypeNewDecimal:
		return "float"
	case tidbtypes.TypeVarchar, tidbtypes.TypeVarString, tidbtypes.TypeString,
		tidbtypes.TypeBlob, tidbtypes.TypeTinyBlob, tidbtypes.TypeMediumBlob, tidbtypes.TypeLongBlob:
		return "string"
	default:
		return "unsupported"
	}
}
