package sqlfront

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser/ast"

	"coldb/internal/query"
)

func (p *Parser) convertInsert(stmt *ast.InsertStmt) (query.InsertDescriptor, error) {
	tableName, err := tableNameFromRefs(stmt.Table)
	if err != nil {
		return query.InsertDescriptor{}, err
	}

	columns := make([]string, len(stmt.Columns))
	for i, col := range stmt.Columns {
		columns[i] = col.Name.O
	}

	values := make([][]string, 0, len(stmt.Lists))
	for _, list := range stmt.Lists {
		if len(columns) > 0 && len(list) != len(columns) {
			return query.InsertDescriptor{}, query.NewError(query.ParseError, fmt.Sprintf(
				"insert into %s: row has %d values, expected %d", tableName, len(list), len(columns)))
		}
		row := make([]string, len(list))
		for i, expr := range list {
			v, err := literalToString(expr)
			if err != nil {
				return query.InsertDescriptor{}, err
			}
			row[i] = v
		}
		values = append(values, row)
	}

	return query.InsertDescriptor{
		TableName: tableName,
		Columns:   columns,
		Values:    values,
	}, nil
}
