package sqlfront

import (
	"fmt"
	"strconv"

	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/opcode"

	"coldb/internal/query"
)

func (p *Parser) convertSelect(stmt *ast.SelectStmt) (query.SelectDescriptor, error) {
	tableName, err := tableNameFromRefs(stmt.From)
	if err != nil {
		return query.SelectDescriptor{}, err
	}

	projection, err := selectFields(stmt.Fields)
	if err != nil {
		return query.SelectDescriptor{}, err
	}

	var wheres []query.WhereExpression
	if stmt.Where != nil {
		w, err := convertWhere(stmt.Where)
		if err != nil {
			return query.SelectDescriptor{}, err
		}
		wheres = []query.WhereExpression{w}
	}

	desc := query.SelectDescriptor{
		From:             tableName,
		Projection:       projection,
		WhereExpressions: wheres,
	}

	if stmt.Limit != nil {
		if stmt.Limit.Count != nil {
			n, err := literalToUint(stmt.Limit.Count)
			if err != nil {
				return query.SelectDescriptor{}, err
			}
			desc.Limit = &n
		}
		if stmt.Limit.Offset != nil {
			n, err := literalToUint(stmt.Limit.Offset)
			if err != nil {
				return query.SelectDescriptor{}, err
			}
			desc.Offset = &n
		}
	}

	return desc, nil
}

func selectFields(fields *ast.FieldList) ([]string, error) {
	if fields == nil {
		return nil, query.NewError(query.Unsupported, "select with no projected fields is not supported")
	}
	projection := make([]string, 0, len(fields.Fields))
	for _, field := range fields.Fields {
		if field.WildCard != nil {
			projection = append(projection, "*")
			continue
		}
		colExpr, ok := field.Expr.(*ast.ColumnNameExpr)
		if !ok {
			return nil, query.NewError(query.Unsupported, "only plain column names and * are supported in select")
		}
		projection = append(projection, colExpr.Name.Name.O)
	}
	return projection, nil
}

// convertWhere accepts exactly one comparison of the form `column op
// literal`. Anything compound (AND/OR), with the literal on the left,
// or using an operator outside the six comparisons is unsupported. The
// right-hand side is not checked to be a literal: whatever node it is,
// it is rendered to text with literalToString.
func convertWhere(expr ast.ExprNode) (query.WhereExpression, error) {
	bin, ok := expr.(*ast.BinaryOperationExpr)
	if !ok {
		return query.WhereExpression{}, query.NewError(query.Unsupported, "only a single comparison is supported in where")
	}
	col, ok := bin.L.(*ast.ColumnNameExpr)
	if !ok {
		return query.WhereExpression{}, query.NewError(query.Unsupported, "where clause must compare a column to a literal")
	}
	op, err := convertOp(bin.Op)
	if err != nil {
		return query.WhereExpression{}, err
	}
	right, err := literalToString(bin.R)
	if err != nil {
		return query.WhereExpression{}, err
	}
	return query.WhereExpression{Left: col.Name.Name.O, Right: right, Op: op}, nil
}

func convertOp(op opcode.Op) (query.Binary, error) {
	switch op {
	case opcode.EQ:
		return query.Eq, nil
	case opcode.NE:
		return query.NotEq, nil
	case opcode.LT:
		return query.Lt, nil
	case opcode.LE:
		return query.LtEq, nil
	case opcode.GT:
		return query.Gt, nil
	case opcode.GE:
		return query.GtEq, nil
	default:
		return 0, query.NewError(query.Unsupported, fmt.Sprintf("unsupported comparison operator %s", op))
	}
}

func literalToUint(expr ast.ExprNode) (uint64, error) {
	s, err := literalToString(expr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, query.NewError(query.ParseError, fmt.Sprintf("limit/offset value %q is not a valid unsigned integer", s))
	}
	return n, nil
}
