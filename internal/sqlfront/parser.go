// Package sqlfront converts MySQL-flavored SQL text into the query
// package's descriptor shapes, using github.com/pingcap/tidb/pkg/parser.
// The storage engine deliberately excludes a parser from its own
// contract; this package is what makes the repository runnable
// end-to-end from raw SQL.
package sqlfront

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"coldb/internal/query"
)

// Statement is one of query.CreateDescriptor, query.InsertDescriptor,
// or query.SelectDescriptor.
type Statement = any

// Parser wraps a tidb SQL parser instance.
type Parser struct {
	p *parser.Parser
}

// NewParser returns a ready-to-use Parser.
func NewParser() *Parser {
	return &Parser{p: parser.New()}
}

// Parse splits sql into statements and converts each one into a
// descriptor. A statement kind this package doesn't recognize is
// reported as a *query.Error of kind Unsupported rather than causing
// the whole batch to fail silently.
func (p *Parser) Parse(sql string) ([]Statement, error) {
	stmtNodes, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return nil, query.NewError(query.ParseError, fmt.Sprintf("parse error: %v", err))
	}

	statements := make([]Statement, 0, len(stmtNodes))
	for _, node := range stmtNodes {
		stmt, err := p.convert(node)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (p *Parser) convert(node ast.StmtNode) (Statement, error) {
	switch n := node.(type) {
	case *ast.CreateTableStmt:
		return p.convertCreateTable(n)
	case *ast.InsertStmt:
		return p.convertInsert(n)
	case *ast.SelectStmt:
		return p.convertSelect(n)
	default:
		return nil, query.NewError(query.Unsupported, fmt.Sprintf("unsupported statement kind %T", node))
	}
}
