package sqlfront

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"

	"coldb/internal/query"
)

// literalToString renders a literal expression node to the descriptor
// convention: single-quoted string literals have their quotes
// stripped, NULL renders as the literal "Null", and everything else
// (decimal numbers, the 1/0 tidb produces for TRUE/FALSE) passes
// through as restored text.
func literalToString(expr ast.ExprNode) (string, error) {
	var sb strings.Builder
	ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(ctx); err != nil {
		return "", query.NewError(query.ParseError, fmt.Sprintf("cannot render literal: %v", err))
	}
	s := strings.TrimSpace(sb.String())

	if strings.EqualFold(s, "NULL") {
		return "Null", nil
	}
	if unquoted, ok := tryUnquoteSQLStringLiteral(s); ok {
		return unquoted, nil
	}
	return s, nil
}

func tryUnquoteSQLStringLiteral(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '\'' {
		return "", false
	}

	if s[0] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), true
	}

	q := strings.IndexByte(s, '\'')
	if q <= 0 {
		return "", false
	}
	prefix := strings.TrimSpace(s[:q])
	if !isSQLStringIntroducer(prefix) {
		return "", false
	}
	inner := s[q+1 : len(s)-1]
	return strings.ReplaceAll(inner, "''", "'"), true
}

func isSQLStringIntroducer(prefix string) bool {
	if prefix == "" {
		return false
	}
	if strings.EqualFold(prefix, "N") {
		return true
	}
	return strings.HasPrefix(prefix, "_")
}

// tableNameFromRefs extracts the single table name out of a
// TableRefsClause of the shape `FROM t` / `INSERT INTO t`: a plain
// join whose left side is a table source wrapping a table name.
// Anything more elaborate (joins, subqueries, aliases) is reported as
// unsupported.
func tableNameFromRefs(refs *ast.TableRefsClause) (string, error) {
	if refs == nil || refs.TableRefs == nil {
		return "", query.NewError(query.Unsupported, "statement has no table reference")
	}
	if refs.TableRefs.Right != nil {
		return "", query.NewError(query.Unsupported, "only a single plain table reference is supported")
	}
	source, ok := refs.TableRefs.Left.(*ast.TableSource)
	if !ok || source.AsName.L != "" {
		return "", query.NewError(query.Unsupported, "only a single plain table reference is supported")
	}
	name, ok := source.Source.(*ast.TableName)
	if !ok {
		return "", query.NewError(query.Unsupported, "only a single plain table reference is supported")
	}
	return name.Name.O, nil
}
