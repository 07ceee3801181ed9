package sqlfront_test

import (
	"testing"

	"coldb/internal/query"
	"coldb/internal/sqlfront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateTable(t *testing.T) {
	p := sqlfront.NewParser()
	stmts, err := p.Parse("CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64), active BOOL);")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	create, ok := stmts[0].(query.CreateDescriptor)
	require.True(t, ok)
	assert.Equal(t, "users", create.TableName)
	require.Len(t, create.Columns, 3)
	assert.Equal(t, query.ColumnDescriptor{Name: "id", TypeName: "int", IsPrimaryKey: true}, create.Columns[0])
	assert.Equal(t, query.ColumnDescriptor{Name: "name", TypeName: "string"}, create.Columns[1])
	assert.Equal(t, query.ColumnDescriptor{Name: "active", TypeName: "bool"}, create.Columns[2])
}

func TestParseCreateTableWithTableLevelPrimaryKey(t *testing.T) {
	p := sqlfront.NewParser()
	stmts, err := p.Parse("CREATE TABLE t (x INT, y INT, PRIMARY KEY (x));")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	create := stmts[0].(query.CreateDescriptor)
	assert.True(t, create.Columns[0].IsPrimaryKey)
	assert.False(t, create.Columns[1].IsPrimaryKey)
}

func TestParseInsert(t *testing.T) {
	p := sqlfront.NewParser()
	stmts, err := p.Parse("INSERT INTO users (id, name) VALUES (1, 'ann'), (2, 'bo');")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	insert := stmts[0].(query.InsertDescriptor)
	assert.Equal(t, "users", insert.TableName)
	assert.Equal(t, []string{"id", "name"}, insert.Columns)
	assert.Equal(t, [][]string{{"1", "ann"}, {"2", "bo"}}, insert.Values)
}

func TestParseSelectStarWithWhereAndLimit(t *testing.T) {
	p := sqlfront.NewParser()
	stmts, err := p.Parse("SELECT * FROM users WHERE id = 2 LIMIT 10 OFFSET 5;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	sel := stmts[0].(query.SelectDescriptor)
	assert.Equal(t, "users", sel.From)
	assert.Equal(t, []string{"*"}, sel.Projection)
	require.Len(t, sel.WhereExpressions, 1)
	assert.Equal(t, query.WhereExpression{Left: "id", Right: "2", Op: query.Eq}, sel.WhereExpressions[0])
	require.NotNil(t, sel.Limit)
	assert.Equal(t, uint64(10), *sel.Limit)
	require.NotNil(t, sel.Offset)
	assert.Equal(t, uint64(5), *sel.Offset)
}

func TestParseSelectExplicitColumnsNoWhere(t *testing.T) {
	p := sqlfront.NewParser()
	stmts, err := p.Parse("SELECT id, name FROM users;")
	require.NoError(t, err)

	sel := stmts[0].(query.SelectDescriptor)
	assert.Equal(t, []string{"id", "name"}, sel.Projection)
	assert.Empty(t, sel.WhereExpressions)
	assert.Nil(t, sel.Limit)
	assert.Nil(t, sel.Offset)
}

func TestParseMultipleStatements(t *testing.T) {
	p := sqlfront.NewParser()
	stmts, err := p.Parse("CREATE TABLE t (x INT PRIMARY KEY); INSERT INTO t (x) VALUES (1); SELECT * FROM t;")
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.IsType(t, query.CreateDescriptor{}, stmts[0])
	assert.IsType(t, query.InsertDescriptor{}, stmts[1])
	assert.IsType(t, query.SelectDescriptor{}, stmts[2])
}

func TestParseUnsupportedJoinIsReportedAsUnsupported(t *testing.T) {
	p := sqlfront.NewParser()
	_, err := p.Parse("SELECT * FROM a JOIN b ON a.id = b.id;")
	require.Error(t, err)
	assert.True(t, query.IsKind(err, query.Unsupported))
}

func TestParseSyntaxErrorIsParseError(t *testing.T) {
	p := sqlfront.NewParser()
	_, err := p.Parse("SELEC * FORM users;")
	require.Error(t, err)
	assert.True(t, query.IsKind(err, query.ParseError))
}

func TestParseDeleteIsUnsupported(t *testing.T) {
	p := sqlfront.NewParser()
	_, err := p.Parse("DELETE FROM users WHERE id = 1;")
	require.Error(t, err)
	assert.True(t, query.IsKind(err, query.Unsupported))
}
