package coldb_test

import (
	"testing"

	"coldb/internal/coldb"
	"coldb/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersTable(t *testing.T) *coldb.Table {
	t.Helper()
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "users",
		Columns: []query.ColumnDescriptor{
			{Name: "id", TypeName: "int", IsPrimaryKey: true},
			{Name: "name", TypeName: "string"},
		},
	})
	require.NoError(t, err)
	return tbl
}

// Scenario 1: basic insert + indexed Eq select.
func TestScenarioIndexedEqSelect(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.CheckUniqueConstraint([]string{"id", "name"}, []string{"1", "ann"}))
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}, {"2", "bo"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:       "users",
		Projection: []string{"id", "name"},
		WhereExpressions: []query.WhereExpression{
			{Left: "id", Right: "2", Op: query.Eq},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2", "bo"}}, rows)
}

// Scenario 2: unique constraint violation keeps row count unchanged.
func TestScenarioUniqueViolation(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}, {"2", "bo"}}))

	err := tbl.CheckUniqueConstraint([]string{"id", "name"}, []string{"1", "cid"})
	require.Error(t, err)
	assert.True(t, query.IsKind(err, query.UniqueViolation))
	assert.Equal(t, 2, tbl.RowCount())
}

// Scenario 3: indexed Gt select returns rows in key-ascending order.
func TestScenarioIndexedGtSelect(t *testing.T) {
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "t",
		Columns:   []query.ColumnDescriptor{{Name: "x", TypeName: "int", IsPrimaryKey: true}},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.InsertRow([]string{"x"}, [][]string{{"5"}, {"3"}, {"8"}, {"1"}, {"7"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:       "t",
		Projection: []string{"x"},
		WhereExpressions: []query.WhereExpression{
			{Left: "x", Right: "4", Op: query.Gt},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"5"}, {"7"}, {"8"}}, rows)
}

// Scenario 4: non-indexed scan path for an Eq predicate.
func TestScenarioScanPathEqSelect(t *testing.T) {
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "s",
		Columns:   []query.ColumnDescriptor{{Name: "tag", TypeName: "string"}},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.InsertRow([]string{"tag"}, [][]string{{"a"}, {"b"}, {"c"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:       "s",
		Projection: []string{"tag"},
		WhereExpressions: []query.WhereExpression{
			{Left: "tag", Right: "b", Op: query.Eq},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"b"}}, rows)
}

// Scenario 5: no WHERE preserves insertion order.
func TestScenarioNoWhereInsertionOrder(t *testing.T) {
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "f",
		Columns:   []query.ColumnDescriptor{{Name: "v", TypeName: "float"}},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.InsertRow([]string{"v"}, [][]string{{"1.5"}, {"2.5"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{From: "f", Projection: []string{"v"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1.5"}, {"2.5"}}, rows)
}

func TestSelectStarExpandsToHeaderOrder(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{From: "users", Projection: []string{"*"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "ann"}}, rows)
}

func TestSelectStarAlongsideExplicitColumn(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{From: "users", Projection: []string{"*", "name"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "ann", "ann"}}, rows)
}

func TestSelectUnknownColumnErrors(t *testing.T) {
	tbl := usersTable(t)
	_, err := tbl.PlanAndExecute(query.SelectDescriptor{From: "users", Projection: []string{"nope"}})
	require.Error(t, err)
	assert.True(t, query.IsKind(err, query.UnknownColumn))
}

func TestSelectZeroMatchesIsZeroRowsNotError(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:             "users",
		Projection:       []string{"id"},
		WhereExpressions: []query.WhereExpression{{Left: "id", Right: "99", Op: query.Eq}},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOnlyFirstWhereExpressionIsHonored(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}, {"2", "bo"}}))

	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:       "users",
		Projection: []string{"id"},
		WhereExpressions: []query.WhereExpression{
			{Left: "id", Right: "1", Op: query.Eq},
			{Left: "id", Right: "2", Op: query.Eq},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, rows, "only the first WHERE expression is honored")
}

func TestLimitOffsetAppliedAfterMaterialization(t *testing.T) {
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "t",
		Columns:   []query.ColumnDescriptor{{Name: "x", TypeName: "int"}},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.InsertRow([]string{"x"}, [][]string{{"1"}, {"2"}, {"3"}, {"4"}}))

	var limit uint64 = 2
	var offset uint64 = 1
	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:       "t",
		Projection: []string{"x"},
		Limit:      &limit,
		Offset:     &offset,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2"}, {"3"}}, rows)
}

func TestLimitZeroYieldsNoRows(t *testing.T) {
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "t",
		Columns:   []query.ColumnDescriptor{{Name: "x", TypeName: "int"}},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.InsertRow([]string{"x"}, [][]string{{"1"}}))

	var limit uint64
	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{From: "t", Projection: []string{"x"}, Limit: &limit})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInsertingIntoInvalidColumnFailsFatally(t *testing.T) {
	tbl, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "bad",
		Columns:   []query.ColumnDescriptor{{Name: "v", TypeName: "nonsense"}},
	})
	require.NoError(t, err)
	assert.Panics(t, func() { _ = tbl.InsertRow([]string{"v"}, [][]string{{"anything"}}) })
}

func TestRowCountMatchesAllColumnLengths(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"1", "ann"}, {"2", "bo"}, {"3", "cid"}}))
	assert.Equal(t, 3, tbl.RowCount())
	for i := range tbl.Stores {
		assert.Equal(t, 3, len(tbl.Stores[i].FullDump()))
	}
}

func TestPointLookupAgreesWithInsertedPosition(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.InsertRow([]string{"id", "name"}, [][]string{{"10", "a"}, {"20", "b"}, {"30", "c"}}))

	header, err := tbl.GetColumn("id")
	require.NoError(t, err)
	pos, found, err := header.Index.PointLookup("20")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, pos)
}

func TestGetColumnMissingNamePanics(t *testing.T) {
	tbl := usersTable(t)
	assert.Panics(t, func() { _, _ = tbl.GetColumn("nope") })
}
