package snapshot_test

import (
	"testing"

	"coldb/internal/coldb"
	"coldb/internal/query"
	"coldb/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDatabase(t *testing.T) *coldb.Database {
	t.Helper()
	db := coldb.NewDatabase()

	users, err := coldb.NewTable(query.CreateDescriptor{
		TableName: "u",
		Columns: []query.ColumnDescriptor{
			{Name: "id", TypeName: "int", IsPrimaryKey: true},
			{Name: "n", TypeName: "string"},
			{Name: "score", TypeName: "float"},
			{Name: "active", TypeName: "bool", IsPrimaryKey: true},
			{Name: "bogus", TypeName: "nonsense"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, users.InsertRow(
		[]string{"id", "n", "score", "active"},
		[][]string{{"1", "a", "1.5", "true"}, {"2", "b", "2.5", "false"}},
	))
	db.AddTable(users)
	return db
}

func TestSnapshotRoundTripViaBytes(t *testing.T) {
	db := buildDatabase(t)

	blob, err := snapshot.Bytes(db)
	require.NoError(t, err)

	restored, err := snapshot.FromBytes(blob)
	require.NoError(t, err)

	assert.Equal(t, db, restored)
}

func TestSnapshotRoundTripViaFile(t *testing.T) {
	db := buildDatabase(t)
	path := t.TempDir() + "/db.snapshot"

	require.NoError(t, snapshot.SaveFile(path, db))
	restored, err := snapshot.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, db, restored)
}

func TestSnapshotPreservesQueryability(t *testing.T) {
	db := buildDatabase(t)
	blob, err := snapshot.Bytes(db)
	require.NoError(t, err)
	restored, err := snapshot.FromBytes(blob)
	require.NoError(t, err)

	tbl, err := restored.GetTable("u")
	require.NoError(t, err)
	rows, err := tbl.PlanAndExecute(query.SelectDescriptor{
		From:       "u",
		Projection: []string{"id", "n"},
		WhereExpressions: []query.WhereExpression{
			{Left: "id", Right: "1", Op: query.Eq},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "a"}}, rows)
}

func TestRoundTripTwiceProducesSameBlob(t *testing.T) {
	db := buildDatabase(t)
	first, err := snapshot.Bytes(db)
	require.NoError(t, err)
	restored, err := snapshot.FromBytes(first)
	require.NoError(t, err)
	second, err := snapshot.Bytes(restored)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
