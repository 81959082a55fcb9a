package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/columnarwire/pgproxy/internal/backend"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindSupportedTypes, Classify(supportedTypesQuery))
	assert.Equal(t, CompositeTypeFields, Classify(compositeTypeFieldsQuery))
	assert.Equal(t, EnumFields, Classify(enumFieldsQuery))
	assert.Equal(t, CharacterSets, Classify(characterSetsQuery))
	assert.Equal(t, TableList, Classify(tableListQuery))
	assert.Equal(t, ColumnInfo, Classify(columnInfoPrefix+" 'orders'\r\norder by ordinal_position"))
	assert.Equal(t, Unknown, Classify("select * from orders"))
	assert.Equal(t, Unknown, Classify(supportedTypesQuery+" "))
}

func TestTableFromColumnInfoQuery(t *testing.T) {
	t.Parallel()

	query := columnInfoPrefix + " 'orders'\r\norder by ordinal_position"
	assert.Equal(t, "orders", TableFromColumnInfoQuery(query))
	assert.Equal(t, "", TableFromColumnInfoQuery("select 1"))
}

type fakeBackend struct {
	tables  []backend.Table
	columns []backend.ColumnInfo
	err     error
}

func (f *fakeBackend) Execute(context.Context, string) (*backend.Result, error) { return nil, nil }
func (f *fakeBackend) ListTables(context.Context) ([]backend.Table, error) {
	return f.tables, f.err
}
func (f *fakeBackend) DescribeTable(context.Context, string) ([]backend.ColumnInfo, error) {
	return f.columns, f.err
}
func (f *fakeBackend) Close() error { return nil }

func TestBuild_SupportedTypes(t *testing.T) {
	t.Parallel()

	resp, err := Build(context.Background(), KindSupportedTypes, supportedTypesQuery, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Columns, 8)
	assert.Equal(t, len(SupportedTypes), len(resp.Rows))
}

func TestBuild_CharacterSets(t *testing.T) {
	t.Parallel()

	resp, err := Build(context.Background(), CharacterSets, characterSetsQuery, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"UTF8"}}, resp.Rows)
}

func TestBuild_TableList(t *testing.T) {
	t.Parallel()

	be := &fakeBackend{tables: []backend.Table{{Schema: "public", Table: "t"}}}
	resp, err := Build(context.Background(), TableList, tableListQuery, be)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, []any{"public", "t", "BASE TABLE"}, resp.Rows[0])
}

func TestBuild_ColumnInfo(t *testing.T) {
	t.Parallel()

	be := &fakeBackend{columns: []backend.ColumnInfo{
		{Name: "id", Type: "integer", Nullable: "NO"},
	}}
	query := columnInfoPrefix + " 'orders'\r\norder by ordinal_position"

	resp, err := Build(context.Background(), ColumnInfo, query, be)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, []any{"id", int32(1), "NO", "integer"}, resp.Rows[0])
}

func TestBuild_ColumnInfo_UnsupportedType(t *testing.T) {
	t.Parallel()

	be := &fakeBackend{columns: []backend.ColumnInfo{
		{Name: "id", Type: "decimal(10,2)", Nullable: "NO"},
	}}
	query := columnInfoPrefix + " 'orders'\r\norder by ordinal_position"

	_, err := Build(context.Background(), ColumnInfo, query, be)
	var unsupported backend.ErrUnsupportedType
	require.ErrorAs(t, err, &unsupported)
}

func TestBuild_Unknown(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), Unknown, "select 1", nil)
	assert.Error(t, err)
}
