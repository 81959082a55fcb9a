package catalog

import (
	"context"
	"fmt"

	"github.com/columnarwire/pgproxy/internal/backend"
)

// Column describes one column of a synthesized catalog response: its name
// plus the fixed Postgres OID and wire byte length this proxy always
// reports for it (catalog descriptors never vary by backend state).
type Column struct {
	Name    string
	TypeOID uint32
	TypeLen int16
}

// Response is a fully resolved catalog probe: a column list plus the rows
// to serialize, in host-language scalar form.
type Response struct {
	Columns []Column
	Rows    [][]any
}

const (
	oidText    = 19
	oidOID     = 26
	oidChar    = 18
	oidInteger = 23
)

// Build synthesizes the Postgres-shaped response for the given catalog
// probe. TableList and ColumnInfo reach into the backend adapter for their
// rows; every other probe is answered entirely out of this package's fixed
// tables, never touching the backend.
func Build(ctx context.Context, kind Kind, query string, be backend.Conn) (*Response, error) {
	switch kind {
	case KindSupportedTypes:
		return buildSupportedTypes(), nil
	case CompositeTypeFields:
		return &Response{Columns: []Column{
			{"oid", oidOID, 4},
			{"attname", oidText, -1},
			{"atttypid", oidOID, 4},
		}}, nil
	case EnumFields:
		return &Response{Columns: []Column{
			{"oid", oidOID, 4},
			{"enumlabel", oidText, -1},
		}}, nil
	case CharacterSets:
		return &Response{
			Columns: []Column{{"character_set_name", oidText, -1}},
			Rows:    [][]any{{"UTF8"}},
		}, nil
	case TableList:
		return buildTableList(ctx, be)
	case ColumnInfo:
		return buildColumnInfo(ctx, be, TableFromColumnInfoQuery(query))
	default:
		return nil, fmt.Errorf("catalog: not a recognized probe")
	}
}

func buildSupportedTypes() *Response {
	resp := &Response{
		Columns: []Column{
			{"nspname", oidText, -1},
			{"typname", oidText, -1},
			{"oid", oidOID, 4},
			{"typrelid", oidOID, 4},
			{"typbasetype", oidOID, 4},
			{"type", oidChar, 1},
			{"elemoid", oidOID, 4},
			{"ord", oidInteger, 4},
		},
		Rows: make([][]any, 0, len(SupportedTypes)),
	}

	for _, row := range SupportedTypes {
		resp.Rows = append(resp.Rows, []any{
			row.Namespace, row.Name, int64(row.OID), int64(row.RelID),
			int64(row.BaseType), row.Kind, int64(row.ElemOID), int64(row.Ord),
		})
	}

	return resp
}

func buildTableList(ctx context.Context, be backend.Conn) (*Response, error) {
	resp := &Response{Columns: []Column{
		{"table_schema", oidText, -1},
		{"table_name", oidText, -1},
		{"table_type", oidText, -1},
	}}

	tables, err := be.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range tables {
		resp.Rows = append(resp.Rows, []any{t.Schema, t.Table, "BASE TABLE"})
	}

	return resp, nil
}

func buildColumnInfo(ctx context.Context, be backend.Conn, table string) (*Response, error) {
	resp := &Response{Columns: []Column{
		{"column_name", oidText, -1},
		{"ordinal_position", oidInteger, 4},
		{"is_nullable", oidText, -1},
		{"data_type", oidText, -1},
	}}

	if table == "" {
		return resp, nil
	}

	columns, err := be.DescribeTable(ctx, table)
	if err != nil {
		return nil, err
	}

	for i, c := range columns {
		_, name, _, err := backend.MapOID(c.Type)
		if err != nil {
			return nil, err
		}

		resp.Rows = append(resp.Rows, []any{c.Name, int32(i + 1), c.Nullable, name})
	}

	return resp, nil
}
