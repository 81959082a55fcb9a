package pgproxy

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/columnarwire/pgproxy/pkg/buffer"
	"github.com/columnarwire/pgproxy/pkg/types"
)

// ColumnDescriptor mirrors one field of a Postgres RowDescription message.
// TableOID is always the fixed synthetic value this proxy advertises; it
// never corresponds to a real relation.
type ColumnDescriptor struct {
	Name     string
	TableOID uint32
	Index    int16
	TypeOID  uint32
	TypeLen  int16
	TypeMod  int32
	Format   FormatCode
}

// syntheticTableOID is the fixed tableOid value reported for every column
// of every RowDescription this proxy emits; none of its rows come from a
// single real relation the client could meaningfully reference by it.
const syntheticTableOID = 49152

// NewColumnDescriptor builds a descriptor for the column at the given
// 1-based index using the fixed synthetic table OID and typeMod.
func NewColumnDescriptor(name string, index int16, typeOID uint32, typeLen int16, format FormatCode) ColumnDescriptor {
	return ColumnDescriptor{
		Name:     name,
		TableOID: syntheticTableOID,
		Index:    index,
		TypeOID:  typeOID,
		TypeLen:  typeLen,
		TypeMod:  -1,
		Format:   format,
	}
}

// writeRowDescription serializes a RowDescription ('T') message for the
// given columns.
func writeRowDescription(writer *buffer.Writer, columns []ColumnDescriptor) error {
	writer.Start(types.ServerRowDescription)
	writer.AddInt16(int16(len(columns)))

	for _, col := range columns {
		writer.AddString(col.Name)
		writer.AddNullTerminate()
		writer.AddInt32(int32(col.TableOID))
		writer.AddInt16(col.Index)
		writer.AddInt32(int32(col.TypeOID))
		writer.AddInt16(col.TypeLen)
		writer.AddInt32(col.TypeMod)
		writer.AddInt16(int16(col.Format))
	}

	return writer.End()
}

// writeDataRow serializes a DataRow ('D') message, encoding each cell per
// the declared format of its column using pgx's type registry. A nil cell
// value is written as a NULL (length -1, no bytes).
func writeDataRow(typeMap *pgtype.Map, writer *buffer.Writer, columns []ColumnDescriptor, values []any) error {
	writer.Start(types.ServerDataRow)
	writer.AddInt16(int16(len(values)))

	for i, value := range values {
		if value == nil {
			writer.AddInt32(-1)
			continue
		}

		col := columns[i]
		encoded, err := typeMap.Encode(col.TypeOID, int16(col.Format), value, nil)
		if err != nil {
			return err
		}

		if encoded == nil {
			writer.AddInt32(-1)
			continue
		}

		writer.AddInt32(int32(len(encoded)))
		writer.AddBytes(encoded)
	}

	return writer.End()
}
