// Package backend defines the thin contract this proxy requires from the
// analytic store it fronts, plus the Postgres type mapping used to describe
// backend result columns to wire clients.
package backend

import (
	"context"
	"fmt"
	"strings"
)

// Column describes one column of a backend Result, in the store's own
// vocabulary (a free-form type tag, not a Postgres OID).
type Column struct {
	Name    string
	TypeTag string
	Length  int
}

// Result is the outcome of Conn.Execute: a column list plus the rows,
// still in host-language scalar form. The wire codec is responsible for
// text/binary encoding; this package never touches wire bytes.
type Result struct {
	Columns []Column
	Rows    [][]any
}

// Table identifies one table the backend reports via ListTables.
type Table struct {
	Schema string
	Table  string
}

// ColumnInfo describes one column of a table the backend reports via
// DescribeTable.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable string // "YES" or "NO"
}

// Conn is the minimal contract over the analytic store's connection this
// proxy depends on. Implementations must tolerate sequential reuse across
// many client sessions: the store's native protocol is not assumed to be
// multiplexable, so access must be serialized (the lib/pq-backed sqlConn
// does this with its own mutex).
type Conn interface {
	Execute(ctx context.Context, sql string) (*Result, error)
	ListTables(ctx context.Context) ([]Table, error)
	DescribeTable(ctx context.Context, table string) ([]ColumnInfo, error)
	Close() error
}

// ErrUnsupportedType is returned by MapOID when a store type tag does not
// match any of the mapping rules below.
type ErrUnsupportedType struct {
	Tag string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type: %q", e.Tag)
}

// MapOID maps a backend type tag to the fixed Postgres OID, display name
// and on-wire byte length this proxy advertises for it. The mapping rule is
// intentionally substring-based: the analytic store's own type tags are
// free-form strings (e.g. "int32", "nullable(int64)"), so exact matching
// would miss most of them.
func MapOID(tag string) (oid uint32, name string, length int16, err error) {
	lower := strings.ToLower(tag)

	switch {
	case strings.Contains(lower, "int"):
		return 23, "integer", 4, nil
	case strings.Contains(lower, "text"):
		return 19, "text", -1, nil
	default:
		return 0, "", 0, ErrUnsupportedType{Tag: tag}
	}
}
