package backend

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
)

// Config carries the connection parameters the proxy was started with. The
// analytic store this proxy fronts speaks a Postgres-compatible wire dialect
// for the subset of SQL the backend adapter issues, so lib/pq's driver is
// reused to open and drive the connection rather than hand-rolling another
// wire client.
type Config struct {
	Host      string
	Port      int
	Database  string
	Username  string
	Password  string
	Clustered bool
}

func (c Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		c.Host, c.Port, c.Database, c.Username, c.Password,
	)
}

// sqlConn is the Conn implementation backed by database/sql and the lib/pq
// driver. A single *sql.DB is shared across every client session; its
// built-in pool is disabled down to one connection because the analytic
// store's native protocol is not multiplexable (spec: shared-resource
// policy), and Execute additionally serializes through mu so that no two
// sessions interleave statements on that one connection.
type sqlConn struct {
	db *sql.DB
	mu sync.Mutex
}

// Dial opens the single shared backend connection used by the proxy for the
// lifetime of the process.
func Dial(ctx context.Context, cfg Config) (Conn, error) {
	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("backend: open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("backend: ping: %w", err)
	}

	return &sqlConn{db: db}, nil
}

func (c *sqlConn) Execute(ctx context.Context, query string) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("backend: execute: %w", err)
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("backend: columns: %w", err)
	}

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("backend: column types: %w", err)
	}

	result := &Result{Columns: make([]Column, len(colNames))}
	for i, name := range colNames {
		length := -1
		if n, ok := colTypes[i].Length(); ok {
			length = int(n)
		}

		result.Columns[i] = Column{
			Name:    name,
			TypeTag: colTypes[i].DatabaseTypeName(),
			Length:  length,
		}
	}

	for rows.Next() {
		scanned := make([]any, len(colNames))
		ptrs := make([]any, len(colNames))
		for i := range scanned {
			ptrs[i] = &scanned[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("backend: scan: %w", err)
		}

		result.Rows = append(result.Rows, scanned)
	}

	return result, rows.Err()
}

func (c *sqlConn) ListTables(ctx context.Context) ([]Table, error) {
	const query = `select table_schema, table_name from information_schema.tables ` +
		`where table_schema not in ('information_schema', 'pg_catalog') order by table_schema, table_name`

	result, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(result.Rows))
	for _, row := range result.Rows {
		tables = append(tables, Table{
			Schema: fmt.Sprint(row[0]),
			Table:  fmt.Sprint(row[1]),
		})
	}

	return tables, nil
}

func (c *sqlConn) DescribeTable(ctx context.Context, table string) ([]ColumnInfo, error) {
	query := fmt.Sprintf(
		`select column_name, is_nullable, data_type from information_schema.columns `+
			`where table_schema = 'public' and table_name = '%s' order by ordinal_position`,
		table,
	)

	result, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(result.Rows))
	for _, row := range result.Rows {
		columns = append(columns, ColumnInfo{
			Name:     fmt.Sprint(row[0]),
			Nullable: fmt.Sprint(row[1]),
			Type:     fmt.Sprint(row[2]),
		})
	}

	return columns, nil
}

func (c *sqlConn) Close() error {
	return c.db.Close()
}
