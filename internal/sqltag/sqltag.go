// Package sqltag derives the Postgres command tag CommandComplete reports
// for a statement, using the real Postgres grammar rather than guessing from
// the leading keyword.
package sqltag

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// Command returns the command tag keyword (SELECT, INSERT, UPDATE, DELETE,
// ...) for sql. Every statement this proxy answers with rows is a
// SELECT-shaped result set, so unparseable or unrecognized input falls back
// to "SELECT" rather than failing the query it was already about to answer.
func Command(sql string) string {
	tree, err := pg_query.Parse(sql)
	if err != nil || len(tree.Stmts) == 0 || tree.Stmts[0].Stmt == nil {
		return "SELECT"
	}

	switch tree.Stmts[0].Stmt.Node.(type) {
	case *pg_query.Node_SelectStmt:
		return "SELECT"
	case *pg_query.Node_InsertStmt:
		return "INSERT"
	case *pg_query.Node_UpdateStmt:
		return "UPDATE"
	case *pg_query.Node_DeleteStmt:
		return "DELETE"
	default:
		return "SELECT"
	}
}
