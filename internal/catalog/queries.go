// Package catalog recognizes the fixed set of pg_catalog/information_schema
// introspection queries issued by Postgres-aware BI clients during connection
// setup and synthesizes Postgres-shaped result sets for them. Only the
// table-list and column-info probes consult the analytic backend; every
// other probe is answered from fixed data.
package catalog

import (
	"regexp"
	"strings"
)

// Kind identifies one of the fixed catalog probes a BI client issues.
type Kind int

const (
	// Unknown indicates the query is not a recognized catalog probe and
	// should be routed to the backend instead.
	Unknown Kind = iota
	KindSupportedTypes
	CompositeTypeFields
	EnumFields
	CharacterSets
	TableList
	ColumnInfo
)

// Fixed, byte-for-byte query texts. BI tools send these exact statements
// (CRLF line endings included) when probing the catalog; a single byte
// difference means the probe is not recognized and falls through to the
// backend.
const (
	supportedTypesQuery = "\r\n/*** Load all supported types ***/\r\nSELECT ns.nspname, a.typname, a.oid, a.typrelid, a.typbasetype,\r\nCASE WHEN pg_proc.proname='array_recv' THEN 'a' ELSE a.typtype END AS type,\r\nCASE\r\n  WHEN pg_proc.proname='array_recv' THEN a.typelem\r\n  WHEN a.typtype='r' THEN rngsubtype\r\n  ELSE 0\r\nEND AS elemoid,\r\nCASE\r\n  WHEN pg_proc.proname IN ('array_recv','oidvectorrecv') THEN 3    /* Arrays last */\r\n  WHEN a.typtype='r' THEN 2                                        /* Ranges before */\r\n  WHEN a.typtype='d' THEN 1                                        /* Domains before */\r\n  ELSE 0                                                           /* Base types first */\r\nEND AS ord\r\nFROM pg_type AS a\r\nJOIN pg_namespace AS ns ON (ns.oid = a.typnamespace)\r\nJOIN pg_proc ON pg_proc.oid = a.typreceive\r\nLEFT OUTER JOIN pg_class AS cls ON (cls.oid = a.typrelid)\r\nLEFT OUTER JOIN pg_type AS b ON (b.oid = a.typelem)\r\nLEFT OUTER JOIN pg_class AS elemcls ON (elemcls.oid = b.typrelid)\r\nLEFT OUTER JOIN pg_range ON (pg_range.rngtypid = a.oid) \r\nWHERE\r\n  a.typtype IN ('b', 'r', 'e', 'd') OR         /* Base, range, enum, domain */\r\n  (a.typtype = 'c' AND cls.relkind='c') OR /* User-defined free-standing composites (not table composites) by default */\r\n  (pg_proc.proname='array_recv' AND (\r\n    b.typtype IN ('b', 'r', 'e', 'd') OR       /* Array of base, range, enum, domain */\r\n    (b.typtype = 'p' AND b.typname IN ('record', 'void')) OR /* Arrays of special supported pseudo-types */\r\n    (b.typtype = 'c' AND elemcls.relkind='c')  /* Array of user-defined free-standing composites (not table composites) */\r\n  )) OR\r\n  (a.typtype = 'p' AND a.typname IN ('record', 'void'))  /* Some special supported pseudo-types */\r\nORDER BY ord"

	compositeTypeFieldsQuery = "/*** Load field definitions for (free-standing) composite types ***/\r\nSELECT typ.oid, att.attname, att.atttypid\r\nFROM pg_type AS typ\r\nJOIN pg_namespace AS ns ON (ns.oid = typ.typnamespace)\r\nJOIN pg_class AS cls ON (cls.oid = typ.typrelid)\r\nJOIN pg_attribute AS att ON (att.attrelid = typ.typrelid)\r\nWHERE\r\n  (typ.typtype = 'c' AND cls.relkind='c') AND\r\n  attnum > 0 AND     /* Don't load system attributes */\r\n  NOT attisdropped\r\nORDER BY typ.oid, att.attnum"

	enumFieldsQuery = "/*** Load enum fields ***/\r\nSELECT pg_type.oid, enumlabel\r\nFROM pg_enum\r\nJOIN pg_type ON pg_type.oid=enumtypid\r\nORDER BY oid, enumsortorder"

	characterSetsQuery = "select character_set_name from INFORMATION_SCHEMA.character_sets"

	tableListQuery = "select TABLE_SCHEMA, TABLE_NAME, TABLE_TYPE\r\nfrom INFORMATION_SCHEMA.tables\r\nwhere TABLE_SCHEMA not in ('information_schema', 'pg_catalog')\r\norder by TABLE_SCHEMA, TABLE_NAME"

	// columnInfoPrefix is matched with strings.HasPrefix; the client appends
	// the concrete table name and an ORDER BY clause after it.
	columnInfoPrefix = "select COLUMN_NAME, ORDINAL_POSITION, IS_NULLABLE, case when (data_type like '%unsigned%') then DATA_TYPE || ' unsigned' else DATA_TYPE end as DATA_TYPE\r\nfrom INFORMATION_SCHEMA.columns\r\nwhere TABLE_SCHEMA = 'public' and TABLE_NAME ="

	// DiscardAll is the literal simple-query statement psql and BI drivers
	// send to reset a pooled connection's session state.
	DiscardAll = "DISCARD ALL"
)

var tableNamePattern = regexp.MustCompile(`TABLE_NAME = '(\w*)'`)

// Classify inspects a trimmed query string (as received from the client,
// before any backend substitution) and reports which catalog probe, if any,
// it matches.
func Classify(query string) Kind {
	switch query {
	case supportedTypesQuery:
		return KindSupportedTypes
	case compositeTypeFieldsQuery:
		return CompositeTypeFields
	case enumFieldsQuery:
		return EnumFields
	case characterSetsQuery:
		return CharacterSets
	case tableListQuery:
		return TableList
	}

	if strings.HasPrefix(query, columnInfoPrefix) {
		return ColumnInfo
	}

	return Unknown
}

// TableFromColumnInfoQuery extracts the table name embedded in a ColumnInfo
// probe, e.g. "... and TABLE_NAME = 'orders' order by ...".
func TableFromColumnInfoQuery(query string) string {
	match := tableNamePattern.FindStringSubmatch(query)
	if len(match) != 2 {
		return ""
	}

	return match[1]
}
