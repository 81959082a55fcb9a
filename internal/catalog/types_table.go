package catalog

// TypeRow is a single row of the synthesized pg_type listing returned for
// the SupportedTypes probe.
type TypeRow struct {
	Namespace    string
	Name         string
	OID          int32
	RelID        int32
	BaseType     int32
	Kind         string // 'b' base, 'r' range, 'e' enum, 'd' domain, 'a' array, 'p' pseudo
	ElemOID      int32
	Ord          int32
}

// SupportedTypes is the fixed Postgres type catalog a BI client walks before
// it will issue any real query. It mirrors the set of base, range and array
// types Postgres itself reports, plus the information_schema domain types
// (sql_identifier, cardinal_number, ...) that INFORMATION_SCHEMA views are
// typed with. The analytic backend has no catalog of its own that maps onto
// this; it is reproduced verbatim so client-side type resolution succeeds.
var SupportedTypes = []TypeRow{
	{"pg_catalog", "float8", 701, 0, 0, "b", 0, 0},
	{"pg_catalog", "tid", 27, 0, 0, "b", 0, 0},
	{"pg_catalog", "xid", 28, 0, 0, "b", 0, 0},
	{"pg_catalog", "cid", 29, 0, 0, "b", 0, 0},
	{"pg_catalog", "bytea", 17, 0, 0, "b", 0, 0},
	{"pg_catalog", "json", 114, 0, 0, "b", 0, 0},
	{"pg_catalog", "xml", 142, 0, 0, "b", 0, 0},
	{"pg_catalog", "pg_node_tree", 194, 0, 0, "b", 0, 0},
	{"pg_catalog", "pg_ndistinct", 3361, 0, 0, "b", 0, 0},
	{"pg_catalog", "pg_dependencies", 3402, 0, 0, "b", 0, 0},
	{"pg_catalog", "pg_mcv_list", 5017, 0, 0, "b", 0, 0},
	{"pg_catalog", "point", 600, 0, 0, "b", 0, 0},
	{"pg_catalog", "lseg", 601, 0, 0, "b", 0, 0},
	{"pg_catalog", "path", 602, 0, 0, "b", 0, 0},
	{"pg_catalog", "box", 603, 0, 0, "b", 0, 0},
	{"pg_catalog", "polygon", 604, 0, 0, "b", 0, 0},
	{"pg_catalog", "line", 628, 0, 0, "b", 0, 0},
	{"pg_catalog", "float4", 700, 0, 0, "b", 0, 0},
	{"pg_catalog", "oid", 26, 0, 0, "b", 0, 0},
	{"pg_catalog", "circle", 718, 0, 0, "b", 0, 0},
	{"pg_catalog", "money", 790, 0, 0, "b", 0, 0},
	{"pg_catalog", "macaddr", 829, 0, 0, "b", 0, 0},
	{"pg_catalog", "inet", 869, 0, 0, "b", 0, 0},
	{"pg_catalog", "cidr", 650, 0, 0, "b", 0, 0},
	{"pg_catalog", "macaddr8", 774, 0, 0, "b", 0, 0},
	{"pg_catalog", "bpchar", 1042, 0, 0, "b", 0, 0},
	{"pg_catalog", "varchar", 1043, 0, 0, "b", 0, 0},
	{"pg_catalog", "date", 1082, 0, 0, "b", 0, 0},
	{"pg_catalog", "time", 1083, 0, 0, "b", 0, 0},
	{"pg_catalog", "timestamp", 1114, 0, 0, "b", 0, 0},
	{"pg_catalog", "timestamptz", 1184, 0, 0, "b", 0, 0},
	{"pg_catalog", "interval", 1186, 0, 0, "b", 0, 0},
	{"pg_catalog", "timetz", 1266, 0, 0, "b", 0, 0},
	{"pg_catalog", "bit", 1560, 0, 0, "b", 0, 0},
	{"pg_catalog", "varbit", 1562, 0, 0, "b", 0, 0},
	{"pg_catalog", "numeric", 1700, 0, 0, "b", 0, 0},
	{"pg_catalog", "refcursor", 1790, 0, 0, "b", 0, 0},
	{"pg_catalog", "regprocedure", 2202, 0, 0, "b", 0, 0},
	{"pg_catalog", "regoper", 2203, 0, 0, "b", 0, 0},
	{"pg_catalog", "regoperator", 2204, 0, 0, "b", 0, 0},
	{"pg_catalog", "regclass", 2205, 0, 0, "b", 0, 0},
	{"pg_catalog", "regtype", 2206, 0, 0, "b", 0, 0},
	{"pg_catalog", "regrole", 4096, 0, 0, "b", 0, 0},
	{"pg_catalog", "regnamespace", 4089, 0, 0, "b", 0, 0},
	{"pg_catalog", "uuid", 2950, 0, 0, "b", 0, 0},
	{"pg_catalog", "pg_lsn", 3220, 0, 0, "b", 0, 0},
	{"pg_catalog", "tsvector", 3614, 0, 0, "b", 0, 0},
	{"pg_catalog", "tsquery", 3615, 0, 0, "b", 0, 0},
	{"pg_catalog", "regconfig", 3734, 0, 0, "b", 0, 0},
	{"pg_catalog", "regdictionary", 3769, 0, 0, "b", 0, 0},
	{"pg_catalog", "jsonb", 3802, 0, 0, "b", 0, 0},
	{"pg_catalog", "jsonpath", 4072, 0, 0, "b", 0, 0},
	{"pg_catalog", "txid_snapshot", 2970, 0, 0, "b", 0, 0},
	{"pg_catalog", "record", 2249, 0, 0, "p", 0, 0},
	{"pg_catalog", "char", 18, 0, 0, "b", 0, 0},
	{"pg_catalog", "void", 2278, 0, 0, "p", 0, 0},
	{"pg_catalog", "name", 19, 0, 0, "b", 0, 0},
	{"pg_catalog", "int8", 20, 0, 0, "b", 0, 0},
	{"pg_catalog", "int2", 21, 0, 0, "b", 0, 0},
	{"pg_catalog", "int2vector", 22, 0, 0, "b", 0, 0},
	{"pg_catalog", "int4", 23, 0, 0, "b", 0, 0},
	{"pg_catalog", "regproc", 24, 0, 0, "b", 0, 0},
	{"pg_catalog", "text", 25, 0, 0, "b", 0, 0},
	{"pg_catalog", "bool", 16, 0, 0, "b", 0, 0},
	{"pg_catalog", "int4range", 3904, 0, 0, "r", 23, 2},
	{"pg_catalog", "int8range", 3926, 0, 0, "r", 20, 2},
	{"pg_catalog", "numrange", 3906, 0, 0, "r", 1700, 2},
	{"pg_catalog", "tsrange", 3908, 0, 0, "r", 1114, 2},
	{"pg_catalog", "tstzrange", 3910, 0, 0, "r", 1184, 2},
	{"pg_catalog", "daterange", 3912, 0, 0, "r", 1082, 2},
	{"pg_catalog", "oidvector", 30, 0, 0, "b", 0, 3},
	{"pg_catalog", "_record", 2287, 0, 0, "a", 2249, 3},
	{"pg_catalog", "_bool", 1000, 0, 0, "a", 16, 3},
	{"pg_catalog", "_bytea", 1001, 0, 0, "a", 17, 3},
	{"pg_catalog", "_char", 1002, 0, 0, "a", 18, 3},
	{"pg_catalog", "_name", 1003, 0, 0, "a", 19, 3},
	{"pg_catalog", "_int8", 1016, 0, 0, "a", 20, 3},
	{"pg_catalog", "_int2", 1005, 0, 0, "a", 21, 3},
	{"pg_catalog", "_int2vector", 1006, 0, 0, "a", 22, 3},
	{"pg_catalog", "_int4", 1007, 0, 0, "a", 23, 3},
	{"pg_catalog", "_regproc", 1008, 0, 0, "a", 24, 3},
	{"pg_catalog", "_text", 1009, 0, 0, "a", 25, 3},
	{"pg_catalog", "_oid", 1028, 0, 0, "a", 26, 3},
	{"pg_catalog", "_tid", 1010, 0, 0, "a", 27, 3},
	{"pg_catalog", "_xid", 1011, 0, 0, "a", 28, 3},
	{"pg_catalog", "_cid", 1012, 0, 0, "a", 29, 3},
	{"pg_catalog", "_oidvector", 1013, 0, 0, "a", 30, 3},
	{"pg_catalog", "_json", 199, 0, 0, "a", 114, 3},
	{"pg_catalog", "_xml", 143, 0, 0, "a", 142, 3},
	{"pg_catalog", "_point", 1017, 0, 0, "a", 600, 3},
	{"pg_catalog", "_lseg", 1018, 0, 0, "a", 601, 3},
	{"pg_catalog", "_path", 1019, 0, 0, "a", 602, 3},
	{"pg_catalog", "_box", 1020, 0, 0, "a", 603, 3},
	{"pg_catalog", "_polygon", 1027, 0, 0, "a", 604, 3},
	{"pg_catalog", "_line", 629, 0, 0, "a", 628, 3},
	{"pg_catalog", "_float4", 1021, 0, 0, "a", 700, 3},
	{"pg_catalog", "_float8", 1022, 0, 0, "a", 701, 3},
	{"pg_catalog", "_circle", 719, 0, 0, "a", 718, 3},
	{"pg_catalog", "_money", 791, 0, 0, "a", 790, 3},
	{"pg_catalog", "_macaddr", 1040, 0, 0, "a", 829, 3},
	{"pg_catalog", "_inet", 1041, 0, 0, "a", 869, 3},
	{"pg_catalog", "_cidr", 651, 0, 0, "a", 650, 3},
	{"pg_catalog", "_macaddr8", 775, 0, 0, "a", 774, 3},
	{"pg_catalog", "_aclitem", 1034, 0, 0, "a", 1033, 3},
	{"pg_catalog", "_bpchar", 1014, 0, 0, "a", 1042, 3},
	{"pg_catalog", "_varchar", 1015, 0, 0, "a", 1043, 3},
	{"pg_catalog", "_date", 1182, 0, 0, "a", 1082, 3},
	{"pg_catalog", "_time", 1183, 0, 0, "a", 1083, 3},
	{"pg_catalog", "_timestamp", 1115, 0, 0, "a", 1114, 3},
	{"pg_catalog", "_timestamptz", 1185, 0, 0, "a", 1184, 3},
	{"pg_catalog", "_interval", 1187, 0, 0, "a", 1186, 3},
	{"pg_catalog", "_timetz", 1270, 0, 0, "a", 1266, 3},
	{"pg_catalog", "_bit", 1561, 0, 0, "a", 1560, 3},
	{"pg_catalog", "_varbit", 1563, 0, 0, "a", 1562, 3},
	{"pg_catalog", "_numeric", 1231, 0, 0, "a", 1700, 3},
	{"pg_catalog", "_refcursor", 2201, 0, 0, "a", 1790, 3},
	{"pg_catalog", "_regprocedure", 2207, 0, 0, "a", 2202, 3},
	{"pg_catalog", "_regoper", 2208, 0, 0, "a", 2203, 3},
	{"pg_catalog", "_regoperator", 2209, 0, 0, "a", 2204, 3},
	{"pg_catalog", "_regclass", 2210, 0, 0, "a", 2205, 3},
	{"pg_catalog", "_regtype", 2211, 0, 0, "a", 2206, 3},
	{"pg_catalog", "_regrole", 4097, 0, 0, "a", 4096, 3},
	{"pg_catalog", "_regnamespace", 4090, 0, 0, "a", 4089, 3},
	{"pg_catalog", "_uuid", 2951, 0, 0, "a", 2950, 3},
	{"pg_catalog", "_pg_lsn", 3221, 0, 0, "a", 3220, 3},
	{"pg_catalog", "_tsvector", 3643, 0, 0, "a", 3614, 3},
	{"pg_catalog", "_gtsvector", 3644, 0, 0, "a", 3642, 3},
	{"pg_catalog", "_tsquery", 3645, 0, 0, "a", 3615, 3},
	{"pg_catalog", "_regconfig", 3735, 0, 0, "a", 3734, 3},
	{"pg_catalog", "_regdictionary", 3770, 0, 0, "a", 3769, 3},
	{"pg_catalog", "_jsonb", 3807, 0, 0, "a", 3802, 3},
	{"pg_catalog", "_jsonpath", 4073, 0, 0, "a", 4072, 3},
	{"pg_catalog", "_txid_snapshot", 2949, 0, 0, "a", 2970, 3},
	{"pg_catalog", "_int4range", 3905, 0, 0, "a", 3904, 3},
	{"pg_catalog", "_numrange", 3907, 0, 0, "a", 3906, 3},
	{"pg_catalog", "_tsrange", 3909, 0, 0, "a", 3908, 3},
	{"pg_catalog", "_tstzrange", 3911, 0, 0, "a", 3910, 3},
	{"pg_catalog", "_daterange", 3913, 0, 0, "a", 3912, 3},
	{"pg_catalog", "_int8range", 3927, 0, 0, "a", 3926, 3},
	{"pg_catalog", "_cstring", 1263, 0, 0, "a", 2275, 3},
	{"information_schema", "time_stamp", 13151, 0, 1184, "d", 0, 1},
	{"information_schema", "sql_identifier", 13146, 0, 19, "d", 0, 1},
	{"information_schema", "cardinal_number", 13141, 0, 23, "d", 0, 1},
	{"information_schema", "yes_or_no", 13153, 0, 1043, "d", 0, 1},
	{"information_schema", "character_data", 13144, 0, 1043, "d", 0, 1},
	{"information_schema", "_cardinal_number", 13140, 0, 0, "a", 13141, 3},
	{"information_schema", "_character_data", 13143, 0, 0, "a", 13144, 3},
	{"information_schema", "_sql_identifier", 13145, 0, 0, "a", 13146, 3},
	{"information_schema", "_time_stamp", 13150, 0, 0, "a", 13151, 3},
	{"information_schema", "_yes_or_no", 13152, 0, 0, "a", 13153, 3},
}
