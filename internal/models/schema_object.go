package models

import "strings"

type ObjectKind string

const (
	KindTables    ObjectKind = "tables"
	KindViews     ObjectKind = "views"
	KindFunctions ObjectKind = "functions"
	KindTriggers  ObjectKind = "triggers"
	KindIndexes   ObjectKind = "indexes"
	KindEnums     ObjectKind = "enums"
	KindPolicies  ObjectKind = "policies"
	KindSequences ObjectKind = "sequences"
)

// DropOrder is the order objects are removed in: dependents before the tables they hang off,
// enums last because columns may still reference them.
var DropOrder = []ObjectKind{
	KindPolicies,
	KindTriggers,
	KindIndexes,
	KindViews,
	KindTables,
	KindFunctions,
	KindSequences,
	KindEnums,
}

const (
	RoutineFunction  = "FUNCTION"
	RoutineProcedure = "PROCEDURE"
)

// SchemaObject describes one catalog object discovered for cleanup.
type SchemaObject struct {
	Kind   ObjectKind `db:"-"`
	Schema string     `db:"schema_name"`
	Name   string     `db:"object_name"`
	// Table owning a trigger, index or policy.
	Table string `db:"table_name"`
	// Identity argument list of a function or procedure, e.g. "integer, text".
	Arguments   string `db:"arguments"`
	RoutineKind string `db:"routine_kind"`
}

// Singular returns the human label for a kind: "table", "index", "policy".
func (k ObjectKind) Singular() string {
	switch k {
	case KindIndexes:
		return "index"
	case KindPolicies:
		return "policy"
	case KindEnums:
		return "enum type"
	default:
		return strings.TrimSuffix(string(k), "s")
	}
}

// Label is the name used in console lines, including the argument list for routines.
func (o SchemaObject) Label() string {
	if o.Kind == KindFunctions {
		return o.Name + "(" + o.Arguments + ")"
	}
	return o.Name
}

// RelationScoped reports whether the object lives on a table (triggers, indexes, policies).
func (o SchemaObject) RelationScoped() bool {
	switch o.Kind {
	case KindTriggers, KindIndexes, KindPolicies:
		return true
	}
	return false
}

var systemSchemas = map[string]struct{}{
	"information_schema": {},
	"pg_catalog":         {},
	"pg_toast":           {},
	"auth":               {},
	"extensions":         {},
	"pgbouncer":          {},
	"pgsodium":           {},
	"vault":              {},
	"graphql":            {},
	"realtime":           {},
	"storage":            {},
}

// systemPrefixes are matched on the literal object name including the dot, so a public
// table called "vaultage" is kept while a quoted "vault.secrets" is not.
var systemPrefixes = []string{
	"auth.",
	"extensions.",
	"pgbouncer.",
	"pgsodium.",
	"vault.",
	"graphql.",
	"realtime.",
	"storage.",
}

func IsSystemSchema(schema string) bool {
	if _, ok := systemSchemas[schema]; ok {
		return true
	}
	return strings.HasPrefix(schema, "pg_temp_") || strings.HasPrefix(schema, "pg_toast_temp_")
}

func HasSystemPrefix(name string) bool {
	for _, p := range systemPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// IsSystemObject reports whether o belongs to the platform rather than the application.
func (o SchemaObject) IsSystemObject() bool {
	return IsSystemSchema(o.Schema) || HasSystemPrefix(o.Name) || HasSystemPrefix(o.Table)
}
