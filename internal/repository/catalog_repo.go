package repo

import (
	"context"
	"fmt"

	"repo-stats-admin/internal/lib"
	"repo-stats-admin/internal/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"
)

const dialectPostgres = "postgres"

const (
	aliasSchema      = "schema_name"
	aliasObject      = "object_name"
	aliasTable       = "table_name"
	aliasArguments   = "arguments"
	aliasRoutineKind = "routine_kind"
)

type CatalogRepo struct {
	db     *sqlx.DB
	schema string
}

func NewCatalogRepo(db *sqlx.DB, schema string) *CatalogRepo {
	return &CatalogRepo{
		db:     db,
		schema: schema,
	}
}

// Discover lists the objects of one kind in the repo's schema, ordered by name.
func (r *CatalogRepo) Discover(ctx context.Context, kind models.ObjectKind) ([]models.SchemaObject, error) {
	const op = "catalog_repo.Discover"

	ds, err := DiscoveryQuery(kind, r.schema)
	if err != nil {
		return nil, lib.Err(op, err)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, lib.Err(op, err)
	}

	objects := []models.SchemaObject{}
	if err := r.db.SelectContext(ctx, &objects, query, args...); err != nil {
		return nil, lib.Err(fmt.Sprintf("%s(%s)", op, kind), err)
	}

	for i := range objects {
		objects[i].Kind = kind
	}
	return objects, nil
}

// DiscoveryQuery builds the catalog query for kind. Every query yields schema_name and
// object_name; relation-scoped kinds add table_name, routines add arguments and routine_kind.
func DiscoveryQuery(kind models.ObjectKind, schema string) (*goqu.SelectDataset, error) {
	pg := goqu.Dialect(dialectPostgres)
	infoSchema := goqu.S("information_schema")
	pgCatalog := goqu.S("pg_catalog")

	var ds *goqu.SelectDataset
	switch kind {
	case models.KindTables, models.KindViews:
		tableType := "BASE TABLE"
		if kind == models.KindViews {
			tableType = "VIEW"
		}
		ds = pg.From(infoSchema.Table("tables")).
			Select(
				goqu.C("table_schema").As(aliasSchema),
				goqu.C("table_name").As(aliasObject),
			).
			Where(goqu.Ex{"table_schema": schema, "table_type": tableType}).
			Order(goqu.C(aliasObject).Asc())

	case models.KindSequences:
		ds = pg.From(infoSchema.Table("sequences")).
			Select(
				goqu.C("sequence_schema").As(aliasSchema),
				goqu.C("sequence_name").As(aliasObject),
			).
			Where(goqu.Ex{"sequence_schema": schema}).
			Order(goqu.C(aliasObject).Asc())

	case models.KindTriggers:
		// information_schema.triggers has one row per triggering event.
		ds = pg.From(infoSchema.Table("triggers")).
			Distinct().
			Select(
				goqu.C("trigger_schema").As(aliasSchema),
				goqu.C("trigger_name").As(aliasObject),
				goqu.C("event_object_table").As(aliasTable),
			).
			Where(goqu.Ex{"trigger_schema": schema}).
			Order(goqu.C(aliasObject).Asc(), goqu.C(aliasTable).Asc())

	case models.KindIndexes:
		ds = pg.From(pgCatalog.Table("pg_indexes")).
			Select(
				goqu.C("schemaname").As(aliasSchema),
				goqu.C("indexname").As(aliasObject),
				goqu.C("tablename").As(aliasTable),
			).
			Where(goqu.Ex{"schemaname": schema}).
			Order(goqu.C(aliasObject).Asc())

	case models.KindPolicies:
		ds = pg.From(pgCatalog.Table("pg_policies")).
			Select(
				goqu.C("schemaname").As(aliasSchema),
				goqu.C("policyname").As(aliasObject),
				goqu.C("tablename").As(aliasTable),
			).
			Where(goqu.Ex{"schemaname": schema}).
			Order(goqu.C(aliasTable).Asc(), goqu.C(aliasObject).Asc())

	case models.KindEnums:
		ds = pg.From(pgCatalog.Table("pg_type").As("t")).
			Join(
				pgCatalog.Table("pg_namespace").As("n"),
				goqu.On(goqu.I("n.oid").Eq(goqu.I("t.typnamespace"))),
			).
			Select(
				goqu.I("n.nspname").As(aliasSchema),
				goqu.I("t.typname").As(aliasObject),
			).
			Where(
				goqu.I("n.nspname").Eq(schema),
				goqu.I("t.typtype").Eq("e"),
			).
			Order(goqu.C(aliasObject).Asc())

	case models.KindFunctions:
		// Extension members are skipped: they can only go away with DROP EXTENSION.
		ds = pg.From(pgCatalog.Table("pg_proc").As("p")).
			Join(
				pgCatalog.Table("pg_namespace").As("n"),
				goqu.On(goqu.I("n.oid").Eq(goqu.I("p.pronamespace"))),
			).
			Select(
				goqu.I("n.nspname").As(aliasSchema),
				goqu.I("p.proname").As(aliasObject),
				goqu.L("pg_catalog.pg_get_function_identity_arguments(p.oid)").As(aliasArguments),
				goqu.L("CASE p.prokind WHEN 'p' THEN 'PROCEDURE' ELSE 'FUNCTION' END").As(aliasRoutineKind),
			).
			Where(
				goqu.I("n.nspname").Eq(schema),
				goqu.I("p.prokind").In("f", "p"),
				goqu.L("NOT EXISTS (SELECT 1 FROM pg_catalog.pg_depend d WHERE d.objid = p.oid AND d.deptype = 'e')"),
			).
			Order(goqu.C(aliasObject).Asc(), goqu.C(aliasArguments).Asc())

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return ds.Prepared(true), nil
}
