package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"repo-stats-admin/internal/lib"
	"repo-stats-admin/internal/models"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrUnknownKind = errors.New("unknown object kind")

type DropRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewDropRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *DropRepo {
	return &DropRepo{
		db:     db,
		getter: c,
	}
}

// Drop issues the DROP statement for obj on the transaction carried by ctx, if any.
func (r *DropRepo) Drop(ctx context.Context, obj models.SchemaObject) error {
	const op = "drop_repo.Drop"

	query, err := DropStatement(obj)
	if err != nil {
		return lib.Err(op, err)
	}

	if _, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query); err != nil {
		return lib.Err(op, classify(err))
	}
	return nil
}

// DropStatement renders the guarded DROP for obj with every identifier quoted.
func DropStatement(obj models.SchemaObject) (string, error) {
	qualified := func(name string) string {
		return pq.QuoteIdentifier(obj.Schema) + "." + pq.QuoteIdentifier(name)
	}

	switch obj.Kind {
	case models.KindPolicies:
		return fmt.Sprintf("DROP POLICY IF EXISTS %s ON %s", pq.QuoteIdentifier(obj.Name), qualified(obj.Table)), nil
	case models.KindTriggers:
		return fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", pq.QuoteIdentifier(obj.Name), qualified(obj.Table)), nil
	case models.KindIndexes:
		return fmt.Sprintf("DROP INDEX IF EXISTS %s CASCADE", qualified(obj.Name)), nil
	case models.KindViews:
		return fmt.Sprintf("DROP VIEW IF EXISTS %s CASCADE", qualified(obj.Name)), nil
	case models.KindTables:
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", qualified(obj.Name)), nil
	case models.KindFunctions:
		routine := models.RoutineFunction
		if strings.EqualFold(obj.RoutineKind, models.RoutineProcedure) {
			routine = models.RoutineProcedure
		}
		return fmt.Sprintf("DROP %s IF EXISTS %s(%s) CASCADE", routine, qualified(obj.Name), obj.Arguments), nil
	case models.KindSequences:
		return fmt.Sprintf("DROP SEQUENCE IF EXISTS %s CASCADE", qualified(obj.Name)), nil
	case models.KindEnums:
		return fmt.Sprintf("DROP TYPE IF EXISTS %s CASCADE", qualified(obj.Name)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, obj.Kind)
}
