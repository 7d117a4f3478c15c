package cleaner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"repo-stats-admin/internal/lib"
	"repo-stats-admin/internal/lib/sl"
	"repo-stats-admin/internal/models"
	"repo-stats-admin/internal/service"

	"github.com/google/uuid"
)

const ConfirmationPhrase = "DELETE_ALL"

var (
	ErrNothingToDelete = errors.New("no user-created objects found")
	ErrCancelled       = errors.New("operation cancelled")
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=CatalogProvider
type CatalogProvider interface {
	Discover(ctx context.Context, kind models.ObjectKind) ([]models.SchemaObject, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ObjectDropper
type ObjectDropper interface {
	Drop(ctx context.Context, obj models.SchemaObject) error
}

// Observer receives progress for console rendering.
type Observer interface {
	Planned(plan *Plan)
	Started(runID string)
	KindStarted(kind models.ObjectKind, count int)
	Dropped(obj models.SchemaObject)
	DropFailed(obj models.SchemaObject, reason string)
}

// Confirmer asks the operator and returns the typed answer. It must give up when ctx is done.
type Confirmer func(ctx context.Context, plan *Plan) (string, error)

type RunOptions struct {
	// SkipConfirm drops without asking.
	SkipConfirm bool
	Confirm     Confirmer
	Observer    Observer
}

type CleanerService struct {
	log     *slog.Logger
	trm     service.TransactionManager
	catalog CatalogProvider
	dropper ObjectDropper
	now     func() time.Time
}

func NewCleanerService(log *slog.Logger, trm service.TransactionManager, catalog CatalogProvider, dropper ObjectDropper) *CleanerService {
	return &CleanerService{
		log:     log,
		trm:     trm,
		catalog: catalog,
		dropper: dropper,
		now:     time.Now,
	}
}

// Run discovers, shows the plan, asks for confirmation and drops. The plan is returned
// whenever discovery succeeded; ErrNothingToDelete and ErrCancelled mean nothing was dropped.
func (s *CleanerService) Run(ctx context.Context, kinds []models.ObjectKind, opts RunOptions) (*Plan, *Result, error) {
	const op = "cleaner.Run"

	runID := uuid.NewString()
	log := s.log.With(slog.String("op", op), slog.String("run_id", runID))

	plan, err := s.Discover(ctx, kinds)
	if err != nil {
		log.Error("discovery failed", sl.Err(err))
		return nil, nil, err
	}
	log.Info("discovery finished", slog.Int("objects", plan.Total()))

	if opts.Observer != nil {
		opts.Observer.Planned(plan)
	}

	if plan.Total() == 0 {
		return plan, nil, ErrNothingToDelete
	}

	if !opts.SkipConfirm {
		if opts.Confirm == nil {
			return plan, nil, ErrCancelled
		}
		answer, err := opts.Confirm(ctx, plan)
		if err != nil {
			log.Info("confirmation aborted", sl.Err(err))
			return plan, nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if answer != ConfirmationPhrase {
			log.Info("cleanup not confirmed")
			return plan, nil, ErrCancelled
		}
	}

	log.Warn("dropping objects", slog.String("kinds", KindNames(plan.Ordered())))
	if opts.Observer != nil {
		opts.Observer.Started(runID)
	}
	result, err := s.execute(ctx, log, runID, plan, opts.Observer)
	log.Info("cleanup finished",
		slog.Int("deleted", result.TotalDeleted()),
		slog.Int("failed", result.TotalFailed()),
	)
	return plan, result, err
}

// Discover queries the catalog for each selected kind, in drop order.
func (s *CleanerService) Discover(ctx context.Context, kinds []models.ObjectKind) (*Plan, error) {
	const op = "cleaner.Discover"

	plan := NewPlan(kinds)
	for _, kind := range plan.Ordered() {
		objs, err := s.catalog.Discover(ctx, kind)
		if err != nil {
			return nil, lib.Err(op, err)
		}
		plan.Objects[kind] = UserObjects(kind, objs)
	}
	return plan, nil
}

// Execute drops every object of plan in drop order. Each object gets its own
// transaction; a failure is recorded and the loop moves on.
func (s *CleanerService) Execute(ctx context.Context, plan *Plan, obs Observer) (*Result, error) {
	runID := uuid.NewString()
	return s.execute(ctx, s.log.With(slog.String("run_id", runID)), runID, plan, obs)
}

func (s *CleanerService) execute(ctx context.Context, log *slog.Logger, runID string, plan *Plan, obs Observer) (*Result, error) {
	result := newResult(runID, plan.Ordered(), s.now())
	defer func() { result.FinishedAt = s.now() }()

	for _, kind := range result.Kinds {
		objs := plan.Objects[kind]
		if obs != nil {
			obs.KindStarted(kind, len(objs))
		}

		for _, obj := range objs {
			if err := ctx.Err(); err != nil {
				log.Warn("cleanup interrupted", sl.Err(err))
				return result, err
			}

			err := s.trm.Do(ctx, func(ctx context.Context) error {
				return s.dropper.Drop(ctx, obj)
			})
			if err != nil {
				reason := lib.DatabaseErrorMessage(err)
				result.ByKind[kind].Failed = append(result.ByKind[kind].Failed, Failure{Object: obj, Err: reason})
				log.Warn("drop failed",
					slog.String("kind", string(kind)),
					slog.String("object", obj.Label()),
					sl.Err(err),
				)
				if obs != nil {
					obs.DropFailed(obj, reason)
				}
				continue
			}

			result.ByKind[kind].Deleted = append(result.ByKind[kind].Deleted, obj)
			log.Debug("dropped", slog.String("kind", string(kind)), slog.String("object", obj.Label()))
			if obs != nil {
				obs.Dropped(obj)
			}
		}
	}

	return result, nil
}
