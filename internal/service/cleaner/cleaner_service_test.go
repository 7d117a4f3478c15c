package cleaner_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"repo-stats-admin/internal/lib/sl"
	"repo-stats-admin/internal/models"
	"repo-stats-admin/internal/report"
	"repo-stats-admin/internal/service/cleaner"
	"repo-stats-admin/internal/service/mocks"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	planned  *cleaner.Plan
	runID    string
	started  []models.ObjectKind
	dropped  []string
	failures map[string]string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{failures: map[string]string{}}
}

func (o *recordingObserver) Planned(plan *cleaner.Plan) { o.planned = plan }

func (o *recordingObserver) Started(runID string) { o.runID = runID }

func (o *recordingObserver) KindStarted(kind models.ObjectKind, _ int) {
	o.started = append(o.started, kind)
}

func (o *recordingObserver) Dropped(obj models.SchemaObject) {
	o.dropped = append(o.dropped, obj.Name)
}

func (o *recordingObserver) DropFailed(obj models.SchemaObject, reason string) {
	o.failures[obj.Name] = reason
}

func confirmWith(answer string, asked *bool) cleaner.Confirmer {
	return func(context.Context, *cleaner.Plan) (string, error) {
		if asked != nil {
			*asked = true
		}
		return answer, nil
	}
}

func TestCleanerService_Run_NothingToDelete(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)
	trm := &mocks.PassThroughManager{}

	catalog.On("Discover", ctx, models.KindTables).Return([]models.SchemaObject{}, nil).Once()
	catalog.On("Discover", ctx, models.KindIndexes).Return([]models.SchemaObject{
		{Schema: "public", Name: "users_pkey", Table: "users"},
	}, nil).Once()

	asked := false
	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), trm, catalog, dropper)
	plan, result, err := svc.Run(ctx, []models.ObjectKind{models.KindTables, models.KindIndexes}, cleaner.RunOptions{
		Confirm: confirmWith(cleaner.ConfirmationPhrase, &asked),
	})

	assert.ErrorIs(t, err, cleaner.ErrNothingToDelete)
	assert.Nil(t, result)
	require.NotNil(t, plan)
	assert.Zero(t, plan.Total())
	assert.False(t, asked)
	assert.Zero(t, trm.Calls)
	dropper.AssertNotCalled(t, "Drop", mock.Anything, mock.Anything)
}

func TestCleanerService_Run_WrongConfirmationDropsNothing(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)
	trm := &mocks.PassThroughManager{}

	catalog.On("Discover", ctx, models.KindTables).Return([]models.SchemaObject{
		{Schema: "public", Name: "users"},
	}, nil).Times(4)

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), trm, catalog, dropper)
	for _, answer := range []string{"", "yes", "delete_all", "DELETE_ALL "} {
		asked := false
		_, result, err := svc.Run(ctx, []models.ObjectKind{models.KindTables}, cleaner.RunOptions{
			Confirm: confirmWith(answer, &asked),
		})

		assert.ErrorIs(t, err, cleaner.ErrCancelled, answer)
		assert.Nil(t, result)
		assert.True(t, asked)
	}

	assert.Zero(t, trm.Calls)
	dropper.AssertNotCalled(t, "Drop", mock.Anything, mock.Anything)
}

func TestCleanerService_Run_ConfirmErrorCancels(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)

	catalog.On("Discover", ctx, models.KindViews).Return([]models.SchemaObject{
		{Schema: "public", Name: "v"},
	}, nil).Once()

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), &mocks.PassThroughManager{}, catalog, dropper)
	_, _, err := svc.Run(ctx, []models.ObjectKind{models.KindViews}, cleaner.RunOptions{
		Confirm: func(context.Context, *cleaner.Plan) (string, error) { return "", errors.New("EOF") },
	})

	assert.ErrorIs(t, err, cleaner.ErrCancelled)
}

func TestCleanerService_Run_InterruptAtPromptCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)
	trm := &mocks.PassThroughManager{}

	catalog.On("Discover", mock.Anything, models.KindTables).Return([]models.SchemaObject{
		{Kind: models.KindTables, Schema: "public", Name: "users"},
	}, nil).Once()

	// nobody ever types an answer
	stdin, typist := io.Pipe()
	defer typist.Close()

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), trm, catalog, dropper)

	done := make(chan error, 1)
	go func() {
		_, _, err := svc.Run(ctx, []models.ObjectKind{models.KindTables}, cleaner.RunOptions{
			Confirm: report.ConfirmFromReader(stdin, io.Discard),
		})
		done <- err
	}()

	time.AfterFunc(50*time.Millisecond, cancel)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, cleaner.ErrCancelled)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting for an answer after the context was cancelled")
	}

	assert.Zero(t, trm.Calls)
	dropper.AssertNotCalled(t, "Drop", mock.Anything, mock.Anything)
}

func TestCleanerService_Run_DropsInFixedOrder(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)
	trm := &mocks.PassThroughManager{}

	table := models.SchemaObject{Schema: "public", Name: "users"}
	enum := models.SchemaObject{Schema: "public", Name: "user_type"}
	policy := models.SchemaObject{Schema: "public", Name: "read_all", Table: "users"}
	fn := models.SchemaObject{Schema: "public", Name: "get_user_stats", RoutineKind: models.RoutineFunction}

	catalog.On("Discover", ctx, models.KindPolicies).Return([]models.SchemaObject{policy}, nil).Once()
	catalog.On("Discover", ctx, models.KindTables).Return([]models.SchemaObject{table}, nil).Once()
	catalog.On("Discover", ctx, models.KindFunctions).Return([]models.SchemaObject{fn}, nil).Once()
	catalog.On("Discover", ctx, models.KindEnums).Return([]models.SchemaObject{enum}, nil).Once()

	var order []string
	record := func(args mock.Arguments) {
		order = append(order, args.Get(1).(models.SchemaObject).Name)
	}
	dropper.On("Drop", mock.Anything, mock.Anything).Run(record).Return(nil).Times(4)

	obs := newRecordingObserver()
	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), trm, catalog, dropper)

	// requested in an arbitrary order; execution must not follow it
	kinds := []models.ObjectKind{models.KindEnums, models.KindTables, models.KindFunctions, models.KindPolicies}
	plan, result, err := svc.Run(ctx, kinds, cleaner.RunOptions{
		Confirm:  confirmWith(cleaner.ConfirmationPhrase, nil),
		Observer: obs,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, plan.Total())
	assert.Equal(t, []string{"read_all", "users", "get_user_stats", "user_type"}, order)
	assert.Equal(t, []models.ObjectKind{models.KindPolicies, models.KindTables, models.KindFunctions, models.KindEnums}, obs.started)
	assert.Same(t, plan, obs.planned)
	assert.Equal(t, 4, trm.Calls)
	assert.Equal(t, 4, result.TotalDeleted())
	assert.Zero(t, result.TotalFailed())
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, result.RunID, obs.runID)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))
}

func TestCleanerService_Run_FailureDoesNotStopTheBatch(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)

	idxA := models.SchemaObject{Kind: models.KindIndexes, Schema: "public", Name: "users_email_key", Table: "users"}
	idxB := models.SchemaObject{Kind: models.KindIndexes, Schema: "public", Name: "idx_repos_stars", Table: "user_repositories"}
	tbl := models.SchemaObject{Kind: models.KindTables, Schema: "public", Name: "users"}

	catalog.On("Discover", ctx, models.KindIndexes).Return([]models.SchemaObject{idxA, idxB}, nil).Once()
	catalog.On("Discover", ctx, models.KindTables).Return([]models.SchemaObject{tbl}, nil).Once()

	pgErr := &pq.Error{Code: "2BP01", Message: "cannot drop index users_email_key because constraint users_email_key on table users requires it"}
	dropper.On("Drop", mock.Anything, idxA).Return(pgErr).Once()
	dropper.On("Drop", mock.Anything, idxB).Return(nil).Once()
	dropper.On("Drop", mock.Anything, tbl).Return(nil).Once()

	obs := newRecordingObserver()
	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), &mocks.PassThroughManager{}, catalog, dropper)
	_, result, err := svc.Run(ctx, []models.ObjectKind{models.KindTables, models.KindIndexes}, cleaner.RunOptions{
		SkipConfirm: true,
		Observer:    obs,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalDeleted())
	assert.Equal(t, 1, result.TotalFailed())

	failed := result.ByKind[models.KindIndexes].Failed
	require.Len(t, failed, 1)
	assert.Equal(t, "users_email_key", failed[0].Object.Name)
	assert.NotEmpty(t, failed[0].Err)
	assert.Contains(t, failed[0].Err, "requires it")
	assert.Equal(t, failed[0].Err, obs.failures["users_email_key"])
	assert.Equal(t, []string{"idx_repos_stars", "users"}, obs.dropped)
}

func TestCleanerService_Run_SkipConfirmDoesNotAsk(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dropper := mocks.NewObjectDropper(t)

	seq := models.SchemaObject{Kind: models.KindSequences, Schema: "public", Name: "s"}
	catalog.On("Discover", ctx, models.KindSequences).Return([]models.SchemaObject{seq}, nil).Once()
	dropper.On("Drop", mock.Anything, seq).Return(nil).Once()

	asked := false
	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), &mocks.PassThroughManager{}, catalog, dropper)
	_, result, err := svc.Run(ctx, []models.ObjectKind{models.KindSequences}, cleaner.RunOptions{
		SkipConfirm: true,
		Confirm:     confirmWith("no", &asked),
	})

	require.NoError(t, err)
	assert.False(t, asked)
	assert.Equal(t, 1, result.TotalDeleted())
}

func TestCleanerService_Discover_ExcludesSystemObjects(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	catalog.On("Discover", ctx, models.KindFunctions).Return([]models.SchemaObject{
		{Kind: models.KindFunctions, Schema: "public", Name: "auth.uid"},
		{Kind: models.KindFunctions, Schema: "public", Name: "vault.create_secret"},
		{Kind: models.KindFunctions, Schema: "public", Name: "vaultage_total"},
		{Kind: models.KindFunctions, Schema: "public", Name: "get_user_stats"},
	}, nil).Once()

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), &mocks.PassThroughManager{}, catalog, mocks.NewObjectDropper(t))
	plan, err := svc.Discover(ctx, []models.ObjectKind{models.KindFunctions})

	require.NoError(t, err)
	names := []string{}
	for _, o := range plan.Objects[models.KindFunctions] {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"vaultage_total", "get_user_stats"}, names)
}

func TestCleanerService_Run_DiscoveryError(t *testing.T) {
	ctx := context.Background()

	catalog := mocks.NewCatalogProvider(t)
	dbErr := errors.New("connection reset by peer")
	catalog.On("Discover", ctx, models.KindPolicies).Return(nil, dbErr).Once()

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), &mocks.PassThroughManager{}, catalog, mocks.NewObjectDropper(t))
	plan, result, err := svc.Run(ctx, []models.ObjectKind{models.KindPolicies, models.KindTables}, cleaner.RunOptions{SkipConfirm: true})

	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, plan)
	assert.Nil(t, result)
}

func TestCleanerService_Execute_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	dropper := mocks.NewObjectDropper(t)
	first := models.SchemaObject{Kind: models.KindTables, Schema: "public", Name: "a"}
	second := models.SchemaObject{Kind: models.KindTables, Schema: "public", Name: "b"}

	dropper.On("Drop", mock.Anything, first).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()

	plan := cleaner.NewPlan([]models.ObjectKind{models.KindTables})
	plan.Objects[models.KindTables] = []models.SchemaObject{first, second}

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), &mocks.PassThroughManager{}, mocks.NewCatalogProvider(t), dropper)
	result, err := svc.Execute(ctx, plan, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.TotalDeleted())
	assert.Zero(t, result.TotalFailed())
}

func TestCleanerService_Execute_UsesOneTransactionPerObject(t *testing.T) {
	ctx := context.Background()

	dropper := mocks.NewObjectDropper(t)
	objs := []models.SchemaObject{
		{Kind: models.KindViews, Schema: "public", Name: "v1"},
		{Kind: models.KindViews, Schema: "public", Name: "v2"},
	}
	dropper.On("Drop", mock.Anything, mock.Anything).Return(nil).Twice()

	trm := mocks.NewMockManager(t)
	trm.On("Do", ctx, mock.AnythingOfType("func(context.Context) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			assert.NoError(t, fn(ctx))
		}).
		Return(nil).
		Twice()

	plan := cleaner.NewPlan([]models.ObjectKind{models.KindViews})
	plan.Objects[models.KindViews] = objs

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), trm, mocks.NewCatalogProvider(t), dropper)
	result, err := svc.Execute(ctx, plan, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalDeleted())
}

func TestCleanerService_Execute_CommitFailureIsRecorded(t *testing.T) {
	ctx := context.Background()

	dropper := mocks.NewObjectDropper(t)
	obj := models.SchemaObject{Kind: models.KindEnums, Schema: "public", Name: "user_type"}
	dropper.On("Drop", mock.Anything, obj).Return(nil).Once()

	commitErr := errors.New("commit: connection lost")
	trm := mocks.NewMockManager(t)
	trm.On("Do", ctx, mock.AnythingOfType("func(context.Context) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(context.Context) error)
			assert.NoError(t, fn(ctx))
		}).
		Return(commitErr).
		Once()

	plan := cleaner.NewPlan([]models.ObjectKind{models.KindEnums})
	plan.Objects[models.KindEnums] = []models.SchemaObject{obj}

	svc := cleaner.NewCleanerService(sl.NewDiscardLogger(), trm, mocks.NewCatalogProvider(t), dropper)
	result, err := svc.Execute(ctx, plan, nil)

	require.NoError(t, err)
	require.Len(t, result.ByKind[models.KindEnums].Failed, 1)
	assert.Equal(t, "commit: connection lost", result.ByKind[models.KindEnums].Failed[0].Err)
}
