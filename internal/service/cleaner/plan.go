package cleaner

import (
	"slices"
	"strings"
	"time"

	"repo-stats-admin/internal/models"
)

// Plan holds what discovery found, per selected kind.
type Plan struct {
	Kinds   []models.ObjectKind
	Objects map[models.ObjectKind][]models.SchemaObject
}

func NewPlan(kinds []models.ObjectKind) *Plan {
	return &Plan{
		Kinds:   kinds,
		Objects: make(map[models.ObjectKind][]models.SchemaObject, len(kinds)),
	}
}

func (p *Plan) Has(kind models.ObjectKind) bool {
	return slices.Contains(p.Kinds, kind)
}

func (p *Plan) Total() int {
	total := 0
	for _, objs := range p.Objects {
		total += len(objs)
	}
	return total
}

// Ordered returns the selected kinds in drop order.
func (p *Plan) Ordered() []models.ObjectKind {
	var kinds []models.ObjectKind
	for _, k := range models.DropOrder {
		if p.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// UserObjects drops everything the platform owns, and primary-key indexes.
func UserObjects(kind models.ObjectKind, objs []models.SchemaObject) []models.SchemaObject {
	kept := make([]models.SchemaObject, 0, len(objs))
	for _, o := range objs {
		if o.IsSystemObject() {
			continue
		}
		if kind == models.KindIndexes && strings.HasSuffix(o.Name, "_pkey") {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

type Failure struct {
	Object models.SchemaObject
	Err    string
}

type KindResult struct {
	Deleted []models.SchemaObject
	Failed  []Failure
}

type Result struct {
	RunID      string
	Kinds      []models.ObjectKind
	ByKind     map[models.ObjectKind]*KindResult
	StartedAt  time.Time
	FinishedAt time.Time
}

func newResult(runID string, kinds []models.ObjectKind, startedAt time.Time) *Result {
	r := &Result{
		RunID:     runID,
		Kinds:     kinds,
		ByKind:    make(map[models.ObjectKind]*KindResult, len(kinds)),
		StartedAt: startedAt,
	}
	for _, k := range kinds {
		r.ByKind[k] = &KindResult{}
	}
	return r
}

func (r *Result) TotalDeleted() int {
	n := 0
	for _, kr := range r.ByKind {
		n += len(kr.Deleted)
	}
	return n
}

func (r *Result) TotalFailed() int {
	n := 0
	for _, kr := range r.ByKind {
		n += len(kr.Failed)
	}
	return n
}
