package repo

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	undefinedTableCode   = "42P01"
	dependentObjectsCode = "2BP01"
)

var (
	ErrRelationMissing  = errors.New("relation does not exist")
	ErrDependentObjects = errors.New("other objects depend on it")
)

// classify tags well-known server errors with a sentinel while keeping the original in the chain.
func classify(err error) error {
	pgErr := &pq.Error{}
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case undefinedTableCode:
		return fmt.Errorf("%w: %w", ErrRelationMissing, err)
	case dependentObjectsCode:
		return fmt.Errorf("%w: %w", ErrDependentObjects, err)
	}
	return err
}
