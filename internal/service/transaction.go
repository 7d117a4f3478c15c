package service

import "context"

// TransactionManager runs fn in a transaction carried by the ctx passed to it:
// commit when fn returns nil, rollback otherwise.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
