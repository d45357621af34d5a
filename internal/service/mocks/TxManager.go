package mocks

import "context"

// TxManager is a passthrough TransactionManager for unit tests: it just runs
// the callback, leaving transactional behaviour to the real backends.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
