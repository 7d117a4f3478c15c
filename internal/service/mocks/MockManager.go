package mocks

import (
	context "context"
	testing "testing"

	mock "github.com/stretchr/testify/mock"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Do(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// NewMockManager registers AssertExpectations on cleanup.
func NewMockManager(t *testing.T) *MockManager {
	m := &MockManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PassThroughManager runs fn directly and returns its error, the way a real
// manager reports a rolled back transaction. Calls counts the transactions opened.
type PassThroughManager struct {
	Calls int
}

func (m *PassThroughManager) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
