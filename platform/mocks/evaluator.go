// Package mocks provides testify mocks of the platform interfaces.
package mocks

import (
	"context"

	"github.com/robbyt/go-bindexpr/platform"
	"github.com/stretchr/testify/mock"
)

// Evaluator is a mock platform.Evaluator.
type Evaluator struct {
	mock.Mock
}

func (m *Evaluator) Eval(ctx context.Context) (platform.Response, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(platform.Response)
	return resp, args.Error(1)
}

func (m *Evaluator) AddDataToContext(ctx context.Context, d ...map[string]any) (context.Context, error) {
	args := m.Called(ctx, d)
	newCtx, _ := args.Get(0).(context.Context)
	return newCtx, args.Error(1)
}

var _ platform.Evaluator = (*Evaluator)(nil)
