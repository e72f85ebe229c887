package mocks

import (
	"github.com/robbyt/go-bindexpr/platform"
	"github.com/robbyt/go-bindexpr/platform/data"
	"github.com/stretchr/testify/mock"
)

// Response is a mock platform.Response.
type Response struct {
	mock.Mock
}

// Type accepts either a data.Types or a sample value to classify.
func (m *Response) Type() data.Types {
	args := m.Called()
	if t, ok := args.Get(0).(data.Types); ok {
		return t
	}
	return data.TypeOf(args.Get(0))
}

func (m *Response) Inspect() string {
	args := m.Called()
	return args.String(0)
}

func (m *Response) Interface() any {
	args := m.Called()
	return args.Get(0)
}

func (m *Response) GetExpressionID() string {
	args := m.Called()
	return args.String(0)
}

func (m *Response) GetExecTime() string {
	args := m.Called()
	return args.String(0)
}

var _ platform.Response = (*Response)(nil)
