package mocks

import (
	"context"

	"opnsense-manager/core/opnsense"

	"github.com/stretchr/testify/mock"
)

// Session is a mock implementation of reconcile.Session
type Session struct {
	mock.Mock
}

func (m *Session) Get(ctx context.Context, call opnsense.Call) (*opnsense.Response, error) {
	args := m.Called(ctx, call)
	if resp, ok := args.Get(0).(*opnsense.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Session) Add(ctx context.Context, call opnsense.Call) (*opnsense.Response, error) {
	args := m.Called(ctx, call)
	if resp, ok := args.Get(0).(*opnsense.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Session) Set(ctx context.Context, call opnsense.Call) (*opnsense.Response, error) {
	args := m.Called(ctx, call)
	if resp, ok := args.Get(0).(*opnsense.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Session) Delete(ctx context.Context, call opnsense.Call) (*opnsense.Response, error) {
	args := m.Called(ctx, call)
	if resp, ok := args.Get(0).(*opnsense.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

// JSON builds a 200 response with the given body.
func JSON(body string) *opnsense.Response {
	return &opnsense.Response{StatusCode: 200, Body: []byte(body)}
}
