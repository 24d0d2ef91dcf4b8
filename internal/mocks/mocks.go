package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/pkg/auth"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	args := m.Called(ctx, sessionID, c)
	return args.Error(0)
}

func (m *MockCartStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(p auth.Principal) (string, time.Time, error) {
	args := m.Called(p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) RefreshToken(token string) (string, time.Time, error) {
	args := m.Called(token)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
