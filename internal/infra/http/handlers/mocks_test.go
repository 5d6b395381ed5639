package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/propline/lead-service/internal/entity"
	"github.com/propline/lead-service/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Assign(ctx context.Context, id, agentID int64) (int64, error) {
	args := m.Called(ctx, id, agentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id int64, current, next entity.LeadStatus) (int64, error) {
	args := m.Called(ctx, id, current, next)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) DeleteInStatus(ctx context.Context, id int64, status entity.LeadStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
