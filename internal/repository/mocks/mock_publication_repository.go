package mocks

import (
	"context"

	"agroapi/internal/model"
	"agroapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPublicationRepository struct {
	mock.Mock
}

func (m *MockPublicationRepository) Create(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) FindByID(ctx context.Context, id int64) (*model.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) Update(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) SetImagePath(ctx context.Context, id int64, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockPublicationRepository) Top(ctx context.Context, n int) ([]model.Publication, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) ListByAuthorEmail(ctx context.Context, email string) ([]model.Publication, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) ListPending(ctx context.Context) ([]model.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationRepository) ListSorted(ctx context.Context, c repository.Criterion, pq repository.PageQuery) ([]model.Publication, error) {
	args := m.Called(ctx, c, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, repository.Criterion, repository.PageQuery) []model.Publication); ok {
		return f(ctx, c, pq), args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}
