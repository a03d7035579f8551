package mocks

import (
	"context"
	"io"

	"agroapi/internal/model"
	"agroapi/internal/repository"
	"agroapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockPublicationService struct {
	mock.Mock
}

func (m *MockPublicationService) Save(ctx context.Context, in service.PublicationInput, email string) (*model.Publication, error) {
	args := m.Called(ctx, in, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Update(ctx context.Context, in service.PublicationInput, email string) (*model.Publication, error) {
	args := m.Called(ctx, in, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Get(ctx context.Context, id int64, email string) (*service.PublicationDetail, error) {
	args := m.Called(ctx, id, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicationDetail), args.Error(1)
}

func (m *MockPublicationService) Top(ctx context.Context) ([]model.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationService) ByEmail(ctx context.Context, email string) ([]model.Publication, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationService) Pending(ctx context.Context) ([]model.Publication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Publication), args.Error(1)
}

func (m *MockPublicationService) ListByCriterion(ctx context.Context, c repository.Criterion, page int) (*service.PublicationPage, error) {
	args := m.Called(ctx, c, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicationPage), args.Error(1)
}

func (m *MockPublicationService) UploadImage(ctx context.Context, id int64, email string, r io.Reader, originalFilename, contentType string, size int64) (*model.Publication, error) {
	args := m.Called(ctx, id, email, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) ImageURL(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
