package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agroapi/internal/model"
	"agroapi/internal/repository"
	repoMocks "agroapi/internal/repository/mocks"
)

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockAuditRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(e *model.AuditLog) bool {
		return e.Username == "ANONYMOUS" && !e.CreatedAt.IsZero()
	})).Return(nil).Once()

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.On("Create", ctx, mock.MatchedBy(func(e *model.AuditLog) bool {
		return e.CreatedAt.Equal(fixed)
	})).Return(errors.New("db fail")).Once()

	svc := NewAuditService(repo)

	assert.NoError(t, svc.Record(ctx, model.AuditLog{Username: "ANONYMOUS", Action: "ACCESS"}))
	assert.EqualError(t, svc.Record(ctx, model.AuditLog{Username: "ana@example.com", CreatedAt: fixed}), "db fail")
	repo.AssertExpectations(t)
}

func TestAuditService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantQuery repository.PageQuery
	}{
		{name: "as given", limit: 20, offset: 40, wantQuery: repository.PageQuery{Limit: 20, Offset: 40}},
		{name: "defaults", limit: 0, offset: -5, wantQuery: repository.PageQuery{Limit: 10, Offset: 0}},
		{name: "capped", limit: 1000, offset: 0, wantQuery: repository.PageQuery{Limit: 100, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.MockAuditRepository)
			repo.On("List", ctx, tt.wantQuery).Return(&repository.PageResult[model.AuditLog]{
				Items: []model.AuditLog{{ID: 1}},
				Total: 1,
			}, nil)

			res, err := NewAuditService(repo).List(ctx, tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, 1, res.Total)
			assert.Len(t, res.Items, 1)
			repo.AssertExpectations(t)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		repo := new(repoMocks.MockAuditRepository)
		repo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := NewAuditService(repo).List(ctx, 10, 0)

		assert.Error(t, err)
	})
}
