package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) HasVoted(ctx context.Context, userID, publicationID int64) (bool, error) {
	args := m.Called(ctx, userID, publicationID)
	return args.Bool(0), args.Error(1)
}
