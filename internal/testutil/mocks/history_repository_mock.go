package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adaptly/practicekit/internal/models"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Get(ctx context.Context, learnerID, exerciseID int64) (*models.ExerciseHistory, error) {
	args := m.Called(ctx, learnerID, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExerciseHistory), args.Error(1)
}

func (m *MockHistoryRepository) GetBatch(ctx context.Context, learnerID int64, exerciseIDs []int64) (map[int64]*models.ExerciseHistory, error) {
	args := m.Called(ctx, learnerID, exerciseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*models.ExerciseHistory), args.Error(1)
}

func (m *MockHistoryRepository) Merge(ctx context.Context, submissionID string, h models.ExerciseHistory) error {
	args := m.Called(ctx, submissionID, h)
	return args.Error(0)
}
