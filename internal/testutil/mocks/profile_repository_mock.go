package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adaptly/practicekit/internal/models"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, learnerID int64) (*models.LearnerProfile, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerProfile), args.Error(1)
}

func (m *MockProfileRepository) Merge(ctx context.Context, submissionID string, p models.LearnerProfile) error {
	args := m.Called(ctx, submissionID, p)
	return args.Error(0)
}
