package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adaptly/practicekit/internal/models"
)

// MockMasteryRepository is a mock implementation of repository.MasteryRepository
type MockMasteryRepository struct {
	mock.Mock
}

func (m *MockMasteryRepository) Get(ctx context.Context, learnerID, skillID int64) (*models.SkillMastery, error) {
	args := m.Called(ctx, learnerID, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkillMastery), args.Error(1)
}

func (m *MockMasteryRepository) ListByLearner(ctx context.Context, learnerID int64) ([]models.SkillMastery, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SkillMastery), args.Error(1)
}

func (m *MockMasteryRepository) Merge(ctx context.Context, submissionID string, sm models.SkillMastery) error {
	args := m.Called(ctx, submissionID, sm)
	return args.Error(0)
}
