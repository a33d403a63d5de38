package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adaptly/practicekit/internal/models"
)

// MockExerciseRepository is a mock implementation of repository.ExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) Count(ctx context.Context, filter models.ExerciseFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockExerciseRepository) Insert(ctx context.Context, ex models.Exercise) (int64, error) {
	args := m.Called(ctx, ex)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExerciseRepository) InsertBatch(ctx context.Context, exercises []models.Exercise) ([]int64, error) {
	args := m.Called(ctx, exercises)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
