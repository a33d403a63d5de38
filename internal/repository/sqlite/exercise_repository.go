package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	apperrors "github.com/adaptly/practicekit/internal/errors"
	"github.com/adaptly/practicekit/internal/logger"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
)

type exerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new ExerciseRepository implementation
func NewExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")

	var ex models.Exercise
	err := r.db.QueryRowContext(ctx, `
SELECT id, skill_id, subject, prompt, difficulty, expected_seconds, created_at
FROM exercises
WHERE id = ?
`, id).Scan(&ex.ID, &ex.SkillID, &ex.Subject, &ex.Prompt, &ex.Difficulty, &ex.ExpectedSeconds, &ex.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("exercise not found: id=%d", id)
			return nil, apperrors.NewNotFoundError("exercise", id)
		}
		log.Error("failed to get exercise: %v", err)
		return nil, err
	}
	return &ex, nil
}

func listQuery(filter models.ExerciseFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select(
		"id", "skill_id", "subject", "prompt", "difficulty", "expected_seconds", "created_at",
	).From("exercises")

	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.SkillID != 0 {
		query = query.Where(squirrel.Eq{"skill_id": filter.SkillID})
	}
	if filter.Difficulty != 0 {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	return query
}

func (r *exerciseRepository) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("listing exercises: subject=%s, skill_id=%d, difficulty=%d",
		filter.Subject, filter.SkillID, filter.Difficulty)

	query := listQuery(filter).OrderBy("id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.SkillID, &ex.Subject, &ex.Prompt, &ex.Difficulty, &ex.ExpectedSeconds, &ex.CreatedAt); err != nil {
			log.Error("failed to scan exercise row: %v", err)
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	log.Debug("found %d exercises", len(exercises))
	return exercises, rows.Err()
}

func (r *exerciseRepository) Count(ctx context.Context, filter models.ExerciseFilter) (int, error) {
	query := sqlBuilder.Select("COUNT(*)").From("exercises")
	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.SkillID != 0 {
		query = query.Where(squirrel.Eq{"skill_id": filter.SkillID})
	}
	if filter.Difficulty != 0 {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *exerciseRepository) Insert(ctx context.Context, ex models.Exercise) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")

	res, err := r.db.ExecContext(ctx, `
INSERT INTO exercises (skill_id, subject, prompt, difficulty, expected_seconds)
VALUES (?, ?, ?, ?, ?)
`, ex.SkillID, ex.Subject, ex.Prompt, ex.Difficulty, ex.ExpectedSeconds)
	if err != nil {
		log.Error("failed to insert exercise: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *exerciseRepository) InsertBatch(ctx context.Context, exercises []models.Exercise) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("batch inserting %d exercises", len(exercises))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(exercises))
	for _, ex := range exercises {
		res, err := tx.ExecContext(ctx, `
INSERT INTO exercises (skill_id, subject, prompt, difficulty, expected_seconds)
VALUES (?, ?, ?, ?, ?)
`, ex.SkillID, ex.Subject, ex.Prompt, ex.Difficulty, ex.ExpectedSeconds)
		if err != nil {
			log.Error("failed to insert exercise in batch: %v", err)
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}
