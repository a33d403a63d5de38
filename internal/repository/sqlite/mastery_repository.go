package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adaptly/practicekit/internal/logger"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
)

type masteryRepository struct {
	db *sql.DB
}

// NewMasteryRepository creates a new MasteryRepository implementation
func NewMasteryRepository(db *sql.DB) repository.MasteryRepository {
	return &masteryRepository{db: db}
}

const masteryColumns = `learner_id, skill_id, mastery_level, questions_attempted, questions_correct, difficulty_stats, recent_outcomes, last_correct_streak, updated_at`

func scanMastery(scan func(...any) error) (*models.SkillMastery, error) {
	var sm models.SkillMastery
	var stats, outcomes string
	err := scan(&sm.LearnerID, &sm.SkillID, &sm.MasteryLevel, &sm.QuestionsAttempted,
		&sm.QuestionsCorrect, &stats, &outcomes, &sm.LastCorrectStreak, &sm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if sm.DifficultyStats, err = unmarshalStats(stats); err != nil {
		return nil, err
	}
	if sm.RecentOutcomes, err = unmarshalOutcomes(outcomes); err != nil {
		return nil, err
	}
	return &sm, nil
}

func (r *masteryRepository) Get(ctx context.Context, learnerID, skillID int64) (*models.SkillMastery, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+masteryColumns+`
FROM skill_mastery
WHERE learner_id = ? AND skill_id = ?
`, learnerID, skillID)
	sm, err := scanMastery(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get mastery: %v", err)
		return nil, err
	}
	return sm, nil
}

func (r *masteryRepository) ListByLearner(ctx context.Context, learnerID int64) ([]models.SkillMastery, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+masteryColumns+`
FROM skill_mastery
WHERE learner_id = ?
ORDER BY skill_id
`, learnerID)
	if err != nil {
		log.Error("failed to list masteries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var masteries []models.SkillMastery
	for rows.Next() {
		sm, err := scanMastery(rows.Scan)
		if err != nil {
			log.Error("failed to scan mastery row: %v", err)
			return nil, err
		}
		masteries = append(masteries, *sm)
	}
	return masteries, rows.Err()
}

func (r *masteryRepository) Merge(ctx context.Context, submissionID string, sm models.SkillMastery) error {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	key := fmt.Sprintf("%d:%d", sm.LearnerID, sm.SkillID)
	claimed, err := claimSubmission(ctx, tx, submissionID, categoryMastery, key)
	if err != nil {
		log.Error("failed to claim mastery write: %v", err)
		return err
	}
	if !claimed {
		log.Debug("mastery merge already applied: submission_id=%s, key=%s", submissionID, key)
		return nil
	}

	stats, err := marshalStats(sm.DifficultyStats)
	if err != nil {
		return err
	}
	outcomes, err := marshalOutcomes(sm.RecentOutcomes)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO skill_mastery (`+masteryColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(learner_id, skill_id) DO UPDATE SET
    mastery_level = excluded.mastery_level,
    questions_attempted = excluded.questions_attempted,
    questions_correct = excluded.questions_correct,
    difficulty_stats = excluded.difficulty_stats,
    recent_outcomes = excluded.recent_outcomes,
    last_correct_streak = excluded.last_correct_streak,
    updated_at = excluded.updated_at
`, sm.LearnerID, sm.SkillID, sm.MasteryLevel, sm.QuestionsAttempted, sm.QuestionsCorrect,
		stats, outcomes, sm.LastCorrectStreak, sm.UpdatedAt)
	if err != nil {
		log.Error("failed to merge mastery: %v", err)
		return err
	}
	return tx.Commit()
}
