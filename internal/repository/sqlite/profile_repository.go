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

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `learner_id, total_xp, total_questions_attempted, total_correct_answers, total_practice_minutes, current_streak, longest_streak, last_practice_date, updated_at`

func (r *profileRepository) Get(ctx context.Context, learnerID int64) (*models.LearnerProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	var p models.LearnerProfile
	var lastPractice sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM learner_profiles
WHERE learner_id = ?
`, learnerID).Scan(&p.LearnerID, &p.TotalXP, &p.TotalQuestionsAttempted, &p.TotalCorrectAnswers,
		&p.TotalPracticeMinutes, &p.CurrentStreak, &p.LongestStreak, &lastPractice, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	if lastPractice.Valid {
		t := lastPractice.Time
		p.LastPracticeDate = &t
	}
	return &p, nil
}

func (r *profileRepository) Merge(ctx context.Context, submissionID string, p models.LearnerProfile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	claimed, err := claimSubmission(ctx, tx, submissionID, categoryProfile, fmt.Sprintf("%d", p.LearnerID))
	if err != nil {
		log.Error("failed to claim profile write: %v", err)
		return err
	}
	if !claimed {
		log.Debug("profile merge already applied: submission_id=%s, learner_id=%d", submissionID, p.LearnerID)
		return nil
	}

	var lastPractice sql.NullTime
	if p.LastPracticeDate != nil {
		lastPractice = sql.NullTime{Time: *p.LastPracticeDate, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO learner_profiles (`+profileColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(learner_id) DO UPDATE SET
    total_xp = excluded.total_xp,
    total_questions_attempted = excluded.total_questions_attempted,
    total_correct_answers = excluded.total_correct_answers,
    total_practice_minutes = excluded.total_practice_minutes,
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_practice_date = excluded.last_practice_date,
    updated_at = excluded.updated_at
`, p.LearnerID, p.TotalXP, p.TotalQuestionsAttempted, p.TotalCorrectAnswers,
		p.TotalPracticeMinutes, p.CurrentStreak, p.LongestStreak, lastPractice, p.UpdatedAt)
	if err != nil {
		log.Error("failed to merge profile: %v", err)
		return err
	}
	return tx.Commit()
}
