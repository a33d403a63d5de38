package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/adaptly/practicekit/internal/logger"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
)

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository implementation
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

const historyColumns = `learner_id, exercise_id, times_seen, times_correct, last_result, ease_factor, interval_days, next_review_at, updated_at`

func scanHistory(scan func(...any) error) (*models.ExerciseHistory, error) {
	var h models.ExerciseHistory
	var lastResult sql.NullBool
	var nextReview sql.NullTime
	err := scan(&h.LearnerID, &h.ExerciseID, &h.TimesSeen, &h.TimesCorrect,
		&lastResult, &h.EaseFactor, &h.IntervalDays, &nextReview, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastResult.Valid {
		v := lastResult.Bool
		h.LastResult = &v
	}
	if nextReview.Valid {
		t := nextReview.Time
		h.NextReviewAt = &t
	}
	return &h, nil
}

func (r *historyRepository) Get(ctx context.Context, learnerID, exerciseID int64) (*models.ExerciseHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+historyColumns+`
FROM exercise_history
WHERE learner_id = ? AND exercise_id = ?
`, learnerID, exerciseID)
	h, err := scanHistory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get history: %v", err)
		return nil, err
	}
	return h, nil
}

func (r *historyRepository) GetBatch(ctx context.Context, learnerID int64, exerciseIDs []int64) (map[int64]*models.ExerciseHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("batch fetching history: learner_id=%d, exercises=%d", learnerID, len(exerciseIDs))

	result := make(map[int64]*models.ExerciseHistory, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(exerciseIDs)), ",")
	args := make([]any, 0, len(exerciseIDs)+1)
	args = append(args, learnerID)
	for _, id := range exerciseIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+historyColumns+`
FROM exercise_history
WHERE learner_id = ? AND exercise_id IN (`+placeholders+`)
`, args...)
	if err != nil {
		log.Error("failed to query history batch: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanHistory(rows.Scan)
		if err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		result[h.ExerciseID] = h
	}
	log.Debug("found %d of %d history records", len(result), len(exerciseIDs))
	return result, rows.Err()
}

func (r *historyRepository) Merge(ctx context.Context, submissionID string, h models.ExerciseHistory) error {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	key := fmt.Sprintf("%d:%d", h.LearnerID, h.ExerciseID)
	claimed, err := claimSubmission(ctx, tx, submissionID, categoryHistory, key)
	if err != nil {
		log.Error("failed to claim history write: %v", err)
		return err
	}
	if !claimed {
		log.Debug("history merge already applied: submission_id=%s, key=%s", submissionID, key)
		return nil
	}

	var lastResult sql.NullBool
	if h.LastResult != nil {
		lastResult = sql.NullBool{Bool: *h.LastResult, Valid: true}
	}
	var nextReview sql.NullTime
	if h.NextReviewAt != nil {
		nextReview = sql.NullTime{Time: *h.NextReviewAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO exercise_history (`+historyColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(learner_id, exercise_id) DO UPDATE SET
    times_seen = excluded.times_seen,
    times_correct = excluded.times_correct,
    last_result = excluded.last_result,
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    next_review_at = excluded.next_review_at,
    updated_at = excluded.updated_at
`, h.LearnerID, h.ExerciseID, h.TimesSeen, h.TimesCorrect, lastResult, h.EaseFactor, h.IntervalDays, nextReview, h.UpdatedAt)
	if err != nil {
		log.Error("failed to merge history: %v", err)
		return err
	}
	return tx.Commit()
}
