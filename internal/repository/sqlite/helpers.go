package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"

	"github.com/adaptly/practicekit/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Write-log categories, one per merge-write kind.
const (
	categoryHistory = "history"
	categoryMastery = "mastery"
	categoryProfile = "profile"
)

// claimSubmission records (submission, category, key) in the write log and
// reports whether this call won the claim. A lost claim means the same
// merge-write already ran for this submission, so the caller must no-op:
// this is what keeps retried session completions from double-counting.
func claimSubmission(ctx context.Context, tx *sql.Tx, submissionID, category, entityKey string) (bool, error) {
	res, err := tx.ExecContext(ctx, `
INSERT INTO write_log (submission_id, category, entity_key)
VALUES (?, ?, ?)
ON CONFLICT DO NOTHING
`, submissionID, category, entityKey)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func marshalStats(stats map[int]models.DifficultyStat) (string, error) {
	if stats == nil {
		stats = map[int]models.DifficultyStat{}
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalStats(raw string) (map[int]models.DifficultyStat, error) {
	stats := make(map[int]models.DifficultyStat)
	if raw == "" {
		return stats, nil
	}
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func marshalOutcomes(outcomes []bool) (string, error) {
	if outcomes == nil {
		outcomes = []bool{}
	}
	b, err := json.Marshal(outcomes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalOutcomes(raw string) ([]bool, error) {
	if raw == "" {
		return nil, nil
	}
	var outcomes []bool
	if err := json.Unmarshal([]byte(raw), &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}
