package selection

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/adaptly/practicekit/internal/difficulty"
	"github.com/adaptly/practicekit/internal/errors"
	"github.com/adaptly/practicekit/internal/logger"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
)

// topTierFactor widens the shuffle pool so near-ties do not always come back
// in the same order, without letting weak candidates leak into results.
const topTierFactor = 3

// Selector picks the next batch of exercises for a session.
type Selector struct {
	histories repository.HistoryRepository
	params    ScoreParams
	rng       *rand.Rand
	now       func() time.Time
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand injects the random source used for top-tier shuffling. Tests seed
// it for deterministic output.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// WithScoreParams overrides the scoring tuning.
func WithScoreParams(p ScoreParams) Option {
	return func(s *Selector) { s.params = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// NewSelector creates a Selector reading due-state through histories.
func NewSelector(histories repository.HistoryRepository, opts ...Option) *Selector {
	s := &Selector{
		histories: histories,
		params:    DefaultScoreParams(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns min(k, len(pool)) exercises ranked by score, each annotated
// with its ordered reason list. The pool arrives pre-filtered by the caller;
// an empty pool is a precondition violation, and a failed history read is
// surfaced rather than papered over with a partial batch.
func (s *Selector) Select(ctx context.Context, pool []models.Exercise, k int, sctx models.SessionContext) ([]models.ScoredExercise, error) {
	log := logger.FromContext(ctx).WithPrefix("selector")

	if len(pool) == 0 {
		return nil, errors.NewValidationError("pool", "candidate pool is empty")
	}
	if k <= 0 {
		return nil, errors.NewValidationError("k", "requested count must be positive")
	}

	ids := make([]int64, len(pool))
	for i, ex := range pool {
		ids[i] = ex.ID
	}
	histories, err := s.histories.GetBatch(ctx, sctx.LearnerID, ids)
	if err != nil {
		log.Error("history batch read failed: %v", err)
		return nil, errors.NewStoreReadError(err)
	}

	sctx.TargetDifficulty = difficulty.TargetFor(sctx.Level, sctx.ConsecutiveCorrect, sctx.ConsecutiveIncorrect)
	now := s.now()

	scored := make([]models.ScoredExercise, len(pool))
	for i, ex := range pool {
		score, reasons := ScoreCandidate(ex, histories[ex.ID], sctx, now, s.params)
		scored[i] = models.ScoredExercise{Exercise: ex, Score: score, Reasons: reasons}
	}

	// Deterministic order before the shuffle so seeded runs are reproducible.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Exercise.ID < scored[j].Exercise.ID
	})

	tier := topTierFactor * k
	if tier > len(scored) {
		tier = len(scored)
	}
	s.rng.Shuffle(tier, func(i, j int) {
		scored[i], scored[j] = scored[j], scored[i]
	})

	if k > len(scored) {
		k = len(scored)
	}
	log.Debug("selected %d of %d candidates: learner_id=%d, target_difficulty=%d",
		k, len(pool), sctx.LearnerID, sctx.TargetDifficulty)
	return scored[:k], nil
}
