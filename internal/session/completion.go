// Package session drives the store updates that follow a finished practice
// session: one scheduling update per answered exercise, one mastery fold per
// touched taxonomy node, and one profile update carrying XP and streaks.
package session

import (
	"context"
	stderrors "errors"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/adaptly/practicekit/internal/errors"
	"github.com/adaptly/practicekit/internal/logger"
	"github.com/adaptly/practicekit/internal/mastery"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
	"github.com/adaptly/practicekit/internal/rewards"
	"github.com/adaptly/practicekit/internal/srs"
)

// defaultHistoryWriteConcurrency bounds parallel per-exercise merge-writes
// unless overridden via WithHistoryWriteConcurrency.
const defaultHistoryWriteConcurrency = 4

// Completion is the input for one finished session. SubmissionID
// deduplicates retries; when empty a fresh one is generated, so a caller that
// wants retry safety must keep and resend the returned Summary.SubmissionID.
type Completion struct {
	SubmissionID   string
	LearnerID      int64
	Results        []models.AnswerResult
	Exercises      map[int64]models.Exercise // metadata for every answered exercise
	SessionSeconds float64
}

// Summary reports what the completed session changed.
type Summary struct {
	SubmissionID      string
	XPEarned          int
	QuestionsAnswered int
	CorrectAnswers    int
	PerfectSession    bool
	MasteryBySkill    map[int64]float64
	CurrentStreak     int
	LongestStreak     int
}

// CompletionService orchestrates the three write categories. The categories
// have no data dependency on each other and are issued concurrently; a
// failure in one never blocks or hides the others.
type CompletionService struct {
	histories          repository.HistoryRepository
	masteries          repository.MasteryRepository
	profiles           repository.ProfileRepository
	srsParams          srs.Params
	rewardParams       rewards.Params
	weights            mastery.Weights
	attemptFloor       int
	historyConcurrency int
	now                func() time.Time
}

// Option configures a CompletionService.
type Option func(*CompletionService)

// WithSRSParams overrides the scheduler tuning.
func WithSRSParams(p srs.Params) Option {
	return func(s *CompletionService) { s.srsParams = p }
}

// WithRewardParams overrides the XP tuning.
func WithRewardParams(p rewards.Params) Option {
	return func(s *CompletionService) { s.rewardParams = p }
}

// WithMasteryWeights overrides the mastery blend.
func WithMasteryWeights(w mastery.Weights, attemptFloor int) Option {
	return func(s *CompletionService) {
		s.weights = w
		s.attemptFloor = attemptFloor
	}
}

// WithHistoryWriteConcurrency bounds how many per-exercise history merges run
// in parallel. Values below 1 keep the default.
func WithHistoryWriteConcurrency(n int) Option {
	return func(s *CompletionService) {
		if n >= 1 {
			s.historyConcurrency = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *CompletionService) { s.now = now }
}

// NewCompletionService wires the three repositories.
func NewCompletionService(
	histories repository.HistoryRepository,
	masteries repository.MasteryRepository,
	profiles repository.ProfileRepository,
	opts ...Option,
) *CompletionService {
	s := &CompletionService{
		histories:          histories,
		masteries:          masteries,
		profiles:           profiles,
		srsParams:          srs.DefaultParams(),
		rewardParams:       rewards.DefaultParams(),
		weights:            mastery.DefaultWeights(),
		attemptFloor:       mastery.DefaultAttemptFloor,
		historyConcurrency: defaultHistoryWriteConcurrency,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Complete applies one finished session to the store. All computation happens
// up front on the values read back; only then are the three write categories
// issued. The returned error joins one category-coded error per failed
// category, so the caller can retry just what failed.
func (s *CompletionService) Complete(ctx context.Context, c Completion) (*Summary, error) {
	log := logger.FromContext(ctx).WithPrefix("completion")

	if len(c.Results) == 0 {
		return nil, errors.NewValidationError("results", "session has no answered exercises")
	}
	for _, r := range c.Results {
		if _, ok := c.Exercises[r.ExerciseID]; !ok {
			return nil, errors.NewValidationError("exercises", "missing metadata for exercise in results")
		}
	}
	if c.SubmissionID == "" {
		c.SubmissionID = uuid.NewString()
	}

	now := s.now()

	// Read phase.
	ids := make([]int64, 0, len(c.Results))
	seen := make(map[int64]bool)
	for _, r := range c.Results {
		if !seen[r.ExerciseID] {
			ids = append(ids, r.ExerciseID)
			seen[r.ExerciseID] = true
		}
	}
	histories, err := s.histories.GetBatch(ctx, c.LearnerID, ids)
	if err != nil {
		return nil, errors.NewStoreReadError(err)
	}
	profile, err := s.profiles.Get(ctx, c.LearnerID)
	if err != nil {
		return nil, errors.NewStoreReadError(err)
	}
	masteries := make(map[int64]*models.SkillMastery)
	for _, r := range c.Results {
		skillID := c.Exercises[r.ExerciseID].SkillID
		if _, ok := masteries[skillID]; ok {
			continue
		}
		sm, err := s.masteries.Get(ctx, c.LearnerID, skillID)
		if err != nil {
			return nil, errors.NewStoreReadError(err)
		}
		masteries[skillID] = sm
	}

	// Compute phase: pure, no suspension.
	updatedHistories := s.applySchedules(c, histories, now)
	updatedMasteries := s.foldMasteries(c, masteries, now)
	updatedProfile, xp := s.applyProfile(c, profile, now)

	// Write phase: the three categories are independent and run concurrently.
	// Each failure is recorded under its own category code and none of them
	// cancels the others.
	var histErr, mastErr, profErr error
	var wg errgroup.Group
	wg.Go(func() error {
		histErr = s.writeHistories(ctx, c.SubmissionID, updatedHistories)
		return nil
	})
	wg.Go(func() error {
		mastErr = s.writeMasteries(ctx, c.SubmissionID, updatedMasteries)
		return nil
	})
	wg.Go(func() error {
		if err := s.profiles.Merge(ctx, c.SubmissionID, *updatedProfile); err != nil {
			profErr = errors.NewWriteError(errors.CodeWriteProfile, err)
		}
		return nil
	})
	_ = wg.Wait()

	if err := stderrors.Join(histErr, mastErr, profErr); err != nil {
		log.Error("session completion writes failed: submission_id=%s, err=%v", c.SubmissionID, err)
		return nil, err
	}

	summary := &Summary{
		SubmissionID:      c.SubmissionID,
		XPEarned:          xp,
		QuestionsAnswered: len(c.Results),
		CorrectAnswers:    countCorrect(c.Results),
		PerfectSession:    countCorrect(c.Results) == len(c.Results),
		MasteryBySkill:    make(map[int64]float64, len(updatedMasteries)),
		CurrentStreak:     updatedProfile.CurrentStreak,
		LongestStreak:     updatedProfile.LongestStreak,
	}
	for _, sm := range updatedMasteries {
		summary.MasteryBySkill[sm.SkillID] = sm.MasteryLevel
	}
	log.Info("session completed: learner_id=%d, answered=%d, xp=%d",
		c.LearnerID, summary.QuestionsAnswered, summary.XPEarned)
	return summary, nil
}

// applySchedules runs the quality estimator and scheduler over every result.
// A repeated exercise within one session reuses the state left by its
// previous answer.
func (s *CompletionService) applySchedules(c Completion, existing map[int64]*models.ExerciseHistory, now time.Time) []*models.ExerciseHistory {
	working := make(map[int64]*models.ExerciseHistory, len(c.Results))
	var order []int64

	for _, r := range c.Results {
		h, ok := working[r.ExerciseID]
		if !ok {
			if prev := existing[r.ExerciseID]; prev != nil {
				cp := *prev
				h = &cp
			} else {
				h = &models.ExerciseHistory{
					LearnerID:    c.LearnerID,
					ExerciseID:   r.ExerciseID,
					EaseFactor:   s.srsParams.DefaultEase,
					IntervalDays: 1,
				}
			}
			working[r.ExerciseID] = h
			order = append(order, r.ExerciseID)
		}

		ex := c.Exercises[r.ExerciseID]
		quality := srs.EstimateQuality(r.Correct, r.TimeSpentSeconds, ex.ExpectedSeconds)
		rev := srs.Schedule(h.EaseFactor, h.IntervalDays, quality, now, s.srsParams)

		correct := r.Correct
		h.TimesSeen++
		if correct {
			h.TimesCorrect++
		}
		h.LastResult = &correct
		h.EaseFactor = rev.EaseFactor
		h.IntervalDays = rev.IntervalDays
		due := rev.DueAt
		h.NextReviewAt = &due
		h.UpdatedAt = now
	}

	out := make([]*models.ExerciseHistory, len(order))
	for i, id := range order {
		out[i] = working[id]
	}
	return out
}

// foldMasteries merges the session's outcomes into each touched taxonomy
// node and re-estimates its mastery level.
func (s *CompletionService) foldMasteries(c Completion, existing map[int64]*models.SkillMastery, now time.Time) []*models.SkillMastery {
	working := make(map[int64]*models.SkillMastery)
	var order []int64

	for _, r := range c.Results {
		ex := c.Exercises[r.ExerciseID]
		sm, ok := working[ex.SkillID]
		if !ok {
			if prev := existing[ex.SkillID]; prev != nil {
				cp := *prev
				cp.DifficultyStats = copyStats(prev.DifficultyStats)
				cp.RecentOutcomes = append([]bool(nil), prev.RecentOutcomes...)
				sm = &cp
			} else {
				sm = &models.SkillMastery{
					LearnerID:       c.LearnerID,
					SkillID:         ex.SkillID,
					DifficultyStats: make(map[int]models.DifficultyStat),
				}
			}
			working[ex.SkillID] = sm
			order = append(order, ex.SkillID)
		}

		sm.QuestionsAttempted++
		st := sm.DifficultyStats[ex.Difficulty]
		st.Attempted++
		if r.Correct {
			sm.QuestionsCorrect++
			st.Correct++
			sm.LastCorrectStreak++
		} else {
			sm.LastCorrectStreak = 0
		}
		sm.DifficultyStats[ex.Difficulty] = st

		sm.RecentOutcomes = append(sm.RecentOutcomes, r.Correct)
		if len(sm.RecentOutcomes) > mastery.RecentWindow {
			sm.RecentOutcomes = sm.RecentOutcomes[len(sm.RecentOutcomes)-mastery.RecentWindow:]
		}
		sm.UpdatedAt = now
	}

	out := make([]*models.SkillMastery, len(order))
	for i, id := range order {
		sm := working[id]
		sm.MasteryLevel = mastery.Estimate(mastery.Input{
			Attempted:    sm.QuestionsAttempted,
			Correct:      sm.QuestionsCorrect,
			Recent:       sm.RecentOutcomes,
			ByDifficulty: sm.DifficultyStats,
		}, s.weights, s.attemptFloor)
		out[i] = sm
	}
	return out
}

// applyProfile computes the single profile update: XP, lifetime counters,
// practice minutes and the calendar-day streak.
func (s *CompletionService) applyProfile(c Completion, existing *models.LearnerProfile, now time.Time) (*models.LearnerProfile, int) {
	p := &models.LearnerProfile{LearnerID: c.LearnerID}
	if existing != nil {
		*p = *existing
	}

	graded := make([]rewards.GradedResult, len(c.Results))
	for i, r := range c.Results {
		ex := c.Exercises[r.ExerciseID]
		graded[i] = rewards.GradedResult{
			Correct:         r.Correct,
			Difficulty:      ex.Difficulty,
			ExpectedSeconds: ex.ExpectedSeconds,
		}
	}
	xp := rewards.Calculate(graded, c.SessionSeconds, s.rewardParams)

	p.TotalXP += xp
	p.TotalQuestionsAttempted += len(c.Results)
	p.TotalCorrectAnswers += countCorrect(c.Results)
	p.TotalPracticeMinutes += int(math.Round(c.SessionSeconds / 60))

	today := dateOf(now)
	switch {
	case p.LastPracticeDate == nil:
		p.CurrentStreak = 1
	case dateOf(*p.LastPracticeDate).Equal(today):
		// Second session today: streak unchanged.
	case dateOf(*p.LastPracticeDate).Equal(today.AddDate(0, 0, -1)):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastPracticeDate = &today
	p.UpdatedAt = now

	return p, xp
}

func (s *CompletionService) writeHistories(ctx context.Context, submissionID string, histories []*models.ExerciseHistory) error {
	var g errgroup.Group
	g.SetLimit(s.historyConcurrency)
	for _, h := range histories {
		h := h
		g.Go(func() error {
			return s.histories.Merge(ctx, submissionID, *h)
		})
	}
	if err := g.Wait(); err != nil {
		return errors.NewWriteError(errors.CodeWriteHistory, err)
	}
	return nil
}

func (s *CompletionService) writeMasteries(ctx context.Context, submissionID string, masteries []*models.SkillMastery) error {
	for _, sm := range masteries {
		if err := s.masteries.Merge(ctx, submissionID, *sm); err != nil {
			return errors.NewWriteError(errors.CodeWriteMastery, err)
		}
	}
	return nil
}

func countCorrect(results []models.AnswerResult) int {
	n := 0
	for _, r := range results {
		if r.Correct {
			n++
		}
	}
	return n
}

func copyStats(stats map[int]models.DifficultyStat) map[int]models.DifficultyStat {
	out := make(map[int]models.DifficultyStat, len(stats))
	for k, v := range stats {
		out[k] = v
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
