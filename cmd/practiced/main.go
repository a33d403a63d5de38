// Command practiced seeds a small exercise bank and runs a practice session
// end to end: candidate selection with reasons, simulated answers, and the
// completion write-back. Useful for eyeballing scheduler and scoring behavior
// against a real database file.
package main

import (
	"context"
	"os"

	"github.com/adaptly/practicekit/internal/config"
	"github.com/adaptly/practicekit/internal/db"
	"github.com/adaptly/practicekit/internal/difficulty"
	"github.com/adaptly/practicekit/internal/logger"
	"github.com/adaptly/practicekit/internal/mastery"
	"github.com/adaptly/practicekit/internal/models"
	"github.com/adaptly/practicekit/internal/repository"
	"github.com/adaptly/practicekit/internal/repository/sqlite"
	"github.com/adaptly/practicekit/internal/rewards"
	"github.com/adaptly/practicekit/internal/selection"
	"github.com/adaptly/practicekit/internal/session"
)

const demoLearnerID = 1

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("practiced starting")
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("daily_xp_cap=%d", cfg.DailyXPCap)
	log.Debug("default_batch_size=%d", cfg.DefaultBatchSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	exercises := sqlite.NewExerciseRepository(database.DB)
	histories := sqlite.NewHistoryRepository(database.DB)
	masteries := sqlite.NewMasteryRepository(database.DB)
	profiles := sqlite.NewProfileRepository(database.DB)

	rewardParams := rewards.DefaultParams()
	rewardParams.DailyCap = cfg.DailyXPCap

	selector := selection.NewSelector(histories)
	completions := session.NewCompletionService(histories, masteries, profiles,
		session.WithRewardParams(rewardParams),
		session.WithMasteryWeights(mastery.DefaultWeights(), cfg.MasteryAttemptFloor),
		session.WithHistoryWriteConcurrency(cfg.HistoryWriteWorkers),
	)

	ctx := logger.NewContext(context.Background(), log)

	if err := seedIfEmpty(ctx, exercises); err != nil {
		log.Error("failed to seed exercises: %v", err)
		os.Exit(1)
	}

	if err := runSession(ctx, cfg, exercises, masteries, profiles, selector, completions); err != nil {
		log.Error("session failed: %v", err)
		os.Exit(1)
	}

	log.Info("practiced done")
}

// seedIfEmpty loads a starter bank on first run so the demo has candidates.
func seedIfEmpty(ctx context.Context, exercises repository.ExerciseRepository) error {
	log := logger.FromContext(ctx)

	count, err := exercises.Count(ctx, models.ExerciseFilter{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("exercise bank already seeded: count=%d", count)
		return nil
	}

	seed := []models.Exercise{
		{SkillID: 1, Subject: "math", Prompt: "7 + 5", Difficulty: 1, ExpectedSeconds: 10},
		{SkillID: 1, Subject: "math", Prompt: "48 - 29", Difficulty: 2, ExpectedSeconds: 20},
		{SkillID: 1, Subject: "math", Prompt: "17 * 6", Difficulty: 3, ExpectedSeconds: 30},
		{SkillID: 2, Subject: "math", Prompt: "3/4 + 1/8", Difficulty: 2, ExpectedSeconds: 40},
		{SkillID: 2, Subject: "math", Prompt: "simplify 18/24", Difficulty: 2, ExpectedSeconds: 30},
		{SkillID: 2, Subject: "math", Prompt: "2/3 of 96", Difficulty: 3, ExpectedSeconds: 45},
		{SkillID: 3, Subject: "math", Prompt: "solve 3x + 5 = 20", Difficulty: 3, ExpectedSeconds: 60},
		{SkillID: 3, Subject: "math", Prompt: "solve x^2 - 9 = 0", Difficulty: 4, ExpectedSeconds: 90},
		{SkillID: 4, Subject: "math", Prompt: "area of a 7x9 rectangle", Difficulty: 2, ExpectedSeconds: 30},
		{SkillID: 4, Subject: "math", Prompt: "circumference of r=5 circle", Difficulty: 3, ExpectedSeconds: 45},
	}
	ids, err := exercises.InsertBatch(ctx, seed)
	if err != nil {
		return err
	}
	log.Info("seeded %d exercises", len(ids))
	return nil
}

// runSession selects a batch for the demo learner, simulates answers
// (alternating one miss per three questions), and completes the session.
func runSession(
	ctx context.Context,
	cfg config.Config,
	exercises repository.ExerciseRepository,
	masteries repository.MasteryRepository,
	profiles repository.ProfileRepository,
	selector *selection.Selector,
	completions *session.CompletionService,
) error {
	log := logger.FromContext(ctx)

	profile, err := profiles.Get(ctx, demoLearnerID)
	if err != nil {
		return err
	}
	level := 1
	if profile != nil {
		level = profile.Level()
	}

	masterySnapshot := make(map[int64]float64)
	known, err := masteries.ListByLearner(ctx, demoLearnerID)
	if err != nil {
		return err
	}
	for _, sm := range known {
		masterySnapshot[sm.SkillID] = sm.MasteryLevel
	}

	sctx := models.SessionContext{
		LearnerID:        demoLearnerID,
		Type:             models.SessionPractice,
		Subject:          "math",
		Level:            level,
		Mastery:          masterySnapshot,
		TargetDifficulty: difficulty.TargetFor(level, 0, 0),
	}

	pool, err := exercises.List(ctx, models.ExerciseFilter{Subject: sctx.Subject})
	if err != nil {
		return err
	}

	batch, err := selector.Select(ctx, pool, cfg.DefaultBatchSize, sctx)
	if err != nil {
		return err
	}

	log.Info("selected %d exercises for learner %d (level %d, target difficulty %d)",
		len(batch), sctx.LearnerID, sctx.Level, sctx.TargetDifficulty)
	for i, se := range batch {
		reason := "no particular reason"
		if top := se.TopReason(); top != nil {
			reason = top.Label + ": " + top.Description
		}
		log.Info("  %2d. [d%d] %-30s score=%6.1f  %s",
			i+1, se.Exercise.Difficulty, se.Exercise.Prompt, se.Score, reason)
	}

	// Simulate the learner: every third answer is wrong, the rest land at
	// roughly half the expected time.
	completion := session.Completion{
		LearnerID: demoLearnerID,
		Exercises: make(map[int64]models.Exercise, len(batch)),
	}
	var totalSeconds float64
	for i, se := range batch {
		correct := (i+1)%3 != 0
		spent := se.Exercise.ExpectedSeconds * 0.6
		if !correct {
			spent = se.Exercise.ExpectedSeconds * 1.4
		}
		completion.Results = append(completion.Results, models.AnswerResult{
			ExerciseID:       se.Exercise.ID,
			Correct:          correct,
			TimeSpentSeconds: spent,
		})
		completion.Exercises[se.Exercise.ID] = se.Exercise
		totalSeconds += spent
	}
	completion.SessionSeconds = totalSeconds

	summary, err := completions.Complete(ctx, completion)
	if err != nil {
		return err
	}

	log.Info("session complete: submission_id=%s", summary.SubmissionID)
	log.Info("  answered=%d correct=%d perfect=%t xp=%d streak=%d (longest %d)",
		summary.QuestionsAnswered, summary.CorrectAnswers, summary.PerfectSession,
		summary.XPEarned, summary.CurrentStreak, summary.LongestStreak)
	for skillID, levelPct := range summary.MasteryBySkill {
		log.Info("  skill %d mastery now %.1f", skillID, levelPct)
	}
	return nil
}
