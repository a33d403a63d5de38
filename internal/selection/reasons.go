package selection

import (
	"fmt"
	"sort"

	"github.com/adaptly/practicekit/internal/models"
)

// Reason priorities. They only order reasons within one exercise's list; the
// score alone ranks exercises against each other.
const (
	priorityRetryFailed     = 90
	priorityDueForReview    = 85
	priorityWeakPoint       = 80
	priorityStruggling      = 75
	priorityChallenge       = 60
	priorityNewTopic        = 55
	priorityReinforce       = 50
	priorityDifficultyMatch = 40
)

func retryFailedReason() models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonRetryFailed,
		Label:       "Try again",
		Description: "You missed this one last time",
		Priority:    priorityRetryFailed,
	}
}

func dueForReviewReason(overdueDays int) models.SelectionReason {
	desc := "Scheduled for review today"
	if overdueDays > 0 {
		desc = fmt.Sprintf("Review overdue by %d day(s)", overdueDays)
	}
	return models.SelectionReason{
		Kind:        models.ReasonDueForReview,
		Label:       "Due for review",
		Description: desc,
		Priority:    priorityDueForReview,
	}
}

func weakPointReason() models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonWeakPoint,
		Label:       "Weak point",
		Description: "This topic needs the most work",
		Priority:    priorityWeakPoint,
	}
}

func strugglingReason() models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonStruggling,
		Label:       "Tricky for you",
		Description: "This exercise has been hard to retain",
		Priority:    priorityStruggling,
	}
}

func challengeReason() models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonChallenge,
		Label:       "Challenge",
		Description: "You know this topic well, keep it sharp",
		Priority:    priorityChallenge,
	}
}

func newTopicReason() models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonNewTopic,
		Label:       "New topic",
		Description: "You have not practiced this topic yet",
		Priority:    priorityNewTopic,
	}
}

func reinforceReason() models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonReinforce,
		Label:       "Reinforce",
		Description: "Keep building on what you have learned",
		Priority:    priorityReinforce,
	}
}

func difficultyMatchReason(difficulty int) models.SelectionReason {
	return models.SelectionReason{
		Kind:        models.ReasonDifficultyMatch,
		Label:       "Right level",
		Description: fmt.Sprintf("Difficulty %d matches where you are now", difficulty),
		Priority:    priorityDifficultyMatch,
	}
}

func sortReasons(reasons []models.SelectionReason) {
	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].Priority > reasons[j].Priority
	})
}
