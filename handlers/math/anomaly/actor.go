package anomaly

import (
	"fmt"
	"math"
	"time"

	"campusverify/models"
)

// Actor-level detection thresholds
const (
	minActionsToAnalyze = 5
	activeHoursLimit    = 20 // humans show rest periods
	diversityMinActions = 10
)

// AnalyzeActorBehavior inspects an actor's capped action log for automated
// behavior. Fewer than five entries is too little signal; the verdict is
// empty.
func (d *Detector) AnalyzeActorBehavior(log *models.ActionLog) ActorVerdict {
	if log == nil || log.Len() < minActionsToAnalyze {
		return ActorVerdict{Recommendation: RecommendNone}
	}
	events := log.Events()

	var flags []Flag

	times := make([]time.Time, len(events))
	for i, ev := range events {
		times[i] = ev.OccurredAt
	}

	if ivs := intervals(times); len(ivs) >= 2 {
		if cv, mean := coefficientOfVariation(ivs); mean > 0 && cv < regularityMinCV {
			flags = append(flags, Flag{
				Type:     FlagRegularTiming,
				Severity: SeveritySevere,
				Score:    scoreRegularTiming,
				Detail:   fmt.Sprintf("action interval cv %.3f", cv),
			})
		}
	}

	if hours := activeHours(times); hours > activeHoursLimit {
		flags = append(flags, Flag{
			Type:     FlagRoundTheClock,
			Severity: SeverityModerate,
			Score:    scoreRoundTheClock,
			Detail:   fmt.Sprintf("active in %d of 24 hours", hours),
		})
	}

	if len(events) > diversityMinActions && singleActionType(events) {
		flags = append(flags, Flag{
			Type:     FlagSingleActionType,
			Severity: SeverityModerate,
			Score:    scoreSingleActionType,
			Detail:   fmt.Sprintf("%d actions, all %s", len(events), events[0].Action),
		})
	}

	score := 0.0
	for _, f := range flags {
		score += f.Score
	}
	score = math.Min(score, 1.0)

	return ActorVerdict{
		BotScore:       score,
		Flags:          flags,
		IsBot:          score > BlockThreshold,
		Recommendation: RecommendationFor(score),
	}
}

// activeHours counts the distinct hours of day in which any action occurred.
func activeHours(times []time.Time) int {
	var seen [24]bool
	for _, t := range times {
		seen[t.UTC().Hour()] = true
	}
	count := 0
	for _, s := range seen {
		if s {
			count++
		}
	}
	return count
}

// singleActionType reports whether every event shares one action type.
func singleActionType(events []models.ActivityEvent) bool {
	first := events[0].Action
	for _, ev := range events[1:] {
		if ev.Action != first {
			return false
		}
	}
	return true
}
