// Package notify defines the outbound notification contract. The engine
// calls it fire-and-forget after score changes and resolutions; delivery
// guarantees are the implementation's problem.
package notify

import (
	"log"

	"campusverify/models"
)

// Notifier receives engine events.
type Notifier interface {
	ScoreChanged(claimID string, newScore int)
	ClaimResolved(claimID string, outcome models.Outcome)
}

// LogNotifier writes events to the standard logger.
type LogNotifier struct{}

func (LogNotifier) ScoreChanged(claimID string, newScore int) {
	log.Printf("claim %s: trust score now %d", claimID, newScore)
}

func (LogNotifier) ClaimResolved(claimID string, outcome models.Outcome) {
	log.Printf("claim %s: resolved %s", claimID, outcome)
}

// Discard drops all events. Useful in tests.
type Discard struct{}

func (Discard) ScoreChanged(string, int)             {}
func (Discard) ClaimResolved(string, models.Outcome) {}
