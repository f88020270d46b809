package engine

import "fmt"

// ValidationError rejects malformed input (stake out of band, short
// content, unknown category). Raised before any deduction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ConflictError rejects duplicate votes and repeated resolution attempts.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

// InsufficientBalanceError rejects a stake the actor cannot cover.
type InsufficientBalanceError struct {
	ActorID string
	Balance int64
	Stake   int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("actor %s balance %d cannot cover stake %d", e.ActorID, e.Balance, e.Stake)
}

// AnomalyBlockedError is a policy refusal, not a system fault: the action
// was declined because behavior analysis classified the actor as
// automated. Zero state changes hands.
type AnomalyBlockedError struct {
	ActorID  string
	BotScore float64
}

func (e *AnomalyBlockedError) Error() string {
	return fmt.Sprintf("actor %s blocked by anomaly policy (bot score %.2f)", e.ActorID, e.BotScore)
}
