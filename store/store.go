// Package store is the persistence adapter boundary. The engine only sees
// the Store interface; the gorm implementation backs the service, the
// memory implementation backs tests.
package store

import (
	"errors"
	"time"

	"campusverify/models"
)

// ErrNotFound is returned when a claim, actor or vote does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the synchronous persistence contract of the decision core.
type Store interface {
	// Tx runs fn against a transactional view of the store. An error from
	// fn rolls every write back.
	Tx(fn func(Store) error) error

	LoadClaim(claimID string) (*models.Claim, error)
	SaveClaim(claim *models.Claim) error
	ListClaims(limit, offset int) ([]models.Claim, error)
	ListUnresolvedClaims() ([]models.Claim, error)

	LoadActor(actorID string) (*models.Actor, error)
	SaveActor(actor *models.Actor) error
	ListActorsByReputation(limit, offset int) ([]models.Actor, int64, error)

	VotesForClaim(claimID string) ([]models.Vote, error)
	VoteByClaimActor(claimID, actorID string) (*models.Vote, error)
	AppendVote(vote *models.Vote) error
	SaveVote(vote *models.Vote) error

	EvidenceForClaim(claimID string) ([]models.Evidence, error)
	AppendEvidence(ev *models.Evidence) error

	// AppendActivity records an action event and evicts entries beyond the
	// per-actor cap. RecentActivity returns the capped window oldest-first.
	AppendActivity(ev *models.ActivityEvent) error
	RecentActivity(actorID string, limit int) (*models.ActionLog, error)

	// BaselineVotesPerHour averages vote rate across all claims; 0 when no
	// claims exist yet (callers fall back to the default baseline).
	BaselineVotesPerHour(now time.Time) (float64, error)
}
