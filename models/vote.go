package models

import (
	"time"

	"gorm.io/gorm"
)

// VoteDirection is an actor's position on a claim
type VoteDirection string

const (
	VoteSupport VoteDirection = "support"
	VoteDispute VoteDirection = "dispute"
)

// ValidDirection reports whether d is a known vote direction.
func ValidDirection(d VoteDirection) bool {
	return d == VoteSupport || d == VoteDispute
}

// Vote is one actor's staked position on one claim. At most one vote per
// (claim, actor) pair exists; the unique index backs the engine-level check.
// Immutable after creation except for the outcome flag set at resolution.
type Vote struct {
	gorm.Model
	VoteID    string        `json:"voteId" gorm:"uniqueIndex;not null;size:40"`
	ClaimID   string        `json:"claimId" gorm:"not null;index;uniqueIndex:idx_claim_actor;size:40"`
	ActorID   string        `json:"actorId" gorm:"not null;index;uniqueIndex:idx_claim_actor;size:100"`
	Direction VoteDirection `json:"direction" gorm:"not null;size:10"`
	Stake     int64         `json:"stake" gorm:"not null"`
	Weight    float64       `json:"weight" gorm:"not null;default:1.0"`

	// Optional linked evidence
	EvidenceID *string `json:"evidenceId,omitempty" gorm:"size:40"`

	// Accepted under enhanced monitoring (moderate anomaly score)
	Monitored bool `json:"monitored" gorm:"default:false"`

	// Set once at resolution; nil while the claim is open or when the
	// outcome had no winners and losers.
	WasCorrect *bool `json:"wasCorrect,omitempty"`

	CastAt time.Time `json:"castAt" gorm:"not null;index"`
}

// VotePublic is the public-facing vote view
type VotePublic struct {
	VoteID     string        `json:"voteId"`
	ClaimID    string        `json:"claimId"`
	ActorID    string        `json:"actorId"`
	Direction  VoteDirection `json:"direction"`
	Stake      int64         `json:"stake"`
	Weight     float64       `json:"weight"`
	WasCorrect *bool         `json:"wasCorrect,omitempty"`
	CastAt     time.Time     `json:"castAt"`
}

// ToPublic converts Vote to VotePublic
func (v *Vote) ToPublic() VotePublic {
	return VotePublic{
		VoteID:     v.VoteID,
		ClaimID:    v.ClaimID,
		ActorID:    v.ActorID,
		Direction:  v.Direction,
		Stake:      v.Stake,
		Weight:     v.Weight,
		WasCorrect: v.WasCorrect,
		CastAt:     v.CastAt,
	}
}
