package models

import (
	"time"

	"gorm.io/gorm"
)

// ActorStatus is the lifecycle state of a participant
type ActorStatus string

const (
	ActorStatusActive    ActorStatus = "active"
	ActorStatusFlagged   ActorStatus = "flagged"
	ActorStatusSuspended ActorStatus = "suspended"
)

// Actor represents a pseudonymous participant. Identity is established
// outside this service; the id arrives already authenticated.
type Actor struct {
	gorm.Model
	ActorID string `json:"actorId" gorm:"uniqueIndex;not null;size:100"`

	// Token economy
	Balance int64 `json:"balance" gorm:"not null;default:0"`
	Staked  int64 `json:"staked" gorm:"not null;default:0"`

	// Reputation System
	Reputation              float64 `json:"reputation" gorm:"default:0.5"`
	AccurateVerifications   int64   `json:"accurateVerifications" gorm:"default:0"`
	InaccurateVerifications int64   `json:"inaccurateVerifications" gorm:"default:0"`
	TotalSubmissions        int64   `json:"totalSubmissions" gorm:"default:0"`
	AccurateSubmissions     int64   `json:"accurateSubmissions" gorm:"default:0"`
	InaccurateSubmissions   int64   `json:"inaccurateSubmissions" gorm:"default:0"`

	// Status
	Status    ActorStatus `json:"status" gorm:"default:active;size:20"`
	Monitored bool        `json:"monitored" gorm:"default:false"`

	LastActiveAt time.Time `json:"lastActiveAt"`
}

// ActorPublic is the public-facing actor profile
type ActorPublic struct {
	ActorID                 string      `json:"actorId"`
	Balance                 int64       `json:"balance"`
	Staked                  int64       `json:"staked"`
	Reputation              float64     `json:"reputation"`
	AccurateVerifications   int64       `json:"accurateVerifications"`
	InaccurateVerifications int64       `json:"inaccurateVerifications"`
	TotalSubmissions        int64       `json:"totalSubmissions"`
	Status                  ActorStatus `json:"status"`
	LastActiveAt            time.Time   `json:"lastActiveAt"`
}

// ToPublic converts Actor to ActorPublic
func (a *Actor) ToPublic() ActorPublic {
	return ActorPublic{
		ActorID:                 a.ActorID,
		Balance:                 a.Balance,
		Staked:                  a.Staked,
		Reputation:              a.Reputation,
		AccurateVerifications:   a.AccurateVerifications,
		InaccurateVerifications: a.InaccurateVerifications,
		TotalSubmissions:        a.TotalSubmissions,
		Status:                  a.Status,
		LastActiveAt:            a.LastActiveAt,
	}
}

// ExperienceCount is the combined activity count used for the new-user
// penalty: actors below the threshold carry reduced vote weight.
func (a *Actor) ExperienceCount() int64 {
	return a.TotalSubmissions + a.AccurateVerifications
}

// AdjustReputation applies a delta and clamps to [0, 1].
func (a *Actor) AdjustReputation(delta float64) {
	a.Reputation += delta
	if a.Reputation < 0 {
		a.Reputation = 0
	}
	if a.Reputation > 1 {
		a.Reputation = 1
	}
}

// RecencyFactor scales vote weight by how recently the actor was active:
// within a week 1.0, within a month 0.7, older 0.4.
func (a *Actor) RecencyFactor(now time.Time) float64 {
	if a.LastActiveAt.IsZero() {
		return 1.0 // first action
	}
	idle := now.Sub(a.LastActiveAt)
	switch {
	case idle <= 7*24*time.Hour:
		return 1.0
	case idle <= 30*24*time.Hour:
		return 0.7
	default:
		return 0.4
	}
}
