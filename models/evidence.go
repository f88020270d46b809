package models

import (
	"time"

	"gorm.io/gorm"
)

// EvidenceType classifies attached evidence. Each type carries a fixed
// weight in the veracity calculation and a base confidence level.
type EvidenceType string

const (
	EvidenceDocumentary EvidenceType = "documentary"
	EvidenceVideo       EvidenceType = "video"
	EvidencePhoto       EvidenceType = "photo"
	EvidenceLink        EvidenceType = "link"
	EvidenceTestimony   EvidenceType = "testimony"
)

// TypeWeight returns the fixed veracity weight for an evidence type.
func (t EvidenceType) TypeWeight() float64 {
	switch t {
	case EvidenceDocumentary:
		return 0.6
	case EvidenceVideo:
		return 0.5
	case EvidencePhoto:
		return 0.45
	case EvidenceLink:
		return 0.4
	case EvidenceTestimony:
		return 0.3
	default:
		return 0.3
	}
}

// ConfidenceBase returns the base confidence contributed by the strongest
// evidence of this type: documentary sources anchor confidence, visual
// media less so, testimony no more than having nothing.
func (t EvidenceType) ConfidenceBase() float64 {
	switch t {
	case EvidenceDocumentary:
		return 0.9
	case EvidenceVideo, EvidencePhoto:
		return 0.7
	default:
		return 0.5
	}
}

// ValidEvidenceType reports whether t is a known evidence type.
func ValidEvidenceType(t EvidenceType) bool {
	switch t {
	case EvidenceDocumentary, EvidenceVideo, EvidencePhoto, EvidenceLink, EvidenceTestimony:
		return true
	}
	return false
}

// DefaultEvidenceQuality is assumed when the submitter gives no quality factor.
const DefaultEvidenceQuality = 0.8

// Evidence is attached to exactly one claim and immutable once created
type Evidence struct {
	gorm.Model
	EvidenceID  string       `json:"evidenceId" gorm:"uniqueIndex;not null;size:40"`
	ClaimID     string       `json:"claimId" gorm:"not null;index;size:40"`
	Type        EvidenceType `json:"type" gorm:"not null;size:20"`
	Quality     float64      `json:"quality" gorm:"default:0.8"`
	Description string       `json:"description" gorm:"size:1000"`
	SubmittedAt time.Time    `json:"submittedAt" gorm:"not null"`
}
