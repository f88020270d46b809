package models

import (
	"time"

	"gorm.io/gorm"
)

// ClaimStatus is the lifecycle state of a claim. It moves from pending to
// exactly one terminal state at resolution.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusVerified  ClaimStatus = "verified"
	ClaimStatusDisputed  ClaimStatus = "disputed"
	ClaimStatusUnresolvd ClaimStatus = "unresolved-expired"
)

// Outcome classifies how a claim resolved
type Outcome string

const (
	OutcomeVerified Outcome = "verified"
	OutcomeRefuted  Outcome = "refuted"
	OutcomeDisputed Outcome = "disputed"
)

// Category of a claim. The category selects the temporal decay curve:
// ephemeral topics go stale within hours, durable ones within weeks.
type Category string

const (
	CategoryEvent    Category = "event"
	CategoryFood     Category = "food"
	CategorySocial   Category = "social"
	CategoryAcademic Category = "academic"
	CategoryPolicy   Category = "policy"
	CategoryFacility Category = "facility"
	CategoryTech     Category = "tech"
	CategoryGeneral  Category = "general"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryEvent, CategoryFood, CategorySocial, CategoryAcademic,
		CategoryPolicy, CategoryFacility, CategoryTech, CategoryGeneral:
		return true
	}
	return false
}

// Claim represents a submitted statement under community verification
type Claim struct {
	gorm.Model
	ClaimID     string   `json:"claimId" gorm:"uniqueIndex;not null;size:40"`
	SubmitterID string   `json:"submitterId" gorm:"not null;index;size:100"`
	Content     string   `json:"content" gorm:"not null;size:2000"`
	Category    Category `json:"category" gorm:"not null;default:general;index;size:20"`
	StakeAmount int64    `json:"stakeAmount" gorm:"not null"`

	// Trust score: five components in [0,1] plus the combined [0,100] score
	VeracityScore   float64 `json:"veracityScore" gorm:"default:0"`
	ConfidenceScore float64 `json:"confidenceScore" gorm:"default:0"`
	TemporalScore   float64 `json:"temporalScore" gorm:"default:0"`
	SourceScore     float64 `json:"sourceScore" gorm:"default:0"`
	ConsensusScore  float64 `json:"consensusScore" gorm:"default:0"`
	TrustScore      int     `json:"trustScore" gorm:"default:0"`
	TrustStatus     string  `json:"trustStatus" gorm:"default:unverified;size:20"`

	// Vote tallies
	SupportCount int64 `json:"supportCount" gorm:"default:0"`
	DisputeCount int64 `json:"disputeCount" gorm:"default:0"`

	// Resolution
	Status     ClaimStatus `json:"status" gorm:"not null;default:pending;index;size:20"`
	Resolved   bool        `json:"resolved" gorm:"default:false;index"`
	Outcome    Outcome     `json:"outcome,omitempty" gorm:"size:20"`
	ResolvedAt *time.Time  `json:"resolvedAt,omitempty"`

	// Settlement audit: bonus tokens are minted outside the staked pool,
	// burned tokens are the unrefunded remainder of a disputed outcome.
	BonusMinted  int64 `json:"bonusMinted" gorm:"default:0"`
	BurnedTokens int64 `json:"burnedTokens" gorm:"default:0"`

	SubmittedAt time.Time `json:"submittedAt" gorm:"not null;index"`
}

// ClaimPublic is the public-facing claim view
type ClaimPublic struct {
	ClaimID      string      `json:"claimId"`
	SubmitterID  string      `json:"submitterId"`
	Content      string      `json:"content"`
	ContentHTML  string      `json:"contentHtml,omitempty"`
	Category     Category    `json:"category"`
	StakeAmount  int64       `json:"stakeAmount"`
	TrustScore   int         `json:"trustScore"`
	TrustStatus  string      `json:"trustStatus"`
	Components   ScoreSet    `json:"components"`
	SupportCount int64       `json:"supportCount"`
	DisputeCount int64       `json:"disputeCount"`
	Status       ClaimStatus `json:"status"`
	Resolved     bool        `json:"resolved"`
	Outcome      Outcome     `json:"outcome,omitempty"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	ResolvedAt   *time.Time  `json:"resolvedAt,omitempty"`
}

// ScoreSet groups the five trust components for JSON output
type ScoreSet struct {
	Veracity   float64 `json:"veracity"`
	Confidence float64 `json:"confidence"`
	Temporal   float64 `json:"temporal"`
	Source     float64 `json:"source"`
	Consensus  float64 `json:"consensus"`
}

// ToPublic converts Claim to ClaimPublic (without rendered content)
func (c *Claim) ToPublic() ClaimPublic {
	return ClaimPublic{
		ClaimID:     c.ClaimID,
		SubmitterID: c.SubmitterID,
		Content:     c.Content,
		Category:    c.Category,
		StakeAmount: c.StakeAmount,
		TrustScore:  c.TrustScore,
		TrustStatus: c.TrustStatus,
		Components: ScoreSet{
			Veracity:   c.VeracityScore,
			Confidence: c.ConfidenceScore,
			Temporal:   c.TemporalScore,
			Source:     c.SourceScore,
			Consensus:  c.ConsensusScore,
		},
		SupportCount: c.SupportCount,
		DisputeCount: c.DisputeCount,
		Status:       c.Status,
		Resolved:     c.Resolved,
		Outcome:      c.Outcome,
		SubmittedAt:  c.SubmittedAt,
		ResolvedAt:   c.ResolvedAt,
	}
}
