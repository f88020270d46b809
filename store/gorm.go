package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"campusverify/models"
)

// Gorm is the database-backed store. It works against SQLite and
// PostgreSQL through the drivers wired in main.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps a gorm handle.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Tx runs fn inside a database transaction.
func (s *Gorm) Tx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

func (s *Gorm) LoadClaim(claimID string) (*models.Claim, error) {
	var claim models.Claim
	if err := s.db.Where("claim_id = ?", claimID).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func (s *Gorm) SaveClaim(claim *models.Claim) error {
	return s.db.Save(claim).Error
}

func (s *Gorm) ListClaims(limit, offset int) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&claims).Error
	return claims, err
}

func (s *Gorm) ListUnresolvedClaims() ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.Where("resolved = ?", false).Order("submitted_at ASC").Find(&claims).Error
	return claims, err
}

func (s *Gorm) LoadActor(actorID string) (*models.Actor, error) {
	var actor models.Actor
	if err := s.db.Where("actor_id = ?", actorID).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &actor, nil
}

func (s *Gorm) SaveActor(actor *models.Actor) error {
	return s.db.Save(actor).Error
}

func (s *Gorm) ListActorsByReputation(limit, offset int) ([]models.Actor, int64, error) {
	var actors []models.Actor
	err := s.db.Order("reputation DESC, accurate_verifications DESC").
		Limit(limit).Offset(offset).Find(&actors).Error
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.db.Model(&models.Actor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return actors, total, nil
}

func (s *Gorm) VotesForClaim(claimID string) ([]models.Vote, error) {
	var votes []models.Vote
	err := s.db.Where("claim_id = ?", claimID).Order("cast_at ASC").Find(&votes).Error
	return votes, err
}

func (s *Gorm) VoteByClaimActor(claimID, actorID string) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.Where("claim_id = ? AND actor_id = ?", claimID, actorID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

func (s *Gorm) AppendVote(vote *models.Vote) error {
	return s.db.Create(vote).Error
}

func (s *Gorm) SaveVote(vote *models.Vote) error {
	return s.db.Save(vote).Error
}

func (s *Gorm) EvidenceForClaim(claimID string) ([]models.Evidence, error) {
	var evidence []models.Evidence
	err := s.db.Where("claim_id = ?", claimID).Order("submitted_at DESC").Find(&evidence).Error
	return evidence, err
}

func (s *Gorm) AppendEvidence(ev *models.Evidence) error {
	return s.db.Create(ev).Error
}

func (s *Gorm) AppendActivity(ev *models.ActivityEvent) error {
	if err := s.db.Create(ev).Error; err != nil {
		return err
	}
	// Evict beyond the per-actor cap, oldest first
	return s.db.Exec(`DELETE FROM activity_events WHERE actor_id = ? AND id NOT IN (
		SELECT id FROM (
			SELECT id FROM activity_events WHERE actor_id = ?
			ORDER BY occurred_at DESC, id DESC LIMIT ?
		) keep)`, ev.ActorID, ev.ActorID, models.ActionLogCap).Error
}

func (s *Gorm) RecentActivity(actorID string, limit int) (*models.ActionLog, error) {
	if limit <= 0 || limit > models.ActionLogCap {
		limit = models.ActionLogCap
	}
	var events []models.ActivityEvent
	err := s.db.Where("actor_id = ?", actorID).
		Order("occurred_at DESC, id DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}
	log := models.NewActionLog(limit)
	for i := len(events) - 1; i >= 0; i-- { // oldest first
		log.Append(events[i])
	}
	return log, nil
}

func (s *Gorm) BaselineVotesPerHour(now time.Time) (float64, error) {
	type row struct {
		SubmittedAt  time.Time
		SupportCount int64
		DisputeCount int64
	}
	var rows []row
	err := s.db.Model(&models.Claim{}).
		Select("submitted_at", "support_count", "dispute_count").
		Find(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	sum := 0.0
	for _, r := range rows {
		hours := now.Sub(r.SubmittedAt).Hours()
		if hours < 1.0/60.0 {
			hours = 1.0 / 60.0
		}
		sum += float64(r.SupportCount+r.DisputeCount) / hours
	}
	return sum / float64(len(rows)), nil
}
