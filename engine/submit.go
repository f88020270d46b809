package engine

import (
	"strings"

	"github.com/google/uuid"

	"campusverify/models"
	"campusverify/store"
)

// EvidenceInput is optional evidence attached at submission time.
type EvidenceInput struct {
	Type        models.EvidenceType
	Quality     float64
	Description string
}

// SubmitRequest carries a new claim from an already-authenticated actor.
type SubmitRequest struct {
	ActorID  string
	Content  string
	Category models.Category
	Stake    int64
	Evidence *EvidenceInput
}

// SubmitClaim validates a submission, escrows the stake, stores the claim
// and its evidence, and computes the initial trust score. All state
// changes happen in one transaction; a rejected submission moves nothing.
func (e *Engine) SubmitClaim(req SubmitRequest) (*models.Claim, error) {
	if req.ActorID == "" {
		return nil, &ValidationError{Field: "actorId", Reason: "required"}
	}
	content := strings.TrimSpace(req.Content)
	if len(content) < e.cfg.MinContentLength {
		return nil, &ValidationError{Field: "content", Reason: "too short"}
	}
	if req.Category == "" {
		req.Category = models.CategoryGeneral
	}
	if !models.ValidCategory(req.Category) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if req.Stake < e.cfg.MinClaimStake || req.Stake > e.cfg.MaxClaimStake {
		return nil, &ValidationError{Field: "stakeAmount", Reason: "outside allowed band"}
	}
	if req.Evidence != nil {
		if !models.ValidEvidenceType(req.Evidence.Type) {
			return nil, &ValidationError{Field: "evidenceType", Reason: "unknown evidence type"}
		}
		if req.Evidence.Quality < 0 || req.Evidence.Quality > 1 {
			return nil, &ValidationError{Field: "evidenceQuality", Reason: "must be within [0, 1]"}
		}
	}

	e.actorLocks.Lock(req.ActorID)
	defer e.actorLocks.Unlock(req.ActorID)

	now := e.now()
	var claim *models.Claim
	err := e.store.Tx(func(st store.Store) error {
		actor, err := e.getOrCreateActor(st, req.ActorID)
		if err != nil {
			return err
		}
		if actor.Status == models.ActorStatusSuspended {
			return &AnomalyBlockedError{ActorID: actor.ActorID, BotScore: 1}
		}
		if actor.Balance < req.Stake {
			return &InsufficientBalanceError{ActorID: actor.ActorID, Balance: actor.Balance, Stake: req.Stake}
		}

		claim = &models.Claim{
			ClaimID:     uuid.New().String(),
			SubmitterID: actor.ActorID,
			Content:     content,
			Category:    req.Category,
			StakeAmount: req.Stake,
			Status:      models.ClaimStatusPending,
			TrustStatus: "unverified",
			SubmittedAt: now,
		}

		if req.Evidence != nil {
			quality := req.Evidence.Quality
			if quality == 0 {
				quality = models.DefaultEvidenceQuality
			}
			ev := &models.Evidence{
				EvidenceID:  uuid.New().String(),
				ClaimID:     claim.ClaimID,
				Type:        req.Evidence.Type,
				Quality:     quality,
				Description: req.Evidence.Description,
				SubmittedAt: now,
			}
			if err := st.AppendEvidence(ev); err != nil {
				return err
			}
		}

		actor.Balance -= req.Stake
		actor.Staked += req.Stake
		actor.TotalSubmissions++
		actor.LastActiveAt = now
		if err := st.SaveActor(actor); err != nil {
			return err
		}

		if err := st.AppendActivity(&models.ActivityEvent{
			ActorID:    actor.ActorID,
			Action:     models.ActionSubmit,
			SubjectID:  claim.ClaimID,
			OccurredAt: now,
		}); err != nil {
			return err
		}

		if _, err := e.rescore(st, claim); err != nil {
			return err
		}
		return st.SaveClaim(claim)
	})
	if err != nil {
		return nil, err
	}

	e.notifier.ScoreChanged(claim.ClaimID, claim.TrustScore)
	return claim, nil
}
