package engine

import (
	"log"
	"time"

	"github.com/google/uuid"

	"campusverify/handlers/math/anomaly"
	"campusverify/models"
	"campusverify/store"
)

// VoteRequest carries one actor's staked position on a claim.
type VoteRequest struct {
	ActorID   string
	ClaimID   string
	Direction models.VoteDirection
	Stake     int64
	Evidence  *EvidenceInput
}

// CastVote validates a vote, applies the anomaly policy, escrows the
// stake, records the weighted vote, rescores the claim, and finally
// checks whether the claim is now eligible to resolve. One vote per
// (claim, actor) pair; the duplicate check is backed by a unique index.
func (e *Engine) CastVote(req VoteRequest) (*models.Vote, error) {
	if req.ActorID == "" {
		return nil, &ValidationError{Field: "actorId", Reason: "required"}
	}
	if req.ClaimID == "" {
		return nil, &ValidationError{Field: "claimId", Reason: "required"}
	}
	if !models.ValidDirection(req.Direction) {
		return nil, &ValidationError{Field: "direction", Reason: "must be support or dispute"}
	}
	if req.Stake < e.cfg.MinVoteStake || req.Stake > e.cfg.MaxVoteStake {
		return nil, &ValidationError{Field: "stake", Reason: "outside allowed band"}
	}
	if req.Evidence != nil {
		if !models.ValidEvidenceType(req.Evidence.Type) {
			return nil, &ValidationError{Field: "evidenceType", Reason: "unknown evidence type"}
		}
		if req.Evidence.Quality < 0 || req.Evidence.Quality > 1 {
			return nil, &ValidationError{Field: "evidenceQuality", Reason: "must be within [0, 1]"}
		}
	}

	e.claimLocks.Lock(req.ClaimID)
	defer e.claimLocks.Unlock(req.ClaimID)

	now := e.now()
	var vote *models.Vote
	var claim *models.Claim
	// The voter's lock is released before the resolution check: settlement
	// acquires every participant's lock, this voter's included.
	e.actorLocks.Lock(req.ActorID)
	err := e.store.Tx(func(st store.Store) error {
		var err error
		claim, err = st.LoadClaim(req.ClaimID)
		if err != nil {
			return err
		}
		if claim.Resolved {
			return &ConflictError{Reason: "claim already resolved"}
		}
		if claim.SubmitterID == req.ActorID {
			return &ValidationError{Field: "actorId", Reason: "submitter cannot vote on own claim"}
		}
		if _, err := st.VoteByClaimActor(req.ClaimID, req.ActorID); err == nil {
			return &ConflictError{Reason: "actor already voted on this claim"}
		} else if err != store.ErrNotFound {
			return err
		}

		actor, err := e.getOrCreateActor(st, req.ActorID)
		if err != nil {
			return err
		}
		if actor.Status == models.ActorStatusSuspended {
			return &AnomalyBlockedError{ActorID: actor.ActorID, BotScore: 1}
		}

		log, err := st.RecentActivity(actor.ActorID, models.ActionLogCap)
		if err != nil {
			return err
		}
		verdict := e.detector.AnalyzeActorBehavior(log)

		stake := req.Stake
		monitored := false
		switch verdict.Recommendation {
		case anomaly.RecommendBlock:
			return &AnomalyBlockedError{ActorID: actor.ActorID, BotScore: verdict.BotScore}
		case anomaly.RecommendReduce:
			stake = stake / 2
			if stake < 1 {
				stake = 1
			}
		case anomaly.RecommendMonitor:
			monitored = true
		}

		if actor.Balance < stake {
			return &InsufficientBalanceError{ActorID: actor.ActorID, Balance: actor.Balance, Stake: stake}
		}

		weight := voteWeight(actor, now)

		vote = &models.Vote{
			VoteID:    uuid.New().String(),
			ClaimID:   claim.ClaimID,
			ActorID:   actor.ActorID,
			Direction: req.Direction,
			Stake:     stake,
			Weight:    weight,
			Monitored: monitored,
			CastAt:    now,
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
			vote.EvidenceID = &ev.EvidenceID
		}

		actor.Balance -= stake
		actor.Staked += stake
		actor.LastActiveAt = now
		if monitored && !actor.Monitored {
			actor.Monitored = true
		}
		if err := st.SaveActor(actor); err != nil {
			return err
		}

		if err := st.AppendVote(vote); err != nil {
			return err
		}

		switch req.Direction {
		case models.VoteSupport:
			claim.SupportCount++
		case models.VoteDispute:
			claim.DisputeCount++
		}

		if err := st.AppendActivity(&models.ActivityEvent{
			ActorID:    actor.ActorID,
			Action:     models.ActionVote,
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
	e.actorLocks.Unlock(req.ActorID)
	if err != nil {
		// Blocking rolls back the vote but the flag must stick.
		if blocked, ok := err.(*AnomalyBlockedError); ok {
			e.flagActor(blocked.ActorID)
		}
		return nil, err
	}

	e.notifier.ScoreChanged(claim.ClaimID, claim.TrustScore)

	if err := e.checkResolutionLocked(req.ClaimID); err != nil {
		// The vote is already committed; the claim stays open for the
		// sweep to pick up.
		log.Printf("resolution check for claim %s failed: %v", req.ClaimID, err)
	}
	return vote, nil
}

// flagActor marks an actor flagged outside the rejected transaction.
func (e *Engine) flagActor(actorID string) {
	e.actorLocks.Lock(actorID)
	defer e.actorLocks.Unlock(actorID)
	_ = e.store.Tx(func(st store.Store) error {
		actor, err := st.LoadActor(actorID)
		if err != nil {
			return err
		}
		if actor.Status == models.ActorStatusActive {
			actor.Status = models.ActorStatusFlagged
			return st.SaveActor(actor)
		}
		return nil
	})
}

// voteWeight combines reputation, activity recency and experience into a
// clamped multiplier on the vote's influence.
func voteWeight(actor *models.Actor, now time.Time) float64 {
	w := (0.5 + 1.5*actor.Reputation) * actor.RecencyFactor(now)
	if actor.ExperienceCount() < NewUserExperienceBar {
		w *= NewUserPenalty
	}
	if w < MinVoteWeight {
		return MinVoteWeight
	}
	if w > MaxVoteWeight {
		return MaxVoteWeight
	}
	return w
}
