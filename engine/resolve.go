package engine

import (
	"math"
	"sort"

	"campusverify/models"
	"campusverify/store"
)

// Resolution outcome thresholds on the normalized [0,1] trust score.
const (
	VerifyConsensus = 0.7
	RefuteConsensus = 0.3
)

// CheckResolution resolves the claim if it is eligible: enough votes and
// either the resolution window has passed or consensus is already strong.
// Safe to call repeatedly; an already-resolved claim is left alone.
func (e *Engine) CheckResolution(claimID string) error {
	e.claimLocks.Lock(claimID)
	defer e.claimLocks.Unlock(claimID)
	return e.checkResolutionLocked(claimID)
}

// checkResolutionLocked is CheckResolution without taking the claim lock.
// CastVote calls it while still holding the lock.
func (e *Engine) checkResolutionLocked(claimID string) error {
	claim, err := e.store.LoadClaim(claimID)
	if err != nil {
		return err
	}
	if claim.Resolved {
		return nil
	}
	votes, err := e.store.VotesForClaim(claimID)
	if err != nil {
		return err
	}
	if len(votes) < e.cfg.MinVotesToResolve {
		return nil
	}

	// Settlement moves tokens for the submitter and every voter, so each
	// of their locks is held for the duration. The claim lock keeps the
	// participant set stable between here and the transaction.
	unlock := e.lockActors(claim.SubmitterID, votes)
	defer unlock()

	var resolved *models.Claim
	err = e.store.Tx(func(st store.Store) error {
		claim, err := st.LoadClaim(claimID)
		if err != nil {
			return err
		}
		if claim.Resolved {
			return nil
		}
		votes, err := st.VotesForClaim(claimID)
		if err != nil {
			return err
		}

		normalized := float64(claim.TrustScore) / 100.0
		windowPassed := e.now().Sub(claim.SubmittedAt) >= e.cfg.ResolutionWindow
		strongConsensus := normalized >= VerifyConsensus || normalized <= RefuteConsensus
		if !windowPassed && !strongConsensus {
			return nil
		}

		if err := e.settle(st, claim, votes, normalized); err != nil {
			return err
		}
		resolved = claim
		return nil
	})
	if err != nil {
		return err
	}
	if resolved != nil {
		e.notifier.ClaimResolved(resolved.ClaimID, resolved.Outcome)
	}
	return nil
}

// lockActors takes the actor locks for the submitter and every voter,
// always in sorted id order so concurrent settlements cannot deadlock.
// Returns the matching unlock.
func (e *Engine) lockActors(submitterID string, votes []models.Vote) func() {
	seen := map[string]bool{submitterID: true}
	ids := []string{submitterID}
	for _, v := range votes {
		if !seen[v.ActorID] {
			seen[v.ActorID] = true
			ids = append(ids, v.ActorID)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		e.actorLocks.Lock(id)
	}
	return func() {
		for _, id := range ids {
			e.actorLocks.Unlock(id)
		}
	}
}

// settle distributes stakes for a claim that is eligible to resolve.
//
// Verified / refuted: the winning side recovers its stakes, earns a minted
// bonus proportional to its own stake, and splits the losing pool evenly.
// A refuted claim forfeits the submitter's stake into that pool. Disputed:
// everyone gets half their stake back and the remainder is burned.
func (e *Engine) settle(st store.Store, claim *models.Claim, votes []models.Vote, normalized float64) error {
	now := e.now()

	var outcome models.Outcome
	switch {
	case normalized >= VerifyConsensus:
		outcome = models.OutcomeVerified
	case normalized <= RefuteConsensus:
		outcome = models.OutcomeRefuted
	default:
		outcome = models.OutcomeDisputed
	}

	submitter, err := st.LoadActor(claim.SubmitterID)
	if err != nil {
		return err
	}

	if outcome == models.OutcomeDisputed {
		if err := e.settleDisputed(st, claim, votes, submitter); err != nil {
			return err
		}
	} else {
		if err := e.settleDecided(st, claim, votes, submitter, outcome); err != nil {
			return err
		}
	}

	claim.Resolved = true
	claim.Outcome = outcome
	claim.ResolvedAt = &now
	switch outcome {
	case models.OutcomeVerified:
		claim.Status = models.ClaimStatusVerified
	case models.OutcomeRefuted:
		claim.Status = models.ClaimStatusDisputed
	default:
		claim.Status = models.ClaimStatusUnresolvd
	}
	return st.SaveClaim(claim)
}

// settleDecided handles verified and refuted outcomes.
func (e *Engine) settleDecided(st store.Store, claim *models.Claim, votes []models.Vote, submitter *models.Actor, outcome models.Outcome) error {
	winning := models.VoteSupport
	if outcome == models.OutcomeRefuted {
		winning = models.VoteDispute
	}

	var winners, losers []models.Vote
	var loserPool int64
	for _, v := range votes {
		if v.Direction == winning {
			winners = append(winners, v)
		} else {
			losers = append(losers, v)
			loserPool += v.Stake
		}
	}

	// Submitter settles first: the claim stake returns with a bonus when
	// the claim verified, otherwise it joins the loser pool.
	submitter.Staked -= claim.StakeAmount
	if outcome == models.OutcomeVerified {
		bonus := roundTokens(float64(claim.StakeAmount) * e.cfg.WinBonusRate)
		submitter.Balance += claim.StakeAmount + bonus
		claim.BonusMinted += bonus
		submitter.AccurateSubmissions++
		submitter.AdjustReputation(e.cfg.ReputationWinDelta)
	} else {
		loserPool += claim.StakeAmount
		submitter.InaccurateSubmissions++
		submitter.AdjustReputation(e.cfg.ReputationLossDelta)
	}
	if err := st.SaveActor(submitter); err != nil {
		return err
	}

	var share int64
	if len(winners) > 0 {
		share = roundTokens(float64(loserPool) / float64(len(winners)))
	} else {
		// Nobody to pay; the pool is destroyed rather than invented back.
		claim.BurnedTokens += loserPool
	}

	correct, incorrect := true, false
	for i := range winners {
		v := winners[i]
		actor, err := st.LoadActor(v.ActorID)
		if err != nil {
			return err
		}
		bonus := roundTokens(float64(v.Stake) * e.cfg.WinBonusRate)
		actor.Staked -= v.Stake
		actor.Balance += v.Stake + bonus + share
		claim.BonusMinted += bonus
		actor.AccurateVerifications++
		actor.AdjustReputation(e.cfg.ReputationWinDelta)
		if err := st.SaveActor(actor); err != nil {
			return err
		}
		v.WasCorrect = &correct
		if err := st.SaveVote(&v); err != nil {
			return err
		}
	}
	for i := range losers {
		v := losers[i]
		actor, err := st.LoadActor(v.ActorID)
		if err != nil {
			return err
		}
		actor.Staked -= v.Stake
		actor.InaccurateVerifications++
		actor.AdjustReputation(e.cfg.ReputationLossDelta)
		if err := st.SaveActor(actor); err != nil {
			return err
		}
		v.WasCorrect = &incorrect
		if err := st.SaveVote(&v); err != nil {
			return err
		}
	}

	// Rounded shares may not sum to the pool exactly; the difference is
	// recorded as burned (or minted) so the ledger still balances.
	if len(winners) > 0 {
		paid := share * int64(len(winners))
		if paid < loserPool {
			claim.BurnedTokens += loserPool - paid
		} else if paid > loserPool {
			claim.BonusMinted += paid - loserPool
		}
	}
	return nil
}

// settleDisputed refunds half of every stake and burns the remainder.
// Nobody was right or wrong, so records and reputation stay untouched.
func (e *Engine) settleDisputed(st store.Store, claim *models.Claim, votes []models.Vote, submitter *models.Actor) error {
	refund := roundTokens(float64(claim.StakeAmount) / 2)
	submitter.Staked -= claim.StakeAmount
	submitter.Balance += refund
	claim.BurnedTokens += claim.StakeAmount - refund
	if err := st.SaveActor(submitter); err != nil {
		return err
	}

	for _, v := range votes {
		actor, err := st.LoadActor(v.ActorID)
		if err != nil {
			return err
		}
		refund := roundTokens(float64(v.Stake) / 2)
		actor.Staked -= v.Stake
		actor.Balance += refund
		claim.BurnedTokens += v.Stake - refund
		if err := st.SaveActor(actor); err != nil {
			return err
		}
	}
	return nil
}

// Sweep checks every unresolved claim for eligibility. It backs the admin
// endpoint and can run on a timer; each claim resolves in its own
// transaction so one failure does not wedge the rest.
func (e *Engine) Sweep() (int, error) {
	claims, err := e.store.ListUnresolvedClaims()
	if err != nil {
		return 0, err
	}
	resolved := 0
	for _, c := range claims {
		before, err := e.store.LoadClaim(c.ClaimID)
		if err != nil {
			return resolved, err
		}
		if before.Resolved {
			continue
		}
		if err := e.CheckResolution(c.ClaimID); err != nil {
			return resolved, err
		}
		after, err := e.store.LoadClaim(c.ClaimID)
		if err != nil {
			return resolved, err
		}
		if after.Resolved {
			resolved++
		}
	}
	return resolved, nil
}

// roundTokens rounds a fractional token amount to the nearest integer.
func roundTokens(v float64) int64 {
	return int64(math.Round(v))
}
