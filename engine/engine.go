// Package engine is the incentive resolution engine: it validates stakes,
// weights votes by actor reputation, decides when claims resolve, and
// settles staked tokens between participants. It is the sole mutator of
// actor and claim state and the sole enforcer of the anomaly detector's
// recommendations.
package engine

import (
	"time"

	"campusverify/handlers/math/anomaly"
	"campusverify/handlers/math/trust"
	"campusverify/models"
	"campusverify/notify"
	"campusverify/setup"
	"campusverify/store"
)

// Vote weight bounds and factors
const (
	MinVoteWeight = 0.3
	MaxVoteWeight = 2.0

	// NewUserPenalty discounts actors with little track record.
	NewUserPenalty       = 0.6
	NewUserExperienceBar = 5
)

// Engine orchestrates the decision core over an injected store.
type Engine struct {
	store    store.Store
	detector *anomaly.Detector
	notifier notify.Notifier
	cfg      *setup.Economics
	now      func() time.Time

	claimLocks *keyedMutex
	actorLocks *keyedMutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source. Tests drive resolution windows and
// vote timestamps through this.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given store and notifier.
func New(st store.Store, n notify.Notifier, cfg *setup.Economics, opts ...Option) *Engine {
	if cfg == nil {
		cfg = setup.Defaults()
	}
	if n == nil {
		n = notify.Discard{}
	}
	e := &Engine{
		store:      st,
		detector:   anomaly.NewDetector(),
		notifier:   n,
		cfg:        cfg,
		now:        time.Now,
		claimLocks: newKeyedMutex(),
		actorLocks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Detector exposes the anomaly detector for read-only analysis endpoints.
func (e *Engine) Detector() *anomaly.Detector {
	return e.detector
}

// Config exposes the economics in effect.
func (e *Engine) Config() *setup.Economics {
	return e.cfg
}

// getOrCreateActor loads an actor, creating it with the starting balance
// on first sight. The identity adapter guarantees the id is authentic.
func (e *Engine) getOrCreateActor(st store.Store, actorID string) (*models.Actor, error) {
	actor, err := st.LoadActor(actorID)
	if err == nil {
		return actor, nil
	}
	if err != store.ErrNotFound {
		return nil, err
	}
	actor = &models.Actor{
		ActorID:    actorID,
		Balance:    e.cfg.StartingBalance,
		Reputation: 0.5,
		Status:     models.ActorStatusActive,
	}
	if err := st.SaveActor(actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// rescore recomputes a claim's trust score in place from its current
// evidence, votes and submitter record, including the claim-level anomaly
// penalty. The caller persists the claim.
func (e *Engine) rescore(st store.Store, claim *models.Claim) (int, error) {
	votes, err := st.VotesForClaim(claim.ClaimID)
	if err != nil {
		return 0, err
	}
	evidence, err := st.EvidenceForClaim(claim.ClaimID)
	if err != nil {
		return 0, err
	}
	submitter, err := st.LoadActor(claim.SubmitterID)
	if err != nil {
		return 0, err
	}
	baseline, err := st.BaselineVotesPerHour(e.now())
	if err != nil {
		return 0, err
	}

	verdict := e.detector.AnalyzeClaim(votes, claim.SubmittedAt, e.now(), baseline)

	result := trust.Compute(trust.Input{
		Evidence:            evidence,
		Votes:               votes,
		Category:            claim.Category,
		SubmitterAccurate:   submitter.AccurateSubmissions,
		SubmitterInaccurate: submitter.InaccurateSubmissions,
		SubmitterTotal:      submitter.TotalSubmissions,
		ConsensusPenalty:    verdict.ConsensusPenalty,
		CreatedAt:           claim.SubmittedAt,
		Now:                 e.now(),
	})

	claim.VeracityScore = result.Components.Veracity
	claim.ConfidenceScore = result.Components.Confidence
	claim.TemporalScore = result.Components.Temporal
	claim.SourceScore = result.Components.Source
	claim.ConsensusScore = result.Components.Consensus
	claim.TrustScore = result.Final
	claim.TrustStatus = string(result.Status)
	return result.Final, nil
}

// ClaimAnomaly runs claim-level analysis without mutating anything.
func (e *Engine) ClaimAnomaly(claimID string) (anomaly.ClaimVerdict, error) {
	claim, err := e.store.LoadClaim(claimID)
	if err != nil {
		return anomaly.ClaimVerdict{}, err
	}
	votes, err := e.store.VotesForClaim(claimID)
	if err != nil {
		return anomaly.ClaimVerdict{}, err
	}
	baseline, err := e.store.BaselineVotesPerHour(e.now())
	if err != nil {
		return anomaly.ClaimVerdict{}, err
	}
	return e.detector.AnalyzeClaim(votes, claim.SubmittedAt, e.now(), baseline), nil
}

// ActorBehavior runs actor-level analysis without mutating anything.
func (e *Engine) ActorBehavior(actorID string) (anomaly.ActorVerdict, error) {
	log, err := e.store.RecentActivity(actorID, models.ActionLogCap)
	if err != nil {
		return anomaly.ActorVerdict{}, err
	}
	return e.detector.AnalyzeActorBehavior(log), nil
}
