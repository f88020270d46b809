package store

import (
	"sort"
	"sync"
	"time"

	"campusverify/models"
)

// Memory is an in-process store. Tx holds the write lock for the whole
// transaction, hands fn an unlocked view, and restores a snapshot when fn
// fails, so rejected operations leave nothing behind.
type Memory struct {
	mu       sync.RWMutex
	actors   map[string]*models.Actor
	claims   map[string]*models.Claim
	votes    []*models.Vote
	evidence []*models.Evidence
	activity map[string]*models.ActionLog
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		actors:   make(map[string]*models.Actor),
		claims:   make(map[string]*models.Claim),
		activity: make(map[string]*models.ActionLog),
	}
}

func (s *Memory) Tx(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	err := fn(&memTx{s})
	if err != nil {
		s.restore(snap)
	}
	return err
}

// memTx is the view handed to a transaction body. The transaction already
// holds the store's write lock, so every call goes straight to the
// unlocked implementations; reads from other goroutines stay excluded
// until the transaction ends.
type memTx struct {
	s *Memory
}

// Tx on a transactional view runs fn against the same view: the outer
// transaction's snapshot already covers it.
func (t *memTx) Tx(fn func(Store) error) error { return fn(t) }

func (t *memTx) LoadClaim(claimID string) (*models.Claim, error) { return t.s.loadClaim(claimID) }
func (t *memTx) SaveClaim(claim *models.Claim) error             { return t.s.saveClaim(claim) }
func (t *memTx) ListClaims(limit, offset int) ([]models.Claim, error) {
	return t.s.listClaims(limit, offset)
}
func (t *memTx) ListUnresolvedClaims() ([]models.Claim, error) { return t.s.listUnresolvedClaims() }
func (t *memTx) LoadActor(actorID string) (*models.Actor, error) {
	return t.s.loadActor(actorID)
}
func (t *memTx) SaveActor(actor *models.Actor) error { return t.s.saveActor(actor) }
func (t *memTx) ListActorsByReputation(limit, offset int) ([]models.Actor, int64, error) {
	return t.s.listActorsByReputation(limit, offset)
}
func (t *memTx) VotesForClaim(claimID string) ([]models.Vote, error) {
	return t.s.votesForClaim(claimID)
}
func (t *memTx) VoteByClaimActor(claimID, actorID string) (*models.Vote, error) {
	return t.s.voteByClaimActor(claimID, actorID)
}
func (t *memTx) AppendVote(vote *models.Vote) error { return t.s.appendVote(vote) }
func (t *memTx) SaveVote(vote *models.Vote) error   { return t.s.saveVote(vote) }
func (t *memTx) EvidenceForClaim(claimID string) ([]models.Evidence, error) {
	return t.s.evidenceForClaim(claimID)
}
func (t *memTx) AppendEvidence(ev *models.Evidence) error { return t.s.appendEvidence(ev) }
func (t *memTx) AppendActivity(ev *models.ActivityEvent) error {
	return t.s.appendActivity(ev)
}
func (t *memTx) RecentActivity(actorID string, limit int) (*models.ActionLog, error) {
	return t.s.recentActivity(actorID, limit)
}
func (t *memTx) BaselineVotesPerHour(now time.Time) (float64, error) {
	return t.s.baselineVotesPerHour(now)
}

type memSnapshot struct {
	actors   map[string]*models.Actor
	claims   map[string]*models.Claim
	votes    []*models.Vote
	evidence []*models.Evidence
	activity map[string]*models.ActionLog
}

func (s *Memory) snapshot() memSnapshot {
	snap := memSnapshot{
		actors:   make(map[string]*models.Actor, len(s.actors)),
		claims:   make(map[string]*models.Claim, len(s.claims)),
		votes:    make([]*models.Vote, len(s.votes)),
		evidence: make([]*models.Evidence, len(s.evidence)),
		activity: make(map[string]*models.ActionLog, len(s.activity)),
	}
	for id, a := range s.actors {
		c := *a
		snap.actors[id] = &c
	}
	for id, cl := range s.claims {
		c := *cl
		snap.claims[id] = &c
	}
	for i, v := range s.votes {
		c := *v
		snap.votes[i] = &c
	}
	for i, e := range s.evidence {
		c := *e
		snap.evidence[i] = &c
	}
	for id, log := range s.activity {
		copied := models.NewActionLog(models.ActionLogCap)
		for _, ev := range log.Events() {
			copied.Append(ev)
		}
		snap.activity[id] = copied
	}
	return snap
}

func (s *Memory) restore(snap memSnapshot) {
	s.actors = snap.actors
	s.claims = snap.claims
	s.votes = snap.votes
	s.evidence = snap.evidence
	s.activity = snap.activity
}

func (s *Memory) LoadClaim(claimID string) (*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadClaim(claimID)
}

func (s *Memory) loadClaim(claimID string) (*models.Claim, error) {
	claim, ok := s.claims[claimID]
	if !ok {
		return nil, ErrNotFound
	}
	c := *claim
	return &c, nil
}

func (s *Memory) SaveClaim(claim *models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveClaim(claim)
}

func (s *Memory) saveClaim(claim *models.Claim) error {
	c := *claim
	s.claims[claim.ClaimID] = &c
	return nil
}

func (s *Memory) ListClaims(limit, offset int) ([]models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listClaims(limit, offset)
}

func (s *Memory) listClaims(limit, offset int) ([]models.Claim, error) {
	all := make([]models.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].SubmittedAt.After(all[j].SubmittedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Memory) ListUnresolvedClaims() ([]models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listUnresolvedClaims()
}

func (s *Memory) listUnresolvedClaims() ([]models.Claim, error) {
	var out []models.Claim
	for _, c := range s.claims {
		if !c.Resolved {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func (s *Memory) LoadActor(actorID string) (*models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadActor(actorID)
}

func (s *Memory) loadActor(actorID string) (*models.Actor, error) {
	actor, ok := s.actors[actorID]
	if !ok {
		return nil, ErrNotFound
	}
	a := *actor
	return &a, nil
}

func (s *Memory) SaveActor(actor *models.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveActor(actor)
}

func (s *Memory) saveActor(actor *models.Actor) error {
	a := *actor
	s.actors[actor.ActorID] = &a
	return nil
}

func (s *Memory) ListActorsByReputation(limit, offset int) ([]models.Actor, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listActorsByReputation(limit, offset)
}

func (s *Memory) listActorsByReputation(limit, offset int) ([]models.Actor, int64, error) {
	all := make([]models.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Reputation != all[j].Reputation {
			return all[i].Reputation > all[j].Reputation
		}
		return all[i].AccurateVerifications > all[j].AccurateVerifications
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *Memory) VotesForClaim(claimID string) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votesForClaim(claimID)
}

func (s *Memory) votesForClaim(claimID string) ([]models.Vote, error) {
	var out []models.Vote
	for _, v := range s.votes {
		if v.ClaimID == claimID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CastAt.Before(out[j].CastAt) })
	return out, nil
}

func (s *Memory) VoteByClaimActor(claimID, actorID string) (*models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voteByClaimActor(claimID, actorID)
}

func (s *Memory) voteByClaimActor(claimID, actorID string) (*models.Vote, error) {
	for _, v := range s.votes {
		if v.ClaimID == claimID && v.ActorID == actorID {
			c := *v
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) AppendVote(vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendVote(vote)
}

func (s *Memory) appendVote(vote *models.Vote) error {
	v := *vote
	s.votes = append(s.votes, &v)
	return nil
}

func (s *Memory) SaveVote(vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveVote(vote)
}

func (s *Memory) saveVote(vote *models.Vote) error {
	for i, v := range s.votes {
		if v.VoteID == vote.VoteID {
			c := *vote
			s.votes[i] = &c
			return nil
		}
	}
	return ErrNotFound
}

func (s *Memory) EvidenceForClaim(claimID string) ([]models.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evidenceForClaim(claimID)
}

func (s *Memory) evidenceForClaim(claimID string) ([]models.Evidence, error) {
	var out []models.Evidence
	for _, e := range s.evidence {
		if e.ClaimID == claimID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s *Memory) AppendEvidence(ev *models.Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendEvidence(ev)
}

func (s *Memory) appendEvidence(ev *models.Evidence) error {
	e := *ev
	s.evidence = append(s.evidence, &e)
	return nil
}

func (s *Memory) AppendActivity(ev *models.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendActivity(ev)
}

func (s *Memory) appendActivity(ev *models.ActivityEvent) error {
	log, ok := s.activity[ev.ActorID]
	if !ok {
		log = models.NewActionLog(models.ActionLogCap)
		s.activity[ev.ActorID] = log
	}
	log.Append(*ev)
	return nil
}

func (s *Memory) RecentActivity(actorID string, limit int) (*models.ActionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recentActivity(actorID, limit)
}

func (s *Memory) recentActivity(actorID string, limit int) (*models.ActionLog, error) {
	if limit <= 0 || limit > models.ActionLogCap {
		limit = models.ActionLogCap
	}
	out := models.NewActionLog(limit)
	if log, ok := s.activity[actorID]; ok {
		events := log.Events()
		if len(events) > limit {
			events = events[len(events)-limit:]
		}
		for _, ev := range events {
			out.Append(ev)
		}
	}
	return out, nil
}

func (s *Memory) BaselineVotesPerHour(now time.Time) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baselineVotesPerHour(now)
}

func (s *Memory) baselineVotesPerHour(now time.Time) (float64, error) {
	if len(s.claims) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, c := range s.claims {
		hours := now.Sub(c.SubmittedAt).Hours()
		if hours < 1.0/60.0 {
			hours = 1.0 / 60.0
		}
		sum += float64(c.SupportCount+c.DisputeCount) / hours
	}
	return sum / float64(len(s.claims)), nil
}
