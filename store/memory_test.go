package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusverify/models"
)

var testBase = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMemoryTxRollback(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SaveActor(&models.Actor{ActorID: "alice", Balance: 100}))

	boom := errors.New("boom")
	err := m.Tx(func(st Store) error {
		actor, err := st.LoadActor("alice")
		require.NoError(t, err)
		actor.Balance = 0
		require.NoError(t, st.SaveActor(actor))
		require.NoError(t, st.SaveClaim(&models.Claim{ClaimID: "c1", SubmittedAt: testBase}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	actor, err := m.LoadActor("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), actor.Balance, "failed tx must restore prior state")

	_, err = m.LoadClaim("c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTxCommit(t *testing.T) {
	m := NewMemory()
	err := m.Tx(func(st Store) error {
		return st.SaveClaim(&models.Claim{ClaimID: "c1", SubmittedAt: testBase})
	})
	require.NoError(t, err)

	claim, err := m.LoadClaim("c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", claim.ClaimID)
}

func TestMemoryTxExcludesConcurrentReads(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SaveActor(&models.Actor{ActorID: "acct"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				err := m.Tx(func(st Store) error {
					actor, err := st.LoadActor("acct")
					if err != nil {
						return err
					}
					actor.Balance++
					return st.SaveActor(actor)
				})
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := m.LoadActor("acct")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	actor, err := m.LoadActor("acct")
	require.NoError(t, err)
	assert.Equal(t, int64(400), actor.Balance, "every increment must survive concurrent reads")
}

func TestMemoryCopiesOnReadAndWrite(t *testing.T) {
	m := NewMemory()
	original := &models.Claim{ClaimID: "c1", TrustScore: 40, SubmittedAt: testBase}
	require.NoError(t, m.SaveClaim(original))

	// Mutating the caller's struct after save must not leak in.
	original.TrustScore = 99
	loaded, err := m.LoadClaim("c1")
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.TrustScore)

	// Mutating a loaded struct must not leak back.
	loaded.TrustScore = 7
	again, err := m.LoadClaim("c1")
	require.NoError(t, err)
	assert.Equal(t, 40, again.TrustScore)
}

func TestMemoryVoteLookups(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.AppendVote(&models.Vote{
		VoteID: "v1", ClaimID: "c1", ActorID: "alice",
		Direction: models.VoteSupport, CastAt: testBase.Add(time.Minute),
	}))
	require.NoError(t, m.AppendVote(&models.Vote{
		VoteID: "v2", ClaimID: "c1", ActorID: "bob",
		Direction: models.VoteDispute, CastAt: testBase,
	}))
	require.NoError(t, m.AppendVote(&models.Vote{
		VoteID: "v3", ClaimID: "c2", ActorID: "alice",
		Direction: models.VoteSupport, CastAt: testBase,
	}))

	votes, err := m.VotesForClaim("c1")
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, "v2", votes[0].VoteID, "votes come back in cast order")

	vote, err := m.VoteByClaimActor("c1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "v1", vote.VoteID)

	_, err = m.VoteByClaimActor("c2", "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	correct := true
	vote.WasCorrect = &correct
	require.NoError(t, m.SaveVote(vote))
	updated, err := m.VoteByClaimActor("c1", "alice")
	require.NoError(t, err)
	require.NotNil(t, updated.WasCorrect)
	assert.True(t, *updated.WasCorrect)
}

func TestMemoryActivityCap(t *testing.T) {
	m := NewMemory()
	for i := 0; i < models.ActionLogCap+10; i++ {
		require.NoError(t, m.AppendActivity(&models.ActivityEvent{
			ActorID:    "alice",
			Action:     models.ActionVote,
			OccurredAt: testBase.Add(time.Duration(i) * time.Minute),
		}))
	}

	log, err := m.RecentActivity("alice", 0)
	require.NoError(t, err)
	assert.Equal(t, models.ActionLogCap, log.Len())

	events := log.Events()
	// Oldest entries were evicted; the window starts at minute 10.
	assert.Equal(t, testBase.Add(10*time.Minute), events[0].OccurredAt)
	assert.Equal(t, testBase.Add(time.Duration(models.ActionLogCap+9)*time.Minute),
		events[len(events)-1].OccurredAt)

	short, err := m.RecentActivity("alice", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, short.Len())
}

func TestMemoryListActorsByReputation(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SaveActor(&models.Actor{ActorID: "low", Reputation: 0.2}))
	require.NoError(t, m.SaveActor(&models.Actor{ActorID: "high", Reputation: 0.9}))
	require.NoError(t, m.SaveActor(&models.Actor{ActorID: "tie-a", Reputation: 0.5, AccurateVerifications: 3}))
	require.NoError(t, m.SaveActor(&models.Actor{ActorID: "tie-b", Reputation: 0.5, AccurateVerifications: 7}))

	actors, total, err := m.ListActorsByReputation(3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, actors, 3)
	assert.Equal(t, "high", actors[0].ActorID)
	assert.Equal(t, "tie-b", actors[1].ActorID, "ties break on accurate verifications")
	assert.Equal(t, "tie-a", actors[2].ActorID)

	rest, _, err := m.ListActorsByReputation(3, 3)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "low", rest[0].ActorID)
}

func TestMemoryBaselineVotesPerHour(t *testing.T) {
	m := NewMemory()

	rate, err := m.BaselineVotesPerHour(testBase)
	require.NoError(t, err)
	assert.Zero(t, rate, "no claims yet means no baseline")

	require.NoError(t, m.SaveClaim(&models.Claim{
		ClaimID: "c1", SupportCount: 6, DisputeCount: 2,
		SubmittedAt: testBase.Add(-2 * time.Hour),
	}))
	require.NoError(t, m.SaveClaim(&models.Claim{
		ClaimID: "c2", SupportCount: 2,
		SubmittedAt: testBase.Add(-time.Hour),
	}))

	rate, err = m.BaselineVotesPerHour(testBase)
	require.NoError(t, err)
	// (8/2 + 2/1) / 2 claims
	assert.InDelta(t, 3.0, rate, 1e-9)
}

func TestMemoryListClaims(t *testing.T) {
	m := NewMemory()
	for i, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, m.SaveClaim(&models.Claim{
			ClaimID:     id,
			Resolved:    id == "c2",
			SubmittedAt: testBase.Add(time.Duration(i) * time.Hour),
		}))
	}

	claims, err := m.ListClaims(2, 0)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, "c3", claims[0].ClaimID, "newest first")

	open, err := m.ListUnresolvedClaims()
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "c1", open[0].ClaimID, "oldest first for the sweeper")
}
