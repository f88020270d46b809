package store

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusverify/models"
)

func newTestDB(t *testing.T) *Gorm {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Actor{}, &models.Claim{}, &models.Vote{},
		&models.Evidence{}, &models.ActivityEvent{},
	))
	return NewGorm(db)
}

func TestGormClaimRoundTrip(t *testing.T) {
	s := newTestDB(t)

	claim := &models.Claim{
		ClaimID: "c1", SubmitterID: "alice",
		Content: "the shuttle adds a late-night route",
		Category: models.CategoryGeneral, StakeAmount: 10,
		Status: models.ClaimStatusPending, TrustStatus: "unverified",
		SubmittedAt: testBase,
	}
	require.NoError(t, s.SaveClaim(claim))

	loaded, err := s.LoadClaim("c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.SubmitterID)
	assert.Equal(t, models.ClaimStatusPending, loaded.Status)

	loaded.TrustScore = 55
	require.NoError(t, s.SaveClaim(loaded))
	again, err := s.LoadClaim("c1")
	require.NoError(t, err)
	assert.Equal(t, 55, again.TrustScore)

	_, err = s.LoadClaim("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormVoteUniquePerClaimActor(t *testing.T) {
	s := newTestDB(t)

	require.NoError(t, s.AppendVote(&models.Vote{
		VoteID: "v1", ClaimID: "c1", ActorID: "alice",
		Direction: models.VoteSupport, Stake: 5, Weight: 1, CastAt: testBase,
	}))

	// Same actor, same claim: the unique index must refuse the row.
	err := s.AppendVote(&models.Vote{
		VoteID: "v2", ClaimID: "c1", ActorID: "alice",
		Direction: models.VoteDispute, Stake: 5, Weight: 1, CastAt: testBase,
	})
	assert.Error(t, err)

	// Same actor on a different claim is fine.
	require.NoError(t, s.AppendVote(&models.Vote{
		VoteID: "v3", ClaimID: "c2", ActorID: "alice",
		Direction: models.VoteSupport, Stake: 5, Weight: 1, CastAt: testBase,
	}))
}

func TestGormTxRollback(t *testing.T) {
	s := newTestDB(t)
	require.NoError(t, s.SaveActor(&models.Actor{ActorID: "alice", Balance: 100}))

	err := s.Tx(func(st Store) error {
		actor, err := st.LoadActor("alice")
		if err != nil {
			return err
		}
		actor.Balance = 0
		if err := st.SaveActor(actor); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	actor, err := s.LoadActor("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), actor.Balance)
}

func TestGormActivityEviction(t *testing.T) {
	s := newTestDB(t)

	for i := 0; i < models.ActionLogCap+7; i++ {
		require.NoError(t, s.AppendActivity(&models.ActivityEvent{
			ActorID:    "alice",
			Action:     models.ActionVote,
			OccurredAt: testBase.Add(time.Duration(i) * time.Minute),
		}))
	}

	log, err := s.RecentActivity("alice", 0)
	require.NoError(t, err)
	assert.Equal(t, models.ActionLogCap, log.Len())

	events := log.Events()
	assert.Equal(t, testBase.Add(7*time.Minute), events[0].OccurredAt.UTC())
	assert.True(t, events[0].OccurredAt.Before(events[len(events)-1].OccurredAt),
		"events come back oldest first")
}

func TestGormVotesForClaimOrder(t *testing.T) {
	s := newTestDB(t)
	require.NoError(t, s.AppendVote(&models.Vote{
		VoteID: "v-late", ClaimID: "c1", ActorID: "bob",
		Direction: models.VoteSupport, Stake: 5, Weight: 1,
		CastAt: testBase.Add(time.Hour),
	}))
	require.NoError(t, s.AppendVote(&models.Vote{
		VoteID: "v-early", ClaimID: "c1", ActorID: "alice",
		Direction: models.VoteDispute, Stake: 5, Weight: 1, CastAt: testBase,
	}))

	votes, err := s.VotesForClaim("c1")
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, "v-early", votes[0].VoteID)
}

func TestGormBaselineVotesPerHour(t *testing.T) {
	s := newTestDB(t)

	rate, err := s.BaselineVotesPerHour(testBase)
	require.NoError(t, err)
	assert.Zero(t, rate)

	require.NoError(t, s.SaveClaim(&models.Claim{
		ClaimID: "c1", SubmitterID: "a", Content: "x", StakeAmount: 5,
		Status: models.ClaimStatusPending, SupportCount: 4,
		SubmittedAt: testBase.Add(-time.Hour),
	}))

	rate, err = s.BaselineVotesPerHour(testBase)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, rate, 0.01)
}
