package actors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusverify/engine"
	"campusverify/models"
	"campusverify/notify"
	"campusverify/setup"
	"campusverify/store"
)

func TestLeaderboardEndpoint(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.SaveActor(&models.Actor{ActorID: "low", Reputation: 0.3}))
	require.NoError(t, mem.SaveActor(&models.Actor{ActorID: "high", Reputation: 0.8}))

	router := mux.NewRouter()
	router.HandleFunc("/api/leaderboard", LeaderboardHandler(mem)).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?pageSize=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Leaderboard []LeaderboardEntry `json:"leaderboard"`
		TotalActors int64              `json:"totalActors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 1)
	assert.Equal(t, "high", resp.Leaderboard[0].ActorID)
	assert.Equal(t, int64(1), resp.Leaderboard[0].Rank)
	assert.Equal(t, int64(2), resp.TotalActors)
}

func TestGetActorEndpoint(t *testing.T) {
	mem := store.NewMemory()
	eng := engine.New(mem, notify.Discard{}, setup.Defaults())
	require.NoError(t, mem.SaveActor(&models.Actor{
		ActorID: "alice", Balance: 990, Reputation: 0.5,
		Status: models.ActorStatusActive,
	}))

	router := mux.NewRouter()
	router.HandleFunc("/api/actors/{id}", GetActorHandler(mem, eng)).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/api/actors/alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Actor struct {
			ActorID string `json:"actorId"`
			Balance int64  `json:"balance"`
		} `json:"actor"`
		Behavior struct {
			Recommendation string `json:"recommendation"`
		} `json:"behavior"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Actor.ActorID)
	assert.Equal(t, int64(990), resp.Actor.Balance)
	assert.Equal(t, "none", resp.Behavior.Recommendation)

	req = httptest.NewRequest(http.MethodGet, "/api/actors/ghost", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
