package votes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func newRouter(t *testing.T) (*mux.Router, *models.Claim, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	eng := engine.New(mem, notify.Discard{}, setup.Defaults())

	claim, err := eng.SubmitClaim(engine.SubmitRequest{
		ActorID: "submitter",
		Content: "the cafeteria is switching coffee suppliers next month",
		Stake:   10,
	})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/api/verifications", CastVoteHandler(eng)).Methods("POST")
	r.HandleFunc("/api/verifications/{rumorId}", ListVotesHandler(mem)).Methods("GET")
	return r, claim, mem
}

func castVote(router *mux.Router, actorID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/verifications", strings.NewReader(body))
	req.Header.Set("X-Actor-ID", actorID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCastVoteEndpoint(t *testing.T) {
	router, claim, _ := newRouter(t)

	rec := castVote(router, "bob",
		`{"rumorId":"`+claim.ClaimID+`","voteType":"support","stake":5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success      bool `json:"success"`
		Verification struct {
			VoteID string  `json:"voteId"`
			Weight float64 `json:"weight"`
		} `json:"verification"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Verification.VoteID)
	assert.InDelta(t, 0.75, resp.Verification.Weight, 1e-9)
}

func TestCastVoteBodyUserIDFallback(t *testing.T) {
	router, claim, mem := newRouter(t)

	body := `{"rumorId":"` + claim.ClaimID + `","voteType":"support","stake":5,"userId":"dana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/verifications", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	dana, err := mem.LoadActor("dana")
	require.NoError(t, err)
	assert.Equal(t, int64(995), dana.Balance)
}

func TestCastVoteDuplicateConflicts(t *testing.T) {
	router, claim, _ := newRouter(t)
	body := `{"rumorId":"` + claim.ClaimID + `","voteType":"support","stake":5}`

	require.Equal(t, http.StatusCreated, castVote(router, "bob", body).Code)
	assert.Equal(t, http.StatusConflict, castVote(router, "bob", body).Code)
}

func TestCastVoteValidation(t *testing.T) {
	router, claim, _ := newRouter(t)
	cases := []struct {
		name string
		body string
		want int
	}{
		{"bad vote type", `{"rumorId":"` + claim.ClaimID + `","voteType":"maybe","stake":5}`, http.StatusBadRequest},
		{"missing rumor", `{"voteType":"support","stake":5}`, http.StatusBadRequest},
		{"unknown rumor", `{"rumorId":"nope","voteType":"support","stake":5}`, http.StatusNotFound},
		{"stake above band", `{"rumorId":"` + claim.ClaimID + `","voteType":"support","stake":999}`, http.StatusBadRequest},
		{"own claim", `{"rumorId":"` + claim.ClaimID + `","voteType":"support","stake":5}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actor := "carol"
			if tc.name == "own claim" {
				actor = "submitter"
			}
			assert.Equal(t, tc.want, castVote(router, actor, tc.body).Code)
		})
	}
}

func TestListVotesEndpoint(t *testing.T) {
	router, claim, _ := newRouter(t)

	require.Equal(t, http.StatusCreated, castVote(router, "bob",
		`{"rumorId":"`+claim.ClaimID+`","voteType":"support","stake":5}`).Code)
	require.Equal(t, http.StatusCreated, castVote(router, "carol",
		`{"rumorId":"`+claim.ClaimID+`","voteType":"dispute","stake":3}`).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/verifications/"+claim.ClaimID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SupportCount  int64 `json:"supportCount"`
		DisputeCount  int64 `json:"disputeCount"`
		Verifications []struct {
			ActorID string `json:"actorId"`
		} `json:"verifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.SupportCount)
	assert.Equal(t, int64(1), resp.DisputeCount)
	assert.Len(t, resp.Verifications, 2)
}
