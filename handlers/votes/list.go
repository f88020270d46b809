package votes

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusverify/handlers/api"
	"campusverify/models"
	"campusverify/store"
)

// ListVotesHandler handles GET /api/verifications/{rumorId}
func ListVotesHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claimID := mux.Vars(r)["rumorId"]

		if _, err := st.LoadClaim(claimID); err != nil {
			api.WriteEngineError(w, err)
			return
		}

		votes, err := st.VotesForClaim(claimID)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to fetch verifications")
			return
		}

		out := make([]models.VotePublic, len(votes))
		var supports, disputes int64
		for i, v := range votes {
			out[i] = v.ToPublic()
			if v.Direction == models.VoteSupport {
				supports++
			} else {
				disputes++
			}
		}

		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"rumorId":       claimID,
			"verifications": out,
			"supportCount":  supports,
			"disputeCount":  disputes,
		})
	}
}
