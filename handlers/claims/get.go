package claims

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusverify/handlers/api"
	"campusverify/models"
	"campusverify/store"
)

// GetClaimHandler handles GET /api/rumors/{id}
func GetClaimHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claimID := mux.Vars(r)["id"]

		claim, err := st.LoadClaim(claimID)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}

		votes, err := st.VotesForClaim(claimID)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to fetch votes")
			return
		}
		evidence, err := st.EvidenceForClaim(claimID)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to fetch evidence")
			return
		}

		publicVotes := make([]models.VotePublic, len(votes))
		for i, v := range votes {
			publicVotes[i] = v.ToPublic()
		}

		public := claim.ToPublic()
		public.ContentHTML = renderContent(claim.Content)
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"rumor":    public,
			"votes":    publicVotes,
			"evidence": evidence,
		})
	}
}
