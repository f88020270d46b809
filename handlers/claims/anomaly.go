package claims

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusverify/engine"
	"campusverify/handlers/api"
)

// ClaimAnomalyHandler handles GET /api/rumors/{id}/anomaly
func ClaimAnomalyHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claimID := mux.Vars(r)["id"]

		verdict, err := eng.ClaimAnomaly(claimID)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"rumorId":  claimID,
			"analysis": verdict,
		})
	}
}
