package adminhandlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusverify/engine"
	"campusverify/handlers/api"
)

// SweepHandler handles POST /api/admin/sweep. It resolves every claim
// whose resolution window has passed; normally run from a timer, exposed
// for operators.
func SweepHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolved, err := eng.Sweep()
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Sweep failed")
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"resolved": resolved,
		})
	}
}

// SuspendActorHandler handles POST /api/admin/actors/{id}/suspend
func SuspendActorHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := mux.Vars(r)["id"]
		actor, err := eng.SuspendActor(actorID)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"actor":   actor.ToPublic(),
		})
	}
}

// ReinstateActorHandler handles POST /api/admin/actors/{id}/reinstate
func ReinstateActorHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := mux.Vars(r)["id"]
		actor, err := eng.ReinstateActor(actorID)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"actor":   actor.ToPublic(),
		})
	}
}
