package actors

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusverify/engine"
	"campusverify/handlers/api"
	"campusverify/store"
)

// GetActorHandler handles GET /api/actors/{id}
func GetActorHandler(st store.Store, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := mux.Vars(r)["id"]

		actor, err := st.LoadActor(actorID)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}

		behavior, err := eng.ActorBehavior(actorID)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to analyze behavior")
			return
		}

		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"actor":    actor.ToPublic(),
			"behavior": behavior,
		})
	}
}
