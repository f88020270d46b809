package actors

import (
	"net/http"
	"strconv"

	"campusverify/handlers/api"
	"campusverify/models"
)

// LeaderboardEntry is one row of the reputation leaderboard
type LeaderboardEntry struct {
	Rank                  int64   `json:"rank"`
	ActorID               string  `json:"actorId"`
	Reputation            float64 `json:"reputation"`
	AccurateVerifications int64   `json:"accurateVerifications"`
	TotalSubmissions      int64   `json:"totalSubmissions"`
	Balance               int64   `json:"balance"`
}

// leaderboardStore is the slice of the store the leaderboard needs.
type leaderboardStore interface {
	ListActorsByReputation(limit, offset int) ([]models.Actor, int64, error)
}

// LeaderboardHandler handles GET /api/leaderboard
func LeaderboardHandler(st leaderboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
				page = parsed
			}
		}
		pageSize := 50
		if ps := r.URL.Query().Get("pageSize"); ps != "" {
			if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
				pageSize = parsed
			}
		}

		offset := (page - 1) * pageSize
		actors, total, err := st.ListActorsByReputation(pageSize, offset)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
			return
		}

		entries := make([]LeaderboardEntry, len(actors))
		for i, a := range actors {
			entries[i] = LeaderboardEntry{
				Rank:                  int64(offset + i + 1),
				ActorID:               a.ActorID,
				Reputation:            a.Reputation,
				AccurateVerifications: a.AccurateVerifications,
				TotalSubmissions:      a.TotalSubmissions,
				Balance:               a.Balance,
			}
		}

		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"leaderboard": entries,
			"totalActors": total,
			"page":        page,
			"pageSize":    pageSize,
		})
	}
}
