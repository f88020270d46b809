package claims

import (
	"net/http"
	"strconv"

	"campusverify/handlers/api"
	"campusverify/models"
	"campusverify/store"
)

// ListClaimsHandler handles GET /api/rumors
func ListClaimsHandler(st store.Store) http.HandlerFunc {
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

		claims, err := st.ListClaims(pageSize, (page-1)*pageSize)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to fetch rumors")
			return
		}

		status := r.URL.Query().Get("status")
		out := make([]models.ClaimPublic, 0, len(claims))
		for _, c := range claims {
			if status != "" && string(c.Status) != status {
				continue
			}
			public := c.ToPublic()
			public.ContentHTML = renderContent(c.Content)
			out = append(out, public)
		}

		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"rumors":   out,
			"count":    len(out),
			"page":     page,
			"pageSize": pageSize,
		})
	}
}
