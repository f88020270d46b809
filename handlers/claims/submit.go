package claims

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"campusverify/engine"
	"campusverify/handlers/api"
	"campusverify/middleware"
	"campusverify/models"
)

var validate = validator.New()

// SubmitClaimRequest is the request body for submitting a claim
type SubmitClaimRequest struct {
	Content     string `json:"content" validate:"required,min=10,max=2000"`
	Category    string `json:"category" validate:"omitempty,oneof=event food social academic policy facility tech general"`
	StakeAmount int64  `json:"stakeAmount" validate:"required,gt=0"`

	// Identity fallback for clients that send it in the body instead of
	// the X-Actor-ID header.
	UserID string `json:"userId" validate:"omitempty,max=100"`

	// Optional evidence attached at submission
	EvidenceType        string  `json:"evidenceType" validate:"omitempty,oneof=documentary video photo link testimony"`
	EvidenceQuality     float64 `json:"evidenceQuality" validate:"omitempty,gte=0,lte=1"`
	EvidenceDescription string  `json:"evidenceDescription" validate:"omitempty,max=1000"`
}

// SubmitClaimHandler handles POST /api/rumors
func SubmitClaimHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitClaimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			api.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		actorID, httpErr := middleware.ResolveActor(r, req.UserID)
		if httpErr != nil {
			api.WriteError(w, httpErr.StatusCode, httpErr.Message)
			return
		}

		submit := engine.SubmitRequest{
			ActorID:  actorID,
			Content:  req.Content,
			Category: models.Category(req.Category),
			Stake:    req.StakeAmount,
		}
		if req.EvidenceType != "" {
			submit.Evidence = &engine.EvidenceInput{
				Type:        models.EvidenceType(req.EvidenceType),
				Quality:     req.EvidenceQuality,
				Description: req.EvidenceDescription,
			}
		}

		claim, err := eng.SubmitClaim(submit)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}

		public := claim.ToPublic()
		public.ContentHTML = renderContent(claim.Content)
		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"rumor":   public,
		})
	}
}
