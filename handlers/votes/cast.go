package votes

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

// CastVoteRequest is the request body for casting a verification vote
type CastVoteRequest struct {
	RumorID  string `json:"rumorId" validate:"required"`
	VoteType string `json:"voteType" validate:"required,oneof=support dispute"`
	Stake    int64  `json:"stake" validate:"required,gt=0"`

	// Identity fallback for clients that send it in the body instead of
	// the X-Actor-ID header.
	UserID string `json:"userId" validate:"omitempty,max=100"`

	// Optional evidence attached with the vote
	EvidenceType        string  `json:"evidenceType" validate:"omitempty,oneof=documentary video photo link testimony"`
	EvidenceQuality     float64 `json:"evidenceQuality" validate:"omitempty,gte=0,lte=1"`
	EvidenceDescription string  `json:"evidenceDescription" validate:"omitempty,max=1000"`
}

// CastVoteHandler handles POST /api/verifications
func CastVoteHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CastVoteRequest
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

		cast := engine.VoteRequest{
			ActorID:   actorID,
			ClaimID:   req.RumorID,
			Direction: models.VoteDirection(req.VoteType),
			Stake:     req.Stake,
		}
		if req.EvidenceType != "" {
			cast.Evidence = &engine.EvidenceInput{
				Type:        models.EvidenceType(req.EvidenceType),
				Quality:     req.EvidenceQuality,
				Description: req.EvidenceDescription,
			}
		}

		vote, err := eng.CastVote(cast)
		if err != nil {
			api.WriteEngineError(w, err)
			return
		}

		api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"success":      true,
			"verification": vote.ToPublic(),
		})
	}
}
