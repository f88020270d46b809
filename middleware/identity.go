package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

// HTTPError carries a status code alongside the message
type HTTPError struct {
	StatusCode int
	Message    string
}

// actorIDPattern constrains ids to something sane for headers, URLs and
// database keys.
var actorIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:-]{1,100}$`)

// ValidateActor extracts the caller's actor id. Identity is established
// upstream (the campus SSO gateway strips and re-adds the header), so the
// id arrives already authenticated; this only checks shape.
func ValidateActor(r *http.Request) (string, *HTTPError) {
	return ResolveActor(r, "")
}

// ResolveActor is ValidateActor with a body-supplied id as the final
// fallback: older clients still send userId in the POST payload instead
// of a header.
func ResolveActor(r *http.Request, bodyID string) (string, *HTTPError) {
	actorID := r.Header.Get("X-Actor-ID")

	// Fallback to Authorization with an "Actor" prefix
	if actorID == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Actor ") {
			actorID = strings.TrimPrefix(authHeader, "Actor ")
		}
	}
	if actorID == "" {
		actorID = bodyID
	}

	if actorID == "" {
		return "", &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Actor identity required. Use X-Actor-ID header, 'Actor <id>' in Authorization header, or userId in the body",
		}
	}
	if !actorIDPattern.MatchString(actorID) {
		return "", &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid actor id format",
		}
	}
	return actorID, nil
}
