package services

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/middleware"
)

// SessionService unlocks the API with the configured PIN and hands out
// session tokens. When no PIN hash is configured the unlock endpoint
// still answers, so the UI flow is identical either way.
type SessionService struct {
	pinHash  string
	auth     *middleware.SessionAuth
	validity time.Duration
	vh       *ValidationHelper
	log      zerolog.Logger
}

// NewSessionService creates the session service.
func NewSessionService(pinHash string, auth *middleware.SessionAuth, validity time.Duration, log zerolog.Logger) *SessionService {
	return &SessionService{
		pinHash:  pinHash,
		auth:     auth,
		validity: validity,
		vh:       NewValidationHelper(),
		log:      log.With().Str("service", "session").Logger(),
	}
}

type unlockRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=12"`
}

// Unlock handles POST /session/unlock. A correct PIN yields a bearer
// token for the protected API group.
func (ss *SessionService) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := ss.vh.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if ss.pinHash == "" {
		SendJSON(w, http.StatusOK, map[string]string{"token": ""})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ss.pinHash), []byte(req.PIN)); err != nil {
		ss.log.Warn().Msg("failed unlock attempt")
		SendErrorResponse(w, "Incorrect PIN", http.StatusUnauthorized, nil)
		return
	}

	token, err := ss.auth.IssueToken(ss.validity)
	if err != nil {
		SendErrorResponse(w, "Could not create session", http.StatusInternalServerError, nil)
		return
	}
	SendJSON(w, http.StatusOK, map[string]string{"token": token})
}
