package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Field validation details
	Errors  []string          `json:"errors,omitempty"`  // Ordered record rule violations
}

// ValidationHelper provides shared request validation functionality.
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper.
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a request struct and returns validation errors.
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendErrorResponse sends a JSON error response, optionally attaching
// field details from a validator error.
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(validationErr, &fieldErrs) {
			errorResp.Details = make(map[string]string)
			for _, err := range fieldErrs {
				errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
			}
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}

// SendJSON writes a JSON body with the given status.
func SendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// SendValidationFailure returns a record's ordered rule violations.
func SendValidationFailure(w http.ResponseWriter, result models.ValidationResult) {
	SendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Errors: result.Errors})
}

// SendStoreError maps dataset errors to HTTP responses. Record rule
// violations come back as the full ordered message list; referential
// failures map to 404/409; anything else is a generic 500, since it
// indicates a caller invariant violation rather than user input.
func SendStoreError(w http.ResponseWriter, err error) {
	var vErr *store.ValidationError
	switch {
	case errors.As(err, &vErr):
		SendValidationFailure(w, vErr.Result)
	case errors.Is(err, store.ErrAccountNotFound), errors.Is(err, store.ErrNotFound):
		SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, store.ErrAccountInUse):
		SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, store.ErrDatasetCap):
		SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, models.ErrNegativeContribution), errors.Is(err, models.ErrNegativeAmount):
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	default:
		SendErrorResponse(w, "Operation failed", http.StatusInternalServerError, nil)
	}
}
