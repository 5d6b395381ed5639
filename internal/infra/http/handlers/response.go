package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propline/lead-service/internal/usecase"
)

var statusByCode = map[string]int{
	usecase.CodeValidation:         http.StatusBadRequest,
	usecase.CodeEmailTaken:         http.StatusBadRequest,
	usecase.CodeInvalidTransition:  http.StatusBadRequest,
	usecase.CodeInvalidStage:       http.StatusBadRequest,
	usecase.CodeInvalidCredentials: http.StatusUnauthorized,
	usecase.CodeForbidden:          http.StatusForbidden,
	usecase.CodeNotFound:           http.StatusNotFound,
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError is the single outermost error boundary: anything that is not
// a recognized domain error surfaces as a 500 with the underlying message.
func respondError(w http.ResponseWriter, err error) {
	var validationErrs usecase.ValidationErrors
	if errors.As(err, &validationErrs) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": validationErrs})
		return
	}

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		respondJSON(w, status, map[string]string{"message": domainErr.Message})
		return
	}

	respondJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
}
