package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/propline/lead-service/internal/usecase"
)

type UserHandler struct {
	UC *usecase.AuthUseCase
}

func NewUserHandler(uc *usecase.AuthUseCase) *UserHandler {
	return &UserHandler{UC: uc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON: " + err.Error()})
		return
	}

	user, err := h.UC.Register(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON: " + err.Error()})
		return
	}

	token, err := h.UC.Login(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
