package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/propline/lead-service/internal/entity"
	"github.com/propline/lead-service/internal/infra/http/middleware"
	"github.com/propline/lead-service/internal/usecase"
)

type LeadHandler struct {
	UC *usecase.LeadUseCase
}

func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{UC: uc}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON: " + err.Error()})
		return
	}

	lead, err := h.UC.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	respondJSON(w, http.StatusCreated, lead)
}

type assignRequest struct {
	AssignedAgentID int64 `json:"assignedAgentId"`
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON: " + err.Error()})
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing or invalid token"})
		return
	}

	if err := h.UC.Assign(r.Context(), id, req.AssignedAgentID, entity.Role(claims.Role)); err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadAssigned()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lead assigned"})
}

type progressRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON: " + err.Error()})
		return
	}

	lead, err := h.UC.Progress(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadTransition(string(lead.Status))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Lead updated",
		"lead":    lead,
	})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *LeadHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON: " + err.Error()})
		return
	}

	if err := h.UC.Cancel(r.Context(), id, req.Reason); err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadCancelled()
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Lead cancelled",
		"reason":  req.Reason,
	})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLeadFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	leads, err := h.UC.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, leads)
}

func leadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid lead id"})
		return 0, false
	}
	return id, true
}

func parseLeadFilter(r *http.Request) (entity.LeadFilter, error) {
	var (
		filter entity.LeadFilter
		errs   usecase.ValidationErrors
	)
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := entity.LeadStatus(v)
		if !status.Valid() {
			errs = append(errs, usecase.ValidationError{Field: "status", Message: "is not a known status"})
		} else {
			filter.Status = &status
		}
	}

	if v := q.Get("assignedAgentId"); v != "" {
		agentID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, usecase.ValidationError{Field: "assignedAgentId", Message: "must be an integer"})
		} else {
			filter.AssignedAgentID = &agentID
		}
	}

	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			errs = append(errs, usecase.ValidationError{Field: "startDate", Message: "must be a valid date"})
		} else {
			filter.StartDate = &t
		}
	}

	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			errs = append(errs, usecase.ValidationError{Field: "endDate", Message: "must be a valid date"})
		} else {
			filter.EndDate = &t
		}
	}

	if len(errs) > 0 {
		return entity.LeadFilter{}, errs
	}
	return filter, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
