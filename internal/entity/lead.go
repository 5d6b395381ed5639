package entity

import (
	"time"
)

type LeadStatus string

const (
	StatusUnassigned LeadStatus = "Unassigned"
	StatusAssigned   LeadStatus = "Assigned"
	StatusReserved   LeadStatus = "Reserved"
	StatusSold       LeadStatus = "Sold"
)

// allowedTransitions is the sales pipeline: a lead only ever moves forward,
// one stage at a time. Sold has no outgoing transitions.
var allowedTransitions = map[LeadStatus][]LeadStatus{
	StatusUnassigned: {StatusAssigned},
	StatusAssigned:   {StatusReserved},
	StatusReserved:   {StatusSold},
}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusUnassigned, StatusAssigned, StatusReserved, StatusSold:
		return true
	}
	return false
}

func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Lead struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Source          string     `json:"source"`
	Status          LeadStatus `json:"status"`
	AssignedAgentID *int64     `json:"assignedAgentId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// LeadFilter narrows a listing; nil fields are not applied. Date bounds are
// inclusive on both ends.
type LeadFilter struct {
	Status          *LeadStatus
	AssignedAgentID *int64
	StartDate       *time.Time
	EndDate         *time.Time
}
