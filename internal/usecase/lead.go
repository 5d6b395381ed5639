package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/propline/lead-service/internal/entity"
	"github.com/propline/lead-service/internal/infra/queue"
)

type LeadUseCase struct {
	Leads  LeadRepositoryInterface
	Users  UserRepositoryInterface
	Events EventProducerInterface
	Logger *slog.Logger
}

func NewLeadUseCase(
	leads LeadRepositoryInterface,
	users UserRepositoryInterface,
	events EventProducerInterface,
	logger *slog.Logger,
) *LeadUseCase {
	return &LeadUseCase{
		Leads:  leads,
		Users:  users,
		Events: events,
		Logger: logger,
	}
}

type CreateLeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
	Status string `json:"status,omitempty"`
}

func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	// Callers may seed an explicit pipeline stage (imports from other CRMs
	// arrive mid-pipeline); anything outside the enumerated set was already
	// rejected by validation.
	status := entity.LeadStatus(input.Status)
	if input.Status == "" {
		status = entity.StatusUnassigned
	}

	now := time.Now()
	lead := &entity.Lead{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Source:    input.Source,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	return lead, nil
}

func (uc *LeadUseCase) Assign(ctx context.Context, id, agentID int64, callerRole entity.Role) error {
	if callerRole != entity.RoleAdmin {
		return &DomainError{Code: CodeForbidden, Message: "Forbidden"}
	}

	agent, err := uc.Users.FindByID(ctx, agentID)
	if errors.Is(err, sql.ErrNoRows) {
		return ValidationErrors{{Field: "assignedAgentId", Message: "must reference an existing user"}}
	}
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if agent.Role != entity.RoleSalesAgent {
		return ValidationErrors{{Field: "assignedAgentId", Message: "must reference a SalesAgent"}}
	}

	rows, err := uc.Leads.Assign(ctx, id, agentID)
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if rows == 0 {
		return &DomainError{Code: CodeNotFound, Message: "Lead not found or already assigned"}
	}

	event := queue.LeadEvent{
		Event:      queue.EventLeadAssigned,
		LeadID:     id,
		AgentID:    agent.ID,
		AgentName:  agent.Name,
		AgentEmail: agent.Email,
	}
	if lead, err := uc.Leads.FindByID(ctx, id); err == nil {
		event.LeadName = lead.Name
	}
	uc.publish(ctx, event)

	return nil
}

func (uc *LeadUseCase) Progress(ctx context.Context, id int64, newStatus string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &DomainError{Code: CodeNotFound, Message: "Lead not found"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}

	next := entity.LeadStatus(newStatus)
	if !lead.Status.CanTransitionTo(next) {
		return nil, &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("Invalid status transition from %s to %s", lead.Status, newStatus),
		}
	}

	// Conditional write matched on the status we just read, so a concurrent
	// progression cannot double-apply.
	rows, err := uc.Leads.UpdateStatus(ctx, id, lead.Status, next)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if rows == 0 {
		return nil, &DomainError{Code: CodeNotFound, Message: "Lead not found"}
	}

	lead.Status = next
	lead.UpdatedAt = time.Now()
	return lead, nil
}

func (uc *LeadUseCase) Cancel(ctx context.Context, id int64, reason string) error {
	lead, err := uc.Leads.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return &DomainError{Code: CodeNotFound, Message: "Lead not found"}
	}
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}

	if lead.Status != entity.StatusReserved {
		return &DomainError{
			Code:    CodeInvalidStage,
			Message: "Cancellation allowed only in reservation stage",
		}
	}

	uc.Logger.Info("lead cancelled",
		slog.String("event", "lead_cancelled"),
		slog.Int64("lead_id", id),
		slog.String("reason", reason),
	)

	uc.publish(ctx, queue.LeadEvent{
		Event:    queue.EventLeadCancelled,
		LeadID:   id,
		LeadName: lead.Name,
		Reason:   reason,
	})

	rows, err := uc.Leads.DeleteInStatus(ctx, id, entity.StatusReserved)
	if err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: err.Error()}
	}
	if rows == 0 {
		return &DomainError{Code: CodeNotFound, Message: "Lead not found"}
	}

	return nil
}

func (uc *LeadUseCase) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	leads, err := uc.Leads.List(ctx, filter)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to list leads: " + err.Error(),
		}
	}
	return leads, nil
}

// publish is best effort: a broker outage must not fail the write that
// already happened.
func (uc *LeadUseCase) publish(ctx context.Context, event queue.LeadEvent) {
	if uc.Events == nil {
		return
	}
	if err := uc.Events.PublishLeadEvent(ctx, event); err != nil {
		uc.Logger.Warn("failed to publish lead event",
			slog.String("event", event.Event),
			slog.Int64("lead_id", event.LeadID),
			slog.String("error", err.Error()),
		)
	}
}
