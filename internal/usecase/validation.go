package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/propline/lead-service/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors carries every violated constraint so the caller gets the
// full list in one round trip.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func ValidateCreateLeadInput(input CreateLeadInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	if strings.TrimSpace(input.Source) == "" {
		errors = append(errors, ValidationError{"source", "is required"})
	}

	if input.Status != "" && !entity.LeadStatus(input.Status).Valid() {
		errors = append(errors, ValidationError{"status", "must be one of Unassigned, Assigned, Reserved, Sold"})
	}

	return errors
}

func ValidateRegisterInput(input RegisterInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	} else if len(input.Password) < 8 {
		errors = append(errors, ValidationError{"password", "must have at least 8 characters"})
	}

	if input.Role == "" {
		errors = append(errors, ValidationError{"role", "is required"})
	} else if !entity.Role(input.Role).Valid() {
		errors = append(errors, ValidationError{"role", "must be Admin or SalesAgent"})
	}

	return errors
}
