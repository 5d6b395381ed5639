package usecase

import (
	"context"

	"github.com/propline/lead-service/internal/entity"
	"github.com/propline/lead-service/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id int64) (*entity.Lead, error)

	// Assign is a conditional write matched on id + Unassigned status and
	// reports how many rows it touched. Zero means the lead does not exist
	// or was already taken; the two are deliberately indistinguishable.
	Assign(ctx context.Context, id, agentID int64) (int64, error)

	// UpdateStatus only applies when the row still holds the expected
	// current status, mirroring Assign's rows-affected contract.
	UpdateStatus(ctx context.Context, id int64, current, next entity.LeadStatus) (int64, error)

	// DeleteInStatus removes the row only while it holds the given status.
	DeleteInStatus(ctx context.Context, id int64, status entity.LeadStatus) (int64, error)

	List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error)
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type EventProducerInterface interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
}

type TokenIssuerInterface interface {
	Issue(userID int64, role entity.Role) (string, error)
}
