package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/propline/lead-service/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = "id, name, email, phone, source, status, assigned_agent_id, created_at, updated_at"

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone, source, status, assigned_agent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Source,
		lead.Status,
		lead.AssignedAgentID,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := "SELECT " + leadColumns + " FROM leads WHERE id = $1"
	return scanLead(r.DB.QueryRowContext(ctx, query, id))
}

// Assign only matches an Unassigned row, so of two concurrent assignment
// attempts exactly one sees rows == 1.
func (r *LeadRepository) Assign(ctx context.Context, id, agentID int64) (int64, error) {
	query := `
		UPDATE leads
		SET status = $3, assigned_agent_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	res, err := r.DB.ExecContext(ctx, query, id, agentID, entity.StatusAssigned, entity.StatusUnassigned)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, current, next entity.LeadStatus) (int64, error) {
	query := `
		UPDATE leads
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	res, err := r.DB.ExecContext(ctx, query, id, current, next)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LeadRepository) DeleteInStatus(ctx context.Context, id int64, status entity.LeadStatus) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM leads WHERE id = $1 AND status = $2", id, status)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	var (
		conds []string
		args  []interface{}
	)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}

	if filter.Status != nil {
		add("status =", *filter.Status)
	}
	if filter.AssignedAgentID != nil {
		add("assigned_agent_id =", *filter.AssignedAgentID)
	}
	if filter.StartDate != nil {
		add("created_at >=", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("created_at <=", *filter.EndDate)
	}

	query := "SELECT " + leadColumns + " FROM leads"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead    entity.Lead
		agentID sql.NullInt64
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.Status,
		&agentID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if agentID.Valid {
		lead.AssignedAgentID = &agentID.Int64
	}
	return &lead, nil
}
