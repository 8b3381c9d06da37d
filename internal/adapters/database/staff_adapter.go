package database

import (
	"context"

	"github.com/lib/pq"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// StaffAdapter implements roster reads from Postgres.
type StaffAdapter struct {
	client *postgres.Client
}

// NewStaffAdapter creates a new staff adapter.
func NewStaffAdapter(client *postgres.Client) repositories.StaffRepository {
	return &StaffAdapter{client: client}
}

// ListActive returns the roster members eligible for scheduling.
func (a *StaffAdapter) ListActive(ctx context.Context) ([]entities.StaffMember, error) {
	query := `
		SELECT staff_id, name, role, max_hours_per_week, qualifications, active
		FROM staff
		WHERE active = true
		ORDER BY staff_id
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list active staff", err)
	}
	defer rows.Close()

	var members []entities.StaffMember
	for rows.Next() {
		var member entities.StaffMember
		if err := rows.Scan(
			&member.StaffID,
			&member.Name,
			&member.Role,
			&member.MaxHoursPerWeek,
			pq.Array(&member.Qualifications),
			&member.Active,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan staff member", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate staff rows", err)
	}

	return members, nil
}
