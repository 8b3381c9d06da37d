package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// ScheduleAdapter implements shift-assignment persistence in Postgres.
type ScheduleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewScheduleAdapter creates a new schedule adapter.
func NewScheduleAdapter(client *postgres.Client) repositories.ScheduleRepository {
	return &ScheduleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert appends one shift assignment. No deduplication: repeated runs
// accumulate rows as an audit trail.
func (a *ScheduleAdapter) Insert(ctx context.Context, assignment *entities.ShiftAssignment) error {
	record := goqu.Record{
		"staff_id":   assignment.StaffID,
		"shift_date": assignment.Date,
		"shift":      assignment.Shift,
		"role":       assignment.Role,
		"created_at": time.Now(),
	}

	query, args, err := a.db.Insert("shift_assignments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewPersistenceError("failed to build shift assignment insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to insert shift assignment", err)
	}

	return nil
}
