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

// ORScheduleAdapter implements OR-assignment persistence in Postgres.
type ORScheduleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewORScheduleAdapter creates a new OR schedule adapter.
func NewORScheduleAdapter(client *postgres.Client) repositories.ORScheduleRepository {
	return &ORScheduleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert appends one OR assignment.
func (a *ORScheduleAdapter) Insert(ctx context.Context, assignment *entities.ORAssignment) error {
	record := goqu.Record{
		"case_id":                assignment.CaseID,
		"or_room":                assignment.ORRoom,
		"start_time":             assignment.StartTime,
		"estimated_duration_min": assignment.EstimatedDuration,
		"created_at":             time.Now(),
	}

	query, args, err := a.db.Insert("or_schedule").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewPersistenceError("failed to build OR schedule insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to insert OR assignment", err)
	}

	return nil
}
