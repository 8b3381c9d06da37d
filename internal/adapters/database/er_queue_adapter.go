package database

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// ERQueueAdapter implements ER queue persistence in Postgres.
type ERQueueAdapter struct {
	client *postgres.Client
}

// NewERQueueAdapter creates a new ER queue adapter.
func NewERQueueAdapter(client *postgres.Client) repositories.ERQueueRepository {
	return &ERQueueAdapter{client: client}
}

// Enqueue inserts a waiting queue entry.
func (a *ERQueueAdapter) Enqueue(ctx context.Context, entry *entities.ERQueueEntry) error {
	query := `
		INSERT INTO er_queue (id, patient_id, acuity_level, arrival_time, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		entry.ID,
		entry.PatientID,
		entry.AcuityLevel,
		entry.ArrivalTime,
		entry.Status,
	)
	if err != nil {
		return apperrors.NewPersistenceError("failed to enqueue ER patient", err)
	}

	return nil
}
