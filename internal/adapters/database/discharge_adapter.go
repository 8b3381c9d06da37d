package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// DischargeAdapter implements discharge-recommendation persistence in Postgres.
type DischargeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDischargeAdapter creates a new discharge adapter.
func NewDischargeAdapter(client *postgres.Client) repositories.DischargeRepository {
	return &DischargeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends one discharge recommendation.
func (a *DischargeAdapter) Create(ctx context.Context, candidate *entities.DischargeCandidate) error {
	criteria, err := json.Marshal(candidate.CriteriaMet)
	if err != nil {
		return apperrors.NewPersistenceError("failed to encode discharge criteria", err)
	}

	generatedAt := candidate.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	record := goqu.Record{
		"patient_id":               candidate.PatientID,
		"readiness_score":          candidate.ReadinessScore,
		"estimated_discharge_date": candidate.EstimatedDischargeDate,
		"criteria_met":             string(criteria),
		"recommendations":          pq.Array(candidate.Recommendations),
		"created_at":               generatedAt,
	}

	query, args, err := a.db.Insert("discharge_recommendations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewPersistenceError("failed to build discharge insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to insert discharge recommendation", err)
	}

	return nil
}
