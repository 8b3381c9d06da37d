package database

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// TriageAdapter implements triage-decision persistence in Postgres.
type TriageAdapter struct {
	client *postgres.Client
}

// NewTriageAdapter creates a new triage adapter.
func NewTriageAdapter(client *postgres.Client) repositories.TriageRepository {
	return &TriageAdapter{client: client}
}

// Create appends one triage decision.
func (a *TriageAdapter) Create(ctx context.Context, decision *entities.TriageDecision) error {
	query := `
		INSERT INTO triage_decisions (
			patient_id, acuity_level, acuity_label, confidence,
			risk_factors, red_flags, recommended_action, model_version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		decision.PatientID,
		decision.AcuityLevel,
		decision.AcuityLabel,
		decision.Confidence,
		pq.Array(decision.RiskFactors),
		pq.Array(decision.RedFlags),
		decision.RecommendedAction,
		decision.ModelVersion,
		time.Now(),
	)
	if err != nil {
		return apperrors.NewPersistenceError("failed to insert triage decision", err)
	}

	return nil
}
