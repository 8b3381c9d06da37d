package repositories

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// InpatientRepository reads the admitted-patient census.
type InpatientRepository interface {
	// ListOpen returns inpatients with no discharge date.
	ListOpen(ctx context.Context) ([]entities.Inpatient, error)
}

// DischargeRepository persists discharge recommendations, append-only.
type DischargeRepository interface {
	Create(ctx context.Context, candidate *entities.DischargeCandidate) error
}
