package repositories

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// TriageRepository persists triage decisions, append-only.
type TriageRepository interface {
	Create(ctx context.Context, decision *entities.TriageDecision) error
}

// ERQueueRepository persists ER queue entries. The supervisor only ever
// enqueues; status transitions belong to the ER front-desk systems.
type ERQueueRepository interface {
	Enqueue(ctx context.Context, entry *entities.ERQueueEntry) error
}
