package repositories

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// ORScheduleRepository persists operating-room assignments, append-only.
type ORScheduleRepository interface {
	Insert(ctx context.Context, assignment *entities.ORAssignment) error
}
