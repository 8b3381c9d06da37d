package repositories

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// StaffRepository reads the staff roster.
type StaffRepository interface {
	// ListActive returns the roster members eligible for scheduling.
	ListActive(ctx context.Context) ([]entities.StaffMember, error)
}

// ScheduleRepository persists shift assignments. Inserts are pure appends;
// repeated workflow runs accumulate historical rows as an audit trail.
type ScheduleRepository interface {
	Insert(ctx context.Context, assignment *entities.ShiftAssignment) error
}
