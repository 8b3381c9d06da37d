package repositories

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// ForecastRepository persists forecast points. Uniqueness is enforced on
// (date, generated_at): re-persisting the same forecast updates the
// predicted volume in place, while a new generated_at accumulates a new
// row per date.
type ForecastRepository interface {
	// Upsert writes every point of the forecast.
	Upsert(ctx context.Context, forecast *entities.Forecast) error
}
