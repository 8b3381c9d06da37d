package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/adapters/database"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
)

func TestForecastAdapter_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewForecastAdapter(postgres.NewClientFromDB(db))

	forecast := &entities.Forecast{
		Predictions: []entities.ForecastPoint{
			{Date: "2026-09-01", PredictedVolume: 120, ConfidenceLower: 100, ConfidenceUpper: 140},
			{Date: "2026-09-02", PredictedVolume: 135, ConfidenceLower: 110, ConfidenceUpper: 160},
		},
		ModelVersion: "prophet-v1",
		GeneratedAt:  time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC),
	}

	t.Run("writes one conflict-aware insert per point", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "demand_forecasts".*ON CONFLICT \(forecast_date, generated_at\) DO UPDATE`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO "demand_forecasts".*ON CONFLICT \(forecast_date, generated_at\) DO UPDATE`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := adapter.Upsert(context.Background(), forecast)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty forecast writes nothing", func(t *testing.T) {
		err := adapter.Upsert(context.Background(), &entities.Forecast{})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
