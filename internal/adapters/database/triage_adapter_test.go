package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/adapters/database"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

func TestTriageAdapter_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewTriageAdapter(postgres.NewClientFromDB(db))

	decision := &entities.TriageDecision{
		PatientID:         "p-7",
		AcuityLevel:       entities.AcuityUrgent,
		AcuityLabel:       "Urgent",
		Confidence:        0.87,
		RiskFactors:       []string{"hypertension"},
		RedFlags:          nil,
		RecommendedAction: "assess within 30 minutes",
		ModelVersion:      "v1.0",
	}

	t.Run("appends the decision", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO triage_decisions").
			WithArgs(
				decision.PatientID,
				decision.AcuityLevel,
				decision.AcuityLabel,
				decision.Confidence,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				decision.RecommendedAction,
				decision.ModelVersion,
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := adapter.Create(context.Background(), decision)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("classifies failures as persistence errors", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO triage_decisions").
			WillReturnError(errors.New("deadlock detected"))

		err := adapter.Create(context.Background(), decision)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistence))
	})
}
