package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/adapters/database"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
)

func TestInpatientAdapter_ListOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewInpatientAdapter(postgres.NewClientFromDB(db))

	t.Run("formats admission timestamps as plain dates", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"patient_id", "admission_date", "diagnosis", "vitals", "procedures_completed",
		}).
			AddRow("p-10", time.Date(2026, 8, 21, 14, 30, 0, 0, time.UTC), "pneumonia",
				[]byte(`{"temperature": 37.2, "heart_rate": 88}`), pq.Array([]string{"chest_xray"})).
			AddRow("p-11", time.Date(2026, 8, 24, 2, 5, 0, 0, time.UTC), "post-op recovery",
				nil, pq.Array([]string{}))

		mock.ExpectQuery("SELECT patient_id, admission_date, diagnosis, vitals, procedures_completed").
			WillReturnRows(rows)

		patients, err := adapter.ListOpen(context.Background())

		require.NoError(t, err)
		require.Len(t, patients, 2)
		assert.Equal(t, "2026-08-21", patients[0].AdmissionDate)
		assert.Equal(t, "2026-08-24", patients[1].AdmissionDate)
		require.NotNil(t, patients[0].Vitals.Temperature)
		assert.Equal(t, 37.2, *patients[0].Vitals.Temperature)
		assert.Equal(t, []string{"chest_xray"}, patients[0].ProceduresCompleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty census is not an error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"patient_id", "admission_date", "diagnosis", "vitals", "procedures_completed",
		})

		mock.ExpectQuery("SELECT patient_id, admission_date").WillReturnRows(rows)

		patients, err := adapter.ListOpen(context.Background())

		require.NoError(t, err)
		assert.Empty(t, patients)
	})
}
