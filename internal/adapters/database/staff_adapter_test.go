package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/adapters/database"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
)

func TestStaffAdapter_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := database.NewStaffAdapter(postgres.NewClientFromDB(db))

	t.Run("returns only active roster members", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"staff_id", "name", "role", "max_hours_per_week", "qualifications", "active",
		}).
			AddRow("s-001", "Asha Rao", "nurse", 40, pq.Array([]string{"ICU", "triage"}), true).
			AddRow("s-002", "Vikram Shah", "physician", 48, pq.Array([]string{"emergency"}), true)

		mock.ExpectQuery("SELECT staff_id, name, role, max_hours_per_week, qualifications, active").
			WillReturnRows(rows)

		members, err := adapter.ListActive(context.Background())

		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "s-001", members[0].StaffID)
		assert.Equal(t, []string{"ICU", "triage"}, members[0].Qualifications)
		assert.True(t, members[1].Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty roster without error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"staff_id", "name", "role", "max_hours_per_week", "qualifications", "active",
		})

		mock.ExpectQuery("SELECT staff_id, name, role").WillReturnRows(rows)

		members, err := adapter.ListActive(context.Background())

		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
