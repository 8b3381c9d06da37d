package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// InpatientAdapter implements census reads from Postgres. The inpatient
// table is owned by the patient-record service; this adapter only reads it.
type InpatientAdapter struct {
	client *postgres.Client
}

// NewInpatientAdapter creates a new inpatient adapter.
func NewInpatientAdapter(client *postgres.Client) repositories.InpatientRepository {
	return &InpatientAdapter{client: client}
}

// ListOpen returns inpatients with no discharge date.
func (a *InpatientAdapter) ListOpen(ctx context.Context) ([]entities.Inpatient, error) {
	query := `
		SELECT patient_id, admission_date, diagnosis, vitals, procedures_completed
		FROM inpatients
		WHERE discharge_date IS NULL
		ORDER BY admission_date
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list open inpatients", err)
	}
	defer rows.Close()

	var patients []entities.Inpatient
	for rows.Next() {
		var patient entities.Inpatient
		var admitted time.Time
		var vitalsRaw []byte
		if err := rows.Scan(
			&patient.PatientID,
			&admitted,
			&patient.Diagnosis,
			&vitalsRaw,
			pq.Array(&patient.ProceduresCompleted),
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan inpatient", err)
		}
		// The discharge agent expects a plain date, not a timestamp.
		patient.AdmissionDate = admitted.Format("2006-01-02")
		if len(vitalsRaw) > 0 {
			if err := json.Unmarshal(vitalsRaw, &patient.Vitals); err != nil {
				return nil, apperrors.NewInternalError("failed to decode inpatient vitals", err)
			}
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate inpatient rows", err)
	}

	return patients, nil
}
