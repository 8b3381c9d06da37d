package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	"github.com/swasthya/operations-backend/pkg/config"
)

// Seeds a development roster and census. The supervisor only reads the
// staff and inpatients tables, so the seeder writes them with plain SQL
// instead of going through a repository.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				shift_assignments,
				demand_forecasts,
				triage_decisions,
				er_queue,
				discharge_recommendations,
				or_schedule,
				inpatients,
				staff
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed staff roster
	type staffRow struct {
		id             string
		name           string
		role           string
		maxHours       int
		qualifications []string
	}

	roster := []staffRow{
		{"s-001", "Adaeze Okafor", "nurse", 40, []string{"ER", "triage"}},
		{"s-002", "Priya Nair", "nurse", 36, []string{"ICU"}},
		{"s-003", "Tunde Balogun", "nurse", 40, []string{"ER"}},
		{"s-004", "Mei Chen", "physician", 48, []string{"emergency_medicine"}},
		{"s-005", "Kwame Mensah", "physician", 48, []string{"internal_medicine"}},
		{"s-006", "Sofia Almeida", "nurse", 40, []string{"surgical"}},
		{"s-007", "Ibrahim Diallo", "technician", 40, []string{"imaging"}},
		{"s-008", "Hana Suzuki", "nurse", 32, []string{"pediatrics"}},
	}

	for _, member := range roster {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO staff (staff_id, name, role, max_hours_per_week, qualifications, active)
			VALUES ($1, $2, $3, $4, $5, true)
			ON CONFLICT (staff_id) DO NOTHING
		`, member.id, member.name, member.role, member.maxHours, pq.Array(member.qualifications))
		if err != nil {
			log.Printf("Failed to seed staff %s: %v", member.id, err)
		}
	}
	log.Printf("Seeded %d staff members", len(roster))

	// 2. Seed open inpatients so the discharge stage has a census to assess
	type inpatientRow struct {
		id         string
		admittedAt time.Time
		diagnosis  string
		vitals     string
		procedures []string
	}

	now := time.Now()
	census := []inpatientRow{
		{"p-101", now.AddDate(0, 0, -4), "community-acquired pneumonia", `{"temperature": 37.1, "heart_rate": 82, "oxygen_saturation": 96}`, []string{"chest_xray", "iv_antibiotics"}},
		{"p-102", now.AddDate(0, 0, -1), "appendectomy recovery", `{"temperature": 36.8, "heart_rate": 74, "oxygen_saturation": 99}`, []string{"appendectomy"}},
		{"p-103", now.AddDate(0, 0, -9), "congestive heart failure", `{"temperature": 36.9, "heart_rate": 95, "oxygen_saturation": 93}`, []string{"echocardiogram", "diuresis"}},
	}

	for _, patient := range census {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO inpatients (patient_id, admission_date, diagnosis, vitals, procedures_completed)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (patient_id) DO NOTHING
		`, patient.id, patient.admittedAt, patient.diagnosis, patient.vitals, pq.Array(patient.procedures))
		if err != nil {
			log.Printf("Failed to seed inpatient %s: %v", patient.id, err)
		}
	}
	log.Printf("Seeded %d inpatients", len(census))

	fmt.Println("Seeding complete")
}
