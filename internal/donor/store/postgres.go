package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	id "github.com/Rishov2004/Blood-Donation/pkg/domain"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/sentinel"
)

// uniqueViolation is the Postgres error code raised when an insert loses the
// race at a unique index.
const uniqueViolation = "23505"

// PostgresStore persists donors in PostgreSQL. Uniqueness is delegated to the
// UNIQUE constraint on phone: the insert either lands atomically or fails
// with a unique violation, so there is no check-then-insert window.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed donor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the donor and reads back the assigned ID. A duplicate phone
// surfaces as sentinel.ErrAlreadyUsed; nothing is written in that case.
func (s *PostgresStore) Create(ctx context.Context, donor *models.Donor) error {
	query := `
		INSERT INTO donors (name, age, blood_group, phone, email, address, latitude, longitude, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var assigned int64
	err := s.db.QueryRowContext(ctx, query,
		donor.Name,
		donor.Age,
		string(donor.BloodGroup),
		donor.Phone,
		donor.Email,
		donor.Address,
		donor.Latitude,
		donor.Longitude,
		donor.RegisteredAt,
	).Scan(&assigned)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert donor: %w", err)
	}

	donor.ID = id.DonorID(assigned)
	return nil
}

// FindByBloodGroup scans all donors of the given group. Row visibility is
// whatever Postgres guarantees: a reader sees a whole committed row or none
// of it.
func (s *PostgresStore) FindByBloodGroup(ctx context.Context, bloodGroup models.BloodGroup) ([]models.Donor, error) {
	query := `
		SELECT id, name, age, blood_group, phone, email, address, latitude, longitude, registered_at
		FROM donors
		WHERE blood_group = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, string(bloodGroup))
	if err != nil {
		return nil, fmt.Errorf("scan donors by blood group: %w", err)
	}
	defer rows.Close()

	var out []models.Donor
	for rows.Next() {
		var d models.Donor
		var rowID int64
		var bg string
		if err := rows.Scan(&rowID, &d.Name, &d.Age, &bg, &d.Phone, &d.Email, &d.Address, &d.Latitude, &d.Longitude, &d.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan donor row: %w", err)
		}
		d.ID = id.DonorID(rowID)
		d.BloodGroup = models.BloodGroup(bg)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donor rows: %w", err)
	}
	return out, nil
}
