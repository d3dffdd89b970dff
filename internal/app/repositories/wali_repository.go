package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
)

const waliColumns = "id, santri_id, nama_lengkap, hubungan, no_telepon, pekerjaan, penghasilan, is_utama, created_at, updated_at"

// WaliRepository handles database operations for guardians
type WaliRepository struct {
	db *pgxpool.Pool
}

// NewWaliRepository creates a new wali repository
func NewWaliRepository(db *pgxpool.Pool) *WaliRepository {
	return &WaliRepository{
		db: db,
	}
}

func scanWali(row pgx.Row) (*models.Wali, error) {
	var w models.Wali
	err := row.Scan(
		&w.ID,
		&w.SantriID,
		&w.NamaLengkap,
		&w.Hubungan,
		&w.NoTelepon,
		&w.Pekerjaan,
		&w.Penghasilan,
		&w.IsUtama,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a wali. When the new wali is flagged utama, any existing
// utama for the same santri is demoted in the same transaction so that at
// most one utama exists per santri.
func (r *WaliRepository) Create(ctx context.Context, wali *models.Wali) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin wali create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if wali.IsUtama {
		_, err = tx.Exec(ctx, `
			UPDATE wali_santri SET is_utama = false, updated_at = now()
			WHERE santri_id = $1 AND is_utama = true`,
			wali.SantriID)
		if err != nil {
			return fmt.Errorf("error demoting existing wali utama: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO wali_santri (santri_id, nama_lengkap, hubungan, no_telepon, pekerjaan, penghasilan, is_utama)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		wali.SantriID,
		wali.NamaLengkap,
		wali.Hubungan,
		wali.NoTelepon,
		wali.Pekerjaan,
		wali.Penghasilan,
		wali.IsUtama,
	).Scan(&wali.ID, &wali.CreatedAt, &wali.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating wali: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a wali by ID
func (r *WaliRepository) GetByID(ctx context.Context, id string) (*models.Wali, error) {
	query := `SELECT ` + waliColumns + ` FROM wali_santri WHERE id = $1`

	wali, err := scanWali(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWaliNotFound
		}
		return nil, fmt.Errorf("error retrieving wali: %w", err)
	}

	return wali, nil
}

// GetBySantriID retrieves all wali for a santri, utama first
func (r *WaliRepository) GetBySantriID(ctx context.Context, santriID string) ([]*models.Wali, error) {
	query := `
		SELECT ` + waliColumns + `
		FROM wali_santri
		WHERE santri_id = $1
		ORDER BY is_utama DESC, nama_lengkap ASC
	`

	rows, err := r.db.Query(ctx, query, santriID)
	if err != nil {
		return nil, fmt.Errorf("error listing wali: %w", err)
	}
	defer rows.Close()

	var result []*models.Wali
	for rows.Next() {
		wali, err := scanWali(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, wali)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Update updates a wali, demoting a sibling utama if needed
func (r *WaliRepository) Update(ctx context.Context, wali *models.Wali) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin wali update transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if wali.IsUtama {
		_, err = tx.Exec(ctx, `
			UPDATE wali_santri SET is_utama = false, updated_at = now()
			WHERE santri_id = $1 AND is_utama = true AND id != $2`,
			wali.SantriID, wali.ID)
		if err != nil {
			return fmt.Errorf("error demoting existing wali utama: %w", err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE wali_santri
		SET nama_lengkap = $1, hubungan = $2, no_telepon = $3, pekerjaan = $4,
		    penghasilan = $5, is_utama = $6, updated_at = now()
		WHERE id = $7`,
		wali.NamaLengkap,
		wali.Hubungan,
		wali.NoTelepon,
		wali.Pekerjaan,
		wali.Penghasilan,
		wali.IsUtama,
		wali.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating wali: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrWaliNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes a wali record
func (r *WaliRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM wali_santri WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting wali: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrWaliNotFound
	}

	return nil
}
