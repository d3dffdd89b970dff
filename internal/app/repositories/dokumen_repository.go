package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

const dokumenColumns = "id, santri_id, jenis_dokumen, nama_file, path_file, ukuran_file, mime_type, uploaded_at"

// DokumenRepository handles database operations for santri documents
type DokumenRepository struct {
	db *pgxpool.Pool
}

// NewDokumenRepository creates a new dokumen repository
func NewDokumenRepository(db *pgxpool.Pool) *DokumenRepository {
	return &DokumenRepository{
		db: db,
	}
}

func scanDokumen(row pgx.Row) (*models.DokumenSantri, error) {
	var d models.DokumenSantri
	var mimeType sql.NullString
	err := row.Scan(
		&d.ID,
		&d.SantriID,
		&d.JenisDokumen,
		&d.NamaFile,
		&d.PathFile,
		&d.UkuranFile,
		&mimeType,
		&d.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	d.MimeType = mimeType.String
	return &d, nil
}

// Create inserts a dokumen record
func (r *DokumenRepository) Create(ctx context.Context, dokumen *models.DokumenSantri) error {
	query := `
		INSERT INTO dokumen_santri (santri_id, jenis_dokumen, nama_file, path_file, ukuran_file, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		dokumen.SantriID,
		dokumen.JenisDokumen,
		dokumen.NamaFile,
		dokumen.PathFile,
		dokumen.UkuranFile,
		// A browser may omit the content type; store NULL over an empty string
		helpers.GetContentNullString(dokumen.MimeType),
	).Scan(&dokumen.ID, &dokumen.UploadedAt)

	if err != nil {
		return fmt.Errorf("error creating dokumen: %w", err)
	}

	return nil
}

// GetByID retrieves a dokumen by ID
func (r *DokumenRepository) GetByID(ctx context.Context, id string) (*models.DokumenSantri, error) {
	query := `SELECT ` + dokumenColumns + ` FROM dokumen_santri WHERE id = $1`

	dokumen, err := scanDokumen(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDokumenNotFound
		}
		return nil, fmt.Errorf("error retrieving dokumen: %w", err)
	}

	return dokumen, nil
}

// GetBySantriID retrieves all documents for a santri, newest first
func (r *DokumenRepository) GetBySantriID(ctx context.Context, santriID string) ([]*models.DokumenSantri, error) {
	query := `
		SELECT ` + dokumenColumns + `
		FROM dokumen_santri
		WHERE santri_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.Query(ctx, query, santriID)
	if err != nil {
		return nil, fmt.Errorf("error listing dokumen: %w", err)
	}
	defer rows.Close()

	var result []*models.DokumenSantri
	for rows.Next() {
		dokumen, err := scanDokumen(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, dokumen)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a dokumen record and returns the stored file path so the
// caller can remove the file itself.
func (r *DokumenRepository) Delete(ctx context.Context, id string) (string, error) {
	var pathFile string
	err := r.db.QueryRow(ctx, `
		DELETE FROM dokumen_santri WHERE id = $1 RETURNING path_file`,
		id).Scan(&pathFile)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrDokumenNotFound
		}
		return "", fmt.Errorf("error deleting dokumen: %w", err)
	}

	return pathFile, nil
}

// DeleteBlockedJenis removes rows carrying retired jenis labels for one
// santri and returns the file paths of the removed rows.
func (r *DokumenRepository) DeleteBlockedJenis(ctx context.Context, santriID string) ([]string, error) {
	query := `
		DELETE FROM dokumen_santri
		WHERE santri_id = $1 AND jenis_dokumen = ANY($2)
		RETURNING path_file
	`

	rows, err := r.db.Query(ctx, query, santriID, models.BlockedJenisDokumen)
	if err != nil {
		return nil, fmt.Errorf("error deleting blocked dokumen: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(paths) > 0 {
		logger.Info().Str("santriID", santriID).Int("count", len(paths)).Msg("Removed dokumen rows with retired jenis labels")
	}

	return paths, nil
}
