package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/dberrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

const santriColumns = "id, nama_lengkap, nisn, kategori, status_sosial, status, tanggal_masuk, created_at, updated_at"

// SantriRepository handles database operations for santri records
type SantriRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSantriRepository creates a new santri repository
func NewSantriRepository(db *pgxpool.Pool) *SantriRepository {
	return &SantriRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSantri(row pgx.Row) (*models.Santri, error) {
	var s models.Santri
	err := row.Scan(
		&s.ID,
		&s.NamaLengkap,
		&s.NISN,
		&s.Kategori,
		&s.StatusSosial,
		&s.Status,
		&s.TanggalMasuk,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new santri and fills in the generated ID
func (r *SantriRepository) Create(ctx context.Context, santri *models.Santri) error {
	query := `
		INSERT INTO santri (nama_lengkap, nisn, kategori, status_sosial, status, tanggal_masuk)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		santri.NamaLengkap,
		helpers.GetNullString(santri.NISN),
		santri.Kategori,
		santri.StatusSosial,
		santri.Status,
		santri.TanggalMasuk,
	).Scan(&santri.ID, &santri.CreatedAt, &santri.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrNISAlreadyExists
		}
		logger.Error().Err(err).Str("nama", santri.NamaLengkap).Msg("Error creating santri")
		return fmt.Errorf("error creating santri: %w", err)
	}

	return nil
}

// GetByID retrieves a santri by ID
func (r *SantriRepository) GetByID(ctx context.Context, id string) (*models.Santri, error) {
	query := `SELECT ` + santriColumns + ` FROM santri WHERE id = $1`

	santri, err := scanSantri(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSantriNotFound
		}
		return nil, fmt.Errorf("error retrieving santri: %w", err)
	}

	return santri, nil
}

// List retrieves santri matching the filter with pagination
func (r *SantriRepository) List(ctx context.Context, filter dto.SantriFilter, offset uint64, limit int) ([]*models.Santri, int64, error) {
	base := r.sb.Select(santriColumns).From("santri")
	countBase := r.sb.Select("COUNT(*)").From("santri")

	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"status": filter.Status})
		countBase = countBase.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Kategori != "" {
		base = base.Where(squirrel.Eq{"kategori": filter.Kategori})
		countBase = countBase.Where(squirrel.Eq{"kategori": filter.Kategori})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"nama_lengkap": like},
			squirrel.ILike{"nisn": like},
		}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSQL, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build santri count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting santri: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("nama_lengkap ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build santri list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing santri: %w", err)
	}
	defer rows.Close()

	var result []*models.Santri
	for rows.Next() {
		santri, err := scanSantri(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, santri)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// Update updates an existing santri record
func (r *SantriRepository) Update(ctx context.Context, santri *models.Santri) error {
	query := `
		UPDATE santri
		SET nama_lengkap = $1, nisn = $2, kategori = $3, status_sosial = $4,
		    status = $5, tanggal_masuk = $6, updated_at = now()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		santri.NamaLengkap,
		helpers.GetNullString(santri.NISN),
		santri.Kategori,
		santri.StatusSosial,
		santri.Status,
		santri.TanggalMasuk,
		santri.ID,
	)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrNISAlreadyExists
		}
		return fmt.Errorf("error updating santri: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSantriNotFound
	}

	return nil
}

// UpdateStatus changes the lifecycle status of a santri. Records are never
// hard-deleted; leaving the pesantren is a status change.
func (r *SantriRepository) UpdateStatus(ctx context.Context, id string, status models.SantriStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE santri SET status = $1, updated_at = now() WHERE id = $2`,
		status, id)

	if err != nil {
		return fmt.Errorf("error updating santri status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSantriNotFound
	}

	return nil
}

// ActiveMukimPopulation returns active Santri Binaan Mukim enrolled no later
// than the given cutoff. This is the population used for flat service division.
func (r *SantriRepository) ActiveMukimPopulation(ctx context.Context, cutoff time.Time) ([]*models.Santri, error) {
	query := `
		SELECT ` + santriColumns + `
		FROM santri
		WHERE status = $1 AND kategori = $2 AND created_at <= $3
		ORDER BY nama_lengkap ASC
	`

	rows, err := r.db.Query(ctx, query, models.SantriStatusAktif, models.KategoriBinaanMukim, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying active mukim population: %w", err)
	}
	defer rows.Close()

	var result []*models.Santri
	for rows.Next() {
		santri, err := scanSantri(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, santri)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
