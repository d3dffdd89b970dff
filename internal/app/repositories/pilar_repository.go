package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/dberrors"
)

// PilarRepository handles the master pillar and category lookup tables
type PilarRepository struct {
	db *pgxpool.Pool
}

// NewPilarRepository creates a new pilar repository
func NewPilarRepository(db *pgxpool.Pool) *PilarRepository {
	return &PilarRepository{
		db: db,
	}
}

// GetAllPilar retrieves all pillars ordered by urutan
func (r *PilarRepository) GetAllPilar(ctx context.Context, activeOnly bool) ([]*models.MasterPilarLayanan, error) {
	query := `
		SELECT id, kode, nama, deskripsi, urutan, aktif, created_at, updated_at
		FROM master_pilar_layanan
	`
	if activeOnly {
		query += ` WHERE aktif = true`
	}
	query += ` ORDER BY urutan ASC, kode ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing pilar: %w", err)
	}
	defer rows.Close()

	var result []*models.MasterPilarLayanan
	for rows.Next() {
		var p models.MasterPilarLayanan
		if err := rows.Scan(
			&p.ID,
			&p.Kode,
			&p.Nama,
			&p.Deskripsi,
			&p.Urutan,
			&p.Aktif,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetPilarByKode retrieves a pillar by its code
func (r *PilarRepository) GetPilarByKode(ctx context.Context, kode string) (*models.MasterPilarLayanan, error) {
	query := `
		SELECT id, kode, nama, deskripsi, urutan, aktif, created_at, updated_at
		FROM master_pilar_layanan
		WHERE kode = $1
	`

	var p models.MasterPilarLayanan
	err := r.db.QueryRow(ctx, query, kode).Scan(
		&p.ID,
		&p.Kode,
		&p.Nama,
		&p.Deskripsi,
		&p.Urutan,
		&p.Aktif,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPilarNotFound
		}
		return nil, fmt.Errorf("error retrieving pilar: %w", err)
	}

	return &p, nil
}

// CreatePilar inserts a new pillar
func (r *PilarRepository) CreatePilar(ctx context.Context, pilar *models.MasterPilarLayanan) error {
	query := `
		INSERT INTO master_pilar_layanan (kode, nama, deskripsi, urutan, aktif)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		pilar.Kode,
		pilar.Nama,
		pilar.Deskripsi,
		pilar.Urutan,
		pilar.Aktif,
	).Scan(&pilar.ID, &pilar.CreatedAt, &pilar.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("pilar with this kode already exists")
		}
		return fmt.Errorf("error creating pilar: %w", err)
	}

	return nil
}

// UpdatePilar updates a pillar's display fields. The kode is immutable
// because ledger rows reference it.
func (r *PilarRepository) UpdatePilar(ctx context.Context, pilar *models.MasterPilarLayanan) error {
	query := `
		UPDATE master_pilar_layanan
		SET nama = $1, deskripsi = $2, urutan = $3, aktif = $4, updated_at = now()
		WHERE kode = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		pilar.Nama,
		pilar.Deskripsi,
		pilar.Urutan,
		pilar.Aktif,
		pilar.Kode,
	)

	if err != nil {
		return fmt.Errorf("error updating pilar: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPilarNotFound
	}

	return nil
}

// GetAllKategori retrieves all category mappings ordered by urutan
func (r *PilarRepository) GetAllKategori(ctx context.Context, activeOnly bool) ([]*models.MasterKategoriPengeluaran, error) {
	query := `
		SELECT id, nama, jenis, pilar_layanan_kode, urutan, aktif, created_at, updated_at
		FROM master_kategori_pengeluaran
	`
	if activeOnly {
		query += ` WHERE aktif = true`
	}
	query += ` ORDER BY urutan ASC, nama ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing kategori: %w", err)
	}
	defer rows.Close()

	var result []*models.MasterKategoriPengeluaran
	for rows.Next() {
		var k models.MasterKategoriPengeluaran
		if err := rows.Scan(
			&k.ID,
			&k.Nama,
			&k.Jenis,
			&k.PilarLayananKode,
			&k.Urutan,
			&k.Aktif,
			&k.CreatedAt,
			&k.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &k)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateKategori inserts a new category mapping
func (r *PilarRepository) CreateKategori(ctx context.Context, kategori *models.MasterKategoriPengeluaran) error {
	query := `
		INSERT INTO master_kategori_pengeluaran (nama, jenis, pilar_layanan_kode, urutan, aktif)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		kategori.Nama,
		kategori.Jenis,
		kategori.PilarLayananKode,
		kategori.Urutan,
		kategori.Aktif,
	).Scan(&kategori.ID, &kategori.CreatedAt, &kategori.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("kategori with this nama already exists")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPilarNotFound
		}
		return fmt.Errorf("error creating kategori: %w", err)
	}

	return nil
}

// UpdateKategori updates a category mapping by ID
func (r *PilarRepository) UpdateKategori(ctx context.Context, kategori *models.MasterKategoriPengeluaran) error {
	query := `
		UPDATE master_kategori_pengeluaran
		SET nama = $1, jenis = $2, pilar_layanan_kode = $3, urutan = $4, aktif = $5, updated_at = now()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		kategori.Nama,
		kategori.Jenis,
		kategori.PilarLayananKode,
		kategori.Urutan,
		kategori.Aktif,
		kategori.ID,
	)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPilarNotFound
		}
		return fmt.Errorf("error updating kategori: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrKategoriNotFound
	}

	return nil
}
