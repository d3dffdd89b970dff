package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
)

// KategoriTotal is a summed expenditure amount for one financial category.
type KategoriTotal struct {
	Kategori string
	Total    float64
}

// KeuanganRepository reads the financial transaction tables. This service
// never writes keuangan rows; bookkeeping happens upstream.
type KeuanganRepository struct {
	db *pgxpool.Pool
}

// NewKeuanganRepository creates a new keuangan repository
func NewKeuanganRepository(db *pgxpool.Pool) *KeuanganRepository {
	return &KeuanganRepository{
		db: db,
	}
}

// GetByID retrieves a transaction by ID
func (r *KeuanganRepository) GetByID(ctx context.Context, id string) (*models.TransaksiKeuangan, error) {
	query := `
		SELECT id, jenis_transaksi, kategori, sub_kategori, jumlah, tanggal, status, ledger, santri_id, keterangan, created_at
		FROM keuangan
		WHERE id = $1
	`

	var t models.TransaksiKeuangan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.JenisTransaksi,
		&t.Kategori,
		&t.SubKategori,
		&t.Jumlah,
		&t.Tanggal,
		&t.Status,
		&t.Ledger,
		&t.SantriID,
		&t.Keterangan,
		&t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving transaction: %w", err)
	}

	return &t, nil
}

// SumPengeluaranByKategori sums posted UMUM-ledger expenditures per category
// within the given date window. Draft rows and other ledgers never count.
func (r *KeuanganRepository) SumPengeluaranByKategori(ctx context.Context, start, end time.Time) ([]KategoriTotal, error) {
	query := `
		SELECT kategori, COALESCE(SUM(jumlah), 0)
		FROM keuangan
		WHERE jenis_transaksi = $1
		  AND status = $2
		  AND ledger = $3
		  AND tanggal >= $4
		  AND tanggal <= $5
		GROUP BY kategori
	`

	rows, err := r.db.Query(ctx, query,
		models.JenisPengeluaran, models.TransaksiPosted, models.LedgerUmum, start, end)
	if err != nil {
		return nil, fmt.Errorf("error summing expenditures by kategori: %w", err)
	}
	defer rows.Close()

	var totals []KategoriTotal
	for rows.Next() {
		var kt KategoriTotal
		if err := rows.Scan(&kt.Kategori, &kt.Total); err != nil {
			return nil, err
		}
		totals = append(totals, kt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// ListDirectPengeluaran returns posted UMUM-ledger expenditures carrying a
// santri reference within the date window. These become per-transaction
// ledger rows during generation.
func (r *KeuanganRepository) ListDirectPengeluaran(ctx context.Context, start, end time.Time) ([]*models.TransaksiKeuangan, error) {
	query := `
		SELECT id, jenis_transaksi, kategori, sub_kategori, jumlah, tanggal, status, ledger, santri_id, keterangan, created_at
		FROM keuangan
		WHERE jenis_transaksi = $1
		  AND status = $2
		  AND ledger = $3
		  AND santri_id IS NOT NULL
		  AND tanggal >= $4
		  AND tanggal <= $5
		ORDER BY tanggal ASC
	`

	rows, err := r.db.Query(ctx, query,
		models.JenisPengeluaran, models.TransaksiPosted, models.LedgerUmum, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing direct expenditures: %w", err)
	}
	defer rows.Close()

	var result []*models.TransaksiKeuangan
	for rows.Next() {
		var t models.TransaksiKeuangan
		if err := rows.Scan(
			&t.ID,
			&t.JenisTransaksi,
			&t.Kategori,
			&t.SubKategori,
			&t.Jumlah,
			&t.Tanggal,
			&t.Status,
			&t.Ledger,
			&t.SantriID,
			&t.Keterangan,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListAlokasiInPeriod returns legacy manual allocation rows whose referenced
// transaction falls in the date window and passes the posted UMUM expenditure
// filters. The period window applies to the transaction date, not the
// free-form periode label on the allocation itself.
func (r *KeuanganRepository) ListAlokasiInPeriod(ctx context.Context, start, end time.Time) ([]*models.AlokasiPengeluaranSantri, error) {
	query := `
		SELECT a.id, a.keuangan_id, a.santri_id, a.nominal_alokasi, a.periode, a.created_at,
		       k.kategori, k.tanggal
		FROM alokasi_pengeluaran_santri a
		JOIN keuangan k ON k.id = a.keuangan_id
		WHERE k.jenis_transaksi = $1
		  AND k.status = $2
		  AND k.ledger = $3
		  AND k.tanggal >= $4
		  AND k.tanggal <= $5
		ORDER BY k.tanggal ASC
	`

	rows, err := r.db.Query(ctx, query,
		models.JenisPengeluaran, models.TransaksiPosted, models.LedgerUmum, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing legacy allocations: %w", err)
	}
	defer rows.Close()

	var result []*models.AlokasiPengeluaranSantri
	for rows.Next() {
		var a models.AlokasiPengeluaranSantri
		if err := rows.Scan(
			&a.ID,
			&a.KeuanganID,
			&a.SantriID,
			&a.NominalAlokasi,
			&a.Periode,
			&a.CreatedAt,
			&a.KategoriKeuangan,
			&a.TanggalTransaksi,
		); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
