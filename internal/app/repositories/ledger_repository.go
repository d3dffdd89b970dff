package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

// LedgerRepository handles the per-santri service ledger and its monthly
// periodic snapshots.
type LedgerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListRows returns ledger rows whose periode falls within the inclusive
// [start, end] canonical period range, with santri identity joined in.
func (r *LedgerRepository) ListRows(ctx context.Context, start, end string) ([]*models.LedgerLayananSantri, error) {
	query := `
		SELECT l.id, l.santri_id, l.periode, l.pilar_layanan, l.nilai_layanan,
		       l.sumber_perhitungan, l.referensi_keuangan_id, l.referensi_periodik_id, l.created_at,
		       s.id, s.nama_lengkap, s.nisn, s.kategori, s.status_sosial, s.status, s.tanggal_masuk, s.created_at, s.updated_at
		FROM ledger_layanan_santri l
		JOIN santri s ON s.id = l.santri_id
		WHERE l.periode >= $1 AND l.periode <= $2
		ORDER BY l.periode ASC, s.nama_lengkap ASC
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing ledger rows: %w", err)
	}
	defer rows.Close()

	var result []*models.LedgerLayananSantri
	for rows.Next() {
		var l models.LedgerLayananSantri
		var s models.Santri
		if err := rows.Scan(
			&l.ID,
			&l.SantriID,
			&l.Periode,
			&l.Pilar,
			&l.NilaiLayanan,
			&l.SumberPerhitungan,
			&l.ReferensiKeuanganID,
			&l.ReferensiPeriodikID,
			&l.CreatedAt,
			&s.ID,
			&s.NamaLengkap,
			&s.NISN,
			&s.Kategori,
			&s.StatusSosial,
			&s.Status,
			&s.TanggalMasuk,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		l.Santri = &s
		result = append(result, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListRowsBySantri returns all ledger rows for one santri, newest period first
func (r *LedgerRepository) ListRowsBySantri(ctx context.Context, santriID string) ([]*models.LedgerLayananSantri, error) {
	query := `
		SELECT id, santri_id, periode, pilar_layanan, nilai_layanan,
		       sumber_perhitungan, referensi_keuangan_id, referensi_periodik_id, created_at
		FROM ledger_layanan_santri
		WHERE santri_id = $1
		ORDER BY periode DESC, pilar_layanan ASC
	`

	rows, err := r.db.Query(ctx, query, santriID)
	if err != nil {
		return nil, fmt.Errorf("error listing ledger rows for santri: %w", err)
	}
	defer rows.Close()

	var result []*models.LedgerLayananSantri
	for rows.Next() {
		var l models.LedgerLayananSantri
		if err := rows.Scan(
			&l.ID,
			&l.SantriID,
			&l.Periode,
			&l.Pilar,
			&l.NilaiLayanan,
			&l.SumberPerhitungan,
			&l.ReferensiKeuanganID,
			&l.ReferensiPeriodikID,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteGenerated removes previously generated rows for one (periode, pilar,
// sumber) slot. Regeneration always deletes before inserting so the slot
// stays idempotent.
func (r *LedgerRepository) DeleteGenerated(ctx context.Context, tx pgx.Tx, periode, pilar string, sumber models.SumberPerhitungan) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM ledger_layanan_santri
		WHERE periode = $1 AND pilar_layanan = $2 AND sumber_perhitungan = $3`,
		periode, pilar, sumber)

	if err != nil {
		return 0, fmt.Errorf("error deleting generated ledger rows: %w", err)
	}

	deleted := cmdTag.RowsAffected()
	if deleted > 0 {
		logger.Info().Str("periode", periode).Str("pilar", pilar).Int64("deleted", deleted).Msg("Replaced previously generated ledger rows")
	}

	return deleted, nil
}

// InsertRows bulk-inserts ledger rows inside the given transaction
func (r *LedgerRepository) InsertRows(ctx context.Context, tx pgx.Tx, rows []*models.LedgerLayananSantri) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO ledger_layanan_santri
				(santri_id, periode, pilar_layanan, nilai_layanan, sumber_perhitungan, referensi_keuangan_id, referensi_periodik_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			row.SantriID,
			row.Periode,
			row.Pilar,
			row.NilaiLayanan,
			row.SumberPerhitungan,
			row.ReferensiKeuanganID,
			row.ReferensiPeriodikID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("error inserting ledger rows: %w", err)
		}
	}

	return nil
}

// UpsertPeriodik writes the monthly snapshot for one (periode, pilar),
// replacing totals on regeneration. Returns the snapshot ID.
func (r *LedgerRepository) UpsertPeriodik(ctx context.Context, tx pgx.Tx, snap *models.LedgerPeriodik) error {
	query := `
		INSERT INTO ledger_layanan_santri_periodik
			(periode, pilar_layanan, total_pengeluaran, jumlah_santri_snapshot, nilai_per_santri, sumber_perhitungan, status, catatan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (periode, pilar_layanan) DO UPDATE SET
			total_pengeluaran = EXCLUDED.total_pengeluaran,
			jumlah_santri_snapshot = EXCLUDED.jumlah_santri_snapshot,
			nilai_per_santri = EXCLUDED.nilai_per_santri,
			sumber_perhitungan = EXCLUDED.sumber_perhitungan,
			status = EXCLUDED.status,
			catatan = EXCLUDED.catatan,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		snap.Periode,
		snap.Pilar,
		snap.TotalPengeluaran,
		snap.JumlahSantriSnapshot,
		snap.NilaiPerSantri,
		snap.SumberPerhitungan,
		snap.Status,
		snap.Catatan,
	).Scan(&snap.ID, &snap.CreatedAt, &snap.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting ledger periodik: %w", err)
	}

	return nil
}

// GetPeriodik retrieves one snapshot by periode and pilar
func (r *LedgerRepository) GetPeriodik(ctx context.Context, periode, pilar string) (*models.LedgerPeriodik, error) {
	query := `
		SELECT id, periode, pilar_layanan, total_pengeluaran, jumlah_santri_snapshot,
		       nilai_per_santri, sumber_perhitungan, status, catatan, created_at, updated_at
		FROM ledger_layanan_santri_periodik
		WHERE periode = $1 AND pilar_layanan = $2
	`

	var snap models.LedgerPeriodik
	err := r.db.QueryRow(ctx, query, periode, pilar).Scan(
		&snap.ID,
		&snap.Periode,
		&snap.Pilar,
		&snap.TotalPengeluaran,
		&snap.JumlahSantriSnapshot,
		&snap.NilaiPerSantri,
		&snap.SumberPerhitungan,
		&snap.Status,
		&snap.Catatan,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPeriodikNotFound
		}
		return nil, fmt.Errorf("error retrieving ledger periodik: %w", err)
	}

	return &snap, nil
}

// DeletePeriodik removes the snapshot for one (periode, pilar) slot. The
// generated ledger rows referencing it are deleted separately in the same
// transaction.
func (r *LedgerRepository) DeletePeriodik(ctx context.Context, tx pgx.Tx, periode, pilar string) error {
	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM ledger_layanan_santri_periodik
		WHERE periode = $1 AND pilar_layanan = $2`,
		periode, pilar)

	if err != nil {
		return fmt.Errorf("error deleting ledger periodik: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPeriodikNotFound
	}

	return nil
}

// ListPeriodik returns snapshots filtered by optional periode and pilar,
// newest period first, with pagination.
func (r *LedgerRepository) ListPeriodik(ctx context.Context, periode, pilar string, offset uint64, limit int) ([]*models.LedgerPeriodik, int64, error) {
	base := r.sb.Select(
		"id", "periode", "pilar_layanan", "total_pengeluaran", "jumlah_santri_snapshot",
		"nilai_per_santri", "sumber_perhitungan", "status", "catatan", "created_at", "updated_at",
	).From("ledger_layanan_santri_periodik")
	countBase := r.sb.Select("COUNT(*)").From("ledger_layanan_santri_periodik")

	if periode != "" {
		base = base.Where(squirrel.Eq{"periode": periode})
		countBase = countBase.Where(squirrel.Eq{"periode": periode})
	}
	if pilar != "" {
		base = base.Where(squirrel.Eq{"pilar_layanan": pilar})
		countBase = countBase.Where(squirrel.Eq{"pilar_layanan": pilar})
	}

	countSQL, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build periodik count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting ledger periodik: %w", err)
	}

	listSQL, listArgs, err := base.
		OrderBy("periode DESC", "pilar_layanan ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build periodik list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing ledger periodik: %w", err)
	}
	defer rows.Close()

	var result []*models.LedgerPeriodik
	for rows.Next() {
		var snap models.LedgerPeriodik
		if err := rows.Scan(
			&snap.ID,
			&snap.Periode,
			&snap.Pilar,
			&snap.TotalPengeluaran,
			&snap.JumlahSantriSnapshot,
			&snap.NilaiPerSantri,
			&snap.SumberPerhitungan,
			&snap.Status,
			&snap.Catatan,
			&snap.CreatedAt,
			&snap.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}
