package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/db"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
	"github.com/emaktab/pesantren-backend/internal/pkg/periode"
)

// flatDivisionPilar reports whether the pillar distributes a monthly total
// evenly across the resident population. The remaining legacy pillars record
// per-transaction values instead.
func flatDivisionPilar(pilar string) bool {
	return pilar == models.PilarPendidikanPesantren || pilar == models.PilarAsramaKonsumsi
}

// perTransactionPilar reports whether the pillar writes one ledger row per
// qualifying transaction.
func perTransactionPilar(pilar string) bool {
	return pilar == models.PilarBantuanLangsung || pilar == models.PilarPendidikanFormal
}

// sumberForPilar is the sumber_perhitungan tag stamped on generated rows.
func sumberForPilar(pilar string) models.SumberPerhitungan {
	switch {
	case flatDivisionPilar(pilar):
		return models.SumberGeneratePeriod
	case pilar == models.PilarBantuanLangsung:
		return models.SumberBantuanLangsung
	default:
		return models.SumberRealisasi
	}
}

// Narrow repository surfaces so generation logic can be exercised with
// in-memory fakes.
type generateLedgerStore interface {
	DeleteGenerated(ctx context.Context, tx pgx.Tx, periode, pilar string, sumber models.SumberPerhitungan) (int64, error)
	InsertRows(ctx context.Context, tx pgx.Tx, rows []*models.LedgerLayananSantri) error
	UpsertPeriodik(ctx context.Context, tx pgx.Tx, snap *models.LedgerPeriodik) error
	GetPeriodik(ctx context.Context, periode, pilar string) (*models.LedgerPeriodik, error)
	DeletePeriodik(ctx context.Context, tx pgx.Tx, periode, pilar string) error
}

type generateKeuanganStore interface {
	SumPengeluaranByKategori(ctx context.Context, start, end time.Time) ([]repositories.KategoriTotal, error)
	ListDirectPengeluaran(ctx context.Context, start, end time.Time) ([]*models.TransaksiKeuangan, error)
	ListAlokasiInPeriod(ctx context.Context, start, end time.Time) ([]*models.AlokasiPengeluaranSantri, error)
}

type generateSantriStore interface {
	ActiveMukimPopulation(ctx context.Context, cutoff time.Time) ([]*models.Santri, error)
}

type mapperBuilder interface {
	BuildMapper(ctx context.Context) (*KategoriMapper, error)
}

type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// GenerateService produces per-santri ledger rows from the raw financial
// tables. A run is idempotent: regenerating the same (periode, pilar) slot
// replaces its previous output atomically.
type GenerateService struct {
	ledgerRepo   generateLedgerStore
	keuanganRepo generateKeuanganStore
	santriRepo   generateSantriStore
	pilarService mapperBuilder
	tx           txRunner
}

// NewGenerateService creates a new generate service
func NewGenerateService(
	ledgerRepo *repositories.LedgerRepository,
	keuanganRepo *repositories.KeuanganRepository,
	santriRepo *repositories.SantriRepository,
	pilarService *PilarService,
	database *db.PostgresDB,
) *GenerateService {
	return &GenerateService{
		ledgerRepo:   ledgerRepo,
		keuanganRepo: keuanganRepo,
		santriRepo:   santriRepo,
		pilarService: pilarService,
		tx:           database,
	}
}

// Generate runs a generation for one (periode, pilar) slot, dispatching on
// the pillar's distribution mode.
func (s *GenerateService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResult, error) {
	p, err := periode.Parse(req.Periode)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	switch {
	case flatDivisionPilar(req.Pilar):
		return s.generateFlat(ctx, p, req.Pilar)
	case perTransactionPilar(req.Pilar):
		return s.generateDirect(ctx, p, req.Pilar)
	default:
		return nil, apperrors.ErrUnsupportedPilar
	}
}

// generateFlat divides the month's qualifying expenditure total evenly
// across every active resident santri.
func (s *GenerateService) generateFlat(ctx context.Context, p, pilar string) (*dto.GenerateResult, error) {
	start, end, err := periode.Bounds(p)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	mapper, err := s.pilarService.BuildMapper(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.keuanganRepo.SumPengeluaranByKategori(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, kt := range totals {
		if mapper.Resolve(kt.Kategori) == pilar {
			total += kt.Total
		}
	}

	population, err := s.santriRepo.ActiveMukimPopulation(ctx, end)
	if err != nil {
		return nil, err
	}
	if len(population) == 0 {
		return nil, apperrors.ErrEmptyPopulation
	}

	perSantri := total / float64(len(population))
	sumber := sumberForPilar(pilar)

	snap := &models.LedgerPeriodik{
		Periode:              p,
		Pilar:                pilar,
		TotalPengeluaran:     total,
		JumlahSantriSnapshot: len(population),
		NilaiPerSantri:       perSantri,
		SumberPerhitungan:    sumber,
		Status:               models.PeriodikDraft,
	}

	result := &dto.GenerateResult{
		Periode:          p,
		Pilar:            pilar,
		TotalPengeluaran: total,
		JumlahSantri:     len(population),
		NilaiPerSantri:   perSantri,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.ledgerRepo.UpsertPeriodik(ctx, tx, snap); err != nil {
			return err
		}

		replaced, err := s.ledgerRepo.DeleteGenerated(ctx, tx, p, pilar, sumber)
		if err != nil {
			return err
		}
		result.RowsReplaced = replaced

		rows := make([]*models.LedgerLayananSantri, 0, len(population))
		for _, santri := range population {
			rows = append(rows, &models.LedgerLayananSantri{
				SantriID:            santri.ID,
				Periode:             p,
				Pilar:               pilar,
				NilaiLayanan:        perSantri,
				SumberPerhitungan:   sumber,
				ReferensiPeriodikID: &snap.ID,
			})
		}

		if err := s.ledgerRepo.InsertRows(ctx, tx, rows); err != nil {
			return err
		}
		result.RowsInserted = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Periodik = snap

	logger.Info().
		Str("periode", p).
		Str("pilar", pilar).
		Float64("total", total).
		Int("santri", len(population)).
		Float64("perSantri", perSantri).
		Msg("Flat division generation complete")

	return result, nil
}

// collectDirectRows normalizes direct transactions and legacy allocations for
// one pillar into AllocationRow values, the shared input of the
// per-transaction Generate and Preview paths.
func (s *GenerateService) collectDirectRows(ctx context.Context, p, pilar string, mapper *KategoriMapper, start, end time.Time) ([]models.AllocationRow, error) {
	transactions, err := s.keuanganRepo.ListDirectPengeluaran(ctx, start, end)
	if err != nil {
		return nil, err
	}

	alokasi, err := s.keuanganRepo.ListAlokasiInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var rows []models.AllocationRow
	for _, t := range transactions {
		if t.SantriID == nil || mapper.Resolve(t.Kategori) != pilar {
			continue
		}
		keuanganID := t.ID
		rows = append(rows, models.AllocationRow{
			SantriID:   *t.SantriID,
			Periode:    p,
			Pilar:      pilar,
			Amount:     t.Jumlah,
			Source:     models.SourceDirectTransaction,
			KeuanganID: &keuanganID,
		})
	}

	for _, a := range alokasi {
		if a.KategoriKeuangan == nil || mapper.Resolve(*a.KategoriKeuangan) != pilar {
			continue
		}
		// The free-form label on old rows sometimes disagrees with the
		// transaction date that actually places them in the window.
		if a.Periode != nil && a.TanggalTransaksi != nil {
			if labeled := periode.Normalize(*a.Periode, *a.TanggalTransaksi); labeled != p {
				logger.Warn().
					Str("alokasi", a.ID).
					Str("label", labeled).
					Str("slot", p).
					Msg("Legacy allocation label disagrees with its transaction date")
			}
		}
		keuanganID := a.KeuanganID
		rows = append(rows, models.AllocationRow{
			SantriID:   a.SantriID,
			Periode:    p,
			Pilar:      pilar,
			Amount:     a.NominalAlokasi,
			Source:     models.SourceLegacyAllocation,
			KeuanganID: &keuanganID,
		})
	}

	return rows, nil
}

// generateDirect writes one ledger row per qualifying transaction or legacy
// allocation targeting a specific santri. Like the flat path it also records
// a periodik snapshot for the slot, with the per-santri value averaged over
// the distinct santri touched.
func (s *GenerateService) generateDirect(ctx context.Context, p, pilar string) (*dto.GenerateResult, error) {
	start, end, err := periode.Bounds(p)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	mapper, err := s.pilarService.BuildMapper(ctx)
	if err != nil {
		return nil, err
	}

	allocations, err := s.collectDirectRows(ctx, p, pilar, mapper, start, end)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, apperrors.ErrEmptyPopulation
	}

	sumber := sumberForPilar(pilar)
	rows := make([]*models.LedgerLayananSantri, 0, len(allocations))
	var total float64
	santriSeen := make(map[string]struct{})

	for _, a := range allocations {
		rows = append(rows, &models.LedgerLayananSantri{
			SantriID:            a.SantriID,
			Periode:             a.Periode,
			Pilar:               a.Pilar,
			NilaiLayanan:        a.Amount,
			SumberPerhitungan:   sumber,
			ReferensiKeuanganID: a.KeuanganID,
		})
		total += a.Amount
		santriSeen[a.SantriID] = struct{}{}
	}

	snap := &models.LedgerPeriodik{
		Periode:              p,
		Pilar:                pilar,
		TotalPengeluaran:     total,
		JumlahSantriSnapshot: len(santriSeen),
		NilaiPerSantri:       total / float64(len(santriSeen)),
		SumberPerhitungan:    sumber,
		Status:               models.PeriodikDraft,
	}

	result := &dto.GenerateResult{
		Periode:          p,
		Pilar:            pilar,
		TotalPengeluaran: total,
		JumlahSantri:     len(santriSeen),
		NilaiPerSantri:   snap.NilaiPerSantri,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.ledgerRepo.UpsertPeriodik(ctx, tx, snap); err != nil {
			return err
		}

		replaced, err := s.ledgerRepo.DeleteGenerated(ctx, tx, p, pilar, sumber)
		if err != nil {
			return err
		}
		result.RowsReplaced = replaced

		if err := s.ledgerRepo.InsertRows(ctx, tx, rows); err != nil {
			return err
		}
		result.RowsInserted = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Periodik = snap

	logger.Info().
		Str("periode", p).
		Str("pilar", pilar).
		Float64("total", total).
		Int("rows", len(rows)).
		Msg("Per-transaction generation complete")

	return result, nil
}

// Preview reports what a generation run would write without touching the
// ledger.
func (s *GenerateService) Preview(ctx context.Context, rawPeriode, pilar string) (*dto.GenerateResult, []dto.GenerateCandidate, error) {
	p, err := periode.Parse(rawPeriode)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidPeriode
	}

	start, end, err := periode.Bounds(p)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidPeriode
	}

	mapper, err := s.pilarService.BuildMapper(ctx)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case flatDivisionPilar(pilar):
		totals, err := s.keuanganRepo.SumPengeluaranByKategori(ctx, start, end)
		if err != nil {
			return nil, nil, err
		}
		var total float64
		for _, kt := range totals {
			if mapper.Resolve(kt.Kategori) == pilar {
				total += kt.Total
			}
		}

		population, err := s.santriRepo.ActiveMukimPopulation(ctx, end)
		if err != nil {
			return nil, nil, err
		}

		result := &dto.GenerateResult{
			Periode:          p,
			Pilar:            pilar,
			TotalPengeluaran: total,
			JumlahSantri:     len(population),
		}
		if len(population) > 0 {
			result.NilaiPerSantri = total / float64(len(population))
		}
		return result, nil, nil

	case perTransactionPilar(pilar):
		allocations, err := s.collectDirectRows(ctx, p, pilar, mapper, start, end)
		if err != nil {
			return nil, nil, err
		}

		type agg struct {
			total float64
			count int
		}
		perSantri := make(map[string]*agg)
		var total float64
		for _, row := range allocations {
			a, ok := perSantri[row.SantriID]
			if !ok {
				a = &agg{}
				perSantri[row.SantriID] = a
			}
			a.total += row.Amount
			a.count++
			total += row.Amount
		}

		candidates := make([]dto.GenerateCandidate, 0, len(perSantri))
		for santriID, a := range perSantri {
			candidates = append(candidates, dto.GenerateCandidate{
				SantriID:        santriID,
				TotalNilai:      a.total,
				JumlahTransaksi: a.count,
			})
		}

		result := &dto.GenerateResult{
			Periode:          p,
			Pilar:            pilar,
			TotalPengeluaran: total,
			JumlahSantri:     len(perSantri),
		}
		return result, candidates, nil

	default:
		return nil, nil, apperrors.ErrUnsupportedPilar
	}
}

// DeletePeriodik reverses a generation run: it removes the snapshot for one
// (periode, pilar) slot together with every ledger row the run produced.
func (s *GenerateService) DeletePeriodik(ctx context.Context, rawPeriode, pilar string) (*dto.PeriodikDeleteResult, error) {
	p, err := periode.Parse(rawPeriode)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}
	if !flatDivisionPilar(pilar) && !perTransactionPilar(pilar) {
		return nil, apperrors.ErrUnsupportedPilar
	}

	snap, err := s.ledgerRepo.GetPeriodik(ctx, p, pilar)
	if err != nil {
		return nil, err
	}

	result := &dto.PeriodikDeleteResult{Periode: p, Pilar: pilar}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Ledger rows reference the snapshot, so they go first
		removed, err := s.ledgerRepo.DeleteGenerated(ctx, tx, p, pilar, snap.SumberPerhitungan)
		if err != nil {
			return err
		}
		result.RowsDeleted = removed

		return s.ledgerRepo.DeletePeriodik(ctx, tx, p, pilar)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("periode", p).
		Str("pilar", pilar).
		Int64("rows", result.RowsDeleted).
		Msg("Generated slot deleted")

	return result, nil
}

// MonthlyExpenditures previews the qualifying expenditure total for one
// pillar for each month in an inclusive period range.
func (s *GenerateService) MonthlyExpenditures(ctx context.Context, startPeriode, endPeriode, pilar string) ([]dto.PilarExpenditure, error) {
	months, err := periode.Range(startPeriode, endPeriode)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	mapper, err := s.pilarService.BuildMapper(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PilarExpenditure, 0, len(months))
	for _, month := range months {
		start, end, err := periode.Bounds(month)
		if err != nil {
			return nil, fmt.Errorf("invalid month %s in range: %w", month, err)
		}

		totals, err := s.keuanganRepo.SumPengeluaranByKategori(ctx, start, end)
		if err != nil {
			return nil, err
		}

		var total float64
		for _, kt := range totals {
			if mapper.Resolve(kt.Kategori) == pilar {
				total += kt.Total
			}
		}

		result = append(result, dto.PilarExpenditure{
			Periode: month,
			Bulan:   periode.Display(month),
			Amount:  total,
		})
	}

	return result, nil
}
