package services

import (
	"context"
	"time"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
	"github.com/emaktab/pesantren-backend/internal/pkg/periode"
)

// Narrow repository surfaces for the read path, fakeable in tests.
type layananLedgerStore interface {
	ListRows(ctx context.Context, start, end string) ([]*models.LedgerLayananSantri, error)
	ListRowsBySantri(ctx context.Context, santriID string) ([]*models.LedgerLayananSantri, error)
	ListPeriodik(ctx context.Context, periode, pilar string, offset uint64, limit int) ([]*models.LedgerPeriodik, int64, error)
	GetPeriodik(ctx context.Context, periode, pilar string) (*models.LedgerPeriodik, error)
}

type layananSantriStore interface {
	ActiveMukimPopulation(ctx context.Context, cutoff time.Time) ([]*models.Santri, error)
	GetByID(ctx context.Context, id string) (*models.Santri, error)
}

// LayananService reads realized services. The per-santri ledger is the sole
// system of record here; raw financial tables are only consulted during
// generation.
type LayananService struct {
	ledgerRepo layananLedgerStore
	santriRepo layananSantriStore
}

// NewLayananService creates a new layanan service
func NewLayananService(ledgerRepo *repositories.LedgerRepository, santriRepo *repositories.SantriRepository) *LayananService {
	return &LayananService{
		ledgerRepo: ledgerRepo,
		santriRepo: santriRepo,
	}
}

// GetRealisasiSummary aggregates per-santri service values for one period.
// Every active resident santri appears in the result, zero rows included.
func (s *LayananService) GetRealisasiSummary(ctx context.Context, rawPeriode string) ([]dto.RealisasiSummary, error) {
	p, err := periode.Parse(rawPeriode)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	_, end, err := periode.Bounds(p)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	population, err := s.santriRepo.ActiveMukimPopulation(ctx, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.ledgerRepo.ListRows(ctx, p, p)
	if err != nil {
		return nil, err
	}

	return foldRealisasi(population, rows), nil
}

// GetRealisasiRange aggregates per-santri totals over an inclusive period
// range.
func (s *LayananService) GetRealisasiRange(ctx context.Context, rawStart, rawEnd string) ([]dto.RealisasiSummary, error) {
	start, err := periode.Parse(rawStart)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}
	end, err := periode.Parse(rawEnd)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	if _, err := periode.Range(start, end); err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	_, cutoff, err := periode.Bounds(end)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	population, err := s.santriRepo.ActiveMukimPopulation(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	rows, err := s.ledgerRepo.ListRows(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return foldRealisasi(population, rows), nil
}

// GetSantriBreakdown returns one santri's service history grouped by month,
// oldest first.
func (s *LayananService) GetSantriBreakdown(ctx context.Context, santriID string) ([]dto.MonthlyBreakdown, error) {
	if _, err := s.santriRepo.GetByID(ctx, santriID); err != nil {
		return nil, err
	}

	rows, err := s.ledgerRepo.ListRowsBySantri(ctx, santriID)
	if err != nil {
		return nil, err
	}

	return foldMonthly(rows), nil
}

// GetPeriodikDetail returns the snapshot for one (periode, pilar) slot, or
// ErrPeriodikNotFound when the slot has never been generated.
func (s *LayananService) GetPeriodikDetail(ctx context.Context, rawPeriode, pilar string) (*models.LedgerPeriodik, error) {
	p, err := periode.Parse(rawPeriode)
	if err != nil {
		return nil, apperrors.ErrInvalidPeriode
	}

	return s.ledgerRepo.GetPeriodik(ctx, p, pilar)
}

// ListPeriodik lists monthly snapshot rows with optional filters.
func (s *LayananService) ListPeriodik(ctx context.Context, rawPeriode, pilar string, page, size int) ([]*models.LedgerPeriodik, dto.PaginationInfo, error) {
	p := ""
	if rawPeriode != "" {
		parsed, err := periode.Parse(rawPeriode)
		if err != nil {
			return nil, dto.PaginationInfo{}, apperrors.ErrInvalidPeriode
		}
		p = parsed
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	rows, total, err := s.ledgerRepo.ListPeriodik(ctx, p, pilar, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return rows, helpers.NewPaginationInfo(total, page, limit), nil
}
