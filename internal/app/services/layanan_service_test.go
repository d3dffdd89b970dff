package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
)

type fakeLayananLedgerStore struct {
	periodik map[string]*models.LedgerPeriodik
}

func (f *fakeLayananLedgerStore) ListRows(ctx context.Context, start, end string) ([]*models.LedgerLayananSantri, error) {
	return nil, nil
}

func (f *fakeLayananLedgerStore) ListRowsBySantri(ctx context.Context, santriID string) ([]*models.LedgerLayananSantri, error) {
	return nil, nil
}

func (f *fakeLayananLedgerStore) ListPeriodik(ctx context.Context, periode, pilar string, offset uint64, limit int) ([]*models.LedgerPeriodik, int64, error) {
	var result []*models.LedgerPeriodik
	for _, snap := range f.periodik {
		result = append(result, snap)
	}
	return result, int64(len(result)), nil
}

func (f *fakeLayananLedgerStore) GetPeriodik(ctx context.Context, periode, pilar string) (*models.LedgerPeriodik, error) {
	if snap, ok := f.periodik[periode+"|"+pilar]; ok {
		return snap, nil
	}
	return nil, apperrors.ErrPeriodikNotFound
}

type fakeLayananSantriStore struct{}

func (fakeLayananSantriStore) ActiveMukimPopulation(ctx context.Context, cutoff time.Time) ([]*models.Santri, error) {
	return nil, nil
}

func (fakeLayananSantriStore) GetByID(ctx context.Context, id string) (*models.Santri, error) {
	return nil, apperrors.ErrSantriNotFound
}

func TestGetPeriodikDetail(t *testing.T) {
	ledger := &fakeLayananLedgerStore{periodik: map[string]*models.LedgerPeriodik{
		"2024-09|" + models.PilarAsramaKonsumsi: {
			Periode:          "2024-09",
			Pilar:            models.PilarAsramaKonsumsi,
			TotalPengeluaran: 12_000_000,
		},
	}}
	svc := &LayananService{ledgerRepo: ledger, santriRepo: fakeLayananSantriStore{}}

	// Legacy labels normalize before the lookup
	snap, err := svc.GetPeriodikDetail(context.Background(), "September 2024", models.PilarAsramaKonsumsi)
	if err != nil {
		t.Fatalf("GetPeriodikDetail returned error: %v", err)
	}
	if snap.TotalPengeluaran != 12_000_000 {
		t.Errorf("snapshot total = %v, want 12000000", snap.TotalPengeluaran)
	}

	_, err = svc.GetPeriodikDetail(context.Background(), "2024-10", models.PilarAsramaKonsumsi)
	if !errors.Is(err, apperrors.ErrPeriodikNotFound) {
		t.Errorf("expected ErrPeriodikNotFound for never-generated slot, got %v", err)
	}

	_, err = svc.GetPeriodikDetail(context.Background(), "2024-13", models.PilarAsramaKonsumsi)
	if !errors.Is(err, apperrors.ErrInvalidPeriode) {
		t.Errorf("expected ErrInvalidPeriode, got %v", err)
	}
}
