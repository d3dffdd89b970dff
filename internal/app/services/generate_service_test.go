package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/db"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
)

// fakeLedgerStore keeps generated rows in memory, keyed the way the real
// table is keyed, so idempotence is observable.
type fakeLedgerStore struct {
	rows      []*models.LedgerLayananSantri
	periodik  map[string]*models.LedgerPeriodik
	deletions int
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{periodik: make(map[string]*models.LedgerPeriodik)}
}

func (f *fakeLedgerStore) DeleteGenerated(ctx context.Context, tx pgx.Tx, periode, pilar string, sumber models.SumberPerhitungan) (int64, error) {
	f.deletions++
	var kept []*models.LedgerLayananSantri
	var deleted int64
	for _, row := range f.rows {
		if row.Periode == periode && row.Pilar == pilar && row.SumberPerhitungan == sumber {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

func (f *fakeLedgerStore) InsertRows(ctx context.Context, tx pgx.Tx, rows []*models.LedgerLayananSantri) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeLedgerStore) UpsertPeriodik(ctx context.Context, tx pgx.Tx, snap *models.LedgerPeriodik) error {
	key := snap.Periode + "|" + snap.Pilar
	if existing, ok := f.periodik[key]; ok {
		snap.ID = existing.ID
	} else {
		snap.ID = fmt.Sprintf("periodik-%d", len(f.periodik)+1)
	}
	f.periodik[key] = snap
	return nil
}

func (f *fakeLedgerStore) GetPeriodik(ctx context.Context, periode, pilar string) (*models.LedgerPeriodik, error) {
	snap, ok := f.periodik[periode+"|"+pilar]
	if !ok {
		return nil, apperrors.ErrPeriodikNotFound
	}
	return snap, nil
}

func (f *fakeLedgerStore) DeletePeriodik(ctx context.Context, tx pgx.Tx, periode, pilar string) error {
	key := periode + "|" + pilar
	if _, ok := f.periodik[key]; !ok {
		return apperrors.ErrPeriodikNotFound
	}
	delete(f.periodik, key)
	return nil
}

type fakeKeuanganStore struct {
	kategoriTotals []repositories.KategoriTotal
	direct         []*models.TransaksiKeuangan
	alokasi        []*models.AlokasiPengeluaranSantri
}

func (f *fakeKeuanganStore) SumPengeluaranByKategori(ctx context.Context, start, end time.Time) ([]repositories.KategoriTotal, error) {
	return f.kategoriTotals, nil
}

func (f *fakeKeuanganStore) ListDirectPengeluaran(ctx context.Context, start, end time.Time) ([]*models.TransaksiKeuangan, error) {
	return f.direct, nil
}

func (f *fakeKeuanganStore) ListAlokasiInPeriod(ctx context.Context, start, end time.Time) ([]*models.AlokasiPengeluaranSantri, error) {
	return f.alokasi, nil
}

type fakeSantriStore struct {
	population []*models.Santri
}

func (f *fakeSantriStore) ActiveMukimPopulation(ctx context.Context, cutoff time.Time) ([]*models.Santri, error) {
	return f.population, nil
}

type fakeMapperBuilder struct{}

func (fakeMapperBuilder) BuildMapper(ctx context.Context) (*KategoriMapper, error) {
	return NewKategoriMapper(nil), nil
}

type fakeTxRunner struct {
	runs int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.runs++
	return fn(ctx, nil)
}

func mukimPopulation(n int) []*models.Santri {
	population := make([]*models.Santri, 0, n)
	for i := 0; i < n; i++ {
		population = append(population, &models.Santri{
			ID:          fmt.Sprintf("santri-%02d", i+1),
			NamaLengkap: fmt.Sprintf("Santri %02d", i+1),
			Kategori:    models.KategoriBinaanMukim,
			Status:      models.SantriStatusAktif,
		})
	}
	return population
}

func newGenerateServiceForTest(ledger *fakeLedgerStore, keuangan *fakeKeuanganStore, santri *fakeSantriStore, tx *fakeTxRunner) *GenerateService {
	return &GenerateService{
		ledgerRepo:   ledger,
		keuanganRepo: keuangan,
		santriRepo:   santri,
		pilarService: fakeMapperBuilder{},
		tx:           tx,
	}
}

func TestGenerateFlatDivision(t *testing.T) {
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		kategoriTotals: []repositories.KategoriTotal{
			{Kategori: "Operasional dan Konsumsi Santri", Total: 9_000_000},
			{Kategori: "Operasional dan Konsumsi Santri", Total: 3_000_000},
			{Kategori: "Pendidikan Pesantren", Total: 5_000_000}, // other pillar, must not count
		},
	}
	santri := &fakeSantriStore{population: mukimPopulation(10)}
	tx := &fakeTxRunner{}
	svc := newGenerateServiceForTest(ledger, keuangan, santri, tx)

	result, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Periode: "2024-09",
		Pilar:   models.PilarAsramaKonsumsi,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if result.TotalPengeluaran != 12_000_000 {
		t.Errorf("expected total 12000000, got %v", result.TotalPengeluaran)
	}
	if result.NilaiPerSantri != 1_200_000 {
		t.Errorf("expected per-santri value 1200000, got %v", result.NilaiPerSantri)
	}
	if result.RowsInserted != 10 {
		t.Errorf("expected 10 rows inserted, got %d", result.RowsInserted)
	}
	if len(ledger.rows) != 10 {
		t.Fatalf("expected 10 ledger rows, got %d", len(ledger.rows))
	}

	for _, row := range ledger.rows {
		if row.NilaiLayanan != 1_200_000 {
			t.Errorf("row for %s has value %v, want 1200000", row.SantriID, row.NilaiLayanan)
		}
		if row.SumberPerhitungan != models.SumberGeneratePeriod {
			t.Errorf("row has sumber %s, want %s", row.SumberPerhitungan, models.SumberGeneratePeriod)
		}
		if row.ReferensiPeriodikID == nil {
			t.Error("row is missing its periodik back-reference")
		}
	}

	snap := ledger.periodik["2024-09|"+models.PilarAsramaKonsumsi]
	if snap == nil {
		t.Fatal("expected a periodik snapshot to be written")
	}
	if snap.JumlahSantriSnapshot != 10 {
		t.Errorf("snapshot population = %d, want 10", snap.JumlahSantriSnapshot)
	}
	if snap.Status != models.PeriodikDraft {
		t.Errorf("snapshot status = %s, want %s", snap.Status, models.PeriodikDraft)
	}
}

func TestGenerateFlatEmptyPopulation(t *testing.T) {
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		kategoriTotals: []repositories.KategoriTotal{
			{Kategori: "Operasional dan Konsumsi Santri", Total: 1_000_000},
		},
	}
	santri := &fakeSantriStore{}
	tx := &fakeTxRunner{}
	svc := newGenerateServiceForTest(ledger, keuangan, santri, tx)

	_, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Periode: "2024-09",
		Pilar:   models.PilarAsramaKonsumsi,
	})
	if !errors.Is(err, apperrors.ErrEmptyPopulation) {
		t.Fatalf("expected ErrEmptyPopulation, got %v", err)
	}

	if tx.runs != 0 {
		t.Error("no transaction should start when the population is empty")
	}
	if len(ledger.rows) != 0 || len(ledger.periodik) != 0 {
		t.Error("nothing should be written when the population is empty")
	}
}

func TestGenerateFlatIdempotentRegeneration(t *testing.T) {
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		kategoriTotals: []repositories.KategoriTotal{
			{Kategori: "Operasional dan Konsumsi Santri", Total: 12_000_000},
		},
	}
	santri := &fakeSantriStore{population: mukimPopulation(10)}
	tx := &fakeTxRunner{}
	svc := newGenerateServiceForTest(ledger, keuangan, santri, tx)

	req := dto.GenerateRequest{Periode: "2024-09", Pilar: models.PilarAsramaKonsumsi}
	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Second run with a changed total must replace, not accumulate
	keuangan.kategoriTotals = []repositories.KategoriTotal{
		{Kategori: "Operasional dan Konsumsi Santri", Total: 24_000_000},
	}
	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if result.RowsReplaced != 10 {
		t.Errorf("expected 10 rows replaced, got %d", result.RowsReplaced)
	}
	if len(ledger.rows) != 10 {
		t.Fatalf("expected 10 rows after regeneration, got %d", len(ledger.rows))
	}
	for _, row := range ledger.rows {
		if row.NilaiLayanan != 2_400_000 {
			t.Errorf("row has stale value %v after regeneration", row.NilaiLayanan)
		}
	}
	if len(ledger.periodik) != 1 {
		t.Errorf("expected a single periodik snapshot, got %d", len(ledger.periodik))
	}
}

func TestGenerateDirectPerTransaction(t *testing.T) {
	santriA := "santri-a"
	santriB := "santri-b"
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		direct: []*models.TransaksiKeuangan{
			{ID: "trx-1", Kategori: "Bantuan Langsung Yayasan", Jumlah: 500_000, SantriID: &santriA},
			{ID: "trx-2", Kategori: "Bantuan Langsung Yayasan", Jumlah: 300_000, SantriID: &santriB},
			{ID: "trx-3", Kategori: "Bantuan Langsung Yayasan", Jumlah: 200_000, SantriID: &santriB},
			{ID: "trx-4", Kategori: "Pendidikan Formal", Jumlah: 900_000, SantriID: &santriA}, // different pillar
		},
	}
	santri := &fakeSantriStore{}
	tx := &fakeTxRunner{}
	svc := newGenerateServiceForTest(ledger, keuangan, santri, tx)

	result, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Periode: "2024-09",
		Pilar:   models.PilarBantuanLangsung,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if result.RowsInserted != 3 {
		t.Errorf("expected 3 rows inserted, got %d", result.RowsInserted)
	}
	if result.TotalPengeluaran != 1_000_000 {
		t.Errorf("expected total 1000000, got %v", result.TotalPengeluaran)
	}
	if result.JumlahSantri != 2 {
		t.Errorf("expected 2 distinct santri, got %d", result.JumlahSantri)
	}

	perSantri := make(map[string]float64)
	for _, row := range ledger.rows {
		if row.SumberPerhitungan != models.SumberBantuanLangsung {
			t.Errorf("row has sumber %s, want %s", row.SumberPerhitungan, models.SumberBantuanLangsung)
		}
		if row.ReferensiKeuanganID == nil {
			t.Error("per-transaction row is missing its keuangan back-reference")
		}
		perSantri[row.SantriID] += row.NilaiLayanan
	}
	if perSantri[santriA] != 500_000 {
		t.Errorf("santri A total = %v, want 500000", perSantri[santriA])
	}
	if perSantri[santriB] != 500_000 {
		t.Errorf("santri B total = %v, want 500000", perSantri[santriB])
	}

	// The per-transaction path records a snapshot just like the flat one
	snap := ledger.periodik["2024-09|"+models.PilarBantuanLangsung]
	if snap == nil {
		t.Fatal("expected a periodik snapshot to be written")
	}
	if snap.TotalPengeluaran != 1_000_000 {
		t.Errorf("snapshot total = %v, want 1000000", snap.TotalPengeluaran)
	}
	if snap.JumlahSantriSnapshot != 2 {
		t.Errorf("snapshot population = %d, want 2", snap.JumlahSantriSnapshot)
	}
	if snap.NilaiPerSantri != 500_000 {
		t.Errorf("snapshot per-santri value = %v, want 500000", snap.NilaiPerSantri)
	}
	if snap.SumberPerhitungan != models.SumberBantuanLangsung {
		t.Errorf("snapshot sumber = %s, want %s", snap.SumberPerhitungan, models.SumberBantuanLangsung)
	}
	if snap.Status != models.PeriodikDraft {
		t.Errorf("snapshot status = %s, want %s", snap.Status, models.PeriodikDraft)
	}
	if result.Periodik == nil {
		t.Error("result should carry the written snapshot")
	}
}

func TestGenerateDirectEmptyInput(t *testing.T) {
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{} // no transactions, no allocations
	tx := &fakeTxRunner{}
	svc := newGenerateServiceForTest(ledger, keuangan, &fakeSantriStore{}, tx)

	_, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Periode: "2024-09",
		Pilar:   models.PilarBantuanLangsung,
	})
	if !errors.Is(err, apperrors.ErrEmptyPopulation) {
		t.Fatalf("expected ErrEmptyPopulation, got %v", err)
	}

	if tx.runs != 0 {
		t.Error("no transaction should start when nothing qualifies")
	}
	if len(ledger.rows) != 0 || len(ledger.periodik) != 0 {
		t.Error("nothing should be written when nothing qualifies")
	}
}

func TestGenerateDirectIncludesLegacyAllocations(t *testing.T) {
	santriA := "santri-a"
	kategori := "Bantuan Langsung Yayasan"
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		alokasi: []*models.AlokasiPengeluaranSantri{
			{ID: "alok-1", KeuanganID: "trx-9", SantriID: santriA, NominalAlokasi: 750_000, KategoriKeuangan: &kategori},
		},
	}
	svc := newGenerateServiceForTest(ledger, keuangan, &fakeSantriStore{}, &fakeTxRunner{})

	result, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Periode: "2024-09",
		Pilar:   models.PilarBantuanLangsung,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if result.RowsInserted != 1 || result.TotalPengeluaran != 750_000 {
		t.Fatalf("expected one 750000 row from legacy allocation, got %d rows totalling %v",
			result.RowsInserted, result.TotalPengeluaran)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	svc := newGenerateServiceForTest(newFakeLedgerStore(), &fakeKeuanganStore{}, &fakeSantriStore{}, &fakeTxRunner{})

	_, err := svc.Generate(context.Background(), dto.GenerateRequest{Periode: "2024-09", Pilar: "lainnya"})
	if !errors.Is(err, apperrors.ErrUnsupportedPilar) {
		t.Errorf("expected ErrUnsupportedPilar for lainnya, got %v", err)
	}

	_, err = svc.Generate(context.Background(), dto.GenerateRequest{Periode: "2024-13", Pilar: models.PilarAsramaKonsumsi})
	if !errors.Is(err, apperrors.ErrInvalidPeriode) {
		t.Errorf("expected ErrInvalidPeriode for month 13, got %v", err)
	}
}

func TestPreviewFlatDoesNotWrite(t *testing.T) {
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		kategoriTotals: []repositories.KategoriTotal{
			{Kategori: "Operasional dan Konsumsi Santri", Total: 6_000_000},
		},
	}
	santri := &fakeSantriStore{population: mukimPopulation(4)}
	tx := &fakeTxRunner{}
	svc := newGenerateServiceForTest(ledger, keuangan, santri, tx)

	result, _, err := svc.Preview(context.Background(), "2024-09", models.PilarAsramaKonsumsi)
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	if result.NilaiPerSantri != 1_500_000 {
		t.Errorf("expected per-santri preview 1500000, got %v", result.NilaiPerSantri)
	}
	if tx.runs != 0 || len(ledger.rows) != 0 {
		t.Error("preview must not touch the ledger")
	}
}

func TestPreviewDirectIncludesLegacyAllocations(t *testing.T) {
	santriA := "santri-a"
	santriB := "santri-b"
	kategori := "Bantuan Langsung Yayasan"
	keuangan := &fakeKeuanganStore{
		direct: []*models.TransaksiKeuangan{
			{ID: "trx-1", Kategori: kategori, Jumlah: 500_000, SantriID: &santriA},
		},
		alokasi: []*models.AlokasiPengeluaranSantri{
			{ID: "alok-1", KeuanganID: "trx-9", SantriID: santriA, NominalAlokasi: 250_000, KategoriKeuangan: &kategori},
			{ID: "alok-2", KeuanganID: "trx-10", SantriID: santriB, NominalAlokasi: 400_000, KategoriKeuangan: &kategori},
		},
	}
	svc := newGenerateServiceForTest(newFakeLedgerStore(), keuangan, &fakeSantriStore{}, &fakeTxRunner{})

	result, candidates, err := svc.Preview(context.Background(), "2024-09", models.PilarBantuanLangsung)
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	// Preview must see the same inputs Generate would write
	if result.TotalPengeluaran != 1_150_000 {
		t.Errorf("preview total = %v, want 1150000", result.TotalPengeluaran)
	}
	if result.JumlahSantri != 2 {
		t.Errorf("preview counted %d santri, want 2", result.JumlahSantri)
	}

	byID := make(map[string]dto.GenerateCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.SantriID] = c
	}
	if c := byID[santriA]; c.TotalNilai != 750_000 || c.JumlahTransaksi != 2 {
		t.Errorf("santri A candidate = %+v, want 750000 over 2 entries", c)
	}
	if c := byID[santriB]; c.TotalNilai != 400_000 || c.JumlahTransaksi != 1 {
		t.Errorf("santri B candidate = %+v, want 400000 over 1 entry", c)
	}
}

func TestDeletePeriodikRemovesSlot(t *testing.T) {
	ledger := newFakeLedgerStore()
	keuangan := &fakeKeuanganStore{
		kategoriTotals: []repositories.KategoriTotal{
			{Kategori: "Operasional dan Konsumsi Santri", Total: 4_000_000},
		},
	}
	santri := &fakeSantriStore{population: mukimPopulation(4)}
	svc := newGenerateServiceForTest(ledger, keuangan, santri, &fakeTxRunner{})

	if _, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Periode: "2024-09",
		Pilar:   models.PilarAsramaKonsumsi,
	}); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	result, err := svc.DeletePeriodik(context.Background(), "2024-09", models.PilarAsramaKonsumsi)
	if err != nil {
		t.Fatalf("DeletePeriodik returned error: %v", err)
	}

	if result.RowsDeleted != 4 {
		t.Errorf("expected 4 ledger rows deleted, got %d", result.RowsDeleted)
	}
	if len(ledger.rows) != 0 {
		t.Errorf("expected no ledger rows after deletion, got %d", len(ledger.rows))
	}
	if len(ledger.periodik) != 0 {
		t.Errorf("expected no snapshot after deletion, got %d", len(ledger.periodik))
	}
}

func TestDeletePeriodikRejectsBadInput(t *testing.T) {
	svc := newGenerateServiceForTest(newFakeLedgerStore(), &fakeKeuanganStore{}, &fakeSantriStore{}, &fakeTxRunner{})

	_, err := svc.DeletePeriodik(context.Background(), "2024-09", models.PilarAsramaKonsumsi)
	if !errors.Is(err, apperrors.ErrPeriodikNotFound) {
		t.Errorf("expected ErrPeriodikNotFound for missing slot, got %v", err)
	}

	_, err = svc.DeletePeriodik(context.Background(), "2024-09", "lainnya")
	if !errors.Is(err, apperrors.ErrUnsupportedPilar) {
		t.Errorf("expected ErrUnsupportedPilar, got %v", err)
	}

	_, err = svc.DeletePeriodik(context.Background(), "2024-13", models.PilarAsramaKonsumsi)
	if !errors.Is(err, apperrors.ErrInvalidPeriode) {
		t.Errorf("expected ErrInvalidPeriode, got %v", err)
	}
}
