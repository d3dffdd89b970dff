package services

import (
	"testing"

	"github.com/emaktab/pesantren-backend/internal/app/models"
)

func ledgerRow(santri *models.Santri, p, pilar string, nilai float64) *models.LedgerLayananSantri {
	return &models.LedgerLayananSantri{
		SantriID:     santri.ID,
		Periode:      p,
		Pilar:        pilar,
		NilaiLayanan: nilai,
		Santri:       santri,
	}
}

func TestFoldRealisasiPopulationCompleteness(t *testing.T) {
	ahmad := &models.Santri{ID: "s-1", NamaLengkap: "Ahmad"}
	budi := &models.Santri{ID: "s-2", NamaLengkap: "Budi"}
	citra := &models.Santri{ID: "s-3", NamaLengkap: "Citra"}
	population := []*models.Santri{ahmad, budi, citra}

	rows := []*models.LedgerLayananSantri{
		ledgerRow(ahmad, "2024-09", models.PilarAsramaKonsumsi, 1_200_000),
		ledgerRow(budi, "2024-09", models.PilarAsramaKonsumsi, 1_200_000),
	}

	summaries := foldRealisasi(population, rows)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	// Sorted by name: Ahmad, Budi, Citra
	if summaries[2].SantriID != "s-3" {
		t.Fatalf("expected Citra last, got %s", summaries[2].SantriID)
	}
	if summaries[2].Total != 0 {
		t.Errorf("santri with no ledger rows should have zero total, got %v", summaries[2].Total)
	}
	if summaries[2].PerPilar == nil {
		t.Error("zero summary should still carry an initialized PerPilar map")
	}
}

func TestFoldRealisasiAdditivity(t *testing.T) {
	ahmad := &models.Santri{ID: "s-1", NamaLengkap: "Ahmad"}

	rows := []*models.LedgerLayananSantri{
		ledgerRow(ahmad, "2024-09", models.PilarAsramaKonsumsi, 1_200_000),
		ledgerRow(ahmad, "2024-09", models.PilarPendidikanPesantren, 800_000),
		ledgerRow(ahmad, "2024-09", models.PilarBantuanLangsung, 500_000),
		ledgerRow(ahmad, "2024-09", models.PilarBantuanLangsung, 250_000),
	}

	summaries := foldRealisasi([]*models.Santri{ahmad}, rows)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.PerPilar[models.PilarBantuanLangsung] != 750_000 {
		t.Errorf("bantuan langsung = %v, want 750000", s.PerPilar[models.PilarBantuanLangsung])
	}
	if s.Total != 2_750_000 {
		t.Errorf("total = %v, want 2750000", s.Total)
	}

	// Legacy mirror fields must agree with the map
	if s.AsramaKonsumsi != s.PerPilar[models.PilarAsramaKonsumsi] {
		t.Error("legacy asramaKonsumsi field disagrees with PerPilar")
	}
	if s.BantuanLangsung != 750_000 {
		t.Errorf("legacy bantuanLangsung = %v, want 750000", s.BantuanLangsung)
	}
}

func TestFoldRealisasiKeepsOpenPillarCodes(t *testing.T) {
	ahmad := &models.Santri{ID: "s-1", NamaLengkap: "Ahmad"}

	rows := []*models.LedgerLayananSantri{
		ledgerRow(ahmad, "2024-09", "kesehatan", 400_000),
	}

	summaries := foldRealisasi([]*models.Santri{ahmad}, rows)
	if summaries[0].PerPilar["kesehatan"] != 400_000 {
		t.Errorf("open pillar code lost in fold: %v", summaries[0].PerPilar)
	}
	if summaries[0].Total != 400_000 {
		t.Errorf("total = %v, want 400000", summaries[0].Total)
	}
}

func TestFoldRealisasiIncludesNonPopulationSantri(t *testing.T) {
	ahmad := &models.Santri{ID: "s-1", NamaLengkap: "Ahmad"}
	alumni := &models.Santri{ID: "s-9", NamaLengkap: "Zaid", Status: models.SantriStatusLulus}

	rows := []*models.LedgerLayananSantri{
		ledgerRow(alumni, "2024-09", models.PilarAsramaKonsumsi, 100_000),
	}

	summaries := foldRealisasi([]*models.Santri{ahmad}, rows)
	if len(summaries) != 2 {
		t.Fatalf("ledger rows of santri outside the population must not vanish, got %d summaries", len(summaries))
	}
}

func TestFoldMonthlyGroupsAndSorts(t *testing.T) {
	rows := []*models.LedgerLayananSantri{
		{SantriID: "s-1", Periode: "2024-10", Pilar: models.PilarAsramaKonsumsi, NilaiLayanan: 900_000},
		{SantriID: "s-1", Periode: "2024-09", Pilar: models.PilarAsramaKonsumsi, NilaiLayanan: 1_200_000},
		{SantriID: "s-1", Periode: "2024-09", Pilar: models.PilarPendidikanPesantren, NilaiLayanan: 600_000},
	}

	months := foldMonthly(rows)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}

	if months[0].Periode != "2024-09" || months[1].Periode != "2024-10" {
		t.Fatalf("months not sorted oldest first: %s, %s", months[0].Periode, months[1].Periode)
	}
	if months[0].Total != 1_800_000 {
		t.Errorf("september total = %v, want 1800000", months[0].Total)
	}
	if months[0].Bulan != "September 2024" {
		t.Errorf("display label = %q, want %q", months[0].Bulan, "September 2024")
	}
}
