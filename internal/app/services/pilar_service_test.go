package services

import (
	"testing"

	"github.com/emaktab/pesantren-backend/internal/app/models"
)

func TestKategoriMapperLegacyDefaults(t *testing.T) {
	mapper := NewKategoriMapper(nil)

	tests := []struct {
		kategori string
		want     string
	}{
		{"Pendidikan Formal", models.PilarPendidikanFormal},
		{"Pendidikan Pesantren", models.PilarPendidikanPesantren},
		{"Operasional dan Konsumsi Santri", models.PilarAsramaKonsumsi},
		{"Bantuan Langsung Yayasan", models.PilarBantuanLangsung},
	}

	for _, tt := range tests {
		if got := mapper.Resolve(tt.kategori); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.kategori, got, tt.want)
		}
	}
}

func TestKategoriMapperUnmappedGoesToLainnya(t *testing.T) {
	mapper := NewKategoriMapper(nil)

	if got := mapper.Resolve("Pembangunan Gedung"); got != models.PilarLainnya {
		t.Errorf("Resolve(unmapped) = %q, want %q", got, models.PilarLainnya)
	}
	if mapper.Known("Pembangunan Gedung") {
		t.Error("Known should be false for an unmapped kategori")
	}
}

func TestKategoriMapperMasterRowsOverrideLegacy(t *testing.T) {
	kesehatan := "kesehatan"
	override := models.PilarPendidikanPesantren
	mapper := NewKategoriMapper([]*models.MasterKategoriPengeluaran{
		{Nama: "Layanan Kesehatan", Jenis: "Pengeluaran", PilarLayananKode: &kesehatan},
		{Nama: "Pendidikan Formal", Jenis: "Pengeluaran", PilarLayananKode: &override},
		{Nama: "Tanpa Pilar", Jenis: "Pengeluaran"}, // nil kode must not map
	})

	if got := mapper.Resolve("Layanan Kesehatan"); got != "kesehatan" {
		t.Errorf("Resolve(master row) = %q, want kesehatan", got)
	}
	if got := mapper.Resolve("Pendidikan Formal"); got != models.PilarPendidikanPesantren {
		t.Errorf("master row should override the legacy mapping, got %q", got)
	}
	if got := mapper.Resolve("Tanpa Pilar"); got != models.PilarLainnya {
		t.Errorf("kategori without a pillar kode should resolve to lainnya, got %q", got)
	}
}
