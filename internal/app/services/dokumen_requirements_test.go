package services

import (
	"testing"

	"github.com/emaktab/pesantren-backend/internal/app/models"
)

func requirementsIndex(reqs []models.DokumenRequirement) map[string]bool {
	index := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		index[r.JenisDokumen] = r.Required
	}
	return index
}

func TestRequirementsReguler(t *testing.T) {
	for _, kategori := range []string{models.KategoriMahasantri, models.KategoriTPQ, models.KategoriMadin, ""} {
		reqs := requirementsIndex(RequirementsFor(kategori, models.StatusSosialLengkap))

		for _, jenis := range []string{models.DokumenPasFoto, models.DokumenKartuKeluarga, models.DokumenAktaKelahiran} {
			if required, ok := reqs[jenis]; !ok || !required {
				t.Errorf("kategori %q: %s should be required", kategori, jenis)
			}
		}
		for _, jenis := range []string{models.DokumenIjazahTerakhir, models.DokumenTranskripNilai} {
			if required, ok := reqs[jenis]; !ok || required {
				t.Errorf("kategori %q: %s should be optional", kategori, jenis)
			}
		}
		if _, ok := reqs[models.DokumenKTPWaliUtama]; ok {
			t.Errorf("kategori %q: KTP Wali Utama should not appear on the reguler list", kategori)
		}
	}
}

func TestRequirementsBinaanMukim(t *testing.T) {
	reqs := requirementsIndex(RequirementsFor(models.KategoriBinaanMukim, models.StatusSosialLengkap))

	mustRequire := []string{
		models.DokumenPasFoto,
		models.DokumenKartuKeluarga,
		models.DokumenAktaKelahiran,
		models.DokumenKTPWaliUtama,
		models.DokumenIjazahTerakhir,
		models.DokumenTranskripNilai,
		models.DokumenSuratSehat,
	}
	for _, jenis := range mustRequire {
		if required, ok := reqs[jenis]; !ok || !required {
			t.Errorf("%s should be required for resident binaan", jenis)
		}
	}

	if required, ok := reqs[models.DokumenKTPWaliPendamp]; !ok || required {
		t.Error("KTP Wali Pendamping should be optional for resident binaan")
	}
	if required, ok := reqs[models.DokumenSertifikat]; !ok || required {
		t.Error("Sertifikat Prestasi should be optional for resident binaan")
	}
	if _, ok := reqs[models.DokumenSKTM]; ok {
		t.Error("SKTM should not appear for status sosial Lengkap")
	}
}

func TestRequirementsBinaanNonMukim(t *testing.T) {
	reqs := requirementsIndex(RequirementsFor(models.KategoriBinaanNonMukim, models.StatusSosialLengkap))

	for _, jenis := range []string{models.DokumenPasFoto, models.DokumenKartuKeluarga, models.DokumenAktaKelahiran, models.DokumenKTPWaliUtama} {
		if required, ok := reqs[jenis]; !ok || !required {
			t.Errorf("%s should be required for non-resident binaan", jenis)
		}
	}
	if required, ok := reqs[models.DokumenKTPWaliPendamp]; !ok || required {
		t.Error("KTP Wali Pendamping should be optional for non-resident binaan")
	}

	// The longer resident extras do not apply outside the pesantren
	for _, jenis := range []string{models.DokumenIjazahTerakhir, models.DokumenTranskripNilai, models.DokumenSuratSehat, models.DokumenSertifikat} {
		if _, ok := reqs[jenis]; ok {
			t.Errorf("%s should not appear for non-resident binaan", jenis)
		}
	}
}

func TestRequirementsStatusSosial(t *testing.T) {
	tests := []struct {
		statusSosial string
		mustRequire  []string
	}{
		{models.StatusSosialYatim, []string{models.DokumenAktaKematianAyah, models.DokumenSKTM}},
		{models.StatusSosialPiatu, []string{models.DokumenAktaKematianIbu, models.DokumenSKTM}},
		{models.StatusSosialYatimPiatu, []string{models.DokumenAktaKematianAyah, models.DokumenAktaKematianIbu, models.DokumenSKTM}},
		{models.StatusSosialDhuafa, []string{models.DokumenSKTM}},
	}

	for _, kategori := range []string{models.KategoriBinaanMukim, models.KategoriBinaanNonMukim} {
		for _, tt := range tests {
			reqs := requirementsIndex(RequirementsFor(kategori, tt.statusSosial))
			for _, jenis := range tt.mustRequire {
				if required, ok := reqs[jenis]; !ok || !required {
					t.Errorf("kategori %s status %s: %s should be required", kategori, tt.statusSosial, jenis)
				}
			}
		}
	}

	// Status sosial never alters the reguler list
	reguler := requirementsIndex(RequirementsFor(models.KategoriMahasantri, models.StatusSosialYatim))
	if _, ok := reguler[models.DokumenAktaKematianAyah]; ok {
		t.Error("death certificates should not appear on the reguler list")
	}
	if _, ok := reguler[models.DokumenSKTM]; ok {
		t.Error("SKTM should not appear on the reguler list")
	}
}
