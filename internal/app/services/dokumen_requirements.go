package services

import (
	"github.com/emaktab/pesantren-backend/internal/app/models"
)

// RequirementsFor derives the document checklist for one santri from
// kategori and status sosial. The checklist is never persisted; it is
// recomputed on every read so rule changes apply retroactively.
func RequirementsFor(kategori, statusSosial string) []models.DokumenRequirement {
	switch kategori {
	case models.KategoriBinaanMukim:
		reqs := []models.DokumenRequirement{
			{JenisDokumen: models.DokumenPasFoto, Required: true},
			{JenisDokumen: models.DokumenKartuKeluarga, Required: true},
			{JenisDokumen: models.DokumenAktaKelahiran, Required: true},
			{JenisDokumen: models.DokumenKTPWaliUtama, Required: true},
			{JenisDokumen: models.DokumenKTPWaliPendamp, Required: false},
			{JenisDokumen: models.DokumenIjazahTerakhir, Required: true},
			{JenisDokumen: models.DokumenTranskripNilai, Required: true},
			{JenisDokumen: models.DokumenSuratSehat, Required: true},
		}
		reqs = append(reqs, statusSosialRequirements(statusSosial)...)
		reqs = append(reqs, models.DokumenRequirement{JenisDokumen: models.DokumenSertifikat, Required: false})
		return reqs

	case models.KategoriBinaanNonMukim:
		reqs := []models.DokumenRequirement{
			{JenisDokumen: models.DokumenPasFoto, Required: true},
			{JenisDokumen: models.DokumenKartuKeluarga, Required: true},
			{JenisDokumen: models.DokumenAktaKelahiran, Required: true},
			{JenisDokumen: models.DokumenKTPWaliUtama, Required: true},
			{JenisDokumen: models.DokumenKTPWaliPendamp, Required: false},
		}
		reqs = append(reqs, statusSosialRequirements(statusSosial)...)
		return reqs

	default:
		// Reguler programs (mahasantri, TPQ, madin) share one short list
		// that does not vary by status sosial.
		return []models.DokumenRequirement{
			{JenisDokumen: models.DokumenPasFoto, Required: true},
			{JenisDokumen: models.DokumenKartuKeluarga, Required: true},
			{JenisDokumen: models.DokumenAktaKelahiran, Required: true},
			{JenisDokumen: models.DokumenIjazahTerakhir, Required: false},
			{JenisDokumen: models.DokumenTranskripNilai, Required: false},
		}
	}
}

// statusSosialRequirements adds the death certificates matching the status
// and an SKTM for every status other than Lengkap.
func statusSosialRequirements(statusSosial string) []models.DokumenRequirement {
	var reqs []models.DokumenRequirement

	switch statusSosial {
	case models.StatusSosialYatim:
		reqs = append(reqs, models.DokumenRequirement{JenisDokumen: models.DokumenAktaKematianAyah, Required: true})
	case models.StatusSosialPiatu:
		reqs = append(reqs, models.DokumenRequirement{JenisDokumen: models.DokumenAktaKematianIbu, Required: true})
	case models.StatusSosialYatimPiatu:
		reqs = append(reqs,
			models.DokumenRequirement{JenisDokumen: models.DokumenAktaKematianAyah, Required: true},
			models.DokumenRequirement{JenisDokumen: models.DokumenAktaKematianIbu, Required: true},
		)
	}

	switch statusSosial {
	case models.StatusSosialDhuafa, models.StatusSosialYatim, models.StatusSosialPiatu, models.StatusSosialYatimPiatu:
		reqs = append(reqs, models.DokumenRequirement{JenisDokumen: models.DokumenSKTM, Required: true})
	}

	return reqs
}
