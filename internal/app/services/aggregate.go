package services

import (
	"sort"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/pkg/periode"
)

// foldRealisasi folds ledger rows into one summary per santri. Every member
// of the population appears in the result, zero-valued when no ledger row
// exists for them. Santri present in the ledger but outside the population
// (status changed after the rows were written) are kept as well.
func foldRealisasi(population []*models.Santri, rows []*models.LedgerLayananSantri) []dto.RealisasiSummary {
	summaries := make(map[string]*dto.RealisasiSummary)

	add := func(s *models.Santri) *dto.RealisasiSummary {
		if existing, ok := summaries[s.ID]; ok {
			return existing
		}
		summary := &dto.RealisasiSummary{
			SantriID:   s.ID,
			SantriNama: s.NamaLengkap,
			SantriNISN: s.NISN,
			PerPilar:   make(map[string]float64),
		}
		summaries[s.ID] = summary
		return summary
	}

	for _, s := range population {
		add(s)
	}

	for _, row := range rows {
		if row.Santri == nil {
			continue
		}
		summary := add(row.Santri)
		summary.PerPilar[row.Pilar] += row.NilaiLayanan
		summary.Total += row.NilaiLayanan
	}

	result := make([]dto.RealisasiSummary, 0, len(summaries))
	for _, summary := range summaries {
		fillLegacyPillarFields(summary)
		result = append(result, *summary)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SantriNama != result[j].SantriNama {
			return result[i].SantriNama < result[j].SantriNama
		}
		return result[i].SantriID < result[j].SantriID
	})

	return result
}

// fillLegacyPillarFields mirrors the open PerPilar map onto the four fixed
// legacy fields for consumers not yet on the dynamic pillar schema.
func fillLegacyPillarFields(s *dto.RealisasiSummary) {
	s.PendidikanFormal = s.PerPilar[models.PilarPendidikanFormal]
	s.PendidikanPesantren = s.PerPilar[models.PilarPendidikanPesantren]
	s.AsramaKonsumsi = s.PerPilar[models.PilarAsramaKonsumsi]
	s.BantuanLangsung = s.PerPilar[models.PilarBantuanLangsung]
}

// foldMonthly groups one santri's ledger rows into per-month breakdowns,
// oldest month first.
func foldMonthly(rows []*models.LedgerLayananSantri) []dto.MonthlyBreakdown {
	months := make(map[string]*dto.MonthlyBreakdown)

	for _, row := range rows {
		m, ok := months[row.Periode]
		if !ok {
			m = &dto.MonthlyBreakdown{
				Periode:  row.Periode,
				Bulan:    periode.Display(row.Periode),
				PerPilar: make(map[string]float64),
			}
			months[row.Periode] = m
		}
		m.PerPilar[row.Pilar] += row.NilaiLayanan
		m.Total += row.NilaiLayanan
	}

	result := make([]dto.MonthlyBreakdown, 0, len(months))
	for _, m := range months {
		result = append(result, *m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Periode < result[j].Periode
	})

	return result
}
