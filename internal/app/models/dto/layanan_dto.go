package dto

import "github.com/emaktab/pesantren-backend/internal/app/models"

// RealisasiSummary is the per-santri service realization for one period.
// PerPilar is the authoritative open-keyed breakdown; the four named fields
// mirror the legacy pillar codes for consumers not yet on the dynamic schema.
type RealisasiSummary struct {
	SantriID   string  `json:"santriId"`
	SantriNama string  `json:"santriNama"`
	SantriNISN *string `json:"santriNisn,omitempty"`

	PerPilar map[string]float64 `json:"perPilar"`
	Total    float64            `json:"total"`

	PendidikanFormal    float64 `json:"pendidikanFormal"`
	PendidikanPesantren float64 `json:"pendidikanPesantren"`
	AsramaKonsumsi      float64 `json:"asramaKonsumsi"`
	BantuanLangsung     float64 `json:"bantuanLangsung"`
}

// MonthlyBreakdown is one month of a santri's service history.
type MonthlyBreakdown struct {
	Periode  string             `json:"periode"` // YYYY-MM
	Bulan    string             `json:"bulan"`   // Display label, e.g. "September 2024"
	PerPilar map[string]float64 `json:"perPilar"`
	Total    float64            `json:"total"`
}

// PilarExpenditure is one month's qualifying expenditure total for a pillar,
// used to preview a generation run.
type PilarExpenditure struct {
	Periode string  `json:"periode"`
	Bulan   string  `json:"bulan"`
	Amount  float64 `json:"amount"`
}

// GenerateRequest asks for a periodic generation run.
type GenerateRequest struct {
	Periode string `json:"periode" binding:"required" example:"2024-09"`
	Pilar   string `json:"pilar" binding:"required" example:"asrama_konsumsi"`
}

// GenerateResult reports what a generation run wrote.
type GenerateResult struct {
	Periode          string                 `json:"periode"`
	Pilar            string                 `json:"pilar"`
	TotalPengeluaran float64                `json:"totalPengeluaran"`
	JumlahSantri     int                    `json:"jumlahSantri"`
	NilaiPerSantri   float64                `json:"nilaiPerSantri"`
	RowsInserted     int                    `json:"rowsInserted"`
	RowsReplaced     int64                  `json:"rowsReplaced"`
	Periodik         *models.LedgerPeriodik `json:"periodik,omitempty"`
}

// GenerateCandidate is one santri that a per-transaction generation run
// would produce entries for.
type GenerateCandidate struct {
	SantriID        string  `json:"santriId"`
	SantriNama      string  `json:"santriNama"`
	SantriNISN      *string `json:"santriNisn,omitempty"`
	TotalNilai      float64 `json:"totalNilai"`
	JumlahTransaksi int     `json:"jumlahTransaksi"`
}

// PeriodikDeleteResult reports what a slot deletion removed.
type PeriodikDeleteResult struct {
	Periode     string `json:"periode"`
	Pilar       string `json:"pilar"`
	RowsDeleted int64  `json:"rowsDeleted"`
}

// PeriodikListResponse lists periodic ledger rows.
type PeriodikListResponse struct {
	Periodik []*models.LedgerPeriodik `json:"periodik"`
}
