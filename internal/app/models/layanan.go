package models

import "time"

// Legacy pillar codes. The pillar set is an open enumeration sourced from
// master_pilar_layanan; these four are retained for data recorded before the
// master table existed.
const (
	PilarPendidikanFormal    = "pendidikan_formal"
	PilarPendidikanPesantren = "pendidikan_pesantren"
	PilarAsramaKonsumsi      = "asrama_konsumsi"
	PilarBantuanLangsung     = "bantuan_langsung"

	// PilarLainnya collects rows whose kategori has no pillar mapping.
	PilarLainnya = "lainnya"
)

// AllocationSource tags which physical table an allocation row came from.
// The read path only trusts SourceLedger; the other two feed generation.
type AllocationSource string

const (
	SourceLedger            AllocationSource = "ledger"
	SourceDirectTransaction AllocationSource = "direct_transaction"
	SourceLegacyAllocation  AllocationSource = "legacy_allocation"
)

// AllocationRow is one normalized allocation independent of its physical
// source, ready for aggregation.
type AllocationRow struct {
	SantriID   string           `json:"santriId"`
	Periode    string           `json:"periode"` // Canonical YYYY-MM
	Pilar      string           `json:"pilar"`
	Amount     float64          `json:"amount"`
	Source     AllocationSource `json:"source"`
	KeuanganID *string          `json:"keuanganId,omitempty"` // Back-reference for per-transaction rows
}

// LedgerLayananSantri is a per-santri service ledger row, the system of
// record for realized services.
type LedgerLayananSantri struct {
	ID                  string            `json:"id" db:"id"`
	SantriID            string            `json:"santriId" db:"santri_id"`
	Periode             string            `json:"periode" db:"periode"` // YYYY-MM
	Pilar               string            `json:"pilarLayanan" db:"pilar_layanan"`
	NilaiLayanan        float64           `json:"nilaiLayanan" db:"nilai_layanan"`
	SumberPerhitungan   SumberPerhitungan `json:"sumberPerhitungan" db:"sumber_perhitungan"`
	ReferensiKeuanganID *string           `json:"referensiKeuanganId,omitempty" db:"referensi_keuangan_id"`
	ReferensiPeriodikID *string           `json:"referensiPeriodikId,omitempty" db:"referensi_periodik_id"`
	CreatedAt           time.Time         `json:"createdAt" db:"created_at"`

	// Joined data
	Santri *Santri `json:"santri,omitempty"`
}

// LedgerPeriodik is a monthly snapshot row: total expenditure, population
// snapshot and the computed per-head share for one (periode, pilar).
type LedgerPeriodik struct {
	ID                   string            `json:"id" db:"id"`
	Periode              string            `json:"periode" db:"periode"` // YYYY-MM
	Pilar                string            `json:"pilarLayanan" db:"pilar_layanan"`
	TotalPengeluaran     float64           `json:"totalPengeluaran" db:"total_pengeluaran"`
	JumlahSantriSnapshot int               `json:"jumlahSantriSnapshot" db:"jumlah_santri_snapshot"`
	NilaiPerSantri       float64           `json:"nilaiPerSantri" db:"nilai_per_santri"`
	SumberPerhitungan    SumberPerhitungan `json:"sumberPerhitungan" db:"sumber_perhitungan"`
	Status               PeriodikStatus    `json:"status" db:"status"`
	Catatan              *string           `json:"catatan,omitempty" db:"catatan"`
	CreatedAt            time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time         `json:"updatedAt" db:"updated_at"`
}
