package models

import "time"

// Transaction constants for the 'keuangan' table. Only posted expenditures in
// the UMUM ledger participate in layanan generation.
const (
	JenisPengeluaran = "Pengeluaran"
	JenisPemasukan   = "Pemasukan"

	TransaksiPosted = "posted"
	TransaksiDraft  = "draft"

	LedgerUmum = "UMUM"
)

// TransaksiKeuangan is an expenditure/income row from the 'keuangan' table.
type TransaksiKeuangan struct {
	ID             string    `json:"id" db:"id"`
	JenisTransaksi string    `json:"jenisTransaksi" db:"jenis_transaksi"`
	Kategori       string    `json:"kategori" db:"kategori"`
	SubKategori    *string   `json:"subKategori,omitempty" db:"sub_kategori"`
	Jumlah         float64   `json:"jumlah" db:"jumlah"` // Amount in rupiah
	Tanggal        time.Time `json:"tanggal" db:"tanggal"`
	Status         string    `json:"status" db:"status"`
	Ledger         string    `json:"ledger" db:"ledger"`
	SantriID       *string   `json:"santriId,omitempty" db:"santri_id"` // Present for per-santri expenditures
	Keterangan     *string   `json:"keterangan,omitempty" db:"keterangan"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// AlokasiPengeluaranSantri is a legacy manual allocation row tying part of a
// transaction to a santri. The period window is a join-time filter on the
// referenced transaction date, not a stored field.
type AlokasiPengeluaranSantri struct {
	ID             string    `json:"id" db:"id"`
	KeuanganID     string    `json:"keuanganId" db:"keuangan_id"`
	SantriID       string    `json:"santriId" db:"santri_id"`
	NominalAlokasi float64   `json:"nominalAlokasi" db:"nominal_alokasi"`
	Periode        *string   `json:"periode,omitempty" db:"periode"` // Free-form legacy label, may lack a year
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Joined from keuangan
	KategoriKeuangan *string    `json:"kategoriKeuangan,omitempty"`
	TanggalTransaksi *time.Time `json:"tanggalTransaksi,omitempty"`
}
