package models

import "time"

// MasterPilarLayanan is a row of the master pillar lookup table. Pillars are
// an open enumeration: new codes may be created without a code change.
type MasterPilarLayanan struct {
	ID        string    `json:"id" db:"id"`
	Kode      string    `json:"kode" db:"kode" example:"asrama_konsumsi"`
	Nama      string    `json:"nama" db:"nama" example:"Asrama & Konsumsi"`
	Deskripsi *string   `json:"deskripsi,omitempty" db:"deskripsi"`
	Urutan    int       `json:"urutan" db:"urutan"`
	Aktif     bool      `json:"aktif" db:"aktif"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// MasterKategoriPengeluaran maps a financial category label to a pillar code.
type MasterKategoriPengeluaran struct {
	ID               string    `json:"id" db:"id"`
	Nama             string    `json:"nama" db:"nama" example:"Operasional dan Konsumsi Santri"`
	Jenis            string    `json:"jenis" db:"jenis" example:"Pengeluaran"`
	PilarLayananKode *string   `json:"pilarLayananKode,omitempty" db:"pilar_layanan_kode"`
	Urutan           int       `json:"urutan" db:"urutan"`
	Aktif            bool      `json:"aktif" db:"aktif"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
