package models

import "time"

// Santri kategori values. Binaan Mukim is the population used for flat
// service division; the remaining kategoris are fee-paying programs.
const (
	KategoriBinaanMukim    = "Santri Binaan Mukim"
	KategoriBinaanNonMukim = "Santri Binaan Non-Mukim"
	KategoriMahasantri     = "Mahasantri Reguler"
	KategoriMahasantriBan  = "Mahasantri Bantuan"
	KategoriTPQ            = "Santri TPQ"
	KategoriMadin          = "Santri Madin"
)

// Status sosial values used by the document requirement rules.
const (
	StatusSosialLengkap    = "Lengkap"
	StatusSosialYatim      = "Yatim"
	StatusSosialPiatu      = "Piatu"
	StatusSosialYatimPiatu = "Yatim Piatu"
	StatusSosialDhuafa     = "Dhuafa"
)

// Santri defines the student model based on the 'santri' table
type Santri struct {
	ID           string       `json:"id" db:"id" example:"0d1de2a8-6f9a-4f41-9a5e-1b6e2f9c1a00"` // Unique identifier (UUID)
	NamaLengkap  string       `json:"namaLengkap" db:"nama_lengkap" example:"Muhammad Rizki"`     // Full name
	NISN         *string      `json:"nisn,omitempty" db:"nisn" example:"0051234567"`              // National student number (nullable)
	Kategori     string       `json:"kategori" db:"kategori" example:"Santri Binaan Mukim"`       // Enrollment kategori
	StatusSosial string       `json:"statusSosial" db:"status_sosial" example:"Yatim"`            // Social status classification
	Status       SantriStatus `json:"status" db:"status" example:"Aktif"`                         // Lifecycle status (soft, never deleted)
	TanggalMasuk *time.Time   `json:"tanggalMasuk,omitempty" db:"tanggal_masuk"`                  // Enrollment date
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Wali []*Wali `json:"wali,omitempty"`
}

// KnownKategori reports whether k is one of the defined kategori values.
func KnownKategori(k string) bool {
	switch k {
	case KategoriBinaanMukim, KategoriBinaanNonMukim, KategoriMahasantri,
		KategoriMahasantriBan, KategoriTPQ, KategoriMadin:
		return true
	}
	return false
}
