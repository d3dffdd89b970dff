package models

import "time"

// Wali defines a guardian record based on the 'wali_santri' table.
// A santri has zero or more wali, at most one flagged utama.
type Wali struct {
	ID          string    `json:"id" db:"id"`
	SantriID    string    `json:"santriId" db:"santri_id"`
	NamaLengkap string    `json:"namaLengkap" db:"nama_lengkap" example:"Siti Aminah"`
	Hubungan    string    `json:"hubungan" db:"hubungan" example:"Ibu"` // Relationship to the santri
	NoTelepon   *string   `json:"noTelepon,omitempty" db:"no_telepon"`
	Pekerjaan   *string   `json:"pekerjaan,omitempty" db:"pekerjaan"`
	Penghasilan *float64  `json:"penghasilan,omitempty" db:"penghasilan"` // Monthly income in rupiah
	IsUtama     bool      `json:"isUtama" db:"is_utama"`                  // Primary guardian flag
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
