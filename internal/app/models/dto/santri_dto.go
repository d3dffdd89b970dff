package dto

import "github.com/emaktab/pesantren-backend/internal/app/models"

// CreateSantriRequest represents a santri enrollment request
type CreateSantriRequest struct {
	NamaLengkap  string  `json:"namaLengkap" binding:"required" example:"Muhammad Rizki"`
	NISN         *string `json:"nisn,omitempty" example:"0051234567"`
	Kategori     string  `json:"kategori" binding:"required" example:"Santri Binaan Mukim"`
	StatusSosial string  `json:"statusSosial" binding:"required" example:"Yatim"`
	TanggalMasuk *string `json:"tanggalMasuk,omitempty" example:"2024-07-01"` // YYYY-MM-DD
}

// UpdateSantriRequest represents a santri profile update. Identity fields can
// be corrected; lifecycle is driven by Status only.
type UpdateSantriRequest struct {
	NamaLengkap  *string `json:"namaLengkap,omitempty"`
	NISN         *string `json:"nisn,omitempty"`
	Kategori     *string `json:"kategori,omitempty"`
	StatusSosial *string `json:"statusSosial,omitempty"`
	Status       *string `json:"status,omitempty" example:"Aktif"`
}

// SantriListResponse is a paginated list of santri
type SantriListResponse struct {
	Santri     []*models.Santri `json:"santri"`
	Pagination PaginationInfo   `json:"pagination"`
}

// SantriFilter captures the supported listing filters
type SantriFilter struct {
	Status   string `form:"status"`
	Kategori string `form:"kategori"`
	Search   string `form:"search"` // Matches nama_lengkap or nisn
}
