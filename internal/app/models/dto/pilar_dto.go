package dto

// CreatePilarRequest creates a master pillar entry
type CreatePilarRequest struct {
	Kode      string  `json:"kode" binding:"required" example:"kesehatan"`
	Nama      string  `json:"nama" binding:"required" example:"Layanan Kesehatan"`
	Deskripsi *string `json:"deskripsi,omitempty"`
	Urutan    *int    `json:"urutan,omitempty"`
}

// UpdatePilarRequest updates a master pillar entry
type UpdatePilarRequest struct {
	Nama      *string `json:"nama,omitempty"`
	Deskripsi *string `json:"deskripsi,omitempty"`
	Urutan    *int    `json:"urutan,omitempty"`
	Aktif     *bool   `json:"aktif,omitempty"`
}

// CreateKategoriRequest creates a master expenditure category
type CreateKategoriRequest struct {
	Nama             string  `json:"nama" binding:"required" example:"Operasional dan Konsumsi Santri"`
	Jenis            string  `json:"jenis" binding:"required,oneof=Pemasukan Pengeluaran"`
	PilarLayananKode *string `json:"pilarLayananKode,omitempty" example:"asrama_konsumsi"`
	Urutan           *int    `json:"urutan,omitempty"`
}

// UpdateKategoriRequest updates a master expenditure category
type UpdateKategoriRequest struct {
	Nama             *string `json:"nama,omitempty"`
	PilarLayananKode *string `json:"pilarLayananKode,omitempty"`
	Urutan           *int    `json:"urutan,omitempty"`
	Aktif            *bool   `json:"aktif,omitempty"`
}
