package dto

// CreateWaliRequest represents a guardian creation request
type CreateWaliRequest struct {
	NamaLengkap string   `json:"namaLengkap" binding:"required" example:"Siti Aminah"`
	Hubungan    string   `json:"hubungan" binding:"required" example:"Ibu"`
	NoTelepon   *string  `json:"noTelepon,omitempty"`
	Pekerjaan   *string  `json:"pekerjaan,omitempty"`
	Penghasilan *float64 `json:"penghasilan,omitempty"`
	IsUtama     bool     `json:"isUtama"`
}

// UpdateWaliRequest represents a guardian update request
type UpdateWaliRequest struct {
	NamaLengkap *string  `json:"namaLengkap,omitempty"`
	Hubungan    *string  `json:"hubungan,omitempty"`
	NoTelepon   *string  `json:"noTelepon,omitempty"`
	Pekerjaan   *string  `json:"pekerjaan,omitempty"`
	Penghasilan *float64 `json:"penghasilan,omitempty"`
}
