package dto

import "github.com/emaktab/pesantren-backend/internal/app/models"

// DokumenStatus pairs a derived requirement with the uploaded row, if any.
type DokumenStatus struct {
	JenisDokumen string                `json:"jenisDokumen"`
	Required     bool                  `json:"required"`
	Uploaded     *models.DokumenSantri `json:"uploaded,omitempty"`
}

// DokumenChecklistResponse is the full document checklist for one santri.
type DokumenChecklistResponse struct {
	SantriID string          `json:"santriId"`
	Items    []DokumenStatus `json:"items"`
	Complete bool            `json:"complete"` // All required documents uploaded
}

// SignedURLResponse carries a time-limited download URL for a document.
type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn" example:"3600"` // Seconds
}
