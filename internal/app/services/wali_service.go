package services

import (
	"context"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

// WaliService manages guardian records
type WaliService struct {
	waliRepo   *repositories.WaliRepository
	santriRepo *repositories.SantriRepository
}

// NewWaliService creates a new wali service
func NewWaliService(waliRepo *repositories.WaliRepository, santriRepo *repositories.SantriRepository) *WaliService {
	return &WaliService{
		waliRepo:   waliRepo,
		santriRepo: santriRepo,
	}
}

// Create adds a guardian to a santri. Flagging the new wali utama demotes
// any existing utama atomically.
func (s *WaliService) Create(ctx context.Context, santriID string, req dto.CreateWaliRequest) (*models.Wali, error) {
	if _, err := s.santriRepo.GetByID(ctx, santriID); err != nil {
		return nil, err
	}

	wali := &models.Wali{
		SantriID:    santriID,
		NamaLengkap: req.NamaLengkap,
		Hubungan:    req.Hubungan,
		NoTelepon:   req.NoTelepon,
		Pekerjaan:   req.Pekerjaan,
		Penghasilan: req.Penghasilan,
		IsUtama:     req.IsUtama,
	}

	if err := s.waliRepo.Create(ctx, wali); err != nil {
		return nil, err
	}

	logger.Info().Str("waliID", wali.ID).Str("santriID", santriID).Bool("utama", wali.IsUtama).Msg("Wali created")
	return wali, nil
}

// ListBySantri returns all guardians of a santri, utama first
func (s *WaliService) ListBySantri(ctx context.Context, santriID string) ([]*models.Wali, error) {
	if _, err := s.santriRepo.GetByID(ctx, santriID); err != nil {
		return nil, err
	}

	return s.waliRepo.GetBySantriID(ctx, santriID)
}

// Update updates a guardian's fields
func (s *WaliService) Update(ctx context.Context, id string, req dto.UpdateWaliRequest) (*models.Wali, error) {
	wali, err := s.waliRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NamaLengkap != nil {
		wali.NamaLengkap = *req.NamaLengkap
	}
	if req.Hubungan != nil {
		wali.Hubungan = *req.Hubungan
	}
	if req.NoTelepon != nil {
		wali.NoTelepon = req.NoTelepon
	}
	if req.Pekerjaan != nil {
		wali.Pekerjaan = req.Pekerjaan
	}
	if req.Penghasilan != nil {
		wali.Penghasilan = req.Penghasilan
	}

	if err := s.waliRepo.Update(ctx, wali); err != nil {
		return nil, err
	}

	return wali, nil
}

// SetUtama promotes a guardian to primary, demoting any sibling utama
func (s *WaliService) SetUtama(ctx context.Context, id string) (*models.Wali, error) {
	wali, err := s.waliRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wali.IsUtama = true
	if err := s.waliRepo.Update(ctx, wali); err != nil {
		return nil, err
	}

	logger.Info().Str("waliID", id).Str("santriID", wali.SantriID).Msg("Wali promoted to utama")
	return wali, nil
}

// Delete removes a guardian record
func (s *WaliService) Delete(ctx context.Context, id string) error {
	return s.waliRepo.Delete(ctx, id)
}
