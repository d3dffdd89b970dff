package services

import (
	"context"
	"time"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

// SantriService manages santri records
type SantriService struct {
	santriRepo *repositories.SantriRepository
	waliRepo   *repositories.WaliRepository
}

// NewSantriService creates a new santri service
func NewSantriService(santriRepo *repositories.SantriRepository, waliRepo *repositories.WaliRepository) *SantriService {
	return &SantriService{
		santriRepo: santriRepo,
		waliRepo:   waliRepo,
	}
}

// Create enrolls a new santri
func (s *SantriService) Create(ctx context.Context, req dto.CreateSantriRequest) (*models.Santri, error) {
	if !models.KnownKategori(req.Kategori) {
		return nil, apperrors.ErrInvalidKategori
	}

	santri := &models.Santri{
		NamaLengkap:  req.NamaLengkap,
		NISN:         req.NISN,
		Kategori:     req.Kategori,
		StatusSosial: req.StatusSosial,
		Status:       models.SantriStatusAktif,
	}

	if req.TanggalMasuk != nil && *req.TanggalMasuk != "" {
		t, err := time.Parse("2006-01-02", *req.TanggalMasuk)
		if err != nil {
			return nil, apperrors.NewValidationError("tanggalMasuk must be formatted YYYY-MM-DD")
		}
		santri.TanggalMasuk = &t
	}

	if err := s.santriRepo.Create(ctx, santri); err != nil {
		return nil, err
	}

	logger.Info().Str("santriID", santri.ID).Str("nama", santri.NamaLengkap).Msg("Santri enrolled")
	return santri, nil
}

// GetByID retrieves a santri with guardians attached
func (s *SantriService) GetByID(ctx context.Context, id string) (*models.Santri, error) {
	santri, err := s.santriRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wali, err := s.waliRepo.GetBySantriID(ctx, id)
	if err != nil {
		return nil, err
	}
	santri.Wali = wali

	return santri, nil
}

// List returns santri matching the filter with pagination
func (s *SantriService) List(ctx context.Context, filter dto.SantriFilter, page, size int) (*dto.SantriListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	santri, total, err := s.santriRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.SantriListResponse{
		Santri:     santri,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update corrects santri profile fields. A status change is a lifecycle
// transition; records are never deleted.
func (s *SantriService) Update(ctx context.Context, id string, req dto.UpdateSantriRequest) (*models.Santri, error) {
	santri, err := s.santriRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NamaLengkap != nil {
		santri.NamaLengkap = *req.NamaLengkap
	}
	if req.NISN != nil {
		santri.NISN = req.NISN
	}
	if req.Kategori != nil {
		if !models.KnownKategori(*req.Kategori) {
			return nil, apperrors.ErrInvalidKategori
		}
		santri.Kategori = *req.Kategori
	}
	if req.StatusSosial != nil {
		santri.StatusSosial = *req.StatusSosial
	}
	if req.Status != nil {
		switch models.SantriStatus(*req.Status) {
		case models.SantriStatusAktif, models.SantriStatusCuti, models.SantriStatusKeluar, models.SantriStatusLulus:
			santri.Status = models.SantriStatus(*req.Status)
		default:
			return nil, apperrors.NewValidationError("status must be one of Aktif, Cuti, Keluar, Lulus")
		}
	}

	if err := s.santriRepo.Update(ctx, santri); err != nil {
		return nil, err
	}

	return santri, nil
}

// Deactivate marks a santri as having left the pesantren. The row and its
// ledger history stay intact.
func (s *SantriService) Deactivate(ctx context.Context, id string) error {
	if err := s.santriRepo.UpdateStatus(ctx, id, models.SantriStatusKeluar); err != nil {
		return err
	}

	logger.Info().Str("santriID", id).Msg("Santri deactivated")
	return nil
}
