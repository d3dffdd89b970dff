package services

import (
	"context"
	"fmt"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

// legacyKategoriPilar is the historical category-to-pillar mapping, kept for
// financial data recorded before master_kategori_pengeluaran existed. Rows in
// the master table override these entries.
var legacyKategoriPilar = map[string]string{
	"Pendidikan Formal":               models.PilarPendidikanFormal,
	"Pendidikan Pesantren":            models.PilarPendidikanPesantren,
	"Operasional dan Konsumsi Santri": models.PilarAsramaKonsumsi,
	"Bantuan Langsung Yayasan":        models.PilarBantuanLangsung,
}

// KategoriMapper resolves a financial category label to a pillar code.
type KategoriMapper struct {
	byNama map[string]string
}

// NewKategoriMapper builds a mapper from master table rows layered over the
// legacy mapping.
func NewKategoriMapper(kategoris []*models.MasterKategoriPengeluaran) *KategoriMapper {
	byNama := make(map[string]string, len(legacyKategoriPilar)+len(kategoris))
	for nama, kode := range legacyKategoriPilar {
		byNama[nama] = kode
	}
	for _, k := range kategoris {
		if kode := helpers.StringValue(k.PilarLayananKode); kode != "" {
			byNama[k.Nama] = kode
		}
	}
	return &KategoriMapper{byNama: byNama}
}

// Resolve maps a category label to its pillar code. Unmapped categories land
// in the lainnya bucket so no expenditure silently disappears from totals.
func (m *KategoriMapper) Resolve(kategori string) string {
	if kode, ok := m.byNama[kategori]; ok {
		return kode
	}
	logger.Warn().Str("kategori", kategori).Msg("Kategori has no pillar mapping, assigning to lainnya")
	return models.PilarLainnya
}

// Known reports whether the category has an explicit mapping.
func (m *KategoriMapper) Known(kategori string) bool {
	_, ok := m.byNama[kategori]
	return ok
}

// pilarStore is the repository surface PilarService needs
type pilarStore interface {
	GetAllPilar(ctx context.Context, activeOnly bool) ([]*models.MasterPilarLayanan, error)
	GetPilarByKode(ctx context.Context, kode string) (*models.MasterPilarLayanan, error)
	CreatePilar(ctx context.Context, pilar *models.MasterPilarLayanan) error
	UpdatePilar(ctx context.Context, pilar *models.MasterPilarLayanan) error
	GetAllKategori(ctx context.Context, activeOnly bool) ([]*models.MasterKategoriPengeluaran, error)
	CreateKategori(ctx context.Context, kategori *models.MasterKategoriPengeluaran) error
	UpdateKategori(ctx context.Context, kategori *models.MasterKategoriPengeluaran) error
}

// PilarService manages the master pillar and category tables and builds
// category mappers for the aggregation paths.
type PilarService struct {
	pilarRepo pilarStore
}

// NewPilarService creates a new pilar service
func NewPilarService(pilarRepo *repositories.PilarRepository) *PilarService {
	return &PilarService{
		pilarRepo: pilarRepo,
	}
}

// BuildMapper loads active category mappings and layers them over the legacy
// mapping.
func (s *PilarService) BuildMapper(ctx context.Context) (*KategoriMapper, error) {
	kategoris, err := s.pilarRepo.GetAllKategori(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load kategori mappings: %w", err)
	}
	return NewKategoriMapper(kategoris), nil
}

// ListPilar returns pillars from the master table
func (s *PilarService) ListPilar(ctx context.Context, activeOnly bool) ([]*models.MasterPilarLayanan, error) {
	return s.pilarRepo.GetAllPilar(ctx, activeOnly)
}

// GetPilar returns one pillar by code
func (s *PilarService) GetPilar(ctx context.Context, kode string) (*models.MasterPilarLayanan, error) {
	return s.pilarRepo.GetPilarByKode(ctx, kode)
}

// CreatePilar registers a new pillar code
func (s *PilarService) CreatePilar(ctx context.Context, req dto.CreatePilarRequest) (*models.MasterPilarLayanan, error) {
	pilar := &models.MasterPilarLayanan{
		Kode:      req.Kode,
		Nama:      req.Nama,
		Deskripsi: req.Deskripsi,
		Aktif:     true,
	}
	if req.Urutan != nil {
		pilar.Urutan = *req.Urutan
	}

	if err := s.pilarRepo.CreatePilar(ctx, pilar); err != nil {
		return nil, err
	}

	logger.Info().Str("kode", pilar.Kode).Msg("Pilar created")
	return pilar, nil
}

// UpdatePilar updates display fields of a pillar. The kode never changes
// because ledger rows reference it.
func (s *PilarService) UpdatePilar(ctx context.Context, kode string, req dto.UpdatePilarRequest) (*models.MasterPilarLayanan, error) {
	pilar, err := s.pilarRepo.GetPilarByKode(ctx, kode)
	if err != nil {
		return nil, err
	}

	if req.Nama != nil {
		pilar.Nama = *req.Nama
	}
	if req.Deskripsi != nil {
		pilar.Deskripsi = req.Deskripsi
	}
	if req.Urutan != nil {
		pilar.Urutan = *req.Urutan
	}
	if req.Aktif != nil {
		pilar.Aktif = *req.Aktif
	}

	if err := s.pilarRepo.UpdatePilar(ctx, pilar); err != nil {
		return nil, err
	}

	return pilar, nil
}

// ListKategori returns expenditure category mappings
func (s *PilarService) ListKategori(ctx context.Context, activeOnly bool) ([]*models.MasterKategoriPengeluaran, error) {
	return s.pilarRepo.GetAllKategori(ctx, activeOnly)
}

// CreateKategori registers a category mapping
func (s *PilarService) CreateKategori(ctx context.Context, req dto.CreateKategoriRequest) (*models.MasterKategoriPengeluaran, error) {
	if req.PilarLayananKode != nil && *req.PilarLayananKode != "" {
		if _, err := s.pilarRepo.GetPilarByKode(ctx, *req.PilarLayananKode); err != nil {
			return nil, err
		}
	}

	kategori := &models.MasterKategoriPengeluaran{
		Nama:             req.Nama,
		Jenis:            req.Jenis,
		PilarLayananKode: req.PilarLayananKode,
		Aktif:            true,
	}
	if req.Urutan != nil {
		kategori.Urutan = *req.Urutan
	}

	if err := s.pilarRepo.CreateKategori(ctx, kategori); err != nil {
		return nil, err
	}

	logger.Info().Str("nama", kategori.Nama).Msg("Kategori pengeluaran created")
	return kategori, nil
}

// UpdateKategori updates a category mapping
func (s *PilarService) UpdateKategori(ctx context.Context, id string, req dto.UpdateKategoriRequest) (*models.MasterKategoriPengeluaran, error) {
	kategoris, err := s.pilarRepo.GetAllKategori(ctx, false)
	if err != nil {
		return nil, err
	}

	var kategori *models.MasterKategoriPengeluaran
	for _, k := range kategoris {
		if k.ID == id {
			kategori = k
			break
		}
	}
	if kategori == nil {
		return nil, apperrors.ErrKategoriNotFound
	}

	if req.Nama != nil {
		kategori.Nama = *req.Nama
	}
	if req.PilarLayananKode != nil {
		if *req.PilarLayananKode != "" {
			if _, err := s.pilarRepo.GetPilarByKode(ctx, *req.PilarLayananKode); err != nil {
				return nil, err
			}
		}
		kategori.PilarLayananKode = req.PilarLayananKode
	}
	if req.Urutan != nil {
		kategori.Urutan = *req.Urutan
	}
	if req.Aktif != nil {
		kategori.Aktif = *req.Aktif
	}

	if err := s.pilarRepo.UpdateKategori(ctx, kategori); err != nil {
		return nil, err
	}

	return kategori, nil
}
