package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/filestorage"
	"github.com/emaktab/pesantren-backend/internal/pkg/logger"
)

// Upload limits
const MaxDokumenSize = 10 << 20 // 10MB

var allowedDokumenExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Narrow repository surfaces so document flows can be exercised with
// in-memory fakes.
type dokumenStore interface {
	Create(ctx context.Context, dokumen *models.DokumenSantri) error
	GetByID(ctx context.Context, id string) (*models.DokumenSantri, error)
	GetBySantriID(ctx context.Context, santriID string) ([]*models.DokumenSantri, error)
	DeleteBlockedJenis(ctx context.Context, santriID string) ([]string, error)
	Delete(ctx context.Context, id string) (string, error)
}

type dokumenSantriStore interface {
	GetByID(ctx context.Context, id string) (*models.Santri, error)
}

// DokumenService manages santri document uploads and the derived checklist
type DokumenService struct {
	dokumenRepo  dokumenStore
	santriRepo   dokumenSantriStore
	storage      filestorage.FileStorage
	signer       filestorage.URLSigner
	signedURLTTL time.Duration
}

// NewDokumenService creates a new dokumen service
func NewDokumenService(
	dokumenRepo *repositories.DokumenRepository,
	santriRepo *repositories.SantriRepository,
	storage filestorage.FileStorage,
	signer filestorage.URLSigner,
	signedURLTTL time.Duration,
) *DokumenService {
	return &DokumenService{
		dokumenRepo:  dokumenRepo,
		santriRepo:   santriRepo,
		storage:      storage,
		signer:       signer,
		signedURLTTL: signedURLTTL,
	}
}

// ValidateUpload enforces size and type limits before a file is stored
func ValidateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxDokumenSize {
		return apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedDokumenExt[ext] {
		return apperrors.ErrFileTypeNotAllowed
	}

	return nil
}

// jenisPathSegment flattens a jenis label into a storage path segment so
// each document type gets its own subdirectory.
func jenisPathSegment(jenis string) string {
	segment := strings.ToLower(strings.TrimSpace(jenis))
	segment = strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ".", "").Replace(segment)
	if segment == "" {
		return "lainnya"
	}
	return segment
}

// Upload stores a document file and records it for the santri
func (s *DokumenService) Upload(ctx context.Context, santriID, jenisDokumen string, fileHeader *multipart.FileHeader) (*models.DokumenSantri, error) {
	if _, err := s.santriRepo.GetByID(ctx, santriID); err != nil {
		return nil, err
	}

	if err := ValidateUpload(fileHeader); err != nil {
		return nil, err
	}

	storagePath, err := s.storage.SaveFileWithPath(fileHeader, "dokumen/"+santriID+"/"+jenisPathSegment(jenisDokumen))
	if err != nil {
		return nil, err
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	dokumen := &models.DokumenSantri{
		SantriID:     santriID,
		JenisDokumen: jenisDokumen,
		NamaFile:     fileHeader.Filename,
		PathFile:     storagePath,
		UkuranFile:   fileHeader.Size,
		MimeType:     mimeType,
	}

	if err := s.dokumenRepo.Create(ctx, dokumen); err != nil {
		// Don't leave an orphaned file behind when the record fails
		if delErr := s.storage.DeleteFile(storagePath); delErr != nil {
			logger.Error().Err(delErr).Str("path", storagePath).Msg("Failed to clean up orphaned upload")
		}
		return nil, err
	}

	logger.Info().Str("santriID", santriID).Str("jenis", jenisDokumen).Str("file", fileHeader.Filename).Msg("Dokumen uploaded")
	return dokumen, nil
}

// GetChecklist builds the document checklist for a santri, pairing derived
// requirements with uploaded rows. Rows carrying retired jenis labels are
// removed on the way.
func (s *DokumenService) GetChecklist(ctx context.Context, santriID string) (*dto.DokumenChecklistResponse, error) {
	santri, err := s.santriRepo.GetByID(ctx, santriID)
	if err != nil {
		return nil, err
	}

	if err := s.purgeBlocked(ctx, santriID); err != nil {
		return nil, err
	}

	uploaded, err := s.dokumenRepo.GetBySantriID(ctx, santriID)
	if err != nil {
		return nil, err
	}

	// Keep the newest upload per jenis
	byJenis := make(map[string]*models.DokumenSantri)
	for _, d := range uploaded {
		if _, ok := byJenis[d.JenisDokumen]; !ok {
			byJenis[d.JenisDokumen] = d
		}
	}

	requirements := RequirementsFor(santri.Kategori, santri.StatusSosial)

	items := make([]dto.DokumenStatus, 0, len(requirements))
	complete := true
	seen := make(map[string]bool, len(requirements))
	for _, req := range requirements {
		seen[req.JenisDokumen] = true
		item := dto.DokumenStatus{
			JenisDokumen: req.JenisDokumen,
			Required:     req.Required,
			Uploaded:     byJenis[req.JenisDokumen],
		}
		if req.Required && item.Uploaded == nil {
			complete = false
		}
		items = append(items, item)
	}

	// Uploads outside the derived checklist still show up, as optional
	for _, d := range uploaded {
		if !seen[d.JenisDokumen] {
			seen[d.JenisDokumen] = true
			items = append(items, dto.DokumenStatus{
				JenisDokumen: d.JenisDokumen,
				Required:     false,
				Uploaded:     d,
			})
		}
	}

	return &dto.DokumenChecklistResponse{
		SantriID: santriID,
		Items:    items,
		Complete: complete,
	}, nil
}

// purgeBlocked removes rows with retired jenis labels and their files
func (s *DokumenService) purgeBlocked(ctx context.Context, santriID string) error {
	paths, err := s.dokumenRepo.DeleteBlockedJenis(ctx, santriID)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := s.storage.DeleteFile(path); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to delete file of retired dokumen row")
		}
	}

	return nil
}

// GetSignedURL issues a time-limited download URL for a document
func (s *DokumenService) GetSignedURL(ctx context.Context, dokumenID string) (*dto.SignedURLResponse, error) {
	dokumen, err := s.dokumenRepo.GetByID(ctx, dokumenID)
	if err != nil {
		return nil, err
	}

	url, err := s.signer.SignedURL(dokumen.PathFile, s.signedURLTTL)
	if err != nil {
		return nil, err
	}

	return &dto.SignedURLResponse{
		URL:       url,
		ExpiresIn: int(s.signedURLTTL.Seconds()),
	}, nil
}

// Delete removes a document record and its stored file
func (s *DokumenService) Delete(ctx context.Context, dokumenID string) error {
	path, err := s.dokumenRepo.Delete(ctx, dokumenID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Dokumen row deleted but file removal failed")
	}

	return nil
}
