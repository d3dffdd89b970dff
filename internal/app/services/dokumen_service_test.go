package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
)

type fakeDokumenStore struct {
	rows []*models.DokumenSantri
}

func (f *fakeDokumenStore) Create(ctx context.Context, dokumen *models.DokumenSantri) error {
	dokumen.ID = fmt.Sprintf("dok-%d", len(f.rows)+1)
	f.rows = append(f.rows, dokumen)
	return nil
}

func (f *fakeDokumenStore) GetByID(ctx context.Context, id string) (*models.DokumenSantri, error) {
	for _, d := range f.rows {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.ErrDokumenNotFound
}

func (f *fakeDokumenStore) GetBySantriID(ctx context.Context, santriID string) ([]*models.DokumenSantri, error) {
	var result []*models.DokumenSantri
	for _, d := range f.rows {
		if d.SantriID == santriID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeDokumenStore) DeleteBlockedJenis(ctx context.Context, santriID string) ([]string, error) {
	blocked := make(map[string]bool, len(models.BlockedJenisDokumen))
	for _, jenis := range models.BlockedJenisDokumen {
		blocked[jenis] = true
	}

	var kept []*models.DokumenSantri
	var paths []string
	for _, d := range f.rows {
		if d.SantriID == santriID && blocked[d.JenisDokumen] {
			paths = append(paths, d.PathFile)
			continue
		}
		kept = append(kept, d)
	}
	f.rows = kept
	return paths, nil
}

func (f *fakeDokumenStore) Delete(ctx context.Context, id string) (string, error) {
	for i, d := range f.rows {
		if d.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return d.PathFile, nil
		}
	}
	return "", apperrors.ErrDokumenNotFound
}

type fakeDokumenSantriStore struct {
	santri map[string]*models.Santri
}

func (f *fakeDokumenSantriStore) GetByID(ctx context.Context, id string) (*models.Santri, error) {
	if s, ok := f.santri[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSantriNotFound
}

type fakeFileStorage struct {
	lastSubPath string
	deleted     []string
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "misc")
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	f.lastSubPath = path
	return path + "/stored-file", nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeFileStorage) GetFullPath(fileURL string) string {
	return fileURL
}

func uploadHeader(filename string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
	}
}

func newDokumenServiceForTest(store *fakeDokumenStore, santri *fakeDokumenSantriStore, storage *fakeFileStorage) *DokumenService {
	return &DokumenService{
		dokumenRepo:  store,
		santriRepo:   santri,
		storage:      storage,
		signedURLTTL: 15 * time.Minute,
	}
}

func TestUploadStoresUnderJenisDirectory(t *testing.T) {
	store := &fakeDokumenStore{}
	santri := &fakeDokumenSantriStore{santri: map[string]*models.Santri{
		"santri-1": {ID: "santri-1", Kategori: models.KategoriBinaanMukim},
	}}
	storage := &fakeFileStorage{}
	svc := newDokumenServiceForTest(store, santri, storage)

	dokumen, err := svc.Upload(context.Background(), "santri-1", models.DokumenKartuKeluarga, uploadHeader("kk.pdf", 1024))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	// Files separate per santri and per document type
	if storage.lastSubPath != "dokumen/santri-1/kartu-keluarga" {
		t.Errorf("upload subpath = %q, want dokumen/santri-1/kartu-keluarga", storage.lastSubPath)
	}
	if !strings.HasPrefix(dokumen.PathFile, "dokumen/santri-1/kartu-keluarga/") {
		t.Errorf("stored path = %q, missing the jenis segment", dokumen.PathFile)
	}
	if dokumen.JenisDokumen != models.DokumenKartuKeluarga {
		t.Errorf("jenis = %q, want %q", dokumen.JenisDokumen, models.DokumenKartuKeluarga)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(store.rows))
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	store := &fakeDokumenStore{}
	santri := &fakeDokumenSantriStore{santri: map[string]*models.Santri{
		"santri-1": {ID: "santri-1"},
	}}
	storage := &fakeFileStorage{}
	svc := newDokumenServiceForTest(store, santri, storage)

	_, err := svc.Upload(context.Background(), "missing", models.DokumenPasFoto, uploadHeader("foto.jpg", 1024))
	if !errors.Is(err, apperrors.ErrSantriNotFound) {
		t.Errorf("expected ErrSantriNotFound, got %v", err)
	}

	_, err = svc.Upload(context.Background(), "santri-1", models.DokumenPasFoto, uploadHeader("foto.jpg", MaxDokumenSize+1))
	if !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}

	_, err = svc.Upload(context.Background(), "santri-1", models.DokumenPasFoto, uploadHeader("script.exe", 1024))
	if !errors.Is(err, apperrors.ErrFileTypeNotAllowed) {
		t.Errorf("expected ErrFileTypeNotAllowed, got %v", err)
	}

	if storage.lastSubPath != "" || len(store.rows) != 0 {
		t.Error("rejected uploads must not touch storage or the repository")
	}
}

func TestJenisPathSegment(t *testing.T) {
	tests := []struct {
		jenis string
		want  string
	}{
		{models.DokumenKartuKeluarga, "kartu-keluarga"},
		{models.DokumenSuratSehat, "surat-keterangan-sehat"},
		{"  SKTM  ", "sktm"},
		{"../../etc", "--etc"},
		{"", "lainnya"},
	}
	for _, tt := range tests {
		if got := jenisPathSegment(tt.jenis); got != tt.want {
			t.Errorf("jenisPathSegment(%q) = %q, want %q", tt.jenis, got, tt.want)
		}
	}
}

func TestChecklistTracksUploads(t *testing.T) {
	store := &fakeDokumenStore{}
	santri := &fakeDokumenSantriStore{santri: map[string]*models.Santri{
		"santri-1": {ID: "santri-1", Kategori: models.KategoriBinaanNonMukim, StatusSosial: models.StatusSosialDhuafa},
	}}
	storage := &fakeFileStorage{}
	svc := newDokumenServiceForTest(store, santri, storage)

	if _, err := svc.Upload(context.Background(), "santri-1", models.DokumenSKTM, uploadHeader("sktm.pdf", 1024)); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	checklist, err := svc.GetChecklist(context.Background(), "santri-1")
	if err != nil {
		t.Fatalf("GetChecklist returned error: %v", err)
	}
	if checklist.Complete {
		t.Error("checklist should be incomplete with required documents missing")
	}

	var sktm, ktpWali *models.DokumenSantri
	sktmSeen := false
	for _, item := range checklist.Items {
		switch item.JenisDokumen {
		case models.DokumenSKTM:
			sktm = item.Uploaded
			sktmSeen = true
		case models.DokumenKTPWaliUtama:
			ktpWali = item.Uploaded
		}
	}
	if !sktmSeen {
		t.Fatal("SKTM requirement missing for dhuafa santri")
	}
	if sktm == nil {
		t.Error("uploaded SKTM should be paired with its requirement")
	}
	if ktpWali != nil {
		t.Error("KTP Wali Utama should still be unfulfilled")
	}
}

func TestChecklistPurgesRetiredJenis(t *testing.T) {
	store := &fakeDokumenStore{rows: []*models.DokumenSantri{
		{ID: "dok-1", SantriID: "santri-1", JenisDokumen: "KTP/KK", PathFile: "dokumen/santri-1/ktp-kk/old"},
		{ID: "dok-2", SantriID: "santri-1", JenisDokumen: models.DokumenPasFoto, PathFile: "dokumen/santri-1/pas-foto/keep"},
	}}
	santri := &fakeDokumenSantriStore{santri: map[string]*models.Santri{
		"santri-1": {ID: "santri-1", Kategori: models.KategoriBinaanMukim, StatusSosial: models.StatusSosialLengkap},
	}}
	storage := &fakeFileStorage{}
	svc := newDokumenServiceForTest(store, santri, storage)

	checklist, err := svc.GetChecklist(context.Background(), "santri-1")
	if err != nil {
		t.Fatalf("GetChecklist returned error: %v", err)
	}

	for _, item := range checklist.Items {
		if item.JenisDokumen == "KTP/KK" {
			t.Error("retired jenis must not appear in the checklist")
		}
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != "dokumen/santri-1/ktp-kk/old" {
		t.Errorf("expected the retired row's file to be deleted, got %v", storage.deleted)
	}
	if len(store.rows) != 1 {
		t.Errorf("expected 1 surviving row, got %d", len(store.rows))
	}
}
