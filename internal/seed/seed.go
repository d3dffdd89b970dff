package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emaktab/pesantren-backend/internal/app/models"
	appRepos "github.com/emaktab/pesantren-backend/internal/app/repositories"
	"github.com/emaktab/pesantren-backend/internal/pkg/apperrors"
	"github.com/emaktab/pesantren-backend/internal/pkg/auth"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
)

// defaultPilar are the four service pillars every installation starts with.
// Installations may add more through the master data endpoints.
var defaultPilar = []*appModels.MasterPilarLayanan{
	{Kode: appModels.PilarPendidikanFormal, Nama: "Pendidikan Formal", Urutan: 1, Aktif: true},
	{Kode: appModels.PilarPendidikanPesantren, Nama: "Pendidikan Pesantren", Urutan: 2, Aktif: true},
	{Kode: appModels.PilarAsramaKonsumsi, Nama: "Asrama dan Konsumsi", Urutan: 3, Aktif: true},
	{Kode: appModels.PilarBantuanLangsung, Nama: "Bantuan Langsung", Urutan: 4, Aktif: true},
}

// defaultKategori mirrors the long-standing bookkeeping category names so a
// fresh install maps them without manual setup.
var defaultKategori = []*appModels.MasterKategoriPengeluaran{
	{Nama: "Pendidikan Formal", PilarLayananKode: helpers.StringOrNil(appModels.PilarPendidikanFormal), Urutan: 1, Aktif: true},
	{Nama: "Pendidikan Pesantren", PilarLayananKode: helpers.StringOrNil(appModels.PilarPendidikanPesantren), Urutan: 2, Aktif: true},
	{Nama: "Operasional dan Konsumsi Santri", PilarLayananKode: helpers.StringOrNil(appModels.PilarAsramaKonsumsi), Urutan: 3, Aktif: true},
	{Nama: "Bantuan Langsung Yayasan", PilarLayananKode: helpers.StringOrNil(appModels.PilarBantuanLangsung), Urutan: 4, Aktif: true},
}

// CreateDefaultData seeds the pillar master data, the legacy category
// mappings and a default admin account if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	pilarRepo := appRepos.NewPilarRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default master data...")
	var finalErr error

	for _, pilar := range defaultPilar {
		if err := pilarRepo.CreatePilar(ctx, pilar); err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("kode", pilar.Kode).Msg("Error creating default pilar")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, kategori := range defaultKategori {
		if err := pilarRepo.CreateKategori(ctx, kategori); err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("nama", kategori.Nama).Msg("Error creating default kategori mapping")
			finalErr = errors.Join(finalErr, err)
		}
	}

	adminEmail := "admin@pesantren.local"
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := auth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:    adminEmail,
		Password: hashedPassword,
		FullName: "System Administrator",
		RoleType: appModels.RoleAdmin,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created")
	return finalErr
}
