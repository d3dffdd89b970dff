package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emaktab/pesantren-backend/internal/app/controllers"
	"github.com/emaktab/pesantren-backend/internal/app/models"
	"github.com/emaktab/pesantren-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	santriController *controllers.SantriController,
	waliController *controllers.WaliController,
	dokumenController *controllers.DokumenController,
	layananController *controllers.LayananController,
	pilarController *controllers.PilarController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// Signed file downloads carry their credential in the URL itself
	v1.GET("/files/*path", dokumenController.ServeFile)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Only admins may create accounts
		authenticated.POST("/auth/register",
			authMiddleware.RoleRequired(string(models.RoleAdmin)),
			authController.Register)

		// Santri routes
		santri := authenticated.Group("/santri")
		{
			santri.GET("", santriController.ListSantri)
			santri.GET("/:santriId", santriController.GetSantriByID)
			santri.POST("", santriController.CreateSantri)
			santri.PUT("/:santriId", santriController.UpdateSantri)
			santri.DELETE("/:santriId", santriController.DeactivateSantri)

			// Wali nested under their santri
			santri.POST("/:santriId/wali", waliController.CreateWali)
			santri.GET("/:santriId/wali", waliController.ListWali)

			// Dokumen nested under their santri
			santri.POST("/:santriId/dokumen", dokumenController.UploadDokumen)
			santri.GET("/:santriId/dokumen", dokumenController.GetChecklist)
		}

		// Wali routes addressed by wali id
		wali := authenticated.Group("/wali")
		{
			wali.PUT("/:id", waliController.UpdateWali)
			wali.POST("/:id/utama", waliController.SetWaliUtama)
			wali.DELETE("/:id", waliController.DeleteWali)
		}

		// Dokumen routes addressed by dokumen id
		dokumen := authenticated.Group("/dokumen")
		{
			dokumen.GET("/:id/url", dokumenController.GetSignedURL)
			dokumen.DELETE("/:id", dokumenController.DeleteDokumen)
		}

		// Layanan ledger routes
		layanan := authenticated.Group("/layanan")
		{
			layanan.GET("/realisasi", layananController.GetRealisasi)
			layanan.GET("/santri/:santriId", layananController.GetSantriBreakdown)
			layanan.GET("/periodik", layananController.ListPeriodik)
			layanan.GET("/periodik/detail", layananController.GetPeriodikDetail)
			layanan.GET("/pengeluaran", layananController.MonthlyExpenditures)

			// Generation writes ledger rows; bendahara or admin only
			layananBendahara := layanan.Group("")
			layananBendahara.Use(authMiddleware.RoleRequired(string(models.RoleBendahara), string(models.RoleAdmin)))
			{
				layananBendahara.POST("/generate", layananController.Generate)
				layananBendahara.GET("/generate/preview", layananController.PreviewGenerate)
				layananBendahara.DELETE("/periodik", layananController.DeletePeriodik)
			}
		}

		// Master data routes (admin only for writes)
		master := authenticated.Group("/master")
		{
			master.GET("/pilar", pilarController.ListPilar)
			master.GET("/kategori", pilarController.ListKategori)

			masterAdmin := master.Group("")
			masterAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				masterAdmin.POST("/pilar", pilarController.CreatePilar)
				masterAdmin.PUT("/pilar/:kode", pilarController.UpdatePilar)
				masterAdmin.POST("/kategori", pilarController.CreateKategori)
				masterAdmin.PUT("/kategori/:id", pilarController.UpdateKategori)
			}
		}
	}
}
