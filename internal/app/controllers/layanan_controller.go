package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/services"
	"github.com/emaktab/pesantren-backend/internal/middleware"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
)

// LayananController handles service realization reads and generation runs
type LayananController struct {
	layananService  *services.LayananService
	generateService *services.GenerateService
}

// NewLayananController creates a new LayananController
func NewLayananController(layananService *services.LayananService, generateService *services.GenerateService) *LayananController {
	return &LayananController{
		layananService:  layananService,
		generateService: generateService,
	}
}

// GetRealisasi aggregates per-santri service values for a period
// @Summary Realisasi summary
// @Description Per-santri service totals for one period or an inclusive range. Every active resident santri appears, zero rows included. Accepts canonical YYYY-MM and legacy Indonesian month labels.
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param periode query string false "Period (YYYY-MM or 'September 2024')"
// @Param start query string false "Range start period, used with end"
// @Param end query string false "Range end period, used with start"
// @Success 200 {object} dto.APIResponse{data=[]dto.RealisasiSummary} "Summary retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/realisasi [get]
func (c *LayananController) GetRealisasi(ctx *gin.Context) {
	start := ctx.Query("start")
	end := ctx.Query("end")

	var (
		result interface{}
		err    error
	)
	if start != "" && end != "" {
		result, err = c.layananService.GetRealisasiRange(ctx, start, end)
	} else {
		result, err = c.layananService.GetRealisasiSummary(ctx, ctx.Query("periode"))
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// GetSantriBreakdown returns one santri's monthly service history
// @Summary Santri monthly breakdown
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param santriId path string true "Santri ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MonthlyBreakdown} "Breakdown retrieved"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/santri/{santriId} [get]
func (c *LayananController) GetSantriBreakdown(ctx *gin.Context) {
	breakdown, err := c.layananService.GetSantriBreakdown(ctx, ctx.Param("santriId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(breakdown))
}

// ListPeriodik lists monthly snapshot rows
// @Summary List periodik snapshots
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param periode query string false "Filter by period"
// @Param pilar query string false "Filter by pillar code"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PeriodikListResponse} "Snapshots listed"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/periodik [get]
func (c *LayananController) ListPeriodik(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	rows, pagination, err := c.layananService.ListPeriodik(ctx, ctx.Query("periode"), ctx.Query("pilar"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"periodik":   rows,
		"pagination": pagination,
	}))
}

// GetPeriodikDetail returns one snapshot by periode and pilar
// @Summary Get periodik snapshot
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param periode query string true "Period (YYYY-MM or 'September 2024')"
// @Param pilar query string true "Pillar code"
// @Success 200 {object} dto.APIResponse{data=models.LedgerPeriodik} "Snapshot retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode"
// @Failure 404 {object} dto.ErrorResponse "Snapshot not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/periodik/detail [get]
func (c *LayananController) GetPeriodikDetail(ctx *gin.Context) {
	snap, err := c.layananService.GetPeriodikDetail(ctx, ctx.Query("periode"), ctx.Query("pilar"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(snap))
}

// DeletePeriodik removes a generated slot
// @Summary Delete generated slot
// @Description Removes the snapshot for one (periode, pilar) slot together with every ledger row its generation run produced.
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param periode query string true "Period (YYYY-MM or 'September 2024')"
// @Param pilar query string true "Pillar code"
// @Success 200 {object} dto.APIResponse{data=dto.PeriodikDeleteResult} "Slot deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode or unsupported pilar"
// @Failure 404 {object} dto.ErrorResponse "Snapshot not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/periodik [delete]
func (c *LayananController) DeletePeriodik(ctx *gin.Context) {
	result, err := c.generateService.DeletePeriodik(ctx, ctx.Query("periode"), ctx.Query("pilar"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// Generate runs a periodic generation
// @Summary Generate ledger rows
// @Description Runs a generation for one (periode, pilar) slot. Regenerating the same slot replaces its previous output atomically.
// @Tags layanan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateRequest true "Generation parameters"
// @Success 200 {object} dto.APIResponse{data=dto.GenerateResult} "Generation complete"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode or unsupported pilar"
// @Failure 422 {object} dto.ErrorResponse "No active resident santri in period"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/generate [post]
func (c *LayananController) Generate(ctx *gin.Context) {
	var req dto.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid generation request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.generateService.Generate(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// PreviewGenerate reports what a generation run would write
// @Summary Preview generation
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param periode query string true "Period"
// @Param pilar query string true "Pillar code"
// @Success 200 {object} dto.APIResponse "Preview computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode or unsupported pilar"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/generate/preview [get]
func (c *LayananController) PreviewGenerate(ctx *gin.Context) {
	result, candidates, err := c.generateService.Preview(ctx, ctx.Query("periode"), ctx.Query("pilar"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"result":     result,
		"candidates": candidates,
	}))
}

// MonthlyExpenditures previews qualifying expenditure per month for a pillar
// @Summary Monthly pilar expenditures
// @Tags layanan
// @Produce json
// @Security BearerAuth
// @Param start query string true "Range start period"
// @Param end query string true "Range end period"
// @Param pilar query string true "Pillar code"
// @Success 200 {object} dto.APIResponse{data=[]dto.PilarExpenditure} "Expenditures computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid periode range"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /layanan/pengeluaran [get]
func (c *LayananController) MonthlyExpenditures(ctx *gin.Context) {
	result, err := c.generateService.MonthlyExpenditures(ctx, ctx.Query("start"), ctx.Query("end"), ctx.Query("pilar"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
