package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/services"
	"github.com/emaktab/pesantren-backend/internal/middleware"
	"github.com/emaktab/pesantren-backend/internal/pkg/helpers"
)

// SantriController handles santri record operations
type SantriController struct {
	santriService *services.SantriService
}

// NewSantriController creates a new SantriController
func NewSantriController(santriService *services.SantriService) *SantriController {
	return &SantriController{
		santriService: santriService,
	}
}

// CreateSantri enrolls a new santri
// @Summary Enroll santri
// @Description Creates a new santri record with status Aktif
// @Tags santri
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSantriRequest true "Santri information"
// @Success 201 {object} dto.APIResponse{data=models.Santri} "Santri created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "NISN already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri [post]
func (c *SantriController) CreateSantri(ctx *gin.Context) {
	var req dto.CreateSantriRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid santri data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	santri, err := c.santriService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(santri))
}

// GetSantriByID retrieves a santri with guardians
// @Summary Get santri by ID
// @Tags santri
// @Produce json
// @Security BearerAuth
// @Param       santriId  path string true "Santri ID"
// @Success 200 {object} dto.APIResponse{data=models.Santri} "Santri retrieved"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId} [get]
func (c *SantriController) GetSantriByID(ctx *gin.Context) {
	santri, err := c.santriService.GetByID(ctx, ctx.Param("santriId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(santri))
}

// ListSantri lists santri with filters and pagination
// @Summary List santri
// @Tags santri
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param kategori query string false "Filter by kategori"
// @Param search query string false "Match nama_lengkap or nisn"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.SantriListResponse} "Santri listed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri [get]
func (c *SantriController) ListSantri(ctx *gin.Context) {
	var filter dto.SantriFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.santriService.List(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// UpdateSantri updates a santri record
// @Summary Update santri
// @Tags santri
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param       santriId  path string true "Santri ID"
// @Param request body dto.UpdateSantriRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Santri} "Santri updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId} [put]
func (c *SantriController) UpdateSantri(ctx *gin.Context) {
	var req dto.UpdateSantriRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid santri data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	santri, err := c.santriService.Update(ctx, ctx.Param("santriId"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(santri))
}

// DeactivateSantri marks a santri as having left
// @Summary Deactivate santri
// @Description Sets status to Keluar. Santri records and their ledger history are never deleted.
// @Tags santri
// @Produce json
// @Security BearerAuth
// @Param       santriId  path string true "Santri ID"
// @Success 200 {object} dto.APIResponse "Santri deactivated"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId} [delete]
func (c *SantriController) DeactivateSantri(ctx *gin.Context) {
	if err := c.santriService.Deactivate(ctx, ctx.Param("santriId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"message": "santri deactivated"}))
}
