package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/services"
	"github.com/emaktab/pesantren-backend/internal/middleware"
)

// WaliController handles guardian operations
type WaliController struct {
	waliService *services.WaliService
}

// NewWaliController creates a new WaliController
func NewWaliController(waliService *services.WaliService) *WaliController {
	return &WaliController{
		waliService: waliService,
	}
}

// CreateWali adds a guardian to a santri
// @Summary Add wali
// @Description Adds a guardian. Flagging utama demotes any existing primary guardian atomically.
// @Tags wali
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param santriId path string true "Santri ID"
// @Param request body dto.CreateWaliRequest true "Wali information"
// @Success 201 {object} dto.APIResponse{data=models.Wali} "Wali created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId}/wali [post]
func (c *WaliController) CreateWali(ctx *gin.Context) {
	var req dto.CreateWaliRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid wali data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	wali, err := c.waliService.Create(ctx, ctx.Param("santriId"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(wali))
}

// ListWali lists a santri's guardians
// @Summary List wali
// @Tags wali
// @Produce json
// @Security BearerAuth
// @Param santriId path string true "Santri ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Wali} "Wali listed"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId}/wali [get]
func (c *WaliController) ListWali(ctx *gin.Context) {
	wali, err := c.waliService.ListBySantri(ctx, ctx.Param("santriId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(wali))
}

// UpdateWali updates a guardian
// @Summary Update wali
// @Tags wali
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Wali ID"
// @Param request body dto.UpdateWaliRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Wali} "Wali updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Wali not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wali/{id} [put]
func (c *WaliController) UpdateWali(ctx *gin.Context) {
	var req dto.UpdateWaliRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid wali data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	wali, err := c.waliService.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(wali))
}

// SetWaliUtama promotes a guardian to primary
// @Summary Promote wali to utama
// @Description Makes this wali the primary guardian, demoting any sibling utama
// @Tags wali
// @Produce json
// @Security BearerAuth
// @Param id path string true "Wali ID"
// @Success 200 {object} dto.APIResponse{data=models.Wali} "Wali promoted"
// @Failure 404 {object} dto.ErrorResponse "Wali not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wali/{id}/utama [post]
func (c *WaliController) SetWaliUtama(ctx *gin.Context) {
	wali, err := c.waliService.SetUtama(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(wali))
}

// DeleteWali removes a guardian
// @Summary Delete wali
// @Tags wali
// @Produce json
// @Security BearerAuth
// @Param id path string true "Wali ID"
// @Success 200 {object} dto.APIResponse "Wali deleted"
// @Failure 404 {object} dto.ErrorResponse "Wali not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /wali/{id} [delete]
func (c *WaliController) DeleteWali(ctx *gin.Context) {
	if err := c.waliService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"message": "wali deleted"}))
}
