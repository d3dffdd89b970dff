package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/services"
	"github.com/emaktab/pesantren-backend/internal/middleware"
)

// PilarController handles master pillar and category operations
type PilarController struct {
	pilarService *services.PilarService
}

// NewPilarController creates a new PilarController
func NewPilarController(pilarService *services.PilarService) *PilarController {
	return &PilarController{
		pilarService: pilarService,
	}
}

// ListPilar lists master pillars
// @Summary List pilar
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive pillars"
// @Success 200 {object} dto.APIResponse{data=[]models.MasterPilarLayanan} "Pilar listed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /master/pilar [get]
func (c *PilarController) ListPilar(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"

	pilar, err := c.pilarService.ListPilar(ctx, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pilar))
}

// CreatePilar registers a new pillar code
// @Summary Create pilar
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePilarRequest true "Pilar information"
// @Success 201 {object} dto.APIResponse{data=models.MasterPilarLayanan} "Pilar created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Pilar kode already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /master/pilar [post]
func (c *PilarController) CreatePilar(ctx *gin.Context) {
	var req dto.CreatePilarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pilar data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	pilar, err := c.pilarService.CreatePilar(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(pilar))
}

// UpdatePilar updates a pillar's display fields
// @Summary Update pilar
// @Description Updates display fields. The kode is immutable because ledger rows reference it.
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kode path string true "Pilar kode"
// @Param request body dto.UpdatePilarRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.MasterPilarLayanan} "Pilar updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Pilar not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /master/pilar/{kode} [put]
func (c *PilarController) UpdatePilar(ctx *gin.Context) {
	var req dto.UpdatePilarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pilar data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	pilar, err := c.pilarService.UpdatePilar(ctx, ctx.Param("kode"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pilar))
}

// ListKategori lists expenditure category mappings
// @Summary List kategori pengeluaran
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive categories"
// @Success 200 {object} dto.APIResponse{data=[]models.MasterKategoriPengeluaran} "Kategori listed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /master/kategori [get]
func (c *PilarController) ListKategori(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"

	kategori, err := c.pilarService.ListKategori(ctx, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(kategori))
}

// CreateKategori registers a category mapping
// @Summary Create kategori pengeluaran
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateKategoriRequest true "Kategori information"
// @Success 201 {object} dto.APIResponse{data=models.MasterKategoriPengeluaran} "Kategori created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Referenced pilar not found"
// @Failure 409 {object} dto.ErrorResponse "Kategori already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /master/kategori [post]
func (c *PilarController) CreateKategori(ctx *gin.Context) {
	var req dto.CreateKategoriRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid kategori data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	kategori, err := c.pilarService.CreateKategori(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(kategori))
}

// UpdateKategori updates a category mapping
// @Summary Update kategori pengeluaran
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kategori ID"
// @Param request body dto.UpdateKategoriRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.MasterKategoriPengeluaran} "Kategori updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Kategori not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /master/kategori/{id} [put]
func (c *PilarController) UpdateKategori(ctx *gin.Context) {
	var req dto.UpdateKategoriRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid kategori data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	kategori, err := c.pilarService.UpdateKategori(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(kategori))
}
