package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emaktab/pesantren-backend/internal/app/models/dto"
	"github.com/emaktab/pesantren-backend/internal/app/services"
	"github.com/emaktab/pesantren-backend/internal/middleware"
	"github.com/emaktab/pesantren-backend/internal/pkg/filestorage"
)

// DokumenController handles santri document operations
type DokumenController struct {
	dokumenService *services.DokumenService
	storage        filestorage.FileStorage
	signer         filestorage.URLSigner
}

// NewDokumenController creates a new DokumenController
func NewDokumenController(dokumenService *services.DokumenService, storage filestorage.FileStorage, signer filestorage.URLSigner) *DokumenController {
	return &DokumenController{
		dokumenService: dokumenService,
		storage:        storage,
		signer:         signer,
	}
}

// UploadDokumen uploads a document for a santri
// @Summary Upload dokumen
// @Description Stores a document file (JPG, PNG, PDF, DOC up to 10MB) for a santri
// @Tags dokumen
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param santriId path string true "Santri ID"
// @Param jenisDokumen formData string true "Document type label"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=models.DokumenSantri} "Dokumen uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or type, file too large or type not allowed"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId}/dokumen [post]
func (c *DokumenController) UploadDokumen(ctx *gin.Context) {
	jenisDokumen := ctx.PostForm("jenisDokumen")
	if jenisDokumen == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "jenisDokumen is required").WithField("jenisDokumen")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	dokumen, err := c.dokumenService.Upload(ctx, ctx.Param("santriId"), jenisDokumen, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dokumen))
}

// GetChecklist returns the document checklist for a santri
// @Summary Dokumen checklist
// @Description Pairs derived requirements with uploaded documents. Rows with retired document type labels are purged on read.
// @Tags dokumen
// @Produce json
// @Security BearerAuth
// @Param santriId path string true "Santri ID"
// @Success 200 {object} dto.APIResponse{data=dto.DokumenChecklistResponse} "Checklist retrieved"
// @Failure 404 {object} dto.ErrorResponse "Santri not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /santri/{santriId}/dokumen [get]
func (c *DokumenController) GetChecklist(ctx *gin.Context) {
	checklist, err := c.dokumenService.GetChecklist(ctx, ctx.Param("santriId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(checklist))
}

// GetSignedURL issues a time-limited download URL for a document
// @Summary Signed dokumen URL
// @Tags dokumen
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dokumen ID"
// @Success 200 {object} dto.APIResponse{data=dto.SignedURLResponse} "Signed URL issued"
// @Failure 404 {object} dto.ErrorResponse "Dokumen not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dokumen/{id}/url [get]
func (c *DokumenController) GetSignedURL(ctx *gin.Context) {
	signed, err := c.dokumenService.GetSignedURL(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(signed))
}

// DeleteDokumen removes a document
// @Summary Delete dokumen
// @Tags dokumen
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dokumen ID"
// @Success 200 {object} dto.APIResponse "Dokumen deleted"
// @Failure 404 {object} dto.ErrorResponse "Dokumen not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dokumen/{id} [delete]
func (c *DokumenController) DeleteDokumen(ctx *gin.Context) {
	if err := c.dokumenService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"message": "dokumen deleted"}))
}

// ServeFile serves a stored file after verifying its signed URL. This route
// is unauthenticated; the signature is the credential.
// @Summary Serve signed file
// @Tags dokumen
// @Produce octet-stream
// @Param path path string true "Stored file path"
// @Param expires query string true "Unix expiry"
// @Param signature query string true "HMAC signature"
// @Success 200 {file} binary "File content"
// @Failure 403 {object} dto.ErrorResponse "Signature invalid or expired"
// @Router /files/{path} [get]
func (c *DokumenController) ServeFile(ctx *gin.Context) {
	storagePath := ctx.Param("path")
	if len(storagePath) > 0 && storagePath[0] == '/' {
		storagePath = storagePath[1:]
	}

	err := c.signer.Verify(storagePath, ctx.Query("expires"), ctx.Query("signature"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Signed URL is invalid or expired")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}

	fullPath := c.storage.GetFullPath(storagePath)
	if fullPath == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "File not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.File(fullPath)
}
