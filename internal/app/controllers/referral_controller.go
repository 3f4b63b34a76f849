package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
	"github.com/gradnexus/campusconnect/internal/pkg/filestorage"
)

// ReferralController handles referral requests on job postings
type ReferralController struct {
	referralService services.ReferralService
	storage         filestorage.FileStorage
	logger          zerolog.Logger
}

// NewReferralController creates a new ReferralController
func NewReferralController(referralService services.ReferralService, storage filestorage.FileStorage, logger zerolog.Logger) *ReferralController {
	return &ReferralController{
		referralService: referralService,
		storage:         storage,
		logger:          logger,
	}
}

// ListReferrals lists referral requests visible to the caller
// @Summary List referral requests
// @Description Students see the referrals they sent, alumni those on jobs they posted.
// @Tags referrals
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ReferralRequest}
// @Router /referrals [get]
func (c *ReferralController) ListReferrals(ctx *gin.Context) {
	referrals, err := c.referralService.List(ctx.Request.Context(), identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(referrals))
}

// GetReferral godoc
// @Summary Get referral request
// @Tags referrals
// @Produce json
// @Security TokenAuth
// @Param id path int true "Referral ID"
// @Success 200 {object} dto.APIResponse{data=models.ReferralRequest}
// @Failure 403 {object} dto.ErrorResponse "Not a party to the referral"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /referrals/{id} [get]
func (c *ReferralController) GetReferral(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	rr, err := c.referralService.Get(ctx.Request.Context(), identity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rr))
}

// CreateReferral asks the poster of a job for a referral
// @Summary Create referral request
// @Description Only students can ask for referrals. A resume upload is required.
// @Tags referrals
// @Accept mpfd
// @Produce json
// @Security TokenAuth
// @Param job formData int true "Job ID"
// @Param message formData string false "Message to the poster"
// @Param resume formData file true "Resume"
// @Success 201 {object} dto.APIResponse{data=models.ReferralRequest}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Only students can ask for referrals"
// @Router /referrals [post]
func (c *ReferralController) CreateReferral(ctx *gin.Context) {
	var req dto.CreateReferralRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	var (
		resumeURL string
		err       error
	)
	if isMultipart(ctx) {
		resumeURL, err = saveUpload(ctx, c.storage, "resume", filestorage.DirReferralResumes)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	rr, err := c.referralService.Create(ctx.Request.Context(), identity(ctx), req.Job, optionalString(req.Message), resumeURL)
	if err != nil {
		discardUpload(c.storage, c.logger, resumeURL)
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(rr))
}

// UpdateReferralStatus lets the job poster move a referral along
// @Summary Update referral status
// @Tags referrals
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Referral ID"
// @Param request body dto.UpdateReferralStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.ReferralRequest}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Only the job poster may update"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /referrals/{id} [patch]
func (c *ReferralController) UpdateReferralStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateReferralStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	rr, err := c.referralService.UpdateStatus(ctx.Request.Context(), identity(ctx), id, models.ReferralStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rr))
}
