package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
	"github.com/gradnexus/campusconnect/internal/pkg/filestorage"
)

// MentorshipController handles mentorship requests and their activities
type MentorshipController struct {
	mentorshipService services.MentorshipService
	storage           filestorage.FileStorage
	logger            zerolog.Logger
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService services.MentorshipService, storage filestorage.FileStorage, logger zerolog.Logger) *MentorshipController {
	return &MentorshipController{
		mentorshipService: mentorshipService,
		storage:           storage,
		logger:            logger,
	}
}

// ListRequests lists the caller's mentorship requests
// @Summary List mentorship requests
// @Description Students see the requests they sent, alumni the requests they received.
// @Tags mentorship
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorshipRequestResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /mentorship-requests [get]
func (c *MentorshipController) ListRequests(ctx *gin.Context) {
	requests, err := c.mentorshipService.ListRequests(ctx.Request.Context(), identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := make([]dto.MentorshipRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, dto.NewMentorshipRequestResponse(r))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetRequest retrieves a mentorship request the caller is party to
// @Summary Get mentorship request
// @Tags mentorship
// @Produce json
// @Security TokenAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a party to the request"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /mentorship-requests/{id} [get]
func (c *MentorshipController) GetRequest(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	req, err := c.mentorshipService.GetRequest(ctx.Request.Context(), identity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMentorshipRequestResponse(req)))
}

// CreateRequest sends a mentorship request to an alumni
// @Summary Create mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.CreateMentorshipRequestRequest true "Request"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Only students can send requests"
// @Router /mentorship-requests [post]
func (c *MentorshipController) CreateRequest(ctx *gin.Context) {
	var req dto.CreateMentorshipRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	created, err := c.mentorshipService.CreateRequest(ctx.Request.Context(), identity(ctx), req.Alumni, req.Message, req.MentorshipTypes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewMentorshipRequestResponse(created)))
}

// AcceptRequest godoc
// @Summary Accept mentorship request
// @Tags mentorship
// @Produce json
// @Security TokenAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.StatusResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the receiving alumni may accept"
// @Failure 409 {object} dto.ErrorResponse "Request is no longer pending"
// @Router /mentorship-requests/{id}/accept [post]
func (c *MentorshipController) AcceptRequest(ctx *gin.Context) {
	c.transition(ctx, models.RequestAccepted)
}

// RejectRequest godoc
// @Summary Reject mentorship request
// @Tags mentorship
// @Produce json
// @Security TokenAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.StatusResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the receiving alumni may reject"
// @Failure 409 {object} dto.ErrorResponse "Request is no longer pending"
// @Router /mentorship-requests/{id}/reject [post]
func (c *MentorshipController) RejectRequest(ctx *gin.Context) {
	c.transition(ctx, models.RequestRejected)
}

// CancelRequest godoc
// @Summary Cancel mentorship request
// @Tags mentorship
// @Produce json
// @Security TokenAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.StatusResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the requesting student may cancel"
// @Failure 409 {object} dto.ErrorResponse "Request is no longer pending"
// @Router /mentorship-requests/{id}/cancel [post]
func (c *MentorshipController) CancelRequest(ctx *gin.Context) {
	c.transition(ctx, models.RequestCancelled)
}

func (c *MentorshipController) transition(ctx *gin.Context, next models.RequestStatus) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.mentorshipService.Transition(ctx.Request.Context(), identity(ctx), id, next); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StatusResponse{Status: string(next)}))
}

// ListActivities lists activities on the caller's mentorships
// @Summary List mentorship activities
// @Tags mentorship
// @Produce json
// @Security TokenAuth
// @Param request_id query int false "Only activities of this request"
// @Param status query string false "Only activities in this status" Enums(pending, in_progress, completed, scheduled)
// @Success 200 {object} dto.APIResponse{data=[]models.MentorshipActivity}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /mentorship-activities [get]
func (c *MentorshipController) ListActivities(ctx *gin.Context) {
	var requestID int64
	if raw := ctx.Query("request_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request_id").WithField("request_id")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		requestID = id
	}

	activities, err := c.mentorshipService.ListActivities(ctx.Request.Context(), identity(ctx), requestID, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities))
}

// CreateActivity records an activity on a mentorship
// @Summary Create mentorship activity
// @Description Either party may log an activity. A scheduled activity emails the student. Accepts JSON or multipart with an attachment.
// @Tags mentorship
// @Accept json,mpfd
// @Produce json
// @Security TokenAuth
// @Param request body dto.CreateActivityRequest true "Activity"
// @Param file formData file false "Attachment"
// @Success 201 {object} dto.APIResponse{data=models.MentorshipActivity}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /mentorship-activities [post]
func (c *MentorshipController) CreateActivity(ctx *gin.Context) {
	var req dto.CreateActivityRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	activity, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var fileURL string
	if isMultipart(ctx) {
		fileURL, err = saveUpload(ctx, c.storage, "file", filestorage.DirActivityFiles)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		activity.File = optionalString(fileURL)
	}

	created, err := c.mentorshipService.CreateActivity(ctx.Request.Context(), identity(ctx), activity)
	if err != nil {
		discardUpload(c.storage, c.logger, fileURL)
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}
