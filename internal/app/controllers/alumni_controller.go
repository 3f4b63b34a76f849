package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
)

// AlumniController serves the alumni directory and the alumni dashboard
type AlumniController struct {
	alumniService     services.AlumniService
	mentorshipService services.MentorshipService
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(alumniService services.AlumniService, mentorshipService services.MentorshipService) *AlumniController {
	return &AlumniController{alumniService: alumniService, mentorshipService: mentorshipService}
}

// ListAlumni lists the alumni directory
// @Summary List alumni
// @Tags alumni
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AlumniCard}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /alumni [get]
func (c *AlumniController) ListAlumni(ctx *gin.Context) {
	users, err := c.alumniService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	cards := make([]dto.AlumniCard, 0, len(users))
	for _, u := range users {
		cards = append(cards, dto.NewAlumniCard(u))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cards))
}

// GetAlumni retrieves one alumni with the full profile
// @Summary Get alumni
// @Tags alumni
// @Produce json
// @Security TokenAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse "No alumni with that id"
// @Router /alumni/{id} [get]
func (c *AlumniController) GetAlumni(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.alumniService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// DashboardStats summarises the caller's mentoring
// @Summary Alumni dashboard stats
// @Tags alumni
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller is not an alumni"
// @Router /alumni/dashboard-stats [get]
func (c *AlumniController) DashboardStats(ctx *gin.Context) {
	stats, err := c.mentorshipService.DashboardStats(ctx.Request.Context(), identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
