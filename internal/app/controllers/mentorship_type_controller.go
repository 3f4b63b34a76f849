package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
)

// MentorshipTypeController exposes the mentorship type catalogue
type MentorshipTypeController struct {
	typeService services.MentorshipTypeService
}

// NewMentorshipTypeController creates a new MentorshipTypeController
func NewMentorshipTypeController(typeService services.MentorshipTypeService) *MentorshipTypeController {
	return &MentorshipTypeController{typeService: typeService}
}

// ListTypes godoc
// @Summary List mentorship types
// @Tags mentorship-types
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse{data=[]models.MentorshipType}
// @Router /mentorship-types [get]
func (c *MentorshipTypeController) ListTypes(ctx *gin.Context) {
	types, err := c.typeService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types))
}

// GetType godoc
// @Summary Get mentorship type
// @Tags mentorship-types
// @Produce json
// @Security TokenAuth
// @Param id path int true "Mentorship type ID"
// @Success 200 {object} dto.APIResponse{data=models.MentorshipType}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /mentorship-types/{id} [get]
func (c *MentorshipTypeController) GetType(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	t, err := c.typeService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(t))
}
