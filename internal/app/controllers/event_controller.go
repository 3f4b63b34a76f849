package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
)

// EventController handles campus events
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// ListEvents lists all events
// @Summary List events
// @Description Lists events, newest date first. Open to anonymous callers; is_registered is false for them.
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.List(ctx.Request.Context(), identity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEvent retrieves one event
// @Summary Get event
// @Description The participants list is included only for the organizer.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	event, err := c.eventService.Get(ctx.Request.Context(), identity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// CreateEvent creates an event organized by the caller
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.EventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	actor := identity(ctx)
	event, err := c.eventService.Create(ctx.Request.Context(), actor, req.ToModel(actor.UserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// UpdateEvent replaces an event
// @Summary Update event
// @Description Only the organizer may update an event.
// @Tags events
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Event ID"
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	actor := identity(ctx)
	event, err := c.eventService.Update(ctx.Request.Context(), actor, id, req.ToModel(actor.UserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent deletes an event
// @Summary Delete event
// @Description Only the organizer may delete an event.
// @Tags events
// @Security TokenAuth
// @Param id path int true "Event ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.Delete(ctx.Request.Context(), identity(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Register toggles the caller's registration
// @Summary Register or unregister
// @Description Registers the caller, or unregisters a caller who is already registered.
// @Tags events
// @Produce json
// @Security TokenAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.StatusResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	registered, err := c.eventService.ToggleRegistration(ctx.Request.Context(), identity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	status := "unregistered"
	if registered {
		status = "registered"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StatusResponse{Status: status}))
}
