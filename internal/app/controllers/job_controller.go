package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
)

// JobController handles the job board
type JobController struct {
	jobService services.JobService
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService) *JobController {
	return &JobController{jobService: jobService}
}

// ListJobs lists job postings
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Security TokenAuth
// @Param my_jobs query bool false "Only jobs posted by the caller"
// @Success 200 {object} dto.APIResponse{data=[]models.Job}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	mine := ctx.Query("my_jobs") == "true"
	jobs, err := c.jobService.List(ctx.Request.Context(), identity(ctx), mine)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(jobs))
}

// GetJob godoc
// @Summary Get job
// @Tags jobs
// @Produce json
// @Security TokenAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	job, err := c.jobService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job))
}

// CreateJob posts a job
// @Summary Create job
// @Description Only alumni can post jobs.
// @Tags jobs
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.JobRequest true "Job"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Only alumni can post jobs"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	actor := identity(ctx)
	job, err := c.jobService.Create(ctx.Request.Context(), actor, req.ToModel(actor.UserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(job))
}

// UpdateJob godoc
// @Summary Update job
// @Tags jobs
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Job ID"
// @Param request body dto.JobRequest true "Job"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Not the poster"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	actor := identity(ctx)
	job, err := c.jobService.Update(ctx.Request.Context(), actor, id, req.ToModel(actor.UserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job))
}

// DeleteJob godoc
// @Summary Delete job
// @Description Deleting a job also deletes its referral requests.
// @Tags jobs
// @Security TokenAuth
// @Param id path int true "Job ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the poster"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.jobService.Delete(ctx.Request.Context(), identity(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
