package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
	"github.com/gradnexus/campusconnect/internal/pkg/filestorage"
)

// ProfileController handles the authenticated user's own profile
type ProfileController struct {
	accountService services.AccountService
	storage        filestorage.FileStorage
	cookie         CookieConfig
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(accountService services.AccountService, storage filestorage.FileStorage, cookie CookieConfig, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		accountService: accountService,
		storage:        storage,
		cookie:         cookie,
		logger:         logger,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Description Returns the caller with the nested alumni profile for alumni users.
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user, err := c.accountService.GetProfile(ctx.Request.Context(), identity(ctx).UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UpdateProfile applies a partial update to the caller's profile
// @Summary Update own profile
// @Description Partial update. Only the fields present are changed; alumni fields are ignored for students. Accepts JSON or multipart with an image file.
// @Tags profile
// @Accept json,mpfd
// @Produce json
// @Security TokenAuth
// @Param request body object false "Fields to update"
// @Param image formData file false "Profile image"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [put]
// @Router /profile [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var (
		payload  dto.ProfilePayload
		imageURL string
	)

	if isMultipart(ctx) {
		form, err := ctx.MultipartForm()
		if err != nil {
			middleware.HandleBindError(ctx, err)
			return
		}
		payload = dto.ProfilePayloadFromForm(form.Value)
		if files := form.File["image"]; len(files) > 0 {
			imageURL, err = c.storage.Save(files[0], filestorage.DirProfileImages)
			if err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
			raw, _ := json.Marshal(imageURL)
			payload["image"] = raw
		}
	} else if err := ctx.ShouldBindJSON(&payload); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	user, err := c.applyUpdate(ctx, payload)
	if err != nil {
		discardUpload(c.storage, c.logger, imageURL)
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

func (c *ProfileController) applyUpdate(ctx *gin.Context, payload dto.ProfilePayload) (*models.User, error) {
	userUpd, alumniUpd, err := payload.Split()
	if err != nil {
		return nil, err
	}
	return c.accountService.UpdateProfile(ctx.Request.Context(), identity(ctx).UserID, userUpd, alumniUpd)
}

// DeleteAccount removes the caller's account and everything it owns
// @Summary Delete own account
// @Tags profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse "Account deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [delete]
func (c *ProfileController) DeleteAccount(ctx *gin.Context) {
	if err := c.accountService.DeleteAccount(ctx.Request.Context(), identity(ctx).UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Account deleted."))
}
