// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/auth"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/middleware"
	"github.com/gradnexus/campusconnect/internal/pkg/filestorage"
)

// idParam parses a positive id path parameter. On failure it writes a 400 and returns false.
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name).
			WithField(name).
			WithDetails("Must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// identity returns the authenticated caller, or nil for anonymous requests.
func identity(ctx *gin.Context) *auth.Identity {
	id, ok := middleware.GetIdentity(ctx)
	if !ok {
		return nil
	}
	return id
}

func isMultipart(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.ContentType(), "multipart/form-data")
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// saveUpload stores the multipart file under field, if any. An absent file yields an empty URL.
func saveUpload(ctx *gin.Context, storage filestorage.FileStorage, field, dir string) (string, error) {
	fh, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return storage.Save(fh, dir)
}

// discardUpload removes a file saved for a request that later failed.
func discardUpload(storage filestorage.FileStorage, logger zerolog.Logger, url string) {
	if url == "" {
		return
	}
	if err := storage.Delete(url); err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("Failed to remove orphaned upload")
	}
}
