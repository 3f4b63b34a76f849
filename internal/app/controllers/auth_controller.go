package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/app/services"
	"github.com/gradnexus/campusconnect/internal/middleware"
)

// CookieConfig describes the session cookie written on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthController handles signup, login and logout
type AuthController struct {
	authService    services.AuthService
	accountService services.AccountService
	cookie         CookieConfig
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, accountService services.AccountService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:    authService,
		accountService: accountService,
		cookie:         cookie,
		logger:         logger,
	}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates a student or alumni account. Alumni must also send job_title and current_company. Returns the user's API token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup payload")
		middleware.HandleBindError(ctx, err)
		return
	}

	payload, err := req.Payload()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, token, err := c.accountService.Signup(ctx.Request.Context(), payload)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AuthResponse{Token: token, User: user}))
}

// Login handles user login
// @Summary User login
// @Description Checks the credentials, returns the user's API token and sets a session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Username or password missing"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	res, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.accountService.GetProfile(ctx.Request.Context(), res.User.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, res.SessionCookie, int(time.Until(res.ExpiresAt).Seconds()))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    user,
	}))
}

// Logout ends the caller's session
// @Summary Logout
// @Description Deletes the current session and clears the session cookie. API tokens stay valid.
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(c.cookie.Name); err == nil && cookie != "" {
		if err := c.authService.Logout(ctx.Request.Context(), cookie); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}
	if id := identity(ctx); id != nil {
		c.logger.Info().Int64("userID", id.UserID).Msg("User logged out")
	}

	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Successfully logged out."))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, value, maxAge, "/", "", c.cookie.Secure, true)
}
