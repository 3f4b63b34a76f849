package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradnexus/campusconnect/internal/app/controllers"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1.
type Controllers struct {
	Auth           *controllers.AuthController
	Profile        *controllers.ProfileController
	Alumni         *controllers.AlumniController
	Event          *controllers.EventController
	MentorshipType *controllers.MentorshipTypeController
	Mentorship     *controllers.MentorshipController
	Job            *controllers.JobController
	Referral       *controllers.ReferralController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/login", c.Auth.Login)
		// Logout only needs to know which session, if any, to end.
		auth.POST("/logout", authMiddleware.OptionalAuth(), c.Auth.Logout)
	}

	// Events are readable anonymously; is_registered is then always false.
	eventsPublic := v1.Group("/events")
	eventsPublic.Use(authMiddleware.OptionalAuth())
	{
		eventsPublic.GET("", c.Event.ListEvents)
		eventsPublic.GET("/:id", c.Event.GetEvent)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireAuth())

	profile := authenticated.Group("/profile")
	{
		profile.GET("", c.Profile.GetProfile)
		profile.PUT("", c.Profile.UpdateProfile)
		profile.PATCH("", c.Profile.UpdateProfile)
		profile.DELETE("", c.Profile.DeleteAccount)
	}

	events := authenticated.Group("/events")
	{
		events.POST("", c.Event.CreateEvent)
		events.PUT("/:id", c.Event.UpdateEvent)
		events.DELETE("/:id", c.Event.DeleteEvent)
		events.POST("/:id/register", c.Event.Register)
	}

	alumni := authenticated.Group("/alumni")
	{
		alumni.GET("", c.Alumni.ListAlumni)
		alumni.GET("/dashboard-stats", c.Alumni.DashboardStats)
		alumni.GET("/:id", c.Alumni.GetAlumni)
	}

	types := authenticated.Group("/mentorship-types")
	{
		types.GET("", c.MentorshipType.ListTypes)
		types.GET("/:id", c.MentorshipType.GetType)
	}

	requests := authenticated.Group("/mentorship-requests")
	{
		requests.GET("", c.Mentorship.ListRequests)
		requests.POST("", c.Mentorship.CreateRequest)
		requests.GET("/:id", c.Mentorship.GetRequest)
		requests.POST("/:id/accept", c.Mentorship.AcceptRequest)
		requests.POST("/:id/reject", c.Mentorship.RejectRequest)
		requests.POST("/:id/cancel", c.Mentorship.CancelRequest)
	}

	activities := authenticated.Group("/mentorship-activities")
	{
		activities.GET("", c.Mentorship.ListActivities)
		activities.POST("", c.Mentorship.CreateActivity)
	}

	jobs := authenticated.Group("/jobs")
	{
		jobs.GET("", c.Job.ListJobs)
		jobs.POST("", c.Job.CreateJob)
		jobs.GET("/:id", c.Job.GetJob)
		jobs.PUT("/:id", c.Job.UpdateJob)
		jobs.DELETE("/:id", c.Job.DeleteJob)
	}

	referrals := authenticated.Group("/referrals")
	{
		referrals.GET("", c.Referral.ListReferrals)
		referrals.POST("", c.Referral.CreateReferral)
		referrals.GET("/:id", c.Referral.GetReferral)
		referrals.PATCH("/:id", c.Referral.UpdateReferralStatus)
	}
}
