package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/config"
	"github.com/aumugisha-umu/seido-sub006/internal/api/handler"
	"github.com/aumugisha-umu/seido-sub006/internal/api/middleware"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/pkg/jwt"
	"github.com/aumugisha-umu/seido-sub006/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 Mo par requête

// Setup initialise et retourne le moteur Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middlewares globaux ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── Vérification de vie ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	manage := middleware.RoleAuth(model.RoleAdmin, model.RoleGestionnaire)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Module authentification (sans authentification préalable)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Routes authentifiées
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// Module authentification (session connectée)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// Module utilisateurs
			users := authorized.Group("/users")
			{
				users.GET("", manage, h.User.List)
				users.POST("", manage, h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update) // gestionnaire ou soi-même (contrôle côté service)
				users.PUT("/:id/role", middleware.RoleAuth(model.RoleAdmin), h.User.AssignRole)
				users.POST("/:id/reset-password", middleware.RoleAuth(model.RoleAdmin), h.User.ResetPassword)
			}

			// Module équipes
			teams := authorized.Group("/teams")
			{
				teams.GET("", middleware.RoleAuth(model.RoleAdmin), h.Team.List)
				teams.POST("", middleware.RoleAuth(model.RoleAdmin), h.Team.Create)
				teams.GET("/:id", h.Team.Get)
				teams.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Team.Update)
				teams.GET("/:id/members", manage, h.Team.ListMembers)
			}

			// Module immeubles
			buildings := authorized.Group("/buildings")
			{
				buildings.GET("", manage, h.Building.List)
				buildings.POST("", manage, h.Building.Create)
				buildings.GET("/:id", h.Building.Get)
				buildings.PUT("/:id", manage, h.Building.Update)
				buildings.DELETE("/:id", manage, h.Building.Delete)
				buildings.GET("/:id/lots", h.Building.ListLots)
			}

			// Module lots
			lots := authorized.Group("/lots")
			{
				lots.POST("", manage, h.Lot.Create)
				lots.GET("/mine", h.Lot.ListMine)
				lots.GET("/:id", h.Lot.Get)
				lots.PUT("/:id", manage, h.Lot.Update)
				lots.DELETE("/:id", manage, h.Lot.Delete)
			}

			// Module interventions : cycle de vie complet
			interventions := authorized.Group("/interventions")
			{
				interventions.GET("", h.Intervention.List)
				interventions.POST("", h.Intervention.Create)
				interventions.GET("/:id", h.Intervention.Get)

				interventions.POST("/:id/approve", manage, h.Intervention.Approve)
				interventions.POST("/:id/reject", manage, h.Intervention.Reject)
				interventions.POST("/:id/quote-requests", manage, h.Intervention.RequestQuote)
				interventions.POST("/:id/start-planning", manage, h.Intervention.StartPlanning)
				interventions.POST("/:id/program", manage, h.Intervention.Program)
				interventions.POST("/:id/start", h.Intervention.Start)
				interventions.POST("/:id/complete", h.Intervention.Complete)
				interventions.POST("/:id/validate", h.Intervention.Validate)
				interventions.POST("/:id/finalize", manage, h.Intervention.Finalize)
				interventions.POST("/:id/cancel", h.Intervention.Cancel)

				interventions.GET("/:id/assignments", h.Intervention.ListAssignments)
				interventions.POST("/:id/assignments", manage, h.Intervention.AssignUser)
				interventions.DELETE("/:id/assignments/:userID", manage, h.Intervention.UnassignUser)
				interventions.GET("/:id/activity", h.Intervention.ListActivity)

				interventions.GET("/:id/time-slots", h.TimeSlot.ListByIntervention)
				interventions.GET("/:id/quotes", h.Quote.ListByIntervention)
				interventions.GET("/:id/calendar.ics", h.Export.InterventionICS)
			}

			// Module créneaux : réponses et sélection
			timeSlots := authorized.Group("/time-slots")
			{
				timeSlots.POST("/:id/accept", h.TimeSlot.Accept)
				timeSlots.POST("/:id/reject", h.TimeSlot.Reject)
				timeSlots.POST("/:id/withdraw", h.TimeSlot.Withdraw)
				timeSlots.POST("/:id/choose", manage, h.TimeSlot.Choose)
				timeSlots.DELETE("/:id", h.TimeSlot.Cancel)
			}

			// Module devis
			quotes := authorized.Group("/quotes")
			{
				quotes.POST("/:id/submit", middleware.RoleAuth(model.RolePrestataire), h.Quote.Submit)
				quotes.POST("/:id/accept", manage, h.Quote.Accept)
				quotes.POST("/:id/reject", manage, h.Quote.Reject)
			}

			// Module notifications
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// Module exports
			export := authorized.Group("/export")
			{
				export.GET("/interventions.xlsx", manage, h.Export.InterventionsXLSX)
			}
		}
	}

	return r
}
