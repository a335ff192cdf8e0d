package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authapp "remind/internal/auth/app"
	authdomain "remind/internal/auth/domain"
	"remind/internal/config"
	"remind/internal/observability"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Config          *config.ServerConfig
	AuthService     *authapp.Service
	AuthHandler     *AuthHandler
	ReminderHandler *ReminderHandler
	Metrics         *observability.RequestMetrics
}

// NewRouter creates the gin engine with all endpoints and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(MetricsMiddleware(deps.Metrics))
	engine.Use(RateLimitMiddleware(RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		Burst:             cfg.RateLimitBurst,
	}))

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		if len(cfg.AllowedOrigins) > 0 {
			corsConfig.AllowOrigins = cfg.AllowedOrigins
		} else {
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		engine.Use(cors.New(corsConfig))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := engine.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", deps.AuthHandler.HandleRegister)
	auth.POST("/login", deps.AuthHandler.HandleLogin)
	auth.GET("/me", AuthRequired(deps.AuthService), deps.AuthHandler.HandleMe)

	reminders := v1.Group("/reminders")
	reminders.Use(AuthRequired(deps.AuthService))
	reminders.POST("", RequireCapability(deps.AuthService, authdomain.CapabilityManageReminders), deps.ReminderHandler.HandleCreate)
	reminders.GET("", RequireCapability(deps.AuthService, authdomain.CapabilityGetReminders), deps.ReminderHandler.HandleList)
	reminders.GET("/:reminderId", RequireCapability(deps.AuthService, authdomain.CapabilityGetReminders), deps.ReminderHandler.HandleGet)
	reminders.PATCH("/:reminderId", RequireCapability(deps.AuthService, authdomain.CapabilityManageReminders), deps.ReminderHandler.HandleUpdate)
	reminders.DELETE("/:reminderId", RequireCapability(deps.AuthService, authdomain.CapabilityManageReminders), deps.ReminderHandler.HandleDelete)

	return engine
}
