package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/marketwire/marketwire-server/internal/auth"
	"github.com/marketwire/marketwire-server/internal/config"
	"github.com/marketwire/marketwire-server/internal/core"
)

// NewServer builds the HTTP server: health check, the realtime socket,
// and the panel-facing auth and presence API.
func NewServer(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger), CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.AllowedOrigins, logger)))

	api := NewAPIHandlers(hub, authService, logger)
	limiter := newRateLimiter(cfg.AuthRateLimit)

	public := router.Group("/api")
	public.Use(RateLimitMiddleware(limiter))
	public.POST("/signup", api.Signup)
	public.POST("/login", api.Login)

	protected := router.Group("/api")
	protected.Use(AuthMiddleware(authService, logger))
	protected.GET("/presence", api.Presence)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
