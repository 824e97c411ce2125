package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())
	r.Use(AccessLog())
	r.Use(CurrentUser(h))

	rl := NewRateLimiter(h.RateLimitPerMin, time.Minute)

	r.GET("/", h.Index)
	r.GET("/auth/status", h.AuthStatus)
	r.GET("/auth/google", RateLimit(rl), h.GoogleLogin)
	r.GET("/auth/google/callback", RateLimit(rl), h.GoogleCallback)
	r.GET("/logout", h.Logout)
	r.GET("/success", h.Success)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
