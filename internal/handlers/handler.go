package handlers

import (
	"strings"

	"admin-console/internal/config"
	"admin-console/internal/logger"
	"admin-console/internal/models"
	"admin-console/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP layer to services, configuration and logging.
type Handler struct {
	services *service.Service
	cfg      *config.Config
	log      *logger.Logger
}

func NewHandler(services *service.Service, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{services: services, cfg: cfg, log: log}
}

// InitRoutes builds the Gin engine with the full route table registered
// under the configured API prefix.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(h.recovered))

	// Collapse duplicate slashes before matching; trailing slashes redirect
	// to the canonical route (gin default). Tests pin both behaviors.
	router.RemoveExtraSlash = true
	router.HandleMethodNotAllowed = true

	router.Use(h.corsMiddleware)
	router.NoRoute(h.routeNotFound)
	router.NoMethod(h.methodNotAllowed)

	api := router.Group(normalizePrefix(h.cfg.APIPrefix))

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.GET("/me", h.authRequired, h.me)
	}

	users := api.Group("/users", h.authRequired, h.requireRole(models.RoleAdmin))
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.PUT("/:id", h.updateUser)
		users.PATCH("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	return router
}

// normalizePrefix canonicalizes the configured API prefix to exactly one
// leading slash and no trailing slash. A bare "/" mounts routes at the root.
func normalizePrefix(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
