package handlers

import (
	"net/http"

	"user_management/internal/logger"
	"user_management/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	debug    bool
}

// NewHandler constructs a new HTTP handler with dependencies. debug controls
// whether recovery responses carry fault detail.
func NewHandler(services *service.Service, log *logger.Logger, debug bool) *Handler {
	return &Handler{services: services, log: log, debug: debug}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(h.requestLogMiddleware, gin.CustomRecoveryWithWriter(nil, h.recoveryHandler))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health + banner endpoints
	router.GET("/", h.home)
	router.GET("/health", h.health)

	h.registerUserRoutes(router)

	// Unknown routes and wrong methods get fixed generic messages.
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgInvalidEndpoint})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": msgMethodNotAllowed})
	})

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	r.GET("/users", h.listUsers)
	r.POST("/users", h.createUser)

	user := r.Group("/user")
	{
		user.GET("/:id", h.getUser)
		user.PUT("/:id", h.updateUser)
		user.DELETE("/:id", h.deleteUser)
	}

	r.GET("/search", h.searchUsers)
	r.POST("/login", h.login)
}

// recoveryHandler converts panics into the generic 500 body; detail is only
// exposed in debug mode.
func (h *Handler) recoveryHandler(c *gin.Context, recovered any) {
	if h.log != nil {
		h.log.Errorw("panic_recovered", "panic", recovered, "path", c.Request.URL.Path)
	}
	if h.debug {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "A server error occurred: " + toString(recovered),
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
}

// @Summary      API banner
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	c.String(http.StatusOK, "User Management System API is Running!")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
