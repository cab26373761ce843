package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskapi/internal/auth"
	"taskapi/internal/service"
)

// Options tunes the session cookie and the cross-origin policy.
type Options struct {
	CookieName string
	// CookieHTTPOnly is off by default so browser scripts can read the token.
	CookieHTTPOnly bool
	CookieSecure   bool
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	tasks  service.TaskService
	tokens *auth.TokenIssuer
	opts   Options
	log    logrus.FieldLogger
}

func NewHandler(users service.UserService, tasks service.TaskService, tokens *auth.TokenIssuer, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = auth.DefaultCookieName
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		users:  users,
		tasks:  tasks,
		tokens: tokens,
		opts:   opts,
		log:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger())
	if len(h.opts.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(h.opts.AllowedOrigins))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
	}

	tasks := router.Group("/tasks", h.requireSession())
	{
		tasks.GET("", h.listTasks)
		tasks.GET("/:taskId", h.getTask)
		tasks.POST("", h.createTask)
		tasks.PUT("/:taskId", h.updateTask)
		tasks.DELETE("/:taskId", h.deleteTask)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	// the session travels in a cookie
	cfg.AllowCredentials = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.FullPath(),
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if user, ok := currentUser(c); ok {
			entry = entry.WithField("user_id", user.ID)
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	}
}

func respond(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{
		"status": status < http.StatusBadRequest,
		"msg":    msg,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, msg string) {
	respond(c, status, msg, nil)
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.fail(c, err, "Internal Server Error")
}

// fail logs err with the request line and answers 500 with msg.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	h.log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("request error")
	respondError(c, http.StatusInternalServerError, msg)
}

// bindJSON decodes the request body into dst. An empty body leaves dst zeroed
// so that field validation reports what is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
