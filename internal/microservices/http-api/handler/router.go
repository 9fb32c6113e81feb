package handler

import (
	"context"
	"net/http"
	"time"

	"yamdb/internal/metrics"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services bundles what the routes need.
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Categories service.CategoryService
	Genres     service.GenreService
	Titles     service.TitleService
	Reviews    service.ReviewService
	Comments   service.CommentService
}

type RouterOptions struct {
	Log         *logrus.Logger
	CORSOrigins []string
	// TrustedProxies may set the client IP through X-Forwarded-For; nil trusts none.
	TrustedProxies []string
	// AuthLimiter throttles /auth; nil disables throttling.
	AuthLimiter *middleware.RateLimiter
	Metrics     bool
	// Ping reports backing store health for /healthz; nil always reports ok.
	Ping func(ctx context.Context) error
}

func NewRouter(s Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		opts.Log.WithError(err).Warn("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.NoMethod(methodNotAllowed)
	r.NoRoute(routeNotFound)

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		opts.Log.WithField("panic", recovered).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}))
	r.Use(middleware.RequestID(), middleware.RequestLogger(opts.Log), middleware.CORS(opts.CORSOrigins))

	if opts.Metrics {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.GET("/healthz", healthz(opts.Ping))

	api := r.Group("/api/v1", middleware.Authenticate(s.Auth))

	auth := api.Group("/auth")
	if opts.AuthLimiter != nil {
		auth.Use(opts.AuthLimiter.Handler())
	}
	NewAuthHandler(s.Auth).RegisterRoutes(auth)

	NewUserHandler(s.Users).RegisterRoutes(api.Group("/users"))
	NewCategoryHandler(s.Categories).RegisterRoutes(api.Group("/categories"))
	NewGenreHandler(s.Genres).RegisterRoutes(api.Group("/genres"))

	titles := api.Group("/titles")
	NewTitleHandler(s.Titles).RegisterRoutes(titles)
	reviews := titles.Group("/:title_id/reviews")
	NewReviewHandler(s.Reviews).RegisterRoutes(reviews)
	NewCommentHandler(s.Comments).RegisterRoutes(reviews.Group("/:review_id/comments"))

	return r
}

func healthz(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
