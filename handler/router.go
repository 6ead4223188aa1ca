package handler

import (
	"time"

	"resourceshub/middleware"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig carries the handlers and the cross-cutting dependencies the
// router wires into middleware.
type RouterConfig struct {
	Resources   *ResourcesHandler
	Upload      *UploadHandler
	Subscribers *SubscribersHandler
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Todos       *TodoHandler
	Forum       *ForumHandler
	Records     *RecordsHandler
	Health      *HealthHandler

	Authenticator  middleware.Authenticator
	Sessions       middleware.SessionToucher
	Database       middleware.Pinger
	AllowedOrigins []string
	MaxBodyBytes   int64
	MaxUploadBytes int64
	CatalogMaxAge  time.Duration
	Log            zerolog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RecoveryMiddleware(cfg.Log),
		middleware.RequestTracingMiddleware(),
		middleware.RequestLogger(cfg.Log),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.SecurityHeaders(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/test", cfg.Health.Test)
	api.GET("/health", cfg.Health.Health)

	authRequired := middleware.AuthMiddleware(cfg.Authenticator)
	session := middleware.SessionMiddleware(cfg.Sessions, cfg.Log)
	limited := middleware.RequestSizeLimiter(cfg.MaxBodyBytes)

	// Catalog and stored resources
	resources := api.Group("/resources", limited)
	{
		catalog := resources.Group("", middleware.CacheControlMiddleware(cfg.CatalogMaxAge))
		catalog.GET("/categories", cfg.Resources.Categories)
		catalog.GET("/courses", middleware.Brotli(brotli.DefaultCompression), cfg.Resources.Courses)
		catalog.GET("/search", middleware.Brotli(brotli.DefaultCompression), cfg.Resources.Search)
		catalog.GET("/catalog/:id", cfg.Resources.CatalogCourse)

		resources.GET("", cfg.Resources.List)
		resources.GET("/category/:category", cfg.Resources.ByCategory)
		resources.GET("/:id", cfg.Resources.Get)

		admin := resources.Group("", authRequired, middleware.RequireAdmin())
		admin.POST("", cfg.Resources.Create)
		admin.PUT("/:id", cfg.Resources.Update)
		admin.DELETE("/:id", cfg.Resources.Delete)
	}

	upload := api.Group("/upload",
		middleware.RequestSizeLimiter(cfg.MaxUploadBytes),
		authRequired,
		middleware.RequireAdmin(),
		middleware.RequireDatabase(cfg.Database),
	)
	{
		upload.GET("/db-status", cfg.Upload.DBStatus)
		upload.POST("/bulk-upload", cfg.Upload.BulkUpload)
		upload.POST("/process-server-file", cfg.Upload.ProcessServerFile)
		upload.POST("/process-online-courses", cfg.Upload.ProcessOnlineCourses)
	}

	subscribers := api.Group("/subscribers", limited)
	{
		subscribers.POST("", cfg.Subscribers.Subscribe)
		subscribers.POST("/unsubscribe", cfg.Subscribers.Unsubscribe)
		subscribers.GET("", authRequired, middleware.RequireAdmin(), cfg.Subscribers.List)
	}

	auth := api.Group("/auth", limited)
	{
		auth.POST("/register", cfg.Auth.Register)
		auth.POST("/login", cfg.Auth.Login)
		auth.POST("/refresh", cfg.Auth.Refresh)
	}

	forumPublic := api.Group("/forum", limited)
	forumPublic.GET("/posts", cfg.Forum.ListPosts)
	forumPublic.GET("/posts/:id", cfg.Forum.GetPost)

	protected := api.Group("", limited, authRequired, session)
	{
		protected.GET("/user/profile", cfg.Profile.GetProfile)
		protected.PUT("/user/profile", cfg.Profile.UpdateProfile)
		protected.PUT("/user/preferences", cfg.Profile.UpdatePreferences)
		protected.GET("/user/history", cfg.Profile.History)
		protected.POST("/user/history", cfg.Profile.AddHistory)
		protected.GET("/user/bookmarks", cfg.Profile.Bookmarks)
		protected.POST("/user/bookmarks", cfg.Profile.AddBookmark)
		protected.DELETE("/user/bookmarks/:resourceId", cfg.Profile.RemoveBookmark)
		protected.GET("/user/stats", cfg.Profile.Stats)
		protected.DELETE("/user", cfg.Profile.DeleteAccount)

		protected.POST("/user/logout", cfg.Auth.Logout)
		protected.PUT("/user/password", cfg.Auth.ChangePassword)
		protected.POST("/user/2fa/setup", cfg.Auth.Setup2FA)
		protected.POST("/user/2fa/enable", cfg.Auth.Enable2FA)
		protected.POST("/user/2fa/disable", cfg.Auth.Disable2FA)
		protected.POST("/user/2fa/recovery", cfg.Auth.UseRecoveryCode)

		protected.GET("/sessions/active", cfg.Auth.ActiveSessions)
		protected.POST("/sessions/logout-all", cfg.Auth.LogoutAllSessions)

		protected.GET("/todos", cfg.Todos.GetTodos)
		protected.POST("/todos", cfg.Todos.CreateTodo)
		protected.GET("/todos/:id", cfg.Todos.GetTodo)
		protected.PUT("/todos/:id", cfg.Todos.UpdateTodo)
		protected.POST("/todos/:id/toggle", cfg.Todos.ToggleTodo)
		protected.DELETE("/todos/:id", cfg.Todos.DeleteTodo)

		protected.POST("/forum/posts", cfg.Forum.CreatePost)
		protected.PUT("/forum/posts/:id", cfg.Forum.UpdatePost)
		protected.DELETE("/forum/posts/:id", cfg.Forum.DeletePost)

		protected.GET("/records", cfg.Records.List)
		protected.POST("/records", cfg.Records.Start)
		protected.GET("/records/:id", cfg.Records.Get)
		protected.PUT("/records/:id", cfg.Records.Update)
		protected.DELETE("/records/:id", cfg.Records.Delete)
	}

	return r
}
