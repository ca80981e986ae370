package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plume/chat"
	"plume/config"
	"plume/controllers"
	"plume/middleware"
	"plume/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, hub *chat.Hub) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.Ginzap(utils.Logger))
	r.Use(utils.RecoveryWithZap(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Every request resolves the session cookie, so handlers always have the
	// viewer identity (or the guest sentinel) available.
	r.Use(middleware.SessionResolver())

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	profileController := controllers.NewProfileController(db)

	// The chat handshake authenticates through the exact session resolver the
	// HTTP path uses; there is no separate channel login.
	r.GET("/ws/chat", chat.ServeWS(hub, utils.SessionFromRequest))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.LoginRequired(), authController.Logout)
	authGroup.GET("/me", middleware.LoginRequired(), authController.Me)
	authGroup.POST("/username-exists", authController.UsernameExists)
	authGroup.POST("/email-exists", authController.EmailExists)

	api.POST("/tokens", middleware.RateLimitMiddleware(), authController.IssueToken)

	api.GET("/posts/:id", postController.GetPost)
	api.POST("/search", postController.Search)
	api.GET("/profiles/:username", profileController.GetProfile)
	api.GET("/profiles/:username/posts", profileController.ListProfilePosts)
	api.GET("/profiles/:username/followers", profileController.ListFollowers)
	api.GET("/profiles/:username/following", profileController.ListFollowing)

	protected := api.Group("")
	protected.Use(middleware.LoginRequired())
	protected.GET("/feed", postController.Feed)
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/profiles/:username/follow", profileController.FollowUser)
	protected.DELETE("/profiles/:username/follow", profileController.UnfollowUser)

	// Token-authenticated surface for non-browser clients.
	tokenAPI := api.Group("/api")
	tokenAPI.GET("/users/:username/posts", profileController.ListProfilePosts)
	tokenProtected := tokenAPI.Group("", middleware.AuthRequired())
	tokenProtected.POST("/posts", postController.CreatePost)
	tokenProtected.DELETE("/posts/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
