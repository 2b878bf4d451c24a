package router

import (
	"charmly/config"
	"charmly/internal/ai"
	"charmly/internal/handler"
	"charmly/internal/middleware"
	"charmly/internal/repository"
	"charmly/internal/service"
	"charmly/internal/ws"
	"charmly/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, companion *ai.Companion, cloud cloudinary.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	hub := ws.NewHub()

	// Services
	notifSvc := service.NewNotificationService(notificationRepo, hub)
	authSvc := service.NewAuthService(cfg, userRepo)
	matchSvc := service.NewMatchService(userRepo, matchRepo, notifSvc, cfg.Match)
	chatSvc := service.NewChatService(messageRepo, userRepo, companion, cfg.AI.HistoryWindow, hub, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, logger)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, cloud)
	matchHandler := handler.NewMatchHandler(matchSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	// Keyed by user id behind authMw, by client IP on public routes.
	rateMw := middleware.NewRateLimiter(cfg.Server).Middleware()

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateMw)
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		me := api.Group("/me")
		me.Use(authMw, rateMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.POST("/avatar", meHandler.UploadAvatar)
		}

		matches := api.Group("/matches")
		matches.Use(authMw, rateMw)
		{
			matches.GET("", matchHandler.Find)
			matches.GET("/requests", matchHandler.ListRequests)
			matches.POST("/requests", matchHandler.SendRequest)
			matches.POST("/requests/:id/respond", matchHandler.Respond)
		}

		chat := api.Group("/chat")
		chat.Use(authMw, rateMw)
		{
			chat.POST("/messages", chatHandler.Send)
			chat.GET("/history/:user_id", chatHandler.History)
			chat.PATCH("/messages/:id/read", chatHandler.MarkRead)
			chat.GET("/unread-count", chatHandler.UnreadCount)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw, rateMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		}

		api.GET("/ws", ws.Serve(&cfg.JWT, hub))
	}

	return r
}
