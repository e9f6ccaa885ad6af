package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yourusername/estate-service/internal/cache"
	"github.com/yourusername/estate-service/internal/config"
	"github.com/yourusername/estate-service/internal/handlers"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/queue"
	"github.com/yourusername/estate-service/internal/repository"
	"github.com/yourusername/estate-service/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.Load()
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Firebase
	fb, err := config.InitFirebase(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer fb.Close()

	userRepo := repository.NewUserRepository(fb.Firestore)
	roleRequestRepo := repository.NewRoleRequestRepository(fb.Firestore)
	auctionRepo := repository.NewAuctionRepository(fb.Firestore)
	propertyRepo := repository.NewPropertyRepository(fb.Firestore)
	favoriteRepo := repository.NewFavoriteRepository(fb.Firestore)
	supportRepo := repository.NewSupportRepository(fb.Firestore)

	var auctionCache services.AuctionCache
	if rdb := config.NewRedisClient(cfg); rdb != nil {
		defer rdb.Close()
		auctionCache = cache.NewAuctionCache(rdb, cfg.AuctionCacheTTL)
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		p := queue.NewPublisher(cfg.RabbitMQURL)
		defer p.Close()
		publisher = p

		if fb.Messaging != nil {
			consumer := queue.NewConsumer(cfg.RabbitMQURL, userRepo, fb.Messaging)
			go consumer.Run(ctx)
			log.Println("📨 Role request consumer started")
		}
	} else {
		log.Println("⚠️  RABBITMQ_URL not set, role request notifications disabled")
	}

	superAdmins := services.NewSuperAdminList(cfg.SuperAdminEmails)
	sessions := services.NewSessionManager(ctx, userRepo, superAdmins, cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	authService := services.NewAuthService(
		services.NewFirebaseIdentity(fb.Auth),
		userRepo,
		sessions,
		services.NewTokenIssuer(cfg.SessionSecret),
		superAdmins,
	)
	userService := services.NewUserService(userRepo, supportRepo)
	roleRequestService := services.NewRoleRequestService(roleRequestRepo, userRepo, publisher)
	auctionService := services.NewAuctionService(auctionRepo, auctionCache, cfg.Location)
	propertyService := services.NewPropertyService(propertyRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, propertyRepo)
	adminService := services.NewAdminService(userRepo, supportRepo, roleRequestService, auctionService, propertyService)

	router := setupRouter(cfg, authService, routeHandlers{
		auth:         handlers.NewAuthHandler(authService),
		profile:      handlers.NewProfileHandler(userService),
		roleRequests: handlers.NewRoleRequestHandler(roleRequestService),
		auctions:     handlers.NewAuctionHandler(auctionService),
		properties:   handlers.NewPropertyHandler(propertyService),
		favorites:    handlers.NewFavoriteHandler(favoriteService),
		admin:        handlers.NewAdminHandler(adminService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

type routeHandlers struct {
	auth         *handlers.AuthHandler
	profile      *handlers.ProfileHandler
	roleRequests *handlers.RoleRequestHandler
	auctions     *handlers.AuctionHandler
	properties   *handlers.PropertyHandler
	favorites    *handlers.FavoriteHandler
	admin        *handlers.AdminHandler
}

func setupRouter(cfg config.Config, resolver middleware.SessionResolver, h routeHandlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Estate API is running",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/session", h.auth.SignIn)
		api.GET("/navigation", middleware.OptionalSession(resolver), handlers.Navigate)
		api.GET("/auctions", h.auctions.ListAvailable)
		api.GET("/properties", h.properties.List)
		api.GET("/properties/:id", h.properties.Get)

		// Signed in, blocked or not
		authed := api.Group("")
		authed.Use(middleware.RequireSession(resolver))
		{
			authed.DELETE("/auth/session", h.auth.SignOut)
			authed.POST("/auth/session/refresh", h.auth.Refresh)
			authed.GET("/auth/me", h.auth.Me)
			authed.POST("/support", h.profile.ContactSupport)
		}

		// Signed in and not blocked
		member := api.Group("")
		member.Use(middleware.RequireSession(resolver), middleware.RejectBlocked())
		{
			member.PUT("/auth/fcm-token", h.auth.UpdateFCMToken)
			member.GET("/profile", h.profile.GetProfile)
			member.PUT("/profile", h.profile.SaveProfile)
		}

		// Complete profile required
		app := member.Group("")
		app.Use(middleware.RequireProfile())
		{
			app.GET("/auctions/:id", h.auctions.Get)

			app.POST("/properties", h.properties.Create)
			app.PUT("/properties/:id", h.properties.Update)
			app.DELETE("/properties/:id", h.properties.Delete)

			app.GET("/favorites", h.favorites.List)
			app.GET("/favorites/:propertyId", h.favorites.Status)
			app.PUT("/favorites/:propertyId", h.favorites.Add)
			app.DELETE("/favorites/:propertyId", h.favorites.Remove)
			app.POST("/favorites/:propertyId/toggle", h.favorites.Toggle)

			app.POST("/role-requests", h.roleRequests.Submit)
			app.GET("/role-requests/check", h.roleRequests.Check)

			app.GET("/me/properties", h.properties.ListMine)
			app.GET("/me/role-requests", h.roleRequests.ListMine)
		}

		// Auction management
		auctionAdmin := app.Group("")
		auctionAdmin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			auctionAdmin.GET("/me/auctions", h.auctions.ListMine)
			auctionAdmin.POST("/auctions", h.auctions.Create)
			auctionAdmin.PUT("/auctions/:id", h.auctions.Update)
			auctionAdmin.DELETE("/auctions/:id", h.auctions.Archive)
		}

		// Admin dashboard. Blocked admins keep access here.
		admin := api.Group("/admin")
		admin.Use(middleware.RequireSession(resolver), middleware.RequireProfile(), middleware.AdminOnly())
		{
			admin.GET("/users", h.admin.ListUsers)
			admin.PUT("/users/:id/block", h.admin.SetBlocked)
			admin.GET("/stats", h.admin.Stats)
			admin.GET("/support", h.admin.ListSupport)
			admin.GET("/role-requests", h.roleRequests.List)
			admin.PUT("/role-requests/:id", h.roleRequests.Process)
		}
	}

	return router
}
