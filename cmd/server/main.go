package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/lawmatch/backend/internal/application/billing"
	documentsapp "github.com/lawmatch/backend/internal/application/documents"
	forumapp "github.com/lawmatch/backend/internal/application/forum"
	identityapp "github.com/lawmatch/backend/internal/application/identity"
	leadsapp "github.com/lawmatch/backend/internal/application/leads"
	marketplaceapp "github.com/lawmatch/backend/internal/application/marketplace"
	matterapp "github.com/lawmatch/backend/internal/application/matter"
	notificationapp "github.com/lawmatch/backend/internal/application/notification"
	"github.com/lawmatch/backend/internal/infrastructure/auth"
	"github.com/lawmatch/backend/internal/infrastructure/config"
	"github.com/lawmatch/backend/internal/infrastructure/event"
	"github.com/lawmatch/backend/internal/infrastructure/logger"
	"github.com/lawmatch/backend/internal/infrastructure/payments"
	"github.com/lawmatch/backend/internal/infrastructure/persistence"
	"github.com/lawmatch/backend/internal/infrastructure/scheduler"
	"github.com/lawmatch/backend/internal/infrastructure/storage"
	"github.com/lawmatch/backend/internal/infrastructure/telemetry"
	"github.com/lawmatch/backend/internal/interfaces/http/handler"
	"github.com/lawmatch/backend/internal/interfaces/http/middleware"
	"github.com/lawmatch/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

//	@title			LawMatch API
//	@version		1.0
//	@description	Legal mediation marketplace backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting LawMatch backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry (optional)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database connection with zap-backed SQL logging
	db, err := persistence.NewDatabaseWithZap(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	mediatorProfileRepo := persistence.NewGormMediatorProfileRepository(db.DB)
	clientProfileRepo := persistence.NewGormClientProfileRepository(db.DB)
	matterRepo := persistence.NewGormMatterRepository(db.DB)
	referralRepo := persistence.NewGormReferralRepository(db.DB)
	billingItemRepo := persistence.NewGormBillingItemRepository(db.DB)
	timerRepo := persistence.NewGormTimerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	postedMatterRepo := persistence.NewGormPostedMatterRepository(db.DB)
	proposalRepo := persistence.NewGormProposalRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)
	folderRepo := persistence.NewGormFolderRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	topicRepo := persistence.NewGormTopicRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	topicFollowRepo := persistence.NewGormTopicFollowRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	dispatchRepo := persistence.NewGormDispatchRepository(db.DB)

	// Event bus
	eventBus := event.NewBus(cfg.Event.BufferSize, cfg.Event.WorkerCount, log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Notification fan-out subscribes to the domain events that produce
	// user-facing notifications
	fanoutHandler := notificationapp.NewFanoutHandler(notificationRepo, dispatchRepo, topicFollowRepo, postedMatterRepo, log)
	eventBus.Subscribe(fanoutHandler)
	log.Info("Notification fan-out registered", zap.Strings("event_types", fanoutHandler.EventTypes()))

	// Token blacklist: Redis when configured, in-memory otherwise
	var tokenBlacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		tokenBlacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("host", cfg.Redis.Host))
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist, tokens are not revoked across instances")
	}

	// Object storage: S3 when a bucket is configured, in-memory stub otherwise
	var objectStorage documentsapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using in-memory object storage stub")
	}

	// Payment processor: Stripe when enabled, stub otherwise
	var paymentProcessor billingapp.PaymentProcessor
	var webhookVerifier *payments.WebhookVerifier
	if cfg.Stripe.Enabled {
		stripeProcessor, err := payments.NewStripeProcessor(&cfg.Stripe, log)
		if err != nil {
			log.Fatal("Failed to initialize Stripe", zap.Error(err))
		}
		paymentProcessor = stripeProcessor

		webhookVerifier, err = payments.NewWebhookVerifier(cfg.Stripe.WebhookSecret)
		if err != nil {
			log.Fatal("Failed to initialize Stripe webhook verifier", zap.Error(err))
		}
		log.Info("Stripe payment processing enabled")
	} else {
		paymentProcessor = payments.NewStubProcessor()
		log.Warn("Stripe disabled, payment intents use the stub processor")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	passwordHasher := auth.NewBcryptHasher()
	authService := identityapp.NewAuthService(userRepo, mediatorProfileRepo, clientProfileRepo, jwtService, passwordHasher, tokenBlacklist, eventBus, log)
	userService := identityapp.NewUserService(userRepo, mediatorProfileRepo, clientProfileRepo, tokenBlacklist, eventBus, log)
	matterService := matterapp.NewMatterService(matterRepo, referralRepo, userRepo, eventBus, log)
	itemService := billingapp.NewItemService(billingItemRepo, matterRepo, log)
	timerService := billingapp.NewTimerService(timerRepo, billingItemRepo, matterRepo, eventBus, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, billingItemRepo, matterRepo, paymentProcessor, eventBus, log)
	marketplaceTxScope := persistence.NewGormMarketplaceTransactionScope(db.DB)
	marketplaceService := marketplaceapp.NewMarketplaceService(postedMatterRepo, proposalRepo, matterRepo, userRepo, marketplaceTxScope, eventBus, log)
	leadService := leadsapp.NewLeadService(leadRepo, opportunityRepo, matterRepo, eventBus, log)
	documentService := documentsapp.NewDocumentService(documentRepo, folderRepo, objectStorage, log)
	forumService := forumapp.NewForumService(topicRepo, postRepo, topicFollowRepo, userRepo, eventBus, log)
	notificationService := notificationapp.NewNotificationService(notificationRepo, dispatchRepo, log)

	// Business metrics ride the OTLP pipeline when telemetry is on
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  meterProvider.Meter("lawmatch"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		matterService.SetBusinessMetrics(businessMetrics)
		marketplaceService.SetBusinessMetrics(businessMetrics)
		invoiceService.SetBusinessMetrics(businessMetrics)
		log.Info("Business metrics enabled")
	}

	// Billing scheduler
	billingScheduler := scheduler.NewBillingScheduler(cfg.Scheduler, invoiceService, log)
	if cfg.Scheduler.Enabled {
		if err := billingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start billing scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := billingScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping billing scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	matterHandler := handler.NewMatterHandler(matterService)
	billingItemHandler := handler.NewBillingItemHandler(itemService)
	timerHandler := handler.NewTimerHandler(timerService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	marketplaceHandler := handler.NewMarketplaceHandler(marketplaceService)
	leadHandler := handler.NewLeadHandler(leadService)
	documentHandler := handler.NewDocumentHandler(documentService)
	forumHandler := handler.NewForumHandler(forumService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	systemHandler := handler.NewSystemHandler(db, billingScheduler, version)

	// Gin setup
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// tracing, security headers, CORS, body limit, rate limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Probes live outside API versioning and authentication
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Stripe calls this directly; the signature header is the credential
	if webhookVerifier != nil {
		stripeWebhookHandler := handler.NewStripeWebhookHandler(webhookVerifier, invoiceService, log)
		engine.POST("/api/v1/webhooks/stripe", stripeWebhookHandler.Handle)
	}

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/v1/webhooks",
		},
		Logger: log,
	}))

	// Identity and onboarding
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	identityRoutes := router.NewDomainGroup("identity", "")
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.PUT("/users/me/profile", userHandler.UpdateProfile)
	identityRoutes.PUT("/users/me/avatar", userHandler.SetAvatar)
	identityRoutes.PUT("/users/me/mediator-profile", userHandler.UpdateMediatorProfile)
	identityRoutes.GET("/users/me/client-profile", userHandler.GetClientProfile)
	identityRoutes.PUT("/users/me/client-profile", userHandler.UpdateClientProfile)
	identityRoutes.GET("/users/:id", userHandler.Get)
	identityRoutes.GET("/users/:id/mediator-profile", userHandler.GetMediatorProfile)
	identityRoutes.POST("/users/:id/verification", userHandler.DecideVerification)
	identityRoutes.POST("/users/:id/suspend", userHandler.Suspend)
	identityRoutes.POST("/users/:id/reactivate", userHandler.Reactivate)
	identityRoutes.GET("/mediators", userHandler.SearchMediators)

	// Matter lifecycle and referrals
	matterRoutes := router.NewDomainGroup("matter", "")
	matterRoutes.POST("/matters", matterHandler.Create)
	matterRoutes.GET("/matters", matterHandler.List)
	matterRoutes.GET("/matters/:id", matterHandler.Get)
	matterRoutes.PUT("/matters/:id", matterHandler.Update)
	matterRoutes.DELETE("/matters/:id", matterHandler.Delete)
	matterRoutes.POST("/matters/:id/open", matterHandler.Open)
	matterRoutes.POST("/matters/:id/close", matterHandler.Close)
	matterRoutes.POST("/matters/:id/share", matterHandler.Share)
	matterRoutes.POST("/matters/:id/unshare", matterHandler.Unshare)
	matterRoutes.POST("/matters/:id/referrals", matterHandler.SendReferral)
	matterRoutes.GET("/matters/:id/referrals", matterHandler.ListReferrals)
	matterRoutes.GET("/matters/:id/billing-summary", billingItemHandler.MatterSummary)
	matterRoutes.GET("/referrals/pending", matterHandler.ListPendingReferrals)
	matterRoutes.POST("/referrals/:id/resolve", matterHandler.ResolveReferral)

	// Billing: items, timers, invoices
	billingRoutes := router.NewDomainGroup("billing", "")
	billingRoutes.POST("/billing/items", billingItemHandler.Create)
	billingRoutes.GET("/billing/items", billingItemHandler.List)
	billingRoutes.PUT("/billing/items/:id", billingItemHandler.Update)
	billingRoutes.PUT("/billing/items/:id/billable", billingItemHandler.SetBillable)
	billingRoutes.DELETE("/billing/items/:id", billingItemHandler.Delete)
	billingRoutes.POST("/timers", timerHandler.Start)
	billingRoutes.GET("/timers/live", timerHandler.Live)
	billingRoutes.POST("/timers/:id/pause", timerHandler.Pause)
	billingRoutes.POST("/timers/:id/resume", timerHandler.Resume)
	billingRoutes.POST("/timers/:id/stop", timerHandler.Stop)
	billingRoutes.POST("/timers/:id/cancel", timerHandler.Cancel)
	billingRoutes.POST("/invoices", invoiceHandler.Create)
	billingRoutes.GET("/invoices", invoiceHandler.List)
	billingRoutes.GET("/invoices/:id", invoiceHandler.Get)
	billingRoutes.GET("/invoices/:id/items", invoiceHandler.ListItems)
	billingRoutes.POST("/invoices/:id/items", invoiceHandler.AttachItem)
	billingRoutes.POST("/invoices/:id/items/detach", invoiceHandler.DetachItem)
	billingRoutes.POST("/invoices/:id/send", invoiceHandler.Send)
	billingRoutes.POST("/invoices/:id/void", invoiceHandler.Void)
	billingRoutes.POST("/invoices/:id/payment-intent", invoiceHandler.CreatePaymentIntent)

	// Marketplace: postings and proposals
	marketplaceRoutes := router.NewDomainGroup("marketplace", "/marketplace")
	marketplaceRoutes.POST("/postings", marketplaceHandler.CreatePosting)
	marketplaceRoutes.GET("/postings", marketplaceHandler.BrowsePostings)
	marketplaceRoutes.GET("/postings/mine", marketplaceHandler.ListMyPostings)
	marketplaceRoutes.GET("/postings/:id", marketplaceHandler.GetPosting)
	marketplaceRoutes.PUT("/postings/:id", marketplaceHandler.UpdatePosting)
	marketplaceRoutes.POST("/postings/:id/deactivate", marketplaceHandler.DeactivatePosting)
	marketplaceRoutes.POST("/postings/:id/reactivate", marketplaceHandler.ReactivatePosting)
	marketplaceRoutes.GET("/postings/:id/proposals", marketplaceHandler.ListProposalsForPosting)
	marketplaceRoutes.POST("/proposals", marketplaceHandler.SubmitProposal)
	marketplaceRoutes.GET("/proposals/mine", marketplaceHandler.ListMyProposals)
	marketplaceRoutes.POST("/proposals/:id/withdraw", marketplaceHandler.WithdrawProposal)
	marketplaceRoutes.POST("/proposals/:id/accept", marketplaceHandler.AcceptProposal)
	marketplaceRoutes.POST("/proposals/:id/revoke", marketplaceHandler.RevokeProposal)

	// Leads and opportunities
	leadRoutes := router.NewDomainGroup("leads", "")
	leadRoutes.POST("/leads", leadHandler.CreateLead)
	leadRoutes.GET("/leads", leadHandler.ListLeads)
	leadRoutes.GET("/leads/:id", leadHandler.GetLead)
	leadRoutes.PUT("/leads/:id/priority", leadHandler.SetPriority)
	leadRoutes.PUT("/leads/:id/note", leadHandler.UpdateNote)
	leadRoutes.POST("/leads/:id/convert", leadHandler.ConvertLead)
	leadRoutes.POST("/leads/:id/close", leadHandler.CloseLead)
	leadRoutes.POST("/opportunities", leadHandler.CreateOpportunity)
	leadRoutes.GET("/opportunities", leadHandler.ListOpportunities)
	leadRoutes.PUT("/opportunities/:id", leadHandler.UpdateOpportunity)
	leadRoutes.POST("/opportunities/:id/link-client", leadHandler.LinkOpportunityClient)
	leadRoutes.POST("/opportunities/:id/promote", leadHandler.PromoteOpportunity)
	leadRoutes.DELETE("/opportunities/:id", leadHandler.DeleteOpportunity)

	// Documents and folders
	documentRoutes := router.NewDomainGroup("documents", "")
	documentRoutes.POST("/folders", documentHandler.CreateFolder)
	documentRoutes.GET("/folders", documentHandler.ListFolders)
	documentRoutes.PUT("/folders/:id", documentHandler.RenameFolder)
	documentRoutes.PUT("/folders/:id/shared", documentHandler.SetFolderShared)
	documentRoutes.DELETE("/folders/:id", documentHandler.DeleteFolder)
	documentRoutes.POST("/documents", documentHandler.Upload)
	documentRoutes.GET("/documents", documentHandler.List)
	documentRoutes.GET("/documents/:id/download", documentHandler.Download)
	documentRoutes.PUT("/documents/:id", documentHandler.Rename)
	documentRoutes.POST("/documents/:id/move", documentHandler.Move)
	documentRoutes.DELETE("/documents/:id", documentHandler.Delete)

	// Community forum
	forumRoutes := router.NewDomainGroup("forum", "/forum")
	forumRoutes.POST("/topics", forumHandler.CreateTopic)
	forumRoutes.GET("/topics", forumHandler.ListTopics)
	forumRoutes.GET("/topics/:id", forumHandler.GetTopic)
	forumRoutes.POST("/topics/:id/posts", forumHandler.Reply)
	forumRoutes.GET("/topics/:id/posts", forumHandler.ListPosts)
	forumRoutes.POST("/topics/:id/lock", forumHandler.LockTopic)
	forumRoutes.POST("/topics/:id/follow", forumHandler.Follow)
	forumRoutes.DELETE("/topics/:id/follow", forumHandler.Unfollow)
	forumRoutes.PUT("/posts/:id", forumHandler.EditPost)

	// Notification feed
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.POST("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.GET("/:id/dispatches", notificationHandler.ListDispatches)

	// Operational endpoints
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/scheduler", systemHandler.SchedulerStatus)
	systemRoutes.POST("/scheduler/sweep", systemHandler.TriggerSweep)
	systemRoutes.POST("/scheduler/monthly", systemHandler.TriggerMonthlyRun)

	r.Register(authRoutes).
		Register(identityRoutes).
		Register(matterRoutes).
		Register(billingRoutes).
		Register(marketplaceRoutes).
		Register(leadRoutes).
		Register(documentRoutes).
		Register(forumRoutes).
		Register(notificationRoutes).
		Register(systemRoutes)
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
