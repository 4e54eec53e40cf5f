package main

import (
	"context"
	"fmt"
	"log"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/caching"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/config"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/handlers"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/jobs"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/jobs/background"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/middleware"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/reports"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	webhookSecret := cfg.WebhookSecret
	if webhookSecret == "" {
		webhookSecret = "whsec_" + random.String(32)
		log.Printf("WARNING: Using generated webhook secret; identity webhooks will not verify")
	}

	storageSvc, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background(), cfg.ReportBucket); err != nil {
		log.Printf("WARNING: report bucket unavailable: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	ownerRepo := repositories.NewOwnerRepo(pool)
	userOwnerRepo := repositories.NewUserOwnerRepo(pool)
	propertyRepo := repositories.NewPropertyRepo(pool)
	propertyOwnerRepo := repositories.NewPropertyOwnerRepo(pool)
	unitRepo := repositories.NewUnitRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	leaseRepo := repositories.NewLeaseRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	expenseRepo := repositories.NewExpenseRepo(pool)
	renovationRepo := repositories.NewRenovationRepo(pool)
	parkingPermitRepo := repositories.NewParkingPermitRepo(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Services
	migrationSvc := services.NewMigrationService(pool, userRepo, propertyOwnerRepo)
	onboardingSvc := services.NewOnboardingService(ownerRepo, propertyRepo, tenantRepo, leaseRepo, cacheSvc)
	gateway := services.NewTwilioGateway(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.TwilioBaseURL)
	messagingSvc := services.NewMessagingService(gateway)
	reportSvc := reports.NewReportService(propertyRepo, paymentRepo, expenseRepo, renovationRepo, cacheSvc)
	exporter := jobs.NewReportExporter(reportSvc, paymentRepo, expenseRepo, storageSvc, cfg.ReportBucket)

	// Handlers
	webhookHandlers := handlers.NewWebhookHandlers(userRepo, webhookSecret)
	migrationHandlers := handlers.NewMigrationHandlers(migrationSvc)
	onboardingHandlers := handlers.NewOnboardingHandlers(onboardingSvc)
	ownerHandlers := handlers.NewOwnerHandlers(ownerRepo, userOwnerRepo, propertyOwnerRepo, propertyRepo, onboardingSvc)
	propertyHandlers := handlers.NewPropertyHandlers(propertyRepo, onboardingSvc)
	unitHandlers := handlers.NewUnitHandlers(unitRepo, propertyRepo)
	tenantHandlers := handlers.NewTenantHandlers(tenantRepo, unitRepo, onboardingSvc)
	leaseHandlers := handlers.NewLeaseHandlers(leaseRepo, tenantRepo, onboardingSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentRepo, leaseRepo, reportSvc)
	expenseHandlers := handlers.NewExpenseHandlers(expenseRepo, propertyRepo, reportSvc)
	renovationHandlers := handlers.NewRenovationHandlers(renovationRepo, propertyRepo, reportSvc)
	parkingPermitHandlers := handlers.NewParkingPermitHandlers(parkingPermitRepo, propertyRepo, tenantRepo)
	reportHandlers := handlers.NewReportHandlers(reportSvc, exporter)
	messagingHandlers := handlers.NewMessagingHandlers(messagingSvc, tenantRepo, leaseRepo)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Token verification against the identity provider's JWKS
	jwks, err := middleware.NewJWKS(cfg.JWKSURL)
	if err != nil {
		log.Fatalf("Failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	jwtConfig := echojwt.Config{
		KeyFunc: jwks.Keyfunc,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}

	// Background jobs
	scheduler := background.NewJobScheduler(leaseRepo, messagingSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	v1 := e.Group("/v1")

	// Identity provider webhook; authenticated by signature, not JWT
	v1.POST("/webhooks/identity", webhookHandlers.IdentityWebhook)

	// Protected routes
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))
	protected.Use(middleware.IdentityContext(userRepo))

	// Ownership migration
	protected.GET("/admin/migration", migrationHandlers.RunMigration)
	protected.GET("/admin/migration/status", migrationHandlers.MigrationStatus)

	// Onboarding
	protected.GET("/onboarding/status", onboardingHandlers.GetStatus)

	// Owner routes
	protected.GET("/owners", ownerHandlers.ListOwners)
	protected.POST("/owners", ownerHandlers.CreateOwner)
	protected.GET("/owners/:id", ownerHandlers.GetOwner)
	protected.PUT("/owners/:id", ownerHandlers.UpdateOwner)
	protected.DELETE("/owners/:id", ownerHandlers.DeleteOwner)

	// Property routes
	protected.GET("/properties", propertyHandlers.ListProperties)
	protected.POST("/properties", propertyHandlers.CreateProperty)
	protected.GET("/properties/:id", propertyHandlers.GetProperty)
	protected.PUT("/properties/:id", propertyHandlers.UpdateProperty)
	protected.DELETE("/properties/:id", propertyHandlers.DeleteProperty)
	protected.GET("/properties/:id/owners", ownerHandlers.ListPropertyOwners)
	protected.POST("/properties/:id/owners", ownerHandlers.AddPropertyOwner)
	protected.DELETE("/properties/:id/owners/:ownerID", ownerHandlers.RemovePropertyOwner)
	protected.GET("/properties/:id/report", reportHandlers.GetPropertyReport)
	protected.POST("/properties/:id/report/export", reportHandlers.ExportPropertyReport)

	// Unit routes
	protected.GET("/units", unitHandlers.ListUnits)
	protected.POST("/units", unitHandlers.CreateUnit)
	protected.GET("/units/:id", unitHandlers.GetUnit)
	protected.PUT("/units/:id", unitHandlers.UpdateUnit)
	protected.DELETE("/units/:id", unitHandlers.DeleteUnit)

	// Tenant routes
	protected.GET("/tenants", tenantHandlers.ListTenants)
	protected.POST("/tenants", tenantHandlers.CreateTenant)
	protected.GET("/tenants/:id", tenantHandlers.GetTenant)
	protected.PUT("/tenants/:id", tenantHandlers.UpdateTenant)
	protected.DELETE("/tenants/:id", tenantHandlers.DeleteTenant)
	protected.POST("/tenants/:id/reminders/payment", messagingHandlers.SendPaymentReminder)
	protected.POST("/tenants/:id/reminders/renewal", messagingHandlers.SendRenewalReminder)

	// Lease routes
	protected.GET("/leases", leaseHandlers.ListLeases)
	protected.POST("/leases", leaseHandlers.CreateLease)
	protected.GET("/leases/:id", leaseHandlers.GetLease)
	protected.PUT("/leases/:id", leaseHandlers.UpdateLease)
	protected.DELETE("/leases/:id", leaseHandlers.DeleteLease)

	// Payment routes
	protected.GET("/payments", paymentHandlers.ListPayments)
	protected.POST("/payments", paymentHandlers.CreatePayment)
	protected.GET("/payments/:id", paymentHandlers.GetPayment)
	protected.PUT("/payments/:id", paymentHandlers.UpdatePayment)
	protected.DELETE("/payments/:id", paymentHandlers.DeletePayment)

	// Expense routes
	protected.GET("/expenses", expenseHandlers.ListExpenses)
	protected.POST("/expenses", expenseHandlers.CreateExpense)
	protected.GET("/expenses/:id", expenseHandlers.GetExpense)
	protected.PUT("/expenses/:id", expenseHandlers.UpdateExpense)
	protected.DELETE("/expenses/:id", expenseHandlers.DeleteExpense)

	// Renovation routes
	protected.GET("/renovations", renovationHandlers.ListRenovations)
	protected.POST("/renovations", renovationHandlers.CreateRenovation)
	protected.GET("/renovations/:id", renovationHandlers.GetRenovation)
	protected.PUT("/renovations/:id", renovationHandlers.UpdateRenovation)
	protected.DELETE("/renovations/:id", renovationHandlers.DeleteRenovation)

	// Parking permit routes
	protected.GET("/parking-permits", parkingPermitHandlers.ListParkingPermits)
	protected.POST("/parking-permits", parkingPermitHandlers.CreateParkingPermit)
	protected.GET("/parking-permits/:id", parkingPermitHandlers.GetParkingPermit)
	protected.PUT("/parking-permits/:id", parkingPermitHandlers.UpdateParkingPermit)
	protected.DELETE("/parking-permits/:id", parkingPermitHandlers.DeleteParkingPermit)

	// Messaging
	protected.POST("/messages", messagingHandlers.SendMessage)

	log.Printf("RentTrackr server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
