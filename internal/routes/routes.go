package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-manager/internal/audit"
	"github.com/BruksfildServices01/business-manager/internal/cache"
	"github.com/BruksfildServices01/business-manager/internal/config"
	"github.com/BruksfildServices01/business-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/business-manager/internal/infra/repository"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/monitoring"
	"github.com/BruksfildServices01/business-manager/internal/payments"
	"github.com/BruksfildServices01/business-manager/internal/queue"
	"github.com/BruksfildServices01/business-manager/internal/storage"
	ucBooking "github.com/BruksfildServices01/business-manager/internal/usecase/booking"
	ucImporter "github.com/BruksfildServices01/business-manager/internal/usecase/importer"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingStore := infraRepo.NewBookingGormStore(db)
	importStore := infraRepo.NewImportGormStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	redisClient := cache.NewRedisClient(cfg)

	var reminders queue.Publisher
	if cfg.RabbitURL != "" {
		reminders = queue.NewAMQPPublisher(cfg.RabbitURL)
	}

	var archive ucImporter.Archive
	if cfg.S3Bucket != "" {
		archive = storage.NewS3Archive(cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	}

	var checkout payments.CheckoutProvider
	if cfg.MPAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			log.Printf("mercadopago disabled: %v", err)
		} else {
			checkout = mp
		}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	bookAppointmentUC := ucBooking.NewBookAppointment(
		bookingStore,
		auditDispatcher,
		reminders,
	)

	importUC := ucImporter.NewImportBatch(
		importStore,
		archive,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(db, bookAppointmentUC)
	importHandler := handlers.NewImportHandler(importUC)

	quoteHandler := handlers.NewQuoteHandler(db, auditDispatcher)
	invoiceHandler := handlers.NewInvoiceHandler(db, auditDispatcher, checkout)
	paymentHandler := handlers.NewPaymentHandler(db, auditDispatcher)
	expenseHandler := handlers.NewExpenseHandler(db)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// MÉTRICAS
	// ======================================================
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login",
			middleware.LoginRateLimit(redisClient, 10, time.Minute),
			authHandler.Login,
		)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// CLIENTS
			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			// SERVICES / PRODUCTS
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/products", productHandler.List)
			secured.POST("/me/products", productHandler.Create)
			secured.PATCH("/me/products/:id", productHandler.Update)

			// APPOINTMENTS
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)

			// IMPORT (clients | services | products)
			secured.POST("/me/import/:kind", importHandler.Import)

			// QUOTES
			secured.GET("/me/quotes", quoteHandler.List)
			secured.POST("/me/quotes", quoteHandler.Create)
			secured.GET("/me/quotes/:id", quoteHandler.Get)
			secured.POST("/me/quotes/:id/accept", quoteHandler.Accept)

			// INVOICES
			secured.GET("/me/invoices", invoiceHandler.List)
			secured.POST("/me/invoices", invoiceHandler.Create)
			secured.GET("/me/invoices/:id", invoiceHandler.Get)
			secured.POST("/me/invoices/:id/checkout", invoiceHandler.CreateCheckout)

			// PAYMENTS / EXPENSES
			secured.GET("/me/payments", paymentHandler.List)
			secured.POST("/me/payments", paymentHandler.Record)

			secured.GET("/me/expenses", expenseHandler.List)
			secured.POST("/me/expenses", expenseHandler.Create)
			secured.DELETE("/me/expenses/:id", expenseHandler.Delete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
