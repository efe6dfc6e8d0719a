package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dineflow/table-orders-api/config"
	"github.com/dineflow/table-orders-api/controllers"
	"github.com/dineflow/table-orders-api/middleware"
	"github.com/dineflow/table-orders-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// application holds the wired services the router serves
type application struct {
	cfg      *config.Config
	logger   *zap.Logger
	location *time.Location
	orders   *services.OrderService
	exporter *services.BillExportService
	closers  []io.Closer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	app := &application{cfg: cfg, logger: logger}
	defer app.Close() //nolint:errcheck

	logger.Info("Starting Table Orders API server...")

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		app.fatal("Failed to connect to database", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		app.fatal("Invalid timezone", err)
	}
	app.location = loc

	// Auto-migrate database models
	store := services.NewGormOrderStore(config.GetDB())
	if err := store.Migrate(); err != nil {
		app.fatal("Failed to migrate database", err)
	}
	logger.Info("Database migration completed successfully")

	var publisher services.OrderEventPublisher = services.NoopPublisher{}
	if cfg.EventsEnabled() {
		rabbit, err := services.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
		if err != nil {
			app.fatal("Failed to connect to RabbitMQ", err)
		}
		app.closers = append(app.closers, rabbit)
		publisher = rabbit
		logger.Info("Order events enabled", zap.String("exchange", cfg.RabbitMQExchange))
	}

	if cfg.BillExportEnabled() {
		s3Service, err := services.NewS3Service(context.Background(), cfg)
		if err != nil {
			app.fatal("Failed to initialize S3", err)
		}
		app.exporter = services.NewBillExportService(s3Service, loc)
		logger.Info("Bill export enabled", zap.String("bucket", cfg.AWSS3Bucket))
	}

	queries := services.NewOrderQueryService(store, loc)
	app.orders = services.NewOrderService(store, queries, publisher, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := app.routes()

	// Start server
	port := ":" + cfg.Port
	logger.Info("Server is running", zap.String("addr", "http://localhost"+port))
	if err := router.Run(port); err != nil {
		app.fatal("Failed to start server", err)
	}
}

// Close releases the resources opened during startup, newest first, and flushes the logger
func (app *application) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	if app.logger != nil {
		_ = app.logger.Sync()
	}
	return errors.Join(errs...)
}

// fatal releases startup resources, then logs and exits. Deferred calls do not run after it.
func (app *application) fatal(msg string, err error) {
	if closeErr := app.Close(); closeErr != nil {
		app.logger.Error("Failed to release resources", zap.Error(closeErr))
	}
	app.logger.Fatal(msg, zap.Error(err))
}

// routes builds the gin engine with middleware and all API v1 routes
func (app *application) routes() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(app.logger),
		middleware.CORS(app.cfg.CORSAllowedOrigins),
	)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		controllers.RegisterOrderRoutes(v1,
			controllers.NewOrderController(app.orders),
			controllers.NewBillController(app.orders, app.exporter, app.location),
		)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Table Orders API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database is not initialized",
			},
		})
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
