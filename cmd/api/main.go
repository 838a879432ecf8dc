package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "patient-reports/internal/common/api"
	"patient-reports/internal/config"
	"patient-reports/internal/database"
	"patient-reports/internal/features/audit"
	cron_feature "patient-reports/internal/features/cron"
	"patient-reports/internal/features/report"
	"patient-reports/internal/features/system"
	"patient-reports/internal/logger"
	"patient-reports/internal/middleware"
	"patient-reports/pkg/utils"

	_ "patient-reports/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("Setting up route", zap.String("route", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, generatedRepo report.GeneratedReportRepository, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := generatedRepo.EnsureIndexes(ctx); err != nil {
					log.Warn("Failed to ensure generated report indexes", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// StartRetention runs the generated report retention sweep for the app's lifetime.
func StartRetention(lc fx.Lifecycle, retention cron_feature.RetentionService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return retention.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return retention.Stop()
		},
	})
}

// @title           Patient Reports API
// @version         1.0
// @description     Stores generated patient-record reports and renders them into chart specifications, spreadsheets and images.

// @contact.name    API Support

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			report.NewReportRepository,
			report.NewGeneratedReportRepository,
			cron_feature.NewJobRunRepository,

			system.NewReportHub,
			audit.NewAuditService,
			report.NewReportService,
			cron_feature.NewRetentionService,

			// Interface Adapters
			func(h *system.ReportHub) report.RenderPublisher { return h },
			func(s report.ReportService) cron_feature.Purger { return s },

			// Initialize Controller
			audit.NewAuditController,
			report.NewReportController,
			cron_feature.NewRetentionController,
			system.NewDebugController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(report.NewReportApi),
			AsRoute(cron_feature.NewRetentionApi),
			AsRoute(system.NewDebugApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartRetention,
			InitializeIndexes,
		),
	)

	app.Run()
}
