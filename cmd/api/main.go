package main

import (
	"context"
	"fmt"
	common_api "go-fleet/internal/common/api"
	"go-fleet/internal/config"
	"go-fleet/internal/connectors"
	"go-fleet/internal/database"
	"go-fleet/internal/features/auth"
	"go-fleet/internal/features/diesel"
	"go-fleet/internal/features/housekeeping"
	"go-fleet/internal/features/machine"
	"go-fleet/internal/features/organization"
	"go-fleet/internal/features/prestart"
	"go-fleet/internal/features/report"
	"go-fleet/internal/features/servicerecord"
	"go-fleet/internal/features/tank"
	"go-fleet/internal/features/user"
	"go-fleet/internal/logger"
	"go-fleet/internal/middleware"
	"go-fleet/pkg/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
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

	app.Use(middleware.CORSMiddleware())

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
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
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

// NewLegacyFuelSource connects to the old depot Postgres system when
// LEGACY_FUEL_DSN is set. Without it the import endpoint reports the
// source as unconfigured instead of failing startup.
func NewLegacyFuelSource(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) *connectors.LegacyFuelSource {
	if cfg.LegacyFuelDSN == "" {
		return nil
	}

	source, err := connectors.NewLegacyFuelSource(cfg.LegacyFuelDSN)
	if err != nil {
		logger.Warn("legacy fuel source unavailable", zap.Error(err))
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return source.Close()
		},
	})
	return source
}

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
			database.NewMongoStore,

			// External connectors
			NewLegacyFuelSource,

			// Initialize Repository
			user.NewUserRepository,
			organization.NewOrganizationRepository,
			machine.NewMachineRepository,
			prestart.NewPrestartRepository,
			servicerecord.NewServiceRecordRepository,
			diesel.NewDieselRepository,
			tank.NewTankRepository,
			report.NewDescriptorRepository,

			user.NewUserService,
			user.NewDirectory,
			auth.NewAuthService,
			machine.NewMachineService,
			diesel.NewDieselService,
			report.NewReportService,
			housekeeping.NewHousekeepingService,

			// Interface Adapters to satisfy Fx
			func(s *database.MongoStore) report.DocumentStore { return s },
			func(d *user.Directory) report.UserDirectory { return d },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			organization.NewOrganizationController,
			machine.NewMachineController,
			prestart.NewPrestartController,
			servicerecord.NewServiceRecordController,
			diesel.NewDieselController,
			tank.NewTankController,
			report.NewReportController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(organization.NewOrganizationApi),
			AsRoute(machine.NewMachineApi),
			AsRoute(prestart.NewPrestartApi),
			AsRoute(servicerecord.NewServiceRecordApi),
			AsRoute(diesel.NewDieselApi),
			AsRoute(tank.NewTankApi),
			AsRoute(report.NewReportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, housekeepingService housekeeping.HousekeepingService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return housekeepingService.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						housekeepingService.Stop()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
