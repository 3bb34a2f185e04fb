package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"opnsense-manager/core/loader"
	"opnsense-manager/core/logger"
	"opnsense-manager/core/middleware/auth"
	"opnsense-manager/core/middleware/rayid"
	"opnsense-manager/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "opnsense-manager/docs/swagger"
)

// @title OPNsense Manager API
// @version 1.0
// @description Declarative reconciliation of OPNsense firewall objects.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server exposing reconciliation, listing, history and metrics endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger, session and engine
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer rt.Close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(objects.NewFeature(rt.service))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(rt.metrics.Handler()))

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Public: []string{"/swagger", "/metrics"},
		}))
		if rt.cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty, the API is unprotected")
		}

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("address", rt.cfg.Server.Address()),
				zap.String("appliance", rt.cfg.API.URL),
			)
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
