package cmd

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/resumia/statement-analyzer/internal/api"
	"github.com/resumia/statement-analyzer/pkg/logger"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve starts the HTTP API:

  GET  /api/health   liveness probe
  POST /api/parse    parse one uploaded statement PDF
  POST /api/analyze  parse and analyze in a single request`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	host := cfg.Server.Host
	port := cfg.Server.Port
	if serveHost != "" {
		host = serveHost
	}
	if servePort != 0 {
		port = servePort
	}

	app := fiber.New(fiber.Config{
		AppName:   "statement-analyzer",
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	api.Register(app)

	addr := fmt.Sprintf("%s:%d", host, port)
	logger.WithField("addr", addr).Info("starting HTTP API")
	return app.Listen(addr)
}
