package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/auth"
	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/chat"
	"github.com/vibe-coding/vibedocs/internal/docs"
	"github.com/vibe-coding/vibedocs/internal/feedback"
	"github.com/vibe-coding/vibedocs/internal/providers"
	"github.com/vibe-coding/vibedocs/internal/render"
	"github.com/vibe-coding/vibedocs/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API and websocket chat server",
	Long:  `Starts the vibedocs server with the JSON API, HTML rendering and the /ws/chat websocket channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		port := a.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		srv := server.New(server.Config{
			Port:           port,
			AllowAll:       a.cfg.Server.AllowAllOrigins,
			RateLimitRPM:   a.cfg.RateLimit.RPM,
			RateLimitBurst: a.cfg.RateLimit.Burst,
		})
		registerAllRoutes(srv, a)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "vibedocs server v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Storage: %s\n", a.cfg.Storage)
		fmt.Fprintf(os.Stderr, "  Documents indexed: %d\n", a.index.Len())
		fmt.Fprintf(os.Stderr, "  Active provider: %s\n", a.providers.Active().Name)

		return srv.Start()
	},
}

// registerAllRoutes wires up every feature package on the server router.
func registerAllRoutes(srv *server.Server, a *app) {
	r := srv.Router()

	catalog.RegisterRoutes(r, a.catalog)
	render.RegisterRoutes(r, a.renderer, a.catalog)
	docs.RegisterRoutes(r, a.docs)
	feedback.RegisterRoutes(r, a.feedback)
	auth.RegisterRoutes(r, a.auth)
	providers.RegisterRoutes(r, a.providers)
	chat.RegisterRoutes(r, a.chats)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
