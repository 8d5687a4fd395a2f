// Package serve handles the HTTP API command
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	"fjacquet/statement-analyzer/internal/api"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve [statement]",
	Short: "Serve the upload, chat and summary HTTP API",
	Long: `Start an HTTP server exposing the chat workflow:

  GET  /api/health             liveness and loaded dataset
  POST /api/upload             multipart field "file" (CSV or JSON)
  POST /api/chat               {"message": "How much did I spend on 'rent'?"}
  GET  /api/summary?month=&top= analysis summary as JSON

A statement given as argument is loaded before the server starts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Run(ctx, cmd.OutOrStdout(), root.GetContainer(), args, address)
	},
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (default from server.address)")
}

// NewApp builds the HTTP application over the container's session and agent.
func NewApp(c *container.Container) *fiber.App {
	cfg := c.GetConfig()
	return api.NewApp(&api.Handler{
		Session: c.GetSession(),
		Agent:   c.GetAgent(),
		TopN:    cfg.Analysis.TopN,
		Logger:  c.GetLogger(),
	}, cfg.MaxUploadBytes())
}

// Preload loads the optional statement argument into the session.
func Preload(out io.Writer, c *container.Container, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if err := common.CheckInput(args[0]); err != nil {
		return common.Fail(out, err)
	}
	ds, err := c.GetSession().Load(args[0])
	if err != nil {
		return common.Fail(out, err)
	}
	_, _ = fmt.Fprintln(out, session.StatusMessage(ds))
	return nil
}

// Run serves the API on addr, or server.address when addr is empty, until
// ctx is cancelled.
func Run(ctx context.Context, out io.Writer, c *container.Container, args []string, addr string) error {
	if err := Preload(out, c, args); err != nil {
		return err
	}
	if addr == "" {
		addr = c.GetConfig().Server.Address
	}

	logger := c.GetLogger()
	app := NewApp(c)
	app.Hooks().OnListen(func(data fiber.ListenData) error {
		logger.Info("HTTP API listening", logging.F("address", net.JoinHostPort(data.Host, data.Port)))
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return common.Fail(out, fmt.Errorf("server stopped: %w", err))
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Graceful shutdown failed")
		return err
	}
	return nil
}
