package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliadapter "github.com/helena-commits/badge-capture-stream/internal/adapters/cli"
	"github.com/helena-commits/badge-capture-stream/internal/ports/primary"
	"github.com/helena-commits/badge-capture-stream/internal/wire"
)

type watchOptions struct {
	enable      bool
	arm         bool
	metricsAddr string
}

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for new photos and hand them to the badge generator",
		Long: `Subscribe to newly created photos and react to each one.

While auto-dispatch is off or no badge tab is armed, every new photo only
produces a notice. Once armed, each new photo is opened in the badge tab,
at most once per photo and no more often than dispatch.min_interval.

Type "help" at the prompt for operator commands.

Examples:
  badgedesk watch
  badgedesk watch --enable --arm
  badgedesk watch --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(NewContext(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer wire.Shutdown(context.Background())

			out := cmd.OutOrStdout()
			return watchRun(ctx, wire.DispatchController(), wire.Console(out), os.Stdin, out, opts, wire.Logger())
		},
	}

	cmd.Flags().BoolVar(&opts.enable, "enable", false, "turn auto-dispatch on before watching")
	cmd.Flags().BoolVar(&opts.arm, "arm", false, "arm a badge tab before watching")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func watchRun(ctx context.Context, controller primary.DispatchController, console *cliadapter.Console, in io.Reader, out io.Writer, opts watchOptions, logger *zap.Logger) error {
	if err := controller.Start(ctx); err != nil {
		return err
	}
	defer controller.Close(context.Background())

	if opts.metricsAddr != "" {
		srv := startMetricsServer(opts.metricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if opts.enable {
		if err := controller.SetAutoDispatch(ctx, true); err != nil {
			return err
		}
	}
	if opts.arm {
		if err := controller.Arm(ctx); err != nil {
			// Keep watching; the operator can retry with "arm".
			fmt.Fprintf(out, "✗ %v\n", err)
		}
	}

	status := controller.Status(ctx)
	fmt.Fprintf(out, "Watching for new photos (%s). Type \"help\" for commands.\n", status.State)

	done := make(chan error, 1)
	go func() {
		done <- console.Run(ctx, in)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out, "\nStopping")
		return nil
	case err := <-done:
		return err
	}
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}
