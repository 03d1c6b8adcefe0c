package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Bahjat/castify/internal/converter"
	"github.com/Bahjat/castify/internal/platform/logger"
	"github.com/Bahjat/castify/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

type serveOptions struct {
	port        string
	imagePolicy string
}

func newServeCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&opts.imagePolicy, "image-policy", "", "What to do without an og:image: required or optional (overrides IMAGE_POLICY)")
	cmd.Flags().SortFlags = false

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts.imagePolicy)
	if err != nil {
		return err
	}
	if opts.port != "" {
		cfg.Port = opts.port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	engine, err := newEngine(cfg, true)
	if err != nil {
		log.Error("cannot start", "error", err)
		return err
	}

	svc := converter.NewService(engine, log)
	transport := converter.NewTransport(svc, log)
	srv := server.New(server.Options{
		Port:            cfg.Port,
		ManifestURL:     cfg.ManifestURL,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	}, transport, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			"addr", srv.Addr,
			"image_policy", engine.Policy().Image,
			"probe_images", cfg.ProbeImages,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
