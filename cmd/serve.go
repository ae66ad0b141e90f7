package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/liferay-faces/archetype-portal/internal/server"
	"github.com/liferay-faces/archetype-portal/internal/watch"
)

func ServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the archetype portal",
		Long:  "Build the archetype catalog and serve the portal page and its API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, version)
		},
	}

	addConfigFlag(cmd)
	cmd.Flags().String("router", "", "HTTP router (nethttp, gin, echo, fiber)")
	cmd.Flags().Int("port", 0, "Port to listen on")
	cmd.Flags().String("host", "", "Host to bind")
	cmd.Flags().Bool("watch", false, "Rebuild the catalog when the configuration file changes")

	return cmd
}

func runServe(cmd *cobra.Command, version string) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if router, _ := cmd.Flags().GetString("router"); router != "" {
		cfg.Router = router
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if w, _ := cmd.Flags().GetBool("watch"); w {
		cfg.Watch = true
	}
	host, _ := cmd.Flags().GetString("host")

	logger := newLogger(cfg.LogLevel)

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("🔍 Building archetype catalog...")
	svc.Init(ctx, cfg.Parameters)
	fmt.Printf("📦 Catalog built from %s\n", cfg.ListingURL(svc.Snapshot()))

	srv, err := server.New(server.Options{
		Router:  cfg.Router,
		Host:    host,
		Port:    cfg.Port,
		Version: version,
		Logger:  logger,
	}, svc)
	if err != nil {
		return err
	}

	banner := server.BannerOptions{
		Name:       cfg.Name,
		Version:    version,
		Host:       host,
		Port:       cfg.Port,
		Router:     srv.Router(),
		Snapshot:   svc.Snapshot(),
		Archetypes: len(svc.Archetypes()),
	}
	if cfg.Watch {
		banner.Watching = configPath
	}
	server.Banner(os.Stdout, banner)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})

	if cfg.Watch {
		watcher := watch.New(configPath, watch.DefaultDebounce, func(ctx context.Context) {
			reloaded, err := reloadConfig(configPath)
			if err != nil {
				logger.Error("failed to reload configuration", "path", configPath, "err", err)
				return
			}
			svc.Init(ctx, reloaded.Parameters)
		}, logger.WithPrefix("watch"))

		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	fmt.Println("👋 Portal stopped")
	return nil
}
