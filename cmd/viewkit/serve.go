package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viewkit-dev/viewkit"
	"github.com/viewkit-dev/viewkit/internal/config"
	"github.com/viewkit-dev/viewkit/internal/dev"
	"github.com/viewkit-dev/viewkit/pkg/engine/scriggoeval"
	"github.com/viewkit-dev/viewkit/pkg/host"
	"github.com/viewkit-dev/viewkit/pkg/link"
	"github.com/viewkit-dev/viewkit/pkg/loader"
	"github.com/viewkit-dev/viewkit/pkg/middleware"
	"github.com/viewkit-dev/viewkit/pkg/render"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		devMode    bool
		metrics    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a templates directory with the view toolbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if metrics {
				cfg.Metrics = true
			}

			engine := scriggoeval.New()
			metrics := middleware.NewMetrics(engine)
			eval := middleware.NewTracing(metrics)

			toolbox := viewkit.NewToolbox()
			if err := toolbox.Register("link", link.NewTool(), viewkit.ScopeRequest); err != nil {
				return err
			}
			renderTool := render.NewTool(eval, render.WithExhaustionHook(metrics.DepthExhausted))
			if err := toolbox.Register("render", renderTool, viewkit.ScopeApplication); err != nil {
				return err
			}
			if err := toolbox.Configure(cfg.ToolConfigs()); err != nil {
				return err
			}

			ttl, err := cfg.SessionTTL()
			if err != nil {
				return err
			}

			opts := []host.ServerOption{
				host.WithAddr(cfg.Addr),
				host.WithRoot(cfg.Root),
				host.WithCharset(cfg.Charset),
				host.WithMetricsEndpoint(cfg.Metrics),
				host.WithTrustedProxy(cfg.TrustProxy),
			}
			if cfg.Static != "" {
				opts = append(opts, host.WithStatic(cfg.Static))
			}
			if cfg.Session.Param != "" {
				opts = append(opts, host.WithSessionParam(cfg.Session.Param))
			}
			if ttl > 0 {
				opts = append(opts, host.WithSessionTTL(ttl))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if devMode {
				reloader := dev.NewReloader()
				opts = append(opts, host.WithReloadHandler(reloader.HandleWebSocket))
				go func() {
					if err := dev.Watch(ctx, cfg.Templates, reloader.NotifyReload); err != nil && ctx.Err() == nil {
						reloader.NotifyError(err.Error())
					}
				}()
				info("live reload enabled")
			}

			srv := host.New(toolbox, loader.NewDir(cfg.Templates), eval, opts...)
			info("serving %s on %s", cfg.Templates, cfg.Addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to viewkit.yaml")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "watch templates and live-reload browsers")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "mount the Prometheus endpoint at /metrics")
	return cmd
}
