package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fieldguard/internal/api"
	"github.com/dmitrymomot/fieldguard/internal/metrics"
	"github.com/dmitrymomot/fieldguard/pkg/httpserver"
	"github.com/dmitrymomot/fieldguard/pkg/i18n"
	"github.com/dmitrymomot/fieldguard/pkg/logger"
)

func newServeCmd(policyFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*policyFile)
			if err != nil {
				return err
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			logger.SetAsDefault(log)

			registry, err := loadRegistry(cfg, log)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.NewMetrics(reg)

			translator, err := i18n.NewDefault(cmd.Context(),
				i18n.WithLogger(log),
				i18n.WithMissingTranslationsLogging(true),
			)
			if err != nil {
				return err
			}

			opts := []api.Option{
				api.WithLogger(log),
				api.WithMetrics(m, m.Handler(reg)),
				api.WithTranslator(translator),
			}
			if cfg.FormsLimit > 0 {
				opts = append(opts, api.WithFormsLimit(cfg.FormsLimit))
			}
			router := api.New(registry, opts...).Router()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
			return srv.Run(ctx, router)
		},
	}
}
