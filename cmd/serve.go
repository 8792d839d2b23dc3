// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/jegasolutions/provisioning-service/internal/config"
	"github.com/jegasolutions/provisioning-service/internal/db"
	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/mailer"
	"github.com/jegasolutions/provisioning-service/internal/monitoring/prometheus"
	"github.com/jegasolutions/provisioning-service/internal/storage"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/pkg/payments"
	"github.com/jegasolutions/provisioning-service/pkg/provisioning"
	"github.com/jegasolutions/provisioning-service/pkg/tenant"
	"github.com/jegasolutions/provisioning-service/pkg/web"
	"github.com/jegasolutions/provisioning-service/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("provisioning-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var mail mailer.MailerInterface
	if specs.NotificationURL != "" {
		mail = mailer.NewClient(specs.NotificationURL, specs.BaseDomain, specs.NotificationTimeout, tracer, monitor, logger)
	} else {
		logger.Info("Notification service URL not set, using noop mailer")
		mail = mailer.NewNoopClient(logger)
	}

	provisioner := provisioning.NewService(s, dbClient, tracer, monitor, logger)

	webhookService := webhooks.NewService(s, provisioner, mail, tracer, monitor, logger)
	verifier := webhooks.NewSignatureVerifier([]byte(specs.GatewayEventsKey))
	webhooksAPI := webhooks.NewAPI(webhookService, verifier, logger)

	paymentsAPI := payments.NewAPI(s, tracer, logger)

	tenantService := tenant.NewService(s, tracer, monitor, logger)
	tenantAPI := tenant.NewAPI(tenantService, tracer, logger)

	router := web.NewRouter(
		webhooksAPI,
		paymentsAPI,
		tenantAPI,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
