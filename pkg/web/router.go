// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/monitoring"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/pkg/metrics"
	"github.com/jegasolutions/provisioning-service/pkg/payments"
	"github.com/jegasolutions/provisioning-service/pkg/status"
	"github.com/jegasolutions/provisioning-service/pkg/tenant"
	"github.com/jegasolutions/provisioning-service/pkg/webhooks"
)

func NewRouter(
	webhooksAPI *webhooks.API,
	paymentsAPI *payments.API,
	tenantAPI *tenant.API,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	webhooksAPI.RegisterEndpoints(router)
	paymentsAPI.RegisterEndpoints(router)
	tenantAPI.RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
