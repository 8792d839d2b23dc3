// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// GatewayEventsKey is the payment gateway's events secret used to verify
	// the X-Integrity signature on inbound webhooks.
	GatewayEventsKey string `envconfig:"gateway_events_key" required:"true"`

	NotificationURL     string        `envconfig:"notification_url"`
	NotificationTimeout time.Duration `envconfig:"notification_timeout" default:"10s"`

	// BaseDomain is the apex under which tenant subdomains are provisioned.
	BaseDomain string `envconfig:"base_domain" default:"jegasolutions.co"`
}
