// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// SecurityLogger writes audit events at Info level on a dedicated logger so
// they are emitted regardless of the configured application log level.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system_shutdown"))
}

func (s *SecurityLogger) SignatureRejected(remoteAddr string) {
	s.l.Warn("webhook signature rejected",
		zap.String("event", "webhook_signature_rejected"),
		zap.String("remote_addr", remoteAddr),
	)
}

func (s *SecurityLogger) TenantProvisioned(tenantID, subdomain string) {
	s.l.Info("tenant provisioned",
		zap.String("event", "tenant_provisioned"),
		zap.String("tenant_id", tenantID),
		zap.String("subdomain", subdomain),
	)
}

func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	securityCfg := zap.NewProductionConfig()
	securityCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	securityLogger, err := securityCfg.Build()
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: logger.Sugar(),
		security:      &SecurityLogger{l: securityLogger.Named("security")},
	}
}
