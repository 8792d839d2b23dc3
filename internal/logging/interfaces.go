// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface emits audit events that must survive log level filtering.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	SignatureRejected(remoteAddr string)
	TenantProvisioned(tenantID, subdomain string)
}
