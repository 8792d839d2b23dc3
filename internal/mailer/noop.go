// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package mailer

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

// NoopClient logs instead of dispatching, for deployments without a
// notification service configured.
type NoopClient struct {
	logger logging.LoggerInterface
}

func NewNoopClient(logger logging.LoggerInterface) *NoopClient {
	return &NoopClient{logger: logger}
}

func (c *NoopClient) SendWelcome(ctx context.Context, tenant *types.Tenant, temporaryPassword string) error {
	c.logger.Infof("notification service not configured, skipping welcome mail for tenant %s", tenant.ID)
	return nil
}

func (c *NoopClient) SendPaymentConfirmation(ctx context.Context, payment *types.Payment) error {
	c.logger.Infof("notification service not configured, skipping payment confirmation for reference %s", payment.Reference)
	return nil
}
