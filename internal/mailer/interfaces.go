// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package mailer

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/types"
)

// MailerInterface is the contract of the external notification collaborator.
// Dispatch is fire-and-forget from the pipeline's point of view: failures are
// reported to the caller for logging but never roll back committed state.
type MailerInterface interface {
	SendWelcome(ctx context.Context, tenant *types.Tenant, temporaryPassword string) error
	SendPaymentConfirmation(ctx context.Context, payment *types.Payment) error
}
