// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/types"
	"github.com/jegasolutions/provisioning-service/pkg/provisioning"
)

// StorageInterface defines the storage operations required by the webhooks
// package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	UpsertPayment(ctx context.Context, p *types.Payment) (*types.Payment, error)
}

// ProvisionerInterface defines the provisioning operations required by the
// webhooks package.
type ProvisionerInterface interface {
	Provision(ctx context.Context, payment *types.Payment) (*provisioning.Result, error)
}

// MailerInterface defines the notification operations required by the
// webhooks package.
type MailerInterface interface {
	SendWelcome(ctx context.Context, tenant *types.Tenant, temporaryPassword string) error
	SendPaymentConfirmation(ctx context.Context, payment *types.Payment) error
}

// VerifierInterface authenticates a raw webhook body against its signature
// header.
type VerifierInterface interface {
	Verify(rawBody []byte, signatureHeader string) bool
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandlePaymentEvent(ctx context.Context, event *Event) error
}
