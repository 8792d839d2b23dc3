// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/monitoring"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/internal/types"
	"github.com/jegasolutions/provisioning-service/pkg/provisioning"
)

type Service struct {
	storage     StorageInterface
	provisioner ProvisionerInterface
	mailer      MailerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	provisioner ProvisionerInterface,
	mailer MailerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:     storage,
		provisioner: provisioner,
		mailer:      mailer,
		tracer:      tracer,
		monitor:     monitor,
		logger:      logger,
	}
}

// HandlePaymentEvent records the gateway event in the payment ledger and, on
// the transition to APPROVED, provisions the tenant and dispatches
// notifications. A malformed reference leaves the payment recorded but
// unprovisioned and is not an error to the gateway; notification failures
// never fail the request.
func (s *Service) HandlePaymentEvent(ctx context.Context, event *Event) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandlePaymentEvent")
	defer span.End()

	mapped := types.MapGatewayStatus(event.Data.Status)
	s.logger.Debugf("handling %s event for reference %s, mapped status %s", event.Event, event.Data.Reference, mapped)

	payment, err := s.storage.UpsertPayment(ctx, &types.Payment{
		Reference:            event.Data.Reference,
		Status:               mapped,
		AmountInCents:        event.Data.AmountInCents,
		CustomerEmail:        event.Data.Customer.Email,
		CustomerName:         event.Data.Customer.FullName,
		GatewayTransactionID: event.Data.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert payment: %w", err)
	}

	if payment.Status != types.PaymentApproved {
		s.logger.Debugf("payment %s recorded with status %s, nothing to provision", payment.Reference, payment.Status)
		return nil
	}

	result, err := s.provisioner.Provision(ctx, payment)
	if err != nil {
		var validationErr *provisioning.ValidationError
		if errors.As(err, &validationErr) {
			s.logger.Warnf("payment %s recorded but not provisioned: %v", payment.Reference, err)
			return nil
		}
		return fmt.Errorf("failed to provision tenant for reference %s: %w", payment.Reference, err)
	}

	if result.AlreadyProvisioned {
		s.logger.Infof("reference %s already provisioned, skipping notifications", payment.Reference)
		return nil
	}

	// Fire-and-forget: the provisioning transaction is committed, a failed
	// notification must not undo it.
	if err := s.mailer.SendWelcome(ctx, result.Tenant, result.TemporaryPassword); err != nil {
		s.logger.Errorf("failed to send welcome notification for tenant %s: %v", result.Tenant.ID, err)
	}
	if err := s.mailer.SendPaymentConfirmation(ctx, payment); err != nil {
		s.logger.Errorf("failed to send payment confirmation for reference %s: %v", payment.Reference, err)
	}

	return nil
}
