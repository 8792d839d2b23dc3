// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/monitoring"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

var _ MailerInterface = (*Client)(nil)

// Client talks to the notification service, which owns templates and mail
// transport. This service only hands it the facts to render.
type Client struct {
	client     *resty.Client
	baseDomain string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type welcomeRequest struct {
	TenantID          string `json:"tenant_id"`
	TenantName        string `json:"tenant_name"`
	Subdomain         string `json:"subdomain"`
	TenantURL         string `json:"tenant_url"`
	OwnerEmail        string `json:"owner_email"`
	TemporaryPassword string `json:"temporary_password"`
}

type paymentConfirmationRequest struct {
	Reference     string  `json:"reference"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name,omitempty"`
}

func NewClient(notificationURL, baseDomain string, timeout time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	client := resty.New().
		SetBaseURL(notificationURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")

	return &Client{
		client:     client,
		baseDomain: baseDomain,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (c *Client) SendWelcome(ctx context.Context, tenant *types.Tenant, temporaryPassword string) error {
	ctx, span := c.tracer.Start(ctx, "mailer.Client.SendWelcome")
	defer span.End()

	body := welcomeRequest{
		TenantID:          tenant.ID,
		TenantName:        tenant.Name,
		Subdomain:         tenant.Subdomain,
		TenantURL:         fmt.Sprintf("https://%s.%s", tenant.Subdomain, c.baseDomain),
		OwnerEmail:        tenant.OwnerEmail,
		TemporaryPassword: temporaryPassword,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/notifications/welcome")

	return c.checkResponse(resp, err, "welcome")
}

func (c *Client) SendPaymentConfirmation(ctx context.Context, payment *types.Payment) error {
	ctx, span := c.tracer.Start(ctx, "mailer.Client.SendPaymentConfirmation")
	defer span.End()

	body := paymentConfirmationRequest{
		Reference:     payment.Reference,
		Status:        string(payment.Status),
		Amount:        payment.Amount(),
		CustomerEmail: payment.CustomerEmail,
		CustomerName:  payment.CustomerName,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/notifications/payment-confirmation")

	return c.checkResponse(resp, err, "payment-confirmation")
}

func (c *Client) checkResponse(resp *resty.Response, err error, kind string) error {
	availability := 1.0
	defer func() {
		if merr := c.monitor.SetDependencyAvailability(map[string]string{"component": "notification-service"}, availability); merr != nil {
			c.logger.Errorf("failed to set dependency availability: %v", merr)
		}
	}()

	if err != nil {
		availability = 0
		return fmt.Errorf("failed to dispatch %s notification: %w", kind, err)
	}

	if resp.IsError() {
		availability = 0
		return fmt.Errorf("notification service rejected %s notification: status %d", kind, resp.StatusCode())
	}

	return nil
}
