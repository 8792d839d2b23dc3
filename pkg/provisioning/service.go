// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jegasolutions/provisioning-service/internal/credentials"
	"github.com/jegasolutions/provisioning-service/internal/db"
	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/monitoring"
	"github.com/jegasolutions/provisioning-service/internal/storage"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

const (
	temporaryPasswordLength = 12

	// maxSubdomainAttempts bounds the regenerate-on-collision loop.
	maxSubdomainAttempts = 5
	// maxProvisionAttempts bounds retries when a concurrent delivery wins a
	// uniqueness race mid-transaction.
	maxProvisionAttempts = 3
)

type Service struct {
	storage  StorageInterface
	dbClient db.DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  s,
		dbClient: dbClient,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// Provision creates the tenant, its purchased modules and its admin user for
// an approved payment. The three entities are created in one transaction;
// any failure rolls the whole set back. Calling Provision again for a
// reference that already produced a tenant is a no-op.
func (s *Service) Provision(ctx context.Context, payment *types.Payment) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.Provision")
	defer span.End()

	if payment.Status != types.PaymentApproved {
		return nil, fmt.Errorf("payment %s is not approved, refusing to provision", payment.Reference)
	}

	if existing, err := s.storage.GetTenantByPaymentReference(ctx, payment.Reference); err == nil {
		s.logger.Infof("tenant %s already provisioned for reference %s", existing.ID, payment.Reference)
		return &Result{Tenant: existing, AlreadyProvisioned: true}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, &PersistenceError{Err: err}
	}

	moduleNames, deploymentType, err := parseReference(payment.Reference)
	if err != nil {
		return nil, err
	}

	temporaryPassword, err := credentials.GeneratePassword(temporaryPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		subdomain, err := s.allocateSubdomain(ctx, payment, attempt)
		if err != nil {
			return nil, err
		}

		tenant, err := s.provisionTx(ctx, payment, subdomain, deploymentType, moduleNames, string(passwordHash))
		if err == nil {
			s.logger.Security().TenantProvisioned(tenant.ID, tenant.Subdomain)
			return &Result{Tenant: tenant, TemporaryPassword: temporaryPassword}, nil
		}

		if errors.Is(err, storage.ErrDuplicateKey) {
			// Either a concurrent delivery provisioned this reference, or the
			// subdomain lost a race. Check which before retrying.
			if existing, lookupErr := s.storage.GetTenantByPaymentReference(ctx, payment.Reference); lookupErr == nil {
				s.logger.Infof("concurrent delivery provisioned reference %s, treating as no-op", payment.Reference)
				return &Result{Tenant: existing, AlreadyProvisioned: true}, nil
			}

			s.logger.Warnf("subdomain conflict on attempt %d for reference %s, retrying", attempt+1, payment.Reference)
			lastErr = err
			continue
		}

		return nil, &PersistenceError{Err: err}
	}

	return nil, &PersistenceError{Err: fmt.Errorf("exhausted %d provisioning attempts: %w", maxProvisionAttempts, lastErr)}
}

// provisionTx runs the three-entity creation inside a single transaction.
func (s *Service) provisionTx(
	ctx context.Context,
	payment *types.Payment,
	subdomain string,
	deploymentType types.DeploymentType,
	moduleNames []string,
	passwordHash string,
) (*types.Tenant, error) {
	name := payment.CustomerName
	if name == "" {
		name = "Cliente"
	}

	var tenant *types.Tenant
	err := s.dbClient.WithTx(ctx, func(txCtx context.Context) error {
		created, err := s.storage.CreateTenant(txCtx, &types.Tenant{
			Name:             name,
			Subdomain:        subdomain,
			OwnerEmail:       payment.CustomerEmail,
			Status:           types.TenantActive,
			DeploymentType:   deploymentType,
			PaymentReference: payment.Reference,
		})
		if err != nil {
			return err
		}

		for _, moduleName := range moduleNames {
			module, err := s.storage.AddTenantModule(txCtx, &types.TenantModule{
				TenantID:   created.ID,
				ModuleName: moduleName,
				Status:     types.ModuleActive,
			})
			if err != nil {
				return err
			}
			created.Modules = append(created.Modules, module)
		}

		if _, err := s.storage.CreateUser(txCtx, &types.User{
			TenantID:     created.ID,
			Email:        created.OwnerEmail,
			FullName:     created.Name,
			PasswordHash: passwordHash,
			Role:         types.RoleAdmin,
		}); err != nil {
			return err
		}

		tenant = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// allocateSubdomain picks a free subdomain slug, regenerating with a salt on
// collision. The unique constraint on tenants.subdomain is the real guard;
// this loop only keeps the common path conflict-free.
func (s *Service) allocateSubdomain(ctx context.Context, payment *types.Payment, provisionAttempt int) (string, error) {
	base := payment.CustomerName
	if base == "" {
		base = payment.CustomerEmail
	}
	if base == "" {
		base = "cliente"
	}

	if provisionAttempt > 0 {
		base = fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
	}

	for attempt := 0; attempt < maxSubdomainAttempts; attempt++ {
		candidate := credentials.GenerateSubdomain(base)

		exists, err := s.storage.SubdomainExists(ctx, candidate)
		if err != nil {
			return "", &PersistenceError{Err: err}
		}
		if !exists {
			return candidate, nil
		}

		base = fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
	}

	return "", &PersistenceError{Err: fmt.Errorf("could not allocate a unique subdomain after %d attempts", maxSubdomainAttempts)}
}

// parseReference splits a checkout reference of the form
// <prefix>-<module>...-<saas|onpremise>-<epochMillis> into its purchased
// module names and deployment type. The deployment type marker is optional
// and defaults to saas.
func parseReference(reference string) ([]string, types.DeploymentType, error) {
	parts := strings.Split(reference, "-")
	if len(parts) < 3 {
		return nil, "", &ValidationError{
			Reference: reference,
			Reason:    fmt.Sprintf("expected at least 3 hyphen-delimited tokens, got %d", len(parts)),
		}
	}

	// The first token is the checkout prefix and the last is the epoch
	// timestamp; neither names a module.
	deploymentType := types.DeploymentSaaS
	var moduleNames []string
	for _, token := range parts[1 : len(parts)-1] {
		if types.IsDeploymentType(token) {
			deploymentType = types.DeploymentType(token)
			break
		}
		moduleNames = append(moduleNames, token)
	}

	if len(moduleNames) == 0 {
		return nil, "", &ValidationError{
			Reference: reference,
			Reason:    "no module names between prefix and deployment type",
		}
	}

	return moduleNames, deploymentType, nil
}
