// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jegasolutions/provisioning-service/internal/db"
	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/monitoring"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

const (
	paymentColumns = "id, reference, status, amount_in_cents, customer_email, customer_name, gateway_transaction_id, created_at, updated_at"
	tenantColumns  = "id, name, subdomain, owner_email, status, deployment_type, payment_reference, created_at, updated_at"
)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// UpsertPayment inserts a payment row keyed by reference, or updates status,
// gateway transaction id and updated_at if the reference already exists.
// The conflict target is the unique constraint on reference, which makes
// concurrent deliveries of the same reference converge on a single row.
func (s *Storage) UpsertPayment(ctx context.Context, p *types.Payment) (*types.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertPayment")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment ID: %w", err)
	}

	var payment types.Payment
	err = s.db.Statement(ctx).
		Insert("payments").
		Columns("id", "reference", "status", "amount_in_cents", "customer_email", "customer_name", "gateway_transaction_id").
		Values(id.String(), p.Reference, p.Status, p.AmountInCents, p.CustomerEmail, p.CustomerName, p.GatewayTransactionID).
		Suffix(`ON CONFLICT (reference) DO UPDATE SET
			status = EXCLUDED.status,
			gateway_transaction_id = EXCLUDED.gateway_transaction_id,
			updated_at = NOW()
		RETURNING ` + paymentColumns).
		QueryRowContext(ctx).
		Scan(
			&payment.ID, &payment.Reference, &payment.Status, &payment.AmountInCents,
			&payment.CustomerEmail, &payment.CustomerName, &payment.GatewayTransactionID,
			&payment.CreatedAt, &payment.UpdatedAt,
		)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert payment: %w", err)
	}

	return &payment, nil
}

func (s *Storage) GetPaymentByReference(ctx context.Context, reference string) (*types.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPaymentByReference")
	defer span.End()

	var p types.Payment
	err := s.db.Statement(ctx).
		Select(paymentColumns).
		From("payments").
		Where(sq.Eq{"reference": reference}).
		QueryRowContext(ctx).
		Scan(
			&p.ID, &p.Reference, &p.Status, &p.AmountInCents,
			&p.CustomerEmail, &p.CustomerName, &p.GatewayTransactionID,
			&p.CreatedAt, &p.UpdatedAt,
		)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &p, nil
}

func (s *Storage) ListPaymentsByCustomer(ctx context.Context, customerEmail string) ([]*types.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPaymentsByCustomer")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(paymentColumns).
		From("payments").
		Where(sq.Eq{"customer_email": customerEmail}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*types.Payment
	for rows.Next() {
		var p types.Payment
		if err := rows.Scan(
			&p.ID, &p.Reference, &p.Status, &p.AmountInCents,
			&p.CustomerEmail, &p.CustomerName, &p.GatewayTransactionID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return payments, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	var tenant types.Tenant
	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "subdomain", "owner_email", "status", "deployment_type", "payment_reference").
		Values(id.String(), t.Name, t.Subdomain, t.OwnerEmail, t.Status, t.DeploymentType, t.PaymentReference).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx).
		Scan(
			&tenant.ID, &tenant.Name, &tenant.Subdomain, &tenant.OwnerEmail,
			&tenant.Status, &tenant.DeploymentType, &tenant.PaymentReference,
			&tenant.CreatedAt, &tenant.UpdatedAt,
		)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "tenant insert")
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return &tenant, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetTenantByPaymentReference(ctx context.Context, reference string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByPaymentReference")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"payment_reference": reference})
}

func (s *Storage) getTenant(ctx context.Context, where sq.Eq) (*types.Tenant, error) {
	var t types.Tenant
	err := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(where).
		QueryRowContext(ctx).
		Scan(
			&t.ID, &t.Name, &t.Subdomain, &t.OwnerEmail,
			&t.Status, &t.DeploymentType, &t.PaymentReference,
			&t.CreatedAt, &t.UpdatedAt,
		)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SubdomainExists")
	defer span.End()

	var count int
	err := s.db.Statement(ctx).
		Select("COUNT(1)").
		From("tenants").
		Where(sq.Eq{"subdomain": subdomain}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check subdomain: %w", err)
	}

	return count > 0, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		var t types.Tenant
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Subdomain, &t.OwnerEmail,
			&t.Status, &t.DeploymentType, &t.PaymentReference,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tenants, nil
}

func (s *Storage) ListModulesByTenantID(ctx context.Context, tenantID string) ([]*types.TenantModule, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListModulesByTenantID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "tenant_id", "module_name", "status", "purchased_at", "expires_at").
		From("tenant_modules").
		Where(sq.Eq{"tenant_id": tenantID}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant modules: %w", err)
	}
	defer rows.Close()

	var modules []*types.TenantModule
	for rows.Next() {
		var m types.TenantModule
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ModuleName, &m.Status, &m.PurchasedAt, &m.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant module: %w", err)
		}
		modules = append(modules, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return modules, nil
}

func (s *Storage) AddTenantModule(ctx context.Context, m *types.TenantModule) (*types.TenantModule, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddTenantModule")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate module ID: %w", err)
	}

	var module types.TenantModule
	err = s.db.Statement(ctx).
		Insert("tenant_modules").
		Columns("id", "tenant_id", "module_name", "status", "expires_at").
		Values(id.String(), m.TenantID, m.ModuleName, m.Status, m.ExpiresAt).
		Suffix("RETURNING id, tenant_id, module_name, status, purchased_at, expires_at").
		QueryRowContext(ctx).
		Scan(&module.ID, &module.TenantID, &module.ModuleName, &module.Status, &module.PurchasedAt, &module.ExpiresAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert tenant module: %w", err)
	}

	return &module, nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var user types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "tenant_id", "email", "full_name", "password_hash", "role").
		Values(id.String(), u.TenantID, u.Email, u.FullName, u.PasswordHash, u.Role).
		Suffix("RETURNING id, tenant_id, email, full_name, password_hash, role, created_at").
		QueryRowContext(ctx).
		Scan(&user.ID, &user.TenantID, &user.Email, &user.FullName, &user.PasswordHash, &user.Role, &user.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "user insert")
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}
