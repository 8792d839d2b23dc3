// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/types"
)

type StorageInterface interface {
	UpsertPayment(ctx context.Context, p *types.Payment) (*types.Payment, error)
	GetPaymentByReference(ctx context.Context, reference string) (*types.Payment, error)
	ListPaymentsByCustomer(ctx context.Context, customerEmail string) ([]*types.Payment, error)

	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetTenantByPaymentReference(ctx context.Context, reference string) (*types.Tenant, error)
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	ListModulesByTenantID(ctx context.Context, tenantID string) ([]*types.TenantModule, error)

	AddTenantModule(ctx context.Context, m *types.TenantModule) (*types.TenantModule, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
}
