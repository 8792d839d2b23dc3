// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/types"
)

// StorageInterface defines the storage operations required by the
// provisioning package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	GetTenantByPaymentReference(ctx context.Context, reference string) (*types.Tenant, error)
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	AddTenantModule(ctx context.Context, m *types.TenantModule) (*types.TenantModule, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
}

// Result is the outcome of a provisioning attempt. TemporaryPassword is the
// plaintext credential for the tenant's admin user; it lives in memory only
// and is empty when the tenant had already been provisioned.
type Result struct {
	Tenant             *types.Tenant
	TemporaryPassword  string
	AlreadyProvisioned bool
}

// ServiceInterface defines the tenant provisioning operations.
type ServiceInterface interface {
	Provision(ctx context.Context, payment *types.Payment) (*Result, error)
}
