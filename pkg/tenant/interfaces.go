// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/types"
)

// StorageInterface defines the storage operations required by the tenant
// package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListModulesByTenantID(ctx context.Context, tenantID string) ([]*types.TenantModule, error)
}

type ServiceInterface interface {
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	GetTenant(ctx context.Context, id string) (*types.Tenant, error)
}
