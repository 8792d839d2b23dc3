// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package payments

import (
	"context"

	"github.com/jegasolutions/provisioning-service/internal/types"
)

// StorageInterface defines the storage operations required by the payments
// package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	GetPaymentByReference(ctx context.Context, reference string) (*types.Payment, error)
	ListPaymentsByCustomer(ctx context.Context, customerEmail string) ([]*types.Payment, error)
}
