// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentApproved  PaymentStatus = "APPROVED"
	PaymentDeclined  PaymentStatus = "DECLINED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// MapGatewayStatus translates the gateway's status vocabulary into the
// internal enum. Unknown statuses map to FAILED.
func MapGatewayStatus(gatewayStatus string) PaymentStatus {
	switch strings.ToUpper(gatewayStatus) {
	case "APPROVED":
		return PaymentApproved
	case "DECLINED":
		return PaymentDeclined
	case "VOIDED":
		return PaymentCancelled
	case "PENDING":
		return PaymentPending
	default:
		return PaymentFailed
	}
}

type TenantStatus string

const (
	TenantActive    TenantStatus = "ACTIVE"
	TenantSuspended TenantStatus = "SUSPENDED"
	TenantCancelled TenantStatus = "CANCELLED"
)

type ModuleStatus string

const (
	ModuleActive    ModuleStatus = "ACTIVE"
	ModuleSuspended ModuleStatus = "SUSPENDED"
	ModuleExpired   ModuleStatus = "EXPIRED"
)

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleUser   UserRole = "USER"
	RoleViewer UserRole = "VIEWER"
)

type DeploymentType string

const (
	DeploymentSaaS      DeploymentType = "saas"
	DeploymentOnPremise DeploymentType = "onpremise"
)

// IsDeploymentType reports whether token is one of the reference convention's
// deployment type markers.
func IsDeploymentType(token string) bool {
	return token == string(DeploymentSaaS) || token == string(DeploymentOnPremise)
}

type Payment struct {
	ID                   string        `db:"id"`
	Reference            string        `db:"reference"`
	Status               PaymentStatus `db:"status"`
	AmountInCents        int64         `db:"amount_in_cents"`
	CustomerEmail        string        `db:"customer_email"`
	CustomerName         string        `db:"customer_name"`
	GatewayTransactionID string        `db:"gateway_transaction_id"`
	CreatedAt            time.Time     `db:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at"`
}

// Amount returns the payment amount in major currency units.
func (p *Payment) Amount() float64 {
	return float64(p.AmountInCents) / 100
}

type Tenant struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Subdomain        string         `db:"subdomain"`
	OwnerEmail       string         `db:"owner_email"`
	Status           TenantStatus   `db:"status"`
	DeploymentType   DeploymentType `db:"deployment_type"`
	PaymentReference string         `db:"payment_reference"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`

	Modules []*TenantModule
}

type TenantModule struct {
	ID          string       `db:"id"`
	TenantID    string       `db:"tenant_id"`
	ModuleName  string       `db:"module_name"`
	Status      ModuleStatus `db:"status"`
	PurchasedAt time.Time    `db:"purchased_at"`
	ExpiresAt   *time.Time   `db:"expires_at"`
}

type User struct {
	ID           string    `db:"id"`
	TenantID     string    `db:"tenant_id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	Role         UserRole  `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}
