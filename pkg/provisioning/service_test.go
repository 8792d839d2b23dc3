// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/jegasolutions/provisioning-service/internal/storage"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_provisioning.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestParseReference(t *testing.T) {
	tests := []struct {
		name               string
		reference          string
		expectedModules    []string
		expectedDeployment types.DeploymentType
		expectedErr        bool
	}{
		{
			name:               "single module saas",
			reference:          "JEGA-payroll-saas-1712345678901",
			expectedModules:    []string{"payroll"},
			expectedDeployment: types.DeploymentSaaS,
		},
		{
			name:               "multiple modules onpremise",
			reference:          "JEGA-payroll-timesheets-onpremise-1712345678901",
			expectedModules:    []string{"payroll", "timesheets"},
			expectedDeployment: types.DeploymentOnPremise,
		},
		{
			name:               "missing deployment marker defaults to saas",
			reference:          "JEGA-payroll-1712345678901",
			expectedModules:    []string{"payroll"},
			expectedDeployment: types.DeploymentSaaS,
		},
		{
			name:        "too few tokens",
			reference:   "JEGA-1712345678901",
			expectedErr: true,
		},
		{
			name:        "no modules before deployment marker",
			reference:   "JEGA-saas-1712345678901",
			expectedErr: true,
		},
		{
			name:        "empty reference",
			reference:   "",
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules, deployment, err := parseReference(tt.reference)

			if tt.expectedErr {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deployment != tt.expectedDeployment {
				t.Errorf("expected deployment %s, got %s", tt.expectedDeployment, deployment)
			}
			if len(modules) != len(tt.expectedModules) {
				t.Fatalf("expected modules %v, got %v", tt.expectedModules, modules)
			}
			for i, m := range tt.expectedModules {
				if modules[i] != m {
					t.Errorf("expected module %s at index %d, got %s", m, i, modules[i])
				}
			}
		})
	}
}

func TestService_Provision(t *testing.T) {
	reference := "JEGA-payroll-saas-1712345678901"
	approvedPayment := &types.Payment{
		ID:            "payment-1",
		Reference:     reference,
		Status:        types.PaymentApproved,
		CustomerEmail: "owner@acme.co",
		CustomerName:  "Acme SAS",
	}
	existingTenant := &types.Tenant{ID: "tenant-1", Subdomain: "acme-sas-1234", PaymentReference: reference}

	passthroughTx := func(mockDB *MockDBClientInterface) {
		mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
	}

	t.Run("rejects non-approved payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))

		_, err := s.Provision(context.Background(), &types.Payment{Reference: reference, Status: types.PaymentPending})
		if err == nil {
			t.Fatal("expected error for pending payment")
		}
	})

	t.Run("already provisioned reference is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), reference).Return(existingTenant, nil)
		mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())

		result, err := s.Provision(context.Background(), approvedPayment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.AlreadyProvisioned {
			t.Error("expected AlreadyProvisioned")
		}
		if result.TemporaryPassword != "" {
			t.Error("expected no temporary password for already provisioned tenant")
		}
	})

	t.Run("malformed reference is a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		badPayment := &types.Payment{Reference: "JEGA-1712345678901", Status: types.PaymentApproved}

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), badPayment.Reference).Return(nil, storage.ErrNotFound)

		_, err := s.Provision(context.Background(), badPayment)

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("provisions tenant, modules and admin user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockSecurity := NewMockSecurityLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), reference).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().SubdomainExists(gomock.Any(), gomock.Any()).Return(false, nil)
		passthroughTx(mockDB)
		mockStorage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tenant *types.Tenant) (*types.Tenant, error) {
				if tenant.Status != types.TenantActive {
					return nil, errors.New("expected active tenant")
				}
				if tenant.DeploymentType != types.DeploymentSaaS {
					return nil, errors.New("expected saas deployment")
				}
				if tenant.PaymentReference != reference {
					return nil, errors.New("expected payment reference on tenant")
				}
				if tenant.OwnerEmail != "owner@acme.co" {
					return nil, errors.New("expected owner email")
				}
				created := *tenant
				created.ID = "tenant-1"
				return &created, nil
			})
		mockStorage.EXPECT().AddTenantModule(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *types.TenantModule) (*types.TenantModule, error) {
				if m.TenantID != "tenant-1" || m.ModuleName != "payroll" || m.Status != types.ModuleActive {
					return nil, errors.New("unexpected module")
				}
				return m, nil
			})
		mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *types.User) (*types.User, error) {
				if u.TenantID != "tenant-1" || u.Email != "owner@acme.co" || u.Role != types.RoleAdmin {
					return nil, errors.New("unexpected admin user")
				}
				if u.PasswordHash == "" {
					return nil, errors.New("expected hashed password")
				}
				return u, nil
			})
		mockLogger.EXPECT().Security().Return(mockSecurity)
		mockSecurity.EXPECT().TenantProvisioned("tenant-1", gomock.Any())

		result, err := s.Provision(context.Background(), approvedPayment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.AlreadyProvisioned {
			t.Error("expected fresh provisioning")
		}
		if len(result.TemporaryPassword) != temporaryPasswordLength {
			t.Errorf("expected %d char temporary password, got %d", temporaryPasswordLength, len(result.TemporaryPassword))
		}
		if result.Tenant.ID != "tenant-1" {
			t.Errorf("expected tenant-1, got %s", result.Tenant.ID)
		}
		if len(result.Tenant.Modules) != 1 {
			t.Errorf("expected 1 module, got %d", len(result.Tenant.Modules))
		}
	})

	t.Run("regenerates subdomain on collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockSecurity := NewMockSecurityLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), reference).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().SubdomainExists(gomock.Any(), gomock.Any()).Return(true, nil)
		mockStorage.EXPECT().SubdomainExists(gomock.Any(), gomock.Any()).Return(false, nil)
		passthroughTx(mockDB)
		mockStorage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(existingTenant, nil)
		mockStorage.EXPECT().AddTenantModule(gomock.Any(), gomock.Any()).Return(&types.TenantModule{}, nil)
		mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&types.User{}, nil)
		mockLogger.EXPECT().Security().Return(mockSecurity)
		mockSecurity.EXPECT().TenantProvisioned(gomock.Any(), gomock.Any())

		if _, err := s.Provision(context.Background(), approvedPayment); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent delivery winning the race is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), reference).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().SubdomainExists(gomock.Any(), gomock.Any()).Return(false, nil)
		passthroughTx(mockDB)
		mockStorage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), reference).Return(existingTenant, nil)
		mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())

		result, err := s.Provision(context.Background(), approvedPayment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.AlreadyProvisioned {
			t.Error("expected AlreadyProvisioned after losing the race")
		}
	})

	t.Run("transaction failure is a persistence error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockDB := NewMockDBClientInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		s := NewService(mockStorage, mockDB, mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "provisioning.Service.Provision").
			Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetTenantByPaymentReference(gomock.Any(), reference).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().SubdomainExists(gomock.Any(), gomock.Any()).Return(false, nil)
		passthroughTx(mockDB)
		mockStorage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(existingTenant, nil)
		mockStorage.EXPECT().AddTenantModule(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := s.Provision(context.Background(), approvedPayment)

		var persistenceErr *PersistenceError
		if !errors.As(err, &persistenceErr) {
			t.Fatalf("expected PersistenceError, got %v", err)
		}
	})
}
