// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/jegasolutions/provisioning-service/internal/types"
	"github.com/jegasolutions/provisioning-service/pkg/provisioning"
)

func TestService_HandlePaymentEvent(t *testing.T) {
	reference := "JEGA-payroll-saas-1712345678901"
	event := &Event{
		Event: "transaction.updated",
		Data: Transaction{
			ID:            "txn-123",
			Reference:     reference,
			Status:        "APPROVED",
			AmountInCents: 150000000,
			Customer: Customer{
				Email:    "owner@acme.co",
				FullName: "Acme SAS",
			},
		},
	}
	approvedPayment := &types.Payment{
		ID:            "payment-1",
		Reference:     reference,
		Status:        types.PaymentApproved,
		AmountInCents: 150000000,
		CustomerEmail: "owner@acme.co",
		CustomerName:  "Acme SAS",
	}
	tenant := &types.Tenant{ID: "tenant-1", Subdomain: "acme-sas-1234", OwnerEmail: "owner@acme.co"}

	testCases := []struct {
		name        string
		event       *Event
		setupMocks  func(*MockStorageInterface, *MockProvisionerInterface, *MockMailerInterface, *MockLoggerInterface)
		expectedErr bool
	}{
		{
			name:  "approved payment provisions and notifies",
			event: event,
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Payment) (*types.Payment, error) {
						if p.Status != types.PaymentApproved {
							return nil, errors.New("expected mapped status APPROVED")
						}
						if p.GatewayTransactionID != "txn-123" {
							return nil, errors.New("expected gateway transaction id")
						}
						return approvedPayment, nil
					})
				mockProvisioner.EXPECT().Provision(gomock.Any(), approvedPayment).Return(
					&provisioning.Result{Tenant: tenant, TemporaryPassword: "s3cret-Pw1!"}, nil)
				mockMailer.EXPECT().SendWelcome(gomock.Any(), tenant, "s3cret-Pw1!").Return(nil)
				mockMailer.EXPECT().SendPaymentConfirmation(gomock.Any(), approvedPayment).Return(nil)
			},
			expectedErr: false,
		},
		{
			name: "declined payment is recorded only",
			event: &Event{
				Event: "transaction.updated",
				Data:  Transaction{Reference: reference, Status: "DECLINED"},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(
					&types.Payment{Reference: reference, Status: types.PaymentDeclined}, nil)
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: false,
		},
		{
			name: "unknown gateway status maps to failed",
			event: &Event{
				Event: "transaction.updated",
				Data:  Transaction{Reference: reference, Status: "EXPLODED"},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Payment) (*types.Payment, error) {
						if p.Status != types.PaymentFailed {
							return nil, errors.New("expected mapped status FAILED")
						}
						return &types.Payment{Reference: reference, Status: types.PaymentFailed}, nil
					})
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: false,
		},
		{
			name:  "storage error",
			event: event,
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(nil, errors.New("storage error"))
			},
			expectedErr: true,
		},
		{
			name:  "malformed reference records payment without provisioning",
			event: event,
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(approvedPayment, nil)
				mockProvisioner.EXPECT().Provision(gomock.Any(), approvedPayment).Return(
					nil, &provisioning.ValidationError{Reference: reference, Reason: "bad reference"})
				mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: false,
		},
		{
			name:  "provisioning persistence error",
			event: event,
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(approvedPayment, nil)
				mockProvisioner.EXPECT().Provision(gomock.Any(), approvedPayment).Return(
					nil, &provisioning.PersistenceError{Err: errors.New("db down")})
			},
			expectedErr: true,
		},
		{
			name:  "already provisioned skips notifications",
			event: event,
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(approvedPayment, nil)
				mockProvisioner.EXPECT().Provision(gomock.Any(), approvedPayment).Return(
					&provisioning.Result{Tenant: tenant, AlreadyProvisioned: true}, nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
			},
			expectedErr: false,
		},
		{
			name:  "notification failures do not fail the event",
			event: event,
			setupMocks: func(mockStorage *MockStorageInterface, mockProvisioner *MockProvisionerInterface, mockMailer *MockMailerInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().UpsertPayment(gomock.Any(), gomock.Any()).Return(approvedPayment, nil)
				mockProvisioner.EXPECT().Provision(gomock.Any(), approvedPayment).Return(
					&provisioning.Result{Tenant: tenant, TemporaryPassword: "s3cret-Pw1!"}, nil)
				mockMailer.EXPECT().SendWelcome(gomock.Any(), tenant, "s3cret-Pw1!").Return(errors.New("smtp down"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
				mockMailer.EXPECT().SendPaymentConfirmation(gomock.Any(), approvedPayment).Return(errors.New("smtp down"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockProvisioner := NewMockProvisionerInterface(ctrl)
			mockMailer := NewMockMailerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			s := NewService(mockStorage, mockProvisioner, mockMailer, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandlePaymentEvent").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockStorage, mockProvisioner, mockMailer, mockLogger)

			err := s.HandlePaymentEvent(context.Background(), tc.event)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
