// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/jegasolutions/provisioning-service/internal/storage"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package payments -destination ./mock_payments.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package payments -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package payments -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestAPI_GetPayment(t *testing.T) {
	reference := "JEGA-payroll-saas-1712345678901"
	payment := &types.Payment{
		ID:            "payment-1",
		Reference:     reference,
		Status:        types.PaymentApproved,
		AmountInCents: 150000000,
		CustomerEmail: "owner@acme.co",
	}

	tests := []struct {
		name           string
		setupMocks     func(*MockStorageInterface, *MockLoggerInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name: "success",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetPaymentByReference(gomock.Any(), reference).Return(payment, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result paymentResponse
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result.Reference != reference {
					t.Errorf("expected reference %s, got %s", reference, result.Reference)
				}
				if result.Amount != 1500000 {
					t.Errorf("expected amount in major units, got %f", result.Amount)
				}
			},
		},
		{
			name: "not found",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetPaymentByReference(gomock.Any(), reference).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "storage error",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetPaymentByReference(gomock.Any(), reference).Return(nil, errors.New("storage error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			api := NewAPI(mockStorage, mockTracer, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "payments.API.getPayment").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage, mockLogger)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/payments/"+reference, nil)
			w := httptest.NewRecorder()

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.validateResp != nil {
				tt.validateResp(t, res)
			}
		})
	}
}

func TestAPI_ListPayments(t *testing.T) {
	payments := []*types.Payment{
		{ID: "payment-1", Reference: "JEGA-payroll-saas-1712345678901", Status: types.PaymentApproved, CustomerEmail: "owner@acme.co"},
		{ID: "payment-2", Reference: "JEGA-timesheets-saas-1712345678902", Status: types.PaymentDeclined, CustomerEmail: "owner@acme.co"},
	}

	tests := []struct {
		name           string
		target         string
		setupMocks     func(*MockStorageInterface, *MockLoggerInterface)
		expectedStatus int
		expectedLen    int
	}{
		{
			name:           "success",
			target:         "/api/v0/payments?customer=owner@acme.co",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListPaymentsByCustomer(gomock.Any(), "owner@acme.co").Return(payments, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "missing customer parameter",
			target:         "/api/v0/payments",
			setupMocks:     func(*MockStorageInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "storage error",
			target:         "/api/v0/payments?customer=owner@acme.co",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListPaymentsByCustomer(gomock.Any(), "owner@acme.co").Return(nil, errors.New("storage error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			api := NewAPI(mockStorage, mockTracer, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "payments.API.listPayments").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage, mockLogger)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.expectedStatus == http.StatusOK {
				var result []paymentResponse
				if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(result) != tt.expectedLen {
					t.Errorf("expected %d payments, got %d", tt.expectedLen, len(result))
				}
			}
		})
	}
}
