// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func validEventBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(Event{
		Event: "transaction.updated",
		Data: Transaction{
			ID:            "txn-123",
			Reference:     "JEGA-payroll-saas-1712345678901",
			Status:        "APPROVED",
			AmountInCents: 150000000,
			Customer: Customer{
				Email:    "owner@acme.co",
				FullName: "Acme SAS",
			},
		},
		Environment: "prod",
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return body
}

func TestAPI_PaymentEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           func(*testing.T) []byte
		signature      string
		setupMocks     func(*MockServiceInterface, *MockVerifierInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedStatus int
	}{
		{
			name:      "success",
			body:      validEventBody,
			signature: "deadbeef",
			setupMocks: func(mockSvc *MockServiceInterface, mockVerifier *MockVerifierInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockVerifier.EXPECT().Verify(gomock.Any(), "deadbeef").Return(true)
				mockSvc.EXPECT().HandlePaymentEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing signature header",
			body:           validEventBody,
			signature:      "",
			setupMocks:     func(*MockServiceInterface, *MockVerifierInterface, *MockLoggerInterface, *MockSecurityLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "invalid signature",
			body:      validEventBody,
			signature: "deadbeef",
			setupMocks: func(mockSvc *MockServiceInterface, mockVerifier *MockVerifierInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockVerifier.EXPECT().Verify(gomock.Any(), "deadbeef").Return(false)
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().SignatureRejected(gomock.Any())
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:      "invalid json body",
			body:      func(*testing.T) []byte { return []byte("not-json") },
			signature: "deadbeef",
			setupMocks: func(mockSvc *MockServiceInterface, mockVerifier *MockVerifierInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockVerifier.EXPECT().Verify(gomock.Any(), "deadbeef").Return(true)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "payload missing reference",
			body: func(t *testing.T) []byte {
				body, err := json.Marshal(Event{
					Event: "transaction.updated",
					Data:  Transaction{Status: "APPROVED"},
				})
				if err != nil {
					t.Fatalf("failed to marshal event: %v", err)
				}
				return body
			},
			signature: "deadbeef",
			setupMocks: func(mockSvc *MockServiceInterface, mockVerifier *MockVerifierInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockVerifier.EXPECT().Verify(gomock.Any(), "deadbeef").Return(true)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "service error",
			body:      validEventBody,
			signature: "deadbeef",
			setupMocks: func(mockSvc *MockServiceInterface, mockVerifier *MockVerifierInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockVerifier.EXPECT().Verify(gomock.Any(), "deadbeef").Return(true)
				mockSvc.EXPECT().HandlePaymentEvent(gomock.Any(), gomock.Any()).Return(errors.New("service error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockVerifier := NewMockVerifierInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			api := NewAPI(mockService, mockVerifier, mockLogger)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/payments/webhook", bytes.NewBuffer(tt.body(t)))
			if tt.signature != "" {
				req.Header.Set(SignatureHeader, tt.signature)
			}
			w := httptest.NewRecorder()

			tt.setupMocks(mockService, mockVerifier, mockLogger, mockSecurity)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}
		})
	}
}
