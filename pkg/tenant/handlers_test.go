// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package tenant

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

func TestAPI_ListTenants(t *testing.T) {
	tenants := []*types.Tenant{
		{ID: "tenant-1", Name: "Acme SAS", Subdomain: "acme-1234", Status: types.TenantActive},
		{ID: "tenant-2", Name: "Globex", Subdomain: "globex-5678", Status: types.TenantActive},
	}

	tests := []struct {
		name           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name: "success",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().ListTenants(gomock.Any()).Return(tenants, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result []tenantResponse
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(result) != 2 {
					t.Errorf("expected 2 tenants, got %d", len(result))
				}
				if result[0].Subdomain != "acme-1234" {
					t.Errorf("expected subdomain acme-1234, got %s", result[0].Subdomain)
				}
			},
		},
		{
			name: "service error",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().ListTenants(gomock.Any()).Return(nil, errors.New("service error"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			api := NewAPI(mockService, mockTracer, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "tenant.API.listTenants").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockService, mockLogger)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/tenants", nil)
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

func TestAPI_GetTenant(t *testing.T) {
	tenant := &types.Tenant{
		ID:        "tenant-1",
		Name:      "Acme SAS",
		Subdomain: "acme-1234",
		Status:    types.TenantActive,
		Modules: []*types.TenantModule{
			{ID: "module-1", TenantID: "tenant-1", ModuleName: "payroll", Status: types.ModuleActive},
		},
	}

	tests := []struct {
		name           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name: "success",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().GetTenant(gomock.Any(), "tenant-1").Return(tenant, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().GetTenant(gomock.Any(), "tenant-1").Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service error",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().GetTenant(gomock.Any(), "tenant-1").Return(nil, errors.New("service error"))
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
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			api := NewAPI(mockService, mockTracer, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "tenant.API.getTenant").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockService, mockLogger)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/tenants/tenant-1", nil)
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
				var result tenantResponse
				if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(result.Modules) != 1 {
					t.Errorf("expected 1 module, got %d", len(result.Modules))
				}
			}
		})
	}
}
