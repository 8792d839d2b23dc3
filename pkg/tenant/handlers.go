// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

// Package tenant exposes read-only views of provisioned tenants for the
// operations dashboard.
package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jegasolutions/provisioning-service/internal/logging"
	"github.com/jegasolutions/provisioning-service/internal/storage"
	"github.com/jegasolutions/provisioning-service/internal/tracing"
	"github.com/jegasolutions/provisioning-service/internal/types"
)

type API struct {
	service ServiceInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

type tenantResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Subdomain        string           `json:"subdomain"`
	OwnerEmail       string           `json:"owner_email"`
	Status           string           `json:"status"`
	DeploymentType   string           `json:"deployment_type"`
	PaymentReference string           `json:"payment_reference"`
	CreatedAt        time.Time        `json:"created_at"`
	Modules          []moduleResponse `json:"modules,omitempty"`
}

type moduleResponse struct {
	ModuleName  string     `json:"module_name"`
	Status      string     `json:"status"`
	PurchasedAt time.Time  `json:"purchased_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/tenants", a.listTenants)
	mux.Get("/api/v0/tenants/{id}", a.getTenant)
}

func (a *API) listTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listTenants")
	defer span.End()

	tenants, err := a.service.ListTenants(ctx)
	if err != nil {
		a.logger.Errorf("failed to list tenants: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	responses := make([]tenantResponse, 0, len(tenants))
	for _, t := range tenants {
		responses = append(responses, toResponse(t))
	}

	writeJSON(w, responses)
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.getTenant")
	defer span.End()

	id := chi.URLParam(r, "id")

	tenant, err := a.service.GetTenant(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Tenant not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to get tenant %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toResponse(tenant))
}

func toResponse(t *types.Tenant) tenantResponse {
	modules := make([]moduleResponse, 0, len(t.Modules))
	for _, m := range t.Modules {
		modules = append(modules, moduleResponse{
			ModuleName:  m.ModuleName,
			Status:      string(m.Status),
			PurchasedAt: m.PurchasedAt,
			ExpiresAt:   m.ExpiresAt,
		})
	}

	return tenantResponse{
		ID:               t.ID,
		Name:             t.Name,
		Subdomain:        t.Subdomain,
		OwnerEmail:       t.OwnerEmail,
		Status:           string(t.Status),
		DeploymentType:   string(t.DeploymentType),
		PaymentReference: t.PaymentReference,
		CreatedAt:        t.CreatedAt,
		Modules:          modules,
	}
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
