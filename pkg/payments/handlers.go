// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

// Package payments exposes read-only lookups on the payment ledger so
// operators and the checkout frontend can poll transaction state.
package payments

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
	storage StorageInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

type paymentResponse struct {
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewAPI(s StorageInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		storage: s,
		tracer:  tracer,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/payments/{reference}", a.getPayment)
	mux.Get("/api/v0/payments", a.listPayments)
}

func (a *API) getPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "payments.API.getPayment")
	defer span.End()

	reference := chi.URLParam(r, "reference")

	payment, err := a.storage.GetPaymentByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Payment not found", http.StatusNotFound)
			return
		}
		a.logger.Errorf("failed to get payment %s: %v", reference, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toResponse(payment))
}

func (a *API) listPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "payments.API.listPayments")
	defer span.End()

	customer := r.URL.Query().Get("customer")
	if customer == "" {
		http.Error(w, "Missing customer query parameter", http.StatusBadRequest)
		return
	}

	list, err := a.storage.ListPaymentsByCustomer(ctx, customer)
	if err != nil {
		a.logger.Errorf("failed to list payments for %s: %v", customer, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	responses := make([]paymentResponse, 0, len(list))
	for _, p := range list {
		responses = append(responses, toResponse(p))
	}

	writeJSON(w, responses)
}

func toResponse(p *types.Payment) paymentResponse {
	return paymentResponse{
		Reference:     p.Reference,
		Status:        string(p.Status),
		Amount:        p.Amount(),
		CustomerEmail: p.CustomerEmail,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
