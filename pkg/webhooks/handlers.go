// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jegasolutions/provisioning-service/internal/logging"
)

type API struct {
	service  ServiceInterface
	verifier VerifierInterface
	validate *validator.Validate

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, verifier VerifierInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		verifier: verifier,
		validate: validator.New(),
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/payments/webhook", a.paymentEvent)
}

// paymentEvent verifies the gateway signature over the raw body before the
// payload is decoded or trusted in any way. Responses carry generic
// messages only; diagnostic detail goes to the logs.
func (a *API) paymentEvent(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		a.logger.Errorf("failed to read webhook body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		http.Error(w, "Missing "+SignatureHeader+" header", http.StatusBadRequest)
		return
	}

	if !a.verifier.Verify(rawBody, signature) {
		a.logger.Security().SignatureRejected(r.RemoteAddr)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	var event Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		a.logger.Errorf("failed to decode webhook payload: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.validate.Struct(&event); err != nil {
		a.logger.Errorf("webhook payload failed validation: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.service.HandlePaymentEvent(r.Context(), &event); err != nil {
		a.logger.Errorf("failed to process webhook for reference %s: %v", event.Data.Reference, err)
		http.Error(w, "Error processing webhook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Webhook processed successfully"})
}
