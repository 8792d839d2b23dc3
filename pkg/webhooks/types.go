// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// Event is the payment gateway's webhook envelope.
type Event struct {
	Event       string      `json:"event"`
	Data        Transaction `json:"data" validate:"required"`
	Environment string      `json:"environment"`
	Timestamp   int64       `json:"timestamp"`
	SentAt      string      `json:"sentAt"`
}

// Transaction carries the gateway's view of one transaction attempt.
type Transaction struct {
	ID            string   `json:"id"`
	Reference     string   `json:"reference" validate:"required"`
	Status        string   `json:"status" validate:"required"`
	AmountInCents int64    `json:"amountInCents"`
	Currency      string   `json:"currency"`
	Customer      Customer `json:"customer"`
	PaymentMethod string   `json:"paymentMethod"`
	CreatedAt     string   `json:"createdAt"`
	FinalizedAt   string   `json:"finalizedAt"`
}

type Customer struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}
