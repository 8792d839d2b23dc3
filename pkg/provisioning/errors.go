// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"fmt"
)

// ValidationError marks a payment whose reference cannot be provisioned
// from. The payment stays recorded; an operator can fix the reference and
// re-trigger. Non-fatal to the webhook request.
type ValidationError struct {
	Reference string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payment reference %q: %s", e.Reference, e.Reason)
}

// PersistenceError marks a transaction failure after which no partial state
// remains. Safe to retry once the underlying condition clears.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("provisioning transaction failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
