// Package service implements Tallyup's application services on top of the
// storage layer and the ledger engine. Validation happens here, before any
// write reaches the store.
package service

import "errors"

// ErrInvalidInput marks request-level validation failures (empty names,
// non-member participants, payer outside the group). Handlers map it to a
// 400 response. Ledger validation failures carry their own type,
// ledger.ValidationError, and block writes the same way.
var ErrInvalidInput = errors.New("invalid input")

// ErrPaymentImmutable is returned when an edit targets a payment.
// Payments can only be deleted, never edited.
var ErrPaymentImmutable = errors.New("payments cannot be edited, only deleted")
