package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewResetCode returns a one-time password recovery code.
func NewResetCode() string {
	return uuid.NewString()
}

// NewFactureNumero returns a unique invoice number.
func NewFactureNumero() string {
	return "FAC-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// NewSyncClientID returns the idempotency key attached to an outbox entry.
func NewSyncClientID() string {
	return uuid.NewString()
}
