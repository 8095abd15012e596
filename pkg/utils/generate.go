package utils

import (
	"github.com/google/uuid"
)

// ==================== TRANSACTION ID ====================

// GenerateTransactionID returns a unique mock gateway transaction reference.
func GenerateTransactionID() string {
	return "mock_txn_" + uuid.NewString()
}
