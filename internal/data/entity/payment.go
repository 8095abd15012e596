package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

// Mock payments are only ever recorded as successful.
const PaymentStatusSuccess PaymentStatus = "success"

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
)

type Payment struct {
	ID              int64           `db:"id"`
	BookingID       int64           `db:"booking_id"`
	PaymentMethod   PaymentMethod   `db:"payment_method"`
	CardNumberLast4 string          `db:"card_number_last4"`
	Amount          decimal.Decimal `db:"amount"`
	Status          PaymentStatus   `db:"status"`
	TransactionID   string          `db:"transaction_id"`
	PaymentTime     time.Time       `db:"payment_time"`
}
