package reporting

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits stored for an amount.
const AmountScale int32 = 2

// Order is one row of the orders table. The table is owned by the systems
// that take orders; this service only reads it. The model exists for local
// seeding and tests.
type Order struct {
	ID     uint            `gorm:"primaryKey"`
	Region string          `gorm:"size:64;index"`
	Amount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}
