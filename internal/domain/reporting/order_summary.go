package reporting

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderSummary is one aggregated row of the orders table: every order for
// Region folded into a total amount and a row count.
type OrderSummary struct {
	Region      string          `json:"region"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}

type orderSummaryJSON struct {
	Region      string      `json:"region"`
	TotalAmount json.Number `json:"totalAmount"`
	Count       int64       `json:"count"`
}

// MarshalJSON writes TotalAmount as a JSON number in its exact decimal
// form.
func (s OrderSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderSummaryJSON{
		Region:      s.Region,
		TotalAmount: json.Number(s.TotalAmount.String()),
		Count:       s.Count,
	})
}

func (s *OrderSummary) UnmarshalJSON(b []byte) error {
	var raw orderSummaryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	total := decimal.Zero
	if raw.TotalAmount != "" {
		d, err := decimal.NewFromString(raw.TotalAmount.String())
		if err != nil {
			return err
		}
		total = d
	}
	*s = OrderSummary{Region: raw.Region, TotalAmount: total, Count: raw.Count}
	return nil
}
