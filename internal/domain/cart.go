package domain

import "github.com/shopspring/decimal"

// CartItem embeds the full car record as it was when added.
type CartItem struct {
	Car      Car `json:"car"`
	Quantity int `json:"quantity"`
}

func (it CartItem) Subtotal() decimal.Decimal {
	return it.Car.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Cart []CartItem

func (c Cart) Index(carID string) int {
	for i, it := range c {
		if it.Car.ID == carID {
			return i
		}
	}
	return -1
}

func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

func (c Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		total = total.Add(it.Subtotal())
	}
	return total
}
