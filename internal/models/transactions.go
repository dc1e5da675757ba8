package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// prices and totals are rendered as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Transaction struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	DateOfSale  SaleDate        `json:"dateOfSale" db:"date_of_sale"`
	Sold        bool            `json:"sold" db:"sold"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image,omitempty" db:"image"`
}

// PriceText is the canonical decimal rendering of Price used for text search.
func (t Transaction) PriceText() string {
	return t.Price.String()
}

// SeedTransaction is one element of the seed provider's JSON array.
type SeedTransaction struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Sold        bool            `json:"sold"`
	DateOfSale  string          `json:"dateOfSale"`
}

type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Count        int           `json:"count"`
}
