package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sales_insights/internal/models"
	"sales_insights/internal/repositories/transactionstore"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type txOpt func(*models.Transaction)

func withText(title, description string) txOpt {
	return func(t *models.Transaction) { t.Title, t.Description = title, description }
}

func withYear(year int) txOpt {
	return func(t *models.Transaction) { t.DateOfSale.Year = year }
}

func tx(price string, sold bool, month time.Month, category string, opts ...txOpt) models.Transaction {
	t := models.Transaction{
		Title:      "item",
		Price:      dec(price),
		DateOfSale: models.NewSaleDate(2022, month, 15),
		Sold:       sold,
		Category:   category,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

func newStore(t *testing.T, records ...models.Transaction) *transactionstore.Store {
	t.Helper()
	s := transactionstore.New(nil)
	require.NoError(t, s.ReplaceAll(context.Background(), records))
	return s
}

// exampleStore holds T1, T2, T3 from the reference scenario.
func exampleStore(t *testing.T) *transactionstore.Store {
	return newStore(t,
		tx("50", true, time.January, "A"),
		tx("150", false, time.January, "B"),
		tx("100", true, time.February, "A"),
	)
}
