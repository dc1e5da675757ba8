package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Statistics struct {
	TotalSaleAmount   decimal.Decimal `json:"totalSaleAmount"`
	TotalSoldItems    int             `json:"totalSoldItems"`
	TotalNotSoldItems int             `json:"totalNotSoldItems"`
}

type PriceRangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CombinedReport struct {
	Statistics Statistics        `json:"statistics"`
	BarChart   []PriceRangeCount `json:"barChart"`
	PieChart   []CategoryCount   `json:"pieChart"`
}

type SeedResult struct {
	Records    int       `json:"records"`
	ReplacedAt time.Time `json:"replacedAt"`
}
