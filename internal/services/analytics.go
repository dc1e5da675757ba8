package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"sales_insights/internal/models"
	"sales_insights/internal/repositories/transactionstore"
	"sales_insights/pkg/utils"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// TransactionReader is the read side of the record store.
type TransactionReader interface {
	Query(ctx context.Context, pred transactionstore.Predicate, page transactionstore.Pagination) (transactionstore.Page, error)
	Match(ctx context.Context, pred transactionstore.Predicate) ([]models.Transaction, error)
}

type ListParams struct {
	FilterParams
	Page    int
	PerPage int
}

type priceRange struct {
	label string
	min   decimal.Decimal
	max   decimal.Decimal
	open  bool // no upper bound
}

// The ranges are not contiguous: prices of exactly 100, 200, ... 900 (and
// anything between 100 and 101 and so on) fall in no range.
var priceRanges = []priceRange{
	{label: "0-100", min: decimal.NewFromInt(0), max: decimal.NewFromInt(100)},
	{label: "101-200", min: decimal.NewFromInt(101), max: decimal.NewFromInt(200)},
	{label: "201-300", min: decimal.NewFromInt(201), max: decimal.NewFromInt(300)},
	{label: "301-400", min: decimal.NewFromInt(301), max: decimal.NewFromInt(400)},
	{label: "401-500", min: decimal.NewFromInt(401), max: decimal.NewFromInt(500)},
	{label: "501-600", min: decimal.NewFromInt(501), max: decimal.NewFromInt(600)},
	{label: "601-700", min: decimal.NewFromInt(601), max: decimal.NewFromInt(700)},
	{label: "701-800", min: decimal.NewFromInt(701), max: decimal.NewFromInt(800)},
	{label: "801-900", min: decimal.NewFromInt(801), max: decimal.NewFromInt(900)},
	{label: "901-above", min: decimal.NewFromInt(901), open: true},
}

func (r priceRange) contains(price decimal.Decimal) bool {
	if price.LessThan(r.min) {
		return false
	}
	return r.open || price.LessThan(r.max)
}

// priceRangeIndex returns the index of the range holding price, or -1.
func priceRangeIndex(price decimal.Decimal) int {
	for i, r := range priceRanges {
		if r.contains(price) {
			return i
		}
	}
	return -1
}

// AnalyticsService answers listing and aggregate queries over the store.
type AnalyticsService struct {
	store        TransactionReader
	storeTimeout time.Duration
}

// NewAnalyticsService bounds every store call by storeTimeout; zero disables
// the bound.
func NewAnalyticsService(store TransactionReader, storeTimeout time.Duration) *AnalyticsService {
	return &AnalyticsService{store: store, storeTimeout: storeTimeout}
}

func (s *AnalyticsService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// ListTransactions returns one page of records matching search and month
// together with the total match count.
func (s *AnalyticsService) ListTransactions(ctx context.Context, params ListParams) (models.TransactionList, error) {
	if params.Page < 1 {
		return models.TransactionList{}, utils.ValidationError("page must be at least 1")
	}
	if params.PerPage < 1 || params.PerPage > MaxPerPage {
		return models.TransactionList{}, utils.ValidationError("perPage must be between 1 and %d", MaxPerPage)
	}

	pred, err := BuildPredicate(params.FilterParams)
	if err != nil {
		return models.TransactionList{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	page, err := s.store.Query(ctx, pred, transactionstore.Pagination{Page: params.Page, PerPage: params.PerPage})
	if err != nil {
		return models.TransactionList{}, err
	}
	return models.TransactionList{Transactions: page.Transactions, Count: page.Count}, nil
}

func (s *AnalyticsService) matchMonth(ctx context.Context, month time.Month) ([]models.Transaction, error) {
	pred, err := BuildPredicate(FilterParams{Month: month})
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.store.Match(ctx, pred)
}

// Statistics sums the price of every matched record, sold or not, and counts
// sold and unsold records.
func (s *AnalyticsService) Statistics(ctx context.Context, month time.Month) (models.Statistics, error) {
	matched, err := s.matchMonth(ctx, month)
	if err != nil {
		return models.Statistics{}, err
	}

	stats := models.Statistics{TotalSaleAmount: decimal.Zero}
	for _, t := range matched {
		stats.TotalSaleAmount = stats.TotalSaleAmount.Add(t.Price)
		if t.Sold {
			stats.TotalSoldItems++
		} else {
			stats.TotalNotSoldItems++
		}
	}
	return stats, nil
}

// PriceHistogram counts matched records per fixed price range in one pass.
func (s *AnalyticsService) PriceHistogram(ctx context.Context, month time.Month) ([]models.PriceRangeCount, error) {
	matched, err := s.matchMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	counts := make([]models.PriceRangeCount, len(priceRanges))
	for i, r := range priceRanges {
		counts[i].Range = r.label
	}
	for _, t := range matched {
		if i := priceRangeIndex(t.Price); i >= 0 {
			counts[i].Count++
		}
	}
	return counts, nil
}

// CategoryDistribution counts matched records per category in first-seen
// order.
func (s *AnalyticsService) CategoryDistribution(ctx context.Context, month time.Month) ([]models.CategoryCount, error) {
	matched, err := s.matchMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	counts := []models.CategoryCount{}
	index := make(map[string]int)
	for _, t := range matched {
		i, ok := index[t.Category]
		if !ok {
			i = len(counts)
			index[t.Category] = i
			counts = append(counts, models.CategoryCount{Category: t.Category})
		}
		counts[i].Count++
	}
	return counts, nil
}

// Combined runs the three aggregations concurrently for one month. The first
// failure cancels the rest and no partial report is returned.
func (s *AnalyticsService) Combined(ctx context.Context, month time.Month) (models.CombinedReport, error) {
	if err := validateMonth(month); err != nil {
		return models.CombinedReport{}, err
	}

	var report models.CombinedReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.Statistics(gctx, month)
		report.Statistics = stats
		return err
	})
	g.Go(func() error {
		bars, err := s.PriceHistogram(gctx, month)
		report.BarChart = bars
		return err
	})
	g.Go(func() error {
		pie, err := s.CategoryDistribution(gctx, month)
		report.PieChart = pie
		return err
	})

	if err := g.Wait(); err != nil {
		return models.CombinedReport{}, err
	}
	return report, nil
}
