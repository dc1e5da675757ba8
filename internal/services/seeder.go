package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sales_insights/internal/models"
	"sales_insights/pkg/utils"
)

type SeedFetcher interface {
	Fetch(ctx context.Context) ([]models.SeedTransaction, error)
	Source() string
}

type TransactionReplacer interface {
	ReplaceAll(ctx context.Context, records []models.Transaction) error
}

// ImportEvent describes a completed dataset replacement.
type ImportEvent struct {
	Reference  string    `json:"reference"`
	Source     string    `json:"source"`
	Records    int       `json:"records"`
	ReplacedAt time.Time `json:"replacedAt"`
}

type ImportPublisher interface {
	PublishDatasetReplaced(ctx context.Context, event ImportEvent) error
}

// Seeder replaces the record store with the provider's dataset.
type Seeder struct {
	fetcher   SeedFetcher
	store     TransactionReplacer
	publisher ImportPublisher
	now       func() time.Time
}

// NewSeeder wires a seeder; publisher may be nil.
func NewSeeder(fetcher SeedFetcher, store TransactionReplacer, publisher ImportPublisher) *Seeder {
	return &Seeder{fetcher: fetcher, store: store, publisher: publisher, now: time.Now}
}

func (s *Seeder) Source() string {
	return s.fetcher.Source()
}

// Initialize fetches, converts and atomically installs the dataset. A fetch or
// conversion failure leaves the store untouched.
func (s *Seeder) Initialize(ctx context.Context) (models.SeedResult, error) {
	reference := newImportReference(s.now())
	log := utils.Logger.WithFields(logrus.Fields{"reference": reference, "source": s.fetcher.Source()})

	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return models.SeedResult{}, err
	}

	records, err := ConvertSeedRecords(raw)
	if err != nil {
		return models.SeedResult{}, err
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return models.SeedResult{}, err
	}

	result := models.SeedResult{Records: len(records), ReplacedAt: s.now().UTC()}
	log.WithField("records", result.Records).Info("Transactions replaced from seed provider")

	if s.publisher != nil {
		event := ImportEvent{
			Reference:  reference,
			Source:     s.fetcher.Source(),
			Records:    result.Records,
			ReplacedAt: result.ReplacedAt,
		}
		if err := s.publisher.PublishDatasetReplaced(ctx, event); err != nil {
			// the import itself succeeded
			log.WithError(err).Error("Failed to publish dataset replaced event")
		}
	}
	return result, nil
}

// Prices are stored as DECIMAL(14,4).
const priceScale = 4

var priceLimit = decimal.New(1, 14-priceScale)

// ConvertSeedRecords checks the record invariants and converts the provider's
// records. One bad record rejects the whole batch.
func ConvertSeedRecords(raw []models.SeedTransaction) ([]models.Transaction, error) {
	records := make([]models.Transaction, 0, len(raw))
	for i, r := range raw {
		if r.Price.IsNegative() {
			return nil, utils.SeedFetchError(fmt.Errorf("record %d: negative price %s", i, r.Price), "seed provider returned invalid data")
		}
		if !r.Price.Equal(r.Price.Truncate(priceScale)) || r.Price.GreaterThanOrEqual(priceLimit) {
			return nil, utils.SeedFetchError(fmt.Errorf("record %d: price %s does not fit DECIMAL(14,4)", i, r.Price), "seed provider returned invalid data")
		}
		category := strings.TrimSpace(r.Category)
		if category == "" {
			return nil, utils.SeedFetchError(fmt.Errorf("record %d: empty category", i), "seed provider returned invalid data")
		}
		date, err := models.ParseSaleDate(r.DateOfSale)
		if err != nil || !date.Valid() {
			return nil, utils.SeedFetchError(fmt.Errorf("record %d: bad dateOfSale %q", i, r.DateOfSale), "seed provider returned invalid data")
		}

		records = append(records, models.Transaction{
			Title:       r.Title,
			Description: r.Description,
			Price:       r.Price,
			DateOfSale:  date,
			Sold:        r.Sold,
			Category:    category,
			Image:       r.Image,
		})
	}
	return records, nil
}
