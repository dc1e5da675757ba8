package transactionstore

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"sales_insights/internal/models"
	"sales_insights/pkg/utils"
)

// Predicate reports whether a record belongs to a result set.
type Predicate func(models.Transaction) bool

type Pagination struct {
	Page    int
	PerPage int
}

// bounds returns the half-open match range [start, end) of the page. Pages
// too far out to address saturate at math.MaxInt and come back empty.
func (p Pagination) bounds() (start, end int) {
	if p.Page-1 > (math.MaxInt-p.PerPage)/p.PerPage {
		return math.MaxInt, math.MaxInt
	}
	start = (p.Page - 1) * p.PerPage
	return start, start + p.PerPage
}

type Page struct {
	Transactions []models.Transaction
	Count        int
}

// Persister durably stores the record set. ReplaceAll must apply all records
// or none of them.
type Persister interface {
	ReplaceAll(ctx context.Context, records []models.Transaction) error
	LoadAll(ctx context.Context) ([]models.Transaction, error)
}

type snapshot struct {
	records  []models.Transaction
	loadedAt time.Time
}

// Store serves reads from an immutable snapshot that is swapped as a whole on
// every ReplaceAll. Readers holding the old snapshot keep a consistent view.
type Store struct {
	writeMu   sync.Mutex
	current   atomic.Pointer[snapshot]
	persister Persister
	now       func() time.Time
}

// New returns an empty store. persister may be nil for a memory-only store.
func New(persister Persister) *Store {
	s := &Store{persister: persister, now: time.Now}
	s.current.Store(&snapshot{})
	return s
}

// Load replaces the snapshot with the persister's contents.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	records, err := s.persister.LoadAll(ctx)
	if err != nil {
		return utils.StorageError(err, "failed to load transactions")
	}
	s.current.Store(&snapshot{records: records, loadedAt: s.now()})
	return nil
}

// ReplaceAll assigns ids in input order, persists the set and swaps it in.
// On any failure the previous set stays visible.
func (s *Store) ReplaceAll(ctx context.Context, records []models.Transaction) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return utils.StorageError(err, "replace cancelled")
	}

	next := make([]models.Transaction, len(records))
	for i, r := range records {
		r.ID = int64(i + 1)
		next[i] = r
	}

	if s.persister != nil {
		if err := s.persister.ReplaceAll(ctx, next); err != nil {
			return utils.StorageError(err, "failed to replace transactions")
		}
	}

	s.current.Store(&snapshot{records: next, loadedAt: s.now()})
	return nil
}

// Query returns the requested page of matches in insertion order and the
// total number of matches.
func (s *Store) Query(ctx context.Context, pred Predicate, page Pagination) (Page, error) {
	if page.Page < 1 || page.PerPage < 1 {
		return Page{}, utils.ValidationError("page and perPage must be at least 1")
	}

	snap := s.current.Load()
	start, end := page.bounds()
	result := Page{Transactions: []models.Transaction{}}

	for i, r := range snap.records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Page{}, utils.StorageError(err, "query cancelled")
			}
		}
		if !pred(r) {
			continue
		}
		if result.Count >= start && result.Count < end {
			result.Transactions = append(result.Transactions, r)
		}
		result.Count++
	}

	if err := ctx.Err(); err != nil {
		return Page{}, utils.StorageError(err, "query cancelled")
	}
	return result, nil
}

// Match returns every record satisfying pred in insertion order.
func (s *Store) Match(ctx context.Context, pred Predicate) ([]models.Transaction, error) {
	snap := s.current.Load()
	matched := make([]models.Transaction, 0)

	for i, r := range snap.records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, utils.StorageError(err, "query cancelled")
			}
		}
		if pred(r) {
			matched = append(matched, r)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, utils.StorageError(err, "query cancelled")
	}
	return matched, nil
}

func (s *Store) Len() int {
	return len(s.current.Load().records)
}

// LoadedAt is the time the current snapshot was installed, zero if never.
func (s *Store) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}
