package transactionstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales_insights/internal/models"
	"sales_insights/pkg/utils"
)

func record(title string, price string, month time.Month) models.Transaction {
	return models.Transaction{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		DateOfSale: models.NewSaleDate(2022, month, 1),
		Category:   "misc",
	}
}

func matchAll(models.Transaction) bool { return true }

type fakePersister struct {
	replaceErr error
	loadErr    error
	stored     []models.Transaction
	replaced   int
}

func (f *fakePersister) ReplaceAll(_ context.Context, records []models.Transaction) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced++
	f.stored = append([]models.Transaction(nil), records...)
	return nil
}

func (f *fakePersister) LoadAll(context.Context) ([]models.Transaction, error) {
	return f.stored, f.loadErr
}

func TestReplaceAll_AssignsIDsInOrder(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.ReplaceAll(context.Background(), []models.Transaction{
		record("a", "1", time.January),
		record("b", "2", time.February),
		record("c", "3", time.March),
	}))

	got, err := s.Match(context.Background(), matchAll)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, int64(i+1), r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Title, got[1].Title, got[2].Title})
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.LoadedAt().IsZero())
}

func TestReplaceAll_ReplacesWholesale(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, []models.Transaction{record("old1", "1", 1), record("old2", "1", 1)}))
	require.NoError(t, s.ReplaceAll(ctx, []models.Transaction{record("new", "1", 1)}))

	got, err := s.Match(ctx, matchAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Title)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestReplaceAll_DoesNotAliasInput(t *testing.T) {
	s := New(nil)
	input := []models.Transaction{record("a", "1", 1)}
	require.NoError(t, s.ReplaceAll(context.Background(), input))

	input[0].Title = "mutated"
	got, err := s.Match(context.Background(), matchAll)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, int64(0), input[0].ID)
}

func TestReplaceAll_PersisterFailureKeepsPreviousSet(t *testing.T) {
	p := &fakePersister{}
	s := New(p)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, []models.Transaction{record("keep", "1", 1)}))

	p.replaceErr = errors.New("disk full")
	err := s.ReplaceAll(ctx, []models.Transaction{record("lost1", "1", 1), record("lost2", "1", 1)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindStorage))
	assert.ErrorContains(t, err, "disk full")

	got, err := s.Match(ctx, matchAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Title)
}

func TestReplaceAll_CancelledContext(t *testing.T) {
	p := &fakePersister{}
	s := New(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.ReplaceAll(ctx, []models.Transaction{record("a", "1", 1)})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindStorage))
	assert.Equal(t, 0, p.replaced)
	assert.Equal(t, 0, s.Len())
}

func TestLoad(t *testing.T) {
	p := &fakePersister{stored: []models.Transaction{record("a", "1", 1)}}
	p.stored[0].ID = 7
	s := New(p)
	require.NoError(t, s.Load(context.Background()))

	got, err := s.Match(context.Background(), matchAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)

	p.loadErr = errors.New("connection refused")
	err = s.Load(context.Background())
	assert.True(t, utils.IsKind(err, utils.KindStorage))
	assert.Equal(t, 1, s.Len())
}

func TestQuery_Pagination(t *testing.T) {
	s := New(nil)
	var records []models.Transaction
	for i := 0; i < 25; i++ {
		records = append(records, record(fmt.Sprintf("t%02d", i), "10", 1))
	}
	require.NoError(t, s.ReplaceAll(context.Background(), records))

	tests := []struct {
		page, perPage int
		wantLen       int
		wantFirst     string
	}{
		{1, 10, 10, "t00"},
		{2, 10, 10, "t10"},
		{3, 10, 5, "t20"},
		{4, 10, 0, ""},
		{1, 100, 25, "t00"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page%d_per%d", tt.page, tt.perPage), func(t *testing.T) {
			page, err := s.Query(context.Background(), matchAll, Pagination{Page: tt.page, PerPage: tt.perPage})
			require.NoError(t, err)
			assert.Equal(t, 25, page.Count)
			require.Len(t, page.Transactions, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page.Transactions[0].Title)
			}
		})
	}
}

func TestQuery_CountIsBeforePagination(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.ReplaceAll(context.Background(), []models.Transaction{
		record("a", "1", time.January),
		record("b", "1", time.February),
		record("c", "1", time.January),
		record("d", "1", time.January),
	}))

	january := func(r models.Transaction) bool { return r.DateOfSale.Month == time.January }
	page, err := s.Query(context.Background(), january, Pagination{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, "d", page.Transactions[0].Title)
}

func TestQuery_InvalidPagination(t *testing.T) {
	s := New(nil)
	_, err := s.Query(context.Background(), matchAll, Pagination{Page: 0, PerPage: 10})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
	_, err = s.Query(context.Background(), matchAll, Pagination{Page: 1, PerPage: 0})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestQuery_EmptyStoreReturnsEmptySlice(t *testing.T) {
	page, err := New(nil).Query(context.Background(), matchAll, Pagination{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Transactions)
	assert.Empty(t, page.Transactions)
	assert.Zero(t, page.Count)
}

func TestQuery_HugePageIsPastEnd(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.ReplaceAll(context.Background(), []models.Transaction{
		record("a", "1", 1), record("b", "2", 1), record("c", "3", 2),
	}))

	tests := []Pagination{
		{Page: 1<<58 + 1, PerPage: 64},
		{Page: math.MaxInt, PerPage: 1},
		{Page: math.MaxInt, PerPage: math.MaxInt},
		{Page: 2, PerPage: math.MaxInt},
	}
	for _, p := range tests {
		t.Run(fmt.Sprintf("page%d_per%d", p.Page, p.PerPage), func(t *testing.T) {
			page, err := s.Query(context.Background(), matchAll, p)
			require.NoError(t, err)
			assert.Equal(t, 3, page.Count)
			assert.NotNil(t, page.Transactions)
			assert.Empty(t, page.Transactions)
		})
	}
}

func TestPagination_Bounds(t *testing.T) {
	start, end := Pagination{Page: 3, PerPage: 10}.bounds()
	assert.Equal(t, 20, start)
	assert.Equal(t, 30, end)

	start, end = Pagination{Page: 1, PerPage: math.MaxInt}.bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, math.MaxInt, end)

	start, _ = Pagination{Page: 1<<58 + 1, PerPage: 64}.bounds()
	assert.Equal(t, math.MaxInt, start)
}

func TestMatch_ExpiredContextIsStorageError(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.ReplaceAll(context.Background(), []models.Transaction{record("a", "1", 1)}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := s.Match(ctx, matchAll)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindStorage))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = s.Query(ctx, matchAll, Pagination{Page: 1, PerPage: 1})
	assert.True(t, utils.IsKind(err, utils.KindStorage))
}

// Readers running during replacements must only ever see one complete set.
func TestConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	set := func(size int) []models.Transaction {
		out := make([]models.Transaction, size)
		for i := range out {
			out[i] = record(fmt.Sprintf("set%d", size), "1", 1)
		}
		return out
	}
	require.NoError(t, s.ReplaceAll(ctx, set(10)))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan error, 8)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got, err := s.Match(ctx, matchAll)
				if err != nil {
					errs <- err
					return
				}
				want := fmt.Sprintf("set%d", len(got))
				for _, r := range got {
					if r.Title != want {
						errs <- fmt.Errorf("mixed snapshot: %d records containing %q", len(got), r.Title)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, s.ReplaceAll(ctx, set(10+i%3*5)))
	}
	close(stop)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
