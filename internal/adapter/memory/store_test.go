package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/store"
)

func newProduct(t *testing.T, s *Store, qty int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Rice 5kg", "bag", decimal.NewFromInt(300), decimal.NewFromInt(500), qty, 2)
	require.NoError(t, err)
	require.NoError(t, s.Repos().Products.Create(context.Background(), p))
	return p
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newProduct(t, s, 5)

	boom := errors.New("boom")
	err := s.WithinTransaction(ctx, func(ctx context.Context, r store.Repositories) error {
		taken, err := r.Products.DecrementStock(ctx, p.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, taken)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repos().Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestStore_TransactionCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newProduct(t, s, 5)

	err := s.WithinTransaction(ctx, func(ctx context.Context, r store.Repositories) error {
		_, err := r.Products.DecrementStock(ctx, p.ID, 2)
		return err
	})
	require.NoError(t, err)

	got, err := s.Repos().Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestProductRepo_DecrementStockClamps(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newProduct(t, s, 3)
	repo := s.Repos().Products

	taken, err := repo.DecrementStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, taken)

	taken, err = repo.DecrementStock(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, taken)

	_, err = repo.DecrementStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestProductRepo_ConcurrentDecrementNeverOversells(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newProduct(t, s, 10)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		taken int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithinTransaction(ctx, func(ctx context.Context, r store.Repositories) error {
				n, err := r.Products.DecrementStock(ctx, p.ID, 1)
				mu.Lock()
				taken += n
				mu.Unlock()
				return err
			})
		}()
	}
	wg.Wait()

	got, err := s.Repos().Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, 10, taken)
}

func TestProductRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Repos().Products

	mk := func(name string, qty int) {
		p, err := catalog.NewProduct(name, "piece", decimal.NewFromInt(1), decimal.NewFromInt(2), qty, 2)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, p))
	}
	mk("Sugar", 0)
	mk("Brown sugar", 20)
	mk("Milk", 1)

	all, total, err := repo.List(ctx, catalog.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "Milk", all[0].Name)

	inStock, total, err := repo.List(ctx, catalog.ProductFilter{Search: "SUGAR", InStockOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Brown sugar", inStock[0].Name)

	page, total, err := repo.List(ctx, catalog.ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Sugar", page[0].Name)

	low, err := repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, low)
}
