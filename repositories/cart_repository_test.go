package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepositoryAddMergesExistingLine(t *testing.T) {
	repo := NewCartRepository()

	first := repo.Add(1, 10, 2)
	second := repo.Add(1, 10, 3)

	assert.Equal(t, first.ID, second.ID, "merging must not mint a new line")
	assert.Equal(t, 5, second.Quantity)

	items := repo.Get(1)
	require.Len(t, items, 1, "one line per (user, product)")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartRepositoryAddSeparatesUsers(t *testing.T) {
	repo := NewCartRepository()

	repo.Add(1, 10, 1)
	repo.Add(2, 10, 4)

	require.Len(t, repo.Get(1), 1)
	require.Len(t, repo.Get(2), 1)
	assert.Equal(t, 4, repo.Get(2)[0].Quantity)
}

func TestCartRepositoryAddClampsQuantityToOne(t *testing.T) {
	repo := NewCartRepository()

	item := repo.Add(1, 10, 0)

	assert.Equal(t, 1, item.Quantity)
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.AddedAt.IsZero())
}

func TestCartRepositoryGetPreservesInsertionOrder(t *testing.T) {
	repo := NewCartRepository()

	repo.Add(1, 30, 1)
	repo.Add(1, 10, 1)
	repo.Add(1, 20, 1)
	// A merge must not reorder lines.
	repo.Add(1, 10, 1)

	items := repo.Get(1)
	require.Len(t, items, 3)
	assert.Equal(t, []int{30, 10, 20}, []int{items[0].ProductID, items[1].ProductID, items[2].ProductID})
}

func TestCartRepositoryUpdate(t *testing.T) {
	repo := NewCartRepository()
	repo.Add(1, 10, 2)

	updated, err := repo.Update(1, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = repo.Update(1, 99, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartRepositoryRemove(t *testing.T) {
	repo := NewCartRepository()
	repo.Add(1, 10, 2)
	repo.Add(1, 20, 1)

	removed, err := repo.Remove(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, removed.ProductID)

	items := repo.Get(1)
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].ProductID)

	_, err = repo.Remove(1, 10)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartRepositoryClearIsIdempotent(t *testing.T) {
	repo := NewCartRepository()
	repo.Add(1, 10, 2)
	repo.Add(1, 20, 1)
	repo.Add(2, 10, 1)

	repo.Clear(1)
	assert.Empty(t, repo.Get(1))
	assert.Len(t, repo.Get(2), 1, "other users' carts survive")

	repo.Clear(1)
	assert.Empty(t, repo.Get(1))
}

func TestCartRepositoryGetReturnsCopies(t *testing.T) {
	repo := NewCartRepository()
	repo.Add(1, 10, 2)

	items := repo.Get(1)
	items[0].Quantity = 99

	assert.Equal(t, 2, repo.Get(1)[0].Quantity, "callers must not mutate stored lines")
}
