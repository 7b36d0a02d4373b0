package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), email, "hash")
	require.NoError(t, err)
	return u
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
}

func TestUsers(t *testing.T) {
	t.Parallel()
	s := openTempStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	u, err := s.CreateUser(ctx, "User@Example.com", "hash")
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.Equal(t, "User@Example.com", u.Email)
	assert.Equal(t, fixed, u.CreatedAt)

	_, err = s.CreateUser(ctx, "User@Example.com", "other")
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	got, err := s.GetUserByEmail(ctx, "User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = s.GetUserByID(ctx, u.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCategories(t *testing.T) {
	t.Parallel()
	s := openTempStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")

	list, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	books, err := s.CreateCategory(ctx, "Books", "Paper things", owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, books.CreatorID)

	_, err = s.CreateCategory(ctx, "Books", "Again", owner.ID)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateCategory(ctx, "Games", "Fun", owner.ID)
	require.NoError(t, err)

	list, err = s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Books", list[0].Name)
	assert.Equal(t, "Games", list[1].Name)

	byName, err := s.GetCategoryByName(ctx, "Books")
	require.NoError(t, err)
	assert.Equal(t, books.ID, byName.ID)

	_, err = s.GetCategoryByName(ctx, "books")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteCategory_CascadesToItems(t *testing.T) {
	t.Parallel()
	s := openTempStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")

	cat, err := s.CreateCategory(ctx, "Books", "Paper", owner.ID)
	require.NoError(t, err)
	keep, err := s.CreateCategory(ctx, "Games", "Fun", owner.ID)
	require.NoError(t, err)

	a, err := s.CreateItem(ctx, cat.ID, owner.ID, "Novel", "Long")
	require.NoError(t, err)
	b, err := s.CreateItem(ctx, cat.ID, other.ID, "Comic", "Short")
	require.NoError(t, err)
	c, err := s.CreateItem(ctx, keep.ID, owner.ID, "Chess", "Board")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	for _, id := range []int64{a.ID, b.ID} {
		_, err := s.GetItemByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}
	_, err = s.GetItemByID(ctx, c.ID)
	assert.NoError(t, err)

	_, err = s.GetCategoryByID(ctx, cat.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), storage.ErrNotFound)
}

func TestItems(t *testing.T) {
	t.Parallel()
	s := openTempStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	cat, err := s.CreateCategory(ctx, "Books", "Paper", owner.ID)
	require.NoError(t, err)

	item, err := s.CreateItem(ctx, cat.ID, owner.ID, "Novel", "Long")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, item.CategoryID)

	_, err = s.CreateItem(ctx, cat.ID, owner.ID, "Novel", "Duplicate")
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateItem(ctx, cat.ID+50, owner.ID, "Orphan", "No category")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	byName, err := s.GetItemByName(ctx, "Novel")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byName.ID)

	desc := "Longer"
	updated, err := s.UpdateItem(ctx, item.ID, models.ItemPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Novel", updated.Name)
	assert.Equal(t, "Longer", updated.Description)

	name := "Epic"
	updated, err = s.UpdateItem(ctx, item.ID, models.ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Epic", updated.Name)
	assert.Equal(t, "Longer", updated.Description)

	unchanged, err := s.UpdateItem(ctx, item.ID, models.ItemPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Epic", unchanged.Name)

	_, err = s.UpdateItem(ctx, item.ID+99, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	second, err := s.CreateItem(ctx, cat.ID, owner.ID, "Poem", "Short")
	require.NoError(t, err)
	_, err = s.UpdateItem(ctx, second.ID, models.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	require.NoError(t, s.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, s.DeleteItem(ctx, item.ID), storage.ErrNotFound)
}

func TestListItemsByCategory_Pagination(t *testing.T) {
	t.Parallel()
	s := openTempStore(t)
	ctx := context.Background()
	owner := seedUser(t, s, "owner@example.com")
	cat, err := s.CreateCategory(ctx, "Books", "Paper", owner.ID)
	require.NoError(t, err)
	other, err := s.CreateCategory(ctx, "Games", "Fun", owner.ID)
	require.NoError(t, err)

	const n = 7
	for i := 0; i < n; i++ {
		_, err := s.CreateItem(ctx, cat.ID, owner.ID, fmt.Sprintf("Book %d", i), "d")
		require.NoError(t, err)
	}
	_, err = s.CreateItem(ctx, other.ID, owner.ID, "Chess", "d")
	require.NoError(t, err)

	for _, tc := range []struct{ page, perPage, want int }{
		{1, 3, 3}, {2, 3, 3}, {3, 3, 1}, {4, 3, 0}, {1, 20, 7}, {7, 1, 1}, {8, 1, 0},
	} {
		items, total, err := s.ListItemsByCategory(ctx, cat.ID, (tc.page-1)*tc.perPage, tc.perPage)
		require.NoError(t, err)
		assert.Equal(t, int64(n), total)
		assert.Len(t, items, tc.want, "page=%d per_page=%d", tc.page, tc.perPage)
		assert.NotNil(t, items)
	}

	items, _, err := s.ListItemsByCategory(ctx, cat.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "Book 0", items[0].Name)
	assert.Equal(t, "Book 1", items[1].Name)
}
