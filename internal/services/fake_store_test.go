package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"CATALOG_BACK-END/internal/models"
	"CATALOG_BACK-END/internal/storage"
)

// fakeStore is an in-memory storage.Store that records every call.
type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*models.User
	categories map[int64]*models.Category
	items      map[int64]*models.Item
	calls      []string

	// blindNameLookups makes the by-name lookups miss, as if a concurrent
	// insert landed between the pre-check and the write.
	blindNameLookups bool
	// missLookups makes only the next n by-name lookups miss.
	missLookups int
	// failWith, when set, is returned by every call.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[int64]*models.User{},
		categories: map[int64]*models.Category{},
		items:      map[int64]*models.Item{},
	}
}

func (f *fakeStore) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failWith
}

func (f *fakeStore) blind() bool {
	if f.missLookups > 0 {
		f.missLookups--
		return true
	}
	return f.blindNameLookups
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) CreateUser(_ context.Context, email, hash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateUser"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, storage.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	u := &models.User{ID: f.id(), Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetUserByID"); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetUserByEmail"); err != nil {
		return nil, err
	}
	if f.blind() {
		return nil, storage.ErrNotFound
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) ListCategories(context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListCategories"); err != nil {
		return nil, err
	}
	out := []models.Category{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetCategoryByID"); err != nil {
		return nil, err
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetCategoryByName(_ context.Context, name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetCategoryByName"); err != nil {
		return nil, err
	}
	if f.blind() {
		return nil, storage.ErrNotFound
	}
	for _, c := range f.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CreateCategory(_ context.Context, name, description string, creatorID int64) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateCategory"); err != nil {
		return nil, err
	}
	for _, c := range f.categories {
		if c.Name == name {
			return nil, storage.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	c := &models.Category{ID: f.id(), Name: name, Description: description, CreatorID: creatorID, CreatedAt: now, UpdatedAt: now}
	f.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteCategory"); err != nil {
		return err
	}
	if _, ok := f.categories[id]; !ok {
		return storage.ErrNotFound
	}
	for itemID, it := range f.items {
		if it.CategoryID == id {
			delete(f.items, itemID)
		}
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeStore) ListItemsByCategory(_ context.Context, categoryID int64, offset, limit int) ([]models.Item, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListItemsByCategory"); err != nil {
		return nil, 0, err
	}
	all := []models.Item{}
	for _, it := range f.items {
		if it.CategoryID == categoryID {
			all = append(all, *it)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Item{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeStore) GetItemByID(_ context.Context, id int64) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetItemByID"); err != nil {
		return nil, err
	}
	it, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeStore) GetItemByName(_ context.Context, name string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetItemByName"); err != nil {
		return nil, err
	}
	if f.blind() {
		return nil, storage.ErrNotFound
	}
	for _, it := range f.items {
		if it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CreateItem(_ context.Context, categoryID, creatorID int64, name, description string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateItem"); err != nil {
		return nil, err
	}
	if _, ok := f.categories[categoryID]; !ok {
		return nil, storage.ErrNotFound
	}
	for _, it := range f.items {
		if it.Name == name {
			return nil, storage.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	it := &models.Item{ID: f.id(), Name: name, Description: description, CategoryID: categoryID, CreatorID: creatorID, CreatedAt: now, UpdatedAt: now}
	f.items[it.ID] = it
	cp := *it
	return &cp, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateItem"); err != nil {
		return nil, err
	}
	it, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if patch.Name != nil {
		for _, other := range f.items {
			if other.ID != id && other.Name == *patch.Name {
				return nil, storage.ErrAlreadyExists
			}
		}
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	it.UpdatedAt = time.Now().UTC()
	cp := *it
	return &cp, nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteItem"); err != nil {
		return err
	}
	if _, ok := f.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) Ping(context.Context) error { return f.failWith }
func (f *fakeStore) Close() error               { return nil }

var _ storage.Store = (*fakeStore)(nil)
