package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- in-memory cart repository ----

type fakeCartRepo struct {
	carts []*models.Cart
	items []*models.CartItem
	// product snapshots joined into ListItems results
	products map[uuid.UUID]models.Product
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{products: make(map[uuid.UUID]models.Product)}
}

func (r *fakeCartRepo) FindCurrentByUser(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	var latest *models.Cart
	for _, cart := range r.carts {
		if cart.UserID != userID {
			continue
		}
		if latest == nil || cart.CreatedAt.After(latest.CreatedAt) {
			latest = cart
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *fakeCartRepo) Create(_ context.Context, cart *models.Cart) error {
	cart.ID = uuid.New()
	cart.CreatedAt = time.Now()
	r.carts = append(r.carts, cart)
	return nil
}

func (r *fakeCartRepo) UpsertItem(_ context.Context, item *models.CartItem) error {
	for _, existing := range r.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCartRepo) FindItem(_ context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	for _, item := range r.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) ListItems(_ context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range r.items {
		if item.CartID == cartID {
			joined := *item
			joined.Product = r.products[item.ProductID]
			out = append(out, joined)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	for _, item := range r.items {
		if item.ID == itemID {
			item.Quantity = quantity
		}
	}
	return nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeCartRepo) ClearItems(_ context.Context, cartID uuid.UUID) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.CartID != cartID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

// ---- in-memory product repository ----

type fakeProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug && p.IsActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) CreateBatch(_ context.Context, products []models.Product) error {
	for i := range products {
		p := products[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = &p
	}
	return nil
}

// ---- helpers ----

func testProduct(name string, priceCents int64) *models.Product {
	return &models.Product{
		ID:         uuid.New(),
		Name:       name,
		Slug:       name,
		PriceCents: priceCents,
		Currency:   "IDR",
		IsActive:   true,
	}
}

func newCartService(cartRepo *fakeCartRepo, productRepo *fakeProductRepo) services.CartService {
	return services.NewCartService(cartRepo, productRepo, zap.NewNop())
}

// ---- tests ----

func TestResolveCart_CreatesLazily(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newCartService(cartRepo, newFakeProductRepo())
	userID := uuid.New()

	cart, err := svc.ResolveCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)

	again, err := svc.ResolveCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID, "subsequent calls reuse the existing cart")
	assert.Len(t, cartRepo.carts, 1)
}

func TestResolveCart_RequiresIdentity(t *testing.T) {
	svc := newCartService(newFakeCartRepo(), newFakeProductRepo())

	_, err := svc.ResolveCart(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, services.ErrNotAuthenticated)
}

func TestAddItem_MergesDuplicateProduct(t *testing.T) {
	product := testProduct("course", 9900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[product.ID] = *product
	svc := newCartService(cartRepo, newFakeProductRepo(product))
	userID := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 1))
	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 2))

	items, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1, "one line per (cart, product) pair")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItem_UnknownOrInactiveProduct(t *testing.T) {
	inactive := testProduct("retired", 100)
	inactive.IsActive = false
	svc := newCartService(newFakeCartRepo(), newFakeProductRepo(inactive))
	userID := uuid.New()

	err := svc.AddItem(context.Background(), userID, uuid.New(), 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	err = svc.AddItem(context.Background(), userID, inactive.ID, 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestSetQuantity_ZeroOrNegativeDeletesLine(t *testing.T) {
	product := testProduct("course", 9900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[product.ID] = *product
	svc := newCartService(cartRepo, newFakeProductRepo(product))
	userID := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 2))
	items, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.SetQuantity(context.Background(), userID, items[0].ID, 0))

	items, err = svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetQuantity_PositiveReplacesQuantity(t *testing.T) {
	product := testProduct("course", 9900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[product.ID] = *product
	svc := newCartService(cartRepo, newFakeProductRepo(product))
	userID := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), userID, product.ID, 2))
	items, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, svc.SetQuantity(context.Background(), userID, items[0].ID, 7))

	items, err = svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestAddListRemove_RoundTrip(t *testing.T) {
	existing := testProduct("toolkit", 14900)
	added := testProduct("course", 9900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[existing.ID] = *existing
	cartRepo.products[added.ID] = *added
	svc := newCartService(cartRepo, newFakeProductRepo(existing, added))
	userID := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), userID, existing.ID, 1))
	before, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, svc.AddItem(context.Background(), userID, added.ID, 1))
	during, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, during, len(before)+1)

	var addedItemID uuid.UUID
	for _, item := range during {
		if item.ProductID == added.ID {
			addedItemID = item.ID
		}
	}
	require.NotEqual(t, uuid.Nil, addedItemID)

	require.NoError(t, svc.RemoveItem(context.Background(), userID, addedItemID))
	after, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "cart returns to the pre-add item set")
}

func TestClear_RemovesAllLines(t *testing.T) {
	a := testProduct("course", 9900)
	b := testProduct("toolkit", 14900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[a.ID] = *a
	cartRepo.products[b.ID] = *b
	svc := newCartService(cartRepo, newFakeProductRepo(a, b))
	userID := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), userID, a.ID, 1))
	require.NoError(t, svc.AddItem(context.Background(), userID, b.ID, 1))

	require.NoError(t, svc.Clear(context.Background(), userID))

	items, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveItem_OtherUsersLine(t *testing.T) {
	product := testProduct("course", 9900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[product.ID] = *product
	svc := newCartService(cartRepo, newFakeProductRepo(product))
	owner := uuid.New()
	intruder := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), owner, product.ID, 2))
	items, err := svc.ListItems(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 1)

	err = svc.RemoveItem(context.Background(), intruder, items[0].ID)
	assert.ErrorIs(t, err, services.ErrCartItemNotFound)

	items, err = svc.ListItems(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 1, "the owner's line survives")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSetQuantity_OtherUsersLine(t *testing.T) {
	product := testProduct("course", 9900)
	cartRepo := newFakeCartRepo()
	cartRepo.products[product.ID] = *product
	svc := newCartService(cartRepo, newFakeProductRepo(product))
	owner := uuid.New()
	intruder := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), owner, product.ID, 2))
	items, err := svc.ListItems(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 1)

	err = svc.SetQuantity(context.Background(), intruder, items[0].ID, 5)
	assert.ErrorIs(t, err, services.ErrCartItemNotFound)

	err = svc.SetQuantity(context.Background(), intruder, items[0].ID, 0)
	assert.ErrorIs(t, err, services.ErrCartItemNotFound, "the delete path checks ownership too")

	items, err = svc.ListItems(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItem_UnknownLine(t *testing.T) {
	svc := newCartService(newFakeCartRepo(), newFakeProductRepo())

	err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, services.ErrCartItemNotFound)
}
