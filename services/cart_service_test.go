package services

import (
	"context"
	"errors"
	"testing"

	"smartbite/models"
)

type fakeDishFinder struct {
	dishes map[string]*models.Dish
}

func (f *fakeDishFinder) FindByID(ctx context.Context, id string) (*models.Dish, error) {
	return f.dishes[id], nil
}

type fakeCartRepo struct {
	cartID    string
	created   bool
	items     map[string]*models.CartItem
	toppings  map[string][]string
	lines     []models.CartLine
	userCarts map[string]string
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		items:     map[string]*models.CartItem{},
		toppings:  map[string][]string{},
		userCarts: map[string]string{},
	}
}

func (f *fakeCartRepo) EnsureCart(ctx context.Context, userID string) (string, error) {
	if id, ok := f.userCarts[userID]; ok {
		return id, nil
	}
	f.created = true
	f.cartID = "cart-" + userID
	f.userCarts[userID] = f.cartID
	return f.cartID, nil
}

func (f *fakeCartRepo) InsertItem(ctx context.Context, item *models.CartItem, toppingIDs []string) error {
	cp := *item
	f.items[item.ID] = &cp
	f.toppings[item.ID] = toppingIDs
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, itemID string, quantity int) (bool, error) {
	item, ok := f.items[itemID]
	if !ok {
		return false, nil
	}
	item.Quantity = quantity
	return true, nil
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, itemID string) error {
	delete(f.items, itemID)
	delete(f.toppings, itemID)
	return nil
}

func (f *fakeCartRepo) ClearByUser(ctx context.Context, userID string) error {
	f.items = map[string]*models.CartItem{}
	f.toppings = map[string][]string{}
	return nil
}

func (f *fakeCartRepo) ItemsByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	return f.lines, nil
}

func availableDish(id string) *models.Dish {
	return &models.Dish{ID: id, Name: "Grilled Salmon", Price: 50000, Status: models.DishAvailable}
}

func TestAddItem_CreatesCartLazily(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewCartService(&fakeDishFinder{dishes: map[string]*models.Dish{"food-1": availableDish("food-1")}}, repo)

	itemID, err := svc.AddItem(context.Background(), "usr-1", "food-1", 2, []string{"top-extra-cheese"}, "no onions")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !repo.created {
		t.Error("expected cart to be created on first add")
	}
	item := repo.items[itemID]
	if item == nil {
		t.Fatal("item not inserted")
	}
	if item.Quantity != 2 || item.Note != "no onions" {
		t.Errorf("unexpected item: %+v", item)
	}
	if got := repo.toppings[itemID]; len(got) != 1 || got[0] != "top-extra-cheese" {
		t.Errorf("unexpected toppings: %v", got)
	}
}

func TestAddItem_QuantityFloor(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewCartService(&fakeDishFinder{dishes: map[string]*models.Dish{"food-1": availableDish("food-1")}}, repo)

	for _, q := range []int{0, -3} {
		itemID, err := svc.AddItem(context.Background(), "usr-1", "food-1", q, nil, "")
		if err != nil {
			t.Fatalf("AddItem(%d): %v", q, err)
		}
		if repo.items[itemID].Quantity != 1 {
			t.Errorf("quantity %d: expected floor to 1, got %d", q, repo.items[itemID].Quantity)
		}
	}
}

func TestAddItem_AvailabilityErrors(t *testing.T) {
	dishes := map[string]*models.Dish{
		"food-oos":  {ID: "food-oos", Status: models.DishOutOfStock},
		"food-gone": {ID: "food-gone", Status: models.DishUnavailable},
	}
	svc := NewCartService(&fakeDishFinder{dishes: dishes}, newFakeCartRepo())

	if _, err := svc.AddItem(context.Background(), "usr-1", "food-missing", 1, nil, ""); !errors.Is(err, ErrDishNotFound) {
		t.Errorf("missing dish: expected ErrDishNotFound, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), "usr-1", "food-oos", 1, nil, ""); !errors.Is(err, ErrDishOutOfStock) {
		t.Errorf("out of stock: expected ErrDishOutOfStock, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), "usr-1", "food-gone", 1, nil, ""); !errors.Is(err, ErrDishDiscontinued) {
		t.Errorf("unavailable: expected ErrDishDiscontinued, got %v", err)
	}
}

func TestUpdateQuantity_ZeroDeletes(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewCartService(&fakeDishFinder{dishes: map[string]*models.Dish{"food-1": availableDish("food-1")}}, repo)

	itemID, err := svc.AddItem(context.Background(), "usr-1", "food-1", 3, nil, "")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := svc.UpdateQuantity(context.Background(), itemID, 0); err != nil {
		t.Fatalf("UpdateQuantity(0): %v", err)
	}
	if _, ok := repo.items[itemID]; ok {
		t.Error("expected item removed when quantity drops to zero")
	}
}

func TestUpdateQuantity_MissingItem(t *testing.T) {
	svc := NewCartService(&fakeDishFinder{}, newFakeCartRepo())

	err := svc.UpdateQuantity(context.Background(), "ci-nope", 2)
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestSubtotal_ToppingsOncePerLine(t *testing.T) {
	lines := []models.CartLine{
		{
			CartItem:  models.CartItem{Quantity: 2},
			UnitPrice: 50000,
			Toppings:  []models.Topping{{ID: "top-extra-cheese", Price: 5000}},
		},
		{
			CartItem:  models.CartItem{Quantity: 1},
			UnitPrice: 30000,
		},
	}

	// toppings count once per line, not per unit: 2*50000 + 5000 + 30000
	if got := Subtotal(lines); got != 135000 {
		t.Errorf("Subtotal = %d, want 135000", got)
	}
}

func TestGetItems_EmptyCartIsValid(t *testing.T) {
	svc := NewCartService(&fakeDishFinder{}, newFakeCartRepo())

	lines, err := svc.GetItems(context.Background(), "usr-new")
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(lines))
	}
	if Subtotal(lines) != 0 {
		t.Error("empty cart subtotal must be zero")
	}
}
