package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartbite/models"
)

type fakeOrderRepo struct {
	cartID string
	lines  []models.CartLine

	order    *models.Order
	items    []models.OrderItem
	toppings []models.OrderItemTopping
	payment  *models.Payment

	cartCleared bool
	status      map[string]int
}

func newFakeOrderRepo(lines []models.CartLine) *fakeOrderRepo {
	cartID := ""
	if len(lines) > 0 {
		cartID = "cart-usr-1"
	}
	return &fakeOrderRepo{cartID: cartID, lines: lines, status: map[string]int{}}
}

func (f *fakeOrderRepo) CartSnapshot(ctx context.Context, userID string) (string, []models.CartLine, error) {
	return f.cartID, f.lines, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order, items []models.OrderItem, toppings []models.OrderItemTopping, payment *models.Payment, cartID string) error {
	f.order = order
	f.items = items
	f.toppings = toppings
	f.payment = payment
	f.cartCleared = true
	f.lines = nil
	f.status[order.ID] = order.Status
	return nil
}

func (f *fakeOrderRepo) Status(ctx context.Context, orderID string) (int, error) {
	code, ok := f.status[orderID]
	if !ok {
		return 0, ErrOrderNotFound
	}
	return code, nil
}

func (f *fakeOrderRepo) UpdateStatusGuard(ctx context.Context, orderID string, from, to int) (int64, error) {
	if f.status[orderID] != from {
		return 0, nil
	}
	f.status[orderID] = to
	return 1, nil
}

func checkoutLines() []models.CartLine {
	return []models.CartLine{
		{
			CartItem:  models.CartItem{ID: "ci-1", FoodID: "food-salmon", Quantity: 2},
			UnitPrice: 50000,
			Toppings:  []models.Topping{{ID: "top-extra-cheese", Price: 5000}},
		},
		{
			CartItem:  models.CartItem{ID: "ci-2", FoodID: "food-soup", Quantity: 1},
			UnitPrice: 5000,
		},
	}
}

func TestComputeFoodAmount(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{120000, 105000},
		{100000, 85000},
		{15001, 1},
		{15000, 15000},
		{10000, 10000},
		{0, 0},
	}
	for _, c := range cases {
		if got := ComputeFoodAmount(c.total); got != c.want {
			t.Errorf("ComputeFoodAmount(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	repo := newFakeOrderRepo(nil)
	svc := NewOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "cash")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if repo.order != nil || repo.payment != nil {
		t.Error("no rows may be written for an empty cart")
	}
}

func TestPlaceOrder_SnapshotsAndConsumesCart(t *testing.T) {
	repo := newFakeOrderRepo(checkoutLines())
	svc := NewOrderService(repo)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }

	// 2*50000 + 5000 topping + 5000 = 105000 food, + 15000 shipping
	orderID, err := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "card")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if repo.order.ID != orderID {
		t.Errorf("returned id %q does not match stored order %q", orderID, repo.order.ID)
	}
	if repo.order.FoodAmount != 105000 {
		t.Errorf("FoodAmount = %d, want 105000", repo.order.FoodAmount)
	}
	if repo.order.ShippingFee != ShippingFee {
		t.Errorf("ShippingFee = %d, want %d", repo.order.ShippingFee, ShippingFee)
	}
	if repo.order.Status != models.StatusPending {
		t.Errorf("new order status = %d, want pending", repo.order.Status)
	}

	if len(repo.items) != 2 {
		t.Fatalf("expected 2 item snapshots, got %d", len(repo.items))
	}
	if repo.items[0].UnitPrice != 50000 || repo.items[1].UnitPrice != 5000 {
		t.Errorf("unit prices not snapshotted: %+v", repo.items)
	}
	if len(repo.toppings) != 1 || repo.toppings[0].Price != 5000 {
		t.Errorf("topping snapshot wrong: %+v", repo.toppings)
	}

	if repo.payment.Amount != 120000 || repo.payment.Status != models.PaymentPending {
		t.Errorf("payment wrong: %+v", repo.payment)
	}
	if repo.payment.Method != "card" {
		t.Errorf("payment method = %q, want card", repo.payment.Method)
	}

	if !repo.cartCleared {
		t.Error("cart must be emptied by checkout")
	}
	if _, err := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "card"); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("second checkout must fail on the emptied cart, got %v", err)
	}
}

func TestPlaceOrder_Defaults(t *testing.T) {
	repo := newFakeOrderRepo(checkoutLines())
	svc := NewOrderService(repo)

	if _, err := svc.PlaceOrder(context.Background(), "usr-1", "", 120000, ""); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if repo.order.DeliveryAddress != "Not provided" {
		t.Errorf("address default = %q", repo.order.DeliveryAddress)
	}
	if repo.payment.Method != "cash" {
		t.Errorf("method default = %q", repo.payment.Method)
	}
}

func TestAdvanceStatus_FullLifecycle(t *testing.T) {
	repo := newFakeOrderRepo(checkoutLines())
	svc := NewOrderService(repo)

	orderID, err := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "cash")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	for next := models.StatusAccepted; next <= models.StatusCompleted; next++ {
		got, err := svc.AdvanceStatus(context.Background(), orderID, next, "admin")
		if err != nil {
			t.Fatalf("advance to %d: %v", next, err)
		}
		if got != next {
			t.Errorf("advance to %d returned %d", next, got)
		}
	}

	// completed is terminal
	if _, err := svc.AdvanceStatus(context.Background(), orderID, models.StatusCompleted, "admin"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition past completed, got %v", err)
	}
}

func TestAdvanceStatus_RejectsSkipsAndBackwards(t *testing.T) {
	repo := newFakeOrderRepo(checkoutLines())
	svc := NewOrderService(repo)

	orderID, _ := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "cash")

	if _, err := svc.AdvanceStatus(context.Background(), orderID, models.StatusPreparing, "admin"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("skip pending->preparing: expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.AdvanceStatus(context.Background(), orderID, models.StatusAccepted, "admin"); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), orderID, models.StatusPending, "admin"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("backwards: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), orderID, 9, "admin"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unknown code: expected ErrInvalidTransition, got %v", err)
	}
}

func TestAdvanceStatus_RoleGate(t *testing.T) {
	repo := newFakeOrderRepo(checkoutLines())
	svc := NewOrderService(repo)

	orderID, _ := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "cash")

	if _, err := svc.AdvanceStatus(context.Background(), orderID, models.StatusAccepted, "customer"); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("customer accepting: expected ErrNotAllowed, got %v", err)
	}

	for next := models.StatusAccepted; next <= models.StatusDelivering; next++ {
		if _, err := svc.AdvanceStatus(context.Background(), orderID, next, "admin"); err != nil {
			t.Fatalf("admin advance to %d: %v", next, err)
		}
	}

	// the final confirmation may come from the customer
	if _, err := svc.AdvanceStatus(context.Background(), orderID, models.StatusCompleted, "customer"); err != nil {
		t.Errorf("customer completing: %v", err)
	}
}

// staleOrderRepo models two checkouts that both read the cart before either
// commits: the snapshot never empties, so each call sees the same lines.
type staleOrderRepo struct {
	fakeOrderRepo
	orders []*models.Order
}

func (f *staleOrderRepo) CartSnapshot(ctx context.Context, userID string) (string, []models.CartLine, error) {
	return f.cartID, f.lines, nil
}

func (f *staleOrderRepo) Create(ctx context.Context, order *models.Order, items []models.OrderItem, toppings []models.OrderItemTopping, payment *models.Payment, cartID string) error {
	f.orders = append(f.orders, order)
	return nil
}

// A checkout that snapshots the cart before a concurrent checkout commits
// produces its own order; deduplication is not attempted.
func TestPlaceOrder_StaleSnapshotsEachCreateOrders(t *testing.T) {
	repo := &staleOrderRepo{fakeOrderRepo: *newFakeOrderRepo(checkoutLines())}
	svc := NewOrderService(repo)

	first, err := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "cash")
	if err != nil {
		t.Fatalf("first PlaceOrder: %v", err)
	}
	second, err := svc.PlaceOrder(context.Background(), "usr-1", "12 Main St", 120000, "cash")
	if err != nil {
		t.Fatalf("second PlaceOrder: %v", err)
	}

	if first == second {
		t.Error("racing checkouts must still get distinct order ids")
	}
	if len(repo.orders) != 2 {
		t.Fatalf("expected 2 orders from stale snapshots, got %d", len(repo.orders))
	}
	for _, o := range repo.orders {
		if o.FoodAmount != 105000 {
			t.Errorf("order %s FoodAmount = %d, want 105000", o.ID, o.FoodAmount)
		}
	}
}

func TestAdvanceStatus_OrderNotFound(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(nil))

	_, err := svc.AdvanceStatus(context.Background(), "ord-missing", models.StatusAccepted, "admin")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
