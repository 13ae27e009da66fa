package services

import (
	"context"
	"testing"

	"smartbite/models"
)

type fakeReviewRepo struct {
	completed map[string][]string // "userID|foodID" -> order ids
	reviewed  map[string]bool     // "orderID|foodID"
	items     map[string][]models.OrderItem

	orderReviews []*models.OrderReview
	foodReviews  []*models.FoodReview
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		completed: map[string][]string{},
		reviewed:  map[string]bool{},
		items:     map[string][]models.OrderItem{},
	}
}

func (f *fakeReviewRepo) CompletedOrderIDs(ctx context.Context, userID, foodID string) ([]string, error) {
	return f.completed[userID+"|"+foodID], nil
}

func (f *fakeReviewRepo) HasFoodReview(ctx context.Context, orderID, foodID string) (bool, error) {
	return f.reviewed[orderID+"|"+foodID], nil
}

func (f *fakeReviewRepo) OrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeReviewRepo) InsertOrderReview(ctx context.Context, review *models.OrderReview) error {
	f.orderReviews = append(f.orderReviews, review)
	return nil
}

func (f *fakeReviewRepo) InsertFoodReview(ctx context.Context, review *models.FoodReview) error {
	f.foodReviews = append(f.foodReviews, review)
	f.reviewed[review.OrderID+"|"+review.FoodID] = true
	return nil
}

func TestCheckEligibility_NeverPurchased(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo())

	el, err := svc.CheckEligibility(context.Background(), "usr-1", "food-salmon")
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if el.Eligible {
		t.Error("expected not eligible without a completed order")
	}
	if el.Message != "You have not purchased this dish" {
		t.Errorf("message = %q", el.Message)
	}
}

func TestCheckEligibility_PicksUnreviewedOrder(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.completed["usr-1|food-salmon"] = []string{"ord-1", "ord-2"}
	repo.reviewed["ord-1|food-salmon"] = true
	repo.items["ord-2"] = []models.OrderItem{{ID: "oi-1", OrderID: "ord-2", FoodID: "food-salmon", Quantity: 1}}
	svc := NewReviewService(repo)

	el, err := svc.CheckEligibility(context.Background(), "usr-1", "food-salmon")
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if !el.Eligible {
		t.Fatalf("expected eligible, got %+v", el)
	}
	if el.OrderID != "ord-2" {
		t.Errorf("eligible order = %q, want ord-2", el.OrderID)
	}
	if len(el.Items) != 1 {
		t.Errorf("expected the order's items attached, got %d", len(el.Items))
	}
}

func TestCheckEligibility_AllReviewed(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.completed["usr-1|food-salmon"] = []string{"ord-1"}
	repo.reviewed["ord-1|food-salmon"] = true
	svc := NewReviewService(repo)

	el, err := svc.CheckEligibility(context.Background(), "usr-1", "food-salmon")
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if el.Eligible {
		t.Error("expected not eligible once every order is reviewed")
	}
	if el.Message != "All eligible orders for this dish are already reviewed" {
		t.Errorf("message = %q", el.Message)
	}
}

func TestSubmit_OrderReviewOptional(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo)

	req := models.SubmitReviewRequest{
		OrderID: "ord-1",
		FoodReviews: []models.FoodReviewInput{
			{FoodID: "food-salmon", Rating: 4, Comment: "great"},
		},
	}
	if err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(repo.orderReviews) != 0 {
		t.Error("no order review expected when rating is zero")
	}
	if len(repo.foodReviews) != 1 {
		t.Fatalf("expected 1 food review, got %d", len(repo.foodReviews))
	}
	if repo.foodReviews[0].FoodID != "food-salmon" || repo.foodReviews[0].Rating != 4 {
		t.Errorf("food review wrong: %+v", repo.foodReviews[0])
	}
}

func TestSubmit_OrderAndFoodReviews(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo)

	req := models.SubmitReviewRequest{
		OrderID: "ord-1",
		Rating:  5,
		Comment: "fast delivery",
		FoodReviews: []models.FoodReviewInput{
			{FoodID: "food-salmon", Rating: 5},
			{FoodID: "food-soup", Rating: 3, Comment: "too salty"},
		},
	}
	if err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(repo.orderReviews) != 1 || repo.orderReviews[0].Rating != 5 {
		t.Errorf("order review wrong: %+v", repo.orderReviews)
	}
	if len(repo.foodReviews) != 2 {
		t.Fatalf("expected 2 food reviews, got %d", len(repo.foodReviews))
	}

	// reviewing the same dish through the same order is no longer eligible
	repo.completed["usr-1|food-soup"] = []string{"ord-1"}
	el, err := svc.CheckEligibility(context.Background(), "usr-1", "food-soup")
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if el.Eligible {
		t.Error("order already reviewed for this dish; must not be eligible again")
	}
}
