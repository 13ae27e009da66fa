package services

import (
	"context"
	"time"

	"smartbite/models"
	"smartbite/utils"
)

type ReviewRepository interface {
	// CompletedOrderIDs returns the ids of the user's completed orders that
	// contain the dish, oldest first.
	CompletedOrderIDs(ctx context.Context, userID, foodID string) ([]string, error)
	HasFoodReview(ctx context.Context, orderID, foodID string) (bool, error)
	OrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	InsertOrderReview(ctx context.Context, review *models.OrderReview) error
	InsertFoodReview(ctx context.Context, review *models.FoodReview) error
}

type Eligibility struct {
	Eligible bool               `json:"eligible"`
	Message  string             `json:"message,omitempty"`
	OrderID  string             `json:"orderId,omitempty"`
	Items    []models.OrderItem `json:"orderItems,omitempty"`
}

type ReviewService struct {
	reviews ReviewRepository
	now     func() time.Time
}

func NewReviewService(reviews ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews, now: time.Now}
}

// CheckEligibility gates reviewing: the user must have a completed order
// containing the dish that has not been reviewed yet. The first qualifying
// order wins; ordering beyond that carries no meaning.
func (s *ReviewService) CheckEligibility(ctx context.Context, userID, foodID string) (*Eligibility, error) {
	orderIDs, err := s.reviews.CompletedOrderIDs(ctx, userID, foodID)
	if err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return &Eligibility{Eligible: false, Message: "You have not purchased this dish"}, nil
	}

	for _, orderID := range orderIDs {
		reviewed, err := s.reviews.HasFoodReview(ctx, orderID, foodID)
		if err != nil {
			return nil, err
		}
		if reviewed {
			continue
		}

		items, err := s.reviews.OrderItems(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return &Eligibility{Eligible: true, OrderID: orderID, Items: items}, nil
	}

	return &Eligibility{Eligible: false, Message: "All eligible orders for this dish are already reviewed"}, nil
}

// Submit inserts an optional order-level review plus any per-dish reviews.
// Each insert is independent; duplicate pairs are stopped by the unique
// constraints in storage.
func (s *ReviewService) Submit(ctx context.Context, req models.SubmitReviewRequest) error {
	now := s.now()

	if req.Rating > 0 {
		review := &models.OrderReview{
			ID:        utils.NewID("rev-o"),
			OrderID:   req.OrderID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: now,
		}
		if err := s.reviews.InsertOrderReview(ctx, review); err != nil {
			return err
		}
	}

	for _, fr := range req.FoodReviews {
		review := &models.FoodReview{
			ID:        utils.NewID("rev-f"),
			OrderID:   req.OrderID,
			FoodID:    fr.FoodID,
			Rating:    fr.Rating,
			Comment:   fr.Comment,
			CreatedAt: now,
		}
		if err := s.reviews.InsertFoodReview(ctx, review); err != nil {
			return err
		}
	}

	return nil
}
