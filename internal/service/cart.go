package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/kitcraft/internal/apperror"
	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/repository"
)

// CartService merges kit materials into each user's persistent cart.
//
// The cart's one rule: no two entries share the same (name, buyLink) pair.
// Adding materials already in the cart is a no-op for those entries; the
// order of first addition is preserved. Operations are last-writer-wins
// against the store — no locking, since one user drives one client at a
// time in intended usage.
type CartService struct {
	cart   repository.CartRepository
	logger *slog.Logger
}

// NewCartService creates a CartService.
func NewCartService(cart repository.CartRepository, logger *slog.Logger) *CartService {
	return &CartService{
		cart:   cart,
		logger: logger,
	}
}

// AddMaterials merges the given materials into the user's cart and returns
// the resulting cart. Entries without a name are rejected — they could never
// be deduplicated or purchased.
func (s *CartService) AddMaterials(ctx context.Context, userID string, materials []model.Material) ([]model.Material, error) {
	if len(materials) == 0 {
		return nil, apperror.ValidationFailed("materials", "at least one material is required")
	}
	for i, m := range materials {
		if m.Name == "" {
			return nil, apperror.ValidationFailed("materials",
				fmt.Sprintf("material %d has no name", i+1))
		}
	}

	if err := s.cart.AddMaterials(ctx, userID, materials); err != nil {
		s.logger.Error("failed to add materials to cart",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/cart: adding materials: %w", err)
	}

	s.logger.Info("materials added to cart",
		slog.String("userID", userID),
		slog.Int("offered", len(materials)),
	)

	return s.List(ctx, userID)
}

// List returns the user's cart in first-addition order.
func (s *CartService) List(ctx context.Context, userID string) ([]model.Material, error) {
	items, err := s.cart.ListCart(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list cart",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/cart: listing cart: %w", err)
	}
	return items, nil
}

// Clear empties the user's cart. Clearing an empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.cart.ClearCart(ctx, userID); err != nil {
		s.logger.Error("failed to clear cart",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("service/cart: clearing cart: %w", err)
	}

	s.logger.Info("cart cleared", slog.String("userID", userID))
	return nil
}
