// Package repository declares the persistence interfaces consumed by the
// service layer. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/kitcraft/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository is the registry of user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// KitRepository stores each user's generated project kits.
// Kits are immutable once created — no update or delete.
type KitRepository interface {
	CreateKit(ctx context.Context, kit *model.ProjectKit) error
	GetKitByID(ctx context.Context, userID, id string) (*model.ProjectKit, error)
	ListKits(ctx context.Context, userID string, opts ListOptions) ([]model.ProjectKit, error)
}

// CartRepository stores each user's shopping cart.
//
// AddMaterials must skip entries whose (name, buyLink) pair already exists in
// the user's cart and preserve first-addition order for the rest.
type CartRepository interface {
	ListCart(ctx context.Context, userID string) ([]model.Material, error)
	AddMaterials(ctx context.Context, userID string, materials []model.Material) error
	ClearCart(ctx context.Context, userID string) error
}
