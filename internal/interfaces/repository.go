package interfaces

import (
	"context"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
)

// CatalogRepository loads the topping catalog at startup.
type CatalogRepository interface {
	LoadToppings(ctx context.Context) ([]domain.Topping, error)
}
