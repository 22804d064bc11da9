package catalog

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

type staticRepository struct {
	toppings []domain.Topping
}

// NewStatic serves toppings defined in configuration. An empty list falls
// back to the built-in toppings.
func NewStatic(toppings []domain.Topping) interfaces.CatalogRepository {
	if len(toppings) == 0 {
		toppings = domain.DefaultToppings
	}
	return &staticRepository{toppings: append([]domain.Topping(nil), toppings...)}
}

func (r *staticRepository) LoadToppings(ctx context.Context) ([]domain.Topping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Topping(nil), r.toppings...), nil
}

// Load reads the toppings once and freezes them into a catalog.
func Load(ctx context.Context, repo interfaces.CatalogRepository) (*domain.Catalog, error) {
	toppings, err := repo.LoadToppings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load toppings: %w", err)
	}
	return domain.NewCatalog(toppings)
}
