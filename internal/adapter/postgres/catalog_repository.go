package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

const selectToppings = `
	SELECT topping_id, label
	FROM toppings
	ORDER BY position, topping_id
`

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) LoadToppings(ctx context.Context) ([]domain.Topping, error) {
	rows, err := r.db.Query(ctx, selectToppings)
	if err != nil {
		return nil, fmt.Errorf("failed to query toppings: %w", err)
	}
	defer rows.Close()

	var toppings []domain.Topping
	for rows.Next() {
		var t domain.Topping
		if err := rows.Scan(&t.ID, &t.Label); err != nil {
			return nil, fmt.Errorf("failed to scan topping: %w", err)
		}
		toppings = append(toppings, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read toppings: %w", err)
	}

	if len(toppings) == 0 {
		return nil, fmt.Errorf("%w: toppings table is empty", domain.ErrInvalidCatalog)
	}
	return toppings, nil
}
