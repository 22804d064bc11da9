package domain

import (
	"fmt"
	"strings"
)

// Topping is a selectable pizza topping.
type Topping struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is the fixed, ordered list of toppings offered by the form.
// It is read-only once built.
type Catalog struct {
	toppings []Topping
	index    map[string]int
}

// DefaultToppings is the catalog used when no other source is configured.
var DefaultToppings = []Topping{
	{ID: "1", Label: "Pepperoni"},
	{ID: "2", Label: "Green Peppers"},
	{ID: "3", Label: "Pineapple"},
	{ID: "4", Label: "Mushrooms"},
	{ID: "5", Label: "Ham"},
}

// NewCatalog validates the toppings and builds a catalog preserving their order.
func NewCatalog(toppings []Topping) (*Catalog, error) {
	if len(toppings) == 0 {
		return nil, fmt.Errorf("%w: no toppings", ErrInvalidCatalog)
	}

	c := &Catalog{
		toppings: make([]Topping, 0, len(toppings)),
		index:    make(map[string]int, len(toppings)),
	}
	for i, t := range toppings {
		id := strings.TrimSpace(t.ID)
		label := strings.TrimSpace(t.Label)
		if id == "" {
			return nil, fmt.Errorf("%w: topping %d has an empty id", ErrInvalidCatalog, i)
		}
		if label == "" {
			return nil, fmt.Errorf("%w: topping %q has an empty label", ErrInvalidCatalog, id)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate topping id %q", ErrInvalidCatalog, id)
		}
		c.index[id] = len(c.toppings)
		c.toppings = append(c.toppings, Topping{ID: id, Label: label})
	}
	return c, nil
}

// MustDefaultCatalog returns the built-in catalog.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultToppings)
	if err != nil {
		panic(err)
	}
	return c
}

// Toppings returns a copy of the catalog entries in order.
func (c *Catalog) Toppings() []Topping {
	out := make([]Topping, len(c.toppings))
	copy(out, c.toppings)
	return out
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.toppings)
}

// Ordered returns the ids of the given set in catalog order. Ids missing from
// the catalog are dropped.
func (c *Catalog) Ordered(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for _, t := range c.toppings {
		if _, ok := set[t.ID]; ok {
			out = append(out, t.ID)
		}
	}
	return out
}
