package domain

import "strings"

// OrderDraft is the in-progress, unsaved state of the order form.
type OrderDraft struct {
	FullName string
	Size     Size
	Toppings map[string]struct{}
}

// NewOrderDraft returns an empty draft.
func NewOrderDraft() OrderDraft {
	return OrderDraft{Toppings: make(map[string]struct{})}
}

// SetFullName stores the trimmed name.
func (d *OrderDraft) SetFullName(value string) {
	d.FullName = strings.TrimSpace(value)
}

func (d *OrderDraft) SetSize(value string) {
	d.Size = ParseSize(value)
}

// Toggle flips membership of id and reports whether it is now selected.
func (d *OrderDraft) Toggle(id string) bool {
	if d.Toppings == nil {
		d.Toppings = make(map[string]struct{})
	}
	if _, ok := d.Toppings[id]; ok {
		delete(d.Toppings, id)
		return false
	}
	d.Toppings[id] = struct{}{}
	return true
}

func (d OrderDraft) Selected(id string) bool {
	_, ok := d.Toppings[id]
	return ok
}

// Clone returns a deep copy so callers can read it without holding locks.
func (d OrderDraft) Clone() OrderDraft {
	out := OrderDraft{
		FullName: d.FullName,
		Size:     d.Size,
		Toppings: make(map[string]struct{}, len(d.Toppings)),
	}
	for id := range d.Toppings {
		out.Toppings[id] = struct{}{}
	}
	return out
}

// OrderPayload is the body sent to the order endpoint.
type OrderPayload struct {
	FullName string   `json:"fullName"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
}

// Payload builds the outbound body. Toppings are listed in catalog order and
// the slice is never nil so it encodes as an array.
func (d OrderDraft) Payload(catalog *Catalog) OrderPayload {
	return OrderPayload{
		FullName: d.FullName,
		Size:     d.Size,
		Toppings: catalog.Ordered(d.Toppings),
	}
}
