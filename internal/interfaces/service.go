package interfaces

import (
	"context"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
)

// OrderFormService is the order form state machine as seen by renderers.
type OrderFormService interface {
	UpdateFullName(value string) (FormView, error)
	UpdateSize(value string) (FormView, error)
	ToggleTopping(id string) (FormView, error)
	Submit(ctx context.Context) (FormView, error)
	View() FormView
}

// FormView is a read-only snapshot of the form for rendering.
type FormView struct {
	FullName      string                   `json:"fullName"`
	Size          domain.Size              `json:"size"`
	Toppings      []ToppingView            `json:"toppings"`
	Errors        map[string]string        `json:"errors"`
	SubmitEnabled bool                     `json:"submitEnabled"`
	Outcome       domain.SubmissionOutcome `json:"outcome"`
	Banner        string                   `json:"banner,omitempty"`
	InFlight      bool                     `json:"inFlight"`
}

// ToppingView is a catalog entry with its checked state.
type ToppingView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// SelectedIDs returns the checked topping ids in catalog order.
func (v FormView) SelectedIDs() []string {
	out := make([]string, 0, len(v.Toppings))
	for _, t := range v.Toppings {
		if t.Selected {
			out = append(out, t.ID)
		}
	}
	return out
}

// ErrorFor returns the validation message for a field, if any.
func (v FormView) ErrorFor(field string) string {
	return v.Errors[field]
}
