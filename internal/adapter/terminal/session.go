package terminal

import (
	"context"
	"errors"

	"github.com/YelzhanWeb/pizzaform/internal/adapter/logger"
	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

// Session walks one user through the order form on the terminal.
type Session struct {
	form   interfaces.OrderFormService
	driver PromptDriver
	logger logger.Logger
}

func NewSession(form interfaces.OrderFormService, driver PromptDriver, logger logger.Logger) *Session {
	return &Session{form: form, driver: driver, logger: logger}
}

// Run prompts for each field until an order is placed. It returns nil after a
// successful order, ErrAborted when the user quits, or the last submit error
// when the user declines to retry.
func (s *Session) Run(ctx context.Context) error {
	if err := s.driver.Print(ctx, titleStyle.Render("Order Your Pizza")); err != nil {
		return err
	}

	for {
		view, err := s.collect(ctx)
		if err != nil {
			return err
		}

		if !view.SubmitEnabled {
			if err := s.showErrors(ctx, view); err != nil {
				return err
			}
			continue
		}

		ok, err := s.driver.Confirm(ctx, "Place order?")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		view, err = s.form.Submit(ctx)
		if err == nil {
			return s.driver.Print(ctx, successStyle.Render(view.Banner))
		}
		if errors.Is(err, domain.ErrValidationFailed) {
			if err := s.showErrors(ctx, view); err != nil {
				return err
			}
			continue
		}

		s.logger.Error("order_submit_failed", "Terminal order submission failed", "", nil, err)
		if err := s.driver.Print(ctx, failureStyle.Render(view.Banner)); err != nil {
			return err
		}
		retry, cerr := s.driver.Confirm(ctx, "Try again?")
		if cerr != nil {
			return cerr
		}
		if !retry {
			return err
		}
	}
}

// collect prompts for every field, seeding each prompt with the current draft.
func (s *Session) collect(ctx context.Context) (interfaces.FormView, error) {
	view := s.form.View()

	name, err := s.driver.FullName(ctx, view.FullName)
	if err != nil {
		return view, err
	}
	if view, err = s.form.UpdateFullName(name); err != nil {
		return view, err
	}

	size, err := s.driver.Size(ctx, view.Size)
	if err != nil {
		return view, err
	}
	if view, err = s.form.UpdateSize(string(size)); err != nil {
		return view, err
	}

	ids, err := s.driver.Toppings(ctx, view.Toppings)
	if err != nil {
		return view, err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, t := range view.Toppings {
		if want[t.ID] == t.Selected {
			continue
		}
		if view, err = s.form.ToggleTopping(t.ID); err != nil {
			return view, err
		}
	}

	return view, nil
}

func (s *Session) showErrors(ctx context.Context, view interfaces.FormView) error {
	for _, field := range []string{domain.FieldFullName, domain.FieldSize} {
		if msg := view.ErrorFor(field); msg != "" {
			if err := s.driver.Print(ctx, errorStyle.Render(msg)); err != nil {
				return err
			}
		}
	}
	return nil
}
