package orderform

import (
	"context"
	"fmt"
	"sync"

	"github.com/YelzhanWeb/pizzaform/internal/adapter/logger"
	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

// Service owns one order draft and its derived validation state.
// It is safe for concurrent use; the outbound request runs without the lock held.
type Service struct {
	catalog   *domain.Catalog
	submitter interfaces.OrderSubmitter
	logger    logger.Logger

	mu        sync.Mutex
	draft     domain.OrderDraft
	errors    map[string]string
	outcome   domain.SubmissionOutcome
	inFlight  bool
	orderedBy string
}

func NewService(catalog *domain.Catalog, submitter interfaces.OrderSubmitter, logger logger.Logger) *Service {
	s := &Service{
		catalog:   catalog,
		submitter: submitter,
		logger:    logger,
		draft:     domain.NewOrderDraft(),
		errors:    map[string]string{},
		outcome:   domain.OutcomeIdle,
	}
	s.revalidate()
	return s
}

// UpdateFullName trims and stores the name, then re-validates the draft.
// Edits are refused with ErrSubmitInFlight while a submission is pending.
func (s *Service) UpdateFullName(value string) (interfaces.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return s.view(), domain.ErrSubmitInFlight
	}

	s.draft.SetFullName(value)
	s.revalidate()
	s.touch()
	return s.view(), nil
}

// UpdateSize stores the selected size, then re-validates the draft.
func (s *Service) UpdateSize(value string) (interfaces.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return s.view(), domain.ErrSubmitInFlight
	}

	s.draft.SetSize(value)
	s.revalidate()
	s.touch()
	return s.view(), nil
}

// ToggleTopping flips the selection of a catalog topping. Toppings carry no
// rules, so the validation errors are left as they are.
func (s *Service) ToggleTopping(id string) (interfaces.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return s.view(), domain.ErrSubmitInFlight
	}
	if !s.catalog.Contains(id) {
		return s.view(), fmt.Errorf("%w: %q", domain.ErrUnknownTopping, id)
	}

	s.draft.Toggle(id)
	s.touch()
	return s.view(), nil
}

// Submit validates the whole draft and, when valid, sends it once. On success
// the draft is reset and the empty draft is validated again, as on creation.
//
// Validation failures return ErrValidationFailed with the field errors in the
// view. Transport failures are returned wrapped and leave the draft intact.
// A call made while another submission is pending returns ErrSubmitInFlight
// without touching any state.
func (s *Service) Submit(ctx context.Context) (interfaces.FormView, error) {
	s.mu.Lock()
	if s.inFlight {
		v := s.view()
		s.mu.Unlock()
		return v, domain.ErrSubmitInFlight
	}

	res := domain.Validate(s.draft)
	if !res.Valid() {
		s.errors = res.Map()
		s.outcome = domain.OutcomeFailure
		v := s.view()
		s.mu.Unlock()

		s.logger.Debug("validation_failed", "Order draft failed validation", "", map[string]interface{}{
			"errors": res.Errors,
		})
		return v, domain.ErrValidationFailed
	}

	payload := s.draft.Payload(s.catalog)
	s.inFlight = true
	s.mu.Unlock()

	err := s.submitter.SubmitOrder(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.errors = map[string]string{}
		s.outcome = domain.OutcomeFailure
		s.logger.Error("order_submit_failed", "Failed to submit order", "", map[string]interface{}{
			"size":     payload.Size,
			"toppings": payload.Toppings,
		}, err)
		return s.view(), fmt.Errorf("submit order: %w", err)
	}

	s.draft = domain.NewOrderDraft()
	s.revalidate()
	s.outcome = domain.OutcomeSuccess
	s.orderedBy = payload.FullName
	s.logger.Info("order_submitted", "Order submitted", "", map[string]interface{}{
		"size":     payload.Size,
		"toppings": payload.Toppings,
	})
	return s.view(), nil
}

// View returns the current snapshot.
func (s *Service) View() interfaces.FormView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// revalidate replaces the errors with the result of a fresh pass.
func (s *Service) revalidate() {
	s.errors = domain.Validate(s.draft).Map()
}

// touch returns the outcome to idle after an edit.
func (s *Service) touch() {
	s.outcome = domain.OutcomeIdle
	s.orderedBy = ""
}

func (s *Service) view() interfaces.FormView {
	toppings := s.catalog.Toppings()
	tv := make([]interfaces.ToppingView, len(toppings))
	for i, t := range toppings {
		tv[i] = interfaces.ToppingView{ID: t.ID, Label: t.Label, Selected: s.draft.Selected(t.ID)}
	}

	errs := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}

	v := interfaces.FormView{
		FullName:      s.draft.FullName,
		Size:          s.draft.Size,
		Toppings:      tv,
		Errors:        errs,
		SubmitEnabled: domain.Validate(s.draft).Valid(),
		Outcome:       s.outcome,
		InFlight:      s.inFlight,
	}
	switch s.outcome {
	case domain.OutcomeSuccess:
		v.Banner = domain.SuccessBanner(s.orderedBy)
	case domain.OutcomeFailure:
		v.Banner = domain.FailureBanner
	}
	return v
}
