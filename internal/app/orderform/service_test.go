package orderform

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/YelzhanWeb/pizzaform/internal/adapter/logger"
	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []domain.OrderPayload
	err      error
}

func (r *recordingSubmitter) SubmitOrder(_ context.Context, p domain.OrderPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	return r.err
}

func (r *recordingSubmitter) calls() []domain.OrderPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.OrderPayload(nil), r.payloads...)
}

func newService(t *testing.T, sub interfaces.OrderSubmitter) *Service {
	t.Helper()
	return NewService(domain.MustDefaultCatalog(), sub, logger.Nop())
}

func setName(t *testing.T, s *Service, name string) interfaces.FormView {
	t.Helper()
	v, err := s.UpdateFullName(name)
	require.NoError(t, err)
	return v
}

func setSize(t *testing.T, s *Service, size string) interfaces.FormView {
	t.Helper()
	v, err := s.UpdateSize(size)
	require.NoError(t, err)
	return v
}

var requiredErrors = map[string]string{
	domain.FieldFullName: domain.MsgFullNameRequired,
	domain.FieldSize:     domain.MsgSizeRequired,
}

func TestNewServiceStartsIdleAndDisabled(t *testing.T) {
	s := newService(t, &recordingSubmitter{})

	v := s.View()
	assert.Equal(t, domain.OutcomeIdle, v.Outcome)
	assert.False(t, v.SubmitEnabled)
	assert.Equal(t, requiredErrors, v.Errors)
	assert.Empty(t, v.Banner)
	assert.Len(t, v.Toppings, 5)
}

func TestShortNameDisablesSubmit(t *testing.T) {
	s := newService(t, &recordingSubmitter{})

	setName(t, s, "Al")
	v := setSize(t, s, "M")

	assert.Equal(t, map[string]string{domain.FieldFullName: "full name must be at least 3 characters"}, v.Errors)
	assert.False(t, v.SubmitEnabled)
}

func TestValidDraftEnablesSubmit(t *testing.T) {
	s := newService(t, &recordingSubmitter{})

	setName(t, s, "Alice Smith")
	v := setSize(t, s, "M")

	assert.Empty(t, v.Errors)
	assert.True(t, v.SubmitEnabled)
}

func TestNameLengthBoundsDisableSubmit(t *testing.T) {
	for _, name := range []string{"", "A", "Al", strings.Repeat("x", 21), strings.Repeat("y", 40)} {
		s := newService(t, &recordingSubmitter{})
		setSize(t, s, "L")
		v := setName(t, s, name)

		assert.False(t, v.SubmitEnabled, "name %q", name)
		assert.NotEmpty(t, v.ErrorFor(domain.FieldFullName), "name %q", name)
	}
}

func TestInvalidSizeDisablesSubmit(t *testing.T) {
	for _, size := range []string{"", "XL", "m", "Medium"} {
		s := newService(t, &recordingSubmitter{})
		setName(t, s, "Alice Smith")
		v := setSize(t, s, size)

		assert.False(t, v.SubmitEnabled, "size %q", size)
		assert.NotEmpty(t, v.ErrorFor(domain.FieldSize), "size %q", size)
	}
}

func TestStaleErrorsAreCleared(t *testing.T) {
	s := newService(t, &recordingSubmitter{})

	v := setName(t, s, "Al")
	require.Contains(t, v.Errors, domain.FieldFullName)

	setSize(t, s, "S")
	v = setName(t, s, "Alice")

	assert.Empty(t, v.Errors)
}

func TestToggleTopping(t *testing.T) {
	s := newService(t, &recordingSubmitter{})
	before := s.View()

	_, err := s.ToggleTopping("2")
	require.NoError(t, err)
	v, err := s.ToggleTopping("2")
	require.NoError(t, err)

	if diff := cmp.Diff(before.Toppings, v.Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleToppingDoesNotValidate(t *testing.T) {
	s := newService(t, &recordingSubmitter{})

	setName(t, s, "Al")
	v, err := s.ToggleTopping("1")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		domain.FieldFullName: domain.MsgFullNameTooShort,
		domain.FieldSize:     domain.MsgSizeRequired,
	}, v.Errors)
	assert.Equal(t, []string{"1"}, v.SelectedIDs())
}

func TestToggleUnknownTopping(t *testing.T) {
	s := newService(t, &recordingSubmitter{})

	v, err := s.ToggleTopping("99")

	require.ErrorIs(t, err, domain.ErrUnknownTopping)
	assert.Empty(t, v.SelectedIDs())
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	sub := &recordingSubmitter{}
	s := newService(t, sub)

	setName(t, s, "Alice Smith")
	setSize(t, s, "M")
	_, err := s.ToggleTopping("3")
	require.NoError(t, err)
	_, err = s.ToggleTopping("1")
	require.NoError(t, err)

	v, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.OrderPayload{{FullName: "Alice Smith", Size: domain.SizeMedium, Toppings: []string{"1", "3"}}}, sub.calls())
	assert.Equal(t, domain.OutcomeSuccess, v.Outcome)
	assert.Equal(t, "Thank you for your order, Alice Smith!", v.Banner)
	assert.Empty(t, v.FullName)
	assert.Equal(t, domain.SizeUnset, v.Size)
	assert.Empty(t, v.SelectedIDs())
	assert.Equal(t, requiredErrors, v.Errors)
	assert.False(t, v.SubmitEnabled)
}

func TestSubmitTransportFailureKeepsDraft(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("connection refused")}
	s := newService(t, sub)

	setName(t, s, "Alice Smith")
	setSize(t, s, "L")
	_, err := s.ToggleTopping("5")
	require.NoError(t, err)

	v, err := s.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.OutcomeFailure, v.Outcome)
	assert.Equal(t, "Something went wrong", v.Banner)
	assert.Equal(t, "Alice Smith", v.FullName)
	assert.Equal(t, domain.SizeLarge, v.Size)
	assert.Equal(t, []string{"5"}, v.SelectedIDs())
	assert.Empty(t, v.Errors)
	assert.True(t, v.SubmitEnabled)
}

func TestSubmitInvalidDraftSkipsRequest(t *testing.T) {
	sub := &recordingSubmitter{}
	s := newService(t, sub)
	setName(t, s, "Al")

	v, err := s.Submit(context.Background())

	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Empty(t, sub.calls())
	assert.Equal(t, domain.OutcomeFailure, v.Outcome)
	assert.Equal(t, map[string]string{
		domain.FieldFullName: domain.MsgFullNameTooShort,
		domain.FieldSize:     domain.MsgSizeRequired,
	}, v.Errors)
}

func TestEditAfterOutcomeReturnsToIdle(t *testing.T) {
	s := newService(t, &recordingSubmitter{})
	setName(t, s, "Alice Smith")
	setSize(t, s, "S")

	v, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeSuccess, v.Outcome)

	v = setName(t, s, "Bob")
	assert.Equal(t, domain.OutcomeIdle, v.Outcome)
	assert.Empty(t, v.Banner)

	_, err = s.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	v, err = s.ToggleTopping("4")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeIdle, v.Outcome)
}

type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) SubmitOrder(ctx context.Context, _ domain.OrderPayload) error {
	close(b.started)
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestSubmitWhileInFlight(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	s := newService(t, sub)
	setName(t, s, "Alice Smith")
	setSize(t, s, "M")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-sub.started

	v, err := s.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.True(t, v.InFlight)
	assert.Equal(t, domain.OutcomeIdle, v.Outcome)
	assert.Equal(t, "Alice Smith", v.FullName)

	close(sub.release)
	require.NoError(t, <-done)
	assert.False(t, s.View().InFlight)
	assert.Equal(t, domain.OutcomeSuccess, s.View().Outcome)
}

func TestEditsRefusedWhileInFlight(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	s := newService(t, sub)
	setName(t, s, "Alice Smith")
	setSize(t, s, "M")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-sub.started

	v, err := s.UpdateFullName("Bob Jones")
	require.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.Equal(t, "Alice Smith", v.FullName)

	_, err = s.UpdateSize("L")
	require.ErrorIs(t, err, domain.ErrSubmitInFlight)
	_, err = s.ToggleTopping("2")
	require.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(sub.release)
	require.NoError(t, <-done)

	v = s.View()
	assert.Equal(t, domain.OutcomeSuccess, v.Outcome)
	assert.Equal(t, "Thank you for your order, Alice Smith!", v.Banner)
	assert.Empty(t, v.FullName)
	assert.Empty(t, v.SelectedIDs())

	v = setName(t, s, "Bob Jones")
	assert.Equal(t, "Bob Jones", v.FullName)
	assert.Equal(t, domain.OutcomeIdle, v.Outcome)
}

func TestSubmitHonoursContext(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	s := newService(t, sub)
	setName(t, s, "Alice Smith")
	setSize(t, s, "M")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := s.Submit(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.OutcomeFailure, v.Outcome)
	assert.False(t, v.InFlight)
}
