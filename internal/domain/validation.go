package domain

import "unicode/utf8"

// Field names used as ValidationErrors keys.
const (
	FieldFullName = "fullName"
	FieldSize     = "size"
)

const (
	FullNameMinLength = 3
	FullNameMaxLength = 20
)

const (
	MsgFullNameRequired = "Full name is required"
	MsgFullNameTooShort = "full name must be at least 3 characters"
	MsgFullNameTooLong  = "full name must be at most 20 characters"
	MsgSizeRequired     = "Size is required"
	MsgSizeIncorrect    = "size must be S or M or L"
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the outcome of one validation pass, in field order.
type ValidationResult struct {
	Errors []FieldError
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Map converts the result into ValidationErrors keyed by field name. The map
// is never nil.
func (r ValidationResult) Map() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Field] = e.Message
	}
	return out
}

// Validate applies the order schema to a draft. Toppings are unconstrained.
func Validate(d OrderDraft) ValidationResult {
	var errs []FieldError

	if msg := validateFullName(d.FullName); msg != "" {
		errs = append(errs, FieldError{Field: FieldFullName, Message: msg})
	}
	if msg := validateSize(d.Size); msg != "" {
		errs = append(errs, FieldError{Field: FieldSize, Message: msg})
	}

	return ValidationResult{Errors: errs}
}

func validateFullName(name string) string {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return MsgFullNameRequired
	case n < FullNameMinLength:
		return MsgFullNameTooShort
	case n > FullNameMaxLength:
		return MsgFullNameTooLong
	}
	return ""
}

func validateSize(s Size) string {
	if s == SizeUnset {
		return MsgSizeRequired
	}
	if !s.Valid() {
		return MsgSizeIncorrect
	}
	return ""
}
