package http

import (
	"embed"
	"html/template"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type sizeOption struct {
	Value    domain.Size
	Label    string
	Selected bool
}

type formPage struct {
	Form           interfaces.FormView
	Sizes          []sizeOption
	FullNameError  string
	SizeError      string
	SubmitDisabled bool
	Success        bool
	Failure        bool
}

func newFormPage(v interfaces.FormView) formPage {
	sizes := make([]sizeOption, len(domain.Sizes))
	for i, s := range domain.Sizes {
		sizes[i] = sizeOption{Value: s, Label: s.Label(), Selected: v.Size == s}
	}
	return formPage{
		Form:           v,
		Sizes:          sizes,
		FullNameError:  v.ErrorFor(domain.FieldFullName),
		SizeError:      v.ErrorFor(domain.FieldSize),
		SubmitDisabled: !v.SubmitEnabled || v.InFlight,
		Success:        v.Outcome == domain.OutcomeSuccess,
		Failure:        v.Outcome == domain.OutcomeFailure,
	}
}
