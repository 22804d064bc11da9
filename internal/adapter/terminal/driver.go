package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

// ErrAborted is returned when the user interrupts a prompt with Ctrl+C.
var ErrAborted = errors.New("order aborted")

const chooseSize = "----Choose Size----"

// PromptDriver asks the order questions. Tests replace it with scripted answers.
type PromptDriver interface {
	// FullName asks for the name, offering current as the default.
	FullName(ctx context.Context, current string) (string, error)
	// Size returns SizeUnset when the placeholder is picked.
	Size(ctx context.Context, current domain.Size) (domain.Size, error)
	// Toppings returns the chosen topping ids in catalog order.
	Toppings(ctx context.Context, toppings []interfaces.ToppingView) ([]string, error)
	Confirm(ctx context.Context, question string) (bool, error)
	Print(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver prompts on the process terminal and prints to out.
func NewSurveyDriver(out io.Writer) PromptDriver {
	return &surveyDriver{out: out}
}

func (d *surveyDriver) FullName(ctx context.Context, current string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var name string
	err := survey.AskOne(&survey.Input{
		Message: "Full Name",
		Default: current,
		Help:    fmt.Sprintf("Between %d and %d characters", domain.FullNameMinLength, domain.FullNameMaxLength),
	}, &name)
	if err != nil {
		return "", askErr(err)
	}
	return name, nil
}

func (d *surveyDriver) Size(ctx context.Context, current domain.Size) (domain.Size, error) {
	if err := ctx.Err(); err != nil {
		return domain.SizeUnset, err
	}

	options, selected := sizeOptions(current)
	var idx int
	err := survey.AskOne(&survey.Select{
		Message: "Size",
		Options: options,
		Default: options[selected],
	}, &idx)
	if err != nil {
		return domain.SizeUnset, askErr(err)
	}
	return sizeAt(idx), nil
}

func (d *surveyDriver) Toppings(ctx context.Context, toppings []interfaces.ToppingView) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels, checked := toppingOptions(toppings)
	prompt := &survey.MultiSelect{
		Message: "Toppings",
		Options: labels,
	}
	if len(checked) > 0 {
		prompt.Default = checked
	}

	var picked []int
	if err := survey.AskOne(prompt, &picked); err != nil {
		return nil, askErr(err)
	}
	return toppingIDs(toppings, picked), nil
}

func (d *surveyDriver) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ok := true
	if err := survey.AskOne(&survey.Confirm{Message: question, Default: true}, &ok); err != nil {
		return false, askErr(err)
	}
	return ok, nil
}

func (d *surveyDriver) Print(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func askErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return fmt.Errorf("prompt failed: %w", err)
}

// sizeOptions lists the placeholder followed by the size labels, with the
// index of the current size.
func sizeOptions(current domain.Size) ([]string, int) {
	options := make([]string, 0, len(domain.Sizes)+1)
	options = append(options, chooseSize)
	selected := 0
	for i, size := range domain.Sizes {
		options = append(options, size.Label())
		if size == current {
			selected = i + 1
		}
	}
	return options, selected
}

// sizeAt maps an index from sizeOptions back to a size.
func sizeAt(idx int) domain.Size {
	if idx < 1 || idx > len(domain.Sizes) {
		return domain.SizeUnset
	}
	return domain.Sizes[idx-1]
}

// toppingOptions returns the labels to show and the labels already checked.
func toppingOptions(toppings []interfaces.ToppingView) ([]string, []string) {
	labels := make([]string, len(toppings))
	var checked []string
	for i, t := range toppings {
		labels[i] = t.Label
		if t.Selected {
			checked = append(checked, t.Label)
		}
	}
	return labels, checked
}

// toppingIDs resolves picked option indices to ids, in catalog order.
func toppingIDs(toppings []interfaces.ToppingView, picked []int) []string {
	want := make(map[int]bool, len(picked))
	for _, i := range picked {
		want[i] = true
	}
	ids := make([]string, 0, len(picked))
	for i, t := range toppings {
		if want[i] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
