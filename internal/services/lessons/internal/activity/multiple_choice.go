package activity

import (
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

type MultipleChoiceForm struct {
	base
	options []string
	answer  string
}

func NewMultipleChoiceForm(existing *model.Activity, cb Callbacks, opts ...Option) *MultipleChoiceForm {
	f := &MultipleChoiceForm{
		base: newBase(model.KindMultipleChoice, existing, cb, "Selecciona la respuesta correcta.", opts),
	}
	if existing != nil {
		if p, ok := existing.Payload.(model.MultipleChoice); ok {
			f.options = slices.Clone(p.Options)
			f.answer = p.Answer
		}
	}
	return f
}

func (f *MultipleChoiceForm) Options() []string {
	return slices.Clone(f.options)
}

func (f *MultipleChoiceForm) AddOption(opt string) {
	f.options = append(f.options, opt)
}

func (f *MultipleChoiceForm) SetOptions(opts []string) {
	f.options = slices.Clone(opts)
}

// RemoveOption drops the option at i. Removing the selected answer clears it.
func (f *MultipleChoiceForm) RemoveOption(i int) {
	if i < 0 || i >= len(f.options) {
		return
	}
	if strings.TrimSpace(f.options[i]) == strings.TrimSpace(f.answer) {
		f.answer = ""
	}
	f.options = slices.Delete(f.options, i, i+1)
}

func (f *MultipleChoiceForm) SetAnswer(answer string) {
	f.answer = answer
}

// SelectAnswer marks the option at i as the correct one.
func (f *MultipleChoiceForm) SelectAnswer(i int) error {
	if i < 0 || i >= len(f.options) {
		return serr.Validation("opción %d fuera de rango", i+1)
	}
	f.answer = f.options[i]
	return nil
}

func (f *MultipleChoiceForm) Answer() string {
	return f.answer
}

func (f *MultipleChoiceForm) Submit() (model.Activity, error) {
	if err := f.checkPrompt(); err != nil {
		return f.fail(err)
	}

	return f.commit(model.MultipleChoice{
		Options: trimAll(f.options),
		Answer:  strings.TrimSpace(f.answer),
	})
}
