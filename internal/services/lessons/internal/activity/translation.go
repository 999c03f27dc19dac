package activity

import (
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

type TranslationForm struct {
	base
	source  string
	answers []string
}

func NewTranslationForm(existing *model.Activity, cb Callbacks, opts ...Option) *TranslationForm {
	f := &TranslationForm{
		base: newBase(model.KindTranslation, existing, cb, "Traduce la siguiente frase.", opts),
	}
	if existing != nil {
		if p, ok := existing.Payload.(model.Translation); ok {
			f.source = p.Source
			f.answers = slices.Clone(p.Answers)
		}
	}
	return f
}

func (f *TranslationForm) Source() string { return f.source }

func (f *TranslationForm) SetSource(s string) {
	f.source = s
}

func (f *TranslationForm) Answers() []string {
	return slices.Clone(f.answers)
}

func (f *TranslationForm) AddAnswer(a string) {
	f.answers = append(f.answers, a)
}

func (f *TranslationForm) SetAnswers(answers []string) {
	f.answers = slices.Clone(answers)
}

func (f *TranslationForm) RemoveAnswer(i int) {
	if i >= 0 && i < len(f.answers) {
		f.answers = slices.Delete(f.answers, i, i+1)
	}
}

func (f *TranslationForm) Submit() (model.Activity, error) {
	if err := f.checkPrompt(); err != nil {
		return f.fail(err)
	}

	return f.commit(model.Translation{
		Source:  strings.TrimSpace(f.source),
		Answers: trimAll(f.answers),
	})
}
