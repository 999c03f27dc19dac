package activity

import (
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// Blank marks the gap in a fill-in-the-blank sentence.
const Blank = "___"

type FillBlankForm struct {
	base
	sentence string
	answers  []string
}

func NewFillBlankForm(existing *model.Activity, cb Callbacks, opts ...Option) *FillBlankForm {
	f := &FillBlankForm{
		base: newBase(model.KindFillBlank, existing, cb, "Completa el espacio en blanco.", opts),
	}
	if existing != nil {
		if p, ok := existing.Payload.(model.FillBlank); ok {
			f.sentence = p.Sentence
			f.answers = slices.Clone(p.Answers)
		}
	}
	return f
}

func (f *FillBlankForm) Sentence() string { return f.sentence }

func (f *FillBlankForm) SetSentence(s string) {
	f.sentence = s
}

func (f *FillBlankForm) Answers() []string {
	return slices.Clone(f.answers)
}

func (f *FillBlankForm) AddAnswer(a string) {
	f.answers = append(f.answers, a)
}

func (f *FillBlankForm) SetAnswers(answers []string) {
	f.answers = slices.Clone(answers)
}

func (f *FillBlankForm) RemoveAnswer(i int) {
	if i >= 0 && i < len(f.answers) {
		f.answers = slices.Delete(f.answers, i, i+1)
	}
}

func (f *FillBlankForm) Submit() (model.Activity, error) {
	if err := f.checkPrompt(); err != nil {
		return f.fail(err)
	}

	sentence := strings.TrimSpace(f.sentence)
	if sentence != "" && !strings.Contains(sentence, Blank) {
		return f.fail(serr.Validation("la oración debe contener %s para marcar el espacio", Blank))
	}

	return f.commit(model.FillBlank{
		Sentence: sentence,
		Answers:  trimAll(f.answers),
	})
}
