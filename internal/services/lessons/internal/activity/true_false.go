package activity

import (
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

type TrueFalseForm struct {
	base
	answer   bool
	selected bool
}

// NewTrueFalseForm starts with no selection unless it edits an existing
// activity, in which case the stored answer is selected.
func NewTrueFalseForm(existing *model.Activity, cb Callbacks, opts ...Option) *TrueFalseForm {
	f := &TrueFalseForm{
		base: newBase(model.KindTrueFalse, existing, cb, "¿Es verdadero o falso?", opts),
	}
	if existing != nil {
		if p, ok := existing.Payload.(model.TrueFalse); ok {
			f.answer = p.Answer
			f.selected = true
		}
	}
	return f
}

func (f *TrueFalseForm) Select(answer bool) {
	f.answer = answer
	f.selected = true
}

// Selection returns the chosen answer and whether one was chosen at all.
func (f *TrueFalseForm) Selection() (answer, ok bool) {
	return f.answer, f.selected
}

func (f *TrueFalseForm) SetExplanation(s string) {
	f.feedback.Explanation = strings.TrimSpace(s)
}

func (f *TrueFalseForm) Submit() (model.Activity, error) {
	if err := f.checkPrompt(); err != nil {
		return f.fail(err)
	}
	if !f.selected {
		return f.fail(serr.Validation("selecciona si la afirmación es verdadera o falsa"))
	}

	return f.commit(model.TrueFalse{Answer: f.answer})
}
