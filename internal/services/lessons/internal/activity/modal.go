package activity

import (
	"errors"
	"fmt"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

var ErrUnknownKind = errors.New("unknown activity kind")

// Modal shows at most one activity form at a time.
type Modal struct {
	opts []Option
	form Form
}

func NewModal(opts ...Option) *Modal {
	return &Modal{opts: opts}
}

// Open closes any open form and opens the one for kind. When existing is not
// nil the form edits it. onSave receives the committed activity, after which
// the modal closes itself.
func (m *Modal) Open(kind model.Kind, existing *model.Activity, onSave func(model.Activity)) (Form, error) {
	if existing != nil && existing.Kind() != kind {
		return nil, fmt.Errorf("edit %s activity as %s: %w", existing.Kind(), kind, ErrUnknownKind)
	}

	cb := Callbacks{
		Commit: func(a model.Activity) {
			if onSave != nil {
				onSave(a)
			}
			m.Close()
		},
		Cancel: m.Close,
	}

	var f Form
	switch kind {
	case model.KindMultipleChoice:
		f = NewMultipleChoiceForm(existing, cb, m.opts...)
	case model.KindFillBlank:
		f = NewFillBlankForm(existing, cb, m.opts...)
	case model.KindMatching:
		f = NewMatchingForm(existing, cb, m.opts...)
	case model.KindTranslation:
		f = NewTranslationForm(existing, cb, m.opts...)
	case model.KindTrueFalse:
		f = NewTrueFalseForm(existing, cb, m.opts...)
	case model.KindWordOrder:
		f = NewWordOrderForm(existing, cb, m.opts...)
	case model.KindListenRepeat:
		f = NewPlaceholderForm(kind, existing, cb, m.opts...)
	default:
		return nil, fmt.Errorf("open %q: %w", kind, ErrUnknownKind)
	}

	m.form = f
	return f, nil
}

func (m *Modal) Close() {
	m.form = nil
}

func (m *Modal) IsOpen() bool {
	return m.form != nil
}

// Form returns the open form or nil.
func (m *Modal) Form() Form {
	return m.form
}

func (m *Modal) Title() string {
	if m.form == nil {
		return ""
	}

	verb := "Crear"
	if m.form.Editing() {
		verb = "Editar"
	}
	return fmt.Sprintf("%s Actividad: %s", verb, m.form.Kind().Title())
}
