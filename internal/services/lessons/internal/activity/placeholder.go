package activity

import (
	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// PlaceholderForm stands in for kinds that cannot be authored yet. It never
// commits.
type PlaceholderForm struct {
	kind    model.Kind
	cb      Callbacks
	editing bool
	d       *deps
}

func NewPlaceholderForm(kind model.Kind, existing *model.Activity, cb Callbacks, opts ...Option) *PlaceholderForm {
	return &PlaceholderForm{
		kind:    kind,
		cb:      cb,
		editing: existing != nil,
		d:       newDeps(opts),
	}
}

func (f *PlaceholderForm) Kind() model.Kind { return f.kind }

func (f *PlaceholderForm) Editing() bool { return f.editing }

func (f *PlaceholderForm) Notice() string {
	return "Esta actividad requiere funcionalidad de audio. Se habilitará cuando esté lista la biblioteca multimedia."
}

func (f *PlaceholderForm) Submit() (model.Activity, error) {
	err := serr.Validation("la actividad %q aún no se puede crear", f.kind.Title())
	f.d.notifier.Error(serr.Message(err))
	return model.Activity{}, err
}

func (f *PlaceholderForm) Cancel() {
	if f.cb.Cancel != nil {
		f.cb.Cancel()
	}
}
