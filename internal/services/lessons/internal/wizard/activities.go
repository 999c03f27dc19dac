package wizard

import (
	"fmt"
	"slices"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/activity"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// OpenActivity opens a blank form for kind. Committing it appends the
// activity to the draft.
func (w *Wizard) OpenActivity(kind model.Kind) (activity.Form, error) {
	w.editSeq++
	w.editing = -1
	return w.modal.Open(kind, nil, func(a model.Activity) {
		w.draft.Activities = append(w.draft.Activities, a)
	})
}

// EditActivity opens the form for the activity at i. Committing it replaces
// that activity, following it if the list is reordered while the form is
// open. If the activity was removed meanwhile the commit is dropped.
func (w *Wizard) EditActivity(i int) (activity.Form, error) {
	if i < 0 || i >= len(w.draft.Activities) {
		return nil, fmt.Errorf("activity %d out of range", i)
	}

	existing := w.draft.Activities[i]
	w.editSeq++
	seq := w.editSeq
	f, err := w.modal.Open(existing.Kind(), &existing, func(a model.Activity) {
		if seq != w.editSeq || w.editing < 0 {
			w.notifier.Error("La actividad ya no existe")
			return
		}
		w.draft.Activities[w.editing] = a
		w.editing = -1
	})
	if err != nil {
		return nil, err
	}

	w.editing = i
	return f, nil
}

// Modal exposes the activity modal, mostly for its title and open state.
func (w *Wizard) Modal() *activity.Modal {
	return w.modal
}

func (w *Wizard) Activities() []model.Activity {
	return slices.Clone(w.draft.Activities)
}

func (w *Wizard) RemoveActivity(i int) bool {
	if removeAt(&w.draft.Activities, i) {
		switch {
		case i == w.editing:
			w.editing = -1
		case i < w.editing:
			w.editing--
		}
		w.notifier.Success("Actividad eliminada")
		return true
	}
	return false
}

// MoveActivity moves the activity at from to position to.
func (w *Wizard) MoveActivity(from, to int) error {
	n := len(w.draft.Activities)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move activity %d to %d: out of range", from, to)
	}

	a := w.draft.Activities[from]
	w.draft.Activities = slices.Delete(w.draft.Activities, from, from+1)
	w.draft.Activities = slices.Insert(w.draft.Activities, to, a)

	switch {
	case w.editing < 0:
	case from == w.editing:
		w.editing = to
	case from < w.editing && to >= w.editing:
		w.editing--
	case from > w.editing && to <= w.editing:
		w.editing++
	}
	return nil
}
