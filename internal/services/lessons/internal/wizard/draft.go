package wizard

import (
	"context"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
)

// SelectCourse sets the course and copies its level and language into the
// draft.
func (w *Wizard) SelectCourse(ctx context.Context, id int64) error {
	c, err := w.courses.Course(ctx, id)
	if err != nil {
		w.notifier.Error("Error al cargar el curso")
		return serr.Load(err, "no se pudo cargar el curso %d", id)
	}

	w.draft.CourseID = c.ID
	w.draft.Level = c.Level
	w.draft.Language = c.Language
	return nil
}

func (w *Wizard) SetTitle(s string)       { w.draft.Title = s }
func (w *Wizard) SetDescription(s string) { w.draft.Description = s }
func (w *Wizard) SetCategory(s string)    { w.draft.Category = strings.TrimSpace(s) }
func (w *Wizard) SetDuration(minutes int) { w.draft.Duration = minutes }
func (w *Wizard) SetXP(xp int)            { w.draft.XP = xp }
func (w *Wizard) SetOrder(order int)      { w.draft.Order = order }

// AddTag adds a trimmed tag and reports whether it was new.
func (w *Wizard) AddTag(tag string) bool {
	return w.draft.Tags.Add(tag)
}

func (w *Wizard) RemoveTag(tag string) {
	w.draft.Tags.Remove(tag)
}

func (w *Wizard) SetIntroduction(s string) {
	w.draft.Content.Introduction = strings.TrimSpace(s)
}

func (w *Wizard) AddObjective(s string) bool {
	return appendNonEmpty(&w.draft.Content.Objectives, s)
}

func (w *Wizard) AddVocabulary(s string) bool {
	return appendNonEmpty(&w.draft.Content.Vocabulary, s)
}

func (w *Wizard) AddExample(s string) bool {
	return appendNonEmpty(&w.draft.Content.Examples, s)
}

func (w *Wizard) RemoveObjective(i int) {
	removeAt(&w.draft.Content.Objectives, i)
}

func (w *Wizard) RemoveVocabulary(i int) {
	removeAt(&w.draft.Content.Vocabulary, i)
}

func (w *Wizard) RemoveExample(i int) {
	removeAt(&w.draft.Content.Examples, i)
}

func appendNonEmpty(items *[]string, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	*items = append(*items, s)
	return true
}

func removeAt[T any](items *[]T, i int) bool {
	if i < 0 || i >= len(*items) {
		return false
	}
	*items = append((*items)[:i], (*items)[i+1:]...)
	return true
}
