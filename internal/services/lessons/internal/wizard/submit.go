package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
)

// ItemResult is the outcome of one child request of a submission.
type ItemResult struct {
	Index int
	Label string
	// ID is the backend id of the created activity or media asset.
	ID  int64
	Err error
}

type Outcome struct {
	Succeeded []ItemResult
	Failed    []ItemResult
}

func (o Outcome) Total() int {
	return len(o.Succeeded) + len(o.Failed)
}

func (o Outcome) String() string {
	return fmt.Sprintf("%d succeeded / %d failed", len(o.Succeeded), len(o.Failed))
}

func (o *Outcome) record(r ItemResult) {
	if r.Err != nil {
		o.Failed = append(o.Failed, r)
		return
	}
	o.Succeeded = append(o.Succeeded, r)
}

// SubmitResult describes a submission that got as far as creating the lesson.
// Child failures are listed, not returned as an error.
type SubmitResult struct {
	LessonID   int64
	Activities Outcome
	Media      Outcome
}

// Submit creates the lesson, then each activity, then uploads and attaches
// each staged file, one request at a time. Only a failed lesson create aborts;
// every other failure is recorded and the remaining items are still sent.
// Once the lesson is created the wizard refuses to submit again.
func (w *Wizard) Submit(ctx context.Context) (SubmitResult, error) {
	if w.step != StepMedia {
		return SubmitResult{}, w.reject(serr.Validation("completa todos los pasos antes de guardar"))
	}
	if w.submitting {
		return SubmitResult{}, serr.Validation("la lección ya se está guardando")
	}
	if w.submittedID != 0 {
		return SubmitResult{}, w.reject(serr.Validation("la lección ya fue guardada"))
	}
	if w.draft.CourseID == 0 {
		w.step = StepBasicInfo
		return SubmitResult{}, w.reject(serr.Validation("selecciona un curso"))
	}
	if len(w.draft.Activities) == 0 {
		w.step = StepActivities
		return SubmitResult{}, w.reject(serr.Validation("agrega al menos una actividad"))
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	lessonID, err := w.backend.CreateLesson(ctx, w.draft.Lesson())
	if err != nil {
		slog.Error("failed to create lesson", "error", err, "title", w.draft.Title)
		w.notifier.Error("Error al crear la lección: " + serr.Message(err))
		return SubmitResult{}, serr.Request(err, statusOf(err), "no se pudo crear la lección")
	}

	res := SubmitResult{LessonID: lessonID}
	w.submittedID = lessonID
	w.notifier.Success("Lección creada")

	for i, a := range w.draft.Activities {
		if a.Order == 0 {
			a.Order = i + 1
		}
		a.LessonID = lessonID

		item := ItemResult{Index: i, Label: a.Prompt}
		created, err := w.backend.CreateActivity(ctx, lessonID, a)
		if err != nil {
			slog.Error("failed to create activity", "error", err, "lesson_id", lessonID, "index", i, "kind", a.Kind())
			item.Err = serr.Request(err, statusOf(err), "no se pudo crear la actividad %d", i+1)
		} else {
			item.ID = created.ID
		}
		res.Activities.record(item)
	}
	w.notifyOutcome("Actividades", res.Activities)

	for i, f := range w.draft.Files {
		item := ItemResult{Index: i, Label: f.Name}
		item.ID, item.Err = w.uploadAndAttach(ctx, lessonID, f, i+1)
		if item.Err != nil {
			slog.Error("failed to upload media", "error", item.Err, "lesson_id", lessonID, "file", f.Name)
		}
		res.Media.record(item)
	}
	w.notifyOutcome("Archivos", res.Media)

	w.draft.Files = nil
	w.navigator.Navigate(nav.EditLessonPath(lessonID))
	return res, nil
}

func (w *Wizard) uploadAndAttach(ctx context.Context, lessonID int64, f model.StagedFile, order int) (int64, error) {
	asset, err := w.backend.UploadMedia(ctx, f, w.mediaDesc, w.mediaCat)
	if err != nil {
		return 0, serr.Request(err, statusOf(err), "no se pudo subir %s", f.Name)
	}

	if err := w.backend.AttachMedia(ctx, asset.ID, lessonID, order); err != nil {
		return asset.ID, serr.Request(err, statusOf(err), "no se pudo asociar %s a la lección", f.Name)
	}
	return asset.ID, nil
}

func (w *Wizard) notifyOutcome(what string, o Outcome) {
	switch {
	case o.Total() == 0:
	case len(o.Failed) == 0:
		w.notifier.Success(fmt.Sprintf("%s: %d guardados", what, len(o.Succeeded)))
	default:
		w.notifier.Error(fmt.Sprintf("%s: %d guardados / %d con error", what, len(o.Succeeded), len(o.Failed)))
	}
}

// SubmittedLessonID returns the id of the lesson this wizard created, or 0.
func (w *Wizard) SubmittedLessonID() int64 {
	return w.submittedID
}

func statusOf(err error) int {
	var se *serr.ServiceError
	if errors.As(err, &se) && se.StatusCode != 0 {
		return se.StatusCode
	}
	return http.StatusBadGateway
}
