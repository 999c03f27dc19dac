// Package wizard drives the four step lesson authoring flow and its
// best-effort submission.
package wizard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/idgen"
	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/activity"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/notify"
)

type Step int

const (
	StepBasicInfo Step = iota + 1
	StepContent
	StepActivities
	StepMedia
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepContent:
		return "content"
	case StepActivities:
		return "activities"
	case StepMedia:
		return "media"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Backend is the part of the REST API the wizard writes to.
type Backend interface {
	CreateLesson(ctx context.Context, l model.Lesson) (int64, error)
	CreateActivity(ctx context.Context, lessonID int64, a model.Activity) (model.Activity, error)
	UploadMedia(ctx context.Context, f model.StagedFile, description, category string) (model.MediaAsset, error)
	AttachMedia(ctx context.Context, mediaID, lessonID int64, order int) error
}

type CourseCatalog interface {
	Courses(ctx context.Context) ([]model.Course, error)
	Course(ctx context.Context, id int64) (model.Course, error)
}

// Guard rejects callers without a signed-in user.
type Guard interface {
	Check(ctx context.Context) error
}

type Option func(*Wizard) *Wizard

func WithBackend(b Backend) Option {
	return func(w *Wizard) *Wizard {
		w.backend = b
		return w
	}
}

func WithCourses(c CourseCatalog) Option {
	return func(w *Wizard) *Wizard {
		w.courses = c
		return w
	}
}

func WithNavigator(n nav.Navigator) Option {
	return func(w *Wizard) *Wizard {
		w.navigator = n
		return w
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(w *Wizard) *Wizard {
		w.notifier = n
		return w
	}
}

func WithGuard(g Guard) Option {
	return func(w *Wizard) *Wizard {
		w.guard = g
		return w
	}
}

// WithIDs sets the generator for staged file ids and matching pair ids.
func WithIDs(g idgen.Generator) Option {
	return func(w *Wizard) *Wizard {
		w.ids = g
		return w
	}
}

// WithFormOptions passes extra options to every activity form.
func WithFormOptions(opts ...activity.Option) Option {
	return func(w *Wizard) *Wizard {
		w.formOpts = append(w.formOpts, opts...)
		return w
	}
}

type Wizard struct {
	backend   Backend
	courses   CourseCatalog
	navigator nav.Navigator
	notifier  notify.Notifier
	guard     Guard
	ids       idgen.Generator
	formOpts  []activity.Option
	modal     *activity.Modal

	step        Step
	draft       model.LessonDraft
	courseList  []model.Course
	mediaDesc   string
	mediaCat    string
	submitting  bool
	submittedID int64

	// editing is the index of the activity open in the modal, or -1.
	editing int
	editSeq int
}

func New(opts ...Option) *Wizard {
	w := &Wizard{
		notifier: notify.Discard{},
		ids:      idgen.UUID{},
		step:     StepBasicInfo,
		editing:  -1,
	}

	for _, opt := range opts {
		w = opt(w)
	}

	if w.backend == nil {
		panic("backend is required")
	}
	if w.courses == nil {
		panic("course catalog is required")
	}
	if w.navigator == nil {
		panic("navigator is required")
	}

	formOpts := append([]activity.Option{
		activity.WithNotifier(w.notifier),
		activity.WithIDs(w.ids),
	}, w.formOpts...)
	w.modal = activity.NewModal(formOpts...)
	return w
}

// Init checks the signed-in user and loads the course list.
func (w *Wizard) Init(ctx context.Context) error {
	if w.guard != nil {
		if err := w.guard.Check(ctx); err != nil {
			return err
		}
	}

	courses, err := w.courses.Courses(ctx)
	if err != nil {
		w.notifier.Error("Error al cargar cursos")
		return serr.Load(err, "no se pudieron cargar los cursos")
	}

	w.courseList = courses
	return nil
}

func (w *Wizard) CourseList() []model.Course {
	return slices.Clone(w.courseList)
}

func (w *Wizard) Step() Step {
	return w.step
}

// Draft returns a copy of the lesson being authored.
func (w *Wizard) Draft() model.LessonDraft {
	d := w.draft
	d.Activities = slices.Clone(w.draft.Activities)
	d.Files = slices.Clone(w.draft.Files)
	d.Tags = model.NewTagSet(w.draft.Tags.Slice()...)
	d.Content.Objectives = slices.Clone(w.draft.Content.Objectives)
	d.Content.Vocabulary = slices.Clone(w.draft.Content.Vocabulary)
	d.Content.Examples = slices.Clone(w.draft.Content.Examples)
	return d
}

// Next moves one step forward if the current step's guard passes. It is a
// no-op on the last step.
func (w *Wizard) Next() error {
	switch w.step {
	case StepBasicInfo:
		if err := w.checkBasicInfo(); err != nil {
			return w.reject(err)
		}
	case StepActivities:
		if err := w.checkActivities(); err != nil {
			return w.reject(err)
		}
	case StepMedia:
		return nil
	}

	w.step++
	return nil
}

// Back moves one step back. It is a no-op on the first step.
func (w *Wizard) Back() {
	if w.step > StepBasicInfo {
		w.step--
	}
}

func (w *Wizard) checkBasicInfo() error {
	if w.draft.CourseID == 0 {
		return serr.Validation("selecciona un curso")
	}
	if strings.TrimSpace(w.draft.Title) == "" {
		return serr.Validation("el título es obligatorio")
	}
	if strings.TrimSpace(w.draft.Description) == "" {
		return serr.Validation("la descripción es obligatoria")
	}
	return nil
}

func (w *Wizard) checkActivities() error {
	if len(w.draft.Activities) == 0 {
		return serr.Validation("agrega al menos una actividad")
	}
	return nil
}

func (w *Wizard) reject(err error) error {
	w.notifier.Error(serr.Message(err))
	return err
}
