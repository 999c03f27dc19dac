// Package activity holds the per-kind authoring forms, the modal that picks
// one of them, and grading of typed answers.
package activity

import (
	"math/rand/v2"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/idgen"
	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/notify"
)

// Callbacks connect a form to whoever opened it. Forms never talk to the
// backend; committing only hands the finished activity over.
type Callbacks struct {
	Commit func(model.Activity)
	Cancel func()
}

// Form is the behaviour shared by every activity form.
type Form interface {
	Kind() model.Kind
	Editing() bool
	Submit() (model.Activity, error)
	Cancel()
}

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type deps struct {
	notifier notify.Notifier
	ids      idgen.Generator
	shuffler Shuffler
}

type Option func(*deps) *deps

func WithNotifier(n notify.Notifier) Option {
	return func(d *deps) *deps {
		d.notifier = n
		return d
	}
}

func WithIDs(g idgen.Generator) Option {
	return func(d *deps) *deps {
		d.ids = g
		return d
	}
}

func WithShuffler(s Shuffler) Option {
	return func(d *deps) *deps {
		d.shuffler = s
		return d
	}
}

func newDeps(opts []Option) *deps {
	d := &deps{
		notifier: notify.Discard{},
		ids:      idgen.UUID{},
		shuffler: globalShuffler{},
	}
	for _, opt := range opts {
		d = opt(d)
	}
	return d
}

// base holds the fields every kind has in common.
type base struct {
	*deps
	kind    model.Kind
	cb      Callbacks
	editing bool

	id           int64
	lessonID     int64
	order        int
	prompt       string
	instructions string
	hint         string
	points       int
	timeLimit    int
	mediaID      *int64
	feedback     model.Feedback
}

func newBase(kind model.Kind, existing *model.Activity, cb Callbacks, defaultInstructions string, opts []Option) base {
	b := base{
		deps:         newDeps(opts),
		kind:         kind,
		cb:           cb,
		instructions: defaultInstructions,
		points:       model.DefaultPoints,
	}
	if existing == nil {
		return b
	}

	b.editing = true
	b.id = existing.ID
	b.lessonID = existing.LessonID
	b.order = existing.Order
	b.prompt = existing.Prompt
	if existing.Instructions != "" {
		b.instructions = existing.Instructions
	}
	b.hint = existing.Hint
	if existing.Points > 0 {
		b.points = existing.Points
	}
	b.timeLimit = existing.TimeLimit
	b.mediaID = existing.MediaID
	b.feedback = existing.Feedback
	return b
}

func (b *base) Kind() model.Kind { return b.kind }

func (b *base) Editing() bool { return b.editing }

func (b *base) Prompt() string       { return b.prompt }
func (b *base) Instructions() string { return b.instructions }
func (b *base) Hint() string         { return b.hint }
func (b *base) Points() int          { return b.points }

func (b *base) SetPrompt(s string)       { b.prompt = s }
func (b *base) SetInstructions(s string) { b.instructions = s }
func (b *base) SetHint(s string)         { b.hint = s }
func (b *base) SetPoints(p int)          { b.points = p }
func (b *base) SetTimeLimit(seconds int) { b.timeLimit = seconds }
func (b *base) SetMediaID(id *int64)     { b.mediaID = id }

func (b *base) SetFeedback(f model.Feedback) { b.feedback = f }

func (b *base) Cancel() {
	if b.cb.Cancel != nil {
		b.cb.Cancel()
	}
}

func (b *base) checkPrompt() error {
	if strings.TrimSpace(b.prompt) == "" {
		return serr.Validation("la pregunta es obligatoria")
	}
	return nil
}

// fail reports a rejected submission to the user.
func (b *base) fail(err error) (model.Activity, error) {
	b.notifier.Error(serr.Message(err))
	return model.Activity{}, err
}

// commit validates the assembled activity and hands it to the Commit callback.
func (b *base) commit(p model.Payload) (model.Activity, error) {
	a := model.Activity{
		ID:           b.id,
		LessonID:     b.lessonID,
		Prompt:       strings.TrimSpace(b.prompt),
		Instructions: strings.TrimSpace(b.instructions),
		Hint:         strings.TrimSpace(b.hint),
		Points:       b.points,
		Order:        b.order,
		TimeLimit:    b.timeLimit,
		MediaID:      b.mediaID,
		Feedback:     b.feedback,
		Payload:      p,
	}
	if err := a.Validate(); err != nil {
		return b.fail(err)
	}

	if b.cb.Commit != nil {
		b.cb.Commit(a)
	}
	if b.editing {
		b.notifier.Success("Actividad actualizada")
	} else {
		b.notifier.Success("Actividad creada")
	}
	return a, nil
}

func trimAll(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
