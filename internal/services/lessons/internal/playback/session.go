// Package playback runs a student through the activities of one lesson.
package playback

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/notify"
)

const (
	DefaultAdvanceDelay = 1500 * time.Millisecond

	retryMessage  = "Revisa tu respuesta"
	correctMsg    = "¡Correcto!"
	abandonNotice = "Tu progreso se guarda automáticamente. ¿Seguro que quieres salir de la lección?"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source is the part of the REST API playback reads from.
type Source interface {
	Lesson(ctx context.Context, id int64) (model.Lesson, error)
	Activities(ctx context.Context, lessonID int64) ([]model.Activity, error)
	Media(ctx context.Context, lessonID int64) ([]model.MediaAsset, error)
}

type Guard interface {
	Check(ctx context.Context) error
}

type Option func(*Session) *Session

func WithSource(src Source) Option {
	return func(s *Session) *Session {
		s.source = src
		return s
	}
}

func WithNavigator(n nav.Navigator) Option {
	return func(s *Session) *Session {
		s.navigator = n
		return s
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) *Session {
		s.notifier = n
		return s
	}
}

func WithGuard(g Guard) Option {
	return func(s *Session) *Session {
		s.guard = g
		return s
	}
}

// WithAdvanceDelay sets how long a correct answer stays on screen before the
// next activity is shown.
func WithAdvanceDelay(d time.Duration) Option {
	return func(s *Session) *Session {
		s.delay = d
		return s
	}
}

type Session struct {
	source    Source
	navigator nav.Navigator
	notifier  notify.Notifier
	guard     Guard
	delay     time.Duration

	mu         sync.Mutex
	state      State
	err        error
	lesson     model.Lesson
	activities []model.Activity
	media      []model.MediaAsset
	index      int
	completed  map[int]bool
}

func New(opts ...Option) *Session {
	s := &Session{
		notifier:  notify.Discard{},
		delay:     DefaultAdvanceDelay,
		completed: make(map[int]bool),
	}

	for _, opt := range opts {
		s = opt(s)
	}

	if s.source == nil {
		panic("lesson source is required")
	}
	if s.navigator == nil {
		panic("navigator is required")
	}
	return s
}

// Load fetches the lesson, then its activities and media side by side. Only
// a failed lesson fetch fails the load; the session is then in StateError and
// Load may be called again.
func (s *Session) Load(ctx context.Context, lessonID int64) error {
	s.reset(StateLoading)

	if s.guard != nil {
		if err := s.guard.Check(ctx); err != nil {
			s.fail(err)
			return err
		}
	}

	lesson, err := s.source.Lesson(ctx, lessonID)
	if err != nil {
		slog.Error("failed to load lesson", "error", err, "lesson_id", lessonID)
		lerr := serr.Load(err, "no se pudo cargar la lección")
		s.notifier.Error("Error al cargar la lección")
		s.fail(lerr)
		return lerr
	}

	var (
		wg         sync.WaitGroup
		activities []model.Activity
		media      []model.MediaAsset
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		acts, err := s.source.Activities(ctx, lessonID)
		if err != nil {
			slog.Warn("failed to load activities", "error", err, "lesson_id", lessonID)
			return
		}
		activities = acts
	}()
	go func() {
		defer wg.Done()
		m, err := s.source.Media(ctx, lessonID)
		if err != nil {
			slog.Warn("failed to load media", "error", err, "lesson_id", lessonID)
			return
		}
		media = m
	}()
	wg.Wait()

	model.SortByOrder(activities)
	model.SortMediaByOrder(media)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lesson = lesson
	s.activities = activities
	s.media = media
	s.state = StateInProgress
	return nil
}

func (s *Session) reset(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.err = nil
	s.lesson = model.Lesson{}
	s.activities = nil
	s.media = nil
	s.index = 0
	s.completed = make(map[int]bool)
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateError
	s.err = err
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the load error while in StateError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Lesson() model.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lesson
}

func (s *Session) Activities() []model.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activities)
}

func (s *Session) Media() []model.MediaAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.media)
}

func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Current returns the activity under the cursor. ok is false when the lesson
// has no activities or is not loaded.
func (s *Session) Current() (a model.Activity, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading || s.state == StateError || len(s.activities) == 0 {
		return model.Activity{}, false
	}
	return s.activities[s.index], true
}

// Completed reports whether the activity at index i was answered correctly.
func (s *Session) Completed(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed[i]
}

// Progress returns the number of completed activities and the total.
func (s *Session) Progress() (done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.completed), len(s.activities)
}
