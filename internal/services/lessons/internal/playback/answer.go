package playback

import (
	"context"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
)

// Verdict is what the student sees after answering.
type Verdict struct {
	Correct bool
	// Points is the value of the activity, set on a correct answer. It is
	// shown, not added to any total.
	Points  int
	Message string
	// Summary is set when the answer completed the lesson.
	Summary *Summary
}

type Summary struct {
	LessonID   int64
	Title      string
	Activities int
	Completed  int
	XP         int
}

// Submit records the verdict for the current activity. A wrong answer keeps
// the cursor where it is. A right answer on the last activity completes the
// session; on any other activity the cursor advances after the advance delay.
// Submit blocks for that delay and returns ctx.Err() if ctx ends first, in
// which case the activity stays completed but the cursor does not move.
func (s *Session) Submit(ctx context.Context, correct bool) (Verdict, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return Verdict{}, serr.Validation("la lección no está en curso")
	}
	if len(s.activities) == 0 {
		s.mu.Unlock()
		return Verdict{}, serr.Validation("la lección no tiene actividades")
	}

	idx := s.index
	act := s.activities[idx]

	if !correct {
		s.mu.Unlock()
		msg := act.Hint
		if msg == "" {
			msg = retryMessage
		}
		s.notifier.Error(msg)
		return Verdict{Message: msg}, nil
	}

	s.completed[idx] = true
	v := Verdict{
		Correct: true,
		Points:  act.Points,
		Message: act.Feedback.Correct,
	}
	if v.Message == "" {
		v.Message = correctMsg
	}

	if idx == len(s.activities)-1 {
		s.state = StateCompleted
		sum := s.summaryLocked()
		v.Summary = &sum
		s.mu.Unlock()
		s.notifier.Success("¡Lección completada!")
		return v, nil
	}
	s.mu.Unlock()

	s.notifier.Success(v.Message)
	if err := s.wait(ctx); err != nil {
		return v, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The student may have moved the cursor during the delay.
	if s.state == StateInProgress && s.index == idx {
		s.index++
	}
	return v, nil
}

func (s *Session) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(s.delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Next moves to the following activity. The current one must be completed
// first, and there must be a following one.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return serr.Validation("la lección no está en curso")
	}
	if s.index >= len(s.activities)-1 {
		return serr.Validation("ya estás en la última actividad")
	}
	if !s.completed[s.index] {
		return serr.Validation("completa la actividad actual para continuar")
	}

	s.index++
	return nil
}

// Previous moves back one activity and reports whether it moved.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.index == 0 {
		return false
	}
	s.index--
	return true
}

func (s *Session) AbandonNotice() string {
	return abandonNotice
}

// Abandon leaves the lesson for the lesson list.
func (s *Session) Abandon() {
	s.navigator.Navigate(nav.LessonsPath)
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	return Summary{
		LessonID:   s.lesson.ID,
		Title:      s.lesson.Title,
		Activities: len(s.activities),
		Completed:  len(s.completed),
		XP:         s.lesson.XP,
	}
}
