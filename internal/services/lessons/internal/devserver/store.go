// Package devserver is an in-memory SpeakLexi backend for local authoring
// and playback.
package devserver

import (
	"cmp"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// DefaultCourses seeds a fresh store.
func DefaultCourses() []model.Course {
	return []model.Course{
		{ID: 1, Code: "ING-A1", Name: "Inglés Básico", Level: model.LevelBeginner, Language: "Inglés", Active: true},
		{ID: 2, Code: "ING-B1", Name: "Inglés Intermedio", Level: model.LevelIntermediate, Language: "Inglés", Active: true},
		{ID: 3, Code: "FRA-A1", Name: "Francés Básico", Level: model.LevelBeginner, Language: "Francés", Active: true},
		{ID: 4, Code: "ALE-C1", Name: "Alemán Avanzado", Level: model.LevelAdvanced, Language: "Alemán", Active: false},
	}
}

type attachment struct {
	mediaID int64
	order   int
}

// Store keeps lessons, activities and media metadata in memory.
type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	courses     map[int64]model.Course
	lessons     map[int64]model.Lesson
	activities  map[int64][]model.Activity
	media       map[int64]model.MediaAsset
	attachments map[int64][]attachment
	lastLesson  int64
	lastAct     int64
	lastMedia   int64
}

func NewStore(courses []model.Course) *Store {
	s := &Store{
		now:         time.Now,
		courses:     make(map[int64]model.Course, len(courses)),
		lessons:     make(map[int64]model.Lesson),
		activities:  make(map[int64][]model.Activity),
		media:       make(map[int64]model.MediaAsset),
		attachments: make(map[int64][]attachment),
	}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func notFound(msg string, args ...any) error {
	return serr.NewServiceError(nil, http.StatusNotFound, msg, args...)
}

func (s *Store) Courses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b model.Course) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Store) Course(id int64) (model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return model.Course{}, notFound("curso %d no encontrado", id)
	}
	return c, nil
}

func (s *Store) CreateLesson(l model.Lesson) (model.Lesson, error) {
	l.Title = strings.TrimSpace(l.Title)
	if l.Title == "" {
		return model.Lesson{}, serr.Validation("el título es obligatorio")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[l.CourseID]; !ok {
		return model.Lesson{}, serr.Validation("el curso %d no existe", l.CourseID)
	}

	s.lastLesson++
	created := s.now().UTC()
	l.ID = s.lastLesson
	l.State = model.StateDraft
	l.CreatedAt = &created
	s.lessons[l.ID] = l
	return l, nil
}

func (s *Store) Lesson(id int64) (model.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lessons[id]
	if !ok {
		return model.Lesson{}, notFound("lección %d no encontrada", id)
	}
	return l, nil
}

// Lessons returns all lessons, optionally filtered by course (0 keeps all).
func (s *Store) Lessons(courseID int64) []model.Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Lesson, 0, len(s.lessons))
	for _, l := range s.lessons {
		if courseID == 0 || l.CourseID == courseID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b model.Lesson) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Publish moves a lesson with at least one activity to the published state.
func (s *Store) Publish(id int64) (model.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lessons[id]
	if !ok {
		return model.Lesson{}, notFound("lección %d no encontrada", id)
	}
	if len(s.activities[id]) == 0 {
		return model.Lesson{}, serr.NewServiceError(nil, http.StatusConflict, "la lección no tiene actividades")
	}

	l.State = model.StatePublished
	s.lessons[id] = l
	return l, nil
}

func (s *Store) CreateActivity(lessonID int64, a model.Activity) (model.Activity, error) {
	if err := a.Validate(); err != nil {
		return model.Activity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lessons[lessonID]; !ok {
		return model.Activity{}, notFound("lección %d no encontrada", lessonID)
	}

	s.lastAct++
	a.ID = s.lastAct
	a.LessonID = lessonID
	if a.Order == 0 {
		a.Order = len(s.activities[lessonID]) + 1
	}
	if a.MediaID != nil {
		if _, ok := s.media[*a.MediaID]; !ok {
			return model.Activity{}, serr.Validation("el archivo %d no existe", *a.MediaID)
		}
	}

	s.activities[lessonID] = append(s.activities[lessonID], a)
	return a, nil
}

func (s *Store) Activities(lessonID int64) ([]model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lessons[lessonID]; !ok {
		return nil, notFound("lección %d no encontrada", lessonID)
	}

	out := slices.Clone(s.activities[lessonID])
	model.SortByOrder(out)
	return out, nil
}

func (s *Store) AddMedia(m model.MediaAsset) model.MediaAsset {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastMedia++
	m.ID = s.lastMedia
	s.media[m.ID] = m
	return m
}

// AttachMedia links a media asset to a lesson. Attaching the same asset twice
// updates its position.
func (s *Store) AttachMedia(mediaID, lessonID int64, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.media[mediaID]; !ok {
		return notFound("archivo %d no encontrado", mediaID)
	}
	if _, ok := s.lessons[lessonID]; !ok {
		return notFound("lección %d no encontrada", lessonID)
	}

	links := s.attachments[lessonID]
	for i := range links {
		if links[i].mediaID == mediaID {
			links[i].order = order
			return nil
		}
	}
	s.attachments[lessonID] = append(links, attachment{mediaID: mediaID, order: order})
	return nil
}

func (s *Store) Media(lessonID int64) ([]model.MediaAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lessons[lessonID]; !ok {
		return nil, notFound("lección %d no encontrada", lessonID)
	}

	links := s.attachments[lessonID]
	out := make([]model.MediaAsset, 0, len(links))
	for _, l := range links {
		m := s.media[l.mediaID]
		m.Order = l.order
		out = append(out, m)
	}
	model.SortMediaByOrder(out)
	return out, nil
}

// Library lists every uploaded asset, newest first, optionally filtered by
// category.
func (s *Store) Library(category string) []model.MediaAsset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MediaAsset, 0, len(s.media))
	for _, m := range s.media {
		if category == "" || m.Category == category {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b model.MediaAsset) int { return cmp.Compare(b.ID, a.ID) })
	return out
}
