package devserver

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcActivity(prompt string, order int) model.Activity {
	return model.Activity{
		Prompt:  prompt,
		Points:  10,
		Order:   order,
		Payload: model.MultipleChoice{Options: []string{"hola", "adiós"}, Answer: "hola"},
	}
}

func statusOf(err error) int {
	var se *serr.ServiceError
	if !errors.As(err, &se) {
		return 0
	}
	return se.StatusCode
}

func TestStore_CreateLesson(t *testing.T) {
	s := NewStore(DefaultCourses())

	l, err := s.CreateLesson(model.Lesson{CourseID: 1, Title: "  Saludos ", State: model.StatePublished})
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
	assert.Equal(t, "Saludos", l.Title)
	assert.Equal(t, model.StateDraft, l.State)
	assert.NotNil(t, l.CreatedAt)

	got, err := s.Lesson(1)
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestStore_CreateLesson_Invalid(t *testing.T) {
	s := NewStore(DefaultCourses())

	_, err := s.CreateLesson(model.Lesson{CourseID: 1})
	assert.True(t, serr.IsKind(err, serr.KindValidation))

	_, err = s.CreateLesson(model.Lesson{CourseID: 99, Title: "x"})
	assert.True(t, serr.IsKind(err, serr.KindValidation))
}

func TestStore_LessonNotFound(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Lesson(5)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestStore_LessonsByCourse(t *testing.T) {
	s := NewStore(DefaultCourses())
	for _, c := range []int64{1, 2, 1} {
		_, err := s.CreateLesson(model.Lesson{CourseID: c, Title: "x"})
		require.NoError(t, err)
	}

	assert.Len(t, s.Lessons(0), 3)
	byCourse := s.Lessons(1)
	require.Len(t, byCourse, 2)
	assert.Equal(t, int64(1), byCourse[0].ID)
	assert.Equal(t, int64(3), byCourse[1].ID)
}

func TestStore_Activities(t *testing.T) {
	s := NewStore(DefaultCourses())
	l, err := s.CreateLesson(model.Lesson{CourseID: 1, Title: "x"})
	require.NoError(t, err)

	second, err := s.CreateActivity(l.ID, mcActivity("segunda", 2))
	require.NoError(t, err)
	first, err := s.CreateActivity(l.ID, mcActivity("primera", 1))
	require.NoError(t, err)
	auto, err := s.CreateActivity(l.ID, mcActivity("tercera", 0))
	require.NoError(t, err)
	assert.Equal(t, 3, auto.Order)
	assert.Equal(t, l.ID, first.LessonID)

	list, err := s.Activities(l.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, auto.ID, list[2].ID)
}

func TestStore_CreateActivity_Invalid(t *testing.T) {
	s := NewStore(DefaultCourses())
	l, err := s.CreateLesson(model.Lesson{CourseID: 1, Title: "x"})
	require.NoError(t, err)

	_, err = s.CreateActivity(l.ID, mcActivity("", 1))
	assert.True(t, serr.IsKind(err, serr.KindValidation))

	_, err = s.CreateActivity(99, mcActivity("p", 1))
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	missing := int64(7)
	a := mcActivity("p", 1)
	a.MediaID = &missing
	_, err = s.CreateActivity(l.ID, a)
	assert.True(t, serr.IsKind(err, serr.KindValidation))
}

func TestStore_Publish(t *testing.T) {
	s := NewStore(DefaultCourses())
	l, err := s.CreateLesson(model.Lesson{CourseID: 1, Title: "x"})
	require.NoError(t, err)

	_, err = s.Publish(l.ID)
	assert.Equal(t, http.StatusConflict, statusOf(err))

	_, err = s.CreateActivity(l.ID, mcActivity("p", 1))
	require.NoError(t, err)

	published, err := s.Publish(l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatePublished, published.State)
}

func TestStore_Media(t *testing.T) {
	s := NewStore(DefaultCourses())
	l, err := s.CreateLesson(model.Lesson{CourseID: 1, Title: "x"})
	require.NoError(t, err)

	a := s.AddMedia(model.MediaAsset{FileName: "a.png"})
	b := s.AddMedia(model.MediaAsset{FileName: "b.mp3"})

	require.NoError(t, s.AttachMedia(b.ID, l.ID, 1))
	require.NoError(t, s.AttachMedia(a.ID, l.ID, 3))
	require.NoError(t, s.AttachMedia(a.ID, l.ID, 2))

	list, err := s.Media(l.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b.mp3", list[0].FileName)
	assert.Equal(t, "a.png", list[1].FileName)
	assert.Equal(t, 2, list[1].Order)

	assert.Equal(t, http.StatusNotFound, statusOf(s.AttachMedia(99, l.ID, 1)))
	assert.Equal(t, http.StatusNotFound, statusOf(s.AttachMedia(a.ID, 99, 1)))
}

func TestStore_Library(t *testing.T) {
	s := NewStore(DefaultCourses())
	s.AddMedia(model.MediaAsset{FileName: "a.png", Category: "animales"})
	s.AddMedia(model.MediaAsset{FileName: "b.mp3", Category: "saludos"})
	s.AddMedia(model.MediaAsset{FileName: "c.png", Category: "animales"})

	var names []string
	for _, m := range s.Library("") {
		names = append(names, m.FileName)
	}
	assert.Equal(t, []string{"c.png", "b.mp3", "a.png"}, names)

	animals := s.Library("animales")
	require.Len(t, animals, 2)
	assert.Equal(t, "c.png", animals[0].FileName)
	assert.Empty(t, s.Library("colores"))
}
