package draft

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gamma-omg/speaklexi/internal/pkg/idgen"
	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/notify"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	lessons    []model.Lesson
	activities []model.Activity
	uploaded   []model.StagedFile
}

func (m *mockBackend) CreateLesson(ctx context.Context, l model.Lesson) (int64, error) {
	m.lessons = append(m.lessons, l)
	return int64(len(m.lessons)), nil
}

func (m *mockBackend) CreateActivity(ctx context.Context, lessonID int64, a model.Activity) (model.Activity, error) {
	m.activities = append(m.activities, a)
	return a, nil
}

func (m *mockBackend) UploadMedia(ctx context.Context, f model.StagedFile, description, category string) (model.MediaAsset, error) {
	m.uploaded = append(m.uploaded, f)
	return model.MediaAsset{ID: int64(len(m.uploaded))}, nil
}

func (m *mockBackend) AttachMedia(ctx context.Context, mediaID, lessonID int64, order int) error {
	return nil
}

type mockCourses struct{}

func (mockCourses) Courses(ctx context.Context) ([]model.Course, error) {
	return []model.Course{{ID: 1, Name: "Inglés Básico", Level: model.LevelBeginner, Language: "Inglés"}}, nil
}

func (mockCourses) Course(ctx context.Context, id int64) (model.Course, error) {
	if id != 1 {
		return model.Course{}, errors.New("not found")
	}
	return model.Course{ID: 1, Name: "Inglés Básico", Level: model.LevelBeginner, Language: "Inglés"}, nil
}

func newWizard(t *testing.T, b *mockBackend) *wizard.Wizard {
	t.Helper()
	w := wizard.New(
		wizard.WithBackend(b),
		wizard.WithCourses(mockCourses{}),
		wizard.WithNavigator(&nav.History{}),
		wizard.WithNotifier(notify.Discard{}),
		wizard.WithIDs(idgen.NewCounter("f")),
	)
	require.NoError(t, w.Init(context.Background()))
	return w
}

func loadFile(t *testing.T, name string) Draft {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	d, err := Load(f)
	require.NoError(t, err)
	return d
}

func TestLoad(t *testing.T) {
	d := loadFile(t, "saludos.yaml")

	assert.Equal(t, int64(1), d.CourseID)
	assert.Equal(t, "Saludos básicos", d.Title)
	assert.Len(t, d.Activities, 6)
	assert.Equal(t, []string{"hello", "goodbye", "thanks"}, d.Activities[0].Options)
	require.NotNil(t, d.Activities[2].True)
	assert.True(t, *d.Activities[2].True)
	require.NotNil(t, d.Activities[5].ShuffleOptions)
	assert.False(t, *d.Activities[5].ShuffleOptions)
	assert.Equal(t, []string{"notas.txt"}, d.Media.Files)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "titulo: x\ncolor: rojo\n"},
		{"unknown kind", "titulo: x\nactividades:\n  - tipo: crucigrama\n"},
		{"malformed", "titulo: [x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	b := &mockBackend{}
	w := newWizard(t, b)
	d := loadFile(t, "saludos.yaml")

	require.NoError(t, d.Apply(context.Background(), w, "testdata"))
	assert.Equal(t, wizard.StepMedia, w.Step())

	draft := w.Draft()
	assert.Equal(t, model.LevelBeginner, draft.Level)
	assert.Equal(t, "Inglés", draft.Language)
	assert.Equal(t, 2, draft.Tags.Len())
	assert.Equal(t, []string{"Saludar formalmente", "Despedirse"}, draft.Content.Objectives)
	require.Len(t, draft.Activities, 6)
	require.Len(t, draft.Files, 1)
	assert.Equal(t, "notas.txt", draft.Files[0].Name)

	acts := draft.Activities
	assert.Equal(t, model.MultipleChoice{Options: []string{"hello", "goodbye", "thanks"}, Answer: "hello"}, acts[0].Payload)
	assert.Equal(t, "Empieza con h", acts[0].Hint)
	assert.Equal(t, model.DefaultPoints, acts[0].Points)
	assert.Equal(t, 5, acts[1].Points)
	assert.Equal(t, model.TrueFalse{Answer: true}, acts[2].Payload)
	assert.Equal(t, "Goodbye se usa al despedirse.", acts[2].Feedback.Explanation)

	wo, ok := acts[3].Payload.(model.WordOrder)
	require.True(t, ok)
	assert.Equal(t, []string{"how", "are", "you", "today"}, wo.CorrectOrder)
	assert.ElementsMatch(t, wo.CorrectOrder, wo.Words)

	m, ok := acts[5].Payload.(model.Matching)
	require.True(t, ok)
	assert.Len(t, m.Pairs, 2)
	assert.False(t, m.ShuffleOptions)

	res, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Activities.Succeeded, 6)
	assert.Len(t, res.Media.Succeeded, 1)
	assert.Len(t, b.uploaded, 1)
}

func TestApply_InvalidActivity(t *testing.T) {
	w := newWizard(t, &mockBackend{})
	d := Draft{
		CourseID:    1,
		Title:       "x",
		Description: "y",
		Activities:  []Activity{{Kind: "true_false", Prompt: "¿Sí?"}},
	}

	err := d.Apply(context.Background(), w, ".")
	require.Error(t, err)
	assert.True(t, serr.IsKind(err, serr.KindValidation))
	assert.Contains(t, err.Error(), "activity 1")
	assert.False(t, w.Modal().IsOpen())
	assert.Equal(t, wizard.StepActivities, w.Step())
}

func TestApply_MissingBasicInfo(t *testing.T) {
	w := newWizard(t, &mockBackend{})
	d := Draft{CourseID: 1, Title: "x"}

	err := d.Apply(context.Background(), w, ".")
	assert.True(t, serr.IsKind(err, serr.KindValidation))
	assert.Equal(t, wizard.StepBasicInfo, w.Step())
}

func TestApply_UnknownCourse(t *testing.T) {
	w := newWizard(t, &mockBackend{})
	d := Draft{CourseID: 9, Title: "x", Description: "y"}

	err := d.Apply(context.Background(), w, ".")
	assert.True(t, serr.IsKind(err, serr.KindLoad))
}

func TestApply_ListenRepeatRejected(t *testing.T) {
	w := newWizard(t, &mockBackend{})
	d := Draft{
		CourseID:    1,
		Title:       "x",
		Description: "y",
		Activities:  []Activity{{Kind: "listen_repeat", Prompt: "Repite", Phrase: "hello"}},
	}

	err := d.Apply(context.Background(), w, ".")
	assert.Error(t, err)
	assert.Empty(t, w.Activities())
}
