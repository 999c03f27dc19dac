package playback

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	LessonFunc     func(ctx context.Context, id int64) (model.Lesson, error)
	ActivitiesFunc func(ctx context.Context, lessonID int64) ([]model.Activity, error)
	MediaFunc      func(ctx context.Context, lessonID int64) ([]model.MediaAsset, error)
}

func (m *mockSource) Lesson(ctx context.Context, id int64) (model.Lesson, error) {
	return m.LessonFunc(ctx, id)
}

func (m *mockSource) Activities(ctx context.Context, lessonID int64) ([]model.Activity, error) {
	return m.ActivitiesFunc(ctx, lessonID)
}

func (m *mockSource) Media(ctx context.Context, lessonID int64) ([]model.MediaAsset, error) {
	return m.MediaFunc(ctx, lessonID)
}

type mockGuard struct {
	err error
}

func (m *mockGuard) Check(context.Context) error { return m.err }

func threeActivities() []model.Activity {
	return []model.Activity{
		{ID: 12, Prompt: "third", Order: 3, Points: 30, Payload: model.TrueFalse{}},
		{ID: 10, Prompt: "first", Order: 1, Points: 10, Hint: "Piensa en el verbo to be", Payload: model.TrueFalse{Answer: true}},
		{ID: 11, Prompt: "second", Order: 2, Points: 20, Payload: model.TrueFalse{}},
	}
}

func newSource(acts []model.Activity) *mockSource {
	return &mockSource{
		LessonFunc: func(ctx context.Context, id int64) (model.Lesson, error) {
			return model.Lesson{ID: id, Title: "Saludos", XP: 50}, nil
		},
		ActivitiesFunc: func(ctx context.Context, lessonID int64) ([]model.Activity, error) {
			return acts, nil
		},
		MediaFunc: func(ctx context.Context, lessonID int64) ([]model.MediaAsset, error) {
			return []model.MediaAsset{{ID: 2, Order: 2}, {ID: 1, Order: 1}}, nil
		},
	}
}

func loaded(t *testing.T, src Source, opts ...Option) (*Session, *nav.History) {
	t.Helper()

	h := &nav.History{}
	s := New(append([]Option{WithSource(src), WithNavigator(h), WithAdvanceDelay(0)}, opts...)...)
	require.NoError(t, s.Load(context.Background(), 5))
	require.Equal(t, StateInProgress, s.State())
	return s, h
}

func TestNew_RequiresDependencies(t *testing.T) {
	assert.Panics(t, func() { New() })
	assert.Panics(t, func() { New(WithSource(&mockSource{})) })
}

func TestLoad_SortsByOrder(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()))

	acts := s.Activities()
	require.Len(t, acts, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{acts[0].Prompt, acts[1].Prompt, acts[2].Prompt})
	assert.Equal(t, int64(1), s.Media()[0].ID)
	assert.Equal(t, "Saludos", s.Lesson().Title)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "first", cur.Prompt)
}

func TestLoad_LessonFailure(t *testing.T) {
	slog.SetDefault(slog.New(slog.DiscardHandler))

	calls := 0
	src := newSource(threeActivities())
	src.LessonFunc = func(ctx context.Context, id int64) (model.Lesson, error) {
		calls++
		if calls == 1 {
			return model.Lesson{}, errors.New("connection refused")
		}
		return model.Lesson{ID: id}, nil
	}
	s := New(WithSource(src), WithNavigator(&nav.History{}))

	err := s.Load(context.Background(), 5)

	require.Error(t, err)
	assert.True(t, serr.IsKind(err, serr.KindLoad))
	assert.Equal(t, StateError, s.State())
	assert.Equal(t, err, s.Err())
	_, ok := s.Current()
	assert.False(t, ok)

	require.NoError(t, s.Load(context.Background(), 5))
	assert.Equal(t, StateInProgress, s.State())
	assert.NoError(t, s.Err())
}

func TestLoad_ChildFailuresAreBestEffort(t *testing.T) {
	slog.SetDefault(slog.New(slog.DiscardHandler))

	src := newSource(nil)
	src.ActivitiesFunc = func(ctx context.Context, lessonID int64) ([]model.Activity, error) {
		return nil, errors.New("boom")
	}
	src.MediaFunc = func(ctx context.Context, lessonID int64) ([]model.MediaAsset, error) {
		return nil, errors.New("boom")
	}

	s, _ := loaded(t, src)

	assert.Empty(t, s.Activities())
	assert.Empty(t, s.Media())
	_, ok := s.Current()
	assert.False(t, ok)
	done, total := s.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 0, total)

	_, err := s.Submit(context.Background(), true)
	assert.Error(t, err)
}

func TestLoad_Guard(t *testing.T) {
	s := New(
		WithSource(newSource(nil)),
		WithNavigator(&nav.History{}),
		WithGuard(&mockGuard{err: serr.Unauthenticated("inicia sesión")}),
	)

	err := s.Load(context.Background(), 1)

	assert.True(t, serr.IsKind(err, serr.KindAuth))
	assert.Equal(t, StateError, s.State())
}

func TestSubmit_ThreeActivities(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()))
	ctx := context.Background()

	v, err := s.Submit(ctx, false)
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, "Piensa en el verbo to be", v.Message)
	assert.Equal(t, 0, s.Index())

	v, err = s.Submit(ctx, true)
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, 10, v.Points)
	assert.Equal(t, 1, s.Index())
	assert.True(t, s.Completed(0))

	v, err = s.Submit(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "Revisa tu respuesta", v.Message)

	_, err = s.Submit(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Index())

	v, err = s.Submit(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, 2, s.Index())
	require.NotNil(t, v.Summary)
	assert.Equal(t, Summary{LessonID: 5, Title: "Saludos", Activities: 3, Completed: 3, XP: 50}, *v.Summary)

	_, err = s.Submit(ctx, true)
	assert.Error(t, err)
}

func TestSubmit_WaitsForAdvanceDelay(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()), WithAdvanceDelay(20*time.Millisecond))

	start := time.Now()
	_, err := s.Submit(context.Background(), true)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 1, s.Index())
}

func TestSubmit_CancelledDuringDelay(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()), WithAdvanceDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := s.Submit(ctx, true)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, v.Correct)
	assert.True(t, s.Completed(0))
	assert.Equal(t, 0, s.Index())
}

func TestNext_GatedOnCompletion(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()), WithAdvanceDelay(time.Hour))

	err := s.Next()
	require.Error(t, err)
	assert.Equal(t, 0, s.Index())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = s.Submit(ctx, true)

	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.Index())
}

func TestNext_LastActivity(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()))
	ctx := context.Background()
	_, _ = s.Submit(ctx, true)
	_, _ = s.Submit(ctx, true)
	require.Equal(t, 2, s.Index())

	assert.Error(t, s.Next())
}

func TestPrevious(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()))
	assert.False(t, s.Previous())

	_, err := s.Submit(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, s.Previous())
	assert.Equal(t, 0, s.Index())

	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.Index())
}

func TestProgress(t *testing.T) {
	s, _ := loaded(t, newSource(threeActivities()))
	_, _ = s.Submit(context.Background(), true)

	done, total := s.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, Summary{LessonID: 5, Title: "Saludos", Activities: 3, Completed: 1, XP: 50}, s.Summary())
}

func TestAbandon(t *testing.T) {
	s, h := loaded(t, newSource(threeActivities()))

	assert.NotEmpty(t, s.AbandonNotice())
	s.Abandon()

	assert.Equal(t, "/lecciones", h.Last())
}
