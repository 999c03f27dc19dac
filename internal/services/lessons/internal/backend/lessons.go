package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

type lessonsResponse struct {
	Lessons []model.Lesson `json:"lecciones"`
}

// Lessons lists the lessons of a course, or of every course when courseID
// is 0.
func (c *Client) Lessons(ctx context.Context, courseID int64) ([]model.Lesson, error) {
	path := "/api/lecciones"
	if courseID != 0 {
		q := url.Values{"curso_id": {strconv.FormatInt(courseID, 10)}}
		path += "?" + q.Encode()
	}

	var resp lessonsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lessons, nil
}

type lessonResponse struct {
	Lesson   *model.Lesson `json:"leccion"`
	ID       int64         `json:"id"`
	LessonID int64         `json:"leccion_id"`
}

func (r lessonResponse) id() int64 {
	switch {
	case r.Lesson != nil && r.Lesson.ID != 0:
		return r.Lesson.ID
	case r.LessonID != 0:
		return r.LessonID
	default:
		return r.ID
	}
}

// CreateLesson posts a new lesson and returns the id assigned by the backend.
func (c *Client) CreateLesson(ctx context.Context, l model.Lesson) (int64, error) {
	var resp lessonResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/lecciones", l, &resp); err != nil {
		return 0, err
	}

	id := resp.id()
	if id == 0 {
		return 0, fmt.Errorf("create lesson: response carries no id")
	}
	return id, nil
}

func (c *Client) Lesson(ctx context.Context, id int64) (model.Lesson, error) {
	var resp lessonResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/lecciones/%d", id), nil, &resp); err != nil {
		return model.Lesson{}, err
	}
	if resp.Lesson == nil {
		return model.Lesson{}, fmt.Errorf("get lesson %d: empty response", id)
	}
	return *resp.Lesson, nil
}

func (c *Client) PublishLesson(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/lecciones/%d/publicar", id), nil, nil)
}

type activityResponse struct {
	Activity *model.Activity `json:"actividad"`
}

type activitiesResponse struct {
	Activities []model.Activity `json:"actividades"`
}

func (c *Client) CreateActivity(ctx context.Context, lessonID int64, a model.Activity) (model.Activity, error) {
	a.LessonID = lessonID

	var resp activityResponse
	path := fmt.Sprintf("/api/lecciones/%d/actividades", lessonID)
	if err := c.doJSON(ctx, http.MethodPost, path, a, &resp); err != nil {
		return model.Activity{}, err
	}
	if resp.Activity == nil {
		return a, nil
	}
	return *resp.Activity, nil
}

func (c *Client) Activities(ctx context.Context, lessonID int64) ([]model.Activity, error) {
	var resp activitiesResponse
	path := fmt.Sprintf("/api/actividades/leccion/%d", lessonID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

type coursesResponse struct {
	Courses []model.Course `json:"cursos"`
}

type courseResponse struct {
	Course *model.Course `json:"curso"`
}

func (c *Client) Courses(ctx context.Context) ([]model.Course, error) {
	var resp coursesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/cursos", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

func (c *Client) Course(ctx context.Context, id int64) (model.Course, error) {
	var resp courseResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cursos/%d", id), nil, &resp); err != nil {
		return model.Course{}, err
	}
	if resp.Course == nil {
		return model.Course{}, fmt.Errorf("get course %d: empty response", id)
	}
	return *resp.Course, nil
}
