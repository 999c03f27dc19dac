package devserver

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/httpx"
	"github.com/gamma-omg/speaklexi/internal/pkg/testutil"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, opts ...APIOption) *API {
	t.Helper()
	root := t.TempDir()
	files := NewMediaStore(MediaStoreConfig{
		ServeRoot: &url.URL{Path: MediaPath},
		Root:      root,
	})

	base := []APIOption{
		WithStore(NewStore(DefaultCourses())),
		WithMediaStore(files),
		WithContentRoot(root),
		WithMaxUploadSize(1 << 20),
	}
	return NewAPI(append(base, opts...)...)
}

func createLesson(t *testing.T, api http.Handler) model.Lesson {
	t.Helper()
	rec := testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones", model.Lesson{CourseID: 1, Title: "Saludos"})
	require.Equal(t, http.StatusCreated, rec.Code)
	return testutil.ParseResponse[lessonResponse](t, rec).Lesson
}

func TestNewAPI_RequiresStores(t *testing.T) {
	assert.Panics(t, func() { NewAPI() })
	assert.Panics(t, func() { NewAPI(WithStore(NewStore(nil))) })
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	assert.Equal(t, http.StatusOK, testutil.SendRequest(t, api, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, testutil.SendRequest(t, api, http.MethodGet, "/readyz", nil).Code)
}

func TestGETCourses(t *testing.T) {
	api := newAPI(t)

	rec := testutil.SendRequest(t, api, http.MethodGet, "/api/cursos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := testutil.ParseResponse[coursesResponse](t, rec)
	assert.Len(t, resp.Courses, len(DefaultCourses()))

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/cursos/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Francés", testutil.ParseResponse[courseResponse](t, rec).Course.Language)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/cursos/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/cursos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLessonLifecycle(t *testing.T) {
	api := newAPI(t)
	l := createLesson(t, api)
	assert.Equal(t, model.StateDraft, l.State)

	rec := testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones/1/publicar", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "la lección no tiene actividades", testutil.ParseResponse[httpx.ErrorResponse](t, rec).Error)

	rec = testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones/1/actividades", mcActivity("¿Cómo se dice hello?", 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := testutil.ParseResponse[activityResponse](t, rec).Activity
	assert.Equal(t, l.ID, created.LessonID)
	assert.Equal(t, model.KindMultipleChoice, created.Kind())

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/actividades/leccion/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.ParseResponse[activitiesResponse](t, rec).Activities, 1)

	rec = testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones/1/publicar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatePublished, testutil.ParseResponse[lessonResponse](t, rec).Lesson.State)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/lecciones/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatePublished, testutil.ParseResponse[lessonResponse](t, rec).Lesson.State)
}

func TestPOSTLesson_Invalid(t *testing.T) {
	api := newAPI(t)

	rec := testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones", model.Lesson{CourseID: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "el título es obligatorio", testutil.ParseResponse[httpx.ErrorResponse](t, rec).Error)
}

func TestGETLessons_ByCourse(t *testing.T) {
	api := newAPI(t)
	createLesson(t, api)
	rec := testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones", model.Lesson{CourseID: 2, Title: "Otra"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/lecciones?curso_id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lessons := testutil.ParseResponse[lessonsResponse](t, rec).Lessons
	require.Len(t, lessons, 1)
	assert.Equal(t, "Otra", lessons[0].Title)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/lecciones?curso_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPOSTActivity_UnknownKind(t *testing.T) {
	api := newAPI(t)
	createLesson(t, api)

	req := httptest.NewRequest(http.MethodPost, "/api/lecciones/1/actividades",
		strings.NewReader(`{"tipo":"crossword","pregunta":"x"}`))
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMediaUploadAttachServe(t *testing.T) {
	api := newAPI(t)
	createLesson(t, api)
	data := pngBytes(t)

	rec := testutil.SendFile(t, api, http.MethodPost, "/api/multimedia/subir", testutil.TestFile{
		Name:      "gato.png",
		FieldName: "archivo",
		Content:   bytes.NewReader(data),
		Fields:    map[string]string{"descripcion": "un gato", "categoria": "animales"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	asset := testutil.ParseResponse[mediaResponse](t, rec).Media
	assert.Equal(t, int64(1), asset.ID)
	assert.Equal(t, "un gato", asset.Description)
	assert.Equal(t, "animales", asset.Category)
	assert.Equal(t, model.MediaImage, asset.Type)

	rec = testutil.SendRequest(t, api, http.MethodPost, "/api/multimedia/1/asociar", attachRequest{LessonID: 1, Order: 1})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/multimedia/leccion/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.ParseResponse[mediaListResponse](t, rec).Media
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Order)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/multimedia?categoria=animales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.ParseResponse[mediaListResponse](t, rec).Media, 1)

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/multimedia?categoria=colores", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.ParseResponse[mediaListResponse](t, rec).Media)

	rec = testutil.SendRequest(t, api, http.MethodGet, MediaPath+path.Base(asset.URL), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, data, body)
}

func TestMediaUpload_MissingFile(t *testing.T) {
	api := newAPI(t)

	rec := testutil.SendFile(t, api, http.MethodPost, "/api/multimedia/subir", testutil.TestFile{
		Name:      "gato.png",
		FieldName: "imagen",
		Content:   strings.NewReader("x"),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMediaUpload_TooLarge(t *testing.T) {
	api := newAPI(t, WithMaxUploadSize(4096))

	rec := testutil.SendFile(t, api, http.MethodPost, "/api/multimedia/subir", testutil.TestFile{
		Name:      "big.txt",
		FieldName: "archivo",
		Content:   strings.NewReader(strings.Repeat("a", 8192)),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestMediaUpload_BodyCappedBeforeParsing(t *testing.T) {
	api := newAPI(t, WithMaxUploadSize(4096))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("archivo", "big.txt")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), 4<<20))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	total := body.Len()

	src := &countingReader{r: &body}
	req := httptest.NewRequest(http.MethodPost, "/api/multimedia/subir", src)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Less(t, src.n, 1<<20, "read %d of %d bytes", src.n, total)
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestAuth_ProtectsWrites(t *testing.T) {
	api := newAPI(t, WithAuthSecret("secret"))
	body := model.Lesson{CourseID: 1, Title: "Saludos"}

	rec := testutil.SendRequest(t, api, http.MethodPost, "/api/lecciones", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	student := sign(t, "secret", jwt.MapClaims{"sub": "7", "rol": "alumno", "exp": time.Now().Add(time.Hour).Unix()})
	rec = testutil.SendRequestWithHeaders(t, api, http.MethodPost, "/api/lecciones", body,
		map[string]string{"Authorization": "Bearer " + student})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	teacher := sign(t, "secret", jwt.MapClaims{"sub": "8", "rol": "profesor", "exp": time.Now().Add(time.Hour).Unix()})
	rec = testutil.SendRequestWithHeaders(t, api, http.MethodPost, "/api/lecciones", body,
		map[string]string{"Authorization": "Bearer " + teacher})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = testutil.SendRequestWithHeaders(t, api, http.MethodPost, "/api/lecciones/1/publicar", nil,
		map[string]string{"Authorization": "Bearer " + teacher})
	assert.Equal(t, http.StatusConflict, rec.Code, "path values survive the auth chain")

	rec = testutil.SendRequest(t, api, http.MethodGet, "/api/lecciones/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
