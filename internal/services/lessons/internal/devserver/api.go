package devserver

import (
	"net/http"
	"strconv"

	"github.com/gamma-omg/speaklexi/internal/pkg/httpx"
	"github.com/gamma-omg/speaklexi/internal/pkg/middleware"
	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/session"
)

const (
	// MediaPath is where stored media files are served.
	MediaPath = "/media/"
	fileField = "archivo"
	// formOverhead is the room left for multipart headers and text fields
	// on top of the file size limit.
	formOverhead = 64 << 10
)

type APIOption func(*API) *API

func WithStore(s *Store) APIOption {
	return func(api *API) *API {
		api.store = s
		return api
	}
}

func WithMediaStore(m *MediaStore) APIOption {
	return func(api *API) *API {
		api.files = m
		return api
	}
}

func WithMaxUploadSize(size int64) APIOption {
	return func(api *API) *API {
		api.maxUploadSize = size
		return api
	}
}

func WithContentRoot(root string) APIOption {
	return func(api *API) *API {
		api.contentRoot = root
		return api
	}
}

// WithAuthSecret protects every write route with an HS256 bearer token
// carrying a teacher or admin role.
func WithAuthSecret(secret string) APIOption {
	return func(api *API) *API {
		api.authSecret = []byte(secret)
		return api
	}
}

type API struct {
	store         *Store
	files         *MediaStore
	maxUploadSize int64
	contentRoot   string
	authSecret    []byte
	mux           *http.ServeMux
}

func NewAPI(opts ...APIOption) *API {
	api := &API{
		maxUploadSize: 20 << 20,
		mux:           http.NewServeMux(),
	}

	for _, opt := range opts {
		api = opt(api)
	}

	if api.store == nil {
		panic("lesson store is required")
	}
	if api.files == nil {
		panic("media store is required")
	}

	api.mount()
	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.mux.ServeHTTP(w, r)
}

func (api *API) mount() {
	api.mux.HandleFunc("GET /healthz", ok)
	api.mux.HandleFunc("GET /readyz", ok)

	api.mux.HandleFunc("GET /api/cursos", api.handleListCourses)
	api.mux.HandleFunc("GET /api/cursos/{id}", api.handleGetCourse)

	api.mux.Handle("POST /api/lecciones", api.write(api.handleCreateLesson))
	api.mux.HandleFunc("GET /api/lecciones", api.handleListLessons)
	api.mux.HandleFunc("GET /api/lecciones/{id}", api.handleGetLesson)
	api.mux.Handle("POST /api/lecciones/{id}/publicar", api.write(api.handlePublishLesson))

	api.mux.Handle("POST /api/lecciones/{id}/actividades", api.write(api.handleCreateActivity))
	api.mux.HandleFunc("GET /api/actividades/leccion/{id}", api.handleListActivities)

	api.mux.Handle("POST /api/multimedia/subir", api.write(api.handleUploadMedia))
	api.mux.Handle("POST /api/multimedia/{id}/asociar", api.write(api.handleAttachMedia))
	api.mux.HandleFunc("GET /api/multimedia", api.handleMediaLibrary)
	api.mux.HandleFunc("GET /api/multimedia/leccion/{id}", api.handleListMedia)

	if api.contentRoot != "" {
		fs := http.FileServer(http.Dir(api.contentRoot))
		api.mux.Handle("GET "+MediaPath, http.StripPrefix(MediaPath, fs))
	}
}

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (api *API) write(h http.HandlerFunc) http.Handler {
	if len(api.authSecret) == 0 {
		return h
	}

	auth := middleware.Auth(api.authSecret)
	role := middleware.RequireRole(session.RoleTeacher, session.RoleAdmin)
	return auth(role(h))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.NewServiceError(err, http.StatusBadRequest, "id inválido")
	}
	return id, nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := httpx.WriteJSON(w, status, body); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type coursesResponse struct {
	Courses []model.Course `json:"cursos"`
}

type courseResponse struct {
	Course model.Course `json:"curso"`
}

func (api *API) handleListCourses(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, coursesResponse{Courses: api.store.Courses()})
}

func (api *API) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	c, err := api.store.Course(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, courseResponse{Course: c})
}

type lessonResponse struct {
	Lesson model.Lesson `json:"leccion"`
}

type lessonsResponse struct {
	Lessons []model.Lesson `json:"lecciones"`
}

func (api *API) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var l model.Lesson
	if err := httpx.ReadJSON(r, &l); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	created, err := api.store.CreateLesson(l)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, lessonResponse{Lesson: created})
}

func (api *API) handleListLessons(w http.ResponseWriter, r *http.Request) {
	var courseID int64
	if v := r.URL.Query().Get("curso_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "curso_id inválido"))
			return
		}
		courseID = id
	}

	respond(w, r, http.StatusOK, lessonsResponse{Lessons: api.store.Lessons(courseID)})
}

func (api *API) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	l, err := api.store.Lesson(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, lessonResponse{Lesson: l})
}

func (api *API) handlePublishLesson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	l, err := api.store.Publish(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, lessonResponse{Lesson: l})
}

type activityResponse struct {
	Activity model.Activity `json:"actividad"`
}

type activitiesResponse struct {
	Activities []model.Activity `json:"actividades"`
}

func (api *API) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	var a model.Activity
	if err := httpx.ReadJSON(r, &a); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	created, err := api.store.CreateActivity(lessonID, a)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, activityResponse{Activity: created})
}

func (api *API) handleListActivities(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	list, err := api.store.Activities(lessonID)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, activitiesResponse{Activities: list})
}

type mediaResponse struct {
	Media model.MediaAsset `json:"multimedia"`
}

type mediaListResponse struct {
	Media []model.MediaAsset `json:"multimedia"`
}

type attachRequest struct {
	LessonID int64 `json:"leccion_id"`
	Order    int   `json:"orden"`
}

func (api *API) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, api.maxUploadSize+formOverhead)
	f, h, err := r.FormFile(fileField)
	if tooLarge(err) {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusRequestEntityTooLarge, "archivo demasiado grande"))
		return
	}
	if err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "archivo inválido"))
		return
	}
	defer f.Close()

	data := http.MaxBytesReader(w, f, api.maxUploadSize)
	asset, err := api.files.Save(h.Filename, data)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	asset.Description = r.FormValue("descripcion")
	asset.Category = r.FormValue("categoria")
	asset = api.store.AddMedia(asset)
	respond(w, r, http.StatusCreated, mediaResponse{Media: asset})
}

func (api *API) handleAttachMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	var req attachRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := api.store.AttachMedia(mediaID, req.LessonID, req.Order); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleListMedia(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	list, err := api.store.Media(lessonID)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, mediaListResponse{Media: list})
}

func (api *API) handleMediaLibrary(w http.ResponseWriter, r *http.Request) {
	list := api.store.Library(r.URL.Query().Get("categoria"))
	respond(w, r, http.StatusOK, mediaListResponse{Media: list})
}
