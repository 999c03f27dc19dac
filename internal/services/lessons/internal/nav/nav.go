// Package nav names the screens the flows can send the user to.
package nav

import (
	"fmt"
	"log/slog"
	"sync"
)

const (
	LessonsPath = "/lecciones"
	LoginPath   = "/login"
)

func EditLessonPath(id int64) string {
	return fmt.Sprintf("/admin/lecciones/%d/editar", id)
}

func LessonPath(id int64) string {
	return fmt.Sprintf("/lecciones/%d", id)
}

type Navigator interface {
	Navigate(path string)
}

// History records navigation requests. It is what the terminal front end
// uses in place of a real router.
type History struct {
	mu    sync.Mutex
	paths []string
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	slog.Debug("navigate", "path", path)
	h.paths = append(h.paths, path)
}

// Last returns the most recent path, or "" when nothing was visited.
func (h *History) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}

func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.paths...)
}
