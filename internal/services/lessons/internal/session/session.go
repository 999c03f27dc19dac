// Package session holds the signed-in user. Only the non-sensitive markers
// are persisted between runs; the token lives in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no session")

const (
	RoleStudent = "alumno"
	RoleTeacher = "profesor"
	RoleAdmin   = "admin"
)

// Markers are the user details cached between runs.
type Markers struct {
	UserID   string `json:"id"`
	Role     string `json:"rol"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Language string `json:"idioma,omitempty"`
	Level    string `json:"nivel,omitempty"`
}

type Store interface {
	Save(ctx context.Context, m Markers) error
	// Load returns ErrNoSession when nothing is stored.
	Load(ctx context.Context) (Markers, error)
	Clear(ctx context.Context) error
}

type Session struct {
	store Store
	now   func() time.Time

	mu      sync.RWMutex
	token   string
	markers Markers
}

func New(store Store) *Session {
	if store == nil {
		panic("session store is required")
	}
	return &Session{store: store, now: time.Now}
}

// SignIn reads the user from the token claims and persists the markers. The
// signature is not checked; the backend does that on every request.
func (s *Session) SignIn(ctx context.Context, token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return serr.Unauthenticated("el token está vacío")
	}

	m, err := s.parse(token)
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, m); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.markers = m
	return nil
}

func (s *Session) parse(token string) (Markers, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Markers{}, serr.NewServiceError(err, http.StatusUnauthorized, "token inválido")
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(s.now()) {
		return Markers{}, serr.Unauthenticated("la sesión expiró")
	}

	m := Markers{
		UserID:   claimString(claims, "sub"),
		Role:     claimString(claims, "rol"),
		Name:     claimString(claims, "nombre"),
		Email:    claimString(claims, "correo"),
		Language: claimString(claims, "idioma"),
		Level:    claimString(claims, "nivel"),
	}
	if m.UserID == "" {
		m.UserID = claimString(claims, "id")
	}
	if m.UserID == "" {
		return Markers{}, serr.Unauthenticated("el token no identifica al usuario")
	}
	return m, nil
}

func claimString(c jwt.MapClaims, key string) string {
	switch v := c[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Restore loads the markers saved by a previous SignIn. The token is not
// restored.
func (s *Session) Restore(ctx context.Context) error {
	m, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = m
	return nil
}

func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.markers = Markers{}
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) SetPreferences(ctx context.Context, language, level string) error {
	s.mu.Lock()
	if s.markers.UserID == "" {
		s.mu.Unlock()
		return serr.Unauthenticated("no hay una sesión activa")
	}
	s.markers.Language = language
	s.markers.Level = level
	m := s.markers
	s.mu.Unlock()

	if err := s.store.Save(ctx, m); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markers.UserID != ""
}

// Token returns the bearer token, or "" when the session was restored
// without one.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Markers() Markers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markers
}

func (s *Session) IsAdmin() bool {
	return s.HasRole(RoleAdmin)
}

func (s *Session) HasRole(roles ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markers.UserID != "" && slices.Contains(roles, s.markers.Role)
}
