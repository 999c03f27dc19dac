package session

import (
	"context"
	"net/http"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/notify"
)

// Guard protects a screen. Without a signed-in user it shows a notice and
// sends the user to sign in.
type Guard struct {
	sess      *Session
	notifier  notify.Notifier
	navigator nav.Navigator
	roles     []string
}

// NewGuard returns a guard that also requires one of roles when any are
// given.
func NewGuard(sess *Session, n notify.Notifier, navigator nav.Navigator, roles ...string) *Guard {
	return &Guard{
		sess:      sess,
		notifier:  n,
		navigator: navigator,
		roles:     roles,
	}
}

func (g *Guard) Check(ctx context.Context) error {
	if !g.sess.SignedIn() {
		g.notifier.Info("Debes iniciar sesión para continuar")
		g.navigator.Navigate(nav.LoginPath)
		return serr.Unauthenticated("no hay una sesión activa")
	}

	if len(g.roles) > 0 && !g.sess.HasRole(g.roles...) {
		g.notifier.Error("No tienes permisos para acceder a esta sección")
		g.navigator.Navigate(nav.LessonsPath)
		se := serr.NewServiceError(nil, http.StatusForbidden, "permiso denegado")
		se.Kind = serr.KindAuth
		se.Env["role"] = g.sess.Markers().Role
		return se
	}
	return nil
}
