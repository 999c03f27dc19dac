package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/devserver"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/session"
)

func signIn(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("signin", out)
	token := fs.String("token", "", "issued access token (defaults to LEXI_TOKEN)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token != "" {
		cfg.API.Token = *token
	}
	if cfg.API.Token == "" {
		fmt.Fprintln(out, "signin needs -token or LEXI_TOKEN")
		return errUsage
	}

	sess, closeStore, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	printMarkers(out, sess.Markers())
	return nil
}

func signOut(ctx context.Context, cfg config.Config, out io.Writer) error {
	cfg.API.Token = ""
	sess, closeStore, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := sess.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Sesión cerrada")
	return nil
}

func whoAmI(ctx context.Context, cfg config.Config, out io.Writer) error {
	sess, closeStore, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if !sess.SignedIn() {
		fmt.Fprintln(out, "No hay una sesión activa")
		return session.ErrNoSession
	}
	printMarkers(out, sess.Markers())
	return nil
}

func printMarkers(out io.Writer, m session.Markers) {
	name := m.Name
	if name == "" {
		name = m.UserID
	}
	fmt.Fprintf(out, "%s (%s)\n", name, m.Role)
	if m.Email != "" {
		fmt.Fprintf(out, "  correo: %s\n", m.Email)
	}
	if m.Language != "" || m.Level != "" {
		fmt.Fprintf(out, "  idioma: %s, nivel: %s\n", m.Language, m.Level)
	}
}

// issueToken mints a token signed with the development backend's secret.
func issueToken(cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("token", out)
	role := fs.String("role", session.RoleTeacher, "role claim (alumno, profesor, admin)")
	user := fs.String("user", "1", "user id")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.Dev.AuthSecret == "" {
		return errors.New("issue token: DEV_AUTH_SECRET is not set")
	}

	ti := devserver.NewTokenIssuer(devserver.TokenIssuerConfig{
		Secret: cfg.Dev.AuthSecret,
		Issuer: "speaklexi-dev",
		TTL:    *ttl,
	})
	tok, err := ti.Issue(devserver.Identity{UserID: *user, Role: *role, Name: *name, Email: *email})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tok)
	return nil
}
