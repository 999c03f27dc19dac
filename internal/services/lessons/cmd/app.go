package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/backend"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/nav"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/notify"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/session"
)

// app wires the client side: session, REST client and course cache.
type app struct {
	sess     *session.Session
	client   *backend.Client
	courses  *backend.CourseCatalog
	notifier notify.Notifier
	history  *nav.History
	closers  []func()
}

func openSessionStore(cfg config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.SessionFile, "":
		return session.NewFileStore(cfg.Session.File), func() {}, nil
	case config.SessionRedis:
		rs := session.NewRedisStore(session.RedisConfig{
			Host:     cfg.Session.Redis.Host,
			Port:     cfg.Session.Redis.Port,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
			TTL:      cfg.Session.Redis.TTL,
			Key:      cfg.Session.Redis.Key,
		})
		return rs, func() { _ = rs.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// newSession signs in with the configured token, or restores the stored
// markers when there is none.
func newSession(ctx context.Context, cfg config.Config) (*session.Session, func(), error) {
	store, closeStore, err := openSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(store)
	if cfg.API.Token != "" {
		err = sess.SignIn(ctx, cfg.API.Token)
	} else if err = sess.Restore(ctx); errors.Is(err, session.ErrNoSession) {
		err = nil
	}
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return sess, closeStore, nil
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	sess, closeStore, err := newSession(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := backend.NewClient(cfg.API.BaseURL,
		backend.WithTokenSource(sess),
		backend.WithTimeout(cfg.API.Timeout),
	)
	if err != nil {
		closeStore()
		return nil, err
	}

	courses := backend.NewCourseCatalog(client, cfg.Courses.CacheKeys, cfg.Courses.CacheCost, cfg.Courses.TTL)
	return &app{
		sess:     sess,
		client:   client,
		courses:  courses,
		notifier: notify.NewTerminal(out),
		history:  &nav.History{},
		closers:  []func(){closeStore, courses.Close},
	}, nil
}

// guard requires a signed-in user holding one of roles, or any signed-in
// user when roles is empty.
func (a *app) guard(roles ...string) *session.Guard {
	return session.NewGuard(a.sess, a.notifier, a.history, roles...)
}

func (a *app) Close() {
	for _, c := range a.closers {
		c()
	}
}
