package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/draft"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/session"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/wizard"
)

func author(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("author", out)
	file := fs.String("f", "", "YAML lesson draft")
	publish := fs.Bool("publish", false, "publish the lesson after creating it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fmt.Fprintln(out, "author needs -f")
		return errUsage
	}

	d, err := loadDraft(*file)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer a.Close()

	w := wizard.New(
		wizard.WithBackend(a.client),
		wizard.WithCourses(a.courses),
		wizard.WithNavigator(a.history),
		wizard.WithNotifier(a.notifier),
		wizard.WithGuard(a.guard(session.RoleTeacher, session.RoleAdmin)),
	)
	if err := w.Init(ctx); err != nil {
		return err
	}
	if err := d.Apply(ctx, w, filepath.Dir(*file)); err != nil {
		return err
	}

	res, err := w.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Lección %d: actividades %s, archivos %s\n", res.LessonID, res.Activities, res.Media)
	for _, r := range append(res.Activities.Failed, res.Media.Failed...) {
		fmt.Fprintf(out, "  %d %s: %v\n", r.Index+1, r.Label, r.Err)
	}
	fmt.Fprintf(out, "Editar en %s\n", a.history.Last())

	if !*publish {
		return nil
	}
	if len(res.Activities.Succeeded) == 0 {
		return fmt.Errorf("publish lesson %d: no activity was saved", res.LessonID)
	}
	if err := a.client.PublishLesson(ctx, res.LessonID); err != nil {
		return fmt.Errorf("publish lesson %d: %w", res.LessonID, err)
	}
	a.notifier.Success("Lección publicada")
	return nil
}

func loadDraft(path string) (draft.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("open draft: %w", err)
	}
	defer f.Close()

	return draft.Load(f)
}
