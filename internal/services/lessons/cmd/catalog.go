package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/session"
)

// listLessons prints the admin lesson list.
func listLessons(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("lessons", out)
	courseID := fs.Int64("course", 0, "only lessons of this course")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.guard(session.RoleTeacher, session.RoleAdmin).Check(ctx); err != nil {
		return err
	}

	lessons, err := a.client.Lessons(ctx, *courseID)
	if err != nil {
		a.notifier.Error("Error al cargar lecciones")
		return serr.Load(err, "no se pudieron cargar las lecciones")
	}
	if len(lessons) == 0 {
		fmt.Fprintln(out, "No hay lecciones")
		return nil
	}

	for _, l := range lessons {
		fmt.Fprintf(out, "%4d  %-10s  %s\n", l.ID, l.State, l.Title)
	}
	return nil
}

// listMedia prints the media library, or the media of one lesson.
func listMedia(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("media", out)
	lessonID := fs.Int64("lesson", 0, "only media attached to this lesson")
	category := fs.String("category", "", "only media of this category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.guard(session.RoleTeacher, session.RoleAdmin).Check(ctx); err != nil {
		return err
	}

	var media []model.MediaAsset
	if *lessonID != 0 {
		media, err = a.client.Media(ctx, *lessonID)
	} else {
		media, err = a.client.MediaLibrary(ctx, *category)
	}
	if err != nil {
		a.notifier.Error("Error al cargar multimedia")
		return serr.Load(err, "no se pudo cargar la multimedia")
	}
	if len(media) == 0 {
		fmt.Fprintln(out, "No hay archivos")
		return nil
	}

	for _, m := range media {
		fmt.Fprintf(out, "%4d  %-9s  %s  %s\n", m.ID, m.Type, m.FileName, m.URL)
	}
	return nil
}

// switchCourse lists the courses, or moves the signed-in user to the course
// given with -id.
func switchCourse(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("course", out)
	id := fs.Int64("id", 0, "course to switch to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.guard().Check(ctx); err != nil {
		return err
	}

	if *id == 0 {
		courses, err := a.courses.Courses(ctx)
		if err != nil {
			a.notifier.Error("Error al cargar cursos")
			return serr.Load(err, "no se pudieron cargar los cursos")
		}

		m := a.sess.Markers()
		for _, c := range courses {
			mark := " "
			if c.Language == m.Language && string(c.Level) == m.Level {
				mark = "*"
			}
			state := ""
			if !c.Active {
				state = " (en desarrollo)"
			}
			fmt.Fprintf(out, "%s %4d  %s%s\n", mark, c.ID, c.Name, state)
		}
		return nil
	}

	c, err := a.courses.Course(ctx, *id)
	if err != nil {
		return err
	}
	if !c.Active {
		err := serr.Validation("el curso de %s está en desarrollo", c.Language)
		a.notifier.Error(serr.Message(err))
		return err
	}

	if err := a.sess.SetPreferences(ctx, c.Language, string(c.Level)); err != nil {
		return err
	}
	a.notifier.Success(fmt.Sprintf("Curso cambiado a %s", c.Name))
	return nil
}
