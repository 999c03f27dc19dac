package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/activity"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/playback"
)

const (
	cmdQuit     = ":salir"
	cmdPrevious = ":anterior"
	cmdNext     = ":siguiente"
)

func play(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	fs := newFlagSet("play", out)
	lessonID := fs.Int64("lesson", 0, "lesson id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lessonID <= 0 {
		fmt.Fprintln(out, "play needs -lesson")
		return errUsage
	}

	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer a.Close()

	s := playback.New(
		playback.WithSource(a.client),
		playback.WithNavigator(a.history),
		playback.WithNotifier(a.notifier),
		playback.WithGuard(a.guard()),
		playback.WithAdvanceDelay(cfg.Playback.AdvanceDelay),
	)
	if err := s.Load(ctx, *lessonID); err != nil {
		return err
	}

	l := s.Lesson()
	fmt.Fprintf(out, "%s\n%s\n", l.Title, l.Description)
	fmt.Fprintf(out, "(%s, %s o %s)\n", cmdQuit, cmdPrevious, cmdNext)

	sc := bufio.NewScanner(in)
	for s.State() == playback.StateInProgress {
		act, ok := s.Current()
		if !ok {
			fmt.Fprintln(out, "La lección no tiene actividades")
			return nil
		}
		_, total := s.Progress()
		render(out, s.Index(), total, act, s.Completed(s.Index()))

		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.AbandonNotice())
			s.Abandon()
			return sc.Err()
		}

		line := strings.TrimSpace(sc.Text())
		switch line {
		case cmdQuit:
			fmt.Fprintln(out, s.AbandonNotice())
			s.Abandon()
			return nil
		case cmdPrevious:
			if !s.Previous() {
				a.notifier.Info("Ya estás en la primera actividad")
			}
			continue
		case cmdNext:
			if err := s.Next(); err != nil {
				a.notifier.Error(serr.Message(err))
			}
			continue
		}

		correct, err := activity.Grade(act, line)
		if err != nil {
			a.notifier.Error(serr.Message(err))
			continue
		}

		v, err := s.Submit(ctx, correct)
		if err != nil {
			return err
		}
		if v.Summary != nil {
			printSummary(out, *v.Summary)
		}
	}
	return nil
}

func render(out io.Writer, index, total int, a model.Activity, done bool) {
	status := ""
	if done {
		status = " ✓"
	}
	fmt.Fprintf(out, "\n[%d/%d] %s%s\n", index+1, total, a.Kind().Title(), status)
	if a.Instructions != "" {
		fmt.Fprintln(out, a.Instructions)
	}
	fmt.Fprintln(out, a.Prompt)

	switch p := a.Payload.(type) {
	case model.MultipleChoice:
		for i, o := range p.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}
	case model.FillBlank:
		fmt.Fprintf(out, "  %s\n", p.Sentence)
	case model.Translation:
		fmt.Fprintf(out, "  %s\n", p.Source)
	case model.TrueFalse:
		fmt.Fprintln(out, "  (v) Verdadero / (f) Falso")
	case model.WordOrder:
		fmt.Fprintf(out, "  %s\n", strings.Join(p.Words, " · "))
	case model.Matching:
		lefts := make([]string, 0, len(p.Pairs))
		rights := make([]string, 0, len(p.Pairs))
		for _, pair := range p.Pairs {
			lefts = append(lefts, pair.Left)
			rights = append(rights, pair.Right)
		}
		if p.ShuffleOptions {
			rand.Shuffle(len(rights), func(i, j int) { rights[i], rights[j] = rights[j], rights[i] })
		}
		fmt.Fprintf(out, "  %s\n  %s\n", strings.Join(lefts, " | "), strings.Join(rights, " | "))
		fmt.Fprintln(out, "  (izquierda=derecha; ...)")
	case model.ListenRepeat:
		fmt.Fprintf(out, "  %s\n", p.Phrase)
	}

	if a.Points > 0 {
		fmt.Fprintf(out, "  %d puntos\n", a.Points)
	}
}

func printSummary(out io.Writer, s playback.Summary) {
	fmt.Fprintf(out, "\n%s: %d de %d actividades completadas, %d XP\n", s.Title, s.Completed, s.Activities, s.XP)
}
