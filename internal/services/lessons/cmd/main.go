package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamma-omg/speaklexi/internal/pkg/env"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
)

const usage = `usage: lessonctl <command> [flags]

commands:
  serve                     run the development backend
  signin -token T           sign in with an issued token
  signout                   forget the stored session
  whoami                    show the signed-in user
  author -f draft.yaml      create a lesson from a YAML draft
  play -lesson ID           play a lesson in the terminal
  lessons [-course ID]      list lessons
  media [-lesson ID]        list the media library or a lesson's media
  course [-id ID]           list courses or switch to one
  token -role R             issue a token for the development backend
`

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if err := env.LoadDotEnv(); err != nil {
		return err
	}
	cfg := config.FromEnv()

	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		return serve(ctx, cfg)
	case "signin":
		return signIn(ctx, cfg, rest, out)
	case "signout":
		return signOut(ctx, cfg, out)
	case "whoami":
		return whoAmI(ctx, cfg, out)
	case "author":
		return author(ctx, cfg, rest, out)
	case "play":
		return play(ctx, cfg, rest, in, out)
	case "lessons":
		return listLessons(ctx, cfg, rest, out)
	case "media":
		return listMedia(ctx, cfg, rest, out)
	case "course":
		return switchCourse(ctx, cfg, rest, out)
	case "token":
		return issueToken(cfg, rest, out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprintf(out, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			slog.Error("lessonctl exited with error", "error", err)
		}
		os.Exit(1)
	}
}
