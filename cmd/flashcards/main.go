// Command flashcards studies one flashcard module from the terminal.
//
// Review mode pages through the cards; test mode builds a multiple-choice
// quiz from them. Learned and saved toggles are sent to the backend.
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/myenglish-flashcards/internal/app"
	"github.com/heartmarshall/myenglish-flashcards/internal/transport/terminal"
)

func main() {
	flags := pflag.NewFlagSet("flashcards", pflag.ContinueOnError)
	moduleID := flags.StringP("module", "m", "", "module id to study (required)")
	mode := flags.String("mode", string(terminal.ModeReview), "session mode: review or test")
	seed := flags.Uint64("seed", 0, "seed for shuffles and quizzes (0 uses config, then time)")
	configPath := flags.StringP("config", "c", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")
	token := flags.String("token", "", "access token (default api.token from config)")
	showVersion := flags.BoolP("version", "v", false, "print version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if *showVersion {
		fmt.Println(app.BuildVersion())
		return
	}

	m := terminal.Mode(*mode)
	if !m.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid --mode %q: want review or test\n", *mode)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx, app.Options{
		ConfigPath: *configPath,
		ModuleID:   *moduleID,
		Mode:       m,
		Token:      *token,
		Seed:       *seed,
	})
	if err != nil {
		slog.Error("flashcards failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
