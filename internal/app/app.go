package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/heartmarshall/myenglish-flashcards/internal/adapter/restapi"
	"github.com/heartmarshall/myenglish-flashcards/internal/auth"
	"github.com/heartmarshall/myenglish-flashcards/internal/config"
	"github.com/heartmarshall/myenglish-flashcards/internal/service/module"
	"github.com/heartmarshall/myenglish-flashcards/internal/transport/terminal"
)

// Options are the command-line inputs of a run. Empty fields fall back to config.
type Options struct {
	ConfigPath string
	ModuleID   string
	Mode       terminal.Mode
	Token      string
	Seed       uint64

	In     io.Reader
	Out    io.Writer
	LogOut io.Writer
}

// Run is the application entry point. It loads configuration, signs in,
// and runs one study session against the backend.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, opts.LogOut)

	if opts.ModuleID == "" {
		return errors.New("module id is required")
	}
	if opts.Mode == "" {
		opts.Mode = terminal.ModeReview
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	token := opts.Token
	if token == "" {
		token = cfg.API.Token
	}
	if token == "" {
		return errors.New("api token is required (set API_TOKEN or --token)")
	}

	session := auth.NewSession()
	if err := session.Init(token); err != nil {
		return err
	}
	defer session.Teardown()

	seed := cfg.Session.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}

	ctx = session.WithUser(ctx)

	logger.InfoContext(ctx, "starting session",
		slog.String("version", BuildVersion()),
		slog.String("module_id", opts.ModuleID),
		slog.String("mode", string(opts.Mode)),
		slog.String("api", cfg.API.BaseURL),
	)

	client := restapi.NewClient(cfg.API.BaseURL, session, logger,
		restapi.WithTimeout(cfg.API.Timeout),
		restapi.WithRetryDelay(cfg.API.RetryDelay),
	)
	loader := module.NewLoader(logger, client)
	runner := terminal.NewRunner(logger, loader, terminal.Options{
		AutoplayInterval:   cfg.Session.AutoplayInterval,
		OptionsPerQuestion: cfg.Session.OptionsPerQuestion,
		Seed:               seed,
	}, opts.In, opts.Out)

	if err := runner.Run(ctx, opts.ModuleID, opts.Mode); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	logger.InfoContext(ctx, "session finished", slog.String("module_id", opts.ModuleID))
	return nil
}
