package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/and161185/passgen/internal/clipboard"
	"github.com/and161185/passgen/internal/config"
	"github.com/and161185/passgen/internal/errs"
	"github.com/and161185/passgen/internal/generator"
	"github.com/and161185/passgen/internal/service"
	"github.com/and161185/passgen/internal/session"
	"github.com/and161185/passgen/internal/tui"
)

// maxAttempts bounds regeneration when -min-entropy rejects a sample.
const maxAttempts = 100

func runTUI(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	mode, err := clipboard.ParseMode(cfg.Clipboard.Mode)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer st.close()

	toaster := tui.NewToaster(16)
	reducer := session.NewReducer(
		service.NewAccountService(st.accounts),
		service.NewPasswordService(st.passwords),
		generator.New(generator.WithLength(cfg.Generator.Length)),
		log,
	)
	// stdout belongs to the UI
	machine := session.NewMachine(reducer, clipboard.NewTerminal(os.Stderr, mode), toaster, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return machine.Run(gctx) })

	states, unsubscribe := machine.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(tui.New(machine, states, toaster.C()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", runErr)
	}
	return nil
}

func runGenerate(cfg config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	n := fs.Int("n", 1, "how many passwords")
	minEntropy := fs.Float64("min-entropy", 0, "reject passwords below this many bits")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 1 {
		return errors.New("need -n >= 1")
	}

	gen := generator.New(generator.WithLength(cfg.Generator.Length))
	for i := 0; i < *n; i++ {
		pw, err := generateMin(gen, *minEntropy)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, pw)
	}
	return nil
}

func generateMin(gen *generator.Generator, minBits float64) (string, error) {
	var lastErr error
	for range maxAttempts {
		pw, err := gen.Generate()
		if err != nil {
			return "", err
		}
		if minBits <= 0 {
			return pw, nil
		}
		if lastErr = generator.Validate(pw, minBits); lastErr == nil {
			return pw, nil
		}
	}
	return "", fmt.Errorf("no password of length %d reached %.0f bits: %w", gen.Length(), minBits, lastErr)
}

type listedPassword struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Note   string `json:"note"`
	Secret string `json:"secret"`
}

type listedAccount struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Passwords []listedPassword `json:"passwords"`
}

func runList(ctx context.Context, cfg config.Config, args []string, w io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	name := fs.String("name", "", "account name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer st.close()

	acc, ps, err := service.NewAccountService(st.accounts).Login(ctx, *name, *password)
	if errors.Is(err, errs.ErrNotFound) {
		return errors.New(session.MsgWrongCredentials)
	}
	if err != nil {
		return err
	}

	out := listedAccount{ID: acc.ID.String(), Name: acc.Name, Passwords: make([]listedPassword, 0, len(ps))}
	for _, p := range ps {
		out.Passwords = append(out.Passwords, listedPassword{ID: p.ID, Title: p.Title, Note: p.Note, Secret: p.Secret})
	}
	return printJSON(w, out)
}

func runMigrate(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	st, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	st.close()
	log.Info("migrations up to date", zap.String("driver", cfg.Store.Driver))
	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
