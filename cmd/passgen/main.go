// Command passgen is a terminal password generator with per-account saved passwords.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/and161185/passgen/internal/config"
	"github.com/and161185/passgen/internal/logger"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `passgen %s

Usage:
  passgen [-config FILE] [command] [flags]

Commands:
  tui        interactive session (default)
  generate   print passwords  [-n 1] [-min-entropy 0]
  list       print an account's saved passwords as JSON  -name NAME -password PASSWORD
  migrate    apply database migrations
  version    print version

Configuration is read from -config, $%s_CONFIG or %s,
then overridden by %s_* environment variables.
`, version, config.EnvPrefix, config.DefaultPath(), config.EnvPrefix)
	os.Exit(2)
}

func main() {
	configPath := flag.String("config", "", "config file (TOML)")
	flag.Usage = usage
	flag.Parse()

	cmd, args := "tui", []string(nil)
	if flag.NArg() > 0 {
		cmd, args = flag.Arg(0), flag.Args()[1:]
	}

	switch cmd {
	case "version":
		fmt.Printf("passgen %s (%s)\n", version, buildDate)
		return
	case "tui", "generate", "list", "migrate":
	default:
		usage()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fail(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("start", zap.String("cmd", cmd), zap.String("version", version), zap.String("driver", cfg.Store.Driver))

	switch cmd {
	case "tui":
		err = runTUI(ctx, cfg, log)
	case "generate":
		err = runGenerate(cfg, args, os.Stdout)
	case "list":
		err = runList(ctx, cfg, args, os.Stdout, log)
	case "migrate":
		err = runMigrate(ctx, cfg, log)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Fatal("command failed", zap.String("cmd", cmd), zap.Error(err))
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
