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

	"github.com/go-http-server/consolebank/client"
	"github.com/go-http-server/consolebank/config"
	"github.com/go-http-server/consolebank/service"
	"github.com/google/uuid"
)

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("session", uuid.NewString()), nil
}

// loadAccounts reads the store once. A corrupt store is moved aside and the
// bank starts empty instead of overwriting it on the next save.
func loadAccounts(store *service.FileAccountStore, logger *slog.Logger) ([]*service.Account, error) {
	accounts, err := store.Load()
	if err == nil {
		logger.Debug("accounts loaded", "path", store.Path(), "count", len(accounts))
		return accounts, nil
	}
	if !errors.Is(err, service.ErrCorruptStore) {
		return nil, err
	}

	moved, qerr := store.Quarantine()
	if qerr != nil {
		return nil, fmt.Errorf("%w (cannot move it aside: %s)", err, qerr)
	}
	logger.Warn("account store is corrupt, starting empty", "err", err, "moved_to", moved)
	return []*service.Account{}, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("bank", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to a YAML config file")
	dataFile := flags.String("data", "", "Path to the account store, overrides data_file")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	store := service.NewFileAccountStore(cfg.DataFile, cfg.PINCost)
	accounts, err := loadAccounts(store, logger)
	if err != nil {
		logger.Error("cannot load accounts", "path", cfg.DataFile, "err", err)
		return err
	}

	bank := service.NewBank(store, accounts,
		service.WithPINCost(cfg.PINCost),
		service.WithLogger(logger),
	)
	prompter := client.NewPrompter(stdin, stdout)
	menu := client.NewMenu(client.NewBankClient(bank, prompter, logger))

	if err := menu.Run(ctx); err != nil {
		logger.Debug("operation ended with error", "err", err)
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
