package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/calendr/internal/api"
	"github.com/sadopc/calendr/internal/client"
	"github.com/sadopc/calendr/internal/config"
	"github.com/sadopc/calendr/internal/scheduler"
	"github.com/sadopc/calendr/internal/service"
	"github.com/sadopc/calendr/internal/state"
	"github.com/sadopc/calendr/internal/store"
	"github.com/sadopc/calendr/internal/tui"
)

const usage = `usage: calendr [command] [flags]

commands:
  (none)   open the terminal calendar against a running API
  serve    run the REST API server
  seed     reset the database to the sample data set
`

func main() {
	cmd := ""
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "":
		err = runTUI(args)
	case "serve":
		err = runServe(args)
	case "seed":
		err = runSeed(args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig parses the shared -config flag plus any extra flags the
// command registers through setup.
func loadConfig(name string, args []string, setup func(*flag.FlagSet)) (*config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	defaultPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	path := fs.String("config", defaultPath, "path to config.yaml")
	if setup != nil {
		setup(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config.Load(*path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func runServe(args []string) error {
	var listen string
	cfg, err := loadConfig("serve", args, func(fs *flag.FlagSet) {
		fs.StringVar(&listen, "listen", "", "listen address, overrides the config file")
	})
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}
	logger := newLogger(cfg)

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Maintenance != "" {
		sched, err := scheduler.New(cfg.Maintenance, s, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := sched.Run(ctx); err != nil {
				logger.Error("maintenance scheduler stopped", "err", err)
			}
		}()
	}

	srv := api.New(api.Options{
		Services: service.New(s, logger),
		Logger:   logger,
		Version:  cfg.Version,
		Debug:    cfg.Debug,
	})
	return srv.ServeTCP(ctx, cfg.Listen)
}

func runSeed(args []string) error {
	cfg, err := loadConfig("seed", args, nil)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Seed(context.Background()); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("database seeded")
	return nil
}

func runTUI(args []string) error {
	cfg, err := loadConfig("calendr", args, nil)
	if err != nil {
		return err
	}
	v, ok := state.ParseView(cfg.DefaultView)
	if !ok {
		return errors.New("invalid default view: " + cfg.DefaultView)
	}

	c := client.New(cfg.APIURL, cfg.RequestTimeout)
	hctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := c.Health(hctx); err != nil {
		return fmt.Errorf("cannot reach the API at %s (start it with `calendr serve`): %w", c.BaseURL(), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app := tui.NewApp(ctx, c, v)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
