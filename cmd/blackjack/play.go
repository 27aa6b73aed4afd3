package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/auth"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/record"
	"github.com/lox/blackjack/internal/spectate"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive table in the terminal
type PlayCmd struct {
	TableFlags `embed:""`

	Record      string   `help:"Save moves and hands to this file (.jsonl, otherwise SQLite)" type:"path"`
	Spectate    string   `help:"Serve table events to WebSocket viewers on this address, e.g. :8080"`
	Tokens      []string `name:"spectate-token" help:"Tokens viewers must present (any viewer is allowed when none are set)" env:"BLACKJACK_SPECTATE_TOKENS"`
	AuthURL     string   `name:"spectate-auth-url" help:"Check viewer tokens against this HTTP endpoint" env:"BLACKJACK_SPECTATE_AUTH_URL"`
	AdminSecret string   `name:"spectate-admin-secret" help:"Secret sent to the auth endpoint" env:"BLACKJACK_SPECTATE_ADMIN_SECRET"`
	LogFile     string   `help:"Write logs to this file instead of discarding them" type:"path"`
	NoColor     bool     `help:"Disable colors" env:"NO_COLOR"`
	Debug       bool     `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	// stderr belongs to the terminal UI
	var logOut io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := shared.SetupLoggerTo(logOut, c.Debug)

	cfg, err := c.load()
	if err != nil {
		return err
	}
	validator, err := c.validator()
	if err != nil {
		return err
	}
	seed := c.seed()
	logger.Info("Starting table", "seed", seed, "decks", cfg.Rules.Decks, "mode", cfg.Mode, "advisor", cfg.Advisor)

	g, err := game.New(cfg,
		game.WithRand(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithClock(quartz.NewReal()),
	)
	if err != nil {
		return err
	}

	if c.Record != "" {
		store, err := openStore(c.Record)
		if err != nil {
			return err
		}
		defer store.Close()
		record.NewSink(store, logger).Attach(g.Bus())
	}

	if c.Spectate != "" {
		var opts []spectate.HubOption
		if validator != nil {
			opts = append(opts, spectate.WithValidator(validator))
		}
		stop, err := serveSpectators(c.Spectate, g, logger, opts...)
		if err != nil {
			return err
		}
		defer stop()
	}

	if c.NoColor {
		tui.DisableColor()
	}
	if err := tui.Run(g, logger); err != nil {
		return err
	}

	s := g.Session()
	fmt.Printf("Rounds: %d  Balance: %.2f  Accuracy: %d/%d\n",
		s.Rounds, g.Human().Balance, s.LifetimeCorrect, s.LifetimeMoves)
	return nil
}

// validator picks how spectator tokens are checked. nil lets anyone watch.
func (c *PlayCmd) validator() (auth.Validator, error) {
	switch {
	case c.AuthURL != "" && len(c.Tokens) > 0:
		return nil, errors.New("use either --spectate-token or --spectate-auth-url, not both")
	case c.AuthURL != "":
		return auth.NewHTTPValidator(c.AuthURL, c.AdminSecret), nil
	case len(c.Tokens) > 0:
		return auth.NewStaticValidator(c.Tokens...), nil
	}
	return nil, nil
}

func openStore(path string) (record.Store, error) {
	if strings.HasSuffix(path, ".jsonl") {
		return record.OpenJSONL(path)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return record.OpenSQLite(ctx, path)
}

func serveSpectators(addr string, g *game.Game, logger *log.Logger, opts ...spectate.HubOption) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectator listener: %w", err)
	}
	hub := spectate.NewHub(logger, opts...)
	hub.Attach(g.Bus())

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Spectator server failed", "error", err)
		}
	}()
	logger.Info("Serving spectators", "addr", ln.Addr().String())

	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
