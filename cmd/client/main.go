package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/kiryu-dev/chess-client/internal/adapters/webapi"
	"github.com/kiryu-dev/chess-client/internal/config"
	"github.com/kiryu-dev/chess-client/internal/domain"
	"github.com/kiryu-dev/chess-client/internal/transport/ws"
	"github.com/kiryu-dev/chess-client/internal/usecase/animation"
	"github.com/kiryu-dev/chess-client/internal/usecase/game"
	"github.com/kiryu-dev/chess-client/internal/usecase/liveness"
	"github.com/kiryu-dev/chess-client/internal/usecase/reconciler"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errQuit = errors.New("quit requested")

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal(err.Error())
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "chess> ",
		HistoryFile:     ".chess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		logger.Fatal("init readline: " + err.Error())
	}
	defer func() {
		_ = rl.Close()
	}()

	var (
		animator = animation.New(nil, cfg.Animation.PieceMoveDuration, logger)
		recon    = reconciler.New(animator, logger)
		moves    = game.New(recon, recon, logger)
		health   = liveness.New(webapi.New(), cfg.BackendAddr(), cfg.Liveness.Period, logger)
		screen   = newRenderer(rl.Stdout())
	)
	recon.SubscribeChess(screen.drawChess)
	recon.SubscribeEvents(screen.drawEvent)
	animator.Subscribe(screen.drawAnimation)
	health.OnChange(screen.drawHealth)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := health.Probe(ctx); err != nil {
		logger.Warn("backend liveness probe failed", zap.Error(err))
	}
	conn, err := ws.Dial(ctx, cfg.WebSocketURL(), uuid.NewString(), logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		if err := recon.Run(ctx, conn); err != nil {
			return err
		}
		return errors.WithMessage(domain.ErrConnectionClosed, "server")
	})
	errGroup.Go(func() error {
		return health.CheckBackendHealth(ctx)
	})
	errGroup.Go(func() error {
		go func() {
			<-ctx.Done()
			_ = rl.Close()
		}()
		return readCommands(rl, moves, animator, screen)
	})
	if err := errGroup.Wait(); err != nil && !errors.Is(err, errQuit) {
		logger.Info("shutting down the client: " + err.Error())
	}
}

type moveUseCase interface {
	MovePiece(from, to string) error
	Reset() error
	Destinations(from string) []string
}

type shaker interface {
	Shake(square string)
}

func readCommands(rl *readline.Instance, moves moveUseCase, animator shaker, screen *renderer) error {
	screen.help()
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return errQuit
			}
			continue
		case errors.Is(err, io.EOF):
			return errQuit
		case err != nil:
			return errors.WithMessage(err, "read command")
		}
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}
		switch {
		case fields[0] == "quit" || fields[0] == "exit":
			return errQuit
		case fields[0] == "help":
			screen.help()
		case fields[0] == "reset":
			if err := moves.Reset(); err != nil {
				screen.printf("reset failed: %v\n", err)
			}
		case fields[0] == "moves" && len(fields) == 2:
			screen.printf("%s: %s\n", fields[1], strings.Join(moves.Destinations(fields[1]), " "))
		case len(fields) == 2:
			if err := moves.MovePiece(fields[0], fields[1]); err != nil {
				if errors.Is(err, domain.ErrIllegalMove) {
					animator.Shake(fields[0])
				}
				screen.printf("%v\n", err)
			}
		default:
			screen.printf("unknown command %q\n", line)
		}
	}
}
