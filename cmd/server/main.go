package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/game"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/leaderboard"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/notify"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/save"
	"github.com/BananaMi1kshake/TheMonetizationGame/internal/serverapp"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load("monetization_config.yml")
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	cfg.Balance = config.ApplyEnv(cfg.Balance)

	store, err := save.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatalf("open data dir: %v", err)
	}
	mgr := save.NewManager(store, cfg.Balance, game.RealClock{}, logger)

	sink := notify.NewMemorySink(256)
	res := mgr.Load()
	if res.Fresh {
		logger.Printf("no save found, starting a new game")
	}
	if res.Offline.Credited {
		away := time.Duration(res.Offline.AwaySeconds) * time.Second
		sink.Publish(notify.KindWelcomeBack, "Welcome back!",
			fmt.Sprintf("You were away for %s and earned $%.2f.", away.Round(time.Second), res.Offline.Amount),
			map[string]any{"amount": res.Offline.Amount, "awaySeconds": res.Offline.AwaySeconds})
	}

	engine := game.New(game.Options{
		State:    res.State,
		Balance:  cfg.Balance,
		Clock:    game.RealClock{},
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		Notifier: sink,
		Saver:    mgr,
		Logger:   logger,
	})

	var board *leaderboard.Client
	if cfg.Leaderboard.Enabled && cfg.Leaderboard.URL != "" {
		id, err := leaderboard.LoadIdentity(cfg.DataDir)
		if err != nil {
			logger.Fatalf("load identity: %v", err)
		}
		board = leaderboard.NewClient(cfg.Leaderboard, id, logger)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Engine: engine,
		Save:   mgr,
		Sink:   sink,
		Board:  board,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go engine.Run(ctx)
	go board.Run(ctx, func() leaderboard.Score {
		st := engine.Snapshot()
		return leaderboard.Score{
			DisplayName: st.PlayerName,
			CompanyName: st.CompanyName,
			Money:       st.Money,
		}
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		logger.Printf("listening on http://localhost%s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	if err := engine.Save(); err != nil {
		logger.Printf("final save: %v", err)
	}
}
