package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/iamasit07/connect-n/internal/config"
	"github.com/iamasit07/connect-n/internal/service/game"
	"github.com/iamasit07/connect-n/internal/transport/terminal"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.NoColor {
		color.Enable = false
	}

	seed := cfg.AISeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := game.NewSession(game.Options{
		Rows:       cfg.Rows,
		Columns:    cfg.Columns,
		WinLength:  cfg.WinLength,
		PlayerName: cfg.PlayerName,
		AIName:     cfg.AIName,
		AIDelay:    cfg.AIMoveDelay,
		InstantAI:  cfg.InstantAI,
		Rand:       rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := terminal.New(session, os.Stdin, os.Stdout)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Game stopped: %v", err)
	}

	scores := session.Scores()
	log.Printf("Final score: %s %d - %d %s (draws %d)",
		cfg.PlayerName, scores.PlayerWins, scores.AIWins, cfg.AIName, scores.Draws)
}
