package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smby/sunny-demo/internal/api"
	"github.com/smby/sunny-demo/internal/config"
	"github.com/smby/sunny-demo/internal/history"
	"github.com/smby/sunny-demo/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Run history is best effort: without a usable database the app still
	// processes and exports, it just records nothing.
	var runs *history.RunRepo
	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
		log.Printf("warn: history disabled, mkdir: %v", err)
	} else if err := history.RunMigrations(cfg.History.Path); err != nil {
		log.Printf("warn: history disabled, migrate: %v", err)
	} else {
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			log.Printf("warn: history disabled, open db: %v", err)
		} else {
			defer db.Close()
			runs = history.NewRunRepo(db)
		}
	}

	client := api.NewClient(
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithAssetBaseURL(cfg.API.AssetBaseURL),
	)

	p := tea.NewProgram(tui.New(ctx, cfg, client, runs), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
