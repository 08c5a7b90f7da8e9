package main

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HassanOla1/economy/internal/api"
	"github.com/HassanOla1/economy/internal/config"
	"github.com/HassanOla1/economy/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := api.New(cfg.Backend.URL, api.Options{
		HealthTimeout:   cfg.Backend.HealthTimeout,
		DownloadTimeout: cfg.Backend.DownloadTimeout,
	})

	p := tea.NewProgram(tui.New(ctx, cfg, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
