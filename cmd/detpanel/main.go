// cmd/detpanel/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/detpanel/internal/api"
	"github.com/rusenback/detpanel/internal/config"
	"github.com/rusenback/detpanel/internal/storage"
	"github.com/rusenback/detpanel/internal/tui"
)

func main() {
	serverFlag := flag.String("server", "", "detection server URL (overrides config)")
	flag.Parse()

	// Load panel settings (created with defaults on first run)
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.ServerURL = *serverFlag
	}

	// Create API client
	apiCfg := api.DefaultConfig()
	apiCfg.BaseURL = cfg.ServerURL
	apiCfg.Timeout = cfg.Timeout

	client, err := api.NewClient(apiCfg)
	if err != nil {
		fmt.Printf("❌ Failed to connect to detection server: %v\n", err)
		fmt.Println("\nMake sure the server is running and reachable:")
		fmt.Printf("  %s/get_config\n", cfg.ServerURL)
		os.Exit(1)
	}

	// Create storage
	store, err := storage.NewStorage()
	if err != nil {
		fmt.Printf("❌ Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Last-used params as the form baseline; the server's saved
	// settings override these once fetched
	params, err := config.LoadParams()
	if err != nil {
		fmt.Printf("⚠ Could not read saved params: %v\n", err)
	}

	// Create TUI model
	m := tui.NewModel(client, store, tui.Options{
		PollInterval: cfg.PollInterval,
		DownloadDir:  cfg.DownloadDir,
		Params:       params,
	})

	// Start TUI
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
