package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"focusnav/internal/config"
	"focusnav/internal/demo"
	"focusnav/internal/eventbus"
	"focusnav/internal/ui"
)

func main() {
	var (
		configPath  string
		logPath     string
		writeConfig bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (default ~/.config/focusnav/config.toml)")
	flag.StringVar(&logPath, "log", "focusnav.log", "Path to log file")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the effective config to the config path and exit")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc, err := config.NewConfigServiceWithBus(configPath, bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		// Use default config
		cfg = config.DefaultConfig()
	}

	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", configSvc.Path())
		return
	}

	fixture, err := demo.LoadFixture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading demo content: %v\n", err)
		os.Exit(1)
	}

	// Create UI model
	uiModel, err := ui.NewModel(bus, cfg, fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting: %v\n", err)
		os.Exit(1)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run the UI
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
