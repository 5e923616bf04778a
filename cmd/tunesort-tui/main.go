package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tunesort/tunesort/internal/config"
	"github.com/tunesort/tunesort/internal/tui"
)

func main() {
	settings, err := config.Load(defaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "tunesort.json"
	}
	return filepath.Join(configDir, "tunesort", "settings.json")
}
