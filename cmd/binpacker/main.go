// BinPacker - interactive 2D rectangle packer
//
// A cross-platform desktop application that packs rectangles into a
// fixed-size container with the maximal rectangles algorithm and
// exports the layout to PDF, Excel and DXF.
//
// Build:
//   go build -o binpacker ./cmd/binpacker
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/BinPacker/internal/engine"
	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/piwi3910/BinPacker/internal/project"
	"github.com/piwi3910/BinPacker/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	engine.SetLogger(logger)

	configPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", configPath, "error", err)
		cfg = model.DefaultAppConfig()
	}

	presetsPath := project.DefaultPresetsPath()
	presets, err := project.LoadPresets(presetsPath)
	if err != nil {
		logger.Warn("could not load presets, using defaults", "path", presetsPath, "error", err)
		presets = model.DefaultPresetStore()
	}

	application := app.NewWithID("com.piwi3910.binpacker")
	window := application.NewWindow("BinPacker - 2D Rectangle Packer")

	appUI := ui.NewApp(application, window, cfg, presets)
	appUI.SetStorePaths(configPath, presetsPath)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1000, 900))
	window.CenterOnScreen()
	window.ShowAndRun()
}
