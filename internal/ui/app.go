// Package ui provides the BinPacker desktop front end.
package ui

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/BinPacker/internal/engine"
	"github.com/piwi3910/BinPacker/internal/export"
	"github.com/piwi3910/BinPacker/internal/importer"
	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/piwi3910/BinPacker/internal/project"
	"github.com/piwi3910/BinPacker/internal/ui/widgets"
)

// Canvas bounds in pixels; the container is scaled to fit.
const (
	canvasMaxWidth  = 800
	canvasMaxHeight = 800
)

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	theme  *BinPackerTheme

	config      model.AppConfig
	configPath  string
	presets     model.PresetStore
	presetsPath string

	settings model.PackSettings
	session  *engine.Session
	colors   []color.Color
	gen      *RectGenerator

	canvas  *widgets.PackCanvas
	status  *widget.Label
	summary *widget.Label
}

// NewApp creates the application state from a loaded config and preset
// store. Changes are not written to disk until SetStorePaths is called.
func NewApp(application fyne.App, window fyne.Window, cfg model.AppConfig, presets model.PresetStore) *App {
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	a := &App{
		app:      application,
		window:   window,
		theme:    NewBinPackerTheme(cfg.Theme),
		config:   cfg,
		presets:  presets,
		settings: settings,
		gen:      NewRectGenerator(time.Now().UnixNano(), settings.MinRandomSize, settings.MaxRandomSize),
		canvas:   widgets.NewPackCanvas(canvasMaxWidth, canvasMaxHeight),
		status:   widget.NewLabel("Click \"Insert Rectangle\" to start packing."),
		summary:  widget.NewLabel(""),
	}
	a.canvas.SetShowFree(cfg.ShowFreeRects)
	application.Settings().SetTheme(a.theme)

	if err := a.startSession(settings); err != nil {
		// Fall back to the built-in container if the config holds a bad size
		engine.Logger().Warn("invalid container in config, using defaults", "error", err)
		a.settings = model.DefaultSettings()
		_ = a.startSession(a.settings)
	}
	return a
}

// SetStorePaths enables persisting config and preset changes.
func (a *App) SetStorePaths(configPath, presetsPath string) {
	a.configPath = configPath
	a.presetsPath = presetsPath
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Rectangles from CSV...", func() { a.importFile(".csv", importer.ImportCSV) }),
		fyne.NewMenuItem("Import Rectangles from Excel...", func() { a.importFile(".xlsx", importer.ImportExcel) }),
		fyne.NewMenuItem("Import Shapes from DXF...", func() { a.importFile(".dxf", importer.ImportDXF) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { a.exportFile("layout.pdf", export.ExportPDF) }),
		fyne.NewMenuItem("Export Labels...", func() { a.exportFile("labels.pdf", export.ExportLabels) }),
		fyne.NewMenuItem("Export Excel...", func() { a.exportFile("layout.xlsx", export.ExportExcel) }),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportFile("layout.dxf", func(path string, l model.Layout) error {
				return export.ExportDXF(path, l, a.canvas.ShowFree())
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup Settings...", a.backupSettings),
		fyne.NewMenuItem("Restore Settings...", a.restoreSettings),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)

	containerItems := make([]*fyne.MenuItem, 0, len(a.presets.Presets)+5)
	for _, p := range a.presets.Presets {
		preset := p
		containerItems = append(containerItems, fyne.NewMenuItem(
			fmt.Sprintf("%s (%gx%g)", preset.Name, preset.Width, preset.Height),
			func() { a.applyPreset(preset) },
		))
	}
	containerItems = append(containerItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Custom Size...", a.showCustomSizeDialog),
		fyne.NewMenuItem("Save Current as Preset...", a.showSavePresetDialog),
		fyne.NewMenuItem("Packing Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Reset", a.reset),
	)
	containerMenu := fyne.NewMenu("Container", containerItems...)

	freeItem := fyne.NewMenuItem("Show Free Rectangles", nil)
	freeItem.Checked = a.canvas.ShowFree()
	viewMenu := fyne.NewMenu("View", freeItem)
	freeItem.Action = func() {
		a.setShowFree(!a.canvas.ShowFree())
		freeItem.Checked = a.canvas.ShowFree()
		viewMenu.Refresh()
	}

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, containerMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About BinPacker",
		"BinPacker - 2D Rectangle Packer\n\n"+
			"Packs rectangles into a fixed container using the\n"+
			"maximal rectangles algorithm.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	toolbar := container.NewHBox(
		newToolbarButton("Insert Rectangle", theme.ContentAddIcon(), "Insert a rectangle of random size", a.insertRandom),
		newToolbarButton("Insert...", theme.DocumentCreateIcon(), "Insert a rectangle with chosen dimensions", a.showInsertDialog),
		newToolbarButton("Reset", theme.ViewRefreshIcon(), "Empty the container", a.reset),
		layout.NewSpacer(),
		a.status,
	)

	a.summary.TextStyle = fyne.TextStyle{Bold: true}
	content := container.NewBorder(
		toolbar,
		a.summary,
		nil, nil,
		container.NewScroll(container.NewCenter(a.canvas)),
	)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

// ─── Packing ───────────────────────────────────────────────

// startSession replaces the current container with an empty one.
func (a *App) startSession(settings model.PackSettings) error {
	session, err := engine.NewSession(settings)
	if err != nil {
		return err
	}
	a.settings = session.Settings()
	a.session = session
	a.colors = nil
	a.gen.SetRange(a.settings.MinRandomSize, a.settings.MaxRandomSize)
	a.refresh()
	return nil
}

// insert adds one rectangle and records its colour when it is placed.
func (a *App) insert(req model.Request, col color.Color) (engine.InsertResult, error) {
	res, err := a.session.Add(req)
	if err != nil {
		return res, err
	}
	if res.Positioned {
		a.colors = append(a.colors, col)
	}
	return res, nil
}

func (a *App) insertRandom() {
	size := a.gen.NextSize()
	req := model.NewRequest(fmt.Sprintf("Rect %d", a.insertedCount()+1), size.Width, size.Height, 1)
	a.insertAndReport(req)
}

func (a *App) insertAndReport(req model.Request) {
	res, err := a.insert(req, a.gen.NextColor())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.status.SetText(insertStatus(res))
	a.refresh()
}

func (a *App) insertedCount() int {
	l := a.session.Layout()
	return len(l.Placements) + len(l.Unplaced)
}

func (a *App) reset() {
	if err := a.startSession(a.settings); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.status.SetText("Container emptied.")
}

func (a *App) refresh() {
	l := a.session.Layout()
	a.canvas.SetLayout(l, a.colors)
	a.summary.SetText(layoutSummary(l))
}

func (a *App) setShowFree(show bool) {
	a.canvas.SetShowFree(show)
	a.config.ShowFreeRects = show
	a.saveConfig()
}

func (a *App) applyPreset(p model.ContainerPreset) {
	settings := a.settings
	p.ApplyToSettings(&settings)
	if err := a.startSession(settings); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.status.SetText(fmt.Sprintf("Container set to %s.", p.Name))
}

// ─── Dialogs ───────────────────────────────────────────────

// parseDimensions parses two positive numbers from form entries.
func parseDimensions(wText, hText string) (float64, float64, error) {
	w, errW := strconv.ParseFloat(strings.TrimSpace(wText), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(hText), 64)
	if errW != nil || errH != nil || !model.NewSize(w, h).Valid() {
		return 0, 0, fmt.Errorf("%w: width and height must be positive numbers", engine.ErrInvalidDimensions)
	}
	return w, h, nil
}

func (a *App) showInsertDialog() {
	labelEntry := widget.NewEntry()
	labelEntry.SetText(fmt.Sprintf("Rect %d", a.insertedCount()+1))
	widthEntry := widget.NewEntry()
	widthEntry.SetPlaceHolder("Width")
	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Height")

	form := dialog.NewForm("Insert Rectangle", "Insert", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, h, err := parseDimensions(widthEntry.Text, heightEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.insertAndReport(model.NewRequest(labelEntry.Text, w, h, 1))
		},
		a.window,
	)
	form.Resize(fyne.NewSize(350, 250))
	form.Show()
}

func (a *App) showCustomSizeDialog() {
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(a.settings.ContainerWidth, 'g', -1, 64))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.FormatFloat(a.settings.ContainerHeight, 'g', -1, 64))

	form := dialog.NewForm("Container Size", "Apply", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, h, err := parseDimensions(widthEntry.Text, heightEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			settings := a.settings
			settings.ContainerWidth, settings.ContainerHeight = w, h
			if err := a.startSession(settings); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(300, 200))
	form.Show()
}

func (a *App) showSavePresetDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(fmt.Sprintf("Custom %gx%g", a.settings.ContainerWidth, a.settings.ContainerHeight))

	dialog.ShowForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			if !ok || strings.TrimSpace(nameEntry.Text) == "" {
				return
			}
			a.presets.Add(model.NewContainerPreset(strings.TrimSpace(nameEntry.Text),
				a.settings.ContainerWidth, a.settings.ContainerHeight))
			a.savePresets()
			a.SetupMenus()
		},
		a.window,
	)
}

func (a *App) showSettingsDialog() {
	names := make([]string, len(model.Heuristics))
	for i, h := range model.Heuristics {
		names[i] = h.String()
	}
	heuristicSelect := widget.NewSelect(names, nil)
	heuristicSelect.SetSelected(a.settings.Heuristic.String())

	sortCheck := widget.NewCheck("Largest first when importing", nil)
	sortCheck.SetChecked(a.settings.SortDescending)

	minEntry := widget.NewEntry()
	minEntry.SetText(strconv.Itoa(a.settings.MinRandomSize))
	maxEntry := widget.NewEntry()
	maxEntry.SetText(strconv.Itoa(a.settings.MaxRandomSize))

	themeSelect := widget.NewSelect([]string{ThemeSystem, ThemeLight, ThemeDark}, nil)
	themeSelect.SetSelected(a.config.Theme)

	form := dialog.NewForm("Packing Settings", "Apply", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Heuristic", heuristicSelect),
			widget.NewFormItem("Import Order", sortCheck),
			widget.NewFormItem("Random Min Side", minEntry),
			widget.NewFormItem("Random Max Side", maxEntry),
			widget.NewFormItem("Theme", themeSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			minSize, errMin := strconv.Atoi(strings.TrimSpace(minEntry.Text))
			maxSize, errMax := strconv.Atoi(strings.TrimSpace(maxEntry.Text))
			if errMin != nil || errMax != nil || minSize < 1 || maxSize < minSize {
				dialog.ShowError(fmt.Errorf("random sizes must satisfy 1 <= min <= max"), a.window)
				return
			}

			settings := a.settings
			for _, h := range model.Heuristics {
				if h.String() == heuristicSelect.Selected {
					settings.Heuristic = h
				}
			}
			settings.SortDescending = sortCheck.Checked
			settings.MinRandomSize, settings.MaxRandomSize = minSize, maxSize

			a.config.Theme = themeSelect.Selected
			a.theme.SetPreference(a.config.Theme)
			a.app.Settings().SetTheme(a.theme)

			a.applySettings(settings)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 350))
	form.Show()
}

// applySettings stores settings as the new defaults. A heuristic change
// needs a fresh container; other changes keep the current packing.
func (a *App) applySettings(settings model.PackSettings) {
	a.config.DefaultHeuristic = settings.Heuristic
	a.config.DefaultSortDescending = settings.SortDescending
	a.config.MinRandomSize = settings.MinRandomSize
	a.config.MaxRandomSize = settings.MaxRandomSize
	a.saveConfig()

	if settings.Heuristic != a.settings.Heuristic {
		if err := a.startSession(settings); err != nil {
			dialog.ShowError(err, a.window)
		}
		return
	}
	a.settings = settings
	a.gen.SetRange(settings.MinRandomSize, settings.MaxRandomSize)
}

// ─── Import / Export ───────────────────────────────────────

// insertRequests inserts the units of requests in the order Pack would use
// and returns the number placed and not placed.
func (a *App) insertRequests(requests []model.Request) (placed, unplaced int, err error) {
	for _, unit := range engine.PackOrder(requests, a.settings.SortDescending) {
		res, err := a.insert(unit, a.gen.NextColor())
		if err != nil {
			return placed, unplaced, err
		}
		if res.Positioned {
			placed++
		} else {
			unplaced++
		}
	}
	return placed, unplaced, nil
}

func (a *App) importFile(ext string, load func(string) importer.ImportResult) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(load(reader.URI().Path()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	for _, w := range result.Warnings {
		engine.Logger().Info("import warning", "message", w)
	}
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	if len(result.Requests) == 0 {
		return
	}

	placed, unplaced, err := a.insertRequests(result.Requests)
	a.refresh()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.status.SetText(fmt.Sprintf("Imported %d rectangles.", placed+unplaced))
	dialog.ShowInformation("Import Complete", importSummary(placed, unplaced, len(result.Errors)), a.window)
}

func (a *App) exportFile(defaultName string, write func(string, model.Layout) error) {
	snapshot := a.session.Layout()
	if len(snapshot.Placements) == 0 {
		dialog.ShowInformation("Nothing to export", "Insert at least one rectangle first.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path, snapshot); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) backupSettings() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.ExportAllData(writer.URI().Path(), a.config, a.presets); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("binpacker-backup.json")
	d.Show()
}

func (a *App) restoreSettings() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		backup, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		added := project.MergePresets(&a.presets, backup.Presets)
		a.restoreConfig(backup.Config)
		a.savePresets()
		a.SetupMenus()
		dialog.ShowInformation("Restore Complete",
			fmt.Sprintf("Settings restored. %d presets added.", added), a.window)
	}, a.window)
}

// restoreConfig adopts cfg and starts a new container from its defaults.
func (a *App) restoreConfig(cfg model.AppConfig) {
	a.config = cfg
	a.saveConfig()

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	a.theme.SetPreference(cfg.Theme)
	a.app.Settings().SetTheme(a.theme)
	a.canvas.SetShowFree(cfg.ShowFreeRects)
	if err := a.startSession(settings); err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) saveConfig() {
	if a.configPath == "" {
		return
	}
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		engine.Logger().Error("failed to save config", "path", a.configPath, "error", err)
	}
}

func (a *App) savePresets() {
	if a.presetsPath == "" {
		return
	}
	if err := project.SavePresets(a.presetsPath, a.presets); err != nil {
		engine.Logger().Error("failed to save presets", "path", a.presetsPath, "error", err)
	}
}
