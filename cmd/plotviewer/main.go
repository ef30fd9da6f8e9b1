// plotviewer shows a latency plot input in a desktop window and exports the
// chart as PNG through a save dialog.
package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tsenart/vegeta/src/config"
	"github.com/tsenart/vegeta/src/dataset"
	"github.com/tsenart/vegeta/src/export"
	"github.com/tsenart/vegeta/src/logger"
	"github.com/tsenart/vegeta/src/plot"
)

type viewerState struct {
	app      fyne.App
	window   fyne.Window
	cfg      config.Config
	filePath string

	input     *dataset.Input
	chart     *plot.Chart
	imgCanvas *canvas.Image
	fileLabel *widget.Label
	exporter  *export.Exporter
}

func main() {
	var fileFlag, configFlag string
	flag.StringVar(&fileFlag, "file", "", "Plot input to open (.json, .yaml, .csv, .jsonl)")
	flag.StringVar(&configFlag, "config", "", "Path to a YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(configFlag, nil)
	if err != nil {
		logger.Errorf("%v", err)
		cfg = config.Defaults()
	}
	logger.SetLogLevel(cfg.LogLevel)
	defer logger.Sync()

	a := app.NewWithID("com.vegeta.plotviewer")
	w := a.NewWindow("Vegeta Plot Viewer")
	w.Resize(fyne.NewSize(1150, 520))

	state := &viewerState{
		app:       a,
		window:    w,
		cfg:       cfg,
		filePath:  fileFlag,
		imgCanvas: canvas.NewImageFromImage(nil),
		fileLabel: widget.NewLabel(""),
	}
	if state.filePath == "" {
		state.filePath = a.Preferences().String("lastFile")
	}
	state.imgCanvas.FillMode = canvas.ImageFillContain
	state.imgCanvas.SetMinSize(fyne.NewSize(800, 280))

	blobs := export.NewMemoryBlobs()
	state.exporter = export.New(blobs, newSaveDialogTrigger(w, blobs),
		export.OnError(func(err error) {
			fyne.Do(func() { dialog.ShowError(err, w) })
		}),
	)

	w.SetMainMenu(buildMenu(state))
	w.SetContent(container.NewBorder(state.fileLabel, nil, nil, nil, state.imgCanvas))

	if state.filePath != "" {
		if err := loadFile(state, state.filePath); err != nil {
			logger.Warnf("open %s: %v", state.filePath, err)
		}
	}
	redraw(state)

	w.ShowAndRun()
	state.exporter.Wait()
}

func buildMenu(state *viewerState) *fyne.MainMenu {
	open := fyne.NewMenuItem("Open…", func() {
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			rc.Close()
			if err := loadFile(state, path); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			redraw(state)
		}, state.window)
		d.Show()
	})
	exportPNG := fyne.NewMenuItem("Export Chart…", func() { exportChart(state) })
	return fyne.NewMainMenu(fyne.NewMenu("File", open, exportPNG))
}

func loadFile(state *viewerState, path string) error {
	in, err := dataset.Load(path)
	if err != nil {
		return err
	}
	state.input = in
	state.filePath = path
	if state.app != nil {
		state.app.Preferences().SetString("lastFile", path)
	}
	return nil
}

// chartWidth follows the window width, leaving room for padding.
func chartWidth(state *viewerState) int {
	if state.window == nil || state.window.Canvas() == nil {
		return state.cfg.Width
	}
	return int(state.window.Canvas().Size().Width*0.95) - 12
}

// buildChart renders the loaded input. Without input it renders the empty
// notice canvas.
func buildChart(state *viewerState) *plot.Chart {
	title := state.cfg.Title
	if state.input != nil && state.input.Title != "" {
		title = state.input.Title
	}
	ch := plot.New(plot.Title(title), plot.Size(chartWidth(state)), plot.DownsampleTo(state.cfg.Downsample), plot.LogScale(state.cfg.LogScale))
	if state.input != nil {
		for _, s := range state.input.Series {
			ch.Add(s)
		}
	}
	if err := ch.Render(); err != nil {
		logger.Warnf("[viewer] %v", err)
	}
	return ch
}

func redraw(state *viewerState) {
	state.chart = buildChart(state)
	setImage(state.imgCanvas, state.chart.Image())
	if state.fileLabel != nil {
		state.fileLabel.SetText(fileCaption(state.filePath))
	}
}

func setImage(c *canvas.Image, img image.Image) {
	c.Image = img
	c.Refresh()
}

func fileCaption(path string) string {
	if path == "" {
		return "No file loaded"
	}
	return fmt.Sprintf("%s (%s)", filepath.Base(path), filepath.Dir(path))
}

// exportChart saves the chart on screen, defaulting the file name from the input.
func exportChart(state *viewerState) {
	if state.chart == nil || state.chart.Canvas() == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	state.exporter.ExportPNG(state.chart, exportName(state.filePath, state.cfg.Filename))
}

func exportName(inputPath, configured string) string {
	if configured != "" {
		return configured
	}
	if inputPath == "" {
		return export.DefaultFilename
	}
	base := filepath.Base(inputPath)
	return base[:len(base)-len(filepath.Ext(base))] + ".png"
}
