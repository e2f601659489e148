// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"plan-annotator/internal/app"
	"plan-annotator/internal/image"
	"plan-annotator/internal/render"
	"plan-annotator/internal/version"
	"plan-annotator/ui/canvas"
	"plan-annotator/ui/panels"
	"plan-annotator/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	defaultWidth  = 1280
	defaultHeight = 860
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *app.Session
	prefs   *prefs.Prefs
	style   render.Style

	canvas    *canvas.AnnotationCanvas
	logPanel  *panels.LogPanel
	statusBar *widget.Label
	zoomLabel *widget.Label
	undoBtn   *widget.Button
}

// New creates a new main window.
func New(fyneApp fyne.App, session *app.Session, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(version.Name)

	style := render.DefaultStyle()
	style.GridCells = session.Config().Grid.Cells

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		prefs:   p,
		style:   style,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefs.KeyWindowWidth, defaultWidth)),
		float32(p.FloatWithFallback(prefs.KeyWindowHeight, defaultHeight)),
	))
	win.SetOnClosed(mw.SavePreferences)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	cfg := mw.session.Config()
	mw.canvas = canvas.NewAnnotationCanvas(canvas.ModifierKeys{
		Select: canvas.ParseModifier(cfg.Interaction.SelectModifier),
		Delete: canvas.ParseModifier(cfg.Interaction.DeleteModifier),
	})
	mw.canvas.OnPress(mw.session.HandleEvent)
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
		mw.prefs.SetFloat(prefs.KeyZoom, zoom)
	})

	mw.logPanel = panels.NewLogPanel(panels.DefaultLogLimit)
	mw.statusBar = widget.NewLabel("Upload a floor plan to begin")
	mw.zoomLabel = widget.NewLabel("100%")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,   // top
		nil,       // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)

	split := container.NewHSplit(canvasArea, mw.logPanel.Container())
	split.SetOffset(0.75)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
	mw.canvas.SetZoom(mw.prefs.FloatWithFallback(prefs.KeyZoom, 1.0))
}

// createToolbar creates the action buttons and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	uploadBtn := widget.NewButton("Upload Image", mw.onUpload)
	submitBtn := widget.NewButton("Submit", mw.session.Submit)
	clearPointsBtn := widget.NewButton("Clear Points", mw.session.ClearPoints)
	clearRectsBtn := widget.NewButton("Clear Rectangles", mw.session.ClearRectangles)
	mw.undoBtn = widget.NewButton("Undo", mw.session.Undo)
	mw.undoBtn.Disable()

	return container.NewHBox(
		uploadBtn,
		submitBtn,
		clearPointsBtn,
		clearRectsBtn,
		mw.undoBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("1:1", func() { mw.canvas.SetZoom(1.0) }),
		mw.zoomLabel,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Upload Image...", mw.onUpload),
		fyne.NewMenuItem("Submit", mw.session.Submit),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.session.Undo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Points", mw.session.ClearPoints),
		fyne.NewMenuItem("Clear Rectangles", mw.session.ClearRectangles),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*image.Layer); ok {
			mw.SetTitle(version.Name + " - " + layer.Name())
			mw.updateStatus(fmt.Sprintf("%s: %dx%d", layer.Name(), layer.Width(), layer.Height()))
		}
	})

	mw.session.On(app.EventAnnotationsChanged, func(interface{}) {
		mw.refreshFrame()
	})

	mw.session.On(app.EventLog, func(data interface{}) {
		if line, ok := data.(string); ok {
			mw.logPanel.Append(line)
		}
	})
}

// refreshFrame re-renders the annotations over the current image.
func (mw *MainWindow) refreshFrame() {
	layer := mw.session.Layer()
	if layer == nil {
		return
	}

	snap := mw.session.Snapshot()
	frame, err := render.Frame(layer.Image, render.Scene{
		Points:     snap.Points,
		Rectangles: snap.Rectangles,
		Pending:    snap.Pending,
		Selected:   snap.Selected,
	}, mw.style)
	if err != nil {
		log.Printf("render failed: %v", err)
		return
	}
	mw.canvas.SetFrame(frame)

	if mw.session.CanUndo() {
		mw.undoBtn.Enable()
	} else {
		mw.undoBtn.Disable()
	}
	mw.updateStatus(fmt.Sprintf("%s: %d points, %d rooms",
		layer.Name(), len(snap.Points), len(snap.Rectangles)))
}

// LoadImage loads path into the session and remembers it.
func (mw *MainWindow) LoadImage(path string) error {
	if err := mw.session.LoadImage(path); err != nil {
		return err
	}
	mw.saveLastDir(path)
	mw.prefs.SetString(prefs.KeyLastImage, path)
	return nil
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// SavePreferences stores the window size and writes preferences if changed.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	}
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

func (mw *MainWindow) onUpload() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()

		if loadErr := mw.LoadImage(path); loadErr != nil {
			dialog.ShowError(loadErr, mw.Window)
		}
	}, mw.Window)

	var exts []string
	for _, f := range mw.session.Config().Image.Formats {
		exts = append(exts, "."+f)
	}
	fd.SetFilter(storage.NewExtensionFileFilter(exts))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.Name,
		fmt.Sprintf("%s v%s\n\n"+
			"Trace a walking path and mark rooms on a floor plan.\n\n"+
			"Click to add points, hold Select to pick and move one,\n"+
			"hold Delete to remove one, right-click two corners for a room.\n\n"+
			"Session: %s\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Name, version.Version, mw.session.ID, version.BuildTime, version.GitCommit),
		mw.Window)
}
