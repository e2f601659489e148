// Package panels provides UI panels for the main window.
package panels

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DefaultLogLimit is the number of lines kept before the oldest are dropped.
const DefaultLogLimit = 500

// LogPanel shows interaction messages, newest at the bottom.
type LogPanel struct {
	mu    sync.Mutex
	lines []string
	limit int

	list      *widget.List
	container *fyne.Container
}

// NewLogPanel creates an empty log panel.
func NewLogPanel(limit int) *LogPanel {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	lp := &LogPanel{limit: limit}

	lp.list = widget.NewList(
		func() int {
			lp.mu.Lock()
			defer lp.mu.Unlock()
			return len(lp.lines)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			lp.mu.Lock()
			defer lp.mu.Unlock()
			if id < len(lp.lines) {
				obj.(*widget.Label).SetText(lp.lines[id])
			}
		},
	)

	clearBtn := widget.NewButton("Clear Log", lp.Clear)

	lp.container = container.NewBorder(
		widget.NewLabel("Log"),
		clearBtn,
		nil, nil,
		lp.list,
	)
	return lp
}

// Container returns the panel container.
func (lp *LogPanel) Container() fyne.CanvasObject {
	return lp.container
}

// Append adds a line and scrolls to it.
func (lp *LogPanel) Append(line string) {
	lp.mu.Lock()
	lp.lines = append(lp.lines, line)
	if over := len(lp.lines) - lp.limit; over > 0 {
		lp.lines = append([]string(nil), lp.lines[over:]...)
	}
	lp.mu.Unlock()

	lp.list.Refresh()
	lp.list.ScrollToBottom()
}

// Lines returns a copy of the logged lines.
func (lp *LogPanel) Lines() []string {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return append([]string(nil), lp.lines...)
}

// Clear removes every line.
func (lp *LogPanel) Clear() {
	lp.mu.Lock()
	lp.lines = nil
	lp.mu.Unlock()
	lp.list.Refresh()
}
