//go:build !nogui
// +build !nogui

package gui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"pickd/pkg/dialog"
	"pickd/pkg/vfs"
)

// entryRow renders one listing entry. Mouse clicks feed the dialog's
// click model, so ctrl and shift behave like any desktop file manager;
// a quick second tap activates the entry.
type entryRow struct {
	widget.BaseWidget
	app *App

	index int
	path  string

	bg   *canvas.Rectangle
	icon *widget.Label
	name *widget.Label
	meta *widget.Label

	lastTap time.Time
}

var _ desktop.Mouseable = (*entryRow)(nil)

func newEntryRow(a *App) *entryRow {
	r := &entryRow{
		app:   a,
		index: -1,
		bg:    canvas.NewRectangle(theme.SelectionColor()),
		icon:  widget.NewLabel(""),
		name:  widget.NewLabel(""),
		meta:  widget.NewLabel(""),
	}
	r.bg.Hide()
	r.name.Truncation = fyne.TextTruncateEllipsis
	r.ExtendBaseWidget(r)
	return r
}

func (r *entryRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(
		r.bg,
		container.NewBorder(nil, nil, r.icon, r.meta, r.name),
	))
}

// set points the row at the listing entry at index i.
func (r *entryRow) set(i int, e vfs.Entry, labels dialog.Labels) {
	r.index = i
	r.path = e.Path

	if e.IsDir() {
		r.icon.SetText(labels.DirIcon)
	} else {
		r.icon.SetText(labels.FileIcon)
	}
	r.name.SetText(e.Name)

	var detail string
	if e.IsFile() {
		detail = humanize.Bytes(uint64(e.Size))
	}
	if !e.ModTime.IsZero() {
		if detail != "" {
			detail += "  "
		}
		detail += e.ModTime.Format("2006-01-02 15:04")
	}
	r.meta.SetText(detail)

	if r.marked(e) {
		r.bg.Show()
	} else {
		r.bg.Hide()
	}
	r.Refresh()
}

func (r *entryRow) marked(e vfs.Entry) bool {
	if r.app.dlg.MultiSelect() {
		return e.Selected
	}
	sel, ok := r.app.dlg.Selected()
	return ok && sel.Path == e.Path
}

// Tapped detects double taps; the selection itself happens in MouseUp.
func (r *entryRow) Tapped(*fyne.PointEvent) {
	if r.index < 0 {
		return
	}
	now := time.Now()
	if now.Sub(r.lastTap) < fyne.CurrentApp().Driver().DoubleTapDelay() {
		r.app.queue(dialog.Activate{Path: r.path})
	}
	r.lastTap = now
}

func (r *entryRow) MouseDown(*desktop.MouseEvent) {}

func (r *entryRow) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || r.index < 0 {
		return
	}
	switch {
	case e.Modifier&fyne.KeyModifierControl != 0:
		r.app.clickRow(r.index, dialog.ClickToggle)
	case e.Modifier&fyne.KeyModifierShift != 0:
		r.app.clickRow(r.index, dialog.ClickRange)
	default:
		r.app.clickRow(r.index, dialog.ClickPlain)
	}
}
