//go:build !nogui
// +build !nogui

// Package gui hosts a dialog.Dialog in a desktop window under fyne.
// Every widget callback queues at most one dialog command and runs at
// most one Show, so the picker state machine sees the same frame
// cadence the terminal host gives it.
package gui

import (
	"strings"
	"sync"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	fynedialog "fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pickd/internal/log"
	"pickd/internal/watch"
	"pickd/pkg/dialog"
)

// App hosts one picker dialog in one window.
type App struct {
	fyneApp fyne.App
	window  fyne.Window

	dlg     *dialog.Dialog
	watcher *watch.Watcher

	pathEntry   *widget.Entry
	nameEntry   *widget.Entry
	list        *widget.List
	hiddenCheck *widget.Check
	errorLabel  *widget.Label

	upButton        *widget.Button
	refreshButton   *widget.Button
	newFolderButton *widget.Button
	renameButton    *widget.Button
	confirmButton   *widget.Button
	cancelButton    *widget.Button

	// Path completion span: pathEntry text from compStart to compEnd
	// was appended by the dialog and is replaced by further typing.
	compStart int
	compEnd   int

	// syncing suppresses entry and checkbox callbacks while widget
	// state is being echoed from the dialog.
	syncing bool

	mu       sync.Mutex
	result   Result
	finished bool
}

// NewApp builds the picker window around d. A nil watcher disables
// filesystem refresh; otherwise the watcher follows the dialog's
// directory and its change events queue Refresh commands.
func NewApp(d *dialog.Dialog, w *watch.Watcher) *App {
	return newApp(app.NewWithID("io.github.pickd"), d, w)
}

func newApp(fyneApp fyne.App, d *dialog.Dialog, w *watch.Watcher) *App {
	a := &App{
		fyneApp: fyneApp,
		dlg:     d,
		watcher: w,
	}
	if d.State() == dialog.Closed {
		d.Open()
	}

	a.window = fyneApp.NewWindow(d.Title())
	a.buildWidgets()
	a.window.SetContent(a.layout())

	width, height := d.DefaultSize()
	a.window.Resize(fyne.NewSize(width, height))
	a.window.SetFixedSize(!d.Resizable())
	// fyne has no programmatic window placement or stacking control,
	// so the dialog's position, anchor, and keep-on-top hints go
	// unused here.
	a.window.CenterOnScreen()

	a.window.SetCloseIntercept(a.closeRequested)
	a.window.Canvas().SetOnTypedKey(func(ke *fyne.KeyEvent) {
		if ke.Name == fyne.KeyEscape {
			a.queue(dialog.Cancel{})
		}
	})

	a.syncAll()
	return a
}

// Run shows the window and blocks until the dialog reaches a terminal
// state or the window is closed.
func (a *App) Run() Result {
	if a.watcher != nil {
		if err := a.watcher.Watch(a.dlg.Directory()); err != nil {
			log.LogError(err, "watching picker directory failed")
		} else if !a.watcher.IsRunning() {
			if err := a.watcher.Start(); err != nil {
				log.LogError(err, "starting watcher failed")
			}
		}
		go a.watchLoop()
	}

	a.window.Show()
	a.fyneApp.Run()

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Run hosts d in a fresh window and blocks until the dialog reaches a
// terminal state. The watcher may be nil.
func Run(d *dialog.Dialog, w *watch.Watcher) (Result, error) {
	return NewApp(d, w).Run(), nil
}

// Available reports whether this build includes the GUI.
func Available() bool { return true }

func (a *App) buildWidgets() {
	d := a.dlg
	labels := d.Labels()

	a.pathEntry = widget.NewEntry()
	a.pathEntry.OnChanged = a.pathChanged
	a.pathEntry.OnSubmitted = func(string) {
		a.queue(dialog.OpenPath{Path: a.dlg.PathEdit()})
	}

	if d.Kind() != dialog.SelectFolder {
		a.nameEntry = widget.NewEntry()
		a.nameEntry.OnChanged = a.nameChanged
		a.nameEntry.OnSubmitted = func(string) {
			a.queue(dialog.SubmitName{})
		}
	}

	a.list = widget.NewList(
		func() int { return len(a.dlg.Entries()) },
		func() fyne.CanvasObject { return newEntryRow(a) },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			entries := a.dlg.Entries()
			if id < 0 || id >= len(entries) {
				return
			}
			o.(*entryRow).set(id, entries[id], a.dlg.Labels())
		},
	)

	a.hiddenCheck = widget.NewCheck(labels.ShowHiddenCheckbox, func(bool) {
		if a.syncing {
			return
		}
		a.queue(dialog.ToggleHidden{})
	})

	a.errorLabel = widget.NewLabel("")
	a.errorLabel.Wrapping = fyne.TextWrapWord
	a.errorLabel.Hide()

	a.upButton = widget.NewButton(labels.ParentButton, func() {
		a.queue(dialog.UpDirectory{})
	})
	a.refreshButton = widget.NewButton(labels.RefreshButton, func() {
		a.queue(dialog.Refresh{})
	})
	if d.ShowNewFolderButton() {
		a.newFolderButton = widget.NewButton(labels.NewFolderButton, a.promptNewFolder)
	}
	// Renaming operates on files, which a folder picker never lists.
	if d.ShowRenameButton() && d.Kind() != dialog.SelectFolder {
		a.renameButton = widget.NewButton(labels.RenameButton, a.promptRename)
	}
	a.cancelButton = widget.NewButton(labels.CancelButton, func() {
		a.queue(dialog.Cancel{})
	})
	a.confirmButton = widget.NewButton(a.confirmLabel(), func() {
		a.queue(a.confirmCommand())
	})
	a.confirmButton.Importance = widget.HighImportance
}

func (a *App) layout() fyne.CanvasObject {
	top := container.NewBorder(nil, nil,
		container.NewHBox(a.upButton, a.refreshButton), nil,
		a.pathEntry,
	)

	var actions []fyne.CanvasObject
	if a.newFolderButton != nil {
		actions = append(actions, a.newFolderButton)
	}
	if a.renameButton != nil {
		actions = append(actions, a.renameButton)
	}
	actions = append(actions, a.hiddenCheck, layout.NewSpacer(), a.cancelButton, a.confirmButton)

	bottom := container.NewVBox(a.errorLabel)
	if a.nameEntry != nil {
		bottom.Add(container.NewBorder(nil, nil,
			widget.NewLabel(a.dlg.Labels().FileFieldLabel), nil,
			a.nameEntry,
		))
	}
	bottom.Add(container.NewHBox(actions...))

	return container.NewBorder(top, bottom, nil, nil, a.list)
}

func (a *App) confirmLabel() string {
	if a.dlg.Kind() == dialog.SaveFile {
		return a.dlg.Labels().SaveButton
	}
	return a.dlg.Labels().OpenButton
}

// confirmCommand maps the confirm button to the kind's confirm action.
func (a *App) confirmCommand() dialog.Command {
	switch a.dlg.Kind() {
	case dialog.SelectFolder:
		return dialog.Folder{}
	case dialog.SaveFile:
		return dialog.Save{}
	default:
		return dialog.OpenSelected{}
	}
}

// queue applies cmd through one Show and mirrors the dialog back into
// the widgets. A terminal state records the result and closes the
// window.
func (a *App) queue(cmd dialog.Command) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return
	}
	before := a.dlg.Directory()
	f := &dialog.Frame{}
	f.Queue(cmd)
	switch a.dlg.Show(f) {
	case dialog.Selected:
		a.result = Result{State: dialog.Selected, Paths: a.dlg.Selection()}
		if p, ok := a.dlg.Path(); ok {
			a.result.Path = p
		}
		a.finish()
	case dialog.Cancelled:
		a.result = Result{State: dialog.Cancelled}
		a.finish()
	default:
		a.syncAfter(before)
	}
}

// closeRequested runs when the user closes the window; the dialog sees
// it as a cancel.
func (a *App) closeRequested() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return
	}
	f := &dialog.Frame{}
	f.CloseWindow()
	if a.dlg.Show(f) == dialog.Cancelled {
		a.result = Result{State: dialog.Cancelled}
	}
	a.finish()
}

func (a *App) finish() {
	a.finished = true
	a.window.Close()
}

// clickRow maps a row click onto the dialog's selection model: Click in
// multi-select mode, plain Select otherwise.
func (a *App) clickRow(index int, mod dialog.ClickMod) {
	if a.dlg.MultiSelect() {
		a.queue(dialog.Click{Index: index, Mod: mod})
		return
	}
	entries := a.dlg.Entries()
	if index < 0 || index >= len(entries) {
		return
	}
	a.queue(dialog.Select{Path: entries[index].Path})
}

// syncAfter catches up with whatever the last command changed,
// retargeting the watcher when the command navigated.
func (a *App) syncAfter(before string) {
	if dir := a.dlg.Directory(); dir != before {
		if a.watcher != nil {
			if err := a.watcher.Watch(dir); err != nil {
				log.LogError(err, "watching picker directory failed")
			}
		}
		a.list.ScrollToTop()
	}
	a.syncAll()
}

// syncAll redraws every widget from dialog state.
func (a *App) syncAll() {
	a.echoPathEdit()
	if a.nameEntry != nil {
		a.setEntryText(a.nameEntry, a.dlg.FilenameEdit())
	}

	a.syncing = true
	a.hiddenCheck.SetChecked(a.dlg.ShowHidden())
	a.syncing = false

	if err := a.dlg.ListError(); err != nil {
		a.errorLabel.SetText("⚠ " + err.Error())
		a.errorLabel.Show()
	} else {
		a.errorLabel.Hide()
	}

	a.syncButtons()
	a.list.Refresh()
}

func (a *App) syncButtons() {
	setEnabled := func(b *widget.Button, on bool) {
		if on {
			b.Enable()
		} else {
			b.Disable()
		}
	}

	setEnabled(a.upButton, a.dlg.HasParent())

	switch a.dlg.Kind() {
	case dialog.SelectFolder:
		setEnabled(a.confirmButton, a.dlg.CanPickFolder())
	case dialog.SaveFile:
		setEnabled(a.confirmButton, a.dlg.CanSave())
	default:
		// Open doubles as descend when a directory is selected.
		on := a.dlg.CanOpen()
		if e, ok := a.dlg.Selected(); ok && e.IsDir() {
			on = true
		}
		setEnabled(a.confirmButton, on)
	}

	if a.renameButton != nil {
		setEnabled(a.renameButton, a.selectedFile())
	}
}

// selectedFile reports whether the single selection is a file, which
// is what the rename prompt operates on.
func (a *App) selectedFile() bool {
	e, ok := a.dlg.Selected()
	return ok && e.IsFile()
}

// pathChanged folds a keystroke into the dialog's path edit. The text
// between compStart and compEnd is a pending completion: typing past
// it accepts it and any other edit first strips it, so the dialog sees
// only what the user typed.
func (a *App) pathChanged(text string) {
	if a.syncing {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return
	}
	prev := a.dlg.PathEdit()
	if text == prev {
		return
	}
	// typed is how much of prev the user owned; the rest was appended.
	typed := len(prev)
	if span := prev[a.compStart:]; span != "" && !strings.HasPrefix(text, prev) {
		if strings.HasSuffix(text, span) {
			text = strings.TrimSuffix(text, span)
		}
		typed = a.compStart
	}
	deleted := len(text) < typed
	start, end := a.dlg.SetPathEdit(text, deleted)
	a.compStart, a.compEnd = start, end
	a.setEntryText(a.pathEntry, a.dlg.PathEdit())
	if end > start {
		// fyne entries cannot render a selected span, so the cursor
		// parks ahead of the appended text instead: typing inserts
		// there and the span is stripped on the next change.
		a.pathEntry.CursorRow = 0
		a.pathEntry.CursorColumn = utf8.RuneCountInString(a.dlg.PathEdit()[:start])
		a.pathEntry.Refresh()
	}
}

func (a *App) nameChanged(text string) {
	if a.syncing {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return
	}
	a.dlg.SetFilenameEdit(text)
	a.syncButtons()
}

// echoPathEdit writes dialog-owned path text into the entry. Any
// pending completion span collapses into accepted text; a span only
// survives between keystrokes, never across a command frame.
func (a *App) echoPathEdit() {
	text := a.dlg.PathEdit()
	a.compStart, a.compEnd = len(text), len(text)
	if a.pathEntry.Text != text {
		a.setEntryText(a.pathEntry, text)
	}
}

// setEntryText echoes dialog-owned text into an entry without feeding
// it back through OnChanged.
func (a *App) setEntryText(e *widget.Entry, text string) {
	if e.Text == text {
		return
	}
	a.syncing = true
	e.SetText(text)
	a.syncing = false
}

// promptNewFolder collects a directory name and queues the create. An
// empty name falls back to the dialog's default.
func (a *App) promptNewFolder() {
	labels := a.dlg.Labels()
	entry := widget.NewEntry()
	entry.SetPlaceHolder(labels.NewFolderName)
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	fynedialog.ShowForm(labels.NewFolderButton, labels.NewFolderButton, labels.CancelButton, items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			a.queue(dialog.CreateDir{Name: entry.Text})
		}, a.window)
}

// promptRename collects a new name for the selected file and queues
// the rename.
func (a *App) promptRename() {
	e, ok := a.dlg.Selected()
	if !ok || !e.IsFile() {
		return
	}
	labels := a.dlg.Labels()
	entry := widget.NewEntry()
	entry.SetText(e.Name)
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	fynedialog.ShowForm(labels.RenameButton, labels.RenameButton, labels.CancelButton, items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			a.queue(dialog.Rename{Name: entry.Text})
		}, a.window)
}

// watchLoop turns filesystem activity into Refresh frames. Events from
// a directory left behind by navigation are dropped.
func (a *App) watchLoop() {
	for dir := range a.watcher.Changes() {
		a.mu.Lock()
		stale := a.finished || dir != a.dlg.Directory()
		a.mu.Unlock()
		if stale {
			continue
		}
		a.queue(dialog.Refresh{})
	}
}
