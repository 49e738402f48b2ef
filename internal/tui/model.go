// Package tui hosts a dialog.Dialog in the terminal under bubbletea.
// Every incoming message queues at most one dialog command and runs at
// most one Show, so the picker state machine sees the same frame
// cadence a GUI host would give it.
package tui

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pickd/internal/errors"
	"pickd/internal/log"
	"pickd/internal/watch"
	"pickd/pkg/dialog"
	"pickd/pkg/vfs"
)

// focus identifies which widget keystrokes go to.
type focus int

const (
	focusList focus = iota
	focusPath
	focusName
	focusNewFolder
	focusRename
)

// Result is what a picker run produced. Paths carries the multi-select
// set; Path the single confirmed path.
type Result struct {
	State dialog.State
	Path  string
	Paths []string
}

// dirChangedMsg reports filesystem activity in a watched directory.
type dirChangedMsg struct {
	dir string
}

type Model struct {
	dialog  *dialog.Dialog
	watcher *watch.Watcher
	keys    KeyMap
	help    help.Model

	pathInput textinput.Model
	nameInput textinput.Model
	// editInput backs the new-folder and rename prompts.
	editInput textinput.Model

	focus      focus
	cursor     int
	viewOffset int
	listHeight int
	width      int

	// Path completion span: pathInput value between compStart and
	// compEnd was appended by the dialog and is replaced by typing.
	compStart int
	compEnd   int

	result Result
	done   bool
}

// New wraps d for terminal hosting. A nil watcher disables filesystem
// refresh; otherwise the watcher follows the dialog's directory and its
// change events queue Refresh commands.
func New(d *dialog.Dialog, w *watch.Watcher) *Model {
	path := textinput.New()
	path.Prompt = ""
	path.CharLimit = 1024
	path.Width = 60

	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 255
	name.Width = 40

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 255
	edit.Width = 40

	return &Model{
		dialog:     d,
		watcher:    w,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		pathInput:  path,
		nameInput:  name,
		editInput:  edit,
		listHeight: 12,
	}
}

// Result returns the outcome once the program has quit.
func (m *Model) Result() Result {
	return m.result
}

// Init implements tea.Model. It opens the dialog if the caller has not
// already done so and points the watcher at the starting directory.
func (m *Model) Init() tea.Cmd {
	if m.dialog.State() == dialog.Closed {
		m.dialog.Open()
	}
	m.pathInput.SetValue(m.dialog.PathEdit())
	m.nameInput.SetValue(m.dialog.FilenameEdit())

	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		if err := m.watcher.Watch(m.dialog.Directory()); err != nil {
			log.LogError(err, "watching picker directory failed")
		} else if !m.watcher.IsRunning() {
			if err := m.watcher.Start(); err != nil {
				log.LogError(err, "starting watcher failed")
			}
		}
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.listHeight = msg.Height - 10
		if m.listHeight < 3 {
			m.listHeight = 3
		}
		inputWidth := msg.Width - 14
		if inputWidth > 10 {
			m.pathInput.Width = inputWidth
			m.nameInput.Width = inputWidth
			m.editInput.Width = inputWidth
		}
		m.adjustViewOffset()
		return m, nil

	case dirChangedMsg:
		cmds := []tea.Cmd{}
		if m.watcher != nil {
			cmds = append(cmds, m.waitForChange())
		}
		// Stale notifications from a directory left behind by
		// navigation are dropped.
		if msg.dir == m.dialog.Directory() {
			if quit := m.runFrame(dialog.Refresh{}); quit != nil {
				cmds = append(cmds, quit)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blink and friends) feeds the focused
	// input.
	var cmd tea.Cmd
	switch m.focus {
	case focusPath:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusNewFolder, focusRename:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusPath:
		return m.handlePathKey(msg)
	case focusName:
		return m.handleNameKey(msg)
	case focusNewFolder, focusRename:
		return m.handlePromptKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	var cmd dialog.Command

	switch {
	case key.Matches(msg, m.keys.Cancel):
		cmd = dialog.Cancel{}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.adjustViewOffset()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(d.Entries()) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.adjustViewOffset()

	case key.Matches(msg, m.keys.Activate):
		if e, ok := m.entryAt(m.cursor); ok {
			cmd = dialog.Activate{Path: e.Path}
		}
	case key.Matches(msg, m.keys.Parent):
		cmd = dialog.UpDirectory{}
	case key.Matches(msg, m.keys.Toggle):
		if e, ok := m.entryAt(m.cursor); ok {
			if d.MultiSelect() {
				cmd = dialog.Click{Index: m.cursor, Mod: dialog.ClickToggle}
			} else {
				cmd = dialog.Select{Path: e.Path}
			}
		}
	case key.Matches(msg, m.keys.Range):
		if d.MultiSelect() {
			if _, ok := m.entryAt(m.cursor); ok {
				cmd = dialog.Click{Index: m.cursor, Mod: dialog.ClickRange}
			}
		}
	case key.Matches(msg, m.keys.Confirm):
		cmd = m.confirmCommand()
	case key.Matches(msg, m.keys.Refresh):
		cmd = dialog.Refresh{}
	case key.Matches(msg, m.keys.Hidden):
		cmd = dialog.ToggleHidden{}

	case key.Matches(msg, m.keys.NewFolder):
		if d.ShowNewFolderButton() {
			m.focus = focusNewFolder
			m.editInput.SetValue("")
			m.editInput.Placeholder = d.Labels().NewFolderName
			return m, m.editInput.Focus()
		}
	case key.Matches(msg, m.keys.Rename):
		if d.ShowRenameButton() {
			if e, ok := d.Selected(); ok && e.IsFile() {
				m.focus = focusRename
				m.editInput.SetValue(e.Name)
				m.editInput.Placeholder = ""
				return m, m.editInput.Focus()
			}
		}
	case key.Matches(msg, m.keys.NextField):
		return m, m.cycleFocus()
	}

	return m, m.runFrame(cmd)
}

// confirmCommand maps the confirm chord to the kind's confirm button.
func (m *Model) confirmCommand() dialog.Command {
	switch m.dialog.Kind() {
	case dialog.SelectFolder:
		return dialog.Folder{}
	case dialog.SaveFile:
		return dialog.Save{}
	default:
		return dialog.OpenSelected{}
	}
}

func (m *Model) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInputs()
		m.pathInput.SetValue(m.dialog.PathEdit())
		return m, m.runFrame(nil)
	case "enter":
		path := m.pathInput.Value()
		m.leaveInputs()
		return m, m.runFrame(dialog.OpenPath{Path: path})
	case "tab":
		return m, m.cycleFocus()
	}

	// An accepted completion is the text right of the cursor; right or
	// end takes it as typed.
	if m.compEnd > m.compStart {
		switch msg.String() {
		case "right", "end":
			m.pathInput.SetCursor(len([]rune(m.pathInput.Value())))
			m.compStart, m.compEnd = 0, 0
			return m, nil
		}
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			// Deleting with a completion pending removes just the
			// completion.
			value := string([]rune(m.pathInput.Value())[:m.compStart])
			m.compStart, m.compEnd = 0, 0
			m.pathInput.SetValue(value)
			m.dialog.SetPathEdit(value, true)
			return m, nil
		case tea.KeyRunes, tea.KeySpace:
			value := string([]rune(m.pathInput.Value())[:m.compStart])
			m.pathInput.SetValue(value)
			m.pathInput.SetCursor(m.compStart)
		}
		m.compStart, m.compEnd = 0, 0
	}

	before := m.pathInput.Value()
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	after := m.pathInput.Value()
	if after != before {
		deleted := len([]rune(after)) < len([]rune(before))
		start, end := m.dialog.SetPathEdit(after, deleted)
		text := m.dialog.PathEdit()
		m.pathInput.SetValue(text)
		if end > start {
			// The span bounds come back in bytes; the input is
			// addressed in runes.
			m.compStart = utf8.RuneCountInString(text[:start])
			m.compEnd = utf8.RuneCountInString(text[:end])
			m.pathInput.SetCursor(m.compStart)
		}
	}
	return m, cmd
}

func (m *Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInputs()
		return m, m.runFrame(nil)
	case "enter":
		m.leaveInputs()
		return m, m.runFrame(dialog.SubmitName{})
	case "tab":
		return m, m.cycleFocus()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.dialog.SetFilenameEdit(m.nameInput.Value())
	return m, cmd
}

// handlePromptKey runs the new-folder and rename prompts. Enter fills
// the typed name into the matching command and queues it.
func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInputs()
		return m, m.runFrame(nil)
	case "enter":
		name := m.editInput.Value()
		newFolder := m.focus == focusNewFolder
		m.leaveInputs()
		if newFolder {
			return m, m.runFrame(dialog.CreateDir{Name: name})
		}
		return m, m.runFrame(dialog.Rename{Name: name})
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// cycleFocus rotates list → path → filename → list. The filename stop
// is skipped when picking a folder.
func (m *Model) cycleFocus() tea.Cmd {
	next := focusList
	switch m.focus {
	case focusList:
		next = focusPath
	case focusPath:
		if m.dialog.Kind() != dialog.SelectFolder {
			next = focusName
		}
	}
	m.leaveInputs()
	m.focus = next
	switch next {
	case focusPath:
		m.pathInput.SetCursor(len([]rune(m.pathInput.Value())))
		return m.pathInput.Focus()
	case focusName:
		m.nameInput.SetCursor(len([]rune(m.nameInput.Value())))
		return m.nameInput.Focus()
	}
	return nil
}

func (m *Model) leaveInputs() {
	m.focus = focusList
	m.compStart, m.compEnd = 0, 0
	m.pathInput.Blur()
	m.nameInput.Blur()
	m.editInput.Blur()
}

// runFrame applies cmd through one Show and mirrors the dialog back
// into the view state. It returns tea.Quit once a terminal state is
// reached.
func (m *Model) runFrame(cmd dialog.Command) tea.Cmd {
	if m.done {
		return nil
	}
	before := m.dialog.Directory()
	f := &dialog.Frame{}
	f.Queue(cmd)
	switch m.dialog.Show(f) {
	case dialog.Selected:
		m.result = Result{State: dialog.Selected, Paths: m.dialog.Selection()}
		if p, ok := m.dialog.Path(); ok {
			m.result.Path = p
		}
		m.done = true
		return tea.Quit
	case dialog.Cancelled:
		m.result = Result{State: dialog.Cancelled}
		m.done = true
		return tea.Quit
	}
	m.syncAfterFrame(before)
	return nil
}

// syncAfterFrame catches up with whatever the last command changed:
// cursor clamping, navigation resets, watcher retargeting, and the
// echo of dialog-owned edit state into unfocused inputs.
func (m *Model) syncAfterFrame(before string) {
	entries := m.dialog.Entries()
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if dir := m.dialog.Directory(); dir != before {
		m.cursor = 0
		m.viewOffset = 0
		if m.watcher != nil {
			if err := m.watcher.Watch(dir); err != nil {
				log.LogError(err, "watching picker directory failed")
			}
		}
	}
	m.adjustViewOffset()
	if m.focus != focusPath {
		m.pathInput.SetValue(m.dialog.PathEdit())
	}
	if m.focus != focusName {
		m.nameInput.SetValue(m.dialog.FilenameEdit())
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if last := len(m.dialog.Entries()) - 1; m.cursor > last {
		m.cursor = last
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewOffset()
}

// adjustViewOffset keeps the cursor inside the visible window.
func (m *Model) adjustViewOffset() {
	if m.cursor >= m.viewOffset+m.listHeight {
		m.viewOffset = m.cursor - m.listHeight + 1
	}
	if m.cursor < m.viewOffset {
		m.viewOffset = m.cursor
	}
	if m.viewOffset < 0 {
		m.viewOffset = 0
	}
}

func (m *Model) entryAt(i int) (vfs.Entry, bool) {
	entries := m.dialog.Entries()
	if i < 0 || i >= len(entries) {
		return vfs.Entry{}, false
	}
	return entries[i], true
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.watcher.Changes()
	return func() tea.Msg {
		dir, ok := <-ch
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: dir}
	}
}

// Run hosts d in a fresh bubbletea program and blocks until the dialog
// reaches a terminal state. The watcher may be nil.
func Run(d *dialog.Dialog, w *watch.Watcher) (Result, error) {
	p := tea.NewProgram(New(d, w), tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return Result{}, errors.Wrap(err, "running picker failed")
	}
	return out.(*Model).Result(), nil
}
