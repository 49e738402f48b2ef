package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"pickd/pkg/dialog"
	"pickd/pkg/vfs"
)

// View implements tea.Model.
func (m *Model) View() string {
	d := m.dialog
	if m.done || d.State() == dialog.Closed {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(d.Title()))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Path: "))
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderList())

	if err := d.ListError(); err != nil {
		b.WriteString(ErrorStyle.Render("⚠ " + err.Error()))
		b.WriteString("\n")
	}

	if d.Kind() != dialog.SelectFolder {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(d.Labels().FileFieldLabel + " "))
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	}

	switch m.focus {
	case focusNewFolder:
		b.WriteString(LabelStyle.Render(d.Labels().NewFolderButton + ": "))
		b.WriteString(m.editInput.View())
		b.WriteString("\n")
	case focusRename:
		b.WriteString(LabelStyle.Render(d.Labels().RenameButton + ": "))
		b.WriteString(m.editInput.View())
		b.WriteString("\n")
	}

	if status := m.statusLine(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return AppStyle.Render(b.String())
}

func (m *Model) renderList() string {
	entries := m.dialog.Entries()
	if len(entries) == 0 {
		return EmptyStyle.Render("No files found.") + "\n"
	}

	var b strings.Builder
	end := m.viewOffset + m.listHeight
	if end > len(entries) {
		end = len(entries)
	}
	for i := m.viewOffset; i < end; i++ {
		b.WriteString(m.renderRow(i, entries[i]))
		b.WriteString("\n")
	}
	if end < len(entries) {
		b.WriteString(DetailStyle.Render(fmt.Sprintf("… %d more", len(entries)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(i int, e vfs.Entry) string {
	labels := m.dialog.Labels()
	icon := labels.FileIcon
	if e.IsDir() {
		icon = labels.DirIcon
	}

	mark := " "
	if m.isMarked(e) {
		mark = "✓"
	}

	var detail string
	if e.IsFile() {
		detail = humanize.Bytes(uint64(e.Size))
	}
	if !e.ModTime.IsZero() {
		if detail != "" {
			detail += "  "
		}
		detail += e.ModTime.Format("2006-01-02 15:04:05")
	}

	line := fmt.Sprintf("%s %s%-32s %s", mark, icon, e.Name, detail)
	switch {
	case i == m.cursor:
		return CursorStyle.Render("> " + line)
	case m.isMarked(e):
		return SelectedStyle.Render("  " + line)
	case e.IsDir():
		return "  " + DirStyle.Render(line)
	default:
		return "  " + FileStyle.Render(line)
	}
}

func (m *Model) isMarked(e vfs.Entry) bool {
	if m.dialog.MultiSelect() {
		return e.Selected
	}
	sel, ok := m.dialog.Selected()
	return ok && sel.Path == e.Path
}

// statusLine surfaces selection counts, the hidden toggle, and whether
// the kind's confirm button would currently be enabled.
func (m *Model) statusLine() string {
	d := m.dialog
	var parts []string
	if d.MultiSelect() {
		parts = append(parts, fmt.Sprintf("%d selected", len(d.Selection())))
	}
	if d.ShowHidden() {
		parts = append(parts, strings.ToLower(d.Labels().ShowHiddenCheckbox))
	}
	switch d.Kind() {
	case dialog.SaveFile:
		if d.CanSave() {
			parts = append(parts, d.Labels().SaveButton+": ctrl+s")
		}
	case dialog.OpenFile:
		if d.CanOpen() {
			parts = append(parts, d.Labels().OpenButton+": ctrl+s")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return StatusStyle.Render(strings.Join(parts, " · "))
}
