package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickd/internal/errors"
	"pickd/pkg/vfs"
)

func workBackend() *vfs.Memory {
	return vfs.NewMemory().
		AddDir("/work/docs").
		AddDir("/work/src").
		AddFile("/work/notes.txt", 64).
		AddFile("/work/report.txt", 128).
		AddFile("/work/.hidden", 1)
}

func openDialog(kind Kind, opts ...Option) *Dialog {
	d := New(kind, append([]Option{WithBackend(workBackend()), WithStartPath("/work")}, opts...)...)
	d.Open()
	return d
}

// step runs one frame carrying cmd.
func step(d *Dialog, cmd Command) State {
	f := &Frame{}
	f.Queue(cmd)
	return d.Show(f)
}

func listedNames(d *Dialog) []string {
	names := make([]string, 0, len(d.Entries()))
	for _, e := range d.Entries() {
		names = append(names, e.Name)
	}
	return names
}

func txtOnly(name string) bool {
	return strings.HasSuffix(name, ".txt")
}

func TestOpenLoadsListing(t *testing.T) {
	d := New(OpenFile, WithBackend(workBackend()), WithStartPath("/work"))
	assert.Equal(t, Closed, d.State())

	d.Open()

	assert.Equal(t, Open, d.State())
	assert.Equal(t, "/work", d.Directory())
	assert.Equal(t, "/work", d.PathEdit())
	assert.Equal(t, []string{"docs", "src", "notes.txt", "report.txt"}, listedNames(d),
		"hidden entries stay out by default")
}

func TestSelectFolderListsOnlyDirectories(t *testing.T) {
	d := openDialog(SelectFolder)
	assert.Equal(t, []string{"docs", "src"}, listedNames(d))
}

func TestFileStartPathOpensParent(t *testing.T) {
	t.Run("open file", func(t *testing.T) {
		d := New(OpenFile, WithBackend(workBackend()), WithStartPath("/work/notes.txt"))
		d.Open()
		assert.Equal(t, "/work", d.Directory())
		assert.Equal(t, "notes.txt", d.FilenameEdit())

		step(d, Refresh{})
		assert.Equal(t, "notes.txt", d.FilenameEdit(), "the seeded name acts as the default")
	})

	t.Run("explicit default wins", func(t *testing.T) {
		d := New(SaveFile,
			WithBackend(workBackend()),
			WithStartPath("/work/notes.txt"),
			WithDefaultFilename("copy.txt"))
		d.Open()
		assert.Equal(t, "/work", d.Directory())
		assert.Equal(t, "copy.txt", d.FilenameEdit())
	})

	t.Run("select folder drops the name", func(t *testing.T) {
		d := New(SelectFolder, WithBackend(workBackend()), WithStartPath("/work/notes.txt"))
		d.Open()
		assert.Equal(t, "/work", d.Directory())
		assert.Equal(t, "", d.FilenameEdit())
	})
}

func TestSelectThenOpenConfirms(t *testing.T) {
	d := openDialog(OpenFile)
	assert.False(t, d.CanOpen(), "nothing selected yet")

	step(d, Select{Path: "/work/docs"})
	assert.False(t, d.CanOpen(), "a directory selection cannot be opened")

	step(d, Select{Path: "/work/notes.txt"})
	sel, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "notes.txt", sel.Name)
	assert.Equal(t, "notes.txt", d.FilenameEdit(), "selection mirrors into the filename edit")
	assert.True(t, d.CanOpen())

	assert.Equal(t, Selected, step(d, OpenSelected{}))
	path, ok := d.Path()
	require.True(t, ok)
	assert.Equal(t, "/work/notes.txt", path)

	assert.Equal(t, Closed, d.Show(nil), "terminal states last exactly one frame")
}

func TestSelectFolderConfirmsCursor(t *testing.T) {
	m := vfs.NewMemory().AddDir("/tmp")
	d := New(SelectFolder, WithBackend(m), WithStartPath("/tmp"))
	d.Open()

	assert.True(t, d.CanPickFolder())
	assert.Equal(t, Selected, step(d, Folder{}))

	path, ok := d.Path()
	require.True(t, ok)
	assert.Equal(t, "/tmp", path)
}

func TestSelectFolderConfirmsFlaggedSubdirectory(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		d := openDialog(SelectFolder)
		step(d, Select{Path: "/work/docs"})
		assert.True(t, d.CanPickFolder())
		assert.Equal(t, Selected, step(d, Folder{}))
		path, _ := d.Path()
		assert.Equal(t, "/work/docs", path)
	})

	t.Run("multi", func(t *testing.T) {
		d := openDialog(SelectFolder, WithMultiSelect())
		step(d, Click{Index: 0, Mod: ClickPlain}) // docs
		assert.Equal(t, Selected, step(d, Folder{}))
		path, _ := d.Path()
		assert.Equal(t, "/work/docs", path)
	})
}

func TestCancel(t *testing.T) {
	d := openDialog(OpenFile)
	assert.Equal(t, Cancelled, step(d, Cancel{}))
	assert.Equal(t, Closed, d.Show(nil))
}

func TestWindowCloseCancels(t *testing.T) {
	d := openDialog(OpenFile)

	f := &Frame{}
	f.CloseWindow()
	assert.Equal(t, Cancelled, d.Show(f))
	assert.Equal(t, Closed, d.Show(nil))
}

func TestConfirmOutranksWindowClose(t *testing.T) {
	d := openDialog(OpenFile)
	step(d, Select{Path: "/work/notes.txt"})

	f := &Frame{}
	f.Queue(OpenSelected{})
	f.CloseWindow()
	assert.Equal(t, Selected, d.Show(f), "a confirmed result survives a same-frame close")
}

func TestRefreshClearsSelection(t *testing.T) {
	d := openDialog(OpenFile)
	step(d, Select{Path: "/work/notes.txt"})
	_, ok := d.Selected()
	require.True(t, ok)

	step(d, Refresh{})

	_, ok = d.Selected()
	assert.False(t, ok)
	assert.Equal(t, "", d.FilenameEdit())
}

func TestActivate(t *testing.T) {
	t.Run("directory navigates", func(t *testing.T) {
		d := openDialog(OpenFile)
		assert.Equal(t, Open, step(d, Activate{Path: "/work/docs"}))
		assert.Equal(t, "/work/docs", d.Directory())
		assert.Equal(t, "/work/docs", d.PathEdit())
		assert.Empty(t, d.Entries())
	})

	t.Run("file confirms open dialog", func(t *testing.T) {
		d := openDialog(OpenFile)
		assert.Equal(t, Selected, step(d, Activate{Path: "/work/report.txt"}))
		path, _ := d.Path()
		assert.Equal(t, "/work/report.txt", path)
	})

	t.Run("file confirms save dialog", func(t *testing.T) {
		d := openDialog(SaveFile)
		assert.Equal(t, Selected, step(d, Activate{Path: "/work/report.txt"}))
		path, _ := d.Path()
		assert.Equal(t, "/work/report.txt", path)
	})

	t.Run("unlisted path ignored", func(t *testing.T) {
		d := openDialog(OpenFile)
		assert.Equal(t, Open, step(d, Activate{Path: "/work/ghost"}))
		_, ok := d.Selected()
		assert.False(t, ok)
	})
}

func TestUpDirectory(t *testing.T) {
	d := openDialog(OpenFile)
	step(d, Activate{Path: "/work/docs"})

	assert.Equal(t, Open, step(d, UpDirectory{}))
	assert.Equal(t, "/work", d.Directory())
	assert.Equal(t, "/work/", d.PathEdit(),
		"path edit keeps a trailing separator for completion")

	root := New(OpenFile, WithBackend(workBackend()), WithStartPath("/"))
	root.Open()
	assert.False(t, root.HasParent())
	step(root, UpDirectory{})
	assert.Equal(t, "/", root.Directory(), "up from a root is a no-op")
}

func TestOpenPath(t *testing.T) {
	t.Run("directory navigates", func(t *testing.T) {
		d := openDialog(OpenFile)
		step(d, OpenPath{Path: "/work/src"})
		assert.Equal(t, "/work/src", d.Directory())
	})

	t.Run("existing file confirms", func(t *testing.T) {
		d := openDialog(OpenFile)
		assert.Equal(t, Selected, step(d, OpenPath{Path: "/work/notes.txt"}))
		path, _ := d.Path()
		assert.Equal(t, "/work/notes.txt", path)
	})

	t.Run("missing path only selects", func(t *testing.T) {
		d := openDialog(OpenFile)
		assert.Equal(t, Open, step(d, OpenPath{Path: "/work/ghost"}))
		assert.NoError(t, d.ListError(), "a bad typed path is not a listing failure")
		assert.Equal(t, "ghost", d.FilenameEdit())
		assert.False(t, d.CanOpen(), "a path of unknown kind cannot confirm")
	})
}

func TestSubmitName(t *testing.T) {
	t.Run("missing name does nothing", func(t *testing.T) {
		d := openDialog(OpenFile)
		d.SetFilenameEdit("nope.txt")
		assert.Equal(t, Open, step(d, SubmitName{}))
		assert.Equal(t, "/work", d.Directory())
		_, ok := d.Selected()
		assert.False(t, ok)
	})

	t.Run("existing file confirms", func(t *testing.T) {
		d := openDialog(OpenFile)
		d.SetFilenameEdit("report.txt")
		assert.Equal(t, Selected, step(d, SubmitName{}))
		path, _ := d.Path()
		assert.Equal(t, "/work/report.txt", path)
	})

	t.Run("directory navigates", func(t *testing.T) {
		d := openDialog(OpenFile)
		d.SetFilenameEdit("docs")
		assert.Equal(t, Open, step(d, SubmitName{}))
		assert.Equal(t, "/work/docs", d.Directory())
		assert.Equal(t, "", d.FilenameEdit(), "navigation resets the edit")
	})

	t.Run("save synthesizes new path", func(t *testing.T) {
		d := openDialog(SaveFile)
		d.SetFilenameEdit("draft.txt")
		assert.Equal(t, Selected, step(d, SubmitName{}))
		path, _ := d.Path()
		assert.Equal(t, "/work/draft.txt", path)
	})

	t.Run("save navigates into directory name", func(t *testing.T) {
		d := openDialog(SaveFile)
		d.SetFilenameEdit("docs")
		assert.Equal(t, Open, step(d, SubmitName{}))
		assert.Equal(t, "/work/docs", d.Directory())
	})
}

func TestCanSaveGating(t *testing.T) {
	d := openDialog(SaveFile, WithFilenameFilter(txtOnly))

	assert.False(t, d.CanSave(), "empty edit cannot save")

	d.SetFilenameEdit("readme.md")
	assert.False(t, d.CanSave(), "filter-rejected name cannot save")

	d.SetFilenameEdit("draft.txt")
	assert.True(t, d.CanSave())

	assert.Equal(t, Selected, step(d, Save{}))
	path, _ := d.Path()
	assert.Equal(t, "/work/draft.txt", path)
}

func TestSaveFilterRejectedNameIsNoOp(t *testing.T) {
	d := openDialog(SaveFile, WithFilenameFilter(txtOnly))
	d.SetFilenameEdit("readme.md")
	assert.Equal(t, Open, step(d, Save{}))
}

func TestDefaultFilenameSurvivesNavigation(t *testing.T) {
	d := openDialog(SaveFile, WithDefaultFilename("export.json"))
	assert.Equal(t, "export.json", d.FilenameEdit())
	assert.True(t, d.CanSave())

	step(d, Activate{Path: "/work/docs"})
	assert.Equal(t, "export.json", d.FilenameEdit())

	assert.Equal(t, Selected, step(d, Save{}))
	path, _ := d.Path()
	assert.Equal(t, "/work/docs/export.json", path)
}

func TestCanRenameGating(t *testing.T) {
	d := openDialog(OpenFile)
	assert.False(t, d.CanRename())

	step(d, Select{Path: "/work/notes.txt"})
	assert.False(t, d.CanRename(), "edit still equals the selected name")

	d.SetFilenameEdit("journal.txt")
	assert.True(t, d.CanRename())

	d.SetFilenameEdit("")
	assert.False(t, d.CanRename())

	step(d, Select{Path: "/work/docs"})
	d.SetFilenameEdit("other")
	assert.False(t, d.CanRename(), "directories are not renameable")
}

func TestCreateDir(t *testing.T) {
	t.Run("default name", func(t *testing.T) {
		d := openDialog(OpenFile)
		assert.Equal(t, Open, step(d, CreateDir{}))

		assert.Contains(t, listedNames(d), "New folder")
		sel, ok := d.Selected()
		require.True(t, ok, "the created directory is re-selected after refresh")
		assert.Equal(t, "/work/New folder", sel.Path)
		assert.True(t, sel.IsDir())
	})

	t.Run("explicit name", func(t *testing.T) {
		d := openDialog(OpenFile)
		step(d, CreateDir{Name: "assets"})
		sel, _ := d.Selected()
		assert.Equal(t, "/work/assets", sel.Path)
	})

	t.Run("typed name", func(t *testing.T) {
		d := openDialog(OpenFile)
		d.SetFilenameEdit("archive")
		step(d, CreateDir{})
		sel, _ := d.Selected()
		assert.Equal(t, "/work/archive", sel.Path)
	})

	t.Run("failure leaves state alone", func(t *testing.T) {
		d := openDialog(OpenFile)
		before := listedNames(d)
		assert.Equal(t, Open, step(d, CreateDir{Name: "docs"}))
		assert.Equal(t, before, listedNames(d))
		_, ok := d.Selected()
		assert.False(t, ok)
	})
}

type renameFailBackend struct {
	*vfs.Memory
}

func (renameFailBackend) Rename(from, _ string) error {
	return errors.NewPathError("rename failed", from, errors.PermissionDenied, nil)
}

func TestRename(t *testing.T) {
	t.Run("success reselects", func(t *testing.T) {
		d := openDialog(OpenFile)
		step(d, Select{Path: "/work/notes.txt"})
		d.SetFilenameEdit("journal.txt")

		assert.Equal(t, Open, step(d, Rename{}))

		assert.Contains(t, listedNames(d), "journal.txt")
		assert.NotContains(t, listedNames(d), "notes.txt")
		sel, ok := d.Selected()
		require.True(t, ok)
		assert.Equal(t, "/work/journal.txt", sel.Path)
	})

	t.Run("no selection is a no-op", func(t *testing.T) {
		d := openDialog(OpenFile)
		d.SetFilenameEdit("anything")
		assert.Equal(t, Open, step(d, Rename{}))
		assert.Contains(t, listedNames(d), "notes.txt")
	})

	t.Run("backend failure mutates nothing", func(t *testing.T) {
		d := New(OpenFile,
			WithBackend(renameFailBackend{workBackend()}),
			WithStartPath("/work"))
		d.Open()
		step(d, Select{Path: "/work/notes.txt"})
		d.SetFilenameEdit("journal.txt")

		assert.Equal(t, Open, step(d, Rename{}))

		assert.Contains(t, listedNames(d), "notes.txt")
		sel, _ := d.Selected()
		assert.Equal(t, "/work/notes.txt", sel.Path)
		assert.Equal(t, "journal.txt", d.FilenameEdit(), "typed name is kept for another try")
	})
}

func TestListingErrorRetained(t *testing.T) {
	d := openDialog(OpenFile)

	d.SetPath("/missing")
	require.Error(t, d.ListError())
	assert.True(t, errors.IsNotFound(d.ListError()))
	assert.Empty(t, d.Entries())

	d.SetPath("/work")
	assert.NoError(t, d.ListError(), "a successful refresh clears the retained error")
	assert.NotEmpty(t, d.Entries())
}

func TestToggleHidden(t *testing.T) {
	d := openDialog(OpenFile)
	assert.False(t, d.ShowHidden())

	step(d, ToggleHidden{})
	assert.True(t, d.ShowHidden())
	assert.Contains(t, listedNames(d), ".hidden")

	step(d, ToggleHidden{})
	assert.NotContains(t, listedNames(d), ".hidden")
}

func TestFrameKeepsFirstCommand(t *testing.T) {
	d := openDialog(OpenFile)

	f := &Frame{}
	f.Queue(Cancel{})
	f.Queue(Refresh{})
	assert.Equal(t, Cancelled, d.Show(f))
}

func TestShowWhileClosedIgnoresCommands(t *testing.T) {
	d := New(OpenFile, WithBackend(workBackend()), WithStartPath("/work"))
	assert.Equal(t, Closed, step(d, Cancel{}))
	assert.Equal(t, Closed, d.State())
}

func TestMultiSelect(t *testing.T) {
	d := openDialog(OpenFile, WithMultiSelect(), WithFilenameFilter(txtOnly))
	// Listing order: docs(0), src(1), notes.txt(2), report.txt(3).

	step(d, Click{Index: 2, Mod: ClickPlain})
	assert.Equal(t, []string{"/work/notes.txt"}, d.Selection())
	assert.True(t, d.CanOpen())

	step(d, Click{Index: 2, Mod: ClickPlain})
	assert.Empty(t, d.Selection(), "plain click on the unique selection deselects")
	assert.False(t, d.CanOpen())

	step(d, Click{Index: 3, Mod: ClickRange})
	assert.Empty(t, d.Selection(), "range click without an anchor changes nothing")

	step(d, Click{Index: 1, Mod: ClickPlain})
	assert.False(t, d.CanOpen(), "a flagged directory fails the filename filter")

	step(d, Click{Index: 3, Mod: ClickRange})
	entries := d.Entries()
	assert.False(t, entries[0].Selected)
	assert.True(t, entries[1].Selected)
	assert.True(t, entries[2].Selected)
	assert.True(t, entries[3].Selected)
	assert.Equal(t, []string{"/work/notes.txt", "/work/report.txt"}, d.Selection(),
		"filter-rejected names stay out of the result set")
	assert.True(t, d.CanOpen())

	step(d, Refresh{})
	assert.Empty(t, d.Selection(), "refresh clears multi-select flags")

	step(d, Click{Index: 2, Mod: ClickToggle})
	step(d, Click{Index: 3, Mod: ClickToggle})
	assert.Equal(t, Selected, step(d, OpenSelected{}))
	assert.Equal(t, []string{"/work/notes.txt", "/work/report.txt"}, d.Selection())
}

func TestClickIgnoredInSingleSelect(t *testing.T) {
	d := openDialog(OpenFile)
	step(d, Click{Index: 2, Mod: ClickPlain})
	assert.Empty(t, d.Selection())
	_, ok := d.Selected()
	assert.False(t, ok)
}
