package dialog

// Labels holds every user-visible string the dialog asks its host to
// render. Replace any subset through WithLabels to localize or restyle.
type Labels struct {
	TitleSelectFolder string
	TitleOpenFile     string
	TitleSaveFile     string

	DirIcon  string
	FileIcon string

	ParentButton    string
	RefreshButton   string
	NewFolderButton string
	RenameButton    string
	OpenButton      string
	SaveButton      string
	CancelButton    string

	ShowHiddenCheckbox string
	FileFieldLabel     string

	// NewFolderName seeds create-directory when no name was typed.
	NewFolderName string
}

// DefaultLabels returns the built-in English strings.
func DefaultLabels() Labels {
	return Labels{
		TitleSelectFolder: "📁  Select Folder",
		TitleOpenFile:     "📂  Open File",
		TitleSaveFile:     "💾  Save File",

		DirIcon:  "🗀 ",
		FileIcon: "🗋 ",

		ParentButton:    "⬆",
		RefreshButton:   "⟲",
		NewFolderButton: "New Folder",
		RenameButton:    "Rename",
		OpenButton:      "Open",
		SaveButton:      "Save",
		CancelButton:    "Cancel",

		ShowHiddenCheckbox: "Show Hidden",
		FileFieldLabel:     "File:",

		NewFolderName: "New folder",
	}
}

// Title returns the window title for the dialog's kind.
func (d *Dialog) Title() string {
	switch d.kind {
	case OpenFile:
		return d.labels.TitleOpenFile
	case SaveFile:
		return d.labels.TitleSaveFile
	default:
		return d.labels.TitleSelectFolder
	}
}
