package app

// Layout constants define the dimensions of the screen regions.
const (
	// FooterRows is the number of rows reserved below the map: the status
	// line and the key hint line.
	FooterRows = 2

	// ScrollMargin keeps this many cells between the active node and the
	// edge of the map area when scrolling follows the selection.
	ScrollMargin = 1

	// HelpMaxWidth caps the wrap width of the help overlay.
	HelpMaxWidth = 100
)

// Status line prefixes and the cursor drawn while a line is edited.
const (
	editPrefix      = "Edit: "
	searchPrefix    = "Search: "
	cursorIndicator = "▌"
)
