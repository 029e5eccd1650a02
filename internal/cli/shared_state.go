package cli

// SharedState is handed to every view by pointer so that size changes and
// the wired App reach views without extra messages.
type SharedState struct {
	App *App

	Width  int
	Height int
}

// chromeLines is the header (tabs + rule) plus the status bar (rule + hints).
const chromeLines = 4

const maxFormWidth = 64

// ContentHeight is the number of rows left for a view below the tab header
// and above the status bar. Never less than one.
func (s *SharedState) ContentHeight() int {
	return max(s.Height-chromeLines, 1)
}

// FormWidth caps modal forms so they stay readable on wide terminals.
// Zero means the terminal size is not known yet.
func (s *SharedState) FormWidth() int {
	if s.Width <= 0 {
		return 0
	}
	return min(s.Width-2, maxFormWidth)
}
