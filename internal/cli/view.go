package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tells tabs and modals apart in tests and navigation.
type ViewID int

const (
	ViewTimer ViewID = iota
	ViewBoard
	ViewStats
	ViewForm
)

// View is a tab or a modal pushed above the tabs.
type View interface {
	tea.Model
	ID() ViewID
	// ShortHelp feeds the key hints in the status bar.
	ShortHelp() []key.Binding
	// Title is the tab label, or the breadcrumb for a modal.
	Title() string
}
